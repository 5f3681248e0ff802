package main

import (
	"github.com/spf13/cobra"

	"github.com/facet-ui/facet/internal/config"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the project's facet.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Find(".")
			if err != nil {
				return err
			}
			success("%s is valid", cfg.Path())
			info("name:         %s", cfg.Name)
			info("addr:         %s", cfg.Server.Addr)
			info("session ttl:  %s", cfg.Server.SessionTTL.Std())
			info("max sessions: %d", cfg.Server.MaxSessions)
			info("upload store: %s", cfg.Upload.Store)
			info("log:          %s/%s", cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
}
