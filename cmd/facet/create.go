package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/mod/module"

	"github.com/facet-ui/facet/internal/config"
	"github.com/facet-ui/facet/internal/errors"
)

func createCmd() *cobra.Command {
	var modulePath string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new Facet project",
		Long: `Create a new Facet project in a directory named after the project.

Examples:
  facet create my-app
  facet create my-app --module github.com/me/my-app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], modulePath)
		},
	}

	cmd.Flags().StringVarP(&modulePath, "module", "m", "", "Go module path (defaults to the project name)")

	return cmd
}

func runCreate(name, modulePath string) error {
	if modulePath == "" {
		modulePath = name
	}
	if err := module.CheckPath(modulePath); err != nil {
		return errors.Newf(errors.CategoryConfig, "invalid module path %q", modulePath).Wrap(err)
	}

	dir, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err == nil {
		return errors.Newf(errors.CategoryConfig, "directory %q already exists", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	info("creating %s", name)

	cfg := config.New()
	cfg.Name = name
	if err := cfg.Save(filepath.Join(dir, config.FileName)); err != nil {
		os.RemoveAll(dir)
		return err
	}

	files := map[string]string{
		"go.mod":     fmt.Sprintf(goModTemplate, modulePath),
		"main.go":    fmt.Sprintf(mainTemplate, name),
		".gitignore": gitignoreTemplate,
	}
	for path, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, path), []byte(contents), 0o644); err != nil {
			os.RemoveAll(dir)
			return err
		}
	}

	success("created %s", name)
	info("next steps:")
	info("  cd %s", name)
	info("  go mod tidy")
	info("  go run .")
	return nil
}

const goModTemplate = `module %s

go 1.23

require github.com/facet-ui/facet v0.1.0
`

const mainTemplate = `package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/facet-ui/facet"
	"github.com/facet-ui/facet/pkg/change"
	"github.com/facet-ui/facet/pkg/dom"
	"github.com/facet-ui/facet/pkg/el"
	"github.com/facet-ui/facet/pkg/view"
)

// Counter is the root component's state.
type Counter struct {
	Count int
}

func (c *Counter) Increment(*dom.Event) { c.Count++ }

func (c *Counter) Label() string {
	return fmt.Sprintf("clicked %%d times", c.Count)
}

func counterView() *view.ProtoView {
	root := el.Div(
		el.P(el.Bound(), ""),
		el.Button(el.Bound(), "Click me"),
	)

	pv := view.NewProtoView(root, change.NewProtoRecordRange(), nil)
	pv.BindElement(view.NewProtoElementInjector(nil, 0), nil, nil)
	pv.BindTextNode(0, change.Path("label"))
	pv.BindElement(view.NewProtoElementInjector(nil, 1), nil, nil)
	pv.BindEvent("click", change.Call("increment", change.Path("$event")))
	return pv
}

func main() {
	app := &facet.App{
		Title: %q,
		RootComponent: &view.DirectiveType{
			Name:    "Counter",
			Factory: func(view.DirectiveDeps) any { return &Counter{} },
		},
		ComponentView: counterView(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := facet.Serve(ctx, app); err != nil {
		log.Fatal(err)
	}
}
`

const gitignoreTemplate = `.facet/
`
