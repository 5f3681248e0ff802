// Package config loads and validates facet.yaml, the project configuration
// file.
//
// The file is searched upward from the working directory, so facet commands
// work from anywhere inside a project:
//
//	cfg, err := config.Find(".")
//
// Every field has a default; an empty facet.yaml is a valid project. Duration
// fields use Go duration syntax ("30s", "10m").
package config
