// Package facet is the top-level entry point for building server-driven web
// applications. An application is a root component plus a proto view binding
// its state to a DOM tree; the server renders each session's document on the
// server and streams mutations to a thin browser runtime over a WebSocket.
//
// Most programs only need this package and the builders:
//
//	app := &facet.App{
//		Title:         "Counter",
//		RootComponent: &view.DirectiveType{...},
//		ComponentView: counterView(),
//	}
//	log.Fatal(facet.Serve(ctx, app, facet.WithAddr(":8080")))
//
// The pkg/server package exposes the full surface (routing, middleware,
// session management) for applications that outgrow the facade.
package facet

import (
	"context"

	"github.com/facet-ui/facet/pkg/server"
)

// App describes one application: its title, root component, and the proto
// view the root component instantiates.
type App = server.App

// Option configures the server.
type Option = server.Option

// Re-exported server options, so simple programs need only this package.
var (
	WithAddr        = server.WithAddr
	WithLogger      = server.WithLogger
	WithSessionTTL  = server.WithSessionTTL
	WithMaxSessions = server.WithMaxSessions
)

// Serve runs app until ctx is cancelled.
func Serve(ctx context.Context, app *App, opts ...Option) error {
	return server.New(app, opts...).Run(ctx)
}
