package server

import (
	"github.com/facet-ui/facet/pkg/di"
	"github.com/facet-ui/facet/pkg/dom"
	"github.com/facet-ui/facet/pkg/shadow"
	"github.com/facet-ui/facet/pkg/view"
)

// App describes the application a server hosts: the root component, its
// compiled template, and the application-wide service bindings every session
// injector starts from.
type App struct {
	// Title is the page title.
	Title string

	// RootComponent is the component bootstrapped onto the document body.
	RootComponent *view.DirectiveType

	// ComponentView is the root component's compiled template.
	ComponentView *view.ProtoView

	// Strategy selects the shadow-DOM emulation. Defaults to emulated
	// content projection.
	Strategy view.ShadowDomStrategy

	// Services are app-scoped provider bindings shared by all directives of
	// a session.
	Services []di.Binding
}

func (a *App) strategy() view.ShadowDomStrategy {
	if a.Strategy == nil {
		return shadow.EmulatedStrategy{}
	}
	return a.Strategy
}

// bootstrap builds one session's world: a fresh body element, the root view
// instantiated in place on it, a hydrated component tree, and the document
// that records mutations from here on.
func (a *App) bootstrap() (*view.View, *dom.Document, *di.Injector, error) {
	body := dom.NewElement("body")
	rootProto := view.CreateRootProtoView(body, a.RootComponent, a.ComponentView, a.strategy())
	rootView := rootProto.Instantiate(nil)

	doc := dom.NewDocument(body)
	injector := di.NewInjector(a.Services)
	if err := rootView.Hydrate(injector, nil, struct{}{}); err != nil {
		return nil, nil, nil, err
	}
	// First detection pass materializes initial binding values before the
	// page is rendered.
	if err := rootView.RecordRange().DetectChanges(); err != nil {
		return nil, nil, nil, err
	}
	doc.Record()
	return rootView, doc, injector, nil
}
