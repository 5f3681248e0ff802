package main

import (
	"fmt"

	"github.com/facet-ui/facet/pkg/change"
	"github.com/facet-ui/facet/pkg/dom"
	"github.com/facet-ui/facet/pkg/el"
	"github.com/facet-ui/facet/pkg/server"
	"github.com/facet-ui/facet/pkg/view"
)

// demoCounter is the state behind the built-in demo page.
type demoCounter struct {
	Count int
}

func (c *demoCounter) Increment(*dom.Event) { c.Count++ }

func (c *demoCounter) Reset(*dom.Event) { c.Count = 0 }

// Label renders the count line.
func (c *demoCounter) Label() string {
	return fmt.Sprintf("clicked %d times", c.Count)
}

// demoApp builds the app served by `facet serve`: a counter with an
// increment and a reset button. It doubles as a smoke test that a deployment
// can bootstrap sessions, dispatch events, and stream patches.
func demoApp(title string) *server.App {
	root := el.Div(
		el.H1(title),
		el.P(el.Bound(), ""),
		el.Button(el.Bound(), "Click me"),
		el.Button(el.Bound(), "Reset"),
	)

	pv := view.NewProtoView(root, change.NewProtoRecordRange(), nil)
	pv.BindElement(view.NewProtoElementInjector(nil, 0), nil, nil)
	pv.BindTextNode(0, change.Path("label"))
	pv.BindElement(view.NewProtoElementInjector(nil, 1), nil, nil)
	pv.BindEvent("click", change.Call("increment", change.Path("$event")))
	pv.BindElement(view.NewProtoElementInjector(nil, 2), nil, nil)
	pv.BindEvent("click", change.Call("reset", change.Path("$event")))

	return &server.App{
		Title: title,
		RootComponent: &view.DirectiveType{
			Name:    "DemoCounter",
			Factory: func(view.DirectiveDeps) any { return &demoCounter{} },
		},
		ComponentView: pv,
	}
}
