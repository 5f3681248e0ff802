package view

import (
	"github.com/facet-ui/facet/pkg/di"
	"github.com/facet-ui/facet/pkg/dom"
)

// DirectiveDeps is what a directive factory may pull from its element.
type DirectiveDeps struct {
	// Injector is the service scope the directive was instantiated in: the
	// app injector, or the component's child scope when the component
	// declares its own services.
	Injector *di.Injector

	// Element is the DOM element the directive is attached to.
	Element *dom.Node

	// View is the view owning the element.
	View *View

	// ViewPort is set for structural directives bound to a template element.
	ViewPort *ViewPort

	// LightDom is the element's content-projection object, when the element
	// hosts a component under an emulating shadow-DOM strategy.
	LightDom LightDom
}

// DirectiveType is the static description of a directive or component, as
// produced by the template compiler.
type DirectiveType struct {
	// Name identifies the directive in diagnostics.
	Name string

	// Factory constructs one instance per element.
	Factory func(deps DirectiveDeps) any

	// Services are component-scoped provider declarations. A component with
	// services gets a child injector per hydration; an empty list shares the
	// parent scope.
	Services []di.Binding
}

// ProtoElementInjector is the per-element factory for ElementInjectors. It
// mirrors DOM nesting through parent pointers and carries the directive
// types that attach to its element.
type ProtoElementInjector struct {
	parent           *ProtoElementInjector
	index            int
	directives       []*DirectiveType
	firstIsComponent bool
}

// NewProtoElementInjector creates a proto injector for the element at the
// given binder index. parent is nil for elements whose nearest bound
// ancestor is outside this template.
func NewProtoElementInjector(parent *ProtoElementInjector, index int, directives ...*DirectiveType) *ProtoElementInjector {
	return &ProtoElementInjector{parent: parent, index: index, directives: directives}
}

// Parent returns the proto injector of the nearest bound ancestor element.
func (p *ProtoElementInjector) Parent() *ProtoElementInjector { return p.parent }

// Index returns the element-binder index this proto injector belongs to.
func (p *ProtoElementInjector) Index() int { return p.index }

// DirectiveCount returns the number of attached directive types.
func (p *ProtoElementInjector) DirectiveCount() int { return len(p.directives) }

// Instantiate creates a live element injector. Exactly one of parent and
// host is set: child injectors hang off their parent, root injectors off the
// host element injector of the enclosing component view (which may be nil
// for the application root).
func (p *ProtoElementInjector) Instantiate(parent, host *ElementInjector) *ElementInjector {
	return &ElementInjector{
		proto:      p,
		parent:     parent,
		host:       host,
		directives: make([]any, len(p.directives)),
	}
}

// ElementInjector holds the live directive instances of one element. The
// instance slots are allocated once at view instantiation and cleared, not
// freed, on dehydration.
type ElementInjector struct {
	proto      *ProtoElementInjector
	parent     *ElementInjector
	host       *ElementInjector
	directives []any
}

// Proto returns the proto injector this injector was built from.
func (ei *ElementInjector) Proto() *ProtoElementInjector { return ei.proto }

// Parent returns the parent element injector within the same view, or nil.
func (ei *ElementInjector) Parent() *ElementInjector { return ei.parent }

// Host returns the host element injector for root injectors of a component
// view, or nil.
func (ei *ElementInjector) Host() *ElementInjector { return ei.host }

// InstantiateDirectives builds one instance per attached directive type.
// The same slots are repopulated on every hydration.
func (ei *ElementInjector) InstantiateDirectives(inj *di.Injector, preBuilt *PreBuiltObjects) {
	for i, dt := range ei.proto.directives {
		deps := DirectiveDeps{Injector: inj}
		if preBuilt != nil {
			deps.Element = preBuilt.Element
			deps.View = preBuilt.View
			deps.ViewPort = preBuilt.ViewPort
			deps.LightDom = preBuilt.LightDom
		}
		ei.directives[i] = dt.Factory(deps)
	}
}

// ClearDirectives drops all instances, keeping the slots.
func (ei *ElementInjector) ClearDirectives() {
	for i := range ei.directives {
		ei.directives[i] = nil
	}
}

// GetAtIndex returns the directive instance at the given sub-index, or nil
// before hydration.
func (ei *ElementInjector) GetAtIndex(i int) any {
	if i < 0 || i >= len(ei.directives) {
		return nil
	}
	return ei.directives[i]
}

// GetComponent returns the component instance when the element hosts a
// component. By compiler convention the component is directive 0.
func (ei *ElementInjector) GetComponent() any {
	if !ei.proto.firstIsComponent {
		return nil
	}
	return ei.GetAtIndex(0)
}

// PreBuiltObjects bundles the per-element objects a directive factory may
// depend on. Built once at instantiation for every element with an injector;
// the view port and light DOM are referenced, not owned.
type PreBuiltObjects struct {
	View     *View
	Element  *dom.Node
	ViewPort *ViewPort
	LightDom LightDom
}
