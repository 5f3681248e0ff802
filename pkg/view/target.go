package view

import "github.com/facet-ui/facet/pkg/dom"

// ElementSetter applies a changed value to a DOM element.
type ElementSetter func(el *dom.Node, value any)

// DirectiveSetter applies a changed value to a directive instance.
type DirectiveSetter func(directive, value any)

// BindingTarget is the memento attached to a watch record. It remembers
// where a future value change must be applied without holding a live
// reference to the destination; the view resolves it by index at dispatch
// time. The variant set is closed: text node, element property, or directive
// property.
type BindingTarget interface {
	bindingTarget()
}

// TextNodeTarget addresses a bound text node by its index in the view's
// dense text-node sequence.
type TextNodeTarget struct {
	Index int
}

func (*TextNodeTarget) bindingTarget() {}

// ElementPropertyTarget addresses a property of a bound element by its index
// in the view's dense bound-element sequence.
type ElementPropertyTarget struct {
	ElementIndex int
	Property     string
	Setter       ElementSetter
}

func (*ElementPropertyTarget) bindingTarget() {}

// DirectivePropertyTarget addresses a property of a directive instance by
// element-injector index and directive sub-index.
type DirectivePropertyTarget struct {
	ElementInjectorIndex int
	DirectiveIndex       int
	Property             string
	Setter               DirectiveSetter
}

func (*DirectivePropertyTarget) bindingTarget() {}

// DirectivePropertyGroup is the shared group memento for all property
// bindings of one directive on one element. The change-detection engine
// batches simultaneous changes by group so the directive receives a single
// aggregated notification per pass. Groups are interned per ProtoView.
type DirectivePropertyGroup struct {
	ElementInjectorIndex int
	DirectiveIndex       int
}

// groupKey is the interning key for DirectivePropertyGroup.
type groupKey struct {
	elementInjectorIndex int
	directiveIndex       int
}

// PropertyUpdate is one entry in an aggregated directive change notification.
type PropertyUpdate struct {
	Current  any
	Previous any
}

// OnChangeHandler is implemented by directives that want a single aggregated
// callback per detection pass, keyed by property name.
type OnChangeHandler interface {
	OnChange(changes map[string]PropertyUpdate)
}
