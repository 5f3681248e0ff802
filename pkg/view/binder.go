package view

import "github.com/facet-ui/facet/pkg/change"

// ElementBinder is the static binding metadata of one bound element. Binders
// are created through ProtoView.BindElement in binding-declaration order;
// their index is the stable element identifier used by all binding targets.
type ElementBinder struct {
	// ProtoElementInjector is the element's injector factory, nil when no
	// directives attach.
	ProtoElementInjector *ProtoElementInjector

	// ComponentDirective is set when the element hosts a component.
	ComponentDirective *DirectiveType

	// TemplateDirective is set when the element carries a structural
	// directive (the element is a template anchor).
	TemplateDirective *DirectiveType

	// NestedProtoView is the component's template or the structural
	// directive's embedded template.
	NestedProtoView *ProtoView

	// textNodeIndices are the child indices of bound text nodes, strictly
	// increasing in declaration order.
	textNodeIndices []int

	// hasElementPropertyBindings marks the element as part of the view's
	// dense bound-element sequence.
	hasElementPropertyBindings bool

	// events maps DOM event names to the expressions evaluated on dispatch.
	events map[string]change.Expr
}

// TextNodeIndices returns the bound text-node child indices.
func (b *ElementBinder) TextNodeIndices() []int { return b.textNodeIndices }

// HasElementPropertyBindings reports whether any element property is bound.
func (b *ElementBinder) HasElementPropertyBindings() bool { return b.hasElementPropertyBindings }

// Events returns the event-name to expression table, nil when no events are
// bound.
func (b *ElementBinder) Events() map[string]change.Expr { return b.events }
