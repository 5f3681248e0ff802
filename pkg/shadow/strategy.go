package shadow

import (
	"github.com/facet-ui/facet/pkg/dom"
	"github.com/facet-ui/facet/pkg/view"
)

// EmulatedStrategy projects host content into <content> insertion points.
type EmulatedStrategy struct{}

// ConstructLightDom captures the host element's current children as the
// component's light DOM. Must run before AttachTemplate.
func (EmulatedStrategy) ConstructLightDom(lightDomView, shadowDomView *view.View, el *dom.Node) view.LightDom {
	return newLightDom(lightDomView, shadowDomView, el)
}

// AttachTemplate mounts the component view's nodes under the host element.
// Captured light-DOM children remain in place until the first redistribution
// moves them into their insertion points.
func (EmulatedStrategy) AttachTemplate(el *dom.Node, shadowDomView *view.View) {
	for _, n := range shadowDomView.Nodes() {
		el.AppendChild(n)
	}
}

// NativeStrategy mounts component templates without content projection.
type NativeStrategy struct{}

// ConstructLightDom returns nil: native shadow DOM needs no emulation.
func (NativeStrategy) ConstructLightDom(_, _ *view.View, _ *dom.Node) view.LightDom {
	return nil
}

// AttachTemplate mounts the component view's nodes under the host element.
func (NativeStrategy) AttachTemplate(el *dom.Node, shadowDomView *view.View) {
	for _, n := range shadowDomView.Nodes() {
		el.AppendChild(n)
	}
}
