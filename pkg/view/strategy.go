package view

import "github.com/facet-ui/facet/pkg/dom"

// LightDom is the content-projection object a shadow-DOM strategy produces
// for a component host element. Redistribute re-projects the host's light
// DOM into the component template's insertion points; it runs in hydration
// pass two and again after structural mutations near the host.
type LightDom interface {
	Redistribute()
}

// ShadowDomStrategy decides how a component's template view is attached to
// its host element and whether host content is redistributed. Implementations
// live in the shadow package.
type ShadowDomStrategy interface {
	// ConstructLightDom builds the projection object for el, or returns nil
	// when the strategy does not redistribute. Called before AttachTemplate
	// so the host's original children can be captured.
	ConstructLightDom(lightDomView, shadowDomView *View, el *dom.Node) LightDom

	// AttachTemplate mounts the component view's nodes under el.
	AttachTemplate(el *dom.Node, shadowDomView *View)
}
