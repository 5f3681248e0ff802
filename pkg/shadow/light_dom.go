package shadow

import (
	"strings"

	"github.com/facet-ui/facet/pkg/dom"
	"github.com/facet-ui/facet/pkg/view"
)

// LightDom holds a component host's original children and projects them into
// the component template's <content> insertion points.
type LightDom struct {
	lightDomView  *view.View
	shadowDomView *view.View
	host          *dom.Node

	// roots are the host children captured at construction, in order. The
	// list is fixed; view-port insertions next to a root are expanded
	// dynamically on each redistribution.
	roots []*dom.Node
}

func newLightDom(lightDomView, shadowDomView *view.View, host *dom.Node) *LightDom {
	ld := &LightDom{
		lightDomView:  lightDomView,
		shadowDomView: shadowDomView,
		host:          host,
	}
	ld.roots = append(ld.roots, host.ChildNodes()...)
	return ld
}

// Nodes returns the expanded light-DOM nodes: each captured root followed by
// any nodes a view port anchored on it has inserted.
func (ld *LightDom) Nodes() []*dom.Node {
	var out []*dom.Node
	for _, unit := range ld.units() {
		out = append(out, unit...)
	}
	return out
}

// units groups the expanded nodes so a view-port anchor and its inserted
// views redistribute as one block.
func (ld *LightDom) units() [][]*dom.Node {
	ports := make(map[*dom.Node]*view.ViewPort)
	for _, vp := range ld.lightDomView.ViewPorts() {
		ports[vp.Anchor()] = vp
	}
	var out [][]*dom.Node
	for _, root := range ld.roots {
		unit := []*dom.Node{root}
		if vp, ok := ports[root]; ok {
			for _, v := range vp.Views() {
				unit = append(unit, v.Nodes()...)
			}
		}
		out = append(out, unit)
	}
	return out
}

// Redistribute re-projects the light DOM into the template's insertion
// points. Each unit goes to the first <content> whose selector matches its
// leading node, falling back to the selector-less catch-all; units matching
// nothing are detached from the DOM. Redistribution is idempotent.
func (ld *LightDom) Redistribute() {
	contents := ld.contentElements()
	if len(contents) == 0 {
		return
	}
	var defaultContent *dom.Node
	for _, c := range contents {
		if sel, _ := c.Attr("select"); sel == "" {
			defaultContent = c
			break
		}
	}

	// Partition first, then move, so moves cannot disturb matching.
	assigned := make(map[*dom.Node][][]*dom.Node)
	for _, unit := range ld.units() {
		target := defaultContent
		for _, c := range contents {
			sel, _ := c.Attr("select")
			if sel != "" && selectorMatches(sel, unit[0]) {
				target = c
				break
			}
		}
		if target == nil {
			for _, n := range unit {
				n.Remove()
			}
			continue
		}
		assigned[target] = append(assigned[target], unit)
	}

	for _, c := range contents {
		for _, unit := range assigned[c] {
			for _, n := range unit {
				c.AppendChild(n)
			}
		}
	}
}

// contentElements collects <content> insertion points across the template
// view's root nodes, in document order.
func (ld *LightDom) contentElements() []*dom.Node {
	var out []*dom.Node
	for _, root := range ld.shadowDomView.Nodes() {
		if root.Kind == dom.KindElement && root.Tag == "content" {
			out = append(out, root)
		}
		out = append(out, root.QueryAllByTag("content")...)
	}
	return out
}

// selectorMatches supports the emulation's selector subset: a bare tag name
// or a ".class" selector. Non-element nodes only match the catch-all.
func selectorMatches(sel string, n *dom.Node) bool {
	if n.Kind != dom.KindElement {
		return false
	}
	if strings.HasPrefix(sel, ".") {
		return n.HasClass(sel[1:])
	}
	return n.Tag == sel
}
