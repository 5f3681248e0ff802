package view

import (
	"github.com/facet-ui/facet/internal/errors"
	"github.com/facet-ui/facet/pkg/di"
	"github.com/facet-ui/facet/pkg/dom"
)

// ViewPort is the anchor a structural directive uses to insert and remove
// child views dynamically. The anchor element stays in the DOM; inserted
// views' nodes become its following siblings, in view order. The view port
// re-links each child view's record range into the parent view's range so
// the composed tree stays under one detection pass.
type ViewPort struct {
	parentView      *View
	anchor          *dom.Node
	protoView       *ProtoView
	elementInjector *ElementInjector
	lightDom        LightDom // nearest ancestor destination, may be nil

	views               []*View
	appInjector         *di.Injector
	hostElementInjector *ElementInjector
	hydrated            bool
}

func newViewPort(parentView *View, anchor *dom.Node, protoView *ProtoView, elementInjector *ElementInjector, lightDom LightDom) *ViewPort {
	return &ViewPort{
		parentView:      parentView,
		anchor:          anchor,
		protoView:       protoView,
		elementInjector: elementInjector,
		lightDom:        lightDom,
	}
}

// Anchor returns the anchor element.
func (vp *ViewPort) Anchor() *dom.Node { return vp.anchor }

// Views returns the currently inserted child views in order.
func (vp *ViewPort) Views() []*View { return vp.views }

// Len returns the number of inserted child views.
func (vp *ViewPort) Len() int { return len(vp.views) }

// Get returns the child view at index.
func (vp *ViewPort) Get(index int) *View { return vp.views[index] }

// Hydrated reports whether the owning view is hydrated.
func (vp *ViewPort) Hydrated() bool { return vp.hydrated }

// hydrate stores the injection scope child views will be created under.
// Called by the owning view, before directives are instantiated.
func (vp *ViewPort) hydrate(appInjector *di.Injector, hostElementInjector *ElementInjector) {
	vp.appInjector = appInjector
	vp.hostElementInjector = hostElementInjector
	vp.hydrated = true
}

// dehydrate removes and dehydrates all child views and drops the scope.
func (vp *ViewPort) dehydrate() {
	for len(vp.views) > 0 {
		vp.Remove(len(vp.views) - 1)
	}
	vp.appInjector = nil
	vp.hostElementInjector = nil
	vp.hydrated = false
}

// Create instantiates the port's proto view, hydrates it against the parent
// view's context, and inserts it after the last child view.
func (vp *ViewPort) Create() (*View, error) {
	if !vp.hydrated {
		return nil, errors.New(errors.CodeViewPortDehydrated)
	}
	v := vp.protoView.Instantiate(vp.hostElementInjector)
	if err := v.Hydrate(vp.appInjector, vp.hostElementInjector, vp.parentView.context); err != nil {
		return nil, err
	}
	vp.Insert(v, len(vp.views))
	return v, nil
}

// Insert places an already-instantiated view at the given position. The
// view's record range joins the parent view's range; when the port sits
// inside a component's light DOM, the destination is re-projected.
func (vp *ViewPort) Insert(v *View, atIndex int) {
	if atIndex < 0 || atIndex > len(vp.views) {
		atIndex = len(vp.views)
	}
	ref := vp.anchor
	if atIndex > 0 {
		prev := vp.views[atIndex-1].Nodes()
		if len(prev) > 0 {
			ref = prev[len(prev)-1]
		}
	}
	parent := vp.anchor.Parent()
	for _, node := range v.Nodes() {
		parent.InsertAfter(node, ref)
		ref = node
	}

	vp.views = append(vp.views[:atIndex], append([]*View{v}, vp.views[atIndex:]...)...)
	vp.parentView.recordRange.AddRange(v.recordRange)
	if vp.lightDom != nil {
		vp.lightDom.Redistribute()
	}
}

// Remove detaches the view at index and dehydrates it. The detached view is
// returned; it can be re-inserted later, re-hydrating on insertion is the
// caller's concern.
func (vp *ViewPort) Remove(atIndex int) *View {
	v := vp.Detach(atIndex)
	if v != nil {
		v.Dehydrate()
	}
	return v
}

// Detach removes the view at index from the DOM and the detection tree
// without dehydrating it.
func (vp *ViewPort) Detach(atIndex int) *View {
	if atIndex < 0 || atIndex >= len(vp.views) {
		return nil
	}
	v := vp.views[atIndex]
	vp.views = append(vp.views[:atIndex], vp.views[atIndex+1:]...)
	for _, node := range v.Nodes() {
		node.Remove()
	}
	v.recordRange.Detach()
	if vp.lightDom != nil {
		vp.lightDom.Redistribute()
	}
	return v
}
