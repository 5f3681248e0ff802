package view

import (
	"github.com/facet-ui/facet/pkg/change"
	"github.com/facet-ui/facet/pkg/dom"
)

// BindingClass is the marker class the compiler puts on every bound element
// so instantiation can collect them in document order with one query.
const BindingClass = "fx-binding"

// ProtoView is the compile-time template descriptor and the factory for live
// Views. It is immutable after the compiler finishes registering bindings.
type ProtoView struct {
	// Element is the template root. The proto view owns this subtree; it is
	// cloned on every instantiation unless InstantiateInPlace is set.
	Element *dom.Node

	// InstantiateInPlace uses the root element itself as the instantiation
	// root instead of cloning. Only the synthetic root view sets this.
	InstantiateInPlace bool

	// RootBindingOffset is 1 when the root element itself carries bindings,
	// shifting binder-to-node index alignment by one. The root element is
	// not part of the descendant marker query, so binder 0 maps to the root
	// clone directly.
	RootBindingOffset int

	// Formatters is the evaluation environment handed to every record range
	// instantiated from this proto view.
	Formatters map[string]change.FormatterFunc

	strategy           ShadowDomStrategy
	elementBinders     []*ElementBinder
	protoRecordRange   *change.ProtoRecordRange
	variableBindings   map[string]string // local name -> template name
	protoContextLocals map[string]any    // template name -> nil
	textNodeCount      int
	boundElementCount  int
	groups             map[groupKey]*DirectivePropertyGroup
}

// NewProtoView creates a proto view over a template root. The strategy
// decides component template attachment and content redistribution.
func NewProtoView(element *dom.Node, protoRecordRange *change.ProtoRecordRange, strategy ShadowDomStrategy) *ProtoView {
	return &ProtoView{
		Element:            element,
		strategy:           strategy,
		protoRecordRange:   protoRecordRange,
		variableBindings:   make(map[string]string),
		protoContextLocals: make(map[string]any),
		groups:             make(map[groupKey]*DirectivePropertyGroup),
	}
}

// ElementBinders returns the binders in declaration order.
func (pv *ProtoView) ElementBinders() []*ElementBinder { return pv.elementBinders }

// ProtoRecordRange returns the watch-record template.
func (pv *ProtoView) ProtoRecordRange() *change.ProtoRecordRange { return pv.protoRecordRange }

// BindElement appends a binder for the next bound element. Call order
// defines the stable binder index used throughout instantiation. component
// and template may be nil; a component must be the proto injector's first
// directive.
func (pv *ProtoView) BindElement(pei *ProtoElementInjector, component, template *DirectiveType) *ElementBinder {
	if pei != nil && component != nil {
		pei.firstIsComponent = true
	}
	binder := &ElementBinder{
		ProtoElementInjector: pei,
		ComponentDirective:   component,
		TemplateDirective:    template,
	}
	pv.elementBinders = append(pv.elementBinders, binder)
	return binder
}

// BindVariable declares a local-reference binding: name is what SetLocal
// callers use, templateName is the slot expressions read.
func (pv *ProtoView) BindVariable(name, templateName string) {
	pv.variableBindings[name] = templateName
	pv.protoContextLocals[templateName] = nil
}

// BindTextNode binds the text node at the given child index of the current
// (most recently added) binder's element. Text-node slots number upward
// across the whole proto view.
func (pv *ProtoView) BindTextNode(indexInParent int, expr change.Expr) {
	binder := pv.currentBinder()
	binder.textNodeIndices = append(binder.textNodeIndices, indexInParent)
	memento := &TextNodeTarget{Index: pv.textNodeCount}
	pv.textNodeCount++
	pv.protoRecordRange.AddRecordsFromAST(expr, memento, nil, false)
}

// BindElementProperty binds a property of the current binder's element. The
// element joins the dense bound-element sequence on its first property
// binding.
func (pv *ProtoView) BindElementProperty(expr change.Expr, property string, setter ElementSetter) {
	binder := pv.currentBinder()
	if !binder.hasElementPropertyBindings {
		binder.hasElementPropertyBindings = true
		pv.boundElementCount++
	}
	memento := &ElementPropertyTarget{
		ElementIndex: pv.boundElementCount - 1,
		Property:     property,
		Setter:       setter,
	}
	pv.protoRecordRange.AddRecordsFromAST(expr, memento, nil, false)
}

// BindEvent binds a DOM event of the current binder's element to an
// expression evaluated against the view context, with the event exposed as
// the $event local.
func (pv *ProtoView) BindEvent(eventName string, expr change.Expr) {
	binder := pv.currentBinder()
	if binder.events == nil {
		binder.events = make(map[string]change.Expr)
	}
	binder.events[eventName] = expr
}

// BindDirectiveProperty binds a property of directive directiveIndex on the
// current binder's element. All property bindings of one directive share an
// interned group memento so simultaneous changes arrive as one notification.
func (pv *ProtoView) BindDirectiveProperty(directiveIndex int, expr change.Expr, property string, setter DirectiveSetter, isContentWatch bool) {
	binderIndex := len(pv.elementBinders) - 1
	group := pv.groupFor(binderIndex, directiveIndex)
	memento := &DirectivePropertyTarget{
		ElementInjectorIndex: binderIndex,
		DirectiveIndex:       directiveIndex,
		Property:             property,
		Setter:               setter,
	}
	pv.protoRecordRange.AddRecordsFromAST(expr, memento, group, isContentWatch)
}

// groupFor interns the group memento for an (elementInjector, directive)
// pair. Scoped to this proto view.
func (pv *ProtoView) groupFor(elementInjectorIndex, directiveIndex int) *DirectivePropertyGroup {
	key := groupKey{elementInjectorIndex, directiveIndex}
	if g, ok := pv.groups[key]; ok {
		return g
	}
	g := &DirectivePropertyGroup{
		ElementInjectorIndex: elementInjectorIndex,
		DirectiveIndex:       directiveIndex,
	}
	pv.groups[key] = g
	return g
}

func (pv *ProtoView) currentBinder() *ElementBinder {
	return pv.elementBinders[len(pv.elementBinders)-1]
}

// Instantiate stamps a new hydratable View out of the template. host is the
// element injector of the component hosting this view, nil for the root.
func (pv *ProtoView) Instantiate(host *ElementInjector) *View {
	rootClone := pv.Element
	if !pv.InstantiateInPlace {
		rootClone = pv.Element.Clone()
	}

	// Bound descendants in document order. A template-fragment root keeps
	// its children in the inert content fragment, so search there.
	var boundElements []*dom.Node
	var nodes []*dom.Node
	if rootClone.IsTemplate() {
		boundElements = rootClone.Content.QueryAllByClass(BindingClass)
		nodes = append(nodes, rootClone.Content.ChildNodes()...)
	} else {
		boundElements = rootClone.QueryAllByClass(BindingClass)
		nodes = append(nodes, rootClone)
	}

	v := newView(pv, nodes)

	binders := pv.elementBinders
	elementInjectors := make([]*ElementInjector, len(binders))
	lightDoms := make([]LightDom, len(binders))
	preBuiltObjects := make([]*PreBuiltObjects, len(binders))
	var rootElementInjectors []*ElementInjector
	var textNodes, bindElements []*dom.Node
	var viewPorts []*ViewPort
	var componentChildViews []*View

	for i, binder := range binders {
		// Root-binding offset arithmetic: the root element, if bound, is
		// not part of the descendant query result.
		var element *dom.Node
		if i == 0 && pv.RootBindingOffset == 1 {
			element = rootClone
		} else {
			element = boundElements[i-pv.RootBindingOffset]
		}

		// Parents precede children in binder order, so a parent's live
		// injector always exists by the time a child needs it.
		var ei *ElementInjector
		if pei := binder.ProtoElementInjector; pei != nil {
			if pei.Parent() != nil {
				ei = pei.Instantiate(elementInjectors[pei.Parent().Index()], nil)
			} else {
				ei = pei.Instantiate(nil, host)
				rootElementInjectors = append(rootElementInjectors, ei)
			}
		}
		elementInjectors[i] = ei

		if binder.hasElementPropertyBindings {
			bindElements = append(bindElements, element)
		}

		// Bound text nodes: indices are strictly increasing per binder, so
		// one forward sibling scan resolves them all.
		if len(binder.textNodeIndices) > 0 {
			node := element.FirstChild()
			pos := 0
			for _, idx := range binder.textNodeIndices {
				for pos < idx {
					node = node.NextSibling()
					pos++
				}
				textNodes = append(textNodes, node)
			}
		}

		// Nested component: instantiate its view, merge its record range so
		// one detection pass covers the composed tree, then attach its
		// template under the host element.
		var lightDom LightDom
		if binder.ComponentDirective != nil {
			childView := binder.NestedProtoView.Instantiate(ei)
			v.recordRange.AddRange(childView.recordRange)
			lightDom = pv.strategy.ConstructLightDom(v, childView, element)
			pv.strategy.AttachTemplate(element, childView)
			lightDoms[i] = lightDom
			componentChildViews = append(componentChildViews, childView)
		}

		// Structural directive: the view port's light-DOM destination is
		// the nearest ancestor component's, never this element's own,
		// which is why the component above is constructed first.
		var viewPort *ViewPort
		if binder.TemplateDirective != nil {
			var destLightDom LightDom
			if pei := binder.ProtoElementInjector; pei != nil && pei.Parent() != nil {
				destLightDom = lightDoms[pei.Parent().Index()]
			}
			viewPort = newViewPort(v, element, binder.NestedProtoView, ei, destLightDom)
			viewPorts = append(viewPorts, viewPort)
		}

		if ei != nil {
			preBuiltObjects[i] = &PreBuiltObjects{
				View:     v,
				Element:  element,
				ViewPort: viewPort,
				LightDom: lightDom,
			}
		}

		// Event listeners fire only for the bound element itself; events
		// bubbling up from descendants are ignored.
		for name, expr := range binder.events {
			boundEl, boundExpr := element, expr
			element.AddEventListener(name, func(e *dom.Event) {
				if e.Target != boundEl {
					return
				}
				v.dispatchDOMEvent(boundExpr, e)
			})
		}
	}

	v.init(elementInjectors, rootElementInjectors, textNodes, bindElements,
		viewPorts, preBuiltObjects, componentChildViews, lightDoms)
	return v
}

// CreateRootProtoView builds the synthetic top-level ProtoView used when
// bootstrapping rootComponent onto an existing DOM node. The node is marked
// as bound and instantiated in place; the single binder wraps the whole root
// component.
func CreateRootProtoView(insertionElement *dom.Node, rootComponent *DirectiveType, componentProtoView *ProtoView, strategy ShadowDomStrategy) *ProtoView {
	insertionElement.AddClass(BindingClass)
	pv := NewProtoView(insertionElement, change.NewProtoRecordRange(), strategy)
	pv.InstantiateInPlace = true
	pv.RootBindingOffset = 1
	binder := pv.BindElement(NewProtoElementInjector(nil, 0, rootComponent), rootComponent, nil)
	binder.NestedProtoView = componentProtoView
	return pv
}
