package view

import (
	"fmt"
	"log/slog"

	"github.com/facet-ui/facet/internal/errors"
	"github.com/facet-ui/facet/pkg/change"
	"github.com/facet-ui/facet/pkg/di"
	"github.com/facet-ui/facet/pkg/dom"
)

// View is one live instantiation of a ProtoView. A view is in exactly one of
// two states: hydrated (context set, directive instances populated, record
// range active) or dehydrated (context nil, instances cleared). Moving
// between the states never reallocates injectors, nodes, or watch records.
type View struct {
	protoView *ProtoView

	nodes                []*dom.Node
	elementInjectors     []*ElementInjector
	rootElementInjectors []*ElementInjector
	textNodes            []*dom.Node
	bindElements         []*dom.Node
	viewPorts            []*ViewPort
	preBuiltObjects      []*PreBuiltObjects
	componentChildViews  []*View
	lightDoms            []LightDom

	recordRange *change.RecordRange
	context     any
	locals      *change.ContextWithLocals
	hydrated    bool
}

func newView(pv *ProtoView, nodes []*dom.Node) *View {
	v := &View{protoView: pv, nodes: nodes}
	v.recordRange = pv.protoRecordRange.Instantiate(v, pv.Formatters)
	return v
}

func (v *View) init(elementInjectors, rootElementInjectors []*ElementInjector,
	textNodes, bindElements []*dom.Node, viewPorts []*ViewPort,
	preBuiltObjects []*PreBuiltObjects, componentChildViews []*View,
	lightDoms []LightDom) {
	v.elementInjectors = elementInjectors
	v.rootElementInjectors = rootElementInjectors
	v.textNodes = textNodes
	v.bindElements = bindElements
	v.viewPorts = viewPorts
	v.preBuiltObjects = preBuiltObjects
	v.componentChildViews = componentChildViews
	v.lightDoms = lightDoms
}

// ProtoView returns the descriptor this view was stamped from.
func (v *View) ProtoView() *ProtoView { return v.protoView }

// Nodes returns the view's root-level DOM nodes.
func (v *View) Nodes() []*dom.Node { return v.nodes }

// ElementInjectors returns the sparse injector sequence, index-aligned with
// the proto view's element binders.
func (v *View) ElementInjectors() []*ElementInjector { return v.elementInjectors }

// RootElementInjectors returns the injectors with no parent in this view.
func (v *View) RootElementInjectors() []*ElementInjector { return v.rootElementInjectors }

// TextNodes returns the dense bound text-node sequence.
func (v *View) TextNodes() []*dom.Node { return v.textNodes }

// BindElements returns the dense bound-element sequence.
func (v *View) BindElements() []*dom.Node { return v.bindElements }

// ViewPorts returns the view's structural-directive anchors.
func (v *View) ViewPorts() []*ViewPort { return v.viewPorts }

// ComponentChildViews returns the nested component views in binder order.
func (v *View) ComponentChildViews() []*View { return v.componentChildViews }

// RecordRange returns the view's live change-detection subscription.
func (v *View) RecordRange() *change.RecordRange { return v.recordRange }

// Context returns the current data-binding root, nil when dehydrated.
func (v *View) Context() any { return v.context }

// Hydrated reports the lifecycle state.
func (v *View) Hydrated() bool { return v.hydrated }

// Hydrate attaches the view to a context. appInjector is the service scope
// directives are built in; hostElementInjector is the injector of the
// element hosting this view (nil for the root view).
//
// Hydration is two-pass: pass one instantiates directives element by element
// and recursively hydrates nested component views; pass two redistributes
// light DOM for every component host, because redistribution depends on
// sibling components having instantiated their content already.
func (v *View) Hydrate(appInjector *di.Injector, hostElementInjector *ElementInjector, context any) error {
	if v.hydrated {
		return errors.New(errors.CodeViewAlreadyHydrated)
	}
	v.hydrated = true

	if len(v.protoView.variableBindings) > 0 {
		locals := make(map[string]any, len(v.protoView.protoContextLocals))
		for name, val := range v.protoView.protoContextLocals {
			locals[name] = val
		}
		v.locals = change.NewContextWithLocals(context, locals)
		v.context = v.locals
	} else {
		v.locals = nil
		v.context = context
	}
	v.recordRange.SetContext(v.context)

	for _, vp := range v.viewPorts {
		vp.hydrate(appInjector, hostElementInjector)
	}

	// Pass one: build directives, descend into component views.
	childIndex := 0
	for i, binder := range v.protoView.elementBinders {
		ei := v.elementInjectors[i]
		if ei == nil {
			continue
		}
		scope := appInjector
		if binder.ComponentDirective != nil && len(binder.ComponentDirective.Services) > 0 {
			scope = appInjector.CreateChild(binder.ComponentDirective.Services)
		}
		ei.InstantiateDirectives(scope, v.preBuiltObjects[i])
		if binder.ComponentDirective != nil {
			childView := v.componentChildViews[childIndex]
			childIndex++
			if err := childView.Hydrate(scope, ei, ei.GetComponent()); err != nil {
				return err
			}
		}
	}

	// Pass two: content redistribution.
	for _, ld := range v.lightDoms {
		if ld != nil {
			ld.Redistribute()
		}
	}
	return nil
}

// Dehydrate reverses Hydrate in opposite order: component child views first,
// then directive instances, then view ports, then the context. Nodes stay
// attached to their DOM parent; only logical state is reset, so the view can
// be rehydrated without rebuilding injectors or watch records.
func (v *View) Dehydrate() {
	for _, childView := range v.componentChildViews {
		childView.Dehydrate()
	}
	for _, ei := range v.elementInjectors {
		if ei != nil {
			ei.ClearDirectives()
		}
	}
	if v.viewPorts != nil {
		for _, vp := range v.viewPorts {
			vp.dehydrate()
		}
	}
	v.context = nil
	v.locals = nil
	v.recordRange.SetContext(nil)
	v.hydrated = false
}

// SetLocal writes a declared local-reference binding. It fails with an
// invalid-state error on a dehydrated view and with an undeclared-binding
// error when the name is not in the proto view's variable-binding table.
func (v *View) SetLocal(name string, value any) error {
	if !v.hydrated {
		return errors.New(errors.CodeViewNotHydrated).
			WithMessagef("cannot set local %q on a dehydrated view", name)
	}
	templateName, ok := v.protoView.variableBindings[name]
	if !ok {
		return errors.New(errors.CodeUndeclaredBinding).
			WithMessagef("local binding %q is not declared", name)
	}
	v.locals.Set(templateName, value)
	return nil
}

// OnRecordChange dispatches one batch of changed records. Each record's
// target resolves its destination by index: a directive property through the
// element-injector sequence, an element property through the dense
// bound-element sequence, or a text node through the text-node sequence.
//
// When the batch belongs to a directive-property group and the directive
// implements OnChangeHandler, the directive additionally receives exactly
// one aggregated notification keyed by property name.
func (v *View) OnRecordChange(group any, records []*change.Record) {
	for _, r := range records {
		switch target := r.Target().(type) {
		case *DirectivePropertyTarget:
			directive := v.elementInjectors[target.ElementInjectorIndex].GetAtIndex(target.DirectiveIndex)
			target.Setter(directive, r.Current)
		case *ElementPropertyTarget:
			target.Setter(v.bindElements[target.ElementIndex], r.Current)
		case *TextNodeTarget:
			v.textNodes[target.Index].SetText(stringify(r.Current))
		}
	}

	if g, ok := group.(*DirectivePropertyGroup); ok {
		directive := v.elementInjectors[g.ElementInjectorIndex].GetAtIndex(g.DirectiveIndex)
		if handler, ok := directive.(OnChangeHandler); ok {
			changes := make(map[string]PropertyUpdate, len(records))
			for _, r := range records {
				if target, ok := r.Target().(*DirectivePropertyTarget); ok {
					changes[target.Property] = PropertyUpdate{Current: r.Current, Previous: r.Previous}
				}
			}
			handler.OnChange(changes)
		}
	}
}

// dispatchDOMEvent evaluates a bound event expression against the view's
// context with the event exposed as $event. Dehydrated views swallow events.
func (v *View) dispatchDOMEvent(expr change.Expr, e *dom.Event) {
	if !v.hydrated {
		return
	}
	scope := change.NewContextWithLocals(v.context, map[string]any{"$event": e})
	if _, err := expr.Eval(scope, &change.Env{Formatters: v.protoView.Formatters}); err != nil {
		slog.Error("event expression failed", "event", e.Type, "expr", expr.String(), "error", err)
	}
}

// stringify renders a bound value for text-node content.
func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
