package view

import (
	"testing"

	"github.com/facet-ui/facet/pkg/change"
	"github.com/facet-ui/facet/pkg/di"
	"github.com/facet-ui/facet/pkg/dom"
)

// testStrategy attaches component templates without content projection.
type testStrategy struct{}

func (testStrategy) ConstructLightDom(_, _ *View, _ *dom.Node) LightDom { return nil }

func (testStrategy) AttachTemplate(el *dom.Node, shadowDomView *View) {
	for _, n := range shadowDomView.Nodes() {
		el.AppendChild(n)
	}
}

func boundEl(tag string) *dom.Node {
	el := dom.NewElement(tag)
	el.AddClass(BindingClass)
	return el
}

func newTestProtoView(root *dom.Node) *ProtoView {
	return NewProtoView(root, change.NewProtoRecordRange(), testStrategy{})
}

func TestInstantiateInjectorCountMatchesBinders(t *testing.T) {
	root := dom.NewElement("div")
	root.AppendChild(boundEl("span"))
	root.AppendChild(boundEl("p"))
	root.AppendChild(boundEl("em"))

	pv := newTestProtoView(root)
	dir := &DirectiveType{Name: "d", Factory: func(DirectiveDeps) any { return &struct{}{} }}
	pv.BindElement(NewProtoElementInjector(nil, 0, dir), nil, nil)
	pv.BindElement(nil, nil, nil)
	pv.BindElement(NewProtoElementInjector(nil, 2, dir), nil, nil)

	v := pv.Instantiate(nil)

	if got := len(v.ElementInjectors()); got != 3 {
		t.Fatalf("len(elementInjectors) = %d, want 3", got)
	}
	if v.ElementInjectors()[0] == nil {
		t.Error("binder 0 has directives but nil injector")
	}
	if v.ElementInjectors()[1] != nil {
		t.Error("binder 1 has no directives but non-nil injector (sequence must be sparse)")
	}
	if v.ElementInjectors()[2] == nil {
		t.Error("binder 2 has directives but nil injector")
	}
	if got := len(v.RootElementInjectors()); got != 2 {
		t.Errorf("len(rootElementInjectors) = %d, want 2", got)
	}
}

func TestInstantiateClonesTemplate(t *testing.T) {
	root := dom.NewElement("div")
	span := boundEl("span")
	root.AppendChild(span)

	pv := newTestProtoView(root)
	pv.BindElement(nil, nil, nil)

	a := pv.Instantiate(nil)
	b := pv.Instantiate(nil)

	if a.Nodes()[0] == root {
		t.Error("instantiate used the template root instead of a clone")
	}
	if a.Nodes()[0] == b.Nodes()[0] {
		t.Error("two instantiations share DOM nodes")
	}
}

func TestInstantiateInjectorParentChain(t *testing.T) {
	root := dom.NewElement("div")
	outer := boundEl("section")
	inner := boundEl("span")
	outer.AppendChild(inner)
	root.AppendChild(outer)

	dir := &DirectiveType{Name: "d", Factory: func(DirectiveDeps) any { return &struct{}{} }}
	pv := newTestProtoView(root)
	outerPEI := NewProtoElementInjector(nil, 0, dir)
	pv.BindElement(outerPEI, nil, nil)
	pv.BindElement(NewProtoElementInjector(outerPEI, 1, dir), nil, nil)

	v := pv.Instantiate(nil)

	eis := v.ElementInjectors()
	if eis[1].Parent() != eis[0] {
		t.Error("child injector's parent is not the outer element's injector")
	}
	if got := len(v.RootElementInjectors()); got != 1 {
		t.Errorf("len(rootElementInjectors) = %d, want 1", got)
	}
}

func TestRootBindingOffset(t *testing.T) {
	root := dom.NewElement("div")
	root.AddClass(BindingClass)
	inner := boundEl("span")
	root.AppendChild(inner)

	pv := newTestProtoView(root)
	pv.RootBindingOffset = 1
	pv.BindElement(nil, nil, nil)
	pv.BindElementProperty(change.Path("title"), "title", func(el *dom.Node, v any) {
		el.SetAttr("title", v.(string))
	})
	pv.BindElement(nil, nil, nil)
	pv.BindElementProperty(change.Path("title"), "title", func(el *dom.Node, v any) {})

	v := pv.Instantiate(nil)

	if v.BindElements()[0] != v.Nodes()[0] {
		t.Error("bindElements[0] is not the cloned root itself")
	}
	if v.BindElements()[1].Tag != "span" {
		t.Errorf("bindElements[1].Tag = %q, want span", v.BindElements()[1].Tag)
	}
}

func TestTextNodeResolutionByChildIndex(t *testing.T) {
	root := dom.NewElement("div")
	span := boundEl("span")
	span.AppendChild(dom.NewElement("b"))
	span.AppendChild(dom.NewElement("i"))
	span.AppendChild(dom.NewText(""))
	root.AppendChild(span)

	pv := newTestProtoView(root)
	pv.BindElement(nil, nil, nil)
	pv.BindTextNode(2, change.Path("greeting"))

	v := pv.Instantiate(nil)

	if len(v.TextNodes()) != 1 {
		t.Fatalf("len(textNodes) = %d, want 1", len(v.TextNodes()))
	}
	// The resolved node is the third child of the cloned span.
	clonedSpan := v.Nodes()[0].FirstChild()
	if v.TextNodes()[0] != clonedSpan.ChildNodes()[2] {
		t.Error("text node resolved to the wrong child")
	}
}

func TestTextNodeMementoSlotsIncrease(t *testing.T) {
	root := dom.NewElement("div")
	a := boundEl("span")
	a.AppendChild(dom.NewText(""))
	b := boundEl("p")
	b.AppendChild(dom.NewElement("b"))
	b.AppendChild(dom.NewText(""))
	root.AppendChild(a)
	root.AppendChild(b)

	pv := newTestProtoView(root)
	pv.BindElement(nil, nil, nil)
	pv.BindTextNode(0, change.Path("first"))
	pv.BindElement(nil, nil, nil)
	pv.BindTextNode(1, change.Path("second"))

	v := pv.Instantiate(nil)
	inj := di.NewInjector(nil)
	if err := v.Hydrate(inj, nil, map[string]any{"first": "one", "second": "two"}); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if err := v.RecordRange().DetectChanges(); err != nil {
		t.Fatalf("DetectChanges: %v", err)
	}

	if got := v.TextNodes()[0].Text(); got != "one" {
		t.Errorf("textNodes[0] = %q, want one", got)
	}
	if got := v.TextNodes()[1].Text(); got != "two" {
		t.Errorf("textNodes[1] = %q, want two", got)
	}
}

func TestCreateRootProtoView(t *testing.T) {
	host := dom.NewElement("body")
	rootComponent := &DirectiveType{Name: "App", Factory: func(DirectiveDeps) any { return &struct{}{} }}

	appTemplate := dom.NewElement("main")
	componentPV := newTestProtoView(appTemplate)

	pv := CreateRootProtoView(host, rootComponent, componentPV, testStrategy{})

	if !pv.InstantiateInPlace {
		t.Error("InstantiateInPlace = false, want true")
	}
	if pv.RootBindingOffset != 1 {
		t.Errorf("RootBindingOffset = %d, want 1", pv.RootBindingOffset)
	}
	binders := pv.ElementBinders()
	if len(binders) != 1 {
		t.Fatalf("len(binders) = %d, want 1", len(binders))
	}
	if binders[0].ComponentDirective != rootComponent {
		t.Error("binder's component directive is not the root component type")
	}
	if !host.HasClass(BindingClass) {
		t.Error("insertion element not marked as bound")
	}

	v := pv.Instantiate(nil)
	if v.Nodes()[0] != host {
		t.Error("in-place instantiation cloned the insertion element")
	}
}

func TestTemplateFragmentRoot(t *testing.T) {
	li := boundEl("li")
	li.AppendChild(dom.NewText(""))
	tpl := dom.NewTemplate(li)

	pv := newTestProtoView(tpl)
	pv.BindElement(nil, nil, nil)
	pv.BindTextNode(0, change.Path("label"))

	v := pv.Instantiate(nil)

	if len(v.Nodes()) != 1 || v.Nodes()[0].Tag != "li" {
		t.Fatalf("nodes = %v, want the content fragment's li", v.Nodes())
	}
	if v.Nodes()[0] == li {
		t.Error("fragment child not cloned")
	}
}
