package el

import (
	"strings"
	"testing"

	"github.com/facet-ui/facet/pkg/dom"
	"github.com/facet-ui/facet/pkg/view"
)

func TestElBuildsTree(t *testing.T) {
	n := Div(
		Class("card"),
		H1("Title"),
		P("body text"),
	)

	if got := len(n.ChildNodes()); got != 2 {
		t.Fatalf("children = %d, want 2", got)
	}
	if !n.HasClass("card") {
		t.Error("missing class card")
	}
	h1 := n.ChildNodes()[0]
	if h1.Tag != "h1" {
		t.Errorf("first child tag = %q, want h1", h1.Tag)
	}
	if got := h1.FirstChild().Text(); got != "Title" {
		t.Errorf("heading text = %q, want Title", got)
	}
}

func TestStringBecomesTextChild(t *testing.T) {
	n := Button("Click me")
	child := n.FirstChild()
	if child == nil || child.Kind != dom.KindText {
		t.Fatalf("child = %+v, want text node", child)
	}
	if child.Text() != "Click me" {
		t.Errorf("text = %q", child.Text())
	}
}

func TestAttributeOptions(t *testing.T) {
	n := Input(Type("text"), Name("email"), Placeholder("you@example.com"))
	for key, want := range map[string]string{
		"type":        "text",
		"name":        "email",
		"placeholder": "you@example.com",
	} {
		got, ok := n.Attr(key)
		if !ok || got != want {
			t.Errorf("attr %s = %q (%v), want %q", key, got, ok, want)
		}
	}
}

func TestBoundAddsBindingClass(t *testing.T) {
	n := P(Bound(), "")
	if !n.HasClass(view.BindingClass) {
		t.Error("bound element missing binding class")
	}
}

func TestNilArgumentsSkipped(t *testing.T) {
	n := Div(nil, Span("a"), nil)
	if got := len(n.ChildNodes()); got != 1 {
		t.Errorf("children = %d, want 1", got)
	}
}

func TestUnsupportedArgumentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unsupported argument")
		}
	}()
	Div(42)
}

func TestRendersExpectedHTML(t *testing.T) {
	n := Div(Class("box"), A(Href("/docs"), "Docs"))
	html := dom.RenderHTML(n)
	if !strings.Contains(html, `class="box"`) {
		t.Errorf("html = %q, missing class attr", html)
	}
	if !strings.Contains(html, `href="/docs"`) {
		t.Errorf("html = %q, missing href", html)
	}
	if !strings.Contains(html, ">Docs</a>") {
		t.Errorf("html = %q, missing anchor text", html)
	}
}
