package el

import (
	"fmt"

	"github.com/facet-ui/facet/pkg/dom"
	"github.com/facet-ui/facet/pkg/view"
)

// Option mutates the element being built.
type Option func(*dom.Node)

// El builds an element with the given tag. Arguments are applied in order:
// *dom.Node and string append children, Option values configure the element.
// Any other argument type panics; builders run at startup, so a bad tree
// fails loudly instead of rendering wrong.
func El(tag string, args ...any) *dom.Node {
	n := dom.NewElement(tag)
	for _, arg := range args {
		switch a := arg.(type) {
		case *dom.Node:
			n.AppendChild(a)
		case string:
			n.AppendChild(dom.NewText(a))
		case Option:
			a(n)
		case nil:
			// Skipped so callers can pass conditional children.
		default:
			panic(fmt.Sprintf("el: unsupported argument %T in <%s>", arg, tag))
		}
	}
	return n
}

// Text builds a standalone text node.
func Text(s string) *dom.Node { return dom.NewText(s) }

// Textf builds a text node from a format string.
func Textf(format string, args ...any) *dom.Node {
	return dom.NewText(fmt.Sprintf(format, args...))
}

// Class adds one or more CSS classes.
func Class(names ...string) Option {
	return func(n *dom.Node) {
		for _, name := range names {
			n.AddClass(name)
		}
	}
}

// Attr sets an attribute.
func Attr(key, value string) Option {
	return func(n *dom.Node) { n.SetAttr(key, value) }
}

// Bound marks the element as a binding target, so a proto view compiled over
// the tree registers it for element bindings.
func Bound() Option {
	return func(n *dom.Node) { n.AddClass(view.BindingClass) }
}

// Common attribute shorthands.

func Href(url string) Option      { return Attr("href", url) }
func Src(url string) Option       { return Attr("src", url) }
func Type(t string) Option        { return Attr("type", t) }
func Name(name string) Option     { return Attr("name", name) }
func Value(v string) Option       { return Attr("value", v) }
func Placeholder(p string) Option { return Attr("placeholder", p) }
func For(id string) Option        { return Attr("for", id) }
func Alt(text string) Option      { return Attr("alt", text) }
func Disabled() Option            { return Attr("disabled", "") }
