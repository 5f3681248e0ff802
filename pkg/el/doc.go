// Package el is a small builder DSL for constructing DOM trees in Go.
//
// Element constructors take a variadic list of children and options:
//
//	el.Div(
//		el.H1("Hello"),
//		el.P(el.Bound(), el.Class("intro"), ""),
//		el.Button(el.Bound(), "Click me"),
//	)
//
// A *dom.Node argument becomes a child, a string becomes a text child, and
// an Option mutates the element itself. Bound marks the element for binding
// registration so a proto view can attach expressions to it.
package el
