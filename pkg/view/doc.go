// Package view is Facet's view instantiation and data-binding engine.
//
// A ProtoView is the immutable output of the template compiler: a template
// DOM subtree plus one ElementBinder per bound element describing which
// directives attach, which properties, events, and text nodes are bound, and
// which nested templates exist. ProtoView.Instantiate stamps the template
// into a live View: it clones the DOM, builds the per-element injector tree,
// recursively instantiates nested component views, constructs view ports for
// structural directives, and registers DOM event listeners.
//
// A View moves between two lifecycle states. Hydrate gives it a context,
// re-points its record range, builds directive instances in every element
// injector, and recursively hydrates component child views; Dehydrate
// reverses that without destroying the structural allocations, so a view
// dropped from a view port can be re-inserted cheaply.
//
// The change-detection engine calls back into View.OnRecordChange with
// batches of changed records. Each record carries a binding target — a closed
// variant over text node, element property, and directive property — that the
// view resolves by index against its dense node/injector sequences.
package view
