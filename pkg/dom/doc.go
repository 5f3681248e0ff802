// Package dom provides the in-memory DOM that Facet views are stamped onto.
//
// The tree is the server-side source of truth for a session's UI. Nodes are
// kind-discriminated (element, text, comment, fragment) and support the
// primitives the view engine needs: deep cloning, document-order queries by
// marker class, text and attribute mutation, event listeners with bubbling
// dispatch, and template elements carrying an inert content fragment.
//
// A Document owns node identity and records mutations. While recording is
// enabled, every observable change to an adopted node (text, attributes,
// subtree insertion/removal) is appended to the document's mutation log; the
// server layer drains the log after each change-detection pass and encodes it
// as a wire patch frame.
package dom
