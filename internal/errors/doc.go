// Package errors provides structured, actionable error messages for Facet.
//
// Every framework error carries a unique code (e.g. "F101") that maps to a
// registered message, a detailed explanation, and a documentation URL. Errors
// support wrapping so callers can use errors.Is and errors.As from the
// standard library.
//
// # Error Categories
//
// Errors are organized into categories:
//   - runtime: view lifecycle and dispatch errors (double hydration,
//     undeclared bindings)
//   - binding: expression and record-range errors
//   - di: dependency-injection errors (unknown token, disposed scope)
//   - protocol: wire protocol errors (malformed frames, size limits)
//   - config: project configuration errors
//   - upload: file store errors
//
// # Usage
//
//	err := errors.New(errors.CodeViewAlreadyHydrated).
//	    WithSuggestion("call Dehydrate before hydrating the view again")
//
//	if errors.HasCode(err, errors.CodeViewAlreadyHydrated) { ... }
package errors
