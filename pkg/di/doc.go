// Package di implements the hierarchical dependency-injection container that
// backs component service scopes.
//
// An Injector resolves string tokens to instances through a parent chain:
// each injector caches the instances it constructs, and a lookup that misses
// locally walks up to the parent. Component-scoped services are modeled by
// creating a child injector per component that declares its own bindings;
// components without service declarations share their parent's injector.
package di
