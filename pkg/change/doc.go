// Package change implements Facet's change-detection engine.
//
// A ProtoRecordRange is the compile-time template of everything a view
// watches: one proto record per bound expression, each carrying the memento
// that tells the view where a changed value must be applied. Instantiating a
// proto range against a dispatcher produces a RecordRange, a live
// subscription that can be re-pointed at a new context on every hydration
// without reallocating its records.
//
// Change detection is a discrete, externally driven pass: DetectChanges
// evaluates every record in declaration order, batches the changed records by
// their group memento, and invokes the dispatcher's OnRecordChange once per
// batch. Ranges nest: a component's child range is linked into its parent
// with AddRange so one pass covers the whole composed tree, with each range
// dispatching to its own view.
//
// Expressions are small ASTs (literal, property path, method call, formatter
// application) evaluated against an arbitrary context value by reflection.
// ContextWithLocals layers template-local variables over a parent context.
package change
