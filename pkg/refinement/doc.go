// Package refinement resolves method dispatch through scoped overrides.
//
// An OverrideSet bundles replacement implementations for (type, method)
// pairs. A set has no effect until it is activated inside a Region; from
// then on it is visible to every dispatch performed in that region and in
// regions nested inside it, and it disappears again when the region exits.
// Activation never leaks to sibling or enclosing regions.
//
// Dispatch order is:
//
//  1. frames on the calling ExecContext's ScopeStack, most recent first;
//  2. sets attached to the receiver's type (or one of its ancestors) because
//     they were activated while that type was being defined;
//  3. the host's base implementation.
//
// Method bodies do not inherit their caller's activations. A base method
// that calls another method on its receiver sees only the scope it was
// defined in, so overriding M never changes what an unrelated method
// observes when it calls M internally.
//
// The package talks to its host through TypeSystem and BaseDispatcher and
// carries the per-goroutine ExecContext in a context.Context.
package refinement
