// Package task binds independently authored callables to typed resources.
// A Func wraps a callable, derives its read/write access signature from the
// parameter list once at construction, owns a binding-private resource
// registry and resolves plus invokes the callable on demand. Schedulers
// compare the precomputed permissions pairwise to decide which bindings may
// run concurrently; Exec itself is synchronous and creates no goroutines.
package task
