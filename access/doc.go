// Package access maps callable parameter shapes to the permission bits they
// contribute and to the way their value is fetched from a resource registry.
// Three shapes are recognised:
//
//   - *T           mutable access, read and write bits
//   - View[T]      shared access, read bit only
//   - Local[T]     binding-private state, no shared bits
//
// Mutable and shared shapes resolve against the global registry; Local
// resolves against the binding's private registry. A missing resource
// resolves to a typed nil and is passed through unmodified.
package access
