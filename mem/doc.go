// Package mem defines the allocator collaborator consumed by owning
// containers. The Go runtime performs the actual heap allocation; an
// Allocator decides whether an owned value may be admitted and keeps account
// of live bytes, which lets a host constrain registries to an arena-like
// budget and lets tests inject allocation failures.
package mem
