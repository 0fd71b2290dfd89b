// Package identity assigns dense integer identities to Go types. Identities
// are allocated lazily on first use, start at 1 and are never reused; the
// zero identity always means "unassigned". A Registry is a process-lifetime
// object rather than a package global so that independent identity spaces
// (for example resource lookup vs permission bits) and test isolation are
// both possible.
package identity
