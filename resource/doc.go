// Package resource provides a heterogeneous per-type-singleton registry.
// Values are keyed by their type identity: at most one pointer per type is
// published at a time. Entries are either borrowed (caller retains
// ownership) or owned (registry constructed, released in strict reverse
// construction order on Close).
//
// A Registry is not internally synchronized for mutation; borrow and store
// operations must be externally serialized, typically during a
// single-threaded setup phase. Lookups perform no registry mutation and are
// safe to run concurrently once setup has completed.
package resource
