package identity

import (
	"reflect"
	"sync"
)

// ID is a dense integer identity of a type. The zero value means the type
// has no identity assigned in a given Registry.
type ID int

// Unassigned is returned by Lookup for types that were never seen.
const Unassigned ID = 0

// Registry allocates identities per distinct reflect.Type. Identities are
// monotonically increasing, never reused and stable for the lifetime of the
// registry.
type Registry struct {
	mux  sync.RWMutex
	ids  map[reflect.Type]ID
	next ID
}

// New creates an empty identity registry.
func New() *Registry {
	return &Registry{ids: make(map[reflect.Type]ID)}
}

// ID returns the identity of aType, assigning the next unused one on first
// use.
func (r *Registry) ID(aType reflect.Type) ID {
	r.mux.RLock()
	id, ok := r.ids[aType]
	r.mux.RUnlock()
	if ok {
		return id
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	if id, ok = r.ids[aType]; ok {
		return id
	}
	r.next++
	r.ids[aType] = r.next
	return r.next
}

// Lookup returns the identity of aType or Unassigned when the type was never
// registered.
func (r *Registry) Lookup(aType reflect.Type) ID {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.ids[aType]
}

// Count returns the number of assigned identities.
func (r *Registry) Count() int {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.ids)
}

// Reset removes all assignments; subsequent allocation restarts at 1. Meant
// for test isolation, never for production use.
func (r *Registry) Reset() {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.ids = make(map[reflect.Type]ID)
	r.next = 0
}

// TypeOf returns the reflect.Type for the type parameter T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Of returns the identity of T, assigning one on first use.
func Of[T any](r *Registry) ID {
	return r.ID(TypeOf[T]())
}

// LookupOf returns the identity of T or Unassigned.
func LookupOf[T any](r *Registry) ID {
	return r.Lookup(TypeOf[T]())
}
