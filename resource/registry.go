package resource

import (
	"fmt"
	"io"
	"reflect"

	"github.com/viant/taskres/identity"
	"github.com/viant/taskres/mem"
)

// Option customizes a Registry.
type Option func(r *Registry)

// WithIdentities shares an identity space between registries. Registries
// resolved against each other (for example a root registry and task local
// registries) should share one space.
func WithIdentities(identities *identity.Registry) Option {
	return func(r *Registry) {
		r.identities = identities
	}
}

// Registry holds one pointer per type identity plus the owned values it
// constructed. A later registration for the same type overwrites the lookup
// slot; an overwritten owned value stays alive in its original list position
// and is released together with all other owned values, in reverse
// construction order, when the registry closes.
type Registry struct {
	allocator  mem.Allocator
	identities *identity.Registry
	pointers   []any // dense table indexed by identity.ID, element is a typed pointer
	owned      []ownedEntry
}

type ownedEntry struct {
	value any // typed pointer to the owned cell
	size  uintptr
}

// New creates a registry bound to the supplied allocator. A nil allocator
// defaults to an unbounded counting allocator.
func New(allocator mem.Allocator, options ...Option) *Registry {
	ret := &Registry{allocator: allocator}
	for _, option := range options {
		option(ret)
	}
	if ret.allocator == nil {
		ret.allocator = mem.New()
	}
	if ret.identities == nil {
		ret.identities = identity.New()
	}
	return ret
}

// Identities returns the identity space the registry resolves against.
func (r *Registry) Identities() *identity.Registry {
	return r.identities
}

// Allocator returns the allocator the registry routes owned values through.
func (r *Registry) Allocator() mem.Allocator {
	return r.allocator
}

// OwnedCount returns the number of owned values, including overwritten ones
// that are still pending release.
func (r *Registry) OwnedCount() int {
	return len(r.owned)
}

// ResolvePointer returns the published pointer for aType as a reflect value
// of kind pointer-to-aType. Unregistered types yield a typed nil pointer.
func (r *Registry) ResolvePointer(aType reflect.Type) reflect.Value {
	id := r.identities.Lookup(aType)
	if ptr := r.pointer(id); ptr != nil {
		return reflect.ValueOf(ptr)
	}
	return reflect.Zero(reflect.PtrTo(aType))
}

// Has returns true when a pointer is published for aType.
func (r *Registry) Has(aType reflect.Type) bool {
	return r.pointer(r.identities.Lookup(aType)) != nil
}

// StoreValue copies value into a registry-owned cell and publishes its
// address. A pointer value transfers ownership of the pointed-to cell
// instead of copying. The returned interface holds the typed pointer.
func (r *Registry) StoreValue(value interface{}) (interface{}, error) {
	rValue := reflect.ValueOf(value)
	var ptr reflect.Value
	switch rValue.Kind() {
	case reflect.Ptr:
		if rValue.IsNil() {
			return nil, fmt.Errorf("cannot store nil %s", rValue.Type())
		}
		ptr = rValue
	case reflect.Invalid:
		return nil, fmt.Errorf("cannot store untyped nil value")
	default:
		ptr = reflect.New(rValue.Type())
		ptr.Elem().Set(rValue)
	}
	if err := r.adopt(ptr.Interface(), ptr.Type().Elem()); err != nil {
		return nil, err
	}
	return ptr.Interface(), nil
}

// Close releases owned values in strict reverse construction order. Owned
// values implementing io.Closer are closed; the first close error is
// returned after the teardown completes. Close is idempotent and borrowed
// pointers are left untouched.
func (r *Registry) Close() error {
	var err error
	for i := len(r.owned) - 1; i >= 0; i-- {
		entry := r.owned[i]
		if closer, ok := entry.value.(io.Closer); ok {
			if e := closer.Close(); e != nil && err == nil {
				err = e
			}
		}
		r.allocator.Release(entry.size)
	}
	r.owned = nil
	r.pointers = nil
	return err
}

// Move transfers all bindings and ownership into a new registry sharing the
// same allocator and identity space. The source is left empty and remains
// independently closeable.
func (r *Registry) Move() *Registry {
	ret := &Registry{
		allocator:  r.allocator,
		identities: r.identities,
		pointers:   r.pointers,
		owned:      r.owned,
	}
	r.pointers = nil
	r.owned = nil
	return ret
}

// Swap exchanges the contents of two registries, allocator and identity
// space included.
func (r *Registry) Swap(other *Registry) {
	r.allocator, other.allocator = other.allocator, r.allocator
	r.identities, other.identities = other.identities, r.identities
	r.pointers, other.pointers = other.pointers, r.pointers
	r.owned, other.owned = other.owned, r.owned
}

func (r *Registry) pointer(id identity.ID) any {
	if id == identity.Unassigned || int(id) >= len(r.pointers) {
		return nil
	}
	return r.pointers[id]
}

func (r *Registry) publish(id identity.ID, ptr any) {
	if int(id) >= len(r.pointers) {
		grown := make([]any, int(id)+1)
		copy(grown, r.pointers)
		r.pointers = grown
	}
	r.pointers[id] = ptr
}

// adopt charges the allocator, takes ownership of the cell and publishes its
// address; on allocator failure nothing is registered.
func (r *Registry) adopt(ptr any, aType reflect.Type) error {
	size := aType.Size()
	if err := r.allocator.Allocate(size); err != nil {
		return fmt.Errorf("failed to store %s: %w", aType, err)
	}
	r.owned = append(r.owned, ownedEntry{value: ptr, size: size})
	r.publish(r.identities.ID(aType), ptr)
	return nil
}

// Get returns the published pointer for T or nil when T was never
// registered or its identity lies beyond the live table.
func Get[T any](r *Registry) *T {
	ptr := r.pointer(identity.LookupOf[T](r.identities))
	if ptr == nil {
		return nil
	}
	return ptr.(*T)
}

// Borrow publishes a caller-owned pointer under T's identity, overwriting
// any prior registration's lookup slot. The registry never releases a
// borrowed pointer; an overwritten value remains the caller's
// responsibility.
func Borrow[T any](r *Registry, ptr *T) *T {
	r.publish(identity.Of[T](r.identities), ptr)
	return ptr
}

// Store copies value into a registry-owned cell and publishes its address.
// On allocator failure no partial registration escapes.
func Store[T any](r *Registry, value T) (*T, error) {
	cell := new(T)
	*cell = value
	if err := r.adopt(cell, identity.TypeOf[T]()); err != nil {
		return nil, err
	}
	return cell, nil
}

// Construct builds a T in place: the cell starts as the zero value and init,
// when non-nil, populates it before the address is published.
func Construct[T any](r *Registry, init func(*T)) (*T, error) {
	cell := new(T)
	if init != nil {
		init(cell)
	}
	if err := r.adopt(cell, identity.TypeOf[T]()); err != nil {
		return nil, err
	}
	return cell, nil
}
