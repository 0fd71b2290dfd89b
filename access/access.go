package access

import (
	"fmt"
	"reflect"

	"github.com/viant/taskres/identity"
	"github.com/viant/taskres/permission"
	"github.com/viant/taskres/resource"
)

// ErrUnsupportedParameter is wrapped when a callable parameter is neither a
// pointer nor one of the access shapes.
var ErrUnsupportedParameter = fmt.Errorf("unsupported parameter shape")

// Trait describes one parameter shape: the resource type it binds, the
// permission bits it contributes and how its value is fetched at exec time.
type Trait interface {
	// Resource returns the bound resource type.
	Resource() reflect.Type
	// Mark contributes the shape's bits to the permission.
	Mark(p *permission.Permission) error
	// Resolve fetches the parameter value from the registries.
	Resolve(global, local *resource.Registry) reflect.Value
}

var traitType = reflect.TypeOf((*Trait)(nil)).Elem()

// ForType returns the trait for a callable parameter type.
func ForType(aType reflect.Type) (Trait, error) {
	if aType.Implements(traitType) {
		return reflect.Zero(aType).Interface().(Trait), nil
	}
	if aType.Kind() == reflect.Ptr {
		return mutable{target: aType.Elem()}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedParameter, aType)
}

// Resolved reports whether a resolved parameter value carries a live
// pointer. Used by bindings running under strict resolution.
func Resolved(value reflect.Value) bool {
	if value.Kind() == reflect.Ptr {
		return !value.IsNil()
	}
	if shape, ok := value.Interface().(interface{ Valid() bool }); ok {
		return shape.Valid()
	}
	return true
}

// mutable is the *T shape: exclusive access, read and write bits, fetched
// from the global registry.
type mutable struct {
	target reflect.Type
}

func (m mutable) Resource() reflect.Type {
	return m.target
}

func (m mutable) Mark(p *permission.Permission) error {
	if err := p.MarkRead(m.target); err != nil {
		return err
	}
	return p.MarkWrite(m.target)
}

func (m mutable) Resolve(global, _ *resource.Registry) reflect.Value {
	return global.ResolvePointer(m.target)
}

// View is the shared read-only shape. The callable receives it by value and
// must not mutate the pointed-to resource; the scheduler relies on the read
// bit being an honest declaration.
type View[T any] struct {
	ptr *T
}

// ViewOf wraps an existing pointer, mainly for calling view-shaped
// functions directly in tests.
func ViewOf[T any](ptr *T) View[T] {
	return View[T]{ptr: ptr}
}

// Ptr returns the underlying pointer, nil when the resource was never
// registered.
func (v View[T]) Ptr() *T {
	return v.ptr
}

// Valid reports whether the view carries a live pointer.
func (v View[T]) Valid() bool {
	return v.ptr != nil
}

// Resource returns the viewed resource type.
func (v View[T]) Resource() reflect.Type {
	return identity.TypeOf[T]()
}

// Mark contributes the read bit only.
func (v View[T]) Mark(p *permission.Permission) error {
	return permission.MarkRead[T](p)
}

// Resolve fetches the view from the global registry.
func (v View[T]) Resolve(global, _ *resource.Registry) reflect.Value {
	return reflect.ValueOf(View[T]{ptr: resource.Get[T](global)})
}

// Local is binding-private state resolved against the binding's local
// registry. The value is constructed lazily on first exec, owned by the
// binding and released with it; it survives across exec calls. Private
// state contributes no shared permission bits.
type Local[T any] struct {
	ptr *T
}

// Ptr returns the underlying pointer.
func (l Local[T]) Ptr() *T {
	return l.ptr
}

// Valid reports whether the state carries a live pointer.
func (l Local[T]) Valid() bool {
	return l.ptr != nil
}

// Resource returns the state type.
func (l Local[T]) Resource() reflect.Type {
	return identity.TypeOf[T]()
}

// Mark contributes nothing: local state is invisible to other bindings.
func (l Local[T]) Mark(_ *permission.Permission) error {
	return nil
}

// Resolve fetches the state from the local registry, constructing a zero
// value on first use.
func (l Local[T]) Resolve(_, local *resource.Registry) reflect.Value {
	ptr := resource.Get[T](local)
	if ptr == nil {
		ptr, _ = resource.Construct[T](local, nil)
	}
	return reflect.ValueOf(Local[T]{ptr: ptr})
}
