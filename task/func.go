package task

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/viant/taskres/access"
	"github.com/viant/taskres/identity"
	"github.com/viant/taskres/internal/clock"
	"github.com/viant/taskres/internal/idgen"
	"github.com/viant/taskres/mem"
	"github.com/viant/taskres/permission"
	"github.com/viant/taskres/resource"
	"github.com/viant/taskres/tracing"
)

// ErrUnresolved is wrapped by Exec under strict resolution when a parameter
// type has no registration.
var ErrUnresolved = fmt.Errorf("unresolved resource")

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Option customizes a Func.
type Option func(f *Func)

// WithName sets the binding name; defaults to the callable's function name.
func WithName(name string) Option {
	return func(f *Func) { f.name = name }
}

// WithAllocator sets the allocator backing the binding's local registry.
func WithAllocator(allocator mem.Allocator) Option {
	return func(f *Func) { f.allocator = allocator }
}

// WithSpace sets the permission space the access signature is derived in.
// Bindings compared against each other must share one space.
func WithSpace(space *permission.Space) Option {
	return func(f *Func) { f.space = space }
}

// WithIdentities sets the identity space of the binding's local registry,
// normally shared with the root registry.
func WithIdentities(identities *identity.Registry) Option {
	return func(f *Func) { f.identities = identities }
}

// WithStrictResolution makes Exec fail on a missing resource instead of
// passing a typed nil into the callable. The choice is made once per
// binding domain, never per call.
func WithStrictResolution(strict bool) Option {
	return func(f *Func) { f.strict = strict }
}

// Func is a task binding: a callable plus its derived access signature and
// a binding-private resource registry.
type Func struct {
	id         string
	name       string
	callable   reflect.Value
	traits     []access.Trait
	perm       *permission.Permission
	local      *resource.Registry
	space      *permission.Space
	allocator  mem.Allocator
	identities *identity.Registry
	hasErr     bool
	strict     bool
}

// New wraps a callable whose parameters are each a *T, an access.View[T] or
// an access.Local[T], and which returns nothing or a single error. The
// access signature is computed here, once; construction is the only place a
// malformed signature or permission capacity overflow can surface.
func New(callable interface{}, options ...Option) (*Func, error) {
	cValue := reflect.ValueOf(callable)
	if !cValue.IsValid() || cValue.Kind() != reflect.Func {
		return nil, fmt.Errorf("callable must be a func, got %T", callable)
	}
	cType := cValue.Type()
	switch cType.NumOut() {
	case 0:
	case 1:
		// the error interface itself, not a concrete error type
		if cType.Out(0) != errType {
			return nil, fmt.Errorf("callable result must be error, got %s", cType.Out(0))
		}
	default:
		return nil, fmt.Errorf("callable must return nothing or error, got %v results", cType.NumOut())
	}

	ret := &Func{
		id:       idgen.New(),
		callable: cValue,
		hasErr:   cType.NumOut() == 1,
	}
	for _, option := range options {
		option(ret)
	}
	if ret.space == nil {
		ret.space = permission.NewSpace()
	}
	if ret.name == "" {
		ret.name = funcName(cValue)
	}

	ret.perm = ret.space.New()
	ret.traits = make([]access.Trait, 0, cType.NumIn())
	for i := 0; i < cType.NumIn(); i++ {
		trait, err := access.ForType(cType.In(i))
		if err != nil {
			return nil, fmt.Errorf("parameter %v of %s: %w", i, ret.name, err)
		}
		if err = trait.Mark(ret.perm); err != nil {
			return nil, fmt.Errorf("parameter %v of %s: %w", i, ret.name, err)
		}
		ret.traits = append(ret.traits, trait)
	}
	ret.local = resource.New(ret.allocator, resource.WithIdentities(ret.identities))
	return ret, nil
}

// ID returns the binding identifier.
func (f *Func) ID() string {
	return f.id
}

// Name returns the binding name.
func (f *Func) Name() string {
	return f.name
}

// Permission returns the precomputed access signature. Callers must treat
// it as immutable.
func (f *Func) Permission() *permission.Permission {
	return f.perm
}

// ConflictsWith reports whether two bindings must not execute concurrently.
// Both bindings must share one permission space (see WithSpace); comparing
// bindings from unrelated spaces panics.
func (f *Func) ConflictsWith(other *Func) bool {
	return f.perm.ConflictsWith(other.perm)
}

// Local returns the binding-private registry. Exposed for setup code that
// seeds private state before the first exec.
func (f *Func) Local() *resource.Registry {
	return f.local
}

// Exec resolves every parameter against the supplied registry and the
// binding's local registry, then invokes the callable synchronously in
// parameter order on the calling thread. Safe concurrency with other
// bindings is entirely the caller's contract, established via permissions.
func (f *Func) Exec(ctx context.Context, registry *resource.Registry) error {
	if registry == nil {
		return fmt.Errorf("failed to exec %s: registry was nil", f.name)
	}
	started := clock.Now()
	_, span := tracing.StartSpan(ctx, "task.exec")
	span.WithAttributes(map[string]string{"task.name": f.name, "task.id": f.id})

	err := f.invoke(registry)

	span.WithAttributes(map[string]string{"task.elapsed": clock.Now().Sub(started).String()})
	tracing.EndSpan(span, err)
	return err
}

func (f *Func) invoke(registry *resource.Registry) error {
	args := make([]reflect.Value, len(f.traits))
	for i, trait := range f.traits {
		args[i] = trait.Resolve(registry, f.local)
		if f.strict && !access.Resolved(args[i]) {
			return fmt.Errorf("%w: %s (parameter %v of %s)", ErrUnresolved, trait.Resource(), i, f.name)
		}
	}
	results := f.callable.Call(args)
	if f.hasErr {
		if errValue := results[0]; !errValue.IsNil() {
			return errValue.Interface().(error)
		}
	}
	return nil
}

// Close releases the binding's local owned values in reverse construction
// order.
func (f *Func) Close() error {
	return f.local.Close()
}

// funcName derives a short name from the callable's symbol, stripping the
// package path prefix.
func funcName(callable reflect.Value) string {
	fn := runtime.FuncForPC(callable.Pointer())
	if fn == nil {
		return "anonymous"
	}
	name := fn.Name()
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "."); idx != -1 {
		name = name[idx+1:]
	}
	if name == "" {
		return "anonymous"
	}
	return name
}
