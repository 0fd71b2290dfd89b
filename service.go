package taskres

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/taskres/extension"
	"github.com/viant/taskres/identity"
	"github.com/viant/taskres/mem"
	"github.com/viant/taskres/permission"
	"github.com/viant/taskres/resource"
	"github.com/viant/taskres/service/descriptor"
	"github.com/viant/taskres/service/meta"
	"github.com/viant/taskres/task"
	"github.com/viant/x"
)

// Service wires one binding domain: a shared identity space, a permission
// space, a root resource registry and the declarative descriptor layer.
// Bindings created by the same service share the permission space and are
// therefore directly comparable for conflicts.
type Service struct {
	config            *Config
	tracingErr        error
	allocator         mem.Allocator
	identities        *identity.Registry
	space             *permission.Space
	resources         *resource.Registry
	tasks             *extension.Tasks
	descriptorService *descriptor.Service
	metaService       *meta.Service
	metaBaseURL       string
	metaFsOptions     []storage.Option
	extensionTypes    []*x.Type
}

// New creates a service. Construction fails on an invalid configuration or
// a tracing initialisation failure.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	if err := ret.ensureConfig().Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if ret.tracingErr != nil {
		return nil, ret.tracingErr
	}
	ret.ensureBaseSetup()
	return ret, nil
}

func (s *Service) ensureConfig() *Config {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	return s.config
}

func (s *Service) ensureBaseSetup() {
	s.ensureConfig()
	if s.allocator == nil {
		if budget := s.config.Memory.Budget; budget > 0 {
			s.allocator = mem.NewBudget(budget)
		} else {
			s.allocator = mem.New()
		}
	}
	s.identities = identity.New()
	s.space = permission.NewSpace(permission.WithCapacity(s.config.Permission.Capacity))
	s.resources = resource.New(s.allocator, resource.WithIdentities(s.identities))
	s.tasks = extension.NewTasks(s.extensionTypes...)
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	s.descriptorService = descriptor.New(
		descriptor.WithMetaService(s.metaService),
		descriptor.WithTypes(s.tasks.Types()),
		descriptor.WithSpace(s.space))
}

// Resources returns the root resource registry. Mutation is a setup-phase
// operation and must not run concurrently with Exec calls.
func (s *Service) Resources() *resource.Registry {
	return s.resources
}

// Tasks returns the named binding registry.
func (s *Service) Tasks() *extension.Tasks {
	return s.tasks
}

// Space returns the permission space shared by the service's bindings.
func (s *Service) Space() *permission.Space {
	return s.space
}

// RegisterExtensionTypes registers resource types for manifest name
// resolution.
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.tasks.Types().Register(types[i])
	}
}

// NewTask wraps a callable as a task binding in the service's permission
// space, computing its access signature once, and registers it under its
// name.
func (s *Service) NewTask(callable interface{}, options ...task.Option) (*task.Func, error) {
	options = append([]task.Option{
		task.WithSpace(s.space),
		task.WithAllocator(s.allocator),
		task.WithIdentities(s.identities),
		task.WithStrictResolution(s.config.StrictResolution),
	}, options...)
	fn, err := task.New(callable, options...)
	if err != nil {
		return nil, err
	}
	s.tasks.Register(fn)
	return fn, nil
}

// Conflicts reports whether two bindings must not execute concurrently.
func (s *Service) Conflicts(a, b *task.Func) bool {
	return a.ConflictsWith(b)
}

// LoadManifest reads a declarative manifest from URL.
func (s *Service) LoadManifest(ctx context.Context, URL string) (*descriptor.Manifest, error) {
	return s.descriptorService.Load(ctx, URL)
}

// Apply materialises a manifest: declared resources are constructed into
// the root registry and each declared task yields a descriptor carrying its
// declared permission, ready for Bind.
func (s *Service) Apply(manifest *Manifest) ([]*descriptor.Descriptor, error) {
	if err := s.descriptorService.ApplyResources(manifest, s.resources); err != nil {
		return nil, err
	}
	return s.descriptorService.Descriptors(manifest)
}

// Close releases every registered binding's local state and then the root
// registry's owned values, in reverse construction order.
func (s *Service) Close() error {
	var err error
	for _, name := range s.tasks.Names() {
		if fn := s.tasks.Lookup(name); fn != nil {
			if e := fn.Close(); e != nil && err == nil {
				err = e
			}
		}
	}
	if e := s.resources.Close(); e != nil && err == nil {
		err = e
	}
	if err != nil {
		return fmt.Errorf("failed to close service: %w", err)
	}
	return nil
}

// Manifest aliases the descriptor manifest for convenience.
type Manifest = descriptor.Manifest
