package descriptor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/structology/conv"
	"github.com/viant/taskres/extension"
	"github.com/viant/taskres/permission"
	"github.com/viant/taskres/resource"
	"github.com/viant/taskres/service/meta"
	"github.com/viant/taskres/task"
	"github.com/viant/toolbox"
)

// Option customizes the descriptor service.
type Option func(s *Service)

// WithMetaService sets the manifest loader.
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) { s.metaService = service }
}

// WithTypes sets the resource type registry manifest type names resolve
// against.
func WithTypes(types *extension.Types) Option {
	return func(s *Service) { s.types = types }
}

// WithSpace sets the permission space declared signatures are derived in.
func WithSpace(space *permission.Space) Option {
	return func(s *Service) { s.space = space }
}

// Service turns manifests into materialised resources and declared task
// permissions.
type Service struct {
	metaService *meta.Service
	types       *extension.Types
	space       *permission.Space
	converter   *conv.Converter
}

// New creates a descriptor service.
func New(options ...Option) *Service {
	converterOptions := conv.DefaultOptions()
	converterOptions.ClonePointerData = true
	converterOptions.IgnoreUnmapped = true
	converterOptions.AccessUnexported = true

	ret := &Service{converter: conv.NewConverter(converterOptions)}
	for _, option := range options {
		option(ret)
	}
	if ret.types == nil {
		ret.types = extension.NewTypes()
	}
	if ret.space == nil {
		ret.space = permission.NewSpace()
	}
	return ret
}

// Load reads and decodes a manifest from URL.
func (s *Service) Load(ctx context.Context, URL string) (*Manifest, error) {
	if s.metaService == nil {
		return nil, fmt.Errorf("meta service not configured")
	}
	manifest := &Manifest{}
	if err := s.metaService.Load(ctx, URL, manifest); err != nil {
		return nil, err
	}
	for _, decl := range manifest.Tasks {
		if decl.Name == "" {
			return nil, fmt.Errorf("manifest %v: task name was empty", URL)
		}
	}
	return manifest, nil
}

// ApplyResources materialises every declared resource into the registry:
// the type name resolves through the type registry, the declared value map
// converts into a typed instance and the registry takes ownership.
func (s *Service) ApplyResources(manifest *Manifest, registry *resource.Registry) error {
	for _, decl := range manifest.Resources {
		aType := s.types.Lookup(decl.Type)
		if aType == nil {
			return fmt.Errorf("resource %v: type %v not registered", decl.Name, decl.Type)
		}
		instance := reflect.New(aType.Type).Interface()
		if len(decl.Value) > 0 {
			value := toolbox.DeleteEmptyKeys(decl.Value)
			if err := s.converter.Convert(value, instance); err != nil {
				return fmt.Errorf("resource %v: failed to build %v value: %w", decl.Name, decl.Type, err)
			}
		}
		if _, err := registry.StoreValue(instance); err != nil {
			return fmt.Errorf("resource %v: %w", decl.Name, err)
		}
	}
	return nil
}

// Descriptors derives a permission per declared task from its access list.
func (s *Service) Descriptors(manifest *Manifest) ([]*Descriptor, error) {
	ret := make([]*Descriptor, 0, len(manifest.Tasks))
	for _, decl := range manifest.Tasks {
		perm := s.space.New()
		entries := make([]*Access, 0, len(decl.Access))
		for _, raw := range decl.Access {
			entry, err := ParseAccess([]byte(raw))
			if err != nil {
				return nil, fmt.Errorf("task %v: %w", decl.Name, err)
			}
			aType := s.types.Lookup(entry.DataType)
			if aType == nil {
				return nil, fmt.Errorf("task %v: type %v not registered", decl.Name, entry.DataType)
			}
			switch entry.Mode {
			case ModeWrite:
				if err = perm.MarkRead(aType.Type); err == nil {
					err = perm.MarkWrite(aType.Type)
				}
			default:
				err = perm.MarkRead(aType.Type)
			}
			if err != nil {
				return nil, fmt.Errorf("task %v: %w", decl.Name, err)
			}
			entries = append(entries, entry)
		}
		ret = append(ret, &Descriptor{name: decl.Name, access: entries, perm: perm, space: s.space})
	}
	return ret, nil
}

// Descriptor is a declared task: a name, the parsed access entries and the
// permission they denote.
type Descriptor struct {
	name   string
	access []*Access
	perm   *permission.Permission
	space  *permission.Space
}

// Name returns the declared task name.
func (d *Descriptor) Name() string {
	return d.name
}

// Permission returns the declared access signature.
func (d *Descriptor) Permission() *permission.Permission {
	return d.perm
}

// Access returns the parsed access entries.
func (d *Descriptor) Access() []*Access {
	return d.access
}

// Bind wraps a callable as a task binding in the descriptor's space and
// verifies the declaration covers the callable's derived signature; a
// callable demanding access the manifest never declared is rejected.
func (d *Descriptor) Bind(callable interface{}, options ...task.Option) (*task.Func, error) {
	fn, err := task.New(callable, append(options, task.WithName(d.name), task.WithSpace(d.space))...)
	if err != nil {
		return nil, err
	}
	if !d.perm.Covers(fn.Permission()) {
		return nil, fmt.Errorf("task %v: callable access exceeds declared access", d.name)
	}
	return fn, nil
}
