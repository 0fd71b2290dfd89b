package extension

import (
	"sync"

	"github.com/viant/taskres/task"
	"github.com/viant/x"
)

// Tasks is a mutex-guarded registry of named task bindings.
type Tasks struct {
	types *Types
	tasks map[string]*task.Func
	mux   sync.RWMutex
}

// Types returns the resource type registry.
func (s *Tasks) Types() *Types {
	return s.types
}

// Lookup returns a binding by name, nil when absent.
func (s *Tasks) Lookup(name string) *task.Func {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.tasks[name]
}

// Register adds a binding under its name; a later registration for the same
// name overwrites the earlier one.
func (s *Tasks) Register(fn *task.Func) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.tasks[fn.Name()] = fn
}

// Names returns the registered binding names.
func (s *Tasks) Names() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		ret = append(ret, name)
	}
	return ret
}

// NewTasks creates a task registry seeded with the supplied resource types.
func NewTasks(goTypes ...*x.Type) *Tasks {
	ret := &Tasks{
		types: NewTypes(),
		tasks: make(map[string]*task.Func),
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	return ret
}
