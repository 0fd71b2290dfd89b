package permission

import (
	"fmt"
	"reflect"

	"github.com/viant/taskres/identity"
)

// DefaultCapacity is the number of distinct resource types a Space tracks
// unless configured otherwise.
const DefaultCapacity = 128

// ErrCapacity is wrapped by Mark operations once more distinct types are
// tracked than the space capacity. The number of resource types is a static
// property of a program's task signatures, so this surfaces at registration
// time, never mid-execution.
var ErrCapacity = fmt.Errorf("permission capacity exceeded")

// Option customizes a Space.
type Option func(s *Space)

// WithCapacity sets the maximum number of distinct resource types the space
// can track. The bit sets are not resizable afterwards.
func WithCapacity(capacity int) Option {
	return func(s *Space) {
		s.capacity = capacity
	}
}

// Space owns the identity allocation for one permission domain. It is
// deliberately independent from any resource registry identity space; the
// two counters grow on their own.
type Space struct {
	identities *identity.Registry
	capacity   int
}

// NewSpace creates a permission space.
func NewSpace(options ...Option) *Space {
	ret := &Space{capacity: DefaultCapacity}
	for _, option := range options {
		option(ret)
	}
	ret.identities = identity.New()
	return ret
}

// Capacity returns the maximum number of distinct types the space tracks.
func (s *Space) Capacity() int {
	return s.capacity
}

// New creates an empty permission bound to the space.
func (s *Space) New() *Permission {
	words := (s.capacity + 63) / 64
	return &Permission{
		space: s,
		read:  make([]uint64, words),
		write: make([]uint64, words),
	}
}

func (s *Space) index(aType reflect.Type) (identity.ID, error) {
	id := s.identities.ID(aType)
	if int(id) >= s.capacity {
		return identity.Unassigned, fmt.Errorf("%w: %v types for capacity %v", ErrCapacity, id, s.capacity)
	}
	return id, nil
}

// Permission is an access signature: the set of resource types read and the
// set written, as bit sets indexed by the owning space. Index 0 is never
// set.
type Permission struct {
	space *Space
	read  []uint64
	write []uint64
}

// Space returns the owning permission space.
func (p *Permission) Space() *Space {
	return p.space
}

// MarkRead sets the read bit for aType, lazily allocating its identity.
func (p *Permission) MarkRead(aType reflect.Type) error {
	id, err := p.space.index(aType)
	if err != nil {
		return err
	}
	p.read[id/64] |= 1 << (uint(id) % 64)
	return nil
}

// MarkWrite sets the write bit for aType, lazily allocating its identity.
func (p *Permission) MarkWrite(aType reflect.Type) error {
	id, err := p.space.index(aType)
	if err != nil {
		return err
	}
	p.write[id/64] |= 1 << (uint(id) % 64)
	return nil
}

// CanRead reports whether the read bit is set for aType; false when the
// type was never marked in the space.
func (p *Permission) CanRead(aType reflect.Type) bool {
	return p.test(p.read, aType)
}

// CanWrite reports whether the write bit is set for aType.
func (p *Permission) CanWrite(aType reflect.Type) bool {
	return p.test(p.write, aType)
}

func (p *Permission) test(set []uint64, aType reflect.Type) bool {
	id := p.space.identities.Lookup(aType)
	if id == identity.Unassigned || int(id) >= p.space.capacity {
		return false
	}
	return set[id/64]&(1<<(uint(id)%64)) != 0
}

// ConflictsWith reports whether the two signatures must not execute
// concurrently: one writes a type the other reads, or both write the same
// type. The relation is commutative. Both permissions must come from the
// same Space; bit positions of unrelated spaces carry no meaning, so a
// cross-space comparison panics.
func (p *Permission) ConflictsWith(other *Permission) bool {
	p.assertSameSpace(other)
	for i := range p.write {
		if p.write[i]&(other.read[i]|other.write[i]) != 0 {
			return true
		}
		if p.read[i]&other.write[i] != 0 {
			return true
		}
	}
	return false
}

// Merge accumulates other's marks into p. Both must belong to the same
// space.
func (p *Permission) Merge(other *Permission) {
	p.assertSameSpace(other)
	for i := range p.read {
		p.read[i] |= other.read[i]
		p.write[i] |= other.write[i]
	}
}

// Covers reports whether p grants every access other does: a declared
// signature covers a derived one when no derived bit is missing. Both must
// belong to the same space.
func (p *Permission) Covers(other *Permission) bool {
	p.assertSameSpace(other)
	for i := range p.read {
		if other.read[i]&^p.read[i] != 0 {
			return false
		}
		if other.write[i]&^p.write[i] != 0 {
			return false
		}
	}
	return true
}

func (p *Permission) assertSameSpace(other *Permission) {
	if p.space != other.space {
		panic("permission: cannot compare permissions from different spaces")
	}
}

// IsEmpty reports whether no type was marked.
func (p *Permission) IsEmpty() bool {
	for i := range p.read {
		if p.read[i] != 0 || p.write[i] != 0 {
			return false
		}
	}
	return true
}

// MarkRead sets the read bit for T.
func MarkRead[T any](p *Permission) error {
	return p.MarkRead(identity.TypeOf[T]())
}

// MarkWrite sets the write bit for T.
func MarkWrite[T any](p *Permission) error {
	return p.MarkWrite(identity.TypeOf[T]())
}

// CanRead reports whether the read bit is set for T.
func CanRead[T any](p *Permission) bool {
	return p.CanRead(identity.TypeOf[T]())
}

// CanWrite reports whether the write bit is set for T.
func CanWrite[T any](p *Permission) bool {
	return p.CanWrite(identity.TypeOf[T]())
}
