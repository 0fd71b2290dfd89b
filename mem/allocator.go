package mem

import (
	"fmt"
	"sync/atomic"
)

// ErrExhausted is wrapped by Allocate when a budget would be exceeded.
var ErrExhausted = fmt.Errorf("allocator exhausted")

// Allocator is an opaque allocate/deallocate capability. Owning containers
// call Allocate before taking ownership of a value and Release when the
// value is destroyed; a non-nil Allocate error means the value must not be
// retained.
type Allocator interface {
	Allocate(size uintptr) error
	Release(size uintptr)
}

// Counting is an unbounded allocator that tracks live bytes.
type Counting struct {
	live atomic.Int64
}

// New creates an unbounded counting allocator.
func New() *Counting {
	return &Counting{}
}

// Allocate admits every request.
func (c *Counting) Allocate(size uintptr) error {
	c.live.Add(int64(size))
	return nil
}

// Release returns size bytes to the account.
func (c *Counting) Release(size uintptr) {
	c.live.Add(-int64(size))
}

// Live returns the currently accounted bytes.
func (c *Counting) Live() int64 {
	return c.live.Load()
}

// Budget is an allocator with a fixed live-byte limit.
type Budget struct {
	limit int64
	live  atomic.Int64
}

// NewBudget creates an allocator that fails once live bytes would exceed
// limit.
func NewBudget(limit int64) *Budget {
	return &Budget{limit: limit}
}

// Allocate admits the request unless it would push live bytes over the
// limit.
func (b *Budget) Allocate(size uintptr) error {
	if next := b.live.Add(int64(size)); next > b.limit {
		b.live.Add(-int64(size))
		return fmt.Errorf("%w: %v of %v bytes in use, requested %v", ErrExhausted, next-int64(size), b.limit, size)
	}
	return nil
}

// Release returns size bytes to the budget.
func (b *Budget) Release(size uintptr) {
	b.live.Add(-int64(size))
}

// Live returns the currently accounted bytes.
func (b *Budget) Live() int64 {
	return b.live.Load()
}
