package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounting(t *testing.T) {
	allocator := New()
	assert.NoError(t, allocator.Allocate(128))
	assert.NoError(t, allocator.Allocate(64))
	assert.Equal(t, int64(192), allocator.Live())

	allocator.Release(128)
	assert.Equal(t, int64(64), allocator.Live())
}

func TestBudget(t *testing.T) {
	testCases := []struct {
		description string
		limit       int64
		requests    []uintptr
		failAt      int // index of request expected to fail, -1 for none
	}{
		{
			description: "within budget",
			limit:       256,
			requests:    []uintptr{128, 128},
			failAt:      -1,
		},
		{
			description: "exceeds budget",
			limit:       100,
			requests:    []uintptr{64, 64},
			failAt:      1,
		},
		{
			description: "single oversized request",
			limit:       16,
			requests:    []uintptr{32},
			failAt:      0,
		},
	}

	for _, testCase := range testCases {
		allocator := NewBudget(testCase.limit)
		for i, size := range testCase.requests {
			err := allocator.Allocate(size)
			if i == testCase.failAt {
				assert.ErrorIs(t, err, ErrExhausted, testCase.description)
			} else {
				assert.NoError(t, err, testCase.description)
			}
		}
	}
}

func TestBudget_FailedAllocateKeepsAccount(t *testing.T) {
	allocator := NewBudget(64)
	assert.NoError(t, allocator.Allocate(48))
	assert.Error(t, allocator.Allocate(48))
	assert.Equal(t, int64(48), allocator.Live(), "rejected request leaves no residue")

	allocator.Release(48)
	assert.NoError(t, allocator.Allocate(64), "budget fully available again")
}
