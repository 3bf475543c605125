package cursor

import (
	"context"
	"sync"
)

// MemoryAllocator is an in-process cursor used by tests and local runs.
// A zero value has no record, so Allocate fails with ErrNotFound until Seed is called.
type MemoryAllocator struct {
	mu     sync.Mutex
	value  int64
	exists bool
}

// NewMemoryAllocator returns an allocator whose record already holds start.
func NewMemoryAllocator(start int64) *MemoryAllocator {
	return &MemoryAllocator{value: start, exists: true}
}

func (m *MemoryAllocator) Allocate(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.exists {
		return 0, ErrNotFound
	}
	cur := m.value
	m.value += PageSize
	return cur, nil
}

func (m *MemoryAllocator) Peek(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.exists {
		return 0, ErrNotFound
	}
	return m.value, nil
}

func (m *MemoryAllocator) Seed(ctx context.Context, value int64, overwrite bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.exists && !overwrite {
		return false, nil
	}
	created := !m.exists
	m.value = value
	m.exists = true
	return created, nil
}
