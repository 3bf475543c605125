package repository

import (
	"context"
	"sync"

	"github.com/jpo/jpo/backend/item-service/internal/models"
)

// MemoryRepo is a slice-backed source collection used by tests and local runs.
type MemoryRepo struct {
	mu    sync.RWMutex
	items []models.SourceItem
}

func NewMemoryRepo(items ...models.SourceItem) *MemoryRepo {
	return &MemoryRepo{items: append([]models.SourceItem(nil), items...)}
}

// Add appends an item at the end of the natural order.
func (m *MemoryRepo) Add(it models.SourceItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, it)
}

func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *MemoryRepo) Window(ctx context.Context, offset, limit int64) ([]models.SourceItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := int64(len(m.items))
	if offset < 0 || offset >= n || limit <= 0 {
		return []models.SourceItem{}, nil
	}
	end := offset + limit
	if end > n {
		end = n
	}
	out := make([]models.SourceItem, end-offset)
	copy(out, m.items[offset:end])
	return out, nil
}
