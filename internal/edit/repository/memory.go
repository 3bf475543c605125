package repository

import (
	"context"
	"sync"

	"github.com/jpo/jpo/backend/item-service/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps edit records in insertion order.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []models.EditRecord
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Insert(ctx context.Context, rec *models.EditRecord) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	m.records = append(m.records, *rec)
	return rec.ID, nil
}

// List returns a copy of everything inserted so far.
func (m *MemoryRepo) List() []models.EditRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.EditRecord(nil), m.records...)
}
