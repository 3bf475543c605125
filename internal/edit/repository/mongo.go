package repository

import (
	"context"
	"fmt"

	"github.com/jpo/jpo/backend/item-service/internal/database"
	"github.com/jpo/jpo/backend/item-service/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository appends edit records. Records are never read back by the service.
type Repository interface {
	Insert(ctx context.Context, rec *models.EditRecord) (primitive.ObjectID, error)
}

// MongoRepo writes into models.EditCollection.
type MongoRepo struct {
	src database.CollectionSource
}

func NewMongoRepo(src database.CollectionSource) *MongoRepo {
	return &MongoRepo{src: src}
}

func (m *MongoRepo) Insert(ctx context.Context, rec *models.EditRecord) (primitive.ObjectID, error) {
	col, err := m.src.Collection(models.EditCollection)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, rec); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert edit: %w", err)
	}
	return rec.ID, nil
}
