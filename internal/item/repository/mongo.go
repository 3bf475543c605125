package repository

import (
	"context"
	"fmt"

	"github.com/jpo/jpo/backend/item-service/internal/database"
	"github.com/jpo/jpo/backend/item-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository reads positional windows of the source collection.
type Repository interface {
	// Window returns at most limit items starting at position offset in natural order.
	Window(ctx context.Context, offset, limit int64) ([]models.SourceItem, error)
}

// MongoRepo reads from models.SourceCollection. There is no sort: the window
// follows the collection's natural order, so inserts or deletes between calls
// can shift it.
type MongoRepo struct {
	src database.CollectionSource
}

func NewMongoRepo(src database.CollectionSource) *MongoRepo {
	return &MongoRepo{src: src}
}

func (m *MongoRepo) Window(ctx context.Context, offset, limit int64) ([]models.SourceItem, error) {
	col, err := m.src.Collection(models.SourceCollection)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSkip(offset).SetLimit(limit)
	cur, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.SourceItem{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return out, nil
}
