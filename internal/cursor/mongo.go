package cursor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpo/jpo/backend/item-service/internal/database"
	"github.com/jpo/jpo/backend/item-service/internal/models"
	"github.com/jpo/jpo/backend/item-service/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAllocator keeps the cursor in the fixed document of models.CursorCollection.
type MongoAllocator struct {
	src      database.CollectionSource
	id       primitive.ObjectID
	strategy Strategy
}

func NewMongoAllocator(src database.CollectionSource, strategy Strategy) *MongoAllocator {
	if strategy == "" {
		strategy = StrategyAtomic
	}
	return &MongoAllocator{src: src, id: models.CursorID(), strategy: strategy}
}

func (m *MongoAllocator) Strategy() Strategy { return m.strategy }

func (m *MongoAllocator) Allocate(ctx context.Context) (int64, error) {
	col, err := m.src.Collection(models.CursorCollection)
	if err != nil {
		return 0, err
	}
	var offset int64
	if m.strategy == StrategyLegacy {
		offset, err = m.readThenWrite(ctx, col)
	} else {
		offset, err = m.increment(ctx, col)
	}
	if err != nil {
		return 0, err
	}
	metrics.CursorAdvances.WithLabelValues(string(m.strategy)).Inc()
	return offset, nil
}

// increment returns the document as it was before $inc was applied.
func (m *MongoAllocator) increment(ctx context.Context, col *mongo.Collection) (int64, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	update := bson.M{"$inc": bson.M{"ID": PageSize}}
	var before models.Cursor
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": m.id}, update, opts).Decode(&before); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("advance cursor: %w", err)
	}
	return before.Value, nil
}

// readThenWrite is not atomic: two concurrent callers may read the same value.
func (m *MongoAllocator) readThenWrite(ctx context.Context, col *mongo.Collection) (int64, error) {
	cur, err := m.read(ctx, col)
	if err != nil {
		return 0, err
	}
	update := bson.M{"$set": bson.M{"ID": cur + PageSize}}
	if _, err := col.UpdateOne(ctx, bson.M{"_id": m.id}, update); err != nil {
		return 0, fmt.Errorf("write cursor: %w", err)
	}
	return cur, nil
}

func (m *MongoAllocator) read(ctx context.Context, col *mongo.Collection) (int64, error) {
	var c models.Cursor
	if err := col.FindOne(ctx, bson.M{"_id": m.id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("read cursor: %w", err)
	}
	return c.Value, nil
}

func (m *MongoAllocator) Peek(ctx context.Context) (int64, error) {
	col, err := m.src.Collection(models.CursorCollection)
	if err != nil {
		return 0, err
	}
	return m.read(ctx, col)
}

func (m *MongoAllocator) Seed(ctx context.Context, value int64, overwrite bool) (bool, error) {
	col, err := m.src.Collection(models.CursorCollection)
	if err != nil {
		return false, err
	}
	op := "$setOnInsert"
	if overwrite {
		op = "$set"
	}
	opts := options.Update().SetUpsert(true)
	res, err := col.UpdateOne(ctx, bson.M{"_id": m.id}, bson.M{op: bson.M{"ID": value}}, opts)
	if err != nil {
		return false, fmt.Errorf("seed cursor: %w", err)
	}
	return res.UpsertedCount > 0, nil
}
