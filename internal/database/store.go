package database

import (
	"context"
	"errors"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotReady is returned while no client has been attached yet.
var ErrNotReady = errors.New("database not ready")

// CollectionSource hands out collections by name. Repositories depend on this
// instead of a concrete *mongo.Collection so they can be built before the
// connection exists.
type CollectionSource interface {
	Collection(name string) (*mongo.Collection, error)
}

// Store is the process-wide database handle. It starts empty and becomes
// ready once Attach is called with a connected client.
type Store struct {
	name   string
	client atomic.Pointer[mongo.Client]
	db     atomic.Pointer[mongo.Database]
}

func NewStore(databaseName string) *Store {
	return &Store{name: databaseName}
}

// Attach publishes a connected client. Later calls replace the previous one.
func (s *Store) Attach(client *mongo.Client) {
	s.db.Store(client.Database(s.name))
	s.client.Store(client)
}

func (s *Store) Ready() bool {
	return s.db.Load() != nil
}

func (s *Store) Collection(name string) (*mongo.Collection, error) {
	db := s.db.Load()
	if db == nil {
		return nil, ErrNotReady
	}
	return db.Collection(name), nil
}

// Close disconnects the attached client, if any.
func (s *Store) Close(ctx context.Context) error {
	client := s.client.Swap(nil)
	s.db.Store(nil)
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Fixed adapts an already connected database to a CollectionSource.
func Fixed(db *mongo.Database) CollectionSource {
	return fixedSource{db: db}
}

type fixedSource struct {
	db *mongo.Database
}

func (f fixedSource) Collection(name string) (*mongo.Collection, error) {
	return f.db.Collection(name), nil
}
