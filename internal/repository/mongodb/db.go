// backend-go/internal/repository/mongodb/db.go
package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/semaphore"

	"github.com/andresuchdata/merchview/backend-go/internal/config"
	"github.com/andresuchdata/merchview/backend-go/internal/domain"
)

// maxConcurrentSnapshots bounds concurrent full-collection scans. Every
// subscription push re-reads a whole collection, so a burst of writes
// could otherwise pile up scans faster than the store drains them.
const maxConcurrentSnapshots = 8

type DB struct {
	*mongo.Database
	client *mongo.Client
	sem    *semaphore.Weighted
}

var (
	dbInstance *DB
	once       sync.Once
)

// NewDB connects to the document store and verifies the connection.
func NewDB(cfg *config.MongoConfig) (*DB, error) {
	var err error
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var client *mongo.Client
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			err = fmt.Errorf("failed to connect to mongo: %w", err)
			return
		}

		if err = client.Ping(ctx, readpref.Primary()); err != nil {
			err = fmt.Errorf("failed to ping mongo: %w", err)
			return
		}

		log.Info().Str("db", cfg.DBName).Msg("Connected to document store")

		dbInstance = &DB{
			Database: client.Database(cfg.DBName),
			client:   client,
			sem:      semaphore.NewWeighted(maxConcurrentSnapshots),
		}
	})

	if err != nil {
		return nil, err
	}
	return dbInstance, nil
}

// Close disconnects the underlying client.
func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.client.Disconnect(ctx)
}

// acquire gates a snapshot read; release with db.sem.Release(1).
func (db *DB) acquire(ctx context.Context) error {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("snapshot slot: %w", err)
	}
	return nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrNotFound, id)
	}
	return oid, nil
}
