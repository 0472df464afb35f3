// backend-go/internal/repository/mongodb/expiry_repository.go
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
)

const expiriesCollection = "expiries"

type expiryRepository struct {
	db *DB
}

func NewExpiryRepository(db *DB) repository.ExpiryRepository {
	return &expiryRepository{db: db}
}

// Snapshot returns the whole ledger in insertion order. Aggregation relies
// on that order being stable between reads: group membership is defined by
// key, but first-seen key order drives row order.
func (r *expiryRepository) Snapshot(ctx context.Context) ([]domain.ExpiryEntry, error) {
	if err := r.db.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.sem.Release(1)

	cursor, err := r.db.Collection(expiriesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error reading expiries snapshot: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []domain.ExpiryEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding expiries snapshot: %w", err)
	}
	return entries, nil
}

func (r *expiryRepository) Create(ctx context.Context, e domain.ExpiryEntry) (string, error) {
	e.ID = primitive.NilObjectID
	result, err := r.db.Collection(expiriesCollection).InsertOne(ctx, e)
	if err != nil {
		return "", fmt.Errorf("error creating expiry entry: %w", err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *expiryRepository) Update(ctx context.Context, id string, e domain.ExpiryEntry) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	e.ID = oid

	result, err := r.db.Collection(expiriesCollection).ReplaceOne(ctx, bson.M{"_id": oid}, e)
	if err != nil {
		return fmt.Errorf("error updating expiry entry %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: expiry entry %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *expiryRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := r.db.Collection(expiriesCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("error deleting expiry entry %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: expiry entry %s", domain.ErrNotFound, id)
	}
	return nil
}
