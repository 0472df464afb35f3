// backend-go/internal/repository/mongodb/grn_repository.go
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
)

const grnsCollection = "grns"

type grnRepository struct {
	db *DB
}

func NewGrnRepository(db *DB) repository.GrnRepository {
	return &grnRepository{db: db}
}

// Snapshot returns GRNs newest first, the order the listing page shows them.
func (r *grnRepository) Snapshot(ctx context.Context) ([]domain.GrnRecord, error) {
	if err := r.db.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.sem.Release(1)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.db.Collection(grnsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error reading grns snapshot: %w", err)
	}
	defer cursor.Close(ctx)

	grns := []domain.GrnRecord{}
	if err := cursor.All(ctx, &grns); err != nil {
		return nil, fmt.Errorf("error decoding grns snapshot: %w", err)
	}
	return grns, nil
}

func (r *grnRepository) Create(ctx context.Context, g domain.GrnRecord) (string, error) {
	g.ID = primitive.NilObjectID
	result, err := r.db.Collection(grnsCollection).InsertOne(ctx, g)
	if err != nil {
		return "", fmt.Errorf("error creating grn: %w", err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *grnRepository) Update(ctx context.Context, id string, g domain.GrnRecord) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	g.ID = oid

	result, err := r.db.Collection(grnsCollection).ReplaceOne(ctx, bson.M{"_id": oid}, g)
	if err != nil {
		return fmt.Errorf("error updating grn %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: grn %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *grnRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := r.db.Collection(grnsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("error deleting grn %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: grn %s", domain.ErrNotFound, id)
	}
	return nil
}
