// backend-go/internal/repository/mongodb/occurrence_repository.go
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
)

const occurrencesCollection = "occurrences"

type occurrenceRepository struct {
	db *DB
}

func NewOccurrenceRepository(db *DB) repository.OccurrenceRepository {
	return &occurrenceRepository{db: db}
}

func (r *occurrenceRepository) Snapshot(ctx context.Context) ([]domain.Occurrence, error) {
	if err := r.db.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.sem.Release(1)

	cursor, err := r.db.Collection(occurrencesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error reading occurrences snapshot: %w", err)
	}
	defer cursor.Close(ctx)

	occurrences := []domain.Occurrence{}
	if err := cursor.All(ctx, &occurrences); err != nil {
		return nil, fmt.Errorf("error decoding occurrences snapshot: %w", err)
	}
	return occurrences, nil
}

func (r *occurrenceRepository) Create(ctx context.Context, o domain.Occurrence) (string, error) {
	o.ID = primitive.NilObjectID
	result, err := r.db.Collection(occurrencesCollection).InsertOne(ctx, o)
	if err != nil {
		return "", fmt.Errorf("error creating occurrence: %w", err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *occurrenceRepository) Update(ctx context.Context, id string, o domain.Occurrence) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	o.ID = oid

	result, err := r.db.Collection(occurrencesCollection).ReplaceOne(ctx, bson.M{"_id": oid}, o)
	if err != nil {
		return fmt.Errorf("error updating occurrence %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: occurrence %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *occurrenceRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := r.db.Collection(occurrencesCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("error deleting occurrence %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: occurrence %s", domain.ErrNotFound, id)
	}
	return nil
}
