// backend-go/internal/repository/mongodb/outlet_repository.go
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
)

const outletsCollection = "outlets"

type outletRepository struct {
	db *DB
}

func NewOutletRepository(db *DB) repository.OutletRepository {
	return &outletRepository{db: db}
}

func (r *outletRepository) Snapshot(ctx context.Context) ([]domain.Outlet, error) {
	if err := r.db.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.sem.Release(1)

	cursor, err := r.db.Collection(outletsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error reading outlets snapshot: %w", err)
	}
	defer cursor.Close(ctx)

	outlets := []domain.Outlet{}
	if err := cursor.All(ctx, &outlets); err != nil {
		return nil, fmt.Errorf("error decoding outlets snapshot: %w", err)
	}
	return outlets, nil
}

func (r *outletRepository) Create(ctx context.Context, o domain.Outlet) (string, error) {
	o.ID = primitive.NilObjectID
	result, err := r.db.Collection(outletsCollection).InsertOne(ctx, o)
	if err != nil {
		return "", fmt.Errorf("error creating outlet: %w", err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *outletRepository) Update(ctx context.Context, id string, o domain.Outlet) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	o.ID = oid

	// Full-record overwrite on edit.
	result, err := r.db.Collection(outletsCollection).ReplaceOne(ctx, bson.M{"_id": oid}, o)
	if err != nil {
		return fmt.Errorf("error updating outlet %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: outlet %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *outletRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := r.db.Collection(outletsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("error deleting outlet %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: outlet %s", domain.ErrNotFound, id)
	}
	return nil
}
