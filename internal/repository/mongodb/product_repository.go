// backend-go/internal/repository/mongodb/product_repository.go
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
)

const productsCollection = "products"

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Snapshot(ctx context.Context) ([]domain.Product, error) {
	if err := r.db.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.sem.Release(1)

	cursor, err := r.db.Collection(productsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error reading products snapshot: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("error decoding products snapshot: %w", err)
	}
	return products, nil
}

func (r *productRepository) Create(ctx context.Context, p domain.Product) (string, error) {
	p.ID = primitive.NilObjectID
	result, err := r.db.Collection(productsCollection).InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("error creating product: %w", err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *productRepository) Update(ctx context.Context, id string, p domain.Product) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	p.ID = oid

	result, err := r.db.Collection(productsCollection).ReplaceOne(ctx, bson.M{"_id": oid}, p)
	if err != nil {
		return fmt.Errorf("error updating product %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := r.db.Collection(productsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("error deleting product %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return nil
}
