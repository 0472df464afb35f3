// backend-go/internal/repository/repositories.go
package repository

import (
	"context"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
)

// The repositories expose the minimal document-store surface the console
// needs: a point-in-time full-collection snapshot plus per-record CRUD.
// Each write is an independent request; there are no multi-record
// transactions. Snapshots preserve the store's insertion order, which is
// what keeps grouping output stable across recomputes.

type OutletRepository interface {
	Snapshot(ctx context.Context) ([]domain.Outlet, error)
	Create(ctx context.Context, o domain.Outlet) (string, error)
	Update(ctx context.Context, id string, o domain.Outlet) error
	Delete(ctx context.Context, id string) error
}

type ProductRepository interface {
	Snapshot(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (string, error)
	Update(ctx context.Context, id string, p domain.Product) error
	Delete(ctx context.Context, id string) error
}

type ExpiryRepository interface {
	Snapshot(ctx context.Context) ([]domain.ExpiryEntry, error)
	Create(ctx context.Context, e domain.ExpiryEntry) (string, error)
	Update(ctx context.Context, id string, e domain.ExpiryEntry) error
	Delete(ctx context.Context, id string) error
}

type GrnRepository interface {
	// Snapshot returns records ordered by creation time, newest first.
	Snapshot(ctx context.Context) ([]domain.GrnRecord, error)
	Create(ctx context.Context, g domain.GrnRecord) (string, error)
	Update(ctx context.Context, id string, g domain.GrnRecord) error
	Delete(ctx context.Context, id string) error
}

type OccurrenceRepository interface {
	Snapshot(ctx context.Context) ([]domain.Occurrence, error)
	Create(ctx context.Context, o domain.Occurrence) (string, error)
	Update(ctx context.Context, id string, o domain.Occurrence) error
	Delete(ctx context.Context, id string) error
}
