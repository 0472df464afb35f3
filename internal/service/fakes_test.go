// backend-go/internal/service/fakes_test.go
package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/expiry"
)

// In-memory repositories backing the service tests. Snapshots return
// items in insertion order, matching the store's behavior.

type fakeOutletRepo struct {
	items []domain.Outlet
}

func (r *fakeOutletRepo) Snapshot(ctx context.Context) ([]domain.Outlet, error) {
	return append([]domain.Outlet{}, r.items...), nil
}

func (r *fakeOutletRepo) Create(ctx context.Context, o domain.Outlet) (string, error) {
	o.ID = primitive.NewObjectID()
	r.items = append(r.items, o)
	return o.ID.Hex(), nil
}

func (r *fakeOutletRepo) Update(ctx context.Context, id string, o domain.Outlet) error {
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			o.ID = r.items[i].ID
			r.items[i] = o
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOutletRepo) Delete(ctx context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeProductRepo struct {
	items []domain.Product
}

func (r *fakeProductRepo) Snapshot(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product{}, r.items...), nil
}

func (r *fakeProductRepo) Create(ctx context.Context, p domain.Product) (string, error) {
	p.ID = primitive.NewObjectID()
	r.items = append(r.items, p)
	return p.ID.Hex(), nil
}

func (r *fakeProductRepo) Update(ctx context.Context, id string, p domain.Product) error {
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			p.ID = r.items[i].ID
			r.items[i] = p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeExpiryRepo struct {
	items []domain.ExpiryEntry
	// failDelete forces Delete to fail for specific ids, for exercising
	// partial bulk-delete outcomes.
	failDelete map[string]error
}

func (r *fakeExpiryRepo) Snapshot(ctx context.Context) ([]domain.ExpiryEntry, error) {
	return append([]domain.ExpiryEntry{}, r.items...), nil
}

func (r *fakeExpiryRepo) Create(ctx context.Context, e domain.ExpiryEntry) (string, error) {
	e.ID = primitive.NewObjectID()
	r.items = append(r.items, e)
	return e.ID.Hex(), nil
}

func (r *fakeExpiryRepo) Update(ctx context.Context, id string, e domain.ExpiryEntry) error {
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			e.ID = r.items[i].ID
			r.items[i] = e
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeExpiryRepo) Delete(ctx context.Context, id string) error {
	if err, ok := r.failDelete[id]; ok {
		return err
	}
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeGrnRepo struct {
	items []domain.GrnRecord
}

// Snapshot returns newest first, like the store's sorted query.
func (r *fakeGrnRepo) Snapshot(ctx context.Context) ([]domain.GrnRecord, error) {
	sorted := append([]domain.GrnRecord{}, r.items...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].CreatedAt.After(sorted[i].CreatedAt) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	return sorted, nil
}

func (r *fakeGrnRepo) Create(ctx context.Context, g domain.GrnRecord) (string, error) {
	g.ID = primitive.NewObjectID()
	r.items = append(r.items, g)
	return g.ID.Hex(), nil
}

func (r *fakeGrnRepo) Update(ctx context.Context, id string, g domain.GrnRecord) error {
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			g.ID = r.items[i].ID
			r.items[i] = g
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeGrnRepo) Delete(ctx context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeOccurrenceRepo struct {
	items []domain.Occurrence
}

func (r *fakeOccurrenceRepo) Snapshot(ctx context.Context) ([]domain.Occurrence, error) {
	return append([]domain.Occurrence{}, r.items...), nil
}

func (r *fakeOccurrenceRepo) Create(ctx context.Context, o domain.Occurrence) (string, error) {
	o.ID = primitive.NewObjectID()
	r.items = append(r.items, o)
	return o.ID.Hex(), nil
}

func (r *fakeOccurrenceRepo) Update(ctx context.Context, id string, o domain.Occurrence) error {
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			o.ID = r.items[i].ID
			r.items[i] = o
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOccurrenceRepo) Delete(ctx context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// recordingNotifier captures every change event in order.
type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Notify(ctx context.Context, collection string) {
	n.events = append(n.events, collection)
}

// countingCache tracks invalidations; reads always miss.
type countingCache struct {
	invalidations int
	sets          int
	stored        map[string][]byte
}

func (c *countingCache) GetReport(ctx context.Context, f expiry.Filter) ([]byte, bool, error) {
	if c.stored == nil {
		return nil, false, nil
	}
	payload, ok := c.stored[cacheKey(f)]
	return payload, ok, nil
}

func (c *countingCache) SetReport(ctx context.Context, f expiry.Filter, payload []byte) error {
	if c.stored == nil {
		c.stored = map[string][]byte{}
	}
	c.stored[cacheKey(f)] = payload
	c.sets++
	return nil
}

func (c *countingCache) InvalidateAll(ctx context.Context) error {
	c.invalidations++
	c.stored = nil
	return nil
}

func cacheKey(f expiry.Filter) string {
	return fmt.Sprintf("%s|%s|%s|%s", f.OutletID, f.ProductID, f.StartDate, f.EndDate)
}
