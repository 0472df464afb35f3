// backend-go/internal/service/resolver.go
package service

import (
	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/expiry"
)

// snapshotResolver resolves outlet/product ids against point-in-time
// snapshots. The page-level caches of the old console live here, threaded
// into the aggregation engine as a lookup instead of global state.
// Dangling references resolve to "Unknown" and never fail.
type snapshotResolver struct {
	outlets  map[string]domain.Outlet
	products map[string]domain.Product
}

func newResolver(outlets []domain.Outlet, products []domain.Product) *snapshotResolver {
	r := &snapshotResolver{
		outlets:  make(map[string]domain.Outlet, len(outlets)),
		products: make(map[string]domain.Product, len(products)),
	}
	for _, o := range outlets {
		r.outlets[o.ID.Hex()] = o
	}
	for _, p := range products {
		r.products[p.ID.Hex()] = p
	}
	return r
}

func (r *snapshotResolver) OutletName(id string) string {
	if o, ok := r.outlets[id]; ok && o.Name != "" {
		return o.Name
	}
	return expiry.Unknown
}

func (r *snapshotResolver) ProductName(id string) string {
	if p, ok := r.products[id]; ok && p.Name != "" {
		return p.Name
	}
	return expiry.Unknown
}

func (r *snapshotResolver) ProductCategory(id string) string {
	if p, ok := r.products[id]; ok && p.Category != "" {
		return p.Category
	}
	return expiry.Unknown
}
