// backend-go/internal/service/outlet_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/merchview/backend-go/internal/cache"
	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
)

const outletsCollection = "outlets"

type OutletService struct {
	outlets  repository.OutletRepository
	products repository.ProductRepository
	cache    cache.AnalysisCache
	notifier ChangeNotifier
}

func NewOutletService(outlets repository.OutletRepository, products repository.ProductRepository, cacheImpl cache.AnalysisCache, notifier ChangeNotifier) *OutletService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalysisCache()
	}
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &OutletService{outlets: outlets, products: products, cache: cacheImpl, notifier: notifier}
}

func (s *OutletService) List(ctx context.Context) ([]domain.Outlet, error) {
	return s.outlets.Snapshot(ctx)
}

func (s *OutletService) Create(ctx context.Context, o domain.Outlet) (domain.Outlet, error) {
	if err := normalizeOutlet(&o); err != nil {
		return domain.Outlet{}, err
	}

	id, err := s.outlets.Create(ctx, o)
	if err != nil {
		return domain.Outlet{}, err
	}
	s.changed(ctx)

	created := o
	if oid, err := parseHex(id); err == nil {
		created.ID = oid
	}
	return created, nil
}

func (s *OutletService) Update(ctx context.Context, id string, o domain.Outlet) error {
	if err := normalizeOutlet(&o); err != nil {
		return err
	}
	if err := s.outlets.Update(ctx, id, o); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *OutletService) Delete(ctx context.Context, id string) error {
	if err := s.outlets.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// ProductsAt lists the products stocked at an outlet: the outlet's
// product set is membership-only, so the product records are joined in
// from the products collection.
func (s *OutletService) ProductsAt(ctx context.Context, outletID string) ([]domain.Product, error) {
	outlets, err := s.outlets.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var outlet *domain.Outlet
	for i := range outlets {
		if outlets[i].ID.Hex() == outletID {
			outlet = &outlets[i]
			break
		}
	}
	if outlet == nil {
		return nil, fmt.Errorf("%w: outlet %s", domain.ErrNotFound, outletID)
	}

	products, err := s.products.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	listed := []domain.Product{}
	for _, p := range products {
		if outlet.Products[p.ID.Hex()] {
			listed = append(listed, p)
		}
	}
	return listed, nil
}

func (s *OutletService) changed(ctx context.Context) {
	s.notifier.Notify(ctx, outletsCollection)
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("outlets: analysis cache invalidation failed")
	}
}

func normalizeOutlet(o *domain.Outlet) error {
	o.Name = strings.TrimSpace(o.Name)
	o.Location = strings.TrimSpace(o.Location)
	o.Notes = strings.TrimSpace(o.Notes)
	if o.Products == nil {
		o.Products = map[string]bool{}
	}
	if o.Name == "" {
		return fmt.Errorf("%w: outlet name is required", domain.ErrValidation)
	}
	return nil
}
