// backend-go/internal/service/product_service.go
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

const productsCollection = "products"

type ProductService struct {
	products repository.ProductRepository
	cache    cache.AnalysisCache
	notifier ChangeNotifier
}

func NewProductService(products repository.ProductRepository, cacheImpl cache.AnalysisCache, notifier ChangeNotifier) *ProductService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalysisCache()
	}
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &ProductService{products: products, cache: cacheImpl, notifier: notifier}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.Snapshot(ctx)
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := normalizeProduct(&p); err != nil {
		return domain.Product{}, err
	}
	if err := s.checkDuplicate(ctx, p, ""); err != nil {
		return domain.Product{}, err
	}

	id, err := s.products.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	s.changed(ctx)

	created := p
	if oid, err := parseHex(id); err == nil {
		created.ID = oid
	}
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, p domain.Product) error {
	if err := normalizeProduct(&p); err != nil {
		return err
	}
	if err := s.checkDuplicate(ctx, p, id); err != nil {
		return err
	}
	if err := s.products.Update(ctx, id, p); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// checkDuplicate rejects a save when an existing record matches on every
// field: name, sku, batch and notes case-insensitively, category exactly.
// excludeID skips the record being edited. This is a plain read-then-write
// scan over the collection snapshot; a concurrent save can still race it,
// the store offers nothing stronger.
func (s *ProductService) checkDuplicate(ctx context.Context, p domain.Product, excludeID string) error {
	products, err := s.products.Snapshot(ctx)
	if err != nil {
		return err
	}

	for _, existing := range products {
		if excludeID != "" && existing.ID.Hex() == excludeID {
			continue
		}
		if strings.EqualFold(existing.Name, p.Name) &&
			strings.EqualFold(existing.SKU, p.SKU) &&
			existing.Category == p.Category &&
			strings.EqualFold(existing.BatchNo, p.BatchNo) &&
			strings.EqualFold(existing.Notes, p.Notes) {
			return domain.ErrDuplicateProduct
		}
	}
	return nil
}

func (s *ProductService) changed(ctx context.Context) {
	s.notifier.Notify(ctx, productsCollection)
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("products: analysis cache invalidation failed")
	}
}

func normalizeProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	p.Category = strings.TrimSpace(p.Category)
	p.BatchNo = strings.TrimSpace(p.BatchNo)
	p.Notes = strings.TrimSpace(p.Notes)

	switch {
	case p.Name == "":
		return fmt.Errorf("%w: product name is required", domain.ErrValidation)
	case p.SKU == "":
		return fmt.Errorf("%w: sku is required", domain.ErrValidation)
	case p.Category == "":
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	case p.BatchNo == "":
		return fmt.Errorf("%w: batch number is required", domain.ErrValidation)
	}
	return nil
}
