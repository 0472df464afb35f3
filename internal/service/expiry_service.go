// backend-go/internal/service/expiry_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/merchview/backend-go/internal/cache"
	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/expiry"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
)

const expiriesCollection = "expiries"

type ExpiryService struct {
	expiries repository.ExpiryRepository
	outlets  repository.OutletRepository
	products repository.ProductRepository
	cache    cache.AnalysisCache
	notifier ChangeNotifier
	now      func() time.Time
}

func NewExpiryService(expiries repository.ExpiryRepository, outlets repository.OutletRepository, products repository.ProductRepository, cacheImpl cache.AnalysisCache, notifier ChangeNotifier) *ExpiryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalysisCache()
	}
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &ExpiryService{
		expiries: expiries,
		outlets:  outlets,
		products: products,
		cache:    cacheImpl,
		notifier: notifier,
		now:      time.Now,
	}
}

// ListGrouped returns the whole ledger grouped by (outlet, product, batch)
// the way the expiry page displays it: every entry kept, including
// zero-quantity ones, with per-entry ids so single entries can be edited
// or deleted out of a group.
func (s *ExpiryService) ListGrouped(ctx context.Context) ([]expiry.Group, error) {
	entries, err := s.expiries.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := s.lookup(ctx)
	if err != nil {
		return nil, err
	}
	return expiry.GroupAll(entries, s.today(), lookup), nil
}

func (s *ExpiryService) Create(ctx context.Context, e domain.ExpiryEntry) (domain.ExpiryEntry, error) {
	if err := normalizeExpiry(&e); err != nil {
		return domain.ExpiryEntry{}, err
	}

	id, err := s.expiries.Create(ctx, e)
	if err != nil {
		return domain.ExpiryEntry{}, err
	}
	s.changed(ctx)

	created := e
	if oid, err := parseHex(id); err == nil {
		created.ID = oid
	}
	return created, nil
}

func (s *ExpiryService) Update(ctx context.Context, id string, e domain.ExpiryEntry) error {
	if err := normalizeExpiry(&e); err != nil {
		return err
	}
	if err := s.expiries.Update(ctx, id, e); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *ExpiryService) Delete(ctx context.Context, id string) error {
	if err := s.expiries.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// DeleteGroup removes every ledger entry sharing the group key. The store
// has no multi-key transactions, so each delete is an independent request;
// the result reports success or failure per record and a partial outcome
// is surfaced, never rolled back.
func (s *ExpiryService) DeleteGroup(ctx context.Context, outletID, productID, batchNo string) ([]domain.BulkDeleteResult, error) {
	entries, err := s.expiries.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	key := expiry.GroupKey(outletID, productID, batchNo)
	results := []domain.BulkDeleteResult{}
	for _, e := range entries {
		if expiry.GroupKey(e.OutletID, e.ProductID, e.BatchNo) != key {
			continue
		}
		id := e.ID.Hex()
		if err := s.expiries.Delete(ctx, id); err != nil {
			results = append(results, domain.BulkDeleteResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, domain.BulkDeleteResult{ID: id, OK: true})
	}

	if len(results) > 0 {
		s.changed(ctx)
	}
	return results, nil
}

func (s *ExpiryService) lookup(ctx context.Context) (expiry.NameResolver, error) {
	outlets, err := s.outlets.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return newResolver(outlets, products), nil
}

func (s *ExpiryService) today() string {
	return s.now().Format("2006-01-02")
}

func (s *ExpiryService) changed(ctx context.Context) {
	s.notifier.Notify(ctx, expiriesCollection)
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("expiries: analysis cache invalidation failed")
	}
}

func normalizeExpiry(e *domain.ExpiryEntry) error {
	e.OutletID = strings.TrimSpace(e.OutletID)
	e.ProductID = strings.TrimSpace(e.ProductID)
	e.SKU = strings.TrimSpace(e.SKU)
	e.BatchNo = strings.TrimSpace(e.BatchNo)
	e.ExpiryDate = strings.TrimSpace(e.ExpiryDate)
	e.Notes = strings.TrimSpace(e.Notes)

	switch {
	case e.OutletID == "":
		return fmt.Errorf("%w: outlet is required", domain.ErrValidation)
	case e.ProductID == "":
		return fmt.Errorf("%w: product is required", domain.ErrValidation)
	case e.BatchNo == "":
		return fmt.Errorf("%w: batch number is required", domain.ErrValidation)
	case e.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
	}
	if _, err := expiry.ParseDate(e.ExpiryDate); err != nil {
		return err
	}
	return nil
}
