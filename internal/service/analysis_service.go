// backend-go/internal/service/analysis_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/merchview/backend-go/internal/cache"
	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/expiry"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
)

// AnalysisReport is the rendered analysis page payload. OutletNames maps
// outlet ids in OutletStock to display names so the charts can label
// their axes without another request.
type AnalysisReport struct {
	Groups        []expiry.Group          `json:"groups"`
	CategoryStock map[string]int          `json:"categoryStock"`
	OutletStock   map[string]int          `json:"outletStock"`
	OutletNames   map[string]string       `json:"outletNames"`
	NearExpiry    []expiry.NearExpiryItem `json:"nearExpiry"`
	HasCritical   bool                    `json:"hasCritical"`
}

type AnalysisService struct {
	expiries repository.ExpiryRepository
	outlets  repository.OutletRepository
	products repository.ProductRepository
	cache    cache.AnalysisCache
	now      func() time.Time
}

func NewAnalysisService(expiries repository.ExpiryRepository, outlets repository.OutletRepository, products repository.ProductRepository, cacheImpl cache.AnalysisCache) *AnalysisService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalysisCache()
	}
	return &AnalysisService{
		expiries: expiries,
		outlets:  outlets,
		products: products,
		cache:    cacheImpl,
		now:      time.Now,
	}
}

// Report builds the analysis payload for the filter, serving from cache
// when a fresh copy exists. The payload is cached post-serialization, so a
// hit skips the snapshot reads and the aggregation pass entirely.
func (s *AnalysisService) Report(ctx context.Context, f expiry.Filter) ([]byte, error) {
	if payload, ok, err := s.cache.GetReport(ctx, f); err != nil {
		log.Warn().Err(err).Msg("analysis: cache read failed, rebuilding")
	} else if ok {
		return payload, nil
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	res := expiry.Aggregate(snap.entries, f, s.today(), snap.lookup)
	report := AnalysisReport{
		Groups:        res.Groups,
		CategoryStock: res.CategoryStock,
		OutletStock:   res.OutletStock,
		OutletNames:   snap.outletNames(),
		NearExpiry:    res.NearExpiry,
		HasCritical:   res.HasCritical,
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetReport(ctx, f, payload); err != nil {
		log.Warn().Err(err).Msg("analysis: cache write failed")
	}
	return payload, nil
}

// ExportDetail renders the grouped analysis export, one row per group.
func (s *AnalysisService) ExportDetail(ctx context.Context, f expiry.Filter) (string, []byte, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return "", nil, err
	}
	res := expiry.Aggregate(snap.entries, f, s.today(), snap.lookup)
	return expiry.DetailExportFilename, []byte(expiry.ProjectDetail(res)), nil
}

// ExportEntries renders the ungrouped per-entry report export.
func (s *AnalysisService) ExportEntries(ctx context.Context, f expiry.Filter) (string, []byte, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return "", nil, err
	}
	return expiry.EntriesExportFilename, []byte(expiry.ProjectEntries(snap.entries, f, snap.lookup)), nil
}

// ExportMonthly renders the month/year rollup export.
func (s *AnalysisService) ExportMonthly(ctx context.Context, f expiry.Filter) (string, []byte, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return "", nil, err
	}
	return expiry.MonthlyExportFilename, []byte(expiry.ProjectMonthlyRollup(snap.entries, f, snap.lookup)), nil
}

type analysisSnapshot struct {
	entries []domain.ExpiryEntry
	outlets []domain.Outlet
	lookup  expiry.NameResolver
}

func (s *AnalysisService) load(ctx context.Context) (analysisSnapshot, error) {
	entries, err := s.expiries.Snapshot(ctx)
	if err != nil {
		return analysisSnapshot{}, err
	}
	outlets, err := s.outlets.Snapshot(ctx)
	if err != nil {
		return analysisSnapshot{}, err
	}
	products, err := s.products.Snapshot(ctx)
	if err != nil {
		return analysisSnapshot{}, err
	}
	return analysisSnapshot{
		entries: entries,
		outlets: outlets,
		lookup:  newResolver(outlets, products),
	}, nil
}

func (s analysisSnapshot) outletNames() map[string]string {
	names := make(map[string]string, len(s.outlets))
	for _, o := range s.outlets {
		names[o.ID.Hex()] = o.Name
	}
	return names
}

func (s *AnalysisService) today() string {
	return s.now().Format("2006-01-02")
}
