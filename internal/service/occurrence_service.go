// backend-go/internal/service/occurrence_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
)

const occurrencesCollection = "occurrences"

type OccurrenceService struct {
	occurrences repository.OccurrenceRepository
	notifier    ChangeNotifier
}

func NewOccurrenceService(occurrences repository.OccurrenceRepository, notifier ChangeNotifier) *OccurrenceService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &OccurrenceService{occurrences: occurrences, notifier: notifier}
}

// List applies the outlet and status filters in memory; "all" or an empty
// value on either dimension leaves that dimension unfiltered.
func (s *OccurrenceService) List(ctx context.Context, f domain.OccurrenceFilter) ([]domain.Occurrence, error) {
	all, err := s.occurrences.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	filtered := []domain.Occurrence{}
	for _, o := range all {
		if !matchesDimension(f.Outlet, o.Outlet) {
			continue
		}
		if !matchesDimension(f.Status, o.Status) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered, nil
}

func (s *OccurrenceService) Create(ctx context.Context, o domain.Occurrence) (domain.Occurrence, error) {
	if err := normalizeOccurrence(&o); err != nil {
		return domain.Occurrence{}, err
	}

	id, err := s.occurrences.Create(ctx, o)
	if err != nil {
		return domain.Occurrence{}, err
	}
	s.notifier.Notify(ctx, occurrencesCollection)

	created := o
	if oid, err := parseHex(id); err == nil {
		created.ID = oid
	}
	return created, nil
}

func (s *OccurrenceService) Update(ctx context.Context, id string, o domain.Occurrence) error {
	if err := normalizeOccurrence(&o); err != nil {
		return err
	}
	if err := s.occurrences.Update(ctx, id, o); err != nil {
		return err
	}
	s.notifier.Notify(ctx, occurrencesCollection)
	return nil
}

func (s *OccurrenceService) Delete(ctx context.Context, id string) error {
	if err := s.occurrences.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ctx, occurrencesCollection)
	return nil
}

func matchesDimension(want, got string) bool {
	return want == "" || want == "all" || want == got
}

func normalizeOccurrence(o *domain.Occurrence) error {
	o.Outlet = strings.TrimSpace(o.Outlet)
	o.Product = strings.TrimSpace(o.Product)
	o.Type = strings.TrimSpace(o.Type)
	o.Severity = strings.TrimSpace(o.Severity)
	o.Date = strings.TrimSpace(o.Date)
	o.Description = strings.TrimSpace(o.Description)
	o.ActionTaken = strings.TrimSpace(o.ActionTaken)
	o.Status = strings.TrimSpace(o.Status)

	switch {
	case o.Outlet == "":
		return fmt.Errorf("%w: outlet is required", domain.ErrValidation)
	case o.Type == "":
		return fmt.Errorf("%w: type is required", domain.ErrValidation)
	case o.Severity == "":
		return fmt.Errorf("%w: severity is required", domain.ErrValidation)
	case o.Date == "":
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	case o.Status == "":
		return fmt.Errorf("%w: status is required", domain.ErrValidation)
	}
	return nil
}
