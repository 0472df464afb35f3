// backend-go/internal/service/occurrence_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
)

func seedOccurrences(t *testing.T, repo *fakeOccurrenceRepo) {
	t.Helper()
	ctx := context.Background()
	fixtures := []domain.Occurrence{
		{Outlet: "Central", Type: "spoilage", Severity: "high", Date: "2025-01-02", Status: "open"},
		{Outlet: "Central", Type: "shortage", Severity: "low", Date: "2025-01-03", Status: "resolved"},
		{Outlet: "Harbor", Type: "spoilage", Severity: "medium", Date: "2025-01-04", Status: "open"},
	}
	for _, o := range fixtures {
		if _, err := repo.Create(ctx, o); err != nil {
			t.Fatalf("seed occurrence: %v", err)
		}
	}
}

func TestOccurrenceListFilters(t *testing.T) {
	repo := &fakeOccurrenceRepo{}
	seedOccurrences(t, repo)
	svc := NewOccurrenceService(repo, nil)

	tests := []struct {
		name   string
		filter domain.OccurrenceFilter
		want   int
	}{
		{"no filter", domain.OccurrenceFilter{}, 3},
		{"all wildcard", domain.OccurrenceFilter{Outlet: "all", Status: "all"}, 3},
		{"by outlet", domain.OccurrenceFilter{Outlet: "Central"}, 2},
		{"by status", domain.OccurrenceFilter{Status: "open"}, 2},
		{"outlet and status", domain.OccurrenceFilter{Outlet: "Central", Status: "open"}, 1},
		{"no matches", domain.OccurrenceFilter{Outlet: "Nowhere"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("List() returned %d occurrences, want %d", len(got), tt.want)
			}
		})
	}
}

func TestOccurrenceCreateValidation(t *testing.T) {
	svc := NewOccurrenceService(&fakeOccurrenceRepo{}, nil)

	valid := domain.Occurrence{Outlet: "Central", Type: "spoilage", Severity: "high", Date: "2025-01-02", Status: "open"}

	tests := []struct {
		name   string
		mutate func(o *domain.Occurrence)
	}{
		{"missing outlet", func(o *domain.Occurrence) { o.Outlet = "" }},
		{"missing type", func(o *domain.Occurrence) { o.Type = "" }},
		{"missing severity", func(o *domain.Occurrence) { o.Severity = "" }},
		{"missing date", func(o *domain.Occurrence) { o.Date = "" }},
		{"missing status", func(o *domain.Occurrence) { o.Status = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			if _, err := svc.Create(context.Background(), o); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}

	t.Run("product is optional", func(t *testing.T) {
		o := valid
		o.Product = ""
		if _, err := svc.Create(context.Background(), o); err != nil {
			t.Errorf("Create() error = %v, want nil", err)
		}
	})
}

func TestOccurrenceWritesNotify(t *testing.T) {
	repo := &fakeOccurrenceRepo{}
	notifier := &recordingNotifier{}
	svc := NewOccurrenceService(repo, notifier)

	created, err := svc.Create(context.Background(), domain.Occurrence{Outlet: "Central", Type: "spoilage", Severity: "high", Date: "2025-01-02", Status: "open"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID.Hex()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(notifier.events) != 2 || notifier.events[0] != "occurrences" {
		t.Errorf("notifier events = %v, want two occurrences events", notifier.events)
	}
}
