// backend-go/internal/service/expiry_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/expiry"
)

func newExpiryFixture(t *testing.T) (*ExpiryService, *fakeExpiryRepo, *recordingNotifier, *countingCache) {
	t.Helper()
	repo := &fakeExpiryRepo{}
	notifier := &recordingNotifier{}
	cache := &countingCache{}
	svc := NewExpiryService(repo, &fakeOutletRepo{}, &fakeProductRepo{}, cache, notifier)
	svc.now = func() time.Time { return time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC) }
	return svc, repo, notifier, cache
}

func TestExpiryCreateValidation(t *testing.T) {
	svc, _, _, _ := newExpiryFixture(t)

	valid := domain.ExpiryEntry{OutletID: "o1", ProductID: "p1", BatchNo: "B1", ExpiryDate: "2025-06-01", Quantity: 2}

	tests := []struct {
		name    string
		mutate  func(e *domain.ExpiryEntry)
		wantErr error
	}{
		{"missing outlet", func(e *domain.ExpiryEntry) { e.OutletID = "" }, domain.ErrValidation},
		{"missing product", func(e *domain.ExpiryEntry) { e.ProductID = " " }, domain.ErrValidation},
		{"missing batch", func(e *domain.ExpiryEntry) { e.BatchNo = "" }, domain.ErrValidation},
		{"negative quantity", func(e *domain.ExpiryEntry) { e.Quantity = -1 }, domain.ErrValidation},
		{"bad date", func(e *domain.ExpiryEntry) { e.ExpiryDate = "01/06/2025" }, expiry.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if _, err := svc.Create(context.Background(), e); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("zero quantity allowed", func(t *testing.T) {
		e := valid
		e.Quantity = 0
		if _, err := svc.Create(context.Background(), e); err != nil {
			t.Errorf("Create() error = %v, want nil", err)
		}
	})
}

func TestExpiryListGroupedKeepsZeroQuantity(t *testing.T) {
	svc, repo, _, _ := newExpiryFixture(t)
	ctx := context.Background()

	repo.Create(ctx, domain.ExpiryEntry{OutletID: "o1", ProductID: "p1", BatchNo: "B1", ExpiryDate: "2025-02-01", Quantity: 0})
	repo.Create(ctx, domain.ExpiryEntry{OutletID: "o1", ProductID: "p1", BatchNo: "B1", ExpiryDate: "2025-06-01", Quantity: 3})

	groups, err := svc.ListGrouped(ctx)
	if err != nil {
		t.Fatalf("ListGrouped() error = %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].Entries) != 2 {
		t.Errorf("got %d entries, want 2 (zero-quantity kept in the listing)", len(groups[0].Entries))
	}
	// Dangling outlet/product ids resolve to the placeholder, not an error.
	if groups[0].OutletName != expiry.Unknown {
		t.Errorf("outlet name = %q, want %q", groups[0].OutletName, expiry.Unknown)
	}
}

func TestExpiryDeleteGroup(t *testing.T) {
	svc, repo, notifier, cache := newExpiryFixture(t)
	ctx := context.Background()

	id1, _ := repo.Create(ctx, domain.ExpiryEntry{OutletID: "o1", ProductID: "p1", BatchNo: "B1", ExpiryDate: "2025-02-01", Quantity: 1})
	id2, _ := repo.Create(ctx, domain.ExpiryEntry{OutletID: "o1", ProductID: "p1", BatchNo: "B1", ExpiryDate: "2025-03-01", Quantity: 2})
	keepID, _ := repo.Create(ctx, domain.ExpiryEntry{OutletID: "o2", ProductID: "p1", BatchNo: "B1", ExpiryDate: "2025-03-01", Quantity: 2})

	results, err := svc.DeleteGroup(ctx, "o1", "p1", "B1")
	if err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if !r.OK {
			t.Errorf("result for %s: ok=false, error=%q", r.ID, r.Error)
		}
		if r.ID != id1 && r.ID != id2 {
			t.Errorf("unexpected id %s in results", r.ID)
		}
	}

	remaining, _ := repo.Snapshot(ctx)
	if len(remaining) != 1 || remaining[0].ID.Hex() != keepID {
		t.Errorf("other group's entry must survive, remaining = %v", remaining)
	}
	if len(notifier.events) != 1 || notifier.events[0] != "expiries" {
		t.Errorf("notifier events = %v, want one expiries event", notifier.events)
	}
	if cache.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidations)
	}
}

func TestExpiryDeleteGroupPartialFailure(t *testing.T) {
	svc, repo, _, _ := newExpiryFixture(t)
	ctx := context.Background()

	okID, _ := repo.Create(ctx, domain.ExpiryEntry{OutletID: "o1", ProductID: "p1", BatchNo: "B1", ExpiryDate: "2025-02-01", Quantity: 1})
	badID, _ := repo.Create(ctx, domain.ExpiryEntry{OutletID: "o1", ProductID: "p1", BatchNo: "B1", ExpiryDate: "2025-03-01", Quantity: 2})
	repo.failDelete = map[string]error{badID: errors.New("write conflict")}

	results, err := svc.DeleteGroup(ctx, "o1", "p1", "B1")
	if err != nil {
		t.Fatalf("DeleteGroup() error = %v, partial failure must not fail the call", err)
	}

	byID := map[string]domain.BulkDeleteResult{}
	for _, r := range results {
		byID[r.ID] = r
	}
	if !byID[okID].OK {
		t.Errorf("delete of %s should have succeeded: %+v", okID, byID[okID])
	}
	if byID[badID].OK || byID[badID].Error == "" {
		t.Errorf("delete of %s should have failed with an error message: %+v", badID, byID[badID])
	}
}

func TestExpiryDeleteGroupNoMatches(t *testing.T) {
	svc, _, notifier, _ := newExpiryFixture(t)

	results, err := svc.DeleteGroup(context.Background(), "o1", "p1", "B1")
	if err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if len(notifier.events) != 0 {
		t.Errorf("no deletes happened, but notifier got %v", notifier.events)
	}
}
