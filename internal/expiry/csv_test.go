// backend-go/internal/expiry/csv_test.go
package expiry

import (
	"strings"
	"testing"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
)

func TestProjectDetail(t *testing.T) {
	entries := []domain.ExpiryEntry{
		entryWithID("65a000000000000000000001", "o1", "p1", "B1", "2025-01-20", 3),
		entryWithID("65a000000000000000000002", "o1", "p1", "B1", "2025-03-10", 5),
		entryWithID("65a000000000000000000003", "o2", "p2", "B2", "2025-06-01", 7),
	}
	res := Aggregate(entries, Filter{}, refDate, testResolver())

	out := ProjectDetail(res)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if got, want := len(lines), 1+len(res.Groups); got != want {
		t.Fatalf("got %d lines, want %d (header + one per group)", got, want)
	}
	if lines[0] != "OUTLET,PRODUCT,SKU,BATCHNO,TOTAL QTY,EXPIRY DATES" {
		t.Errorf("header = %q", lines[0])
	}
	want := `"Central","Milk 1L","SKU-p1","B1","8","2025-01-20 (Qty:3) | 2025-03-10 (Qty:5)"`
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestProjectDetailQuotingIsLiteral(t *testing.T) {
	lookup := mapResolver{
		outlets:  map[string]string{"o1": `Main "North" Branch`},
		products: map[string]string{"p1": "Milk, 1L"},
	}
	entries := []domain.ExpiryEntry{
		entryWithID("65a000000000000000000001", "o1", "p1", "B1", "2025-06-01", 2),
	}
	res := Aggregate(entries, Filter{}, refDate, lookup)

	out := ProjectDetail(res)
	// Embedded quotes and commas pass through untouched.
	if !strings.Contains(out, `"Main "North" Branch","Milk, 1L"`) {
		t.Errorf("output does not preserve raw field bytes:\n%s", out)
	}
}

func TestProjectEntries(t *testing.T) {
	entries := []domain.ExpiryEntry{
		entryWithID("65a000000000000000000001", "o1", "p1", "B1", "2025-01-20", 3),
		entryWithID("65a000000000000000000002", "o1", "p1", "B1", "2025-03-10", 0),
		entryWithID("65a000000000000000000003", "o2", "p2", "B2", "2025-06-01", 7),
	}

	out := ProjectEntries(entries, Filter{OutletID: "o1"}, testResolver())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + two o1 entries)", len(lines))
	}
	if lines[0] != "OUTLET,PRODUCT,SKU,BATCHNO,EXPIRY,QTY" {
		t.Errorf("header = %q", lines[0])
	}
	// Zero quantity renders as an empty cell, and the entry is NOT dropped.
	if want := `"Central","Milk 1L","SKU-p1","B1","2025-03-10",""`; lines[2] != want {
		t.Errorf("zero-qty row = %q, want %q", lines[2], want)
	}
}

func TestProjectMonthlyRollup(t *testing.T) {
	entries := []domain.ExpiryEntry{
		entryWithID("65a000000000000000000001", "o1", "p1", "B1", "2025-02-05", 3),
		entryWithID("65a000000000000000000002", "o1", "p1", "B1", "2025-02-20", 5),
		entryWithID("65a000000000000000000003", "o1", "p1", "B1", "2025-03-01", 9),
		entryWithID("65a000000000000000000004", "o2", "p2", "B2", "2025-02-10", 1),
	}

	out := ProjectMonthlyRollup(entries, Filter{Month: "02", Year: "2025"}, testResolver())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + two groups)", len(lines))
	}
	if lines[0] != "OUTLET,PRODUCT,SKU,BATCHNO,TOTAL QTY" {
		t.Errorf("header = %q", lines[0])
	}
	// March entry excluded from the o1 group's sum.
	if want := `"Central","Milk 1L","SKU-p1","B1","8"`; lines[1] != want {
		t.Errorf("rollup row = %q, want %q", lines[1], want)
	}
	if want := `"Harbor","Yogurt","SKU-p2","B2","1"`; lines[2] != want {
		t.Errorf("rollup row = %q, want %q", lines[2], want)
	}
}
