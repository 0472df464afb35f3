// backend-go/internal/expiry/filter_test.go
package expiry

import (
	"testing"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
)

func TestFilterMatches(t *testing.T) {
	entry := domain.ExpiryEntry{
		OutletID:   "o1",
		ProductID:  "p1",
		ExpiryDate: "2025-03-15",
		Quantity:   5,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter matches everything", Filter{}, true},
		{"wildcard outlet and product", Filter{OutletID: "all", ProductID: "all"}, true},
		{"matching outlet", Filter{OutletID: "o1"}, true},
		{"other outlet", Filter{OutletID: "o2"}, false},
		{"matching product", Filter{ProductID: "p1"}, true},
		{"other product", Filter{ProductID: "p2"}, false},
		{"inside range", Filter{StartDate: "2025-03-01", EndDate: "2025-03-31"}, true},
		{"start bound inclusive", Filter{StartDate: "2025-03-15"}, true},
		{"end bound inclusive", Filter{EndDate: "2025-03-15"}, true},
		{"before range", Filter{StartDate: "2025-03-16"}, false},
		{"after range", Filter{EndDate: "2025-03-14"}, false},
		{"inverted range matches nothing", Filter{StartDate: "2025-04-01", EndDate: "2025-03-01"}, false},
		{"month and year ignored", Filter{Month: "12", Year: "1999"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(entry); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterMatchesMonth(t *testing.T) {
	entry := domain.ExpiryEntry{
		OutletID:   "o1",
		ProductID:  "p1",
		ExpiryDate: "2025-02-10",
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter", Filter{}, true},
		{"matching month and year", Filter{Month: "02", Year: "2025"}, true},
		{"matching month only", Filter{Month: "02"}, true},
		{"other month", Filter{Month: "03", Year: "2025"}, false},
		{"other year", Filter{Month: "02", Year: "2024"}, false},
		{"outlet still applies", Filter{OutletID: "o2", Month: "02"}, false},
		{"date range does not apply", Filter{StartDate: "2025-03-01", EndDate: "2025-03-31", Month: "02"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.MatchesMonth(entry); got != tt.want {
				t.Errorf("MatchesMonth() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("malformed date never matches a set month", func(t *testing.T) {
		bad := domain.ExpiryEntry{ExpiryDate: "garbage"}
		if (Filter{Month: "02"}).MatchesMonth(bad) {
			t.Error("MatchesMonth() matched a malformed date")
		}
	})
}
