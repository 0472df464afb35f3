// backend-go/internal/expiry/filter.go
package expiry

import "github.com/andresuchdata/merchview/backend-go/internal/domain"

// MatchAll is the wildcard value for the outlet and product filter fields.
const MatchAll = "all"

// Filter captures the outlet/product/date-range/month-year constraints the
// analysis and reporting pages share. The zero value matches everything.
type Filter struct {
	OutletID  string `json:"outletId"`
	ProductID string `json:"productId"`

	// Inclusive calendar-date bounds, compared lexicographically as ISO
	// strings. An inverted range (start > end) simply matches nothing.
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	// Month ("01".."12") and Year ("2025") constrain the monthly rollup
	// export only; Matches ignores them.
	Month string `json:"month"`
	Year  string `json:"year"`
}

// Matches reports whether an entry satisfies the outlet, product and date
// range constraints. Zero-quantity entries are cut upstream, not here.
func (f Filter) Matches(e domain.ExpiryEntry) bool {
	if f.OutletID != "" && f.OutletID != MatchAll && e.OutletID != f.OutletID {
		return false
	}
	if f.ProductID != "" && f.ProductID != MatchAll && e.ProductID != f.ProductID {
		return false
	}
	if f.StartDate != "" && e.ExpiryDate < f.StartDate {
		return false
	}
	if f.EndDate != "" && e.ExpiryDate > f.EndDate {
		return false
	}
	return true
}

// MatchesMonth reports whether the entry's expiry year/month equal the
// filter's Year/Month where those are set, alongside the outlet and
// product constraints. The date-range bounds do not apply to the rollup.
func (f Filter) MatchesMonth(e domain.ExpiryEntry) bool {
	if f.OutletID != "" && f.OutletID != MatchAll && e.OutletID != f.OutletID {
		return false
	}
	if f.ProductID != "" && f.ProductID != MatchAll && e.ProductID != f.ProductID {
		return false
	}
	year, month := splitYearMonth(e.ExpiryDate)
	if f.Year != "" && f.Year != year {
		return false
	}
	if f.Month != "" && f.Month != month {
		return false
	}
	return true
}

func splitYearMonth(date string) (year, month string) {
	if len(date) >= 7 && date[4] == '-' {
		return date[:4], date[5:7]
	}
	return date, ""
}
