// backend-go/internal/expiry/csv.go
package expiry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
)

// Export filenames, kept byte-for-byte compatible with the files the
// console has always produced.
const (
	DetailExportFilename  = "Merchandising_Analysis.csv"
	EntriesExportFilename = "Short Expiry Reports.csv"
	MonthlyExportFilename = "Monthly_Expiry_Report.csv"
)

// The projections wrap every field in double quotes and do not escape
// embedded quotes, matching the legacy export format. encoding/csv quotes
// minimally and escapes, which would change the bytes downstream tooling
// already consumes, so rows are assembled by hand.

// ProjectDetail renders an aggregation result as the analysis-page export:
// one row per group, the expiry-dates column concatenating each entry's
// date and quantity with a literal " | " separator. Output is
// deterministic: identical input produces identical bytes.
func ProjectDetail(res Result) string {
	var b strings.Builder
	b.WriteString("OUTLET,PRODUCT,SKU,BATCHNO,TOTAL QTY,EXPIRY DATES\n")

	for _, g := range res.Groups {
		dates := make([]string, 0, len(g.Entries))
		for _, e := range g.Entries {
			dates = append(dates, fmt.Sprintf("%s (Qty:%d)", e.ExpiryDate, e.Quantity))
		}
		writeRow(&b,
			g.OutletName,
			g.ProductName,
			g.SKU,
			g.BatchNo,
			strconv.Itoa(g.TotalQuantity),
			strings.Join(dates, " | "),
		)
	}

	return b.String()
}

// ProjectEntries renders the ungrouped per-entry report export. Unlike the
// aggregation pass this projects the raw ledger: zero-quantity entries are
// kept (with an empty quantity cell), only the filter applies.
func ProjectEntries(entries []domain.ExpiryEntry, f Filter, lookup NameResolver) string {
	var b strings.Builder
	b.WriteString("OUTLET,PRODUCT,SKU,BATCHNO,EXPIRY,QTY\n")

	for _, e := range entries {
		if !f.Matches(e) {
			continue
		}
		qty := ""
		if e.Quantity != 0 {
			qty = strconv.Itoa(e.Quantity)
		}
		writeRow(&b,
			lookup.OutletName(e.OutletID),
			lookup.ProductName(e.ProductID),
			e.SKU,
			e.BatchNo,
			e.ExpiryDate,
			qty,
		)
	}

	return b.String()
}

// ProjectMonthlyRollup renders the month/year rollup export: entries
// matching the filter's outlet/product and, where set, the requested
// expiry year and month, grouped by (outlet, product, batch) with summed
// quantities. Representative fields come from the first entry per key.
func ProjectMonthlyRollup(entries []domain.ExpiryEntry, f Filter, lookup NameResolver) string {
	type rollup struct {
		outletID  string
		productID string
		sku       string
		batchNo   string
		totalQty  int
	}

	var order []string
	grouped := map[string]*rollup{}

	for _, e := range entries {
		if !f.MatchesMonth(e) {
			continue
		}
		key := GroupKey(e.OutletID, e.ProductID, e.BatchNo)
		r, ok := grouped[key]
		if !ok {
			r = &rollup{
				outletID:  e.OutletID,
				productID: e.ProductID,
				sku:       e.SKU,
				batchNo:   e.BatchNo,
			}
			grouped[key] = r
			order = append(order, key)
		}
		r.totalQty += e.Quantity
	}

	var b strings.Builder
	b.WriteString("OUTLET,PRODUCT,SKU,BATCHNO,TOTAL QTY\n")
	for _, key := range order {
		r := grouped[key]
		writeRow(&b,
			lookup.OutletName(r.outletID),
			lookup.ProductName(r.productID),
			r.sku,
			r.batchNo,
			strconv.Itoa(r.totalQty),
		)
	}

	return b.String()
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(f)
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
