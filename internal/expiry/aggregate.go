// backend-go/internal/expiry/aggregate.go
package expiry

import "github.com/andresuchdata/merchview/backend-go/internal/domain"

// NameResolver turns outlet and product ids into display names. The page
// caches live outside this package; implementations never fail and return
// "Unknown" for dangling references.
type NameResolver interface {
	OutletName(id string) string
	ProductName(id string) string
	ProductCategory(id string) string
}

// Unknown is the placeholder for references that do not resolve.
const Unknown = "Unknown"

// GroupEntry is one ledger entry inside a group, tagged with its urgency
// bucket. Bucket is empty when the entry's date did not parse; such
// entries stay in the group and its totals but are left unclassified.
type GroupEntry struct {
	ID         string `json:"id"`
	ExpiryDate string `json:"expiryDate"`
	Quantity   int    `json:"quantity"`
	Bucket     Bucket `json:"bucket,omitempty"`
}

// Group is one logical batch-at-outlet: all entries sharing the
// (outlet, product, batch) key, in insertion order. Representative fields
// come from the first entry seen for the key.
type Group struct {
	Key           string       `json:"key"`
	OutletID      string       `json:"outletId"`
	ProductID     string       `json:"productId"`
	OutletName    string       `json:"outletName"`
	ProductName   string       `json:"productName"`
	SKU           string       `json:"sku"`
	BatchNo       string       `json:"batchNo"`
	Notes         string       `json:"notes"`
	TotalQuantity int          `json:"totalQuantity"`
	Entries       []GroupEntry `json:"entries"`
}

// NearExpiryItem is an individual entry (not a group) whose bucket is
// critical or warning.
type NearExpiryItem struct {
	EntryID     string `json:"entryId"`
	OutletName  string `json:"outletName"`
	ProductName string `json:"productName"`
	BatchNo     string `json:"batchNo"`
	ExpiryDate  string `json:"expiryDate"`
	Quantity    int    `json:"quantity"`
	Bucket      Bucket `json:"bucket"`
}

// Result is one full aggregation pass: grouped rows for the table,
// flat stock tallies for the charts and the near-expiry listing.
// CategoryStock is keyed by resolved product category ("Unknown" when the
// product reference dangles); OutletStock is keyed by outlet id.
type Result struct {
	Groups        []Group        `json:"groups"`
	CategoryStock map[string]int `json:"categoryStock"`
	OutletStock   map[string]int `json:"outletStock"`
	NearExpiry    []NearExpiryItem `json:"nearExpiry"`
	HasCritical   bool           `json:"hasCritical"`
}

// Aggregate collapses a flat expiry ledger into grouped, aggregated
// projections. It retains only entries with quantity > 0 that satisfy the
// filter, partitions them by (outlet, product, batch) preserving
// first-seen key order and per-group insertion order, and accumulates the
// category and outlet stock tallies over the same retained entries.
// Pure: no I/O, no mutation of the input, deterministic for a given input
// order and reference date.
func Aggregate(entries []domain.ExpiryEntry, f Filter, referenceDate string, lookup NameResolver) Result {
	res := Result{
		Groups:        []Group{},
		CategoryStock: map[string]int{},
		OutletStock:   map[string]int{},
		NearExpiry:    []NearExpiryItem{},
	}

	index := map[string]int{} // group key -> position in res.Groups

	for _, e := range entries {
		if e.Quantity <= 0 {
			continue
		}
		if !f.Matches(e) {
			continue
		}

		bucket, err := Classify(e.ExpiryDate, referenceDate)
		if err != nil {
			bucket = ""
		}

		key := GroupKey(e.OutletID, e.ProductID, e.BatchNo)
		pos, ok := index[key]
		if !ok {
			pos = len(res.Groups)
			index[key] = pos
			res.Groups = append(res.Groups, Group{
				Key:         key,
				OutletID:    e.OutletID,
				ProductID:   e.ProductID,
				OutletName:  lookup.OutletName(e.OutletID),
				ProductName: lookup.ProductName(e.ProductID),
				SKU:         e.SKU,
				BatchNo:     e.BatchNo,
				Notes:       e.Notes,
			})
		}
		g := &res.Groups[pos]
		g.TotalQuantity += e.Quantity
		g.Entries = append(g.Entries, GroupEntry{
			ID:         e.ID.Hex(),
			ExpiryDate: e.ExpiryDate,
			Quantity:   e.Quantity,
			Bucket:     bucket,
		})

		res.CategoryStock[lookup.ProductCategory(e.ProductID)] += e.Quantity
		res.OutletStock[e.OutletID] += e.Quantity

		if bucket == BucketCritical || bucket == BucketWarning {
			if bucket == BucketCritical {
				res.HasCritical = true
			}
			res.NearExpiry = append(res.NearExpiry, NearExpiryItem{
				EntryID:     e.ID.Hex(),
				OutletName:  g.OutletName,
				ProductName: g.ProductName,
				BatchNo:     e.BatchNo,
				ExpiryDate:  e.ExpiryDate,
				Quantity:    e.Quantity,
				Bucket:      bucket,
			})
		}
	}

	return res
}

// GroupAll partitions every entry of the ledger by group key with no
// quantity cut and no filtering. This backs the raw expiry listing, which
// shows zero-quantity entries the aggregates exclude.
func GroupAll(entries []domain.ExpiryEntry, referenceDate string, lookup NameResolver) []Group {
	groups := []Group{}
	index := map[string]int{}

	for _, e := range entries {
		bucket, err := Classify(e.ExpiryDate, referenceDate)
		if err != nil {
			bucket = ""
		}

		key := GroupKey(e.OutletID, e.ProductID, e.BatchNo)
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, Group{
				Key:         key,
				OutletID:    e.OutletID,
				ProductID:   e.ProductID,
				OutletName:  lookup.OutletName(e.OutletID),
				ProductName: lookup.ProductName(e.ProductID),
				SKU:         e.SKU,
				BatchNo:     e.BatchNo,
				Notes:       e.Notes,
			})
		}
		g := &groups[pos]
		g.TotalQuantity += e.Quantity
		g.Entries = append(g.Entries, GroupEntry{
			ID:         e.ID.Hex(),
			ExpiryDate: e.ExpiryDate,
			Quantity:   e.Quantity,
			Bucket:     bucket,
		})
	}

	return groups
}

// GroupKey builds the composite key identifying one logical batch-at-outlet.
func GroupKey(outletID, productID, batchNo string) string {
	return outletID + "_" + productID + "_" + batchNo
}
