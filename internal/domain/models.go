// backend-go/internal/domain/models.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Outlet represents a retail outlet and the set of products stocked there.
// Products is membership-only: presence of an id means the product is listed
// at this outlet.
type Outlet struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Location string             `json:"location" bson:"location"`
	Notes    string             `json:"notes" bson:"notes"`
	Products map[string]bool    `json:"products" bson:"products"`
}

// Product is a master-data record. BatchNo is the default batch suggested
// when recording expiries for this product.
type Product struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	SKU      string             `json:"sku" bson:"sku"`
	Category string             `json:"category" bson:"category"`
	BatchNo  string             `json:"batchNo" bson:"batchNo"`
	Notes    string             `json:"notes" bson:"notes"`
}

// ExpiryEntry is one line of the stock-with-expiry ledger. Several entries
// may share the same (outlet, product, batch); they are collapsed into one
// logical group only at render/aggregation time. OutletID and ProductID are
// stored as plain id strings and may dangle; consumers resolve them through
// a lookup and fall back to "Unknown".
type ExpiryEntry struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OutletID   string             `json:"outletId" bson:"outletId"`
	ProductID  string             `json:"productId" bson:"productId"`
	SKU        string             `json:"sku" bson:"sku"`
	BatchNo    string             `json:"batchNo" bson:"batchNo"`
	ExpiryDate string             `json:"expiryDate" bson:"expiryDate"` // calendar date, YYYY-MM-DD
	Quantity   int                `json:"quantity" bson:"quantity"`
	Notes      string             `json:"notes" bson:"notes"`
}

// GrnRecord is a goods-received note. Independent of the expiry ledger.
type GrnRecord struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OutletID  string             `json:"outletId" bson:"outletId"`
	Reason    string             `json:"reason" bson:"reason"`
	Date      string             `json:"date" bson:"date"`
	DocURL    string             `json:"docUrl" bson:"docUrl"`
	Notes     string             `json:"notes" bson:"notes"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Occurrence is a field incident log entry. Product is optional.
type Occurrence struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Outlet      string             `json:"outlet" bson:"outlet"`
	Product     string             `json:"product" bson:"product"`
	Type        string             `json:"type" bson:"type"`
	Severity    string             `json:"severity" bson:"severity"`
	Date        string             `json:"date" bson:"date"`
	Description string             `json:"description" bson:"description"`
	ActionTaken string             `json:"actionTaken" bson:"actionTaken"`
	Status      string             `json:"status" bson:"status"`
}

// OccurrenceFilter narrows the occurrence listing.
type OccurrenceFilter struct {
	Outlet string `json:"outlet"`
	Status string `json:"status"`
}

// BulkDeleteResult reports the outcome of one delete inside a bulk group
// delete. The underlying store has no multi-key transactions, so each
// record succeeds or fails on its own.
type BulkDeleteResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
