// internal/core/domain/stock.go
package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the direction of a stock movement
type MovementType string

// Movement type constants
const (
	MovementIn     MovementType = "in"
	MovementOut    MovementType = "out"
	MovementAdjust MovementType = "adjust"
)

// Valid reports whether the movement type is one of in/out/adjust.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjust:
		return true
	}
	return false
}

// ProductKind distinguishes products sold as-is from products sold per variant
type ProductKind string

const (
	KindSimple  ProductKind = "simple"
	KindVariant ProductKind = "variant"
)

// StockLevel buckets a stock count for the admin inventory screen
type StockLevel string

const (
	StockLevelIn        StockLevel = "in-stock"
	StockLevelLow       StockLevel = "low-stock"
	StockLevelOut       StockLevel = "out-of-stock"
	StockLevelUntracked StockLevel = "untracked"
)

// ReasonMaxLength caps the free-text reason attached to a movement.
const ReasonMaxLength = 100

// StockItem is one stock-keeping unit: a product without variants, or a
// single variant of a product. VariantID is nil in the former case.
type StockItem struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     *int            `json:"stock"`
	IsActive  bool            `json:"is_active"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Kind derives the product kind from variant presence.
func (s *StockItem) Kind() ProductKind {
	if s.VariantID != nil {
		return KindVariant
	}
	return KindSimple
}

// Tracked reports whether stock is tracked for this unit. A nil stock
// means the unit does not participate in stock-level classification.
func (s *StockItem) Tracked() bool {
	return s.Stock != nil
}

// StockThresholds holds the per-kind low-stock boundaries. The asymmetry
// between simple products and variants is configurable rather than
// hard-coded; defaults come from config.
type StockThresholds struct {
	Simple  int
	Variant int
}

// DefaultThresholds returns the stock thresholds used when none are configured.
func DefaultThresholds() StockThresholds {
	return StockThresholds{Simple: 10, Variant: 5}
}

// forKind returns the threshold that applies to the given kind.
func (t StockThresholds) forKind(kind ProductKind) int {
	if kind == KindVariant {
		return t.Variant
	}
	return t.Simple
}

// Level classifies the item's current stock against the per-kind threshold.
// Untracked items fall outside every filterable bucket.
func (s *StockItem) Level(t StockThresholds) StockLevel {
	if !s.Tracked() {
		return StockLevelUntracked
	}
	stock := *s.Stock
	switch {
	case stock == 0:
		return StockLevelOut
	case stock < t.forKind(s.Kind()):
		return StockLevelLow
	default:
		return StockLevelIn
	}
}

// StockMovement is one append-only ledger entry. Rows are inserted exactly
// once per accepted adjustment and never updated or deleted.
type StockMovement struct {
	ID        uuid.UUID    `json:"id"`
	ProductID uuid.UUID    `json:"product_id"`
	VariantID *uuid.UUID   `json:"variant_id,omitempty"`
	Type      MovementType `json:"type"`
	Quantity  int          `json:"quantity"`
	Reason    string       `json:"reason,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// AdjustmentRequest describes one requested stock change.
type AdjustmentRequest struct {
	ProductID uuid.UUID    `json:"product_id"`
	VariantID *uuid.UUID   `json:"variant_id,omitempty"`
	Quantity  int          `json:"quantity"`
	Type      MovementType `json:"type"`
	Reason    string       `json:"reason,omitempty"`
}

// Validate checks the request shape before any store access.
func (r *AdjustmentRequest) Validate() error {
	ve := NewValidationError()
	if r.ProductID == uuid.Nil {
		ve.Add("product_id", "product_id is required")
	}
	if r.VariantID != nil && *r.VariantID == uuid.Nil {
		ve.Add("variant_id", "variant_id must be a valid identifier")
	}
	if !r.Type.Valid() {
		ve.Add("type", "type must be one of in, out, adjust")
	}
	if r.Quantity == 0 {
		ve.Add("quantity", "quantity must be non-zero")
	}
	if utf8.RuneCountInString(r.Reason) > ReasonMaxLength {
		ve.Add("reason", "reason must be at most 100 characters")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Apply computes the resulting stock for this request against the current
// value. The sign of the stored movement quantity is always the caller's
// original value; only the effect is normalized here.
//
//	in:     current + |quantity|
//	out:    current - |quantity|, rejected below zero
//	adjust: current + quantity, rejected below zero
func (r *AdjustmentRequest) Apply(current int) (int, error) {
	delta := r.Quantity
	switch r.Type {
	case MovementIn:
		if delta < 0 {
			delta = -delta
		}
	case MovementOut:
		if delta < 0 {
			delta = -delta
		}
		delta = -delta
	case MovementAdjust:
		// direct correction, sign kept as-is
	}
	result := current + delta
	if result < 0 {
		return 0, ErrInsufficientStock
	}
	return result, nil
}

// AdjustmentResult pairs the updated item with its ledger entry.
type AdjustmentResult struct {
	Item     *StockItem     `json:"item"`
	Movement *StockMovement `json:"movement"`
}

// BulkItemError records why one entry of a bulk adjustment failed.
type BulkItemError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// BulkAdjustmentResult summarizes a best-effort batch: earlier successes
// stand even when a later entry fails.
type BulkAdjustmentResult struct {
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Results   []AdjustmentResult `json:"results,omitempty"`
	Errors    []BulkItemError    `json:"errors,omitempty"`
}
