package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/shopadmin-be/internal/core/domain"
)

func TestAdjustmentRequest_Apply(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		quantity int
		mvType   domain.MovementType
		expected int
		wantErr  error
	}{
		{
			name:     "in_adds_quantity",
			current:  10,
			quantity: 5,
			mvType:   domain.MovementIn,
			expected: 15,
		},
		{
			name:     "in_normalizes_negative_quantity",
			current:  10,
			quantity: -5,
			mvType:   domain.MovementIn,
			expected: 15,
		},
		{
			name:     "out_subtracts_quantity",
			current:  10,
			quantity: 4,
			mvType:   domain.MovementOut,
			expected: 6,
		},
		{
			name:     "out_to_exactly_zero",
			current:  4,
			quantity: 4,
			mvType:   domain.MovementOut,
			expected: 0,
		},
		{
			name:     "out_below_zero_rejected",
			current:  3,
			quantity: 4,
			mvType:   domain.MovementOut,
			wantErr:  domain.ErrInsufficientStock,
		},
		{
			name:     "adjust_positive_correction",
			current:  10,
			quantity: 7,
			mvType:   domain.MovementAdjust,
			expected: 17,
		},
		{
			name:     "adjust_negative_correction",
			current:  10,
			quantity: -10,
			mvType:   domain.MovementAdjust,
			expected: 0,
		},
		{
			name:     "adjust_below_zero_rejected",
			current:  2,
			quantity: -3,
			mvType:   domain.MovementAdjust,
			wantErr:  domain.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.AdjustmentRequest{
				ProductID: uuid.New(),
				Quantity:  tt.quantity,
				Type:      tt.mvType,
			}

			result, err := req.Apply(tt.current)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAdjustmentRequest_Validate(t *testing.T) {
	validID := uuid.New()

	tests := []struct {
		name      string
		modify    func(*domain.AdjustmentRequest)
		wantField string
	}{
		{
			name:   "valid_request",
			modify: func(r *domain.AdjustmentRequest) {},
		},
		{
			name: "missing_product_id",
			modify: func(r *domain.AdjustmentRequest) {
				r.ProductID = uuid.Nil
			},
			wantField: "product_id",
		},
		{
			name: "nil_uuid_variant_id",
			modify: func(r *domain.AdjustmentRequest) {
				nilID := uuid.Nil
				r.VariantID = &nilID
			},
			wantField: "variant_id",
		},
		{
			name: "unknown_movement_type",
			modify: func(r *domain.AdjustmentRequest) {
				r.Type = "restock"
			},
			wantField: "type",
		},
		{
			name: "zero_quantity",
			modify: func(r *domain.AdjustmentRequest) {
				r.Quantity = 0
			},
			wantField: "quantity",
		},
		{
			name: "reason_too_long",
			modify: func(r *domain.AdjustmentRequest) {
				r.Reason = strings.Repeat("x", domain.ReasonMaxLength+1)
			},
			wantField: "reason",
		},
		{
			name: "multibyte_reason_at_limit",
			modify: func(r *domain.AdjustmentRequest) {
				// 100 runes, 200 bytes; the limit counts characters
				r.Reason = strings.Repeat("é", domain.ReasonMaxLength)
			},
		},
		{
			name: "multibyte_reason_over_limit",
			modify: func(r *domain.AdjustmentRequest) {
				r.Reason = strings.Repeat("é", domain.ReasonMaxLength+1)
			},
			wantField: "reason",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.AdjustmentRequest{
				ProductID: validID,
				Quantity:  5,
				Type:      domain.MovementIn,
				Reason:    "restock",
			}
			tt.modify(&req)

			err := req.Validate()

			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.wantField)
		})
	}
}

func TestStockItem_Level(t *testing.T) {
	thresholds := domain.DefaultThresholds()
	variantID := uuid.New()

	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name      string
		stock     *int
		variantID *uuid.UUID
		expected  domain.StockLevel
	}{
		{
			name:     "untracked_product",
			stock:    nil,
			expected: domain.StockLevelUntracked,
		},
		{
			name:     "product_out_of_stock",
			stock:    intPtr(0),
			expected: domain.StockLevelOut,
		},
		{
			name:     "product_low_below_simple_threshold",
			stock:    intPtr(7),
			expected: domain.StockLevelLow,
		},
		{
			name:     "product_in_stock_at_simple_threshold",
			stock:    intPtr(10),
			expected: domain.StockLevelIn,
		},
		{
			name:      "variant_in_stock_above_variant_threshold",
			stock:     intPtr(7),
			variantID: &variantID,
			expected:  domain.StockLevelIn,
		},
		{
			name:      "variant_low_below_variant_threshold",
			stock:     intPtr(3),
			variantID: &variantID,
			expected:  domain.StockLevelLow,
		},
		{
			name:      "variant_out_of_stock",
			stock:     intPtr(0),
			variantID: &variantID,
			expected:  domain.StockLevelOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &domain.StockItem{
				ID:        uuid.New(),
				ProductID: uuid.New(),
				VariantID: tt.variantID,
				Stock:     tt.stock,
			}

			assert.Equal(t, tt.expected, item.Level(thresholds))
		})
	}
}

func TestStockItem_Kind(t *testing.T) {
	variantID := uuid.New()

	simple := &domain.StockItem{ProductID: uuid.New()}
	assert.Equal(t, domain.KindSimple, simple.Kind())

	variant := &domain.StockItem{ProductID: uuid.New(), VariantID: &variantID}
	assert.Equal(t, domain.KindVariant, variant.Kind())
}

func TestValidationError_Error(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("quantity", "quantity must be non-zero")
	ve.Add("type", "type must be one of in, out, adjust")
	// First message wins for a repeated field
	ve.Add("quantity", "another message")

	msg := ve.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "quantity must be non-zero")
	assert.NotContains(t, msg, "another message")
}

func TestMovementType_Valid(t *testing.T) {
	assert.True(t, domain.MovementIn.Valid())
	assert.True(t, domain.MovementOut.Valid())
	assert.True(t, domain.MovementAdjust.Valid())
	assert.False(t, domain.MovementType("restock").Valid())
	assert.False(t, domain.MovementType("").Valid())
}
