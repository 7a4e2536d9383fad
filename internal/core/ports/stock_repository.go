// internal/core/ports/stock_repository.go
package ports

import (
	"context"

	"github.com/dcastano/shopadmin-be/internal/core/domain"
	"github.com/google/uuid"
)

// StockRepository defines the persistence port for stock state and the
// movement ledger. This interface is implemented by the database adapter.
type StockRepository interface {
	// FindItem resolves one stock-keeping unit. A nil variantID targets the
	// product itself; a non-nil one must belong to the product.
	FindItem(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*domain.StockItem, error)

	// Adjust applies a validated adjustment as one atomic unit: the stock
	// update and the movement insert both commit or both roll back. The
	// current stock row is locked for the duration of the transaction.
	Adjust(ctx context.Context, req domain.AdjustmentRequest) (*domain.AdjustmentResult, error)

	// Overview returns one page of stock items matching all filters plus
	// the total count over the full filtered set.
	Overview(ctx context.Context, params OverviewParams) ([]*domain.StockItem, int64, error)

	// Movements returns ledger entries newest-first, optionally scoped to
	// one product or variant.
	Movements(ctx context.Context, params HistoryParams) ([]domain.StockMovement, error)
}

// OverviewParams holds the inventory overview filters. All filters combine
// with AND semantics.
type OverviewParams struct {
	Search      string
	StockLevel  string
	ProductType string
	Page        int
	Limit       int
	Thresholds  domain.StockThresholds
}

// OverviewResult holds one page of the filtered inventory listing.
type OverviewResult struct {
	Items      []*domain.StockItem `json:"items"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalCount int64               `json:"total"`
	TotalPages int                 `json:"total_pages"`
}

// HistoryParams scopes a movement history query.
type HistoryParams struct {
	ProductID *uuid.UUID
	VariantID *uuid.UUID
	Limit     int
}
