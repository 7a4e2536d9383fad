// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/dcastano/shopadmin-be/internal/core/domain"
)

// InventoryService defines the application service port consumed by the
// HTTP handlers. This interface is implemented by the application service.
type InventoryService interface {
	AdjustStock(ctx context.Context, req domain.AdjustmentRequest) (*domain.AdjustmentResult, error)
	BulkAdjustStock(ctx context.Context, reqs []domain.AdjustmentRequest) (*domain.BulkAdjustmentResult, error)
	GetInventoryOverview(ctx context.Context, params OverviewParams) (*OverviewResult, error)
	GetInventoryHistory(ctx context.Context, params HistoryParams) ([]domain.StockMovement, error)
}
