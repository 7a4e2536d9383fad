// internal/core/services/inventory.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dcastano/shopadmin-be/internal/core/domain"
	"github.com/dcastano/shopadmin-be/internal/core/ports"
)

// CacheInvalidator is the revalidation signal sent after a successful
// adjustment so the next inventory read is fresh.
type CacheInvalidator interface {
	InvalidateInventoryCache(ctx context.Context, productID string) error
}

// AlertEnqueuer schedules a low-stock alert for background delivery.
type AlertEnqueuer interface {
	EnqueueLowStockAlert(ctx context.Context, item *domain.StockItem) error
}

// InventoryService handles stock adjustment and inventory query logic
type InventoryService struct {
	repo       ports.StockRepository
	cache      CacheInvalidator
	alerts     AlertEnqueuer
	thresholds domain.StockThresholds
	logger     *slog.Logger
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service
func NewInventoryService(repo ports.StockRepository, cache CacheInvalidator, alerts AlertEnqueuer, thresholds domain.StockThresholds, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		repo:       repo,
		cache:      cache,
		alerts:     alerts,
		thresholds: thresholds,
		logger:     logger.With(slog.String("service", "inventory")),
	}
}

// AdjustStock validates one adjustment, applies it atomically, and fires
// the cache revalidation and low-stock side effects on success.
func (s *InventoryService) AdjustStock(ctx context.Context, req domain.AdjustmentRequest) (*domain.AdjustmentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.repo.Adjust(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "stock adjusted",
		slog.String("product_id", req.ProductID.String()),
		slog.String("type", string(req.Type)),
		slog.Int("quantity", req.Quantity),
		slog.Int("new_stock", derefStock(result.Item.Stock)))

	s.invalidateCache(ctx, req.ProductID.String())
	s.maybeAlertLowStock(ctx, result.Item)

	return result, nil
}

// BulkAdjustStock applies each request independently in sequence. The
// batch is best-effort: a later failure does not roll back earlier
// successes, and each entry keeps the single-item atomicity guarantee.
func (s *InventoryService) BulkAdjustStock(ctx context.Context, reqs []domain.AdjustmentRequest) (*domain.BulkAdjustmentResult, error) {
	if len(reqs) == 0 {
		ve := domain.NewValidationError()
		ve.Add("requests", "at least one adjustment is required")
		return nil, ve
	}

	out := &domain.BulkAdjustmentResult{}
	touched := make(map[string]struct{})

	for i, req := range reqs {
		result, err := s.applyOne(ctx, req)
		if err != nil {
			out.Failed++
			out.Errors = append(out.Errors, domain.BulkItemError{
				Index:   i,
				Message: err.Error(),
			})
			s.logger.WarnContext(ctx, "bulk adjustment entry failed",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			continue
		}
		out.Succeeded++
		out.Results = append(out.Results, *result)
		touched[req.ProductID.String()] = struct{}{}
		s.maybeAlertLowStock(ctx, result.Item)
	}

	for productID := range touched {
		s.invalidateCache(ctx, productID)
	}

	s.logger.InfoContext(ctx, "bulk adjustment complete",
		slog.Int("succeeded", out.Succeeded),
		slog.Int("failed", out.Failed))

	return out, nil
}

// applyOne validates and persists a single entry without side effects.
func (s *InventoryService) applyOne(ctx context.Context, req domain.AdjustmentRequest) (*domain.AdjustmentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Adjust(ctx, req)
}

// GetInventoryOverview returns one page of the filtered admin listing.
func (s *InventoryService) GetInventoryOverview(ctx context.Context, params ports.OverviewParams) (*ports.OverviewResult, error) {
	if err := normalizeOverviewParams(&params); err != nil {
		return nil, err
	}
	params.Thresholds = s.thresholds

	items, totalCount, err := s.repo.Overview(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory overview: %w", err)
	}

	var totalPages int
	if params.Limit > 0 {
		totalPages = int(totalCount) / params.Limit
		if int(totalCount)%params.Limit > 0 {
			totalPages++
		}
	}

	return &ports.OverviewResult{
		Items:      items,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}

// GetInventoryHistory returns recent movements, newest first.
func (s *InventoryService) GetInventoryHistory(ctx context.Context, params ports.HistoryParams) ([]domain.StockMovement, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultHistoryLimit
	}
	if params.Limit > MaxPageLimit {
		params.Limit = MaxPageLimit
	}

	movements, err := s.repo.Movements(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to load movement history: %w", err)
	}
	return movements, nil
}

// invalidateCache sends the revalidation signal. A cache failure never
// fails the adjustment that already committed.
func (s *InventoryService) invalidateCache(ctx context.Context, productID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateInventoryCache(ctx, productID); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()))
	}
}

// maybeAlertLowStock enqueues a background alert when the updated item
// landed at or below its low-stock boundary.
func (s *InventoryService) maybeAlertLowStock(ctx context.Context, item *domain.StockItem) {
	if s.alerts == nil || item == nil {
		return
	}
	switch item.Level(s.thresholds) {
	case domain.StockLevelLow, domain.StockLevelOut:
	default:
		return
	}
	if err := s.alerts.EnqueueLowStockAlert(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "failed to enqueue low stock alert",
			slog.String("product_id", item.ProductID.String()),
			slog.String("error", err.Error()))
	}
}

func derefStock(stock *int) int {
	if stock == nil {
		return 0
	}
	return *stock
}

// normalizeOverviewParams applies defaults, clamps the page size, and
// rejects unknown filter values before the store is touched.
func normalizeOverviewParams(params *ports.OverviewParams) error {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = DefaultPageLimit
	}
	if params.Limit > MaxPageLimit {
		params.Limit = MaxPageLimit
	}
	if params.StockLevel == "" {
		params.StockLevel = FilterAll
	}
	if params.ProductType == "" {
		params.ProductType = FilterAll
	}

	ve := domain.NewValidationError()
	switch params.StockLevel {
	case FilterAll, string(domain.StockLevelIn), string(domain.StockLevelLow), string(domain.StockLevelOut):
	default:
		ve.Add("stock_level", "stock_level must be one of all, in-stock, low-stock, out-of-stock")
	}
	switch params.ProductType {
	case FilterAll, string(domain.KindSimple), string(domain.KindVariant):
	default:
		ve.Add("product_type", "product_type must be one of all, simple, variant")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// IsUserError reports whether err belongs to the caller-facing taxonomy
// rather than an internal store failure.
func IsUserError(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInsufficientStock)
}
