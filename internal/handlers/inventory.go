// internal/handlers/inventory.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	redis_a "github.com/dcastano/shopadmin-be/internal/adapters/redis_adapter"
	"github.com/dcastano/shopadmin-be/internal/core/domain"
	"github.com/dcastano/shopadmin-be/internal/core/ports"
)

// InventoryHandler handles inventory-related HTTP requests
type InventoryHandler struct {
	service  ports.InventoryService
	cache    ports.CacheRepository
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewInventoryHandler creates a new inventory handler. A nil cache
// disables read-through caching of the listing views.
func NewInventoryHandler(service ports.InventoryService, cache ports.CacheRepository, cacheTTL time.Duration, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With(slog.String("handler", "inventory")),
	}
}

// AdjustStock handles POST /api/v1/inventory/adjust
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", nil)
		return
	}

	adjustment, ve := req.ToDomain()
	if ve != nil {
		h.respondError(w, http.StatusBadRequest, "validation_error", "Validation failed", ve.Fields)
		return
	}

	result, err := h.service.AdjustStock(ctx, adjustment)
	if err != nil {
		h.respondDomainError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, successResponse{Success: true, Data: result})
}

// BulkAdjustStock handles POST /api/v1/inventory/adjust/bulk
func (h *InventoryHandler) BulkAdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BulkAdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", nil)
		return
	}

	// Malformed items keep their slot so the service can report them by
	// index while still applying the valid ones.
	adjustments := make([]domain.AdjustmentRequest, 0, len(req.Adjustments))
	parseErrs := make(map[int]string)
	for i, item := range req.Adjustments {
		adjustment, ve := item.ToDomain()
		if ve != nil {
			parseErrs[i] = ve.Error()
		}
		adjustments = append(adjustments, adjustment)
	}

	result, err := h.service.BulkAdjustStock(ctx, adjustments)
	if err != nil {
		h.respondDomainError(ctx, w, err)
		return
	}

	// An entry that failed to parse also fails service validation, but with
	// a less specific message; prefer the parse error for its slot.
	for i := range result.Errors {
		if msg, ok := parseErrs[result.Errors[i].Index]; ok {
			result.Errors[i].Message = msg
		}
	}

	h.respondJSON(w, http.StatusOK, successResponse{Success: true, Data: result})
}

// GetInventoryOverview handles GET /api/v1/inventory
func (h *InventoryHandler) GetInventoryOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := h.parseOverviewParams(r)

	result, err := h.loadOverview(ctx, params)
	if err != nil {
		h.respondDomainError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, successResponse{Success: true, Data: result})
}

// loadOverview serves overview pages through the cache. Entries live under
// the inv prefix so a stock adjustment invalidates every cached page.
func (h *InventoryHandler) loadOverview(ctx context.Context, params ports.OverviewParams) (*ports.OverviewResult, error) {
	if h.cache == nil {
		return h.service.GetInventoryOverview(ctx, params)
	}

	key := redis_a.BuildKey(redis_a.PrefixInventory,
		fmt.Sprintf("p%d", params.Page),
		fmt.Sprintf("l%d", params.Limit),
		params.Search, params.StockLevel, params.ProductType,
	)

	var result *ports.OverviewResult
	err := h.cache.GetOrSet(ctx, key, &result, func() (interface{}, error) {
		return h.service.GetInventoryOverview(ctx, params)
	}, h.cacheTTL)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetInventoryHistory handles GET /api/v1/inventory/history
func (h *InventoryHandler) GetInventoryHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, ve := h.parseHistoryParams(r)
	if ve != nil {
		h.respondError(w, http.StatusBadRequest, "validation_error", "Validation failed", ve.Fields)
		return
	}

	movements, err := h.loadHistory(ctx, params)
	if err != nil {
		h.respondDomainError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, successResponse{Success: true, Data: movements})
}

// loadHistory caches product-scoped history lookups. The key embeds the
// product id so adjustment invalidation only drops that product's entries;
// unscoped lookups always hit the store.
func (h *InventoryHandler) loadHistory(ctx context.Context, params ports.HistoryParams) ([]domain.StockMovement, error) {
	if h.cache == nil || params.ProductID == nil {
		return h.service.GetInventoryHistory(ctx, params)
	}

	parts := []string{params.ProductID.String()}
	if params.VariantID != nil {
		parts = append(parts, params.VariantID.String())
	}
	parts = append(parts, fmt.Sprintf("l%d", params.Limit))
	key := redis_a.BuildKey(redis_a.PrefixHistory, parts...)

	var movements []domain.StockMovement
	err := h.cache.GetOrSet(ctx, key, &movements, func() (interface{}, error) {
		return h.service.GetInventoryHistory(ctx, params)
	}, h.cacheTTL)
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// parseOverviewParams parses query parameters for the inventory overview
func (h *InventoryHandler) parseOverviewParams(r *http.Request) ports.OverviewParams {
	params := ports.OverviewParams{
		Search:      r.URL.Query().Get("search"),
		StockLevel:  r.URL.Query().Get("stock_level"),
		ProductType: r.URL.Query().Get("product_type"),
		Page:        1,
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			params.Limit = l
		}
	}

	return params
}

// parseHistoryParams parses query parameters for the movement history
func (h *InventoryHandler) parseHistoryParams(r *http.Request) (ports.HistoryParams, *domain.ValidationError) {
	var params ports.HistoryParams
	ve := domain.NewValidationError()

	if productID := r.URL.Query().Get("product_id"); productID != "" {
		id, err := uuid.Parse(productID)
		if err != nil {
			ve.Add("product_id", "product_id must be a valid identifier")
		} else {
			params.ProductID = &id
		}
	}
	if variantID := r.URL.Query().Get("variant_id"); variantID != "" {
		id, err := uuid.Parse(variantID)
		if err != nil {
			ve.Add("variant_id", "variant_id must be a valid identifier")
		} else {
			params.VariantID = &id
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			params.Limit = l
		}
	}

	if ve.HasErrors() {
		return params, ve
	}
	return params, nil
}

// respondDomainError maps the error taxonomy onto the uniform envelope.
// Nothing here is retried; store failures surface as a generic message.
func (h *InventoryHandler) respondDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		h.respondError(w, http.StatusBadRequest, "validation_error", "Validation failed", ve.Fields)
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "not_found", "Inventory item not found", nil)
	case errors.Is(err, domain.ErrInsufficientStock):
		h.respondError(w, http.StatusConflict, "insufficient_stock", "Cannot reduce stock below zero", nil)
	default:
		h.logger.ErrorContext(ctx, "inventory operation failed", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "persistence_error", "Failed to process inventory operation", nil)
	}
}

// Helper methods

func (h *InventoryHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *InventoryHandler) respondError(w http.ResponseWriter, status int, code, message string, fields map[string]string) {
	h.respondJSON(w, status, errorResponse{
		Success: false,
		Error: errorBody{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
	})
}

// Response envelopes

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Request DTOs

// AdjustStockRequest represents the request body for one stock adjustment
type AdjustStockRequest struct {
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id,omitempty"`
	Quantity  int     `json:"quantity"`
	Type      string  `json:"type"`
	Reason    string  `json:"reason,omitempty"`
}

// ToDomain converts the request to a domain adjustment, validating that
// identifiers are UUID-shaped.
func (r *AdjustStockRequest) ToDomain() (domain.AdjustmentRequest, *domain.ValidationError) {
	ve := domain.NewValidationError()
	req := domain.AdjustmentRequest{
		Quantity: r.Quantity,
		Type:     domain.MovementType(r.Type),
		Reason:   r.Reason,
	}

	if r.ProductID == "" {
		ve.Add("product_id", "product_id is required")
	} else {
		id, err := uuid.Parse(r.ProductID)
		if err != nil {
			ve.Add("product_id", "product_id must be a valid identifier")
		} else {
			req.ProductID = id
		}
	}

	if r.VariantID != nil && *r.VariantID != "" {
		id, err := uuid.Parse(*r.VariantID)
		if err != nil {
			ve.Add("variant_id", "variant_id must be a valid identifier")
			// Keep the nil uuid so the request cannot pass validation as
			// a product-level adjustment.
			id = uuid.Nil
		}
		req.VariantID = &id
	}

	if ve.HasErrors() {
		return req, ve
	}
	return req, nil
}

// BulkAdjustStockRequest represents the request body for a batch of adjustments
type BulkAdjustStockRequest struct {
	Adjustments []AdjustStockRequest `json:"adjustments"`
}
