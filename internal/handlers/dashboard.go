package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastano/shopadmin-be/internal/adapters/db"
	redis_a "github.com/dcastano/shopadmin-be/internal/adapters/redis_adapter"
	"github.com/dcastano/shopadmin-be/internal/core/ports"
)

// DashboardHandler handles dashboard operations
type DashboardHandler struct {
	db               *db.Database
	cache            ports.CacheRepository
	thresholdSimple  int
	thresholdVariant int
	cacheTTL         time.Duration
	logger           *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(database *db.Database, cache ports.CacheRepository,
	thresholdSimple, thresholdVariant int, cacheTTL time.Duration, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		db:               database,
		cache:            cache,
		thresholdSimple:  thresholdSimple,
		thresholdVariant: thresholdVariant,
		cacheTTL:         cacheTTL,
		logger:           logger.With(slog.String("handler", "dashboard")),
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "main")
	var dashboard DashboardData

	err := h.cache.GetOrSet(ctx, cacheKey, &dashboard, func() (interface{}, error) {
		return h.loadDashboardData(ctx)
	}, h.cacheTTL)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	h.respondJSON(w, http.StatusOK, dashboard)
}

func (h *DashboardHandler) loadDashboardData(ctx context.Context) (*DashboardData, error) {
	dashboard := &DashboardData{
		Timestamp: time.Now(),
	}

	// Buckets mirror the overview filter semantics: untracked rows
	// (NULL stock) are counted separately and excluded from the
	// in/low/out breakdown.
	summaryQuery := `
		SELECT
			COUNT(*) AS total_items,
			COUNT(CASE WHEN si.stock IS NULL THEN 1 END) AS untracked,
			COUNT(CASE WHEN si.stock = 0 THEN 1 END) AS out_of_stock,
			COUNT(CASE WHEN si.stock > 0 AND si.stock <
				CASE WHEN si.kind = 'variant' THEN $1 ELSE $2 END THEN 1 END) AS low_stock,
			COUNT(CASE WHEN si.stock >=
				CASE WHEN si.kind = 'variant' THEN $1 ELSE $2 END THEN 1 END) AS in_stock,
			COALESCE(SUM(si.stock), 0) AS total_units,
			COALESCE(SUM(si.price * si.stock), 0) AS stock_value
		FROM (
			SELECT p.stock, p.price, 'simple' AS kind
			FROM products p
			WHERE NOT p.has_variants AND p.is_active
			UNION ALL
			SELECT v.stock, COALESCE(v.price, p.price), 'variant' AS kind
			FROM product_variants v
			JOIN products p ON p.id = v.product_id
			WHERE v.is_active
		) AS si
	`

	err := h.db.QueryRow(ctx, summaryQuery, h.thresholdVariant, h.thresholdSimple).Scan(
		&dashboard.Summary.TotalItems,
		&dashboard.Summary.Untracked,
		&dashboard.Summary.OutOfStock,
		&dashboard.Summary.LowStock,
		&dashboard.Summary.InStock,
		&dashboard.Summary.TotalUnits,
		&dashboard.Summary.StockValue,
	)
	if err != nil {
		return nil, err
	}

	movementQuery := `
		SELECT m.id, m.product_id, m.movement_type, m.quantity,
		       COALESCE(m.reason, ''), m.created_at, p.name
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT 20
	`

	rows, err := h.db.Query(ctx, movementQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var mv RecentMovement
		if err := rows.Scan(&mv.ID, &mv.ProductID, &mv.Type, &mv.Quantity,
			&mv.Reason, &mv.CreatedAt, &mv.ProductName); err != nil {
			continue
		}
		dashboard.RecentMovements = append(dashboard.RecentMovements, mv)
	}

	return dashboard, rows.Err()
}

// Type definitions

type DashboardData struct {
	Summary         StockSummary     `json:"summary"`
	RecentMovements []RecentMovement `json:"recent_movements"`
	Timestamp       time.Time        `json:"timestamp"`
}

type StockSummary struct {
	TotalItems int64           `json:"total_items"`
	InStock    int64           `json:"in_stock"`
	LowStock   int64           `json:"low_stock"`
	OutOfStock int64           `json:"out_of_stock"`
	Untracked  int64           `json:"untracked"`
	TotalUnits int64           `json:"total_units"`
	StockValue decimal.Decimal `json:"stock_value"`
}

type RecentMovement struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Helper methods

func (h *DashboardHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *DashboardHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
