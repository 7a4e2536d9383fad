// internal/workers/tasks.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dcastano/shopadmin-be/internal/core/domain"
)

// Task type names shared between the API (producer) and the worker
// process (consumer).
const (
	TypeLowStockAlert = "inventory:low_stock_alert"
	TypeMovementPrune = "inventory:prune_movements"
	TypeEmailSend     = "notification:email"
)

// LowStockAlertPayload carries the snapshot of an item that crossed its
// low stock threshold.
type LowStockAlertPayload struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Stock     int    `json:"stock"`
}

// EmailPayload is the generic email task body.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Enqueuer wraps the asynq client for producing inventory tasks.
type Enqueuer struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewEnqueuer creates a task enqueuer
func NewEnqueuer(client *asynq.Client, logger *slog.Logger) *Enqueuer {
	return &Enqueuer{
		client: client,
		logger: logger.With(slog.String("component", "enqueuer")),
	}
}

// EnqueueLowStockAlert queues a low stock notification for the given
// item. Alerts are deduplicated per item for an hour so a burst of
// outbound adjustments produces a single email.
func (e *Enqueuer) EnqueueLowStockAlert(ctx context.Context, item *domain.StockItem) error {
	payload := LowStockAlertPayload{
		ProductID: item.ProductID.String(),
		Name:      item.Name,
		SKU:       item.SKU,
	}
	if item.VariantID != nil {
		payload.VariantID = item.VariantID.String()
	}
	if item.Stock != nil {
		payload.Stock = *item.Stock
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal low stock payload: %w", err)
	}

	task := asynq.NewTask(TypeLowStockAlert, data)
	info, err := e.client.EnqueueContext(ctx, task,
		asynq.Queue("low"),
		asynq.MaxRetry(3),
		asynq.Unique(time.Hour),
	)
	if err != nil {
		return fmt.Errorf("enqueue low stock alert: %w", err)
	}

	e.logger.DebugContext(ctx, "low stock alert enqueued",
		slog.String("task_id", info.ID),
		slog.String("product_id", payload.ProductID),
		slog.Int("stock", payload.Stock))

	return nil
}
