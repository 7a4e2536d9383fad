// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/dcastano/shopadmin-be/internal/adapters/db"
	"github.com/dcastano/shopadmin-be/internal/pkg/config"
)

// CleanupProcessor handles scheduled retention tasks
type CleanupProcessor struct {
	db     *db.Database
	config *config.Config
	logger *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(db *db.Database, config *config.Config, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		db:     db,
		config: config,
		logger: logger.With(slog.String("processor", "cleanup")),
	}
}

// PruneOldMovements removes ledger entries past the retention window.
// Two years keeps enough history for audits while bounding table growth.
func (p *CleanupProcessor) PruneOldMovements(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "pruning old stock movements")

	query := `DELETE FROM stock_movements WHERE created_at < NOW() - INTERVAL '2 years'`

	result, err := p.db.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prune stock movements: %w", err)
	}

	p.logger.InfoContext(ctx, "old stock movements pruned",
		slog.Int64("rows_deleted", result.RowsAffected()))

	return nil
}
