// internal/adapters/db/stock_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dcastano/shopadmin-be/internal/core/domain"
	"github.com/dcastano/shopadmin-be/internal/core/ports"
)

// stockItemsFrom exposes products-without-variants and variants as one
// relation of stock-keeping units for the overview query.
const stockItemsFrom = `(
	SELECT p.id, p.id AS product_id, NULL::uuid AS variant_id,
	       p.name, p.sku, p.price, p.stock, p.is_active, p.updated_at,
	       'simple' AS kind
	FROM products p
	WHERE NOT p.has_variants
	UNION ALL
	SELECT v.id, v.product_id, v.id AS variant_id,
	       CASE WHEN v.name <> '' THEN p.name || ' - ' || v.name ELSE p.name END,
	       v.sku, COALESCE(v.price, p.price), v.stock, v.is_active, v.updated_at,
	       'variant' AS kind
	FROM product_variants v
	JOIN products p ON p.id = v.product_id
) AS si`

// stockRepository implements ports.StockRepository
type stockRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *Database, logger *slog.Logger) ports.StockRepository {
	return &stockRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "stock")),
	}
}

// FindItem resolves one stock-keeping unit without locking it.
func (r *stockRepository) FindItem(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*domain.StockItem, error) {
	item, err := r.scanItem(r.itemRow(ctx, r.db, productID, variantID, false), productID, variantID)
	if err != nil {
		return nil, domain.NewPersistenceError("find stock item", err)
	}
	return item, nil
}

// rowQuerier is satisfied by both *Database and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// itemRow fetches the stock row for a product or one of its variants.
// With forUpdate set, the underlying row stays locked until the enclosing
// transaction finishes, which serializes concurrent adjustments.
func (r *stockRepository) itemRow(ctx context.Context, q rowQuerier, productID uuid.UUID, variantID *uuid.UUID, forUpdate bool) pgx.Row {
	if variantID != nil {
		query := `
			SELECT v.id,
			       CASE WHEN v.name <> '' THEN p.name || ' - ' || v.name ELSE p.name END,
			       v.sku, COALESCE(v.price, p.price), v.stock, v.is_active, v.updated_at
			FROM product_variants v
			JOIN products p ON p.id = v.product_id
			WHERE v.id = $1 AND v.product_id = $2`
		if forUpdate {
			query += " FOR UPDATE OF v"
		}
		return q.QueryRow(ctx, query, *variantID, productID)
	}

	// Product-level stock only applies to products sold without variants.
	query := `
		SELECT p.id, p.name, p.sku, p.price, p.stock, p.is_active, p.updated_at
		FROM products p
		WHERE p.id = $1 AND NOT p.has_variants`
	if forUpdate {
		query += " FOR UPDATE"
	}
	return q.QueryRow(ctx, query, productID)
}

// scanItem turns an item row into a StockItem, mapping no-rows to nil.
func (r *stockRepository) scanItem(row pgx.Row, productID uuid.UUID, variantID *uuid.UUID) (*domain.StockItem, error) {
	item := &domain.StockItem{ProductID: productID, VariantID: variantID}
	var stock sql.NullInt32

	err := row.Scan(&item.ID, &item.Name, &item.SKU, &item.Price, &stock, &item.IsActive, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if stock.Valid {
		s := int(stock.Int32)
		item.Stock = &s
	}
	return item, nil
}

// Adjust applies one validated adjustment atomically: the locked read, the
// stock update, and the movement insert share a single transaction.
func (r *stockRepository) Adjust(ctx context.Context, req domain.AdjustmentRequest) (*domain.AdjustmentResult, error) {
	var result *domain.AdjustmentResult

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		item, err := r.scanItem(r.itemRow(ctx, tx, req.ProductID, req.VariantID, true), req.ProductID, req.VariantID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		// Null stock means untracked; tracking begins at zero on the
		// first adjustment.
		current := 0
		if item.Stock != nil {
			current = *item.Stock
		}

		newStock, err := req.Apply(current)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := r.updateStock(ctx, tx, item, newStock, now); err != nil {
			return err
		}

		movement := &domain.StockMovement{
			ID:        uuid.New(),
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			Type:      req.Type,
			Quantity:  req.Quantity,
			Reason:    req.Reason,
		}
		if err := r.insertMovement(ctx, tx, movement); err != nil {
			return err
		}

		item.Stock = &newStock
		item.UpdatedAt = now
		result = &domain.AdjustmentResult{Item: item, Movement: movement}
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInsufficientStock) {
			return nil, err
		}
		return nil, domain.NewPersistenceError("adjust stock", err)
	}

	r.logger.DebugContext(ctx, "stock adjustment persisted",
		slog.String("movement_id", result.Movement.ID.String()),
		slog.String("product_id", req.ProductID.String()))

	return result, nil
}

func (r *stockRepository) updateStock(ctx context.Context, tx pgx.Tx, item *domain.StockItem, newStock int, now time.Time) error {
	var query string
	if item.VariantID != nil {
		query = `UPDATE product_variants SET stock = $2, updated_at = $3 WHERE id = $1`
	} else {
		query = `UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1`
	}

	tag, err := tx.Exec(ctx, query, item.ID, newStock, now)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// insertMovement appends one ledger row. The ledger is append-only: no
// update or delete statement exists anywhere for stock_movements.
func (r *stockRepository) insertMovement(ctx context.Context, tx pgx.Tx, m *domain.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, variant_id, movement_type, quantity, reason)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING created_at`

	var variantID interface{}
	if m.VariantID != nil {
		variantID = *m.VariantID
	}

	err := tx.QueryRow(ctx, query, m.ID, m.ProductID, variantID, m.Type, m.Quantity, m.Reason).
		Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement: %w", err)
	}
	return nil
}

// Overview retrieves one page of stock items with filtering, plus the
// total count over the full filtered set.
func (r *stockRepository) Overview(ctx context.Context, params ports.OverviewParams) ([]*domain.StockItem, int64, error) {
	countQb := applyOverviewFilters(
		squirrel.Select("COUNT(*)").From(stockItemsFrom).PlaceholderFormat(squirrel.Dollar),
		params,
	)

	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, domain.NewPersistenceError("count stock items", err)
	}

	qb := applyOverviewFilters(
		squirrel.Select(
			"si.id", "si.product_id", "si.variant_id",
			"si.name", "si.sku", "si.price", "si.stock", "si.is_active", "si.updated_at",
		).From(stockItemsFrom).PlaceholderFormat(squirrel.Dollar),
		params,
	).
		OrderBy("si.name ASC", "si.id ASC").
		Limit(uint64(params.Limit)).
		Offset(uint64((params.Page - 1) * params.Limit))

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build overview query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, domain.NewPersistenceError("query stock items", err)
	}
	defer rows.Close()

	var items []*domain.StockItem
	for rows.Next() {
		item := &domain.StockItem{}
		var variantID uuid.NullUUID
		var stock sql.NullInt32

		err := rows.Scan(
			&item.ID, &item.ProductID, &variantID,
			&item.Name, &item.SKU, &item.Price, &stock, &item.IsActive, &item.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan stock item: %w", err)
		}

		if variantID.Valid {
			v := variantID.UUID
			item.VariantID = &v
		}
		if stock.Valid {
			s := int(stock.Int32)
			item.Stock = &s
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, domain.NewPersistenceError("iterate stock items", err)
	}

	return items, totalCount, nil
}

// applyOverviewFilters adds the AND-combined filter predicates shared by
// the page and count queries. Null stock stays out of every level bucket.
func applyOverviewFilters(qb squirrel.SelectBuilder, params ports.OverviewParams) squirrel.SelectBuilder {
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"si.name": pattern},
			squirrel.ILike{"si.sku": pattern},
		})
	}

	if params.ProductType != "" && params.ProductType != "all" {
		qb = qb.Where(squirrel.Eq{"si.kind": params.ProductType})
	}

	threshold := "CASE WHEN si.kind = 'variant' THEN ? ELSE ? END"
	switch params.StockLevel {
	case string(domain.StockLevelOut):
		qb = qb.Where(squirrel.Eq{"si.stock": 0})
	case string(domain.StockLevelLow):
		qb = qb.Where("si.stock > 0 AND si.stock < "+threshold,
			params.Thresholds.Variant, params.Thresholds.Simple)
	case string(domain.StockLevelIn):
		qb = qb.Where("si.stock >= "+threshold,
			params.Thresholds.Variant, params.Thresholds.Simple)
	}

	return qb
}

// Movements returns ledger entries newest-first.
func (r *stockRepository) Movements(ctx context.Context, params ports.HistoryParams) ([]domain.StockMovement, error) {
	qb := squirrel.Select(
		"id", "product_id", "variant_id", "movement_type", "quantity", "reason", "created_at",
	).From("stock_movements").
		PlaceholderFormat(squirrel.Dollar).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(params.Limit))

	if params.ProductID != nil {
		qb = qb.Where(squirrel.Eq{"product_id": *params.ProductID})
	}
	if params.VariantID != nil {
		qb = qb.Where(squirrel.Eq{"variant_id": *params.VariantID})
	}

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build movements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, domain.NewPersistenceError("query stock movements", err)
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		var variantID uuid.NullUUID
		var reason sql.NullString

		err := rows.Scan(&m.ID, &m.ProductID, &variantID, &m.Type, &m.Quantity, &reason, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock movement: %w", err)
		}

		if variantID.Valid {
			v := variantID.UUID
			m.VariantID = &v
		}
		m.Reason = reason.String

		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("iterate stock movements", err)
	}

	return movements, nil
}
