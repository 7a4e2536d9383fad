// cmd/seeder/main.go
//
// Seeds the database with demo products, variants and an opening stock
// ledger so the API has something to serve in development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dcastano/shopadmin-be/internal/pkg/config"
	"github.com/dcastano/shopadmin-be/internal/pkg/logger"
)

type seedProduct struct {
	ID          uuid.UUID
	Name        string
	SKU         string
	Price       decimal.Decimal
	Stock       *int
	HasVariants bool
	Variants    []seedVariant
}

type seedVariant struct {
	ID    uuid.UUID
	Name  string
	SKU   string
	Price *decimal.Decimal
	Stock *int
}

var productNames = []string{
	"Canvas Tote Bag", "Ceramic Mug", "Linen Apron", "Walnut Cutting Board",
	"Soy Candle", "Leather Journal", "Enamel Pin Set", "Wool Throw Blanket",
	"Stainless Water Bottle", "Bamboo Utensil Set", "Cotton Tea Towel",
	"Brass Bottle Opener", "Recycled Notebook", "Olive Wood Spoon",
	"Glass Storage Jar", "Hemp Backpack", "Cork Coaster Set", "Copper Plant Mister",
}

var variantNames = [][]string{
	{"Small", "Medium", "Large"},
	{"Black", "Natural", "Olive"},
	{"250ml", "500ml", "750ml"},
}

func main() {
	var (
		productCount = flag.Int("products", 40, "Number of products to seed")
		truncate     = flag.Bool("truncate", false, "Truncate existing data first")
		logLevel     = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "text")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.GetDatabaseURL())
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slogger.Error("database unreachable", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *truncate {
		slogger.Info("truncating existing data")
		if _, err := pool.Exec(ctx, `TRUNCATE stock_movements, product_variants, products`); err != nil {
			slogger.Error("failed to truncate tables", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	products := generateProducts(rng, *productCount)

	if err := saveProducts(ctx, pool, products); err != nil {
		slogger.Error("failed to seed products", slog.String("error", err.Error()))
		os.Exit(1)
	}

	variants := 0
	for _, p := range products {
		variants += len(p.Variants)
	}

	slogger.Info("seed complete",
		slog.Int("products", len(products)),
		slog.Int("variants", variants))
}

func generateProducts(rng *rand.Rand, count int) []seedProduct {
	products := make([]seedProduct, 0, count)

	for i := 0; i < count; i++ {
		base := productNames[i%len(productNames)]
		name := base
		if i >= len(productNames) {
			name = fmt.Sprintf("%s #%d", base, i/len(productNames)+1)
		}

		p := seedProduct{
			ID:    uuid.New(),
			Name:  name,
			SKU:   makeSKU(name, i),
			Price: decimal.NewFromInt(int64(rng.Intn(9000)+500)).Div(decimal.NewFromInt(100)),
		}

		switch i % 5 {
		case 0:
			// Product with variants; stock tracked per variant
			p.HasVariants = true
			opts := variantNames[rng.Intn(len(variantNames))]
			for j, opt := range opts {
				stock := variantStock(rng)
				var price *decimal.Decimal
				if rng.Intn(3) == 0 {
					v := p.Price.Add(decimal.NewFromInt(int64(j + 1)))
					price = &v
				}
				p.Variants = append(p.Variants, seedVariant{
					ID:    uuid.New(),
					Name:  opt,
					SKU:   fmt.Sprintf("%s-%s", p.SKU, strings.ToUpper(opt[:1])),
					Price: price,
					Stock: stock,
				})
			}
		case 1:
			// Untracked product, stock stays NULL
		default:
			stock := rng.Intn(40)
			p.Stock = &stock
		}

		products = append(products, p)
	}

	return products
}

// variantStock returns a tracked quantity most of the time, with the
// occasional untracked variant mixed in.
func variantStock(rng *rand.Rand) *int {
	if rng.Intn(6) == 0 {
		return nil
	}
	s := rng.Intn(20)
	return &s
}

func makeSKU(name string, i int) string {
	parts := strings.Fields(strings.ToUpper(name))
	var b strings.Builder
	for _, part := range parts {
		b.WriteByte(part[0])
	}
	return fmt.Sprintf("%s-%04d", b.String(), i+1)
}

func saveProducts(ctx context.Context, pool *pgxpool.Pool, products []seedProduct) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	queued := 0

	for _, p := range products {
		batch.Queue(`
			INSERT INTO products (id, name, sku, price, stock, has_variants, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.SKU, p.Price, p.Stock, p.HasVariants,
		)
		queued++

		// Opening balances go through the ledger so history starts
		// at the first receipt, not at nothing.
		if p.Stock != nil && *p.Stock > 0 {
			batch.Queue(`
				INSERT INTO stock_movements (id, product_id, movement_type, quantity, reason)
				VALUES ($1, $2, 'in', $3, 'initial stock')`,
				uuid.New(), p.ID, *p.Stock,
			)
			queued++
		}

		for _, v := range p.Variants {
			batch.Queue(`
				INSERT INTO product_variants (id, product_id, name, sku, price, stock, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, TRUE)
				ON CONFLICT (id) DO NOTHING`,
				v.ID, p.ID, v.Name, v.SKU, v.Price, v.Stock,
			)
			queued++

			if v.Stock != nil && *v.Stock > 0 {
				batch.Queue(`
					INSERT INTO stock_movements (id, product_id, variant_id, movement_type, quantity, reason)
					VALUES ($1, $2, $3, 'in', $4, 'initial stock')`,
					uuid.New(), p.ID, v.ID, *v.Stock,
				)
				queued++
			}
		}
	}

	br := tx.SendBatch(ctx, batch)

	for i := 0; i < queued; i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert seed row: %w", err)
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
