// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// seedBenchmarkProducts inserts n simple tracked products in one batch and
// returns their ids for the adjustment benchmarks.
func seedBenchmarkProducts(b *testing.B, pool *pgxpool.Pool, n int) []uuid.UUID {
	b.Helper()

	ctx := context.Background()
	batch := &pgx.Batch{}
	ids := make([]uuid.UUID, n)

	for i := 0; i < n; i++ {
		ids[i] = uuid.New()
		batch.Queue(`
			INSERT INTO products (id, name, sku, price, stock, has_variants, is_active)
			VALUES ($1, $2, $3, 19.99, $4, false, true)`,
			ids[i],
			fmt.Sprintf("Benchmark Product %d", i),
			fmt.Sprintf("BENCH-%05d", i),
			1000,
		)
	}

	br := pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < n; i++ {
		if _, err := br.Exec(); err != nil {
			b.Fatalf("failed to seed benchmark product: %v", err)
		}
	}

	return ids
}
