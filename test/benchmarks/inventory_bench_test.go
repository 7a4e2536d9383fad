package benchmarks

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/dcastano/shopadmin-be/internal/adapters/db"
	"github.com/dcastano/shopadmin-be/internal/core/domain"
	"github.com/dcastano/shopadmin-be/internal/core/ports"
	"github.com/dcastano/shopadmin-be/internal/core/services"
	"github.com/dcastano/shopadmin-be/test/helpers"
)

func BenchmarkStockOperations(b *testing.B) {
	testDB := helpers.SetupTestDB(&testing.T{})
	defer testDB.Database.Close()

	repo := db.NewStockRepository(testDB.Database, helpers.TestLogger())
	service := services.NewInventoryService(repo, nil, nil, domain.DefaultThresholds(), helpers.TestLogger())
	ctx := context.Background()

	productIDs := seedBenchmarkProducts(b, testDB.PgxPool, 500)

	b.Run("Adjust", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.AdjustStock(ctx, domain.AdjustmentRequest{
				ProductID: productIDs[i%len(productIDs)],
				Quantity:  1,
				Type:      domain.MovementIn,
			})
		}
	})

	b.Run("Overview", func(b *testing.B) {
		params := ports.OverviewParams{Page: 1, Limit: 50}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.GetInventoryOverview(ctx, params)
		}
	})

	b.Run("OverviewFiltered", func(b *testing.B) {
		params := ports.OverviewParams{
			Search:      "benchmark",
			StockLevel:  string(domain.StockLevelIn),
			ProductType: string(domain.KindSimple),
			Page:        1,
			Limit:       50,
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.GetInventoryOverview(ctx, params)
		}
	})

	b.Run("History", func(b *testing.B) {
		productID := productIDs[0]
		params := ports.HistoryParams{ProductID: &productID, Limit: 50}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.GetInventoryHistory(ctx, params)
		}
	})
}

func BenchmarkAdjustmentApply(b *testing.B) {
	req := domain.AdjustmentRequest{
		ProductID: uuid.New(),
		Quantity:  5,
		Type:      domain.MovementOut,
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = req.Apply(1000)
	}
}

func BenchmarkStockLevelClassification(b *testing.B) {
	thresholds := domain.DefaultThresholds()
	items := []*domain.StockItem{
		helpers.CreateTestStockItem(),
		helpers.CreateTestStockItem(func(i *domain.StockItem) { i.Stock = nil }),
		helpers.CreateTestStockItem(func(i *domain.StockItem) { i.Stock = helpers.IntPtr(0) }),
		helpers.CreateTestStockItem(func(i *domain.StockItem) { i.Stock = helpers.IntPtr(3) }),
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = items[i%len(items)].Level(thresholds)
	}
}
