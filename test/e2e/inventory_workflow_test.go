//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/dcastano/shopadmin-be/internal/adapters/db"
	redis_a "github.com/dcastano/shopadmin-be/internal/adapters/redis_adapter"
	"github.com/dcastano/shopadmin-be/internal/core/domain"
	"github.com/dcastano/shopadmin-be/internal/core/services"
	"github.com/dcastano/shopadmin-be/internal/handlers"
	"github.com/dcastano/shopadmin-be/test/helpers"
)

type InventoryE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *InventoryE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *InventoryE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *InventoryE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *InventoryE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()

	cache := redis_a.NewCache(s.testRedis.Client, time.Minute, logger)
	cacheManager := redis_a.NewCacheManager(cache, logger)

	repo := db.NewStockRepository(s.testDB.Database, logger)
	service := services.NewInventoryService(repo, cacheManager, nil, domain.DefaultThresholds(), logger)

	inventoryHandler := handlers.NewInventoryHandler(service, cache, time.Minute, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/inventory", inventoryHandler.GetInventoryOverview)
	mux.HandleFunc("GET /api/v1/inventory/history", inventoryHandler.GetInventoryHistory)
	mux.HandleFunc("POST /api/v1/inventory/adjust", inventoryHandler.AdjustStock)
	mux.HandleFunc("POST /api/v1/inventory/adjust/bulk", inventoryHandler.BulkAdjustStock)

	return httptest.NewServer(mux)
}

func (s *InventoryE2ESuite) TestCompleteAdjustmentWorkflow() {
	productID := helpers.SeedTestProduct(s.T(), s.testDB.PgxPool, "Canvas Tote Bag", "CTB-0001", helpers.IntPtr(10), false)

	// 1. Receive stock
	resp := s.makeRequest("POST", "/inventory/adjust", map[string]interface{}{
		"product_id": productID.String(),
		"quantity":   15,
		"type":       "in",
		"reason":     "weekly delivery",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var adjusted struct {
		Success bool `json:"success"`
		Data    struct {
			Item struct {
				Stock *int `json:"stock"`
			} `json:"item"`
			Movement struct {
				ID   string `json:"id"`
				Type string `json:"type"`
			} `json:"movement"`
		} `json:"data"`
	}
	s.decodeResponse(resp, &adjusted)
	s.True(adjusted.Success)
	s.Require().NotNil(adjusted.Data.Item.Stock)
	s.Equal(25, *adjusted.Data.Item.Stock)
	s.Equal("in", adjusted.Data.Movement.Type)

	// 2. Ship part of it
	resp = s.makeRequest("POST", "/inventory/adjust", map[string]interface{}{
		"product_id": productID.String(),
		"quantity":   20,
		"type":       "out",
		"reason":     "order batch",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	// 3. Overselling is refused
	resp = s.makeRequest("POST", "/inventory/adjust", map[string]interface{}{
		"product_id": productID.String(),
		"quantity":   50,
		"type":       "out",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	var conflict struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decodeResponse(resp, &conflict)
	s.False(conflict.Success)
	s.Equal("insufficient_stock", conflict.Error.Code)

	// 4. The overview reflects both applied movements
	resp = s.makeRequest("GET", "/inventory?search=tote", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var overview struct {
		Data struct {
			Items []struct {
				Stock *int `json:"stock"`
			} `json:"items"`
			Total int64 `json:"total"`
		} `json:"data"`
	}
	s.decodeResponse(resp, &overview)
	s.Require().Len(overview.Data.Items, 1)
	s.Equal(5, *overview.Data.Items[0].Stock)

	// 5. A further adjustment invalidates the cached overview page
	resp = s.makeRequest("POST", "/inventory/adjust", map[string]interface{}{
		"product_id": productID.String(),
		"quantity":   3,
		"type":       "in",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.makeRequest("GET", "/inventory?search=tote", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &overview)
	s.Require().Len(overview.Data.Items, 1)
	s.Equal(8, *overview.Data.Items[0].Stock)

	// 6. History lists the applied movements, newest first, without the refused one
	resp = s.makeRequest("GET", fmt.Sprintf("/inventory/history?product_id=%s", productID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var history struct {
		Data []struct {
			Type     string `json:"type"`
			Quantity int    `json:"quantity"`
		} `json:"data"`
	}
	s.decodeResponse(resp, &history)
	s.Require().Len(history.Data, 3)
	s.Equal("in", history.Data[0].Type)
	s.Equal(3, history.Data[0].Quantity)
	s.Equal("out", history.Data[1].Type)
	s.Equal("in", history.Data[2].Type)
}

func (s *InventoryE2ESuite) TestBulkAdjustmentIsBestEffort() {
	firstID := helpers.SeedTestProduct(s.T(), s.testDB.PgxPool, "Ceramic Mug", "CM-0001", helpers.IntPtr(10), false)
	secondID := helpers.SeedTestProduct(s.T(), s.testDB.PgxPool, "Walnut Serving Board", "WSB-0001", helpers.IntPtr(2), false)

	resp := s.makeRequest("POST", "/inventory/adjust/bulk", map[string]interface{}{
		"adjustments": []map[string]interface{}{
			{"product_id": firstID.String(), "quantity": 5, "type": "in"},
			{"product_id": secondID.String(), "quantity": 9, "type": "out"},
			{"product_id": uuid.New().String(), "quantity": 1, "type": "in"},
		},
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Succeeded int `json:"succeeded"`
			Failed    int `json:"failed"`
			Errors    []struct {
				Index int `json:"index"`
			} `json:"errors"`
		} `json:"data"`
	}
	s.decodeResponse(resp, &result)
	s.Equal(1, result.Data.Succeeded)
	s.Equal(2, result.Data.Failed)
	s.Len(result.Data.Errors, 2)

	// The successful entry stands
	resp = s.makeRequest("GET", fmt.Sprintf("/inventory/history?product_id=%s", firstID), nil)
	var history struct {
		Data []struct {
			Quantity int `json:"quantity"`
		} `json:"data"`
	}
	s.decodeResponse(resp, &history)
	s.Len(history.Data, 1)
}

func (s *InventoryE2ESuite) TestVariantWorkflow() {
	productID := helpers.SeedTestProduct(s.T(), s.testDB.PgxPool, "Linen Apron", "LA-0001", nil, true)
	smallID := helpers.SeedTestVariant(s.T(), s.testDB.PgxPool, productID, "Small", "LA-0001-S", helpers.IntPtr(6))
	helpers.SeedTestVariant(s.T(), s.testDB.PgxPool, productID, "Large", "LA-0001-L", helpers.IntPtr(12))

	resp := s.makeRequest("POST", "/inventory/adjust", map[string]interface{}{
		"product_id": productID.String(),
		"variant_id": smallID.String(),
		"quantity":   4,
		"type":       "out",
		"reason":     "order shipped",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	// Only the small variant is low now (2 < 5)
	resp = s.makeRequest("GET", "/inventory?stock_level=low-stock&product_type=variant", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var overview struct {
		Data struct {
			Items []struct {
				Name  string `json:"name"`
				Stock *int   `json:"stock"`
			} `json:"items"`
		} `json:"data"`
	}
	s.decodeResponse(resp, &overview)
	s.Require().Len(overview.Data.Items, 1)
	s.Equal("Linen Apron - Small", overview.Data.Items[0].Name)
	s.Equal(2, *overview.Data.Items[0].Stock)
}

func (s *InventoryE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *InventoryE2ESuite) decodeResponse(resp *http.Response, dest interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dest))
}

func TestInventoryE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e tests in short mode")
	}
	suite.Run(t, new(InventoryE2ESuite))
}
