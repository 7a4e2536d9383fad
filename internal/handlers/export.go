// internal/handlers/export.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/dcastano/shopadmin-be/internal/core/domain"
	"github.com/dcastano/shopadmin-be/internal/core/ports"
)

// ExportHandler produces spreadsheet downloads of the inventory overview
type ExportHandler struct {
	service    ports.InventoryService
	thresholds domain.StockThresholds
	logger     *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ports.InventoryService, thresholds domain.StockThresholds, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service:    service,
		thresholds: thresholds,
		logger:     logger.With(slog.String("handler", "export")),
	}
}

// ExportExcel handles GET /api/v1/inventory/export/xlsx. It accepts the
// same search, stock_level and product_type filters as the overview and
// streams every matching page into a single workbook.
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := ports.OverviewParams{
		Search:      r.URL.Query().Get("search"),
		StockLevel:  r.URL.Query().Get("stock_level"),
		ProductType: r.URL.Query().Get("product_type"),
		Limit:       100,
	}

	items, err := h.collectItems(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to collect export data",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	excelData, err := h.generateExcelFile(items)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate workbook",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("inventory_export_%s.xlsx", nowStamp())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(excelData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(excelData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write workbook response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "excel export completed",
		slog.Int("total_rows", len(items)),
		slog.String("filename", filename))
}

// collectItems pages through the overview until all matching rows are
// in memory. Inventory sizes here are small enough for that.
func (h *ExportHandler) collectItems(ctx context.Context, params ports.OverviewParams) ([]*domain.StockItem, error) {
	var items []*domain.StockItem

	for page := 1; ; page++ {
		params.Page = page
		result, err := h.service.GetInventoryOverview(ctx, params)
		if err != nil {
			return nil, err
		}

		items = append(items, result.Items...)
		if page >= result.TotalPages || len(result.Items) == 0 {
			break
		}
	}

	return items, nil
}

func (h *ExportHandler) generateExcelFile(items []*domain.StockItem) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headers := []string{
		"Product ID", "Variant ID", "Name", "SKU", "Type",
		"Price", "Stock", "Status", "Active", "Updated At",
	}
	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, item := range items {
		row := sheet.AddRow()
		for _, value := range h.itemToRow(item) {
			row.AddCell().Value = value
		}
	}

	for i := range headers {
		sheet.SetColWidth(i, i, 18)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write workbook to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}

func (h *ExportHandler) itemToRow(item *domain.StockItem) []string {
	variantID := ""
	if item.VariantID != nil {
		variantID = item.VariantID.String()
	}

	stock := ""
	if item.Stock != nil {
		stock = strconv.Itoa(*item.Stock)
	}

	active := "No"
	if item.IsActive {
		active = "Yes"
	}

	return []string{
		item.ProductID.String(),
		variantID,
		item.Name,
		item.SKU,
		string(item.Kind()),
		item.Price.StringFixed(2),
		stock,
		string(item.Level(h.thresholds)),
		active,
		item.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func nowStamp() string {
	return time.Now().Format("20060102_150405")
}

func (h *ExportHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
