// internal/handlers/export.go
package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
)

// exportPageSize bounds how many aggregates one repository call fetches while
// the exporter drains the full set.
const exportPageSize = 500

var exportHeaders = []string{
	"Style", "Color", "Commodity", "Sizes",
	"Total Remaining", "Total Value", "Total Current", "Total Committed",
	"Unit Cost Avg", "Age Days", "Age Bracket", "Last Stock In",
	"PO No", "Image URL", "Flagged", "Updated At",
}

// ExportHandler streams the full aggregate set as a downloadable file
type ExportHandler struct {
	service ports.RollupService
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ports.RollupService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "export")),
	}
}

// Export handles GET /api/v1/export. The format query parameter selects
// xlsx (default), csv, or json.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "xlsx"
	}

	records, err := h.collectAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to collect aggregates for export",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	stamp := time.Now().Format("20060102_150405")

	switch format {
	case "xlsx":
		data, err := h.generateXLSX(records)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to generate xlsx export",
				slog.String("error", err.Error()))
			h.respondError(w, http.StatusInternalServerError, "Failed to generate export")
			return
		}
		h.sendFile(w, data,
			fmt.Sprintf("aging_inventory_%s.xlsx", stamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	case "csv":
		data, err := h.generateCSV(records)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to generate csv export",
				slog.String("error", err.Error()))
			h.respondError(w, http.StatusInternalServerError, "Failed to generate export")
			return
		}
		h.sendFile(w, data,
			fmt.Sprintf("aging_inventory_%s.csv", stamp),
			"text/csv")

	case "json":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"inventory":   records,
			"total":       len(records),
			"export_date": time.Now(),
		})

	default:
		h.respondError(w, http.StatusBadRequest, "Unsupported format; use xlsx, csv, or json")
		return
	}

	h.logger.InfoContext(ctx, "export completed",
		slog.String("format", format),
		slog.Int("rows", len(records)))
}

// collectAll drains every page of aggregates in the default age ordering.
func (h *ExportHandler) collectAll(ctx context.Context) ([]*domain.RolledInventoryRecord, error) {
	var records []*domain.RolledInventoryRecord

	for page := 1; ; page++ {
		result, err := h.service.List(ctx, ports.ListParams{
			Page:     page,
			PageSize: exportPageSize,
		})
		if err != nil {
			return nil, err
		}

		records = append(records, result.Records...)
		if len(result.Records) < exportPageSize {
			break
		}
	}

	return records, nil
}

func (h *ExportHandler) generateXLSX(records []*domain.RolledInventoryRecord) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Aging Inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range exportHeaders {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
	}

	for _, rec := range records {
		row := sheet.AddRow()
		for _, value := range exportRow(rec) {
			row.AddCell().Value = value
		}
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write xlsx file: %w", err)
	}

	return buffer.Bytes(), nil
}

func (h *ExportHandler) generateCSV(records []*domain.RolledInventoryRecord) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range records {
		if err := writer.Write(exportRow(rec)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buffer.Bytes(), nil
}

func exportRow(rec *domain.RolledInventoryRecord) []string {
	flagged := "No"
	if rec.Flagged {
		flagged = "Yes"
	}

	return []string{
		rec.Style,
		rec.Color,
		rec.Commodity,
		strings.Join(rec.Sizes, ","),
		strconv.FormatInt(rec.TotalRemaining, 10),
		rec.TotalValue.StringFixed(2),
		strconv.FormatInt(rec.TotalCurrent, 10),
		strconv.FormatInt(rec.TotalCommitted, 10),
		rec.UnitCostAvg.StringFixed(4),
		strconv.Itoa(rec.AgeDays),
		rec.AgeBracket,
		rec.LastStockInDate,
		rec.PurchaseOrderNo,
		rec.ImageURL,
		flagged,
		rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (h *ExportHandler) sendFile(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write export response",
			slog.String("error", err.Error()))
	}
}

func (h *ExportHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
