// internal/workers/import_processor.go
package workers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/tealeg/xlsx/v3"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
)

// ImportProcessor handles spreadsheet import tasks. It parses the uploaded
// file into field-named records and hands them to the rollup service.
type ImportProcessor struct {
	service ports.RollupService
	logger  *slog.Logger
}

// NewImportProcessor creates a new import processor
func NewImportProcessor(service ports.RollupService, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		service: service,
		logger:  logger.With(slog.String("processor", "import")),
	}
}

// ProcessLowValue ingests a low-value export and replaces the aggregate set.
func (p *ImportProcessor) ProcessLowValue(ctx context.Context, t *asynq.Task) error {
	var payload ImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	p.logger.InfoContext(ctx, "processing low-value import",
		slog.String("job_id", payload.JobID),
		slog.String("file_name", payload.FileName))

	records, err := ReadRecords(payload.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	rows := make([]domain.RawInventoryRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, domain.RawRowFromRecord(rec))
	}

	summary, err := p.service.ImportLowValue(ctx, rows)
	if err != nil {
		return fmt.Errorf("low-value import failed: %w", err)
	}

	removeTempFile(payload.FilePath)

	p.logger.InfoContext(ctx, "low-value import completed",
		slog.String("job_id", payload.JobID),
		slog.Int("rows_in", summary.RowsIn),
		slog.Int("groups", summary.Groups),
		slog.Int("skipped", summary.Skipped))

	return nil
}

// ProcessCatalog ingests a catalog-format export into the cross-reference
// cache.
func (p *ImportProcessor) ProcessCatalog(ctx context.Context, t *asynq.Task) error {
	var payload ImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	p.logger.InfoContext(ctx, "processing catalog import",
		slog.String("job_id", payload.JobID),
		slog.String("file_name", payload.FileName))

	records, err := ReadRecords(payload.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	refs := make([]domain.CatalogImageRef, 0, len(records))
	for _, rec := range records {
		style := rec[domain.FieldStyleName]
		if style == "" {
			// Some catalog dumps reuse the low-value column name
			style = rec[domain.FieldStyle]
		}
		refs = append(refs, domain.CatalogImageRef{
			Style:    style,
			ImageURL: rec[domain.FieldStyleImage],
		})
	}

	summary, err := p.service.ImportCatalog(ctx, refs)
	if err != nil {
		return fmt.Errorf("catalog import failed: %w", err)
	}

	removeTempFile(payload.FilePath)

	p.logger.InfoContext(ctx, "catalog import completed",
		slog.String("job_id", payload.JobID),
		slog.Int("rows_in", summary.RowsIn),
		slog.Int("upserted", summary.Upserted),
		slog.Int64("backfilled", summary.Backfilled))

	return nil
}

// ReadRecords parses a spreadsheet into one map per data row keyed by the
// header row's column names. Supported formats are xlsx and csv.
func ReadRecords(filePath string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		return readXLSX(filePath)
	case ".csv":
		return readCSV(filePath)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(filePath))
	}
}

func readXLSX(filePath string) ([]map[string]string, error) {
	file, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("xlsx file has no sheets")
	}

	sheet := file.Sheets[0]
	var headers []string
	var records []map[string]string
	rowIdx := 0

	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		var cells []string
		r.ForEachCell(func(c *xlsx.Cell) error {
			cells = append(cells, strings.TrimSpace(c.String()))
			return nil
		})

		if rowIdx == 0 {
			headers = cells
		} else if rec := recordFrom(headers, cells); rec != nil {
			records = append(records, rec)
		}
		rowIdx++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate xlsx rows: %w", err)
	}

	return records, nil
}

func readCSV(filePath string) ([]map[string]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var records []map[string]string
	for _, cells := range rows[1:] {
		if rec := recordFrom(headers, cells); rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// recordFrom zips a data row with the header row. Rows that are entirely
// blank are dropped.
func recordFrom(headers, cells []string) map[string]string {
	rec := make(map[string]string, len(headers))
	empty := true
	for i, h := range headers {
		if h == "" {
			continue
		}
		var v string
		if i < len(cells) {
			v = strings.TrimSpace(cells[i])
		}
		rec[h] = v
		if v != "" {
			empty = false
		}
	}
	if empty {
		return nil
	}
	return rec
}

func removeTempFile(filePath string) {
	if strings.HasPrefix(filePath, os.TempDir()) || strings.HasPrefix(filePath, "/tmp/") {
		os.Remove(filePath)
	}
}
