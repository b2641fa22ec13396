// internal/handlers/import.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/agestock/agestock-be/internal/adapters/storage"
	"github.com/agestock/agestock-be/internal/pkg/config"
	"github.com/agestock/agestock-be/internal/workers"
)

// ImportHandler accepts spreadsheet uploads and hands them to the worker
// queue. Uploads are archived to object storage best-effort before queueing.
type ImportHandler struct {
	asynqClient *asynq.Client
	archiver    storage.Archiver
	logger      *slog.Logger
	maxFileSize int64
	uploadDir   string
	maxRetry    int
	taskTimeout time.Duration
}

// NewImportHandler creates a new import handler
func NewImportHandler(asynqClient *asynq.Client, archiver storage.Archiver, logger *slog.Logger, importCfg config.ImportConfig, maxRetry int) *ImportHandler {
	return &ImportHandler{
		asynqClient: asynqClient,
		archiver:    archiver,
		logger:      logger.With(slog.String("handler", "import")),
		maxFileSize: int64(importCfg.MaxSizeMB) * 1024 * 1024,
		uploadDir:   importCfg.TempDir,
		maxRetry:    maxRetry,
		taskTimeout: importCfg.ProcessingTimeout,
	}
}

// ImportLowValue handles POST /api/v1/import/lowvalue
func (h *ImportHandler) ImportLowValue(w http.ResponseWriter, r *http.Request) {
	h.handleImport(w, r, "lowvalue")
}

// ImportCatalog handles POST /api/v1/import/catalog
func (h *ImportHandler) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	h.handleImport(w, r, "catalog")
}

func (h *ImportHandler) handleImport(w http.ResponseWriter, r *http.Request, source string) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".csv" {
		h.respondError(w, http.StatusBadRequest, "Only xlsx and csv files are allowed")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.ErrorContext(ctx, "failed to create upload directory",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to prepare upload")
		return
	}

	tempFile, err := storage.CopyToTemp(h.uploadDir, fmt.Sprintf("%s_*%s", source, ext), file)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save upload",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	// Archive is best-effort: a failed upload to object storage must not
	// block the import.
	archiveKey, err := h.archiver.Archive(ctx, source, tempFile)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to archive import file",
			slog.String("source", source),
			slog.String("error", err.Error()))
	}

	jobID := uuid.New().String()
	payload := workers.ImportPayload{
		JobID:      jobID,
		FilePath:   tempFile,
		FileName:   header.Filename,
		ArchiveKey: archiveKey,
	}

	var task *asynq.Task
	switch source {
	case "catalog":
		task, err = workers.NewCatalogImportTask(payload)
	default:
		task, err = workers.NewLowValueImportTask(payload)
	}
	if err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to create import task",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	info, err := h.asynqClient.Enqueue(task,
		asynq.Queue("default"),
		asynq.MaxRetry(h.maxRetry),
		asynq.Timeout(h.taskTimeout),
		asynq.Retention(24*time.Hour))
	if err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to enqueue import task",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	h.logger.InfoContext(ctx, "import queued",
		slog.String("source", source),
		slog.String("job_id", jobID),
		slog.String("task_id", info.ID),
		slog.String("file_name", header.Filename))

	h.respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":  jobID,
		"status":  "queued",
		"message": fmt.Sprintf("%s import has been queued for processing", source),
	})
}

func (h *ImportHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *ImportHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
