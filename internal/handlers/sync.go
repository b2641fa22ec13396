// internal/handlers/sync.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hibiken/asynq"

	"github.com/agestock/agestock-be/internal/workers"
)

// SyncHandler triggers on-demand catalog synchronization runs
type SyncHandler struct {
	asynqClient *asynq.Client
	logger      *slog.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(asynqClient *asynq.Client, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		asynqClient: asynqClient,
		logger:      logger.With(slog.String("handler", "sync")),
	}
}

// TriggerSync handles POST /api/v1/sync/catalog. It enqueues the same task
// the scheduler runs; the sync service itself skips overlapping runs.
func (h *SyncHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	task := workers.NewCatalogSyncTask()
	info, err := h.asynqClient.Enqueue(task,
		asynq.Queue("default"),
		asynq.MaxRetry(1))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue catalog sync",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue catalog sync")
		return
	}

	h.logger.InfoContext(ctx, "catalog sync queued",
		slog.String("task_id", info.ID))

	h.respondJSON(w, http.StatusAccepted, map[string]string{
		"status":  "queued",
		"message": "Catalog sync has been queued",
	})
}

func (h *SyncHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *SyncHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
