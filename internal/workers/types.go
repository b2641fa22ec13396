// internal/workers/types.go
package workers

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names registered with the asynq mux.
const (
	TypeLowValueImport = "import:lowvalue"
	TypeCatalogImport  = "import:catalog"
	TypeCatalogSync    = "catalog:sync"
	TypeTempCleanup    = "maintenance:temp_cleanup"
)

// ImportPayload carries one uploaded file handed off to the worker.
type ImportPayload struct {
	JobID      string `json:"job_id"`
	FilePath   string `json:"file_path"`
	FileName   string `json:"file_name"`
	ArchiveKey string `json:"archive_key,omitempty"`
}

// NewLowValueImportTask creates a low-value import task
func NewLowValueImportTask(p ImportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal import payload: %w", err)
	}
	return asynq.NewTask(TypeLowValueImport, data), nil
}

// NewCatalogImportTask creates a catalog-format import task
func NewCatalogImportTask(p ImportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal import payload: %w", err)
	}
	return asynq.NewTask(TypeCatalogImport, data), nil
}

// NewCatalogSyncTask creates a catalog synchronization task. The task carries
// no payload; the sync service owns all state.
func NewCatalogSyncTask() *asynq.Task {
	return asynq.NewTask(TypeCatalogSync, nil)
}
