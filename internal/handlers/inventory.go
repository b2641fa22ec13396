// internal/handlers/inventory.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
)

// InventoryHandler serves the aggregated inventory views
type InventoryHandler struct {
	service ports.RollupService
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service ports.RollupService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "inventory")),
	}
}

// ListInventory handles GET /api/v1/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := h.parseListParams(r)

	result, err := h.service.List(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list aggregates",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list inventory")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetInventory handles GET /api/v1/inventory/{style}/{color}
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, ok := h.pathKey(w, r)
	if !ok {
		return
	}

	record, err := h.service.Get(ctx, key)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, "Inventory group not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get aggregate",
			slog.String("style", key.Style),
			slog.String("color", key.Color),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve inventory group")
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

// FlagRequest is the body for PATCH flag updates
type FlagRequest struct {
	Flagged bool `json:"flagged"`
}

// UpdateFlag handles PATCH /api/v1/inventory/{style}/{color}/flag
func (h *InventoryHandler) UpdateFlag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, ok := h.pathKey(w, r)
	if !ok {
		return
	}

	var req FlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.SetFlag(ctx, key, req.Flagged); err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, "Inventory group not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update flag",
			slog.String("style", key.Style),
			slog.String("color", key.Color),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to update flag")
		return
	}

	h.logger.InfoContext(ctx, "flag updated",
		slog.String("style", key.Style),
		slog.String("color", key.Color),
		slog.Bool("flagged", req.Flagged))

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"style":   key.Style,
		"color":   key.Color,
		"flagged": req.Flagged,
	})
}

func (h *InventoryHandler) pathKey(w http.ResponseWriter, r *http.Request) (domain.GroupKey, bool) {
	style := strings.TrimSpace(r.PathValue("style"))
	color := strings.TrimSpace(r.PathValue("color"))

	if style == "" {
		h.respondError(w, http.StatusBadRequest, "Style is required")
		return domain.GroupKey{}, false
	}

	return domain.GroupKey{Style: style, Color: color}, true
}

// parseListParams parses query parameters for listing aggregates
func (h *InventoryHandler) parseListParams(r *http.Request) ports.ListParams {
	params := ports.ListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "age",
		SortOrder: "desc",
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > 100 {
				params.PageSize = 100
			} else {
				params.PageSize = l
			}
		}
	}

	params.Style = r.URL.Query().Get("style")
	params.Commodity = r.URL.Query().Get("commodity")
	params.AgeBracket = r.URL.Query().Get("age_bracket")

	if flagged := r.URL.Query().Get("flagged"); flagged != "" {
		if val, err := strconv.ParseBool(flagged); err == nil {
			params.Flagged = &val
		}
	}

	if minAge := r.URL.Query().Get("min_age_days"); minAge != "" {
		if v, err := strconv.Atoi(minAge); err == nil && v > 0 {
			params.MinAgeDays = v
		}
	}

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}

	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}

// Helper methods

func (h *InventoryHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *InventoryHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
