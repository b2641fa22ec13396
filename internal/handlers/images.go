// internal/handlers/images.go
package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/agestock/agestock-be/internal/adapters/imagecdn"
	"github.com/agestock/agestock-be/internal/core/ports"
)

// ImagesHandler proxies style images from the CDN so browser clients never
// see CDN credentials.
type ImagesHandler struct {
	catalog ports.CatalogRepository
	fetcher *imagecdn.Fetcher
	logger  *slog.Logger
}

// NewImagesHandler creates a new images handler
func NewImagesHandler(catalog ports.CatalogRepository, fetcher *imagecdn.Fetcher, logger *slog.Logger) *ImagesHandler {
	return &ImagesHandler{
		catalog: catalog,
		fetcher: fetcher,
		logger:  logger.With(slog.String("handler", "images")),
	}
}

// GetStyleImage handles GET /api/v1/images/{style}
func (h *ImagesHandler) GetStyleImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	style := strings.TrimSpace(r.PathValue("style"))
	if style == "" {
		h.respondError(w, http.StatusBadRequest, "Style is required")
		return
	}

	entry, err := h.catalog.Find(ctx, style)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to look up style image",
			slog.String("style", style),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to look up style image")
		return
	}
	if entry == nil || entry.ImageURL == "" {
		h.respondError(w, http.StatusNotFound, "No image known for style")
		return
	}

	img, err := h.fetcher.Fetch(ctx, entry.ImageURL)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to fetch style image",
			slog.String("style", style),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusBadGateway, "Failed to fetch style image")
		return
	}
	defer img.Body.Close()

	if img.ContentType != "" {
		w.Header().Set("Content-Type", img.ContentType)
	}
	if img.Length > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(img.Length, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if _, err := io.Copy(w, img.Body); err != nil {
		h.logger.DebugContext(ctx, "image stream interrupted",
			slog.String("style", style),
			slog.String("error", err.Error()))
	}
}

func (h *ImagesHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
