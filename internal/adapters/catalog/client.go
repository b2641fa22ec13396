// internal/adapters/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
)

// Config holds the external product catalog connection settings.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// Client pulls style-to-image references from the external product catalog
// over HTTP. The source is optional: when no endpoint is configured every
// fetch reports ErrSourceUnavailable and callers fall back to the last
// known-good cache.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.CatalogSource = (*Client)(nil)

// NewClient creates a catalog source client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With(slog.String("component", "catalog_source")),
	}
}

// FetchImageRefs retrieves the current style-to-image mapping from the
// catalog endpoint.
func (c *Client) FetchImageRefs(ctx context.Context) ([]domain.CatalogImageRef, error) {
	if strings.TrimSpace(c.cfg.Endpoint) == "" {
		return nil, fmt.Errorf("catalog endpoint not configured: %w", ports.ErrSourceUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "catalog source unreachable",
			slog.String("endpoint", c.cfg.Endpoint),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("catalog request failed: %w", ports.ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "catalog source returned error status",
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("catalog returned status %d: %w", resp.StatusCode, ports.ErrSourceUnavailable)
	}

	var refs []domain.CatalogImageRef
	if err := json.NewDecoder(resp.Body).Decode(&refs); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	c.logger.DebugContext(ctx, "fetched catalog image refs",
		slog.Int("count", len(refs)))
	return refs, nil
}
