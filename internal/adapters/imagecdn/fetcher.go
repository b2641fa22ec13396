// internal/adapters/imagecdn/fetcher.go
package imagecdn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/agestock/agestock-be/internal/core/ports"
)

// Image is a fetched CDN asset ready to stream to a client.
type Image struct {
	Body        io.ReadCloser
	ContentType string
	Length      int64
}

// Fetcher retrieves image assets from the CDN. When no access token is
// available it degrades to an unauthenticated request, which public assets
// still serve.
type Fetcher struct {
	tokens     ports.TokenProvider
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates an image fetcher
func NewFetcher(tokens ports.TokenProvider, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		tokens: tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With(slog.String("component", "imagecdn_fetcher")),
	}
}

// Fetch downloads the asset at imageURL. The caller owns Body and must
// close it.
func (f *Fetcher) Fetch(ctx context.Context, imageURL string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	token, err := f.tokens.AccessToken(ctx)
	switch {
	case err == nil:
		req.Header.Set("Authorization", "Bearer "+token)
	case errors.Is(err, ports.ErrNoToken):
		f.logger.DebugContext(ctx, "fetching image without credentials",
			slog.String("url", imageURL))
	default:
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	return &Image{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		Length:      resp.ContentLength,
	}, nil
}
