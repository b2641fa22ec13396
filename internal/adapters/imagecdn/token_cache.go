// internal/adapters/imagecdn/token_cache.go
package imagecdn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
)

// expiryMargin is subtracted from the issuer's expires_in so a token is
// refreshed before it actually lapses mid-request.
const expiryMargin = 60 * time.Second

// Config holds the image CDN OAuth settings. RefreshToken from config takes
// precedence over the database credential store.
type Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
	Timeout      time.Duration
}

// TokenCache lazily exchanges a refresh token for an access token and caches
// it until shortly before expiry. Concurrent callers share a single refresh:
// the mutex serializes the exchange and late arrivals get the cached result.
type TokenCache struct {
	mu         sync.Mutex
	entry      *domain.AccessCredential
	cfg        Config
	creds      ports.CredentialSource
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
}

var _ ports.TokenProvider = (*TokenCache)(nil)

// NewTokenCache creates a token cache backed by the given credential source
func NewTokenCache(cfg Config, creds ports.CredentialSource, logger *slog.Logger) *TokenCache {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &TokenCache{
		cfg:   cfg,
		creds: creds,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		now:    time.Now,
		logger: logger.With(slog.String("component", "imagecdn_tokens")),
	}
}

// AccessToken returns a valid access token, refreshing it when the cached
// one is missing or expired. ErrNoToken means the CDN is unconfigured or the
// exchange failed; callers degrade to unauthenticated behavior.
func (t *TokenCache) AccessToken(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.entry != nil && !t.entry.Expired(t.now()) {
		return t.entry.AccessToken, nil
	}

	refreshToken, err := t.resolveRefreshToken(ctx)
	if err != nil {
		return "", err
	}

	if t.cfg.ClientID == "" || t.cfg.ClientSecret == "" {
		t.logger.DebugContext(ctx, "image cdn client credentials not configured")
		return "", ports.ErrNoToken
	}

	entry, err := t.exchange(ctx, refreshToken)
	if err != nil {
		t.logger.WarnContext(ctx, "token refresh failed",
			slog.String("error", err.Error()))
		return "", ports.ErrNoToken
	}

	t.entry = entry
	t.logger.DebugContext(ctx, "access token refreshed",
		slog.Time("expires_at", entry.ExpiresAt))
	return entry.AccessToken, nil
}

// Invalidate drops the cached token so the next call performs a fresh
// exchange. Used after the CDN rejects a token that should still be valid.
func (t *TokenCache) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entry = nil
}

func (t *TokenCache) resolveRefreshToken(ctx context.Context) (string, error) {
	if tok := strings.TrimSpace(t.cfg.RefreshToken); tok != "" {
		return tok, nil
	}
	if t.creds == nil {
		return "", ports.ErrNoToken
	}

	tok, err := t.creds.LatestRefreshToken(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNoCredential) {
			t.logger.DebugContext(ctx, "no refresh credential available")
		} else {
			// A broken credential store is treated the same as a missing
			// credential: callers degrade to unauthenticated behavior.
			t.logger.WarnContext(ctx, "credential store lookup failed",
				slog.String("error", err.Error()))
		}
		return "", ports.ErrNoToken
	}
	return tok, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (t *TokenCache) exchange(ctx context.Context, refreshToken string) (*domain.AccessCredential, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {t.cfg.ClientID},
		"client_secret": {t.cfg.ClientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned empty access token")
	}

	expiresAt := t.now().Add(time.Duration(body.ExpiresIn)*time.Second - expiryMargin)
	return &domain.AccessCredential{
		AccessToken: body.AccessToken,
		ExpiresAt:   expiresAt,
	}, nil
}
