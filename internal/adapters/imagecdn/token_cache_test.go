// internal/adapters/imagecdn/token_cache_test.go
package imagecdn

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agestock/agestock-be/internal/core/ports"
	"github.com/agestock/agestock-be/test/helpers"
	"github.com/agestock/agestock-be/test/mocks"
)

type tokenIssuer struct {
	server    *httptest.Server
	calls     atomic.Int64
	lastToken atomic.Value
	status    int
	expiresIn int64
}

func newTokenIssuer(t *testing.T) *tokenIssuer {
	t.Helper()

	issuer := &tokenIssuer{status: http.StatusOK, expiresIn: 3600}
	issuer.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		issuer.calls.Add(1)
		require.NoError(t, r.ParseForm())
		issuer.lastToken.Store(r.FormValue("refresh_token"))
		assert.Equal(t, "refresh_token", r.FormValue("grant_type"))

		if issuer.status != http.StatusOK {
			w.WriteHeader(issuer.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"access_token":"issued-token","expires_in":%d}`, issuer.expiresIn)
	}))
	t.Cleanup(issuer.server.Close)
	return issuer
}

func newTestCache(t *testing.T, cfg Config, creds ports.CredentialSource) *TokenCache {
	t.Helper()
	return NewTokenCache(cfg, creds, helpers.TestLogger())
}

func TestAccessToken_ExchangesAndCaches(t *testing.T) {
	issuer := newTokenIssuer(t)
	cache := newTestCache(t, Config{
		TokenURL:     issuer.server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: "cfg-refresh",
	}, nil)
	ctx := context.Background()

	token, err := cache.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)

	// Second call is served from the cache
	_, err = cache.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), issuer.calls.Load())
}

func TestAccessToken_RefreshesBeforeExpiry(t *testing.T) {
	issuer := newTokenIssuer(t)
	cache := newTestCache(t, Config{
		TokenURL:     issuer.server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: "cfg-refresh",
	}, nil)

	start := time.Now()
	clock := start
	cache.now = func() time.Time { return clock }
	ctx := context.Background()

	_, err := cache.AccessToken(ctx)
	require.NoError(t, err)

	// expires_in 3600 minus the safety margin leaves 3540s of usable life
	clock = start.Add(3539 * time.Second)
	_, err = cache.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), issuer.calls.Load())

	clock = start.Add(3541 * time.Second)
	_, err = cache.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), issuer.calls.Load())
}

func TestAccessToken_ConfigTokenBeatsStore(t *testing.T) {
	issuer := newTokenIssuer(t)
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockCredentialSource(ctrl)
	// No LatestRefreshToken expectation: the store must not be consulted

	cache := newTestCache(t, Config{
		TokenURL:     issuer.server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: "cfg-refresh",
	}, creds)

	_, err := cache.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cfg-refresh", issuer.lastToken.Load())
}

func TestAccessToken_FallsBackToStore(t *testing.T) {
	issuer := newTokenIssuer(t)
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockCredentialSource(ctrl)
	creds.EXPECT().LatestRefreshToken(gomock.Any()).Return("db-refresh", nil)

	cache := newTestCache(t, Config{
		TokenURL:     issuer.server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
	}, creds)

	_, err := cache.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "db-refresh", issuer.lastToken.Load())
}

func TestAccessToken_NoCredentialIsSoftFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockCredentialSource(ctrl)
	creds.EXPECT().LatestRefreshToken(gomock.Any()).Return("", ports.ErrNoCredential)

	cache := newTestCache(t, Config{
		TokenURL:     "http://localhost/token",
		ClientID:     "client",
		ClientSecret: "secret",
	}, creds)

	_, err := cache.AccessToken(context.Background())
	assert.ErrorIs(t, err, ports.ErrNoToken)
}

func TestAccessToken_StoreFailureIsSoftFailure(t *testing.T) {
	issuer := newTokenIssuer(t)
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockCredentialSource(ctrl)
	creds.EXPECT().LatestRefreshToken(gomock.Any()).
		Return("", errors.New("connection refused"))

	cache := newTestCache(t, Config{
		TokenURL:     issuer.server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
	}, creds)

	// A broken store degrades the same way a missing credential does
	_, err := cache.AccessToken(context.Background())
	assert.ErrorIs(t, err, ports.ErrNoToken)
	assert.Equal(t, int64(0), issuer.calls.Load())
}

func TestAccessToken_MissingClientConfig(t *testing.T) {
	issuer := newTokenIssuer(t)
	cache := newTestCache(t, Config{
		TokenURL:     issuer.server.URL,
		RefreshToken: "cfg-refresh",
	}, nil)

	_, err := cache.AccessToken(context.Background())
	assert.ErrorIs(t, err, ports.ErrNoToken)
	assert.Equal(t, int64(0), issuer.calls.Load())
}

func TestAccessToken_ExchangeFailureIsSoftFailure(t *testing.T) {
	issuer := newTokenIssuer(t)
	issuer.status = http.StatusInternalServerError

	cache := newTestCache(t, Config{
		TokenURL:     issuer.server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: "cfg-refresh",
	}, nil)

	_, err := cache.AccessToken(context.Background())
	assert.ErrorIs(t, err, ports.ErrNoToken)
}

func TestInvalidate_ForcesFreshExchange(t *testing.T) {
	issuer := newTokenIssuer(t)
	cache := newTestCache(t, Config{
		TokenURL:     issuer.server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: "cfg-refresh",
	}, nil)
	ctx := context.Background()

	_, err := cache.AccessToken(ctx)
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), issuer.calls.Load())
}
