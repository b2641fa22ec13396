// internal/adapters/imagecdn/fetcher_test.go
package imagecdn

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agestock/agestock-be/internal/core/ports"
	"github.com/agestock/agestock-be/test/helpers"
	"github.com/agestock/agestock-be/test/mocks"
)

func TestFetch_SendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenProvider(ctrl)
	tokens.EXPECT().AccessToken(gomock.Any()).Return("tok-123", nil)

	fetcher := NewFetcher(tokens, helpers.TestLogger())

	img, err := fetcher.Fetch(context.Background(), server.URL+"/ab123.jpg")
	require.NoError(t, err)
	defer img.Body.Close()

	body, err := io.ReadAll(img.Body)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(body))
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestFetch_DegradesWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("public-asset"))
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenProvider(ctrl)
	tokens.EXPECT().AccessToken(gomock.Any()).Return("", ports.ErrNoToken)

	fetcher := NewFetcher(tokens, helpers.TestLogger())

	img, err := fetcher.Fetch(context.Background(), server.URL+"/ab123.jpg")
	require.NoError(t, err)
	img.Body.Close()
	assert.Empty(t, gotAuth)
}

func TestFetch_TokenResolutionFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenProvider(ctrl)
	tokens.EXPECT().AccessToken(gomock.Any()).Return("", errors.New("store unreachable"))

	fetcher := NewFetcher(tokens, helpers.TestLogger())

	_, err := fetcher.Fetch(context.Background(), "http://localhost/ab123.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access token")
}

func TestFetch_Non200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenProvider(ctrl)
	tokens.EXPECT().AccessToken(gomock.Any()).Return("", ports.ErrNoToken)

	fetcher := NewFetcher(tokens, helpers.TestLogger())

	_, err := fetcher.Fetch(context.Background(), server.URL+"/missing.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
