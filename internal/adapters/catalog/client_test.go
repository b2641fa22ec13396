// internal/adapters/catalog/client_test.go
package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agestock/agestock-be/internal/adapters/catalog"
	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
	"github.com/agestock/agestock-be/test/helpers"
)

func TestFetchImageRefs_Success(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"style":"AB123","image_url":"http://catalog/ab123.jpg"},
			{"style":"CD456","image_url":"http://catalog/cd456.jpg"}
		]`))
	}))
	defer server.Close()

	client := catalog.NewClient(catalog.Config{
		Endpoint: server.URL,
		APIKey:   "key-123",
	}, helpers.TestLogger())

	refs, err := client.FetchImageRefs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key-123", gotKey)
	assert.Equal(t, []domain.CatalogImageRef{
		{Style: "AB123", ImageURL: "http://catalog/ab123.jpg"},
		{Style: "CD456", ImageURL: "http://catalog/cd456.jpg"},
	}, refs)
}

func TestFetchImageRefs_NoEndpointConfigured(t *testing.T) {
	client := catalog.NewClient(catalog.Config{}, helpers.TestLogger())

	_, err := client.FetchImageRefs(context.Background())
	assert.ErrorIs(t, err, ports.ErrSourceUnavailable)
}

func TestFetchImageRefs_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := catalog.NewClient(catalog.Config{Endpoint: server.URL}, helpers.TestLogger())

	_, err := client.FetchImageRefs(context.Background())
	assert.ErrorIs(t, err, ports.ErrSourceUnavailable)
}

func TestFetchImageRefs_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := catalog.NewClient(catalog.Config{Endpoint: server.URL}, helpers.TestLogger())

	_, err := client.FetchImageRefs(context.Background())
	assert.ErrorIs(t, err, ports.ErrSourceUnavailable)
}

func TestFetchImageRefs_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer server.Close()

	client := catalog.NewClient(catalog.Config{Endpoint: server.URL}, helpers.TestLogger())

	_, err := client.FetchImageRefs(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrSourceUnavailable)
}
