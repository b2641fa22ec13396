// internal/handlers/inventory_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
	"github.com/agestock/agestock-be/internal/handlers"
	"github.com/agestock/agestock-be/test/helpers"
	"github.com/agestock/agestock-be/test/mocks"
)

func newInventoryMux(t *testing.T) (*http.ServeMux, *mocks.MockRollupService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockRollupService(ctrl)
	handler := handlers.NewInventoryHandler(service, helpers.TestLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/inventory", handler.ListInventory)
	mux.HandleFunc("GET /api/v1/inventory/{style}/{color}", handler.GetInventory)
	mux.HandleFunc("PATCH /api/v1/inventory/{style}/{color}/flag", handler.UpdateFlag)
	return mux, service
}

func TestListInventory_ParsesQueryParams(t *testing.T) {
	mux, service := newInventoryMux(t)

	service.EXPECT().
		List(gomock.Any(), ports.ListParams{
			Page:       2,
			PageSize:   25,
			SortBy:     "value",
			SortOrder:  "asc",
			Style:      "AB123",
			AgeBracket: "1 year+",
			MinAgeDays: 365,
		}).
		Return(&ports.ListResult{Records: []*domain.RolledInventoryRecord{}, Page: 2}, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/inventory?page=2&limit=25&sort=value&order=asc&style=AB123&age_bracket=1+year%2B&min_age_days=365", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestListInventory_DefaultsAndClamps(t *testing.T) {
	mux, service := newInventoryMux(t)

	service.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, params ports.ListParams) (*ports.ListResult, error) {
			assert.Equal(t, 1, params.Page)
			assert.Equal(t, 100, params.PageSize)
			assert.Equal(t, "age", params.SortBy)
			assert.Equal(t, "desc", params.SortOrder)
			return &ports.ListResult{}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory?limit=5000&order=sideways", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListInventory_FlaggedFilter(t *testing.T) {
	mux, service := newInventoryMux(t)

	service.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, params ports.ListParams) (*ports.ListResult, error) {
			require.NotNil(t, params.Flagged)
			assert.True(t, *params.Flagged)
			return &ports.ListResult{}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory?flagged=true", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetInventory(t *testing.T) {
	mux, service := newInventoryMux(t)
	record := helpers.CreateTestRecord()

	service.EXPECT().
		Get(gomock.Any(), domain.GroupKey{Style: "AB123", Color: "Navy"}).
		Return(&record, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/AB123/Navy", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.RolledInventoryRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "AB123", got.Style)
	assert.Equal(t, "Navy", got.Color)
}

func TestGetInventory_NotFound(t *testing.T) {
	mux, service := newInventoryMux(t)

	service.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("aggregate not found: ZZ999/None"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/ZZ999/None", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateFlag(t *testing.T) {
	mux, service := newInventoryMux(t)

	service.EXPECT().
		SetFlag(gomock.Any(), domain.GroupKey{Style: "AB123", Color: "Navy"}, true).
		Return(nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/inventory/AB123/Navy/flag",
		strings.NewReader(`{"flagged": true}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["flagged"])
}

func TestUpdateFlag_InvalidBody(t *testing.T) {
	mux, _ := newInventoryMux(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/inventory/AB123/Navy/flag",
		strings.NewReader(`{flagged`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateFlag_NotFound(t *testing.T) {
	mux, service := newInventoryMux(t)

	service.EXPECT().
		SetFlag(gomock.Any(), gomock.Any(), false).
		Return(fmt.Errorf("aggregate not found: ZZ999/None"))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/inventory/ZZ999/None/flag",
		strings.NewReader(`{"flagged": false}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
