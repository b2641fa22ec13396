// internal/core/services/catalog_sync_test.go
package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
	"github.com/agestock/agestock-be/internal/core/services"
	"github.com/agestock/agestock-be/test/helpers"
	"github.com/agestock/agestock-be/test/mocks"
)

type syncFixture struct {
	svc        *services.CatalogSyncService
	source     *mocks.MockCatalogSource
	catalog    *mocks.MockCatalogRepository
	aggregates *mocks.MockAggregateRepository
	cache      *mocks.MockCacheRepository
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &syncFixture{
		source:     mocks.NewMockCatalogSource(ctrl),
		catalog:    mocks.NewMockCatalogRepository(ctrl),
		aggregates: mocks.NewMockAggregateRepository(ctrl),
		cache:      mocks.NewMockCacheRepository(ctrl),
	}
	f.svc = services.NewCatalogSyncService(f.source, f.catalog, f.aggregates, f.cache, helpers.TestLogger())
	return f
}

func TestSyncRun_PullThenBackfill(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	f.source.EXPECT().FetchImageRefs(ctx).Return([]domain.CatalogImageRef{
		{Style: " AB123 ", ImageURL: " http://catalog/ab123.jpg "},
		{Style: "", ImageURL: "http://catalog/orphan.jpg"},
		{Style: "CD456", ImageURL: ""},
	}, nil)
	f.catalog.EXPECT().
		UpsertBatch(ctx, []domain.CatalogImageRef{
			{Style: "AB123", ImageURL: "http://catalog/ab123.jpg"},
		}).
		Return(nil)
	f.aggregates.EXPECT().BackfillImages(ctx).Return(int64(2), nil)
	f.cache.EXPECT().DeletePattern(ctx, "dash:*").Return(nil)

	require.NoError(t, f.svc.Run(ctx))
}

func TestSyncRun_NoBackfillSkipsInvalidation(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	f.source.EXPECT().FetchImageRefs(ctx).Return(nil, nil)
	f.aggregates.EXPECT().BackfillImages(ctx).Return(int64(0), nil)

	require.NoError(t, f.svc.Run(ctx))
}

func TestSyncRun_SourceUnavailableIsNonFatal(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	f.source.EXPECT().FetchImageRefs(ctx).Return(nil, ports.ErrSourceUnavailable)
	f.aggregates.EXPECT().BackfillImages(ctx).Return(int64(1), nil)
	f.cache.EXPECT().DeletePattern(ctx, "dash:*").Return(nil)

	require.NoError(t, f.svc.Run(ctx))
}

func TestSyncRun_UpsertFailureIsNonFatal(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	f.source.EXPECT().FetchImageRefs(ctx).Return([]domain.CatalogImageRef{
		{Style: "AB123", ImageURL: "http://catalog/ab123.jpg"},
	}, nil)
	f.catalog.EXPECT().UpsertBatch(ctx, gomock.Any()).Return(errors.New("deadlock detected"))
	f.aggregates.EXPECT().BackfillImages(ctx).Return(int64(0), nil)

	require.NoError(t, f.svc.Run(ctx))
}

func TestSyncRun_BackfillFailureIsFatal(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	f.source.EXPECT().FetchImageRefs(ctx).Return(nil, nil)
	f.aggregates.EXPECT().BackfillImages(ctx).Return(int64(0), errors.New("connection refused"))

	err := f.svc.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backfill failed")
}

func TestSyncRun_SingleFlight(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})

	f.source.EXPECT().
		FetchImageRefs(ctx).
		DoAndReturn(func(context.Context) ([]domain.CatalogImageRef, error) {
			close(entered)
			<-release
			return nil, nil
		})
	f.aggregates.EXPECT().BackfillImages(ctx).Return(int64(0), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, f.svc.Run(ctx))
	}()

	<-entered
	// First run is parked inside the source fetch, so this run must skip
	require.NoError(t, f.svc.Run(ctx))

	close(release)
	wg.Wait()
}
