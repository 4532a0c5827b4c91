package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/observability"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/search"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/store"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/validation"
)

type testServices struct {
	catalog *CatalogService
	stats   *StatsService
	search  *SearchService
	store   *store.Store
	metrics *observability.Metrics
}

func setupTestServices(t *testing.T) (*testServices, func()) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	testStore, err := store.New(logger, store.NewNoopEmitter())
	require.NoError(t, err)

	index, err := search.NewProductIndex(search.Options{Logger: logger})
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	searchService := NewSearchService(index, testStore, SearchOptions{Enabled: true, Fuzziness: 1, Limit: 10}, logger)
	testStore.SetSearchIndexer(searchService)

	svc := &testServices{
		catalog: NewCatalogService(testStore, validation.New(), metrics, logger),
		stats:   NewStatsService(testStore, logger),
		search:  searchService,
		store:   testStore,
		metrics: metrics,
	}

	cleanup := func() {
		_ = index.Close()
		_ = testStore.Close()
	}

	return svc, cleanup
}

// seedScenario loads the reference catalog: three activities, two
// categories, three products and one rating per product.
func seedScenario(t *testing.T, svc *testServices) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, svc.catalog.DefineActivities(ctx, DefineActivitiesRequest{
		Names: []string{"Trekking", "Running", "Swimming"},
	}))
	require.NoError(t, svc.catalog.AddCategory(ctx, AddCategoryRequest{
		Name: "Shorts", Activities: []string{"Trekking", "Running"},
	}))
	require.NoError(t, svc.catalog.AddCategory(ctx, AddCategoryRequest{
		Name: "Swimsuit", Activities: []string{"Swimming"},
	}))
	require.NoError(t, svc.catalog.AddProduct(ctx, AddProductRequest{
		Name: "TrekShort1", Activity: "Trekking", Category: "Shorts",
	}))
	require.NoError(t, svc.catalog.AddProduct(ctx, AddProductRequest{
		Name: "RunShort1", Activity: "Running", Category: "Shorts",
	}))
	require.NoError(t, svc.catalog.AddProduct(ctx, AddProductRequest{
		Name: "SwimGear1", Activity: "Swimming", Category: "Swimsuit",
	}))

	for _, r := range []AddRatingRequest{
		{Product: "TrekShort1", User: "User1", Stars: 4, Comment: "Great for hiking!"},
		{Product: "SwimGear1", User: "User2", Stars: 5, Comment: "Perfect fit!"},
		{Product: "RunShort1", User: "User3", Stars: 3, Comment: "Good, but could be better."},
	} {
		_, err := svc.catalog.AddRating(ctx, r)
		require.NoError(t, err)
	}
}
