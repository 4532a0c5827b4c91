package service

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
)

func TestStatsService_Scenario(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	seedScenario(t, svc)
	ctx := context.Background()

	trek, err := svc.stats.StarsOfProduct(ctx, "TrekShort1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, trek)

	avg, err := svc.stats.AverageStars(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	perActivity, err := svc.stats.StarsPerActivity(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ActivityStars{
		{Activity: "Running", Stars: 3.0},
		{Activity: "Swimming", Stars: 5.0},
		{Activity: "Trekking", Stars: 4.0},
	}, perActivity)

	perStars, err := svc.stats.ProductsPerStars(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.StarGroup{
		{Stars: 5.0, Products: []string{"SwimGear1"}},
		{Stars: 4.0, Products: []string{"TrekShort1"}},
		{Stars: 3.0, Products: []string{"RunShort1"}},
	}, perStars)
}

func TestStatsService_Empty(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	ctx := context.Background()

	unknown, err := svc.stats.StarsOfProduct(ctx, "Ghost")
	require.NoError(t, err)
	assert.Equal(t, 0.0, unknown)

	avg, err := svc.stats.AverageStars(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	perActivity, err := svc.stats.StarsPerActivity(ctx)
	require.NoError(t, err)
	assert.Empty(t, perActivity)

	perStars, err := svc.stats.ProductsPerStars(ctx)
	require.NoError(t, err)
	assert.Empty(t, perStars)
}

// fakeRatings is an in-memory RatingsReader.
type fakeRatings struct {
	products []*domain.Product
	ratings  map[string][]int
	err      error
}

func (f *fakeRatings) ListProducts(context.Context) ([]*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeRatings) ListRatings(_ context.Context, product string) ([]*domain.Rating, error) {
	out := make([]*domain.Rating, 0, len(f.ratings[product]))
	for _, stars := range f.ratings[product] {
		out = append(out, &domain.Rating{Product: product, Stars: stars})
	}
	return out, nil
}

func newFakeStats(f *fakeRatings) *StatsService {
	return NewStatsService(f, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStatsService_StarsPerActivity_PoolsRatings(t *testing.T) {
	stats := newFakeStats(&fakeRatings{
		products: []*domain.Product{
			{Name: "A", Activity: "Running"},
			{Name: "B", Activity: "Running"},
			{Name: "C", Activity: "Swimming"},
		},
		ratings: map[string][]int{
			"A": {5},
			"B": {1, 1, 1},
		},
	})

	perActivity, err := stats.StarsPerActivity(context.Background())
	require.NoError(t, err)

	// (5+1+1+1)/4, not the mean of the product means (3.0).
	// Swimming has no ratings and is omitted.
	assert.Equal(t, []domain.ActivityStars{{Activity: "Running", Stars: 2.0}}, perActivity)
}

func TestStatsService_ProductsPerStars_Grouping(t *testing.T) {
	stats := newFakeStats(&fakeRatings{
		products: []*domain.Product{
			{Name: "Alpha", Activity: "Running"},
			{Name: "Bravo", Activity: "Running"},
			{Name: "Charlie", Activity: "Swimming"},
			{Name: "Delta", Activity: "Swimming"},
			{Name: "Echo", Activity: "Trekking"},
		},
		ratings: map[string][]int{
			"Alpha":   {4, 5},
			"Bravo":   {0},
			"Charlie": {5, 4},
			"Delta":   {3, 4, 4, 5},
		},
	})

	perStars, err := stats.ProductsPerStars(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.StarGroup{
		{Stars: 4.5, Products: []string{"Alpha", "Charlie"}},
		{Stars: 4.0, Products: []string{"Delta"}},
		{Stars: 0.0, Products: []string{"Bravo"}},
	}, perStars)
}

func TestStatsService_AverageStars_AllRatings(t *testing.T) {
	stats := newFakeStats(&fakeRatings{
		products: []*domain.Product{{Name: "A"}, {Name: "B"}},
		ratings: map[string][]int{
			"A": {5},
			"B": {2, 2},
		},
	})

	avg, err := stats.AverageStars(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.0, avg)
}

func TestStatsService_PropagatesErrors(t *testing.T) {
	boom := stderrors.New("boom")
	stats := newFakeStats(&fakeRatings{err: boom})

	_, err := stats.AverageStars(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = stats.StarsPerActivity(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = stats.ProductsPerStars(context.Background())
	assert.ErrorIs(t, err, boom)
}
