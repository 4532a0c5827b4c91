package service

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
)

func TestCatalogService_Scenario(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	seedScenario(t, svc)
	ctx := context.Background()

	activities, err := svc.catalog.ListActivities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Running", "Swimming", "Trekking"}, activities)

	count, err := svc.catalog.CountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	shorts, err := svc.catalog.ProductsForCategory(ctx, "Shorts")
	require.NoError(t, err)
	assert.Equal(t, []string{"RunShort1", "TrekShort1"}, shorts)

	trekking, err := svc.catalog.CategoriesForActivity(ctx, "Trekking")
	require.NoError(t, err)
	assert.Equal(t, []string{"Shorts"}, trekking)

	filtered, err := svc.catalog.ProductsFiltered(ctx, "Running", "Shorts")
	require.NoError(t, err)
	assert.Equal(t, []string{"RunShort1"}, filtered)

	ratings, err := svc.catalog.RatingsForProduct(ctx, "TrekShort1")
	require.NoError(t, err)
	assert.Equal(t, []string{"4 : Great for hiking!"}, ratings)
}

func TestCatalogService_Validation(t *testing.T) {
	tests := []struct {
		name     string
		call     func(context.Context, *CatalogService) error
		wantCode errors.Code
	}{
		{
			name: "no activities",
			call: func(ctx context.Context, s *CatalogService) error {
				return s.DefineActivities(ctx, DefineActivitiesRequest{})
			},
			wantCode: errors.CodeEmptyInput,
		},
		{
			name: "blank activity",
			call: func(ctx context.Context, s *CatalogService) error {
				return s.DefineActivities(ctx, DefineActivitiesRequest{Names: []string{"Running", "  "}})
			},
			wantCode: errors.CodeEmptyInput,
		},
		{
			name: "blank category",
			call: func(ctx context.Context, s *CatalogService) error {
				return s.AddCategory(ctx, AddCategoryRequest{Name: "", Activities: []string{"Running"}})
			},
			wantCode: errors.CodeEmptyInput,
		},
		{
			name: "category without activities",
			call: func(ctx context.Context, s *CatalogService) error {
				return s.AddCategory(ctx, AddCategoryRequest{Name: "Caps"})
			},
			wantCode: errors.CodeEmptyInput,
		},
		{
			name: "blank product",
			call: func(ctx context.Context, s *CatalogService) error {
				return s.AddProduct(ctx, AddProductRequest{Name: "\t", Activity: "Running", Category: "Shorts"})
			},
			wantCode: errors.CodeEmptyInput,
		},
		{
			name: "stars above range",
			call: func(ctx context.Context, s *CatalogService) error {
				_, err := s.AddRating(ctx, AddRatingRequest{Product: "RunShort1", User: "u", Stars: 6})
				return err
			},
			wantCode: errors.CodeInvalidStars,
		},
		{
			name: "stars below range with blank user",
			call: func(ctx context.Context, s *CatalogService) error {
				_, err := s.AddRating(ctx, AddRatingRequest{Product: "RunShort1", User: "", Stars: -1})
				return err
			},
			wantCode: errors.CodeInvalidStars,
		},
		{
			name: "blank user",
			call: func(ctx context.Context, s *CatalogService) error {
				_, err := s.AddRating(ctx, AddRatingRequest{Product: "RunShort1", User: " ", Stars: 2})
				return err
			},
			wantCode: errors.CodeEmptyInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, cleanup := setupTestServices(t)
			defer cleanup()

			seedScenario(t, svc)

			err := tt.call(context.Background(), svc.catalog)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}

func TestCatalogService_BlankNameDetails(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	err := svc.catalog.AddProduct(context.Background(), AddProductRequest{Name: "X", Activity: "", Category: "Shorts"})

	var domainErr *errors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "activity must not be blank", domainErr.Message)
	assert.Equal(t, map[string]string{"activity": "must not be blank"}, domainErr.Details)
}

func TestCatalogService_RuleViolations(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	seedScenario(t, svc)
	ctx := context.Background()

	err := svc.catalog.AddCategory(ctx, AddCategoryRequest{Name: "Shorts", Activities: []string{"Running"}})
	assert.ErrorIs(t, err, errors.ErrDuplicateCategory)

	err = svc.catalog.AddCategory(ctx, AddCategoryRequest{Name: "Caps", Activities: []string{"Running", "Curling"}})
	assert.ErrorIs(t, err, errors.ErrUnknownActivity)
	assert.Contains(t, err.Error(), "Unknown activity: Curling")

	count, err := svc.catalog.CountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	err = svc.catalog.AddProduct(ctx, AddProductRequest{Name: "SwimShort", Activity: "Swimming", Category: "Shorts"})
	assert.ErrorIs(t, err, errors.ErrCategoryNotLinked)

	_, err = svc.catalog.AddRating(ctx, AddRatingRequest{Product: "TrekShort1", User: "User1", Stars: 1})
	assert.ErrorIs(t, err, errors.ErrDuplicateRating)

	_, err = svc.catalog.AddRating(ctx, AddRatingRequest{Product: "Ghost", User: "User1", Stars: 1})
	assert.ErrorIs(t, err, errors.ErrUnknownProduct)

	avg, err := svc.stats.StarsOfProduct(ctx, "TrekShort1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)
}

func TestCatalogService_Metrics(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	seedScenario(t, svc)
	ctx := context.Background()

	_, err := svc.catalog.AddRating(ctx, AddRatingRequest{Product: "TrekShort1", User: "User1", Stars: 2})
	require.ErrorIs(t, err, errors.ErrDuplicateRating)

	reg := svc.metrics.Registry()

	expected := `
# HELP catalog_rejections_total Number of rejected catalog writes, labeled by error code.
# TYPE catalog_rejections_total counter
catalog_rejections_total{code="DUPLICATE_RATING"} 1
# HELP catalog_entities Number of entities currently held in the catalog, labeled by kind.
# TYPE catalog_entities gauge
catalog_entities{kind="activity"} 3
catalog_entities{kind="category"} 2
catalog_entities{kind="product"} 3
catalog_entities{kind="rating"} 3
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"catalog_rejections_total", "catalog_entities")
	assert.NoError(t, err)

	// One series per (operation, outcome) pair seen so far.
	n, err := testutil.GatherAndCount(reg, "catalog_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestCatalogService_DefineActivitiesIdempotent(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, svc.catalog.DefineActivities(ctx, DefineActivitiesRequest{Names: []string{"Running"}}))
	require.NoError(t, svc.catalog.DefineActivities(ctx, DefineActivitiesRequest{Names: []string{"Running", "Cycling"}}))

	activities, err := svc.catalog.ListActivities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cycling", "Running"}, activities)
}
