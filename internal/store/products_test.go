package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
)

func TestAddProduct(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	seedSports(t, s)
	ctx := context.Background()

	byCategory, err := s.ProductsForCategory(ctx, "Shorts")
	require.NoError(t, err)
	assert.Equal(t, []string{"RunShort1", "TrekShort1"}, byCategory)

	byActivity, err := s.ProductsForActivity(ctx, "Trekking")
	require.NoError(t, err)
	assert.Equal(t, []string{"TrekShort1"}, byActivity)

	p, err := s.GetProduct(ctx, "SwimGear1")
	require.NoError(t, err)
	assert.Equal(t, "Swimming", p.Activity)
	assert.Equal(t, "Swimsuit", p.Category)
	assert.Equal(t, "swimgear1", p.Slug)
}

func TestAddProduct_Errors(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		activity string
		category string
		wantErr  error
	}{
		{"duplicate", "TrekShort1", "Running", "Shorts", errors.ErrDuplicateProduct},
		{"unknown activity", "Board1", "Surfing", "Shorts", errors.ErrUnknownActivity},
		{"unknown category", "Cap1", "Running", "Hats", errors.ErrUnknownCategory},
		{"category not linked", "SwimShort1", "Swimming", "Shorts", errors.ErrCategoryNotLinked},
		{"swapped pair", "TrekSuit1", "Trekking", "Swimsuit", errors.ErrCategoryNotLinked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cleanup := setupTestStore(t)
			defer cleanup()

			seedSports(t, s)
			ctx := context.Background()

			err := s.AddProduct(ctx, tt.product, tt.activity, tt.category)
			assert.ErrorIs(t, err, tt.wantErr)

			// Indices are untouched by the rejected write.
			all, err := s.ListProducts(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 3)

			byActivity, err := s.ProductsForActivity(ctx, tt.activity)
			require.NoError(t, err)
			assert.NotContains(t, byActivity, tt.product)

			byCategory, err := s.ProductsForCategory(ctx, tt.category)
			require.NoError(t, err)
			if tt.product != "TrekShort1" {
				assert.NotContains(t, byCategory, tt.product)
			}
		})
	}
}

func TestAddProduct_DuplicateKeepsOriginalBinding(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	seedSports(t, s)
	ctx := context.Background()

	err := s.AddProduct(ctx, "TrekShort1", "Running", "Shorts")
	require.ErrorIs(t, err, errors.ErrDuplicateProduct)

	p, err := s.GetProduct(ctx, "TrekShort1")
	require.NoError(t, err)
	assert.Equal(t, "Trekking", p.Activity)

	running, err := s.ProductsForActivity(ctx, "Running")
	require.NoError(t, err)
	assert.Equal(t, []string{"RunShort1"}, running)
}

func TestGetProduct_Unknown(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetProduct(context.Background(), "Ghost")
	assert.ErrorIs(t, err, errors.ErrUnknownProduct)
}

func TestListProducts_Ordered(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	seedSports(t, s)

	products, err := s.ListProducts(context.Background())
	require.NoError(t, err)

	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"RunShort1", "SwimGear1", "TrekShort1"}, names)
}

func TestProductsFor_Unknown(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	byCategory, err := s.ProductsForCategory(ctx, "Hats")
	require.NoError(t, err)
	assert.Empty(t, byCategory)

	byActivity, err := s.ProductsForActivity(ctx, "Curling")
	require.NoError(t, err)
	assert.Empty(t, byActivity)
}

func TestProductsFiltered(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.DefineActivities(ctx, "Trekking"))
	require.NoError(t, s.AddCategory(ctx, "Shorts", "Trekking"))
	require.NoError(t, s.AddCategory(ctx, "Jackets", "Trekking"))
	require.NoError(t, s.AddCategory(ctx, "Boots", "Trekking"))
	require.NoError(t, s.AddProduct(ctx, "TrekShort2", "Trekking", "Shorts"))
	require.NoError(t, s.AddProduct(ctx, "Anorak", "Trekking", "Jackets"))
	require.NoError(t, s.AddProduct(ctx, "TrekShort1", "Trekking", "Shorts"))
	require.NoError(t, s.AddProduct(ctx, "Hiker9", "Trekking", "Boots"))

	tests := []struct {
		name       string
		activity   string
		categories []string
		want       []string
	}{
		{"single category", "Trekking", []string{"Shorts"}, []string{"TrekShort1", "TrekShort2"}},
		{"two categories", "Trekking", []string{"Shorts", "Jackets"}, []string{"Anorak", "TrekShort1", "TrekShort2"}},
		{"unknown category ignored", "Trekking", []string{"Boots", "Hats"}, []string{"Hiker9"}},
		{"no categories", "Trekking", nil, []string{}},
		{"unknown activity", "Curling", []string{"Shorts"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ProductsFiltered(ctx, tt.activity, tt.categories...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
