package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/search"
)

func TestSearchService_IndexesCommittedProducts(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	seedScenario(t, svc)
	ctx := context.Background()

	count, err := svc.search.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	result, err := svc.search.Search(ctx, "", "", "Shorts")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"RunShort1", "TrekShort1"}, result.Names())

	result, err = svc.search.Search(ctx, "swimgear1", "Swimming")
	require.NoError(t, err)
	assert.Equal(t, []string{"SwimGear1"}, result.Names())
}

func TestSearchService_RejectedProductNotIndexed(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	seedScenario(t, svc)
	ctx := context.Background()

	err := svc.catalog.AddProduct(ctx, AddProductRequest{Name: "SwimShort", Activity: "Swimming", Category: "Shorts"})
	require.Error(t, err)

	count, err := svc.search.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearchService_ReindexAll(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	seedScenario(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.search.ReindexAll(ctx))

	count, err := svc.search.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearchService_Disabled(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()

	index, err := search.NewProductIndex(search.Options{})
	require.NoError(t, err)
	defer index.Close()

	disabled := NewSearchService(index, svc.store, SearchOptions{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.store.SetSearchIndexer(disabled)

	seedScenario(t, svc)
	ctx := context.Background()

	_, err = disabled.Search(ctx, "shorts", "")
	assert.ErrorIs(t, err, ErrSearchDisabled)
	assert.ErrorIs(t, disabled.ReindexAll(ctx), ErrSearchDisabled)

	count, err := disabled.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
