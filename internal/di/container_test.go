package di

import (
	"bytes"
	"context"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/config"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/service"
)

func TestBootstrap_WiresCatalog(t *testing.T) {
	var logs bytes.Buffer
	injector := NewContainer(Options{
		Overrides: config.Overrides{LogLevel: "debug", LogFormat: "json"},
		LogOutput: &logs,
	})
	defer injector.Shutdown()

	require.NoError(t, Bootstrap(injector))

	catalog := do.MustInvoke[*service.CatalogService](injector)
	searchService := do.MustInvoke[*service.SearchService](injector)
	ctx := context.Background()

	require.NoError(t, catalog.DefineActivities(ctx, service.DefineActivitiesRequest{Names: []string{"Running"}}))
	require.NoError(t, catalog.AddCategory(ctx, service.AddCategoryRequest{Name: "Shorts", Activities: []string{"Running"}}))
	require.NoError(t, catalog.AddProduct(ctx, service.AddProductRequest{Name: "RunShort1", Activity: "Running", Category: "Shorts"}))

	// The store hands committed products to the search service.
	count, err := searchService.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	// The event log receives committed writes.
	assert.Contains(t, logs.String(), `"type":"product.added"`)
	assert.Contains(t, logs.String(), `"component":"events"`)
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	injector := NewContainer(Options{
		Overrides: config.Overrides{LogLevel: "loud"},
	})
	defer injector.Shutdown()

	err := Bootstrap(injector)
	assert.Error(t, err)
}
