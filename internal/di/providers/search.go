package providers

import (
	"github.com/samber/do/v2"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/config"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/logger"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/search"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.ProductIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory Bleve product index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewProductIndex(search.Options{
		Logger: log.WithComponent("search").Logger,
	})
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{ProductIndex: index}, nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSearchService(indexHandle.ProductIndex, storeHandle.Store, service.SearchOptions{
		Enabled:   cfg.Search.Enabled,
		Fuzziness: cfg.Search.Fuzziness,
		Limit:     cfg.Search.Limit,
	}, log.Logger)

	// Wire to store for automatic indexing
	if cfg.Search.Enabled {
		storeHandle.SetSearchIndexer(svc)
	}

	return svc, nil
}
