package providers

import (
	"github.com/samber/do/v2"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/logger"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/observability"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/service"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/validation"
)

// ProvideCatalogService provides the catalog write/read service.
// It depends on the search service so products are indexed once added.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	_ = do.MustInvoke[*service.SearchService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	metrics := do.MustInvoke[*observability.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, validator, metrics, log.WithComponent("catalog").Logger), nil
}

// ProvideStatsService provides the rating aggregation service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(storeHandle.Store, log.WithComponent("stats").Logger), nil
}
