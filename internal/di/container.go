// Package di provides dependency injection configuration for the catalog.
package di

import (
	"io"

	"github.com/samber/do/v2"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/config"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/di/providers"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/logger"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/observability"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/service"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/validation"
)

// Options seeds the container with values known before configuration loads.
type Options struct {
	Overrides config.Overrides
	LogOutput io.Writer // Defaults to stderr
}

// NewContainer creates and configures the DI container with all providers.
func NewContainer(opts Options) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, providers.Seed{
		Overrides: opts.Overrides,
		LogOutput: opts.LogOutput,
	})

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideEventLog)
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideStatsService)

	return injector
}

// Bootstrap initializes all services.
// This triggers lazy initialization and surfaces configuration errors early.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*observability.Metrics](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.EventLog](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)

	return nil
}
