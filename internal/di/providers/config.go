// Package providers contains dependency injection providers for the catalog.
package providers

import (
	"io"

	"github.com/samber/do/v2"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/config"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/logger"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/observability"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/validation"
)

// Seed carries values supplied by the caller before the container starts.
type Seed struct {
	Overrides config.Overrides
	LogOutput io.Writer
}

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	seed := do.MustInvoke[Seed](i)
	return config.Load(seed.Overrides)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	seed := do.MustInvoke[Seed](i)

	log := logger.New(logger.Config{
		Writer:      seed.LogOutput,
		Format:      cfg.Logger.Format,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
		NoColor:     cfg.App.Environment != "development",
	})

	log.Debug("Starting catalog",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"search_enabled", cfg.Search.Enabled,
		"metrics_textfile", cfg.Metrics.TextfilePath,
	)

	return log, nil
}

// ProvideMetrics provides the Prometheus collectors.
func ProvideMetrics(i do.Injector) (*observability.Metrics, error) {
	return observability.NewMetrics(), nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
