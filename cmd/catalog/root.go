package main

import (
	"fmt"
	"io"
	"os"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/config"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/di"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/logger"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/observability"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/service"
)

// execute runs the command line and returns the process exit status.
// Domain rule violations map to their code's exit status.
func execute(args []string) int {
	root := newRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return errors.CodeOf(err).ExitCode()
	}
	return 0
}

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	env             string
	logLevel        string
	logFormat       string
	metricsTextfile string
}

func (f *rootFlags) overrides() config.Overrides {
	return config.Overrides{
		Environment:     f.env,
		LogLevel:        f.logLevel,
		LogFormat:       f.logFormat,
		MetricsTextfile: f.metricsTextfile,
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "In-memory sporting-goods catalog",
		Long:          "Catalog tracks activities, categories, products and ratings in memory and answers rating aggregates.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&flags.env, "env", "", "environment: development, staging or production (env CATALOG_ENV)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error (env CATALOG_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format: json or pretty (env CATALOG_LOG_FORMAT)")
	root.PersistentFlags().StringVar(&flags.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file on exit (env CATALOG_METRICS_TEXTFILE)")

	root.AddCommand(newDemoCmd(flags))
	root.AddCommand(newSearchCmd(flags))

	return root
}

// app is a bootstrapped catalog for one command invocation.
type app struct {
	injector *do.RootScope
	cfg      *config.Config
	log      *logger.Logger
	catalog  *service.CatalogService
	stats    *service.StatsService
	search   *service.SearchService
	metrics  *observability.Metrics
}

func newApp(cmd *cobra.Command, flags *rootFlags) (*app, error) {
	injector := di.NewContainer(di.Options{
		Overrides: flags.overrides(),
		LogOutput: cmd.ErrOrStderr(),
	})

	if err := di.Bootstrap(injector); err != nil {
		injector.Shutdown()
		return nil, fmt.Errorf("bootstrap catalog: %w", err)
	}

	return &app{
		injector: injector,
		cfg:      do.MustInvoke[*config.Config](injector),
		log:      do.MustInvoke[*logger.Logger](injector),
		catalog:  do.MustInvoke[*service.CatalogService](injector),
		stats:    do.MustInvoke[*service.StatsService](injector),
		search:   do.MustInvoke[*service.SearchService](injector),
		metrics:  do.MustInvoke[*observability.Metrics](injector),
	}, nil
}

// close exports metrics when configured and shuts the container down.
func (a *app) close() {
	if path := a.cfg.Metrics.TextfilePath; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.log.WithError(err).Error("Failed to write metrics", "path", path)
		} else {
			a.log.Debug("Metrics written", "path", path)
		}
	}

	if err := a.injector.Shutdown(); err != nil {
		a.log.Error("Shutdown error", "error", err)
	}
}
