package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/ome/status-dashboard/pkg/cli/config"
	"github.com/ome/status-dashboard/pkg/infra/dashboard"
	githubinfra "github.com/ome/status-dashboard/pkg/infra/github"
	"github.com/ome/status-dashboard/pkg/infra/metrics"
	"github.com/ome/status-dashboard/pkg/infra/snapshot"
	"github.com/ome/status-dashboard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdCollect() *cli.Command {
	var (
		collectCfg config.Collect
		githubCfg  config.GitHub
	)

	flags := append(collectCfg.Flags(), githubCfg.Flags()...)

	return &cli.Command{
		Name:    "collect",
		Aliases: []string{"c"},
		Usage:   "Fetch repository status from GitHub and write a snapshot",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := ctxlog.From(ctx).With(slog.String("run_id", uuid.NewString()))
			ctx = ctxlog.With(ctx, logger)

			cfg, err := dashboard.Load(collectCfg.Config)
			if err != nil {
				return err
			}

			settings := githubCfg.Settings()
			logger.Debug("GitHub client settings", slog.Any("settings", settings))

			factory, err := githubinfra.NewFactory(settings)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client factory")
			}

			recorder := metrics.New()
			opts := []usecase.CollectorOption{
				usecase.WithWorkers(collectCfg.Workers),
			}
			if collectCfg.Progress {
				opts = append(opts, usecase.WithProgress(newProgress(os.Stderr).Update))
			}
			collector := usecase.NewCollector(usecase.NewAggregator(factory, recorder), opts...)

			writer, err := snapshot.Open(ctx, collectCfg.Output)
			if err != nil {
				return err
			}
			defer func() {
				if err := writer.Close(); err != nil {
					logger.Warn("Failed to close snapshot writer", slog.Any("error", err))
				}
			}()

			snap, err := collector.Publish(ctx, cfg, writer)
			if err != nil {
				return err
			}

			if collectCfg.MetricsFile != "" {
				recorder.MarkSuccess(time.Now())
				if err := recorder.WriteTextfile(collectCfg.MetricsFile); err != nil {
					return err
				}
			}

			logger.Info("Collection complete",
				slog.String("config", collectCfg.Config),
				slog.String("output", collectCfg.Output),
				slog.String("generated_at", snap.GeneratedAt),
			)
			return nil
		},
	}
}
