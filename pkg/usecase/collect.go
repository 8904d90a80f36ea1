package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/ome/status-dashboard/pkg/domain/interfaces"
	"github.com/ome/status-dashboard/pkg/domain/model"
	"github.com/ome/status-dashboard/pkg/utils/async"
)

// DefaultWorkers balances throughput against the shared API rate limit
const DefaultWorkers = 4

// Collector fans the configured packages out over a bounded worker pool
type Collector struct {
	aggregator interfaces.Aggregator
	workers    int
	progress   async.ProgressFunc
	now        func() time.Time
}

// CollectorOption is a functional option for Collector
type CollectorOption func(*Collector)

// WithWorkers sets the worker pool size
func WithWorkers(n int) CollectorOption {
	return func(c *Collector) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithProgress sets a callback invoked as repositories complete
func WithProgress(fn async.ProgressFunc) CollectorOption {
	return func(c *Collector) {
		c.progress = fn
	}
}

// WithClock overrides the snapshot timestamp source
func WithClock(now func() time.Time) CollectorOption {
	return func(c *Collector) {
		c.now = now
	}
}

// NewCollector creates a Collector
func NewCollector(aggregator interfaces.Aggregator, opts ...CollectorOption) *Collector {
	c := &Collector{
		aggregator: aggregator,
		workers:    DefaultWorkers,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect enriches every package of cfg and returns the stamped snapshot.
// No snapshot is returned if any repository task faults.
func (c *Collector) Collect(ctx context.Context, cfg *model.Config) (*model.Snapshot, error) {
	logger := ctxlog.From(ctx)
	pkgs := cfg.Packages()

	logger.Info("Collecting repository status",
		"sections", len(cfg.Sections),
		"repositories", len(pkgs),
		"workers", c.workers,
	)

	var opts []async.Option
	if c.progress != nil {
		opts = append(opts, async.WithProgress(c.progress))
	}

	err := async.Run(ctx, c.workers, len(pkgs), func(ctx context.Context, i int) error {
		if err := c.aggregator.Process(ctx, pkgs[i]); err != nil {
			return goerr.Wrap(err, "failed to process repository", goerr.V("repo", pkgs[i].Repo))
		}
		return nil
	}, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to collect repository status")
	}

	return model.NewSnapshot(cfg, c.now()), nil
}

// Publish collects a snapshot and persists it with writer only on success
func (c *Collector) Publish(ctx context.Context, cfg *model.Config, writer interfaces.SnapshotWriter) (*model.Snapshot, error) {
	snapshot, err := c.Collect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := writer.Write(ctx, snapshot); err != nil {
		return nil, goerr.Wrap(err, "failed to write snapshot")
	}

	ctxlog.From(ctx).Info("Snapshot written", "generated_at", snapshot.GeneratedAt)
	return snapshot, nil
}
