package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/ome/status-dashboard/pkg/domain/interfaces"
	"github.com/ome/status-dashboard/pkg/domain/model"
)

type aggregator struct {
	factory  interfaces.ClientFactory
	recorder interfaces.FetchRecorder
}

// NewAggregator creates the per-repository aggregator. recorder may be nil.
func NewAggregator(factory interfaces.ClientFactory, recorder interfaces.FetchRecorder) interfaces.Aggregator {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &aggregator{
		factory:  factory,
		recorder: recorder,
	}
}

// Process enriches pkg in place. Only a malformed descriptor returns an
// error; fetch failures are absorbed as absent fields, except repository
// info whose absence sets the error flag.
func (uc *aggregator) Process(ctx context.Context, pkg *model.Package) error {
	owner, name, err := pkg.Split()
	if err != nil {
		return err
	}
	pkg.User, pkg.Name = owner, name

	logger := ctxlog.From(ctx).With(slog.String("repo", pkg.Repo))
	ctx = ctxlog.With(ctx, logger)
	client := uc.factory.New()
	defer client.Close()

	uc.recorder.RecordRepository()

	info, err := client.FetchRepoInfo(ctx, owner, name)
	if uc.observe(ctx, model.FactRepoInfo, err, info != nil) {
		pkg.RepoInfo = info
	} else {
		pkg.Error = true
	}

	commit, err := client.FetchLastCommit(ctx, owner, name)
	if uc.observe(ctx, model.FactLastCommit, err, commit != nil) {
		pkg.LastCommit = commit
	}

	release, err := client.FetchLastRelease(ctx, owner, name)
	if uc.observe(ctx, model.FactLastRelease, err, release != nil) {
		pkg.LastRelease = release
	}

	workflows, err := client.FetchDisabledWorkflows(ctx, owner, name)
	uc.observe(ctx, model.FactDisabledWorkflows, err, len(workflows) > 0)
	// Pages collected before a failed page are kept
	if len(workflows) > 0 {
		pkg.DisabledWorkflows = workflows
	}

	logger.Debug("Processed repository",
		"error", pkg.Error,
		"has_commit", pkg.LastCommit != nil,
		"has_release", pkg.LastRelease != nil,
		"disabled_workflows", len(pkg.DisabledWorkflows),
	)

	return nil
}

// observe logs and records a fetch outcome and reports whether the result
// should be merged into the descriptor.
func (uc *aggregator) observe(ctx context.Context, fact model.Fact, err error, present bool) bool {
	logger := ctxlog.From(ctx)

	switch {
	case err != nil:
		logger.Warn("Failed to fetch repository metadata",
			"fact", fact,
			"error", err,
		)
		uc.recorder.RecordFetch(fact, model.OutcomeFailed)
		return false
	case !present:
		logger.Debug("Repository metadata absent", "fact", fact)
		uc.recorder.RecordFetch(fact, model.OutcomeAbsent)
		return false
	default:
		uc.recorder.RecordFetch(fact, model.OutcomePresent)
		return true
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordFetch(model.Fact, model.Outcome) {}
func (nopRecorder) RecordRepository()                     {}
