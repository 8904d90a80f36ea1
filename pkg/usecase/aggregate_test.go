package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/ome/status-dashboard/pkg/domain/model"
	"github.com/ome/status-dashboard/pkg/usecase"
)

func TestAggregator_Process_AllPresent(t *testing.T) {
	factory := &MockClientFactory{Client: healthyClient()}
	recorder := &MockRecorder{}
	uc := usecase.NewAggregator(factory, recorder)

	pkg := &model.Package{Repo: "ome/omero-py"}
	gt.NoError(t, uc.Process(context.Background(), pkg))

	gt.Value(t, pkg.Repo).Equal("ome/omero-py")
	gt.Value(t, pkg.User).Equal("ome")
	gt.Value(t, pkg.Name).Equal("omero-py")
	gt.Value(t, pkg.Error).Equal(false)
	gt.Value(t, pkg.RepoInfo).NotNil()
	gt.Value(t, pkg.LastCommit).NotNil()
	gt.Value(t, pkg.LastRelease).NotNil()
	gt.Value(t, pkg.DisabledWorkflows).Equal([]string{"nightly"})

	gt.Value(t, factory.Created()).Equal(1)
	gt.Value(t, factory.Client.Closed()).Equal(1)
	gt.Value(t, recorder.repositories).Equal(1)
	gt.Value(t, recorder.Count(model.FactRepoInfo, model.OutcomePresent)).Equal(1)
	gt.Value(t, recorder.Count(model.FactDisabledWorkflows, model.OutcomePresent)).Equal(1)
}

func TestAggregator_Process_RepoNotFound(t *testing.T) {
	client := healthyClient()
	client.FetchRepoInfoFunc = func(ctx context.Context, owner, name string) (*model.RepoInfo, error) {
		return nil, nil
	}
	recorder := &MockRecorder{}
	uc := usecase.NewAggregator(&MockClientFactory{Client: client}, recorder)

	pkg := &model.Package{Repo: "ghost/repo"}
	gt.NoError(t, uc.Process(context.Background(), pkg))

	gt.Value(t, pkg.Error).Equal(true)
	gt.Value(t, pkg.RepoInfo).Nil()
	// Other facts are fetched independently
	gt.Value(t, pkg.LastCommit).NotNil()
	gt.Value(t, pkg.LastRelease).NotNil()
	gt.Value(t, recorder.Count(model.FactRepoInfo, model.OutcomeAbsent)).Equal(1)
}

func TestAggregator_Process_RepoInfoFailure(t *testing.T) {
	client := healthyClient()
	client.FetchRepoInfoFunc = func(ctx context.Context, owner, name string) (*model.RepoInfo, error) {
		return nil, errors.New("502 bad gateway")
	}
	recorder := &MockRecorder{}
	uc := usecase.NewAggregator(&MockClientFactory{Client: client}, recorder)

	pkg := &model.Package{Repo: "ome/flaky"}
	gt.NoError(t, uc.Process(context.Background(), pkg))

	gt.Value(t, pkg.Error).Equal(true)
	gt.Value(t, pkg.RepoInfo).Nil()
	gt.Value(t, recorder.Count(model.FactRepoInfo, model.OutcomeFailed)).Equal(1)
}

func TestAggregator_Process_OptionalFailuresAreAbsorbed(t *testing.T) {
	client := healthyClient()
	client.FetchLastCommitFunc = func(ctx context.Context, owner, name string) (*model.LastCommit, error) {
		return nil, errors.New("graphql timeout")
	}
	client.FetchLastReleaseFunc = func(ctx context.Context, owner, name string) (*model.LastRelease, error) {
		return nil, errors.New("malformed JSON")
	}
	client.FetchDisabledWorkflowsFunc = func(ctx context.Context, owner, name string) ([]string, error) {
		return nil, errors.New("500 internal error")
	}
	uc := usecase.NewAggregator(&MockClientFactory{Client: client}, nil)

	pkg := &model.Package{Repo: "ome/omero-py"}
	gt.NoError(t, uc.Process(context.Background(), pkg))

	gt.Value(t, pkg.Error).Equal(false)
	gt.Value(t, pkg.RepoInfo).NotNil()
	gt.Value(t, pkg.LastCommit).Nil()
	gt.Value(t, pkg.LastRelease).Nil()
	gt.Value(t, pkg.DisabledWorkflows).Nil()
}

func TestAggregator_Process_Workflows(t *testing.T) {
	t.Run("no match omits the field", func(t *testing.T) {
		client := healthyClient()
		client.FetchDisabledWorkflowsFunc = func(ctx context.Context, owner, name string) ([]string, error) {
			return []string{}, nil
		}
		uc := usecase.NewAggregator(&MockClientFactory{Client: client}, nil)

		pkg := &model.Package{Repo: "ome/omero-py"}
		gt.NoError(t, uc.Process(context.Background(), pkg))
		gt.Value(t, pkg.DisabledWorkflows).Nil()
	})

	t.Run("pages before a failure are kept", func(t *testing.T) {
		client := healthyClient()
		client.FetchDisabledWorkflowsFunc = func(ctx context.Context, owner, name string) ([]string, error) {
			return []string{"weekly"}, errors.New("page 2 failed")
		}
		uc := usecase.NewAggregator(&MockClientFactory{Client: client}, nil)

		pkg := &model.Package{Repo: "ome/omero-py"}
		gt.NoError(t, uc.Process(context.Background(), pkg))
		gt.Value(t, pkg.DisabledWorkflows).Equal([]string{"weekly"})
	})
}

func TestAggregator_Process_ClosesClientAfterFailures(t *testing.T) {
	client := healthyClient()
	client.FetchRepoInfoFunc = func(ctx context.Context, owner, name string) (*model.RepoInfo, error) {
		return nil, errors.New("502 bad gateway")
	}
	client.FetchDisabledWorkflowsFunc = func(ctx context.Context, owner, name string) ([]string, error) {
		return nil, errors.New("500 internal error")
	}
	uc := usecase.NewAggregator(&MockClientFactory{Client: client}, nil)

	for _, repo := range []string{"ome/a", "ome/b", "ome/c"} {
		gt.NoError(t, uc.Process(context.Background(), &model.Package{Repo: repo}))
	}
	gt.Value(t, client.Closed()).Equal(3)
}

func TestAggregator_Process_MalformedRepo(t *testing.T) {
	for _, repo := range []string{"", "omero-py", "ome/omero/py", "/omero-py", "ome/"} {
		t.Run(repo, func(t *testing.T) {
			factory := &MockClientFactory{Client: healthyClient()}
			uc := usecase.NewAggregator(factory, nil)

			pkg := &model.Package{Repo: repo}
			err := uc.Process(context.Background(), pkg)

			gt.Error(t, err)
			gt.True(t, errors.Is(err, model.ErrMalformedRepo))
			gt.Value(t, factory.Created()).Equal(0)
			gt.Value(t, factory.Client.Closed()).Equal(0)
			gt.Value(t, pkg.RepoInfo).Nil()
		})
	}
}

func TestAggregator_Process_KeepsInputFields(t *testing.T) {
	uc := usecase.NewAggregator(&MockClientFactory{Client: healthyClient()}, nil)

	pkg := &model.Package{
		Repo:  "ome/omero-py",
		Extra: map[string]any{"docs": "https://omero.readthedocs.io", "pypi": "omero-py"},
	}
	gt.NoError(t, uc.Process(context.Background(), pkg))

	gt.Value(t, pkg.Repo).Equal("ome/omero-py")
	gt.Value(t, pkg.Extra).Equal(map[string]any{"docs": "https://omero.readthedocs.io", "pypi": "omero-py"})
}
