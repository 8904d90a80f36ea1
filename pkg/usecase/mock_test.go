package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ome/status-dashboard/pkg/domain/interfaces"
	"github.com/ome/status-dashboard/pkg/domain/model"
)

// MockMetadataClient is a mock implementation of MetadataClient. Unset
// functions report the data as absent.
type MockMetadataClient struct {
	FetchRepoInfoFunc          func(ctx context.Context, owner, name string) (*model.RepoInfo, error)
	FetchLastCommitFunc        func(ctx context.Context, owner, name string) (*model.LastCommit, error)
	FetchLastReleaseFunc       func(ctx context.Context, owner, name string) (*model.LastRelease, error)
	FetchDisabledWorkflowsFunc func(ctx context.Context, owner, name string) ([]string, error)

	closed atomic.Int32
}

func (m *MockMetadataClient) FetchRepoInfo(ctx context.Context, owner, name string) (*model.RepoInfo, error) {
	if m.FetchRepoInfoFunc == nil {
		return nil, nil
	}
	return m.FetchRepoInfoFunc(ctx, owner, name)
}

func (m *MockMetadataClient) FetchLastCommit(ctx context.Context, owner, name string) (*model.LastCommit, error) {
	if m.FetchLastCommitFunc == nil {
		return nil, nil
	}
	return m.FetchLastCommitFunc(ctx, owner, name)
}

func (m *MockMetadataClient) FetchLastRelease(ctx context.Context, owner, name string) (*model.LastRelease, error) {
	if m.FetchLastReleaseFunc == nil {
		return nil, nil
	}
	return m.FetchLastReleaseFunc(ctx, owner, name)
}

func (m *MockMetadataClient) FetchDisabledWorkflows(ctx context.Context, owner, name string) ([]string, error) {
	if m.FetchDisabledWorkflowsFunc == nil {
		return nil, nil
	}
	return m.FetchDisabledWorkflowsFunc(ctx, owner, name)
}

func (m *MockMetadataClient) Close() {
	m.closed.Add(1)
}

func (m *MockMetadataClient) Closed() int {
	return int(m.closed.Load())
}

// MockClientFactory hands out the same mock client and counts requests
type MockClientFactory struct {
	Client  *MockMetadataClient
	created atomic.Int32
}

func (f *MockClientFactory) New() interfaces.MetadataClient {
	f.created.Add(1)
	return f.Client
}

func (f *MockClientFactory) Created() int {
	return int(f.created.Load())
}

// MockRecorder counts fetch outcomes
type MockRecorder struct {
	mu           sync.Mutex
	fetches      map[model.Fact]map[model.Outcome]int
	repositories int
}

func (r *MockRecorder) RecordFetch(fact model.Fact, outcome model.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetches == nil {
		r.fetches = make(map[model.Fact]map[model.Outcome]int)
	}
	if r.fetches[fact] == nil {
		r.fetches[fact] = make(map[model.Outcome]int)
	}
	r.fetches[fact][outcome]++
}

func (r *MockRecorder) RecordRepository() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.repositories++
}

func (r *MockRecorder) Count(fact model.Fact, outcome model.Outcome) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches[fact][outcome]
}

// MockSnapshotWriter records written snapshots
type MockSnapshotWriter struct {
	mu        sync.Mutex
	snapshots []*model.Snapshot
	err       error
}

func (w *MockSnapshotWriter) Write(ctx context.Context, s *model.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.snapshots = append(w.snapshots, s)
	return nil
}

func (w *MockSnapshotWriter) Calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.snapshots)
}

func strPtr(s string) *string { return &s }

// healthyClient reports every fact as present
func healthyClient() *MockMetadataClient {
	return &MockMetadataClient{
		FetchRepoInfoFunc: func(ctx context.Context, owner, name string) (*model.RepoInfo, error) {
			return &model.RepoInfo{
				CreatedAt:       "2019-01-02T03:04:05Z",
				UpdatedAt:       "2024-05-06T07:08:09Z",
				StargazersCount: len(name),
				Topics:          []string{owner},
			}, nil
		},
		FetchLastCommitFunc: func(ctx context.Context, owner, name string) (*model.LastCommit, error) {
			return &model.LastCommit{
				URL:    "https://github.com/" + owner + "/" + name + "/commit/abc",
				Date:   strPtr("2024-03-05"),
				Author: strPtr("octocat"),
				Status: strPtr("SUCCESS"),
				SHA:    "abc",
			}, nil
		},
		FetchLastReleaseFunc: func(ctx context.Context, owner, name string) (*model.LastRelease, error) {
			return &model.LastRelease{
				URL:     "https://github.com/" + owner + "/" + name + "/releases/tag/v1.0.0",
				TagName: "v1.0.0",
				Date:    strPtr("2024-01-03"),
			}, nil
		},
		FetchDisabledWorkflowsFunc: func(ctx context.Context, owner, name string) ([]string, error) {
			return []string{"nightly"}, nil
		},
	}
}
