package interfaces

import (
	"context"

	"github.com/ome/status-dashboard/pkg/domain/model"
)

// MetadataClient fetches the independent pieces of repository metadata.
// A nil result with a nil error means the data does not exist.
type MetadataClient interface {
	// FetchRepoInfo returns core repository metadata, nil if the repository is not found
	FetchRepoInfo(ctx context.Context, owner, name string) (*model.RepoInfo, error)

	// FetchLastCommit returns the default branch head commit with its CI rollup
	FetchLastCommit(ctx context.Context, owner, name string) (*model.LastCommit, error)

	// FetchLastRelease returns the most recently created release
	FetchLastRelease(ctx context.Context, owner, name string) (*model.LastRelease, error)

	// FetchDisabledWorkflows returns labels of workflows disabled for inactivity
	FetchDisabledWorkflows(ctx context.Context, owner, name string) ([]string, error)

	// Close releases the client's idle connections
	Close()
}

// ClientFactory builds an independent MetadataClient for each repository
type ClientFactory interface {
	New() MetadataClient
}
