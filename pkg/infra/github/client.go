package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/ome/status-dashboard/pkg/domain/model"
	"github.com/shurcooL/githubv4"
)

const dateLayout = "2006-01-02"

type client struct {
	rest *github.Client
	gql  *githubv4.Client

	// transport is owned by this client only. The wrapping round trippers
	// do not forward CloseIdleConnections, so it is kept for Close.
	transport *http.Transport
}

// Close drops the keep-alive connections opened for this repository
func (c *client) Close() {
	c.transport.CloseIdleConnections()
}

// FetchRepoInfo fetches repository metadata. A 404 yields nil without error.
func (c *client) FetchRepoInfo(ctx context.Context, owner, name string) (*model.RepoInfo, error) {
	repo, resp, err := c.rest.Repositories.Get(ctx, owner, name)
	if err != nil {
		if statusCode(resp, err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get repository",
			goerr.V("owner", owner),
			goerr.V("name", name),
			goerr.V("status", statusCode(resp, err)),
		)
	}

	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}

	return &model.RepoInfo{
		CreatedAt:       formatTimestamp(repo.CreatedAt),
		UpdatedAt:       formatTimestamp(repo.UpdatedAt),
		OpenIssues:      repo.GetOpenIssuesCount(),
		StargazersCount: repo.GetStargazersCount(),
		Description:     repo.Description,
		Topics:          topics,
		Size:            repo.GetSize(),
	}, nil
}

// FetchLastRelease fetches the single most recent release. A 404 or an empty
// release list yields nil without error.
func (c *client) FetchLastRelease(ctx context.Context, owner, name string) (*model.LastRelease, error) {
	releases, resp, err := c.rest.Repositories.ListReleases(ctx, owner, name, &github.ListOptions{PerPage: 1})
	if err != nil {
		if statusCode(resp, err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to list releases",
			goerr.V("owner", owner),
			goerr.V("name", name),
			goerr.V("status", statusCode(resp, err)),
		)
	}
	if len(releases) == 0 {
		return nil, nil
	}

	release := releases[0]
	// Drafts have no publication time yet
	published := release.PublishedAt
	if published == nil {
		published = release.CreatedAt
	}

	return &model.LastRelease{
		URL:     release.GetHTMLURL(),
		TagName: release.GetTagName(),
		Date:    formatDate(published),
	}, nil
}

// statusCode extracts the HTTP status of a failed go-github call, 0 if none
func statusCode(resp *github.Response, err error) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	return 0
}

func formatTimestamp(ts *github.Timestamp) string {
	if ts == nil {
		return ""
	}
	return ts.Format(time.RFC3339)
}

func formatDate(ts *github.Timestamp) *string {
	if ts == nil {
		return nil
	}
	date := ts.Format(dateLayout)
	return &date
}
