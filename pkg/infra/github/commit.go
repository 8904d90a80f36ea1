package github

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ome/status-dashboard/pkg/domain/model"
	"github.com/shurcooL/githubv4"
)

// lastCommitQuery resolves the default branch head, its author and the
// merged status check rollup in a single round trip.
type lastCommitQuery struct {
	Repository *struct {
		DefaultBranchRef *struct {
			Target *struct {
				Commit commitNode `graphql:"... on Commit"`
			}
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

type commitNode struct {
	Oid           string
	CommitURL     string `graphql:"commitUrl"`
	CommittedDate string
	Author        *struct {
		User *struct {
			Login string
		}
		Name *string
	}
	StatusCheckRollup *struct {
		State string
	}
}

// FetchLastCommit returns nil without error when the repository, its default
// branch or the branch target commit cannot be resolved (e.g. empty repository).
func (c *client) FetchLastCommit(ctx context.Context, owner, name string) (*model.LastCommit, error) {
	var q lastCommitQuery
	vars := map[string]any{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	}

	if err := c.gql.Query(ctx, &q, vars); err != nil {
		if q.Repository == nil && strings.Contains(err.Error(), "Could not resolve to a Repository") {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to query last commit",
			goerr.V("owner", owner),
			goerr.V("name", name),
		)
	}

	if q.Repository == nil || q.Repository.DefaultBranchRef == nil || q.Repository.DefaultBranchRef.Target == nil {
		return nil, nil
	}
	commit := q.Repository.DefaultBranchRef.Target.Commit
	if commit.Oid == "" {
		return nil, nil
	}

	result := &model.LastCommit{
		URL:    commit.CommitURL,
		Date:   commitDate(commit.CommittedDate),
		Author: commit.author(),
		SHA:    commit.Oid,
	}
	if commit.StatusCheckRollup != nil && commit.StatusCheckRollup.State != "" {
		state := commit.StatusCheckRollup.State
		result.Status = &state
	}

	return result, nil
}

// author prefers the linked account login and falls back to the free-text
// commit author name for unlinked or deleted accounts.
func (n *commitNode) author() *string {
	if n.Author == nil {
		return nil
	}
	if n.Author.User != nil && n.Author.User.Login != "" {
		login := n.Author.User.Login
		return &login
	}
	if n.Author.Name != nil && *n.Author.Name != "" {
		name := *n.Author.Name
		return &name
	}
	return nil
}

// commitDate keeps the calendar date in the timestamp's own offset
func commitDate(committed string) *string {
	if committed == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, committed)
	if err != nil {
		return nil
	}
	date := t.Format(dateLayout)
	return &date
}
