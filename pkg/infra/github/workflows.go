package github

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
)

const (
	workflowPageSize      = 100
	stateDisabledInactive = "disabled_inactivity"
)

// FetchDisabledWorkflows walks every page of the workflow listing and returns
// the labels of workflows auto-disabled for inactivity. Repositories without
// access to Actions (403/404) yield an empty list.
func (c *client) FetchDisabledWorkflows(ctx context.Context, owner, name string) ([]string, error) {
	var disabled []string
	for page := 1; ; page++ {
		labels, more, err := c.workflowPage(ctx, owner, name, page)
		disabled = append(disabled, labels...)
		if err != nil || !more {
			return disabled, err
		}
	}
}

// workflowPage fetches one page and reports whether another page may follow
func (c *client) workflowPage(ctx context.Context, owner, name string, page int) ([]string, bool, error) {
	workflows, resp, err := c.rest.Actions.ListWorkflows(ctx, owner, name, &github.ListOptions{
		PerPage: workflowPageSize,
		Page:    page,
	})
	if err != nil {
		switch statusCode(resp, err) {
		case http.StatusForbidden, http.StatusNotFound:
			return nil, false, nil
		}
		return nil, false, goerr.Wrap(err, "failed to list workflows",
			goerr.V("owner", owner),
			goerr.V("name", name),
			goerr.V("page", page),
			goerr.V("status", statusCode(resp, err)),
		)
	}

	var labels []string
	for _, wf := range workflows.Workflows {
		if !strings.EqualFold(wf.GetState(), stateDisabledInactive) {
			continue
		}
		if label, ok := workflowLabel(wf); ok {
			labels = append(labels, label)
		}
	}

	return labels, len(workflows.Workflows) >= workflowPageSize, nil
}

// workflowLabel prefers the human name, then the file path, then the id
func workflowLabel(wf *github.Workflow) (string, bool) {
	switch {
	case wf.GetName() != "":
		return wf.GetName(), true
	case wf.GetPath() != "":
		return wf.GetPath(), true
	case wf.GetID() != 0:
		return strconv.FormatInt(wf.GetID(), 10), true
	default:
		return "", false
	}
}
