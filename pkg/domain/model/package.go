package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ErrMalformedRepo is returned when a descriptor's repo field is not "owner/name"
var ErrMalformedRepo = goerr.New("malformed repo field, expected owner/name")

// Package is a single repository descriptor of the dashboard configuration.
// Fields other than Repo and Extra are filled in by the aggregator and are
// omitted from the output when the corresponding data is absent.
type Package struct {
	Repo string `yaml:"repo"`

	User              string       `yaml:"user,omitempty"`
	Name              string       `yaml:"name,omitempty"`
	RepoInfo          *RepoInfo    `yaml:"repo_info,omitempty"`
	Error             bool         `yaml:"error,omitempty"`
	LastCommit        *LastCommit  `yaml:"last_commit,omitempty"`
	LastRelease       *LastRelease `yaml:"last_release,omitempty"`
	DisabledWorkflows []string     `yaml:"disabled_workflows,omitempty"`

	// Extra holds every input key not modelled above so that the output
	// keeps the descriptor's original fields.
	Extra map[string]any `yaml:",inline"`
}

// Split returns owner and name from the repo field
func (p *Package) Split() (string, string, error) {
	owner, name, ok := strings.Cut(p.Repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", goerr.Wrap(ErrMalformedRepo, "invalid repository descriptor", goerr.V("repo", p.Repo))
	}
	return owner, name, nil
}

// RepoInfo is the core repository metadata
type RepoInfo struct {
	CreatedAt       string   `yaml:"created_at"`
	UpdatedAt       string   `yaml:"updated_at"`
	OpenIssues      int      `yaml:"open_issues"`
	StargazersCount int      `yaml:"stargazers_count"`
	Description     *string  `yaml:"description"`
	Topics          []string `yaml:"topics"`
	Size            int      `yaml:"size"`
}

// LastCommit is the head commit of the default branch with its CI rollup
type LastCommit struct {
	URL    string  `yaml:"url"`
	Date   *string `yaml:"date"`   // YYYY-MM-DD
	Author *string `yaml:"author"` // login, or free-text author name when unlinked
	Status *string `yaml:"status"` // rollup state such as SUCCESS, FAILURE, PENDING
	SHA    string  `yaml:"sha"`
}

// LastRelease is the most recently created release
type LastRelease struct {
	URL     string  `yaml:"url"`
	TagName string  `yaml:"tag_name"`
	Date    *string `yaml:"date"`
}
