package config

import (
	"time"

	githubinfra "github.com/ome/status-dashboard/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token      string
	APIURL     string
	GraphQLURL string
	UserAgent  string
	Timeout    time.Duration
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token sent as bearer authorization (optional, raises rate limits)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API root URL",
			Value:       githubinfra.DefaultBaseURL,
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "github-graphql-url",
			Usage:       "GitHub GraphQL endpoint URL",
			Value:       githubinfra.DefaultGraphQLURL,
			Destination: &c.GraphQLURL,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_GITHUB_GRAPHQL_URL"),
		},
		&cli.StringFlag{
			Name:        "user-agent",
			Usage:       "User-Agent header sent with every request",
			Value:       githubinfra.DefaultUserAgent,
			Destination: &c.UserAgent,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_USER_AGENT"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Timeout of a single GitHub request",
			Value:       githubinfra.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_GITHUB_TIMEOUT"),
		},
	}
}

// Settings returns the read-only client settings
func (c *GitHub) Settings() githubinfra.Settings {
	return githubinfra.Settings{
		BaseURL:    c.APIURL,
		GraphQLURL: c.GraphQLURL,
		Token:      c.Token,
		UserAgent:  c.UserAgent,
		Timeout:    c.Timeout,
	}
}
