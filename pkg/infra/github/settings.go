package github

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/ome/status-dashboard/pkg/domain/interfaces"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL    = "https://api.github.com/"
	DefaultGraphQLURL = "https://api.github.com/graphql"
	DefaultUserAgent  = "ome-status-dashboard"
	DefaultTimeout    = 30 * time.Second

	acceptHeader = "application/vnd.github+json"
)

// Settings is the read-only base configuration shared by every client.
// It is built once at startup and never mutated afterwards.
type Settings struct {
	BaseURL    string
	GraphQLURL string
	Token      string `masq:"secret"`
	UserAgent  string
	Timeout    time.Duration
}

type factory struct {
	settings Settings
	baseURL  url.URL
}

// NewFactory validates settings and returns a factory of independent clients
func NewFactory(settings Settings) (interfaces.ClientFactory, error) {
	if settings.BaseURL == "" {
		settings.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(settings.BaseURL, "/") {
		settings.BaseURL += "/"
	}
	if settings.GraphQLURL == "" {
		settings.GraphQLURL = DefaultGraphQLURL
	}
	if settings.UserAgent == "" {
		settings.UserAgent = DefaultUserAgent
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	baseURL, err := url.Parse(settings.BaseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", settings.BaseURL))
	}
	if _, err := url.Parse(settings.GraphQLURL); err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub GraphQL URL", goerr.V("url", settings.GraphQLURL))
	}

	return &factory{
		settings: settings,
		baseURL:  *baseURL,
	}, nil
}

// New builds a client with its own HTTP connection pool
func (f *factory) New() interfaces.MetadataClient {
	httpClient, transport := f.newHTTPClient()

	rest := github.NewClient(httpClient)
	baseURL := f.baseURL
	rest.BaseURL = &baseURL
	rest.UserAgent = f.settings.UserAgent

	return &client{
		rest:      rest,
		gql:       githubv4.NewEnterpriseClient(f.settings.GraphQLURL, httpClient),
		transport: transport,
	}
}

func (f *factory) newHTTPClient() (*http.Client, *http.Transport) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	var rt http.RoundTripper = transport

	if f.settings.Token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: f.settings.Token}),
			Base:   rt,
		}
	}

	return &http.Client{
		Transport: &headerTransport{
			userAgent: f.settings.UserAgent,
			base:      rt,
		},
		Timeout: f.settings.Timeout,
	}, transport
}

// headerTransport sets the fixed Accept and User-Agent headers on every request
type headerTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Accept", acceptHeader)
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}
