// Package github talks to the GitHub REST and GraphQL APIs for the handful of
// calls the graph pipeline needs.
package github

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	gh "github.com/google/go-github/v72/github"
)

const (
	DefaultBaseURL    = "https://api.github.com"
	DefaultGraphQLURL = "https://api.github.com/graphql"

	userAgent = "repograph"
)

// Config is read-only for the lifetime of a Client.
type Config struct {
	BaseURL    string
	GraphQLURL string
	// Token is optional; without it requests go out unauthenticated.
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	gh         *gh.Client
	graphqlURL string
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	gql := strings.TrimSpace(cfg.GraphQLURL)
	if gql == "" {
		gql = base + "/graphql"
		if base == DefaultBaseURL {
			gql = DefaultGraphQLURL
		}
	}

	client := gh.NewClient(hc)
	if token := strings.TrimSpace(cfg.Token); token != "" {
		client = client.WithAuthToken(token)
	}
	client.UserAgent = userAgent
	if u, err := url.Parse(base + "/"); err == nil {
		client.BaseURL = u
	}
	return &Client{gh: client, graphqlURL: gql}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	// Message is the API's error message, when it sent one.
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: %s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// NotFound reports whether the API answered 404, which GitHub also uses for
// private repositories the token cannot see.
func (e *StatusError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// apiError turns a go-github failure into a *StatusError when the server
// answered, and wraps it otherwise.
func apiError(op string, resp *gh.Response, err error) error {
	var (
		hr  *http.Response
		msg string
	)
	var er *gh.ErrorResponse
	var rl *gh.RateLimitError
	var abuse *gh.AbuseRateLimitError
	switch {
	case errors.As(err, &er):
		hr, msg = er.Response, er.Message
	case errors.As(err, &rl):
		hr, msg = rl.Response, rl.Message
	case errors.As(err, &abuse):
		hr, msg = abuse.Response, abuse.Message
	case resp != nil && resp.Response != nil && resp.StatusCode/100 != 2:
		hr, msg = resp.Response, err.Error()
	}
	if hr == nil {
		return fmt.Errorf("github: %s: %w", op, err)
	}
	se := &StatusError{StatusCode: hr.StatusCode, Message: msg}
	if hr.Request != nil {
		se.Method = hr.Request.Method
		se.URL = hr.Request.URL.String()
	}
	return se
}

var reRepoURL = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`)

// ParseRepoURL extracts owner and repository name from a GitHub URL such as
// https://github.com/owner/name.git. Query strings, fragments and a trailing
// .git are dropped.
func ParseRepoURL(raw string) (owner, repo string, ok bool) {
	m := reRepoURL.FindStringSubmatch(raw)
	if m == nil {
		return "", "", false
	}
	owner, repo = m[1], m[2]
	if i := strings.IndexAny(repo, "?#"); i >= 0 {
		repo = repo[:i]
	}
	repo = strings.TrimSuffix(repo, ".git")
	if owner == "" || repo == "" {
		return "", "", false
	}
	return owner, repo, true
}
