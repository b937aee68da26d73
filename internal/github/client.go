// Package github fetches a user's repository READMEs from the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.github.com"
	DefaultTimeout = 15 * time.Second
	userAgent      = "React-ReAct-Agent"
)

var ErrUserNotFound = errors.New("github: user repositories not found")

// Readme is the decoded README of one repository.
type Readme struct {
	Repo    string
	URL     string
	Content string
}

// Client reads repositories and READMEs through go-github.
type Client struct {
	api *gh.Client
	log *zap.Logger
}

// NewClient creates a client. Empty baseURL and timeout <= 0 select defaults.
// An unparsable baseURL falls back to DefaultBaseURL.
func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	api := gh.NewClient(&http.Client{Timeout: timeout})
	if token != "" {
		api = api.WithAuthToken(token)
	}
	base, err := apiBase(baseURL)
	if err != nil {
		logger.Warn("invalid github base url, using default", zap.String("url", baseURL), zap.Error(err))
		base, _ = apiBase(DefaultBaseURL)
	}
	api.BaseURL = base
	api.UserAgent = userAgent
	return &Client{api: api, log: logger}
}

// apiBase parses raw as the REST root. go-github resolves request paths
// relative to it, so it must end with a slash.
func apiBase(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("github: base url %q needs scheme and host", raw)
	}
	return u, nil
}

// Readmes lists username's repositories and returns the README of each one
// that has it. Repositories without a README, or whose request fails or
// times out, are skipped. An error answer for the listing itself yields
// ErrUserNotFound.
func (c *Client) Readmes(ctx context.Context, username string) ([]Readme, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUserNotFound
	}
	repos, _, err := c.api.Repositories.ListByUser(ctx, username, nil)
	if err != nil {
		var apiErr *gh.ErrorResponse
		if errors.As(err, &apiErr) {
			c.log.Debug("github repo listing failed", zap.String("user", username), zap.Int("status", statusOf(apiErr)))
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("github: list repos for %s: %w", username, err)
	}

	var out []Readme
	for _, repo := range repos {
		name := repo.GetName()
		if name == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		owner := repo.GetOwner().GetLogin()
		if owner == "" {
			owner = username
		}
		rd, _, err := c.api.Repositories.GetReadme(ctx, owner, name, nil)
		if err != nil {
			var apiErr *gh.ErrorResponse
			if errors.As(err, &apiErr) {
				c.log.Debug("repository has no readme", zap.String("repo", name), zap.Int("status", statusOf(apiErr)))
			} else {
				c.log.Info("skipping repository readme", zap.String("repo", name), zap.Error(err))
			}
			continue
		}
		content, err := rd.GetContent()
		if err != nil {
			c.log.Info("skipping undecodable readme", zap.String("repo", name), zap.Error(err))
			continue
		}
		out = append(out, Readme{Repo: name, URL: repo.GetURL(), Content: content})
	}
	return out, nil
}

func statusOf(err *gh.ErrorResponse) int {
	if err.Response == nil {
		return 0
	}
	return err.Response.StatusCode
}
