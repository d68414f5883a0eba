package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ghsearch-cli/internal/search"
)

const (
	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// searchPageSize is the page size for code search requests.
	searchPageSize = 100
)

// Client wraps the go-github client behind the search.Client port.
type Client struct {
	gh      *gh.Client
	limiter *RateLimiter
}

var _ search.Client = (*Client)(nil)

// NewClient creates a GitHub API client authenticated with a static
// personal access token.
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:      gh.NewClient(tc),
		limiter: NewRateLimiter(),
	}
}

// NewClientWithHTTPClient creates a client from a custom http.Client and
// API base URL. Used by tests running against a local API stub.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}

	return &Client{
		gh:      client,
		limiter: NewRateLimiter(),
	}, nil
}

// RateLimits reads a fresh snapshot of the search and core quotas. The
// rate-limit endpoint itself does not count against either quota.
func (c *Client) RateLimits(ctx context.Context) (*search.RateLimits, error) {
	limits, resp, err := c.gh.RateLimit.Get(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	c.updateFromResponse(resp)

	return &search.RateLimits{
		Search: toQuota(limits.GetSearch()),
		Core:   toQuota(limits.GetCore()),
	}, nil
}

func toQuota(r *gh.Rate) search.Quota {
	if r == nil {
		return search.Quota{}
	}
	return search.Quota{
		Remaining: r.Remaining,
		Limit:     r.Limit,
		Reset:     r.Reset.Time,
	}
}

// updateFromResponse feeds server-reported quota headers to the limiter.
func (c *Client) updateFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.limiter.UpdateFromResponse(resp.Response)
}
