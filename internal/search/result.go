package search

import (
	"context"
	"time"
)

// Result is a single matched file from a code search: one file in one
// repository, with lazily fetchable content.
type Result interface {
	// Repository returns the full name ("owner/name") of the owning repository.
	Repository() string

	// Path returns the matched file's path within the repository.
	Path() string

	// Archived reports whether the owning repository is archived. The flag
	// comes from the search payload and costs no extra API call.
	Archived() bool

	// Content returns the decoded file content, fetching it on first use.
	// Fetching consumes the core API quota.
	Content(ctx context.Context) (string, error)
}

// ResultIterator is a finite, lazily produced sequence of search results.
// A page is fetched from the network only once the prior page's items are
// exhausted.
type ResultIterator interface {
	// Total returns the total result count reported by the search
	// endpoint. It may fetch the first page to learn the count.
	Total(ctx context.Context) (int, error)

	// Next returns the next result. ok is false once the sequence is
	// exhausted.
	Next(ctx context.Context) (result Result, ok bool, err error)
}

// Quota is a point-in-time snapshot of one metered API quota. Snapshots
// are never mutated, only replaced by fresh reads.
type Quota struct {
	Remaining int
	Limit     int
	Reset     time.Time
}

// RateLimits holds the two independently metered quotas exposed by the
// platform: one for search calls, one for general ("core") calls such as
// content fetches.
type RateLimits struct {
	Search Quota
	Core   Quota
}

// Client is the search API capability the orchestrator consumes.
type Client interface {
	// SearchCode starts a code search for the given query string.
	// Constructing the iterator performs no network call.
	SearchCode(ctx context.Context, query string) (ResultIterator, error)

	// RateLimits reads a fresh snapshot of both quotas.
	RateLimits(ctx context.Context) (*RateLimits, error)
}

// GroupedResults maps repository full names to the results kept for them.
// First-seen repository order and per-repository insertion order are
// preserved.
type GroupedResults struct {
	order  []string
	byRepo map[string][]Result
}

// NewGroupedResults returns an empty grouping.
func NewGroupedResults() *GroupedResults {
	return &GroupedResults{byRepo: make(map[string][]Result)}
}

// Add appends a result to its repository's list, registering the
// repository on first sight.
func (g *GroupedResults) Add(r Result) {
	repo := r.Repository()
	if _, ok := g.byRepo[repo]; !ok {
		g.order = append(g.order, repo)
	}
	g.byRepo[repo] = append(g.byRepo[repo], r)
}

// Repos returns repository names in first-seen order.
func (g *GroupedResults) Repos() []string {
	return g.order
}

// Results returns the kept results for a repository in insertion order.
func (g *GroupedResults) Results(repo string) []Result {
	return g.byRepo[repo]
}

// Empty reports whether no results were kept.
func (g *GroupedResults) Empty() bool {
	return len(g.order) == 0
}
