package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	gh "github.com/google/go-github/v68/github"

	"github.com/custodia-labs/ghsearch-cli/internal/logger"
	"github.com/custodia-labs/ghsearch-cli/internal/search"
)

// SearchCode starts a code search for query. No request is issued until
// the iterator is first consumed; pages are fetched one at a time as their
// items are exhausted.
func (c *Client) SearchCode(_ context.Context, query string) (search.ResultIterator, error) {
	return &codeIterator{
		client: c,
		query:  query,
		page:   1,
	}, nil
}

// codeIterator pages through code search results lazily. It buffers one
// page at a time; Total comes from the first page's total_count, so asking
// for it costs no extra request beyond the page that is about to be
// consumed anyway.
type codeIterator struct {
	client  *Client
	query   string
	page    int
	buf     []search.Result
	total   int
	started bool
	done    bool
}

// Total implements search.ResultIterator.
func (it *codeIterator) Total(ctx context.Context) (int, error) {
	if !it.started {
		if err := it.fetchPage(ctx); err != nil {
			return 0, err
		}
	}
	return it.total, nil
}

// Next implements search.ResultIterator.
func (it *codeIterator) Next(ctx context.Context) (search.Result, bool, error) {
	for len(it.buf) == 0 {
		if it.started && it.done {
			return nil, false, nil
		}
		if err := it.fetchPage(ctx); err != nil {
			return nil, false, err
		}
	}

	r := it.buf[0]
	it.buf = it.buf[1:]
	return r, true, nil
}

// fetchPage retrieves the next page of results into the buffer.
func (it *codeIterator) fetchPage(ctx context.Context) error {
	if err := it.client.limiter.Wait(ctx); err != nil {
		return err
	}

	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{Page: it.page, PerPage: searchPageSize},
	}
	result, resp, err := it.client.gh.Search.Code(ctx, it.query, opts)
	if err != nil {
		return wrapError(err)
	}
	it.client.updateFromResponse(resp)

	it.started = true
	it.total = result.GetTotal()
	logger.Debug("code search page %d: %d items of %d total", it.page, len(result.CodeResults), it.total)

	for _, item := range result.CodeResults {
		it.buf = append(it.buf, newCodeResult(it.client, item))
	}

	if resp.NextPage == 0 {
		it.done = true
	} else {
		it.page = resp.NextPage
	}
	return nil
}

// codeResult adapts one code search item to search.Result. Content is
// fetched on first use and memoized; the result is immutable after that.
type codeResult struct {
	client   *Client
	repo     string
	path     string
	archived bool
	owner    string
	name     string
	sha      string

	once    sync.Once
	content string
	err     error
}

func newCodeResult(client *Client, item *gh.CodeResult) *codeResult {
	repo := item.GetRepository()
	return &codeResult{
		client:   client,
		repo:     repo.GetFullName(),
		path:     item.GetPath(),
		archived: repo.GetArchived(),
		owner:    repo.GetOwner().GetLogin(),
		name:     repo.GetName(),
		sha:      item.GetSHA(),
	}
}

// Repository implements search.Result.
func (r *codeResult) Repository() string { return r.repo }

// Path implements search.Result.
func (r *codeResult) Path() string { return r.path }

// Archived implements search.Result.
func (r *codeResult) Archived() bool { return r.archived }

// Content implements search.Result. The blob fetch consumes the core API
// quota; the decoded content is cached for any later filter.
func (r *codeResult) Content(ctx context.Context) (string, error) {
	r.once.Do(func() {
		r.content, r.err = r.fetch(ctx)
	})
	return r.content, r.err
}

func (r *codeResult) fetch(ctx context.Context) (string, error) {
	if err := r.client.limiter.Wait(ctx); err != nil {
		return "", err
	}

	blob, resp, err := r.client.gh.Git.GetBlob(ctx, r.owner, r.name, r.sha)
	if err != nil {
		return "", wrapError(err)
	}
	r.client.updateFromResponse(resp)

	logger.Debug("fetched blob %s for %s:%s", r.sha, r.repo, r.path)

	if blob.GetEncoding() == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(blob.GetContent(), "\n", ""))
		if err != nil {
			return "", fmt.Errorf("decode blob %s: %w", r.sha, err)
		}
		return string(decoded), nil
	}
	return blob.GetContent(), nil
}
