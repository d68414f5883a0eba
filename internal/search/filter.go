package search

import (
	"context"
	"strings"
)

// Filter is a keep/drop predicate over a single search result. Filters
// hold no mutable state and may be invoked many times per run. The chain
// evaluates filters in configuration order and drops a result on the
// first failure.
type Filter interface {
	// Matches reports whether the result should be kept.
	Matches(ctx context.Context, r Result) (bool, error)

	// Name identifies the filter in diagnostic messages.
	Name() string

	// UsesCoreAPI reports whether evaluating the filter consumes the core
	// API quota.
	UsesCoreAPI() bool
}

// NotArchivedFilter drops results whose owning repository is archived.
// The archived flag is part of the search payload, so no core call is
// needed.
type NotArchivedFilter struct{}

// Matches implements Filter.
func (NotArchivedFilter) Matches(_ context.Context, r Result) (bool, error) {
	return !r.Archived(), nil
}

// Name implements Filter.
func (NotArchivedFilter) Name() string { return "NotArchivedFilter" }

// UsesCoreAPI implements Filter.
func (NotArchivedFilter) UsesCoreAPI() bool { return false }

// PathFilter keeps results whose file path contains Substring.
type PathFilter struct {
	Substring string
}

// Matches implements Filter.
func (f PathFilter) Matches(_ context.Context, r Result) (bool, error) {
	return strings.Contains(r.Path(), f.Substring), nil
}

// Name implements Filter.
func (f PathFilter) Name() string { return "PathFilter" }

// UsesCoreAPI implements Filter.
func (f PathFilter) UsesCoreAPI() bool { return false }

// ContentFilter keeps results whose decoded file content contains
// Substring. Fetching the content costs one core API call per result.
type ContentFilter struct {
	Substring string
}

// Matches implements Filter. A failed content fetch fails the run: there
// are no retries and no partial-result recovery.
func (f ContentFilter) Matches(ctx context.Context, r Result) (bool, error) {
	content, err := r.Content(ctx)
	if err != nil {
		return false, err
	}
	return strings.Contains(content, f.Substring), nil
}

// Name implements Filter.
func (f ContentFilter) Name() string { return "ContentFilter" }

// UsesCoreAPI implements Filter.
func (f ContentFilter) UsesCoreAPI() bool { return true }
