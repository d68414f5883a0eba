// Package search implements the code-search pipeline: build a query
// string, guard the rate limit, stream paginated results through an
// ordered filter chain, group the survivors by repository and print a
// plain-text report.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ErrAborted is returned by Run when the user declines the rate-limit
// confirmation prompt. It is a deliberate early exit, not a failure: no
// search results have been consumed and no core API call has been made.
var ErrAborted = errors.New("search aborted")

// rateLimitThreshold is the fraction of the core quota below which a
// pending search needs explicit confirmation.
const rateLimitThreshold = 0.1

// ConfirmFunc presents a yes/abort prompt and reports the user's choice.
type ConfirmFunc func(prompt string) bool

// Progress receives one Add(1) per result examined.
// *progressbar.ProgressBar satisfies it directly.
type Progress interface {
	Add(n int) error
	Finish() error
}

// ProgressFunc builds a progress indicator for the given total.
type ProgressFunc func(total int) Progress

// Options configures a Search. The zero value is usable: non-verbose,
// stdout output, prompts auto-declined, no progress rendering.
type Options struct {
	// Verbose enables rate-limit snapshots and per-drop diagnostics on Out.
	Verbose bool

	// Out receives report-adjacent diagnostics. Defaults to os.Stdout.
	Out io.Writer

	// Confirm handles the rate-limit confirmation prompt. When nil the
	// prompt counts as declined.
	Confirm ConfirmFunc

	// Progress builds the per-run progress indicator. Optional.
	Progress ProgressFunc
}

// Search runs one code search end to end. It is single-threaded: there is
// exactly one in-flight search per run and grouping is mutated only here.
type Search struct {
	client  Client
	filters []Filter
	opts    Options
}

// New builds a Search over the given client and filter chain. Filters are
// evaluated in the order given, short-circuiting on the first failure.
func New(client Client, filters []Filter, opts Options) *Search {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Search{client: client, filters: filters, opts: opts}
}

// Run executes the search for the given query terms and returns the kept
// results grouped by repository. Terms are joined with single spaces,
// order preserved, and passed verbatim to the search endpoint. Returns
// ErrAborted when the user declines the rate-limit confirmation.
func (s *Search) Run(ctx context.Context, terms []string) (*GroupedResults, error) {
	query := strings.Join(terms, " ")

	if err := s.printRateLimits(ctx); err != nil {
		return nil, err
	}

	it, err := s.client.SearchCode(ctx, query)
	if err != nil {
		return nil, err
	}

	total, err := it.Total(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.checkRateLimit(ctx, total)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAborted
	}

	grouped, err := s.collect(ctx, it, total)
	if err != nil {
		return nil, err
	}

	if err := s.printRateLimits(ctx); err != nil {
		return nil, err
	}
	return grouped, nil
}

// collect drains the iterator through the filter chain into a fresh
// grouping, advancing the progress indicator once per result examined.
func (s *Search) collect(ctx context.Context, it ResultIterator, total int) (*GroupedResults, error) {
	var progress Progress
	if s.opts.Progress != nil {
		progress = s.opts.Progress(total)
	}

	grouped := NewGroupedResults()
	for {
		result, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		keep, err := s.runFilters(ctx, result)
		if err != nil {
			return nil, err
		}
		if keep {
			grouped.Add(result)
		}

		if progress != nil {
			_ = progress.Add(1)
		}
	}

	if progress != nil {
		_ = progress.Finish()
	}
	return grouped, nil
}

// runFilters applies the chain in configuration order. The first failing
// filter drops the result and, when verbose, is named in a diagnostic
// line; later filters are not consulted.
func (s *Search) runFilters(ctx context.Context, r Result) (bool, error) {
	for _, f := range s.filters {
		keep, err := f.Matches(ctx, r)
		if err != nil {
			return false, err
		}
		if !keep {
			if s.opts.Verbose {
				fmt.Fprintf(s.opts.Out, "Skipping result for %s via %s\n", r.Repository(), f.Name())
			}
			return false, nil
		}
	}
	return true, nil
}

// checkRateLimit guards the core quota before any result is consumed.
// The worst case is deliberately pessimistic: every core-consuming filter
// is assumed to trigger one core call for every result, ignoring chain
// short-circuits. Reports false when the user declines the prompt.
func (s *Search) checkRateLimit(ctx context.Context, resultCount int) (bool, error) {
	coreFilters := 0
	for _, f := range s.filters {
		if f.UsesCoreAPI() {
			coreFilters++
		}
	}
	if coreFilters == 0 {
		return true, nil
	}

	limits, err := s.client.RateLimits(ctx)
	if err != nil {
		return false, err
	}

	core := limits.Core
	worstCase := resultCount * coreFilters
	if core.Limit > 0 && float64(core.Remaining-worstCase)/float64(core.Limit) >= rateLimitThreshold {
		return true, nil
	}

	prompt := fmt.Sprintf(
		`Warning: you are at risk of using more than the remaining %d%% of your core api limit.
Your search yielded %d results, and each result may trigger up to %d core api call(s) per result.

Your current usage is %d/%d (resets at %s)

Do you want to continue?`,
		int(rateLimitThreshold*100), resultCount, coreFilters,
		core.Remaining, core.Limit, formatReset(core.Reset),
	)
	if s.opts.Confirm == nil {
		return false, nil
	}
	return s.opts.Confirm(prompt), nil
}

// printRateLimits echoes both quota snapshots when verbose. Called before
// the search and again after the last page has been consumed.
func (s *Search) printRateLimits(ctx context.Context) error {
	if !s.opts.Verbose {
		return nil
	}
	limits, err := s.client.RateLimits(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.opts.Out, "Rate limits: %d/%d (search, resets %s), %d/%d (core, resets %s)\n",
		limits.Search.Remaining, limits.Search.Limit, formatReset(limits.Search.Reset),
		limits.Core.Remaining, limits.Core.Limit, formatReset(limits.Core.Reset),
	)
	return nil
}

func formatReset(t time.Time) string {
	return t.Local().Format(time.RFC1123)
}
