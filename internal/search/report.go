package search

import (
	"fmt"
	"io"
	"net/url"
	"strings"
)

// repoQualifiers are query qualifiers made redundant by a repo-scoped URL.
var repoQualifiers = []string{"repo:", "org:", "user:"}

// PrintResults renders the grouped results as a plain-text report: one
// line per repository in first-seen order with a repo-scoped search URL,
// then one indented line per kept file path in kept order.
func PrintResults(w io.Writer, grouped *GroupedResults, terms []string) {
	if grouped.Empty() {
		fmt.Fprintln(w, "No results!")
		return
	}

	fmt.Fprintln(w, "Results:")
	for _, repo := range grouped.Repos() {
		results := grouped.Results(repo)
		fmt.Fprintf(w, " %d - %s: %s\n", len(results), repo, repoSearchURL(repo, terms))
		for _, r := range results {
			fmt.Fprintf(w, "\t- %s\n", r.Path())
		}
	}
}

// repoSearchURL reproduces the original query scoped to one repository.
// Repo-scoping qualifiers are dropped because the URL already names the
// repository; path/content filter text never appears here.
func repoSearchURL(repo string, terms []string) string {
	kept := make([]string, 0, len(terms))
	for _, term := range terms {
		if hasRepoQualifier(term) {
			continue
		}
		kept = append(kept, term)
	}

	// Percent-encode with %20 for spaces rather than the form-style "+".
	q := url.QueryEscape(strings.Join(kept, " "))
	q = strings.ReplaceAll(q, "+", "%20")
	return fmt.Sprintf("https://www.github.com/%s/search?utf8=✓&q=%s", repo, q)
}

func hasRepoQualifier(term string) bool {
	for _, prefix := range repoQualifiers {
		if strings.HasPrefix(term, prefix) {
			return true
		}
	}
	return false
}
