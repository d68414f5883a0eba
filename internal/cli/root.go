// Package cli wires the gh-search command line: flag parsing, token
// resolution, filter-chain construction and conversion of platform errors
// into user-facing usage errors.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ghsearch-cli/internal/config"
	"github.com/custodia-labs/ghsearch-cli/internal/github"
	"github.com/custodia-labs/ghsearch-cli/internal/logger"
	"github.com/custodia-labs/ghsearch-cli/internal/search"
)

var version = "dev"

var (
	flagToken           string
	flagVerbose         bool
	flagIncludeArchived bool
	flagPathFilter      string
	flagContentFilter   string
)

var rootCmd = &cobra.Command{
	Use:   "gh-search QUERY...",
	Short: "Search code on GitHub and group matches by repository",
	Long: `Runs a GitHub code search, filters the matches and prints them grouped
by repository. Query terms may include search qualifiers such as org:foo
or filename:bar; they are passed to the search API verbatim.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.Flags().StringVar(&flagToken, "token", "",
		"GitHub API token (defaults to $GITHUB_TOKEN, then the config file)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"print rate limit snapshots and per-result diagnostics")
	rootCmd.Flags().BoolVar(&flagIncludeArchived, "include-archived", false,
		"include results from archived repositories")
	rootCmd.Flags().StringVar(&flagPathFilter, "path-filter", "",
		"only keep results whose file path contains this string")
	rootCmd.Flags().StringVar(&flagContentFilter, "content-filter", "",
		"only keep results whose file content contains this string (one core API call per result)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(flagVerbose)

	token, err := resolveToken()
	if err != nil {
		return err
	}
	if token == "" {
		return &UsageError{msg: "no GitHub token: pass --token, set $GITHUB_TOKEN or add one to " + configHint()}
	}

	client := github.NewClient(cmd.Context(), token)

	s := search.New(client, buildFilters(), search.Options{
		Verbose:  flagVerbose,
		Out:      cmd.OutOrStdout(),
		Confirm:  confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout()),
		Progress: newProgress,
	})

	grouped, err := s.Run(cmd.Context(), args)
	if errors.Is(err, search.ErrAborted) {
		cmd.Println("Aborted!")
		return nil
	}
	if err != nil {
		return asUsageError(err)
	}

	search.PrintResults(cmd.OutOrStdout(), grouped, args)
	return nil
}

// buildFilters assembles the filter chain in evaluation order, cheapest
// first so content fetches only happen for results that survive the rest.
func buildFilters() []search.Filter {
	var filters []search.Filter
	if !flagIncludeArchived {
		filters = append(filters, search.NotArchivedFilter{})
	}
	if flagPathFilter != "" {
		filters = append(filters, search.PathFilter{Substring: flagPathFilter})
	}
	if flagContentFilter != "" {
		filters = append(filters, search.ContentFilter{Substring: flagContentFilter})
	}
	return filters
}

func resolveToken() (string, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", err
	}
	return cfg.ResolveToken(flagToken), nil
}

func configHint() string {
	path, err := config.DefaultPath()
	if err != nil {
		return "the config file"
	}
	return path
}

// confirmPrompt builds a yes/abort prompt on in/out. A non-interactive
// stdin counts as declined so scripts never hang on the prompt.
func confirmPrompt(in io.Reader, out io.Writer) search.ConfirmFunc {
	return func(prompt string) bool {
		if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
			return false
		}
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

// noopProgress is used when stderr is not a terminal.
type noopProgress struct{}

func (noopProgress) Add(int) error { return nil }
func (noopProgress) Finish() error { return nil }

// newProgress renders a progress bar on stderr, one tick per result.
func newProgress(total int) search.Progress {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return noopProgress{}
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Filtering results"),
		progressbar.OptionClearOnFinish(),
	)
}
