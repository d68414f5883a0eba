package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/ghsearch-cli/internal/github"
)

// UsageError marks failures that are the user's to fix, such as bad
// credentials or malformed query syntax. main exits with code 2 for
// these; all other errors exit with code 1.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

// asUsageError converts the platform errors that have a user-facing
// remedy into usage errors; everything else propagates unmodified.
func asUsageError(err error) error {
	var badCreds *github.BadCredentialsError
	if errors.As(err, &badCreds) {
		return &UsageError{msg: fmt.Sprintf("Bad Credentials: %d %q", badCreds.StatusCode, badCreds.Message)}
	}

	var reqErr *github.RequestError
	if errors.As(err, &reqErr) {
		return &UsageError{msg: fmt.Sprintf("%s (GitHub Exception): %s", reqErr.Message, strings.Join(reqErr.Reasons, ", "))}
	}

	return err
}
