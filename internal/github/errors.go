package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

// BadCredentialsError indicates the API rejected the token.
type BadCredentialsError struct {
	StatusCode int
	Message    string
}

func (e *BadCredentialsError) Error() string {
	return fmt.Sprintf("github: bad credentials: %d %q", e.StatusCode, e.Message)
}

// RequestError is a client-side request rejection (HTTP 422 class), such
// as malformed query syntax, carrying the sub-error reasons from the API.
type RequestError struct {
	StatusCode int
	Message    string
	Reasons    []string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("github: %d %s: %s", e.StatusCode, e.Message, strings.Join(e.Reasons, ", "))
}

// wrapError converts the error responses this tool knows how to report
// into typed errors. Anything else passes through unchanged so it reaches
// the process boundary as-is.
func wrapError(err error) error {
	var ghErr *gh.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil {
		return err
	}

	switch ghErr.Response.StatusCode {
	case http.StatusUnauthorized:
		return &BadCredentialsError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
	case http.StatusUnprocessableEntity:
		reasons := make([]string, 0, len(ghErr.Errors))
		for _, sub := range ghErr.Errors {
			reasons = append(reasons, sub.Message)
		}
		return &RequestError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			Reasons:    reasons,
		}
	default:
		return err
	}
}
