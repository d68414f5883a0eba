package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghsearch-cli/internal/github"
)

func TestAsUsageError(t *testing.T) {
	t.Run("bad credentials", func(t *testing.T) {
		err := asUsageError(&github.BadCredentialsError{StatusCode: 404, Message: "No!"})

		var usageErr *UsageError
		require.ErrorAs(t, err, &usageErr)
		assert.Equal(t, `Bad Credentials: 404 "No!"`, usageErr.Error())
	})

	t.Run("malformed query joins sub-error reasons", func(t *testing.T) {
		err := asUsageError(&github.RequestError{
			StatusCode: 422,
			Message:    "Fail!",
			Reasons:    []string{"reason1", "reason2"},
		})

		var usageErr *UsageError
		require.ErrorAs(t, err, &usageErr)
		assert.Equal(t, "Fail! (GitHub Exception): reason1, reason2", usageErr.Error())
	})

	t.Run("other platform errors propagate unconverted", func(t *testing.T) {
		original := errors.New("github: 400 something broke")

		err := asUsageError(original)

		assert.Same(t, original, err)
		var usageErr *UsageError
		assert.False(t, errors.As(err, &usageErr))
	})

	t.Run("wrapped typed errors are still converted", func(t *testing.T) {
		wrapped := errors.Join(errors.New("search failed"), &github.BadCredentialsError{StatusCode: 401, Message: "Bad credentials"})

		err := asUsageError(wrapped)

		var usageErr *UsageError
		require.ErrorAs(t, err, &usageErr)
		assert.Equal(t, `Bad Credentials: 401 "Bad credentials"`, usageErr.Error())
	})
}
