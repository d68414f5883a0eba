package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotArchivedFilter(t *testing.T) {
	f := NotArchivedFilter{}

	t.Run("keeps results from live repositories", func(t *testing.T) {
		keep, err := f.Matches(context.Background(), &fakeResult{repo: "org/repo", archived: false})
		require.NoError(t, err)
		assert.True(t, keep)
	})

	t.Run("drops results from archived repositories", func(t *testing.T) {
		keep, err := f.Matches(context.Background(), &fakeResult{repo: "org/repo", archived: true})
		require.NoError(t, err)
		assert.False(t, keep)
	})

	t.Run("is free of core API calls", func(t *testing.T) {
		assert.False(t, f.UsesCoreAPI())
		assert.Equal(t, "NotArchivedFilter", f.Name())
	})
}

func TestPathFilter(t *testing.T) {
	f := PathFilter{Substring: "setup"}

	t.Run("keeps paths containing the substring", func(t *testing.T) {
		keep, err := f.Matches(context.Background(), &fakeResult{path: "project/setup.py"})
		require.NoError(t, err)
		assert.True(t, keep)
	})

	t.Run("drops paths without the substring", func(t *testing.T) {
		keep, err := f.Matches(context.Background(), &fakeResult{path: "README.md"})
		require.NoError(t, err)
		assert.False(t, keep)
	})

	t.Run("is free of core API calls", func(t *testing.T) {
		assert.False(t, f.UsesCoreAPI())
		assert.Equal(t, "PathFilter", f.Name())
	})
}

func TestContentFilter(t *testing.T) {
	f := ContentFilter{Substring: "special content"}

	t.Run("keeps results whose content matches", func(t *testing.T) {
		keep, err := f.Matches(context.Background(), &fakeResult{content: "some special content here"})
		require.NoError(t, err)
		assert.True(t, keep)
	})

	t.Run("drops results whose content does not match", func(t *testing.T) {
		keep, err := f.Matches(context.Background(), &fakeResult{content: "nothing of note"})
		require.NoError(t, err)
		assert.False(t, keep)
	})

	t.Run("propagates content fetch failures", func(t *testing.T) {
		fetchErr := errors.New("blob fetch failed")
		_, err := f.Matches(context.Background(), &fakeResult{contentErr: fetchErr})
		assert.ErrorIs(t, err, fetchErr)
	})

	t.Run("consumes the core API quota", func(t *testing.T) {
		assert.True(t, f.UsesCoreAPI())
		assert.Equal(t, "ContentFilter", f.Name())
	})
}
