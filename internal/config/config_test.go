package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reads the token", func(t *testing.T) {
		path := writeConfig(t, `token = "file-token"`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "file-token", cfg.Token)
	})

	t.Run("missing file yields an empty config", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))

		require.NoError(t, err)
		assert.Empty(t, cfg.Token)
	})

	t.Run("malformed TOML is an error", func(t *testing.T) {
		path := writeConfig(t, `token = `)

		_, err := Load(path)

		assert.Error(t, err)
	})
}

func TestResolveToken(t *testing.T) {
	t.Run("flag wins over everything", func(t *testing.T) {
		t.Setenv(EnvToken, "env-token")
		cfg := &Config{Token: "file-token"}

		assert.Equal(t, "flag-token", cfg.ResolveToken("flag-token"))
	})

	t.Run("environment wins over the file", func(t *testing.T) {
		t.Setenv(EnvToken, "env-token")
		cfg := &Config{Token: "file-token"}

		assert.Equal(t, "env-token", cfg.ResolveToken(""))
	})

	t.Run("file is the fallback", func(t *testing.T) {
		t.Setenv(EnvToken, "")
		cfg := &Config{Token: "file-token"}

		assert.Equal(t, "file-token", cfg.ResolveToken(""))
	})

	t.Run("empty when nothing is configured", func(t *testing.T) {
		t.Setenv(EnvToken, "")

		assert.Empty(t, (&Config{}).ResolveToken(""))
	})
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".gh-search", "config.toml"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
