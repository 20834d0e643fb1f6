package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := FindAndLoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, 30000, cfg.Timeout)
		assert.True(t, cfg.GetFollowRedirects())
		assert.False(t, cfg.GetBail())
	})

	t.Run("reads config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".flowspec.config.json")
		err := os.WriteFile(path, []byte(`{"timeout": 5000, "bail": true, "headers": {"X-Env": "ci"}}`), 0644)
		require.NoError(t, err)

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, 5000, cfg.Timeout)
		assert.True(t, cfg.GetBail())
		assert.Equal(t, "ci", cfg.Headers["X-Env"])
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "flowspec.config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{nope`), 0644))

		_, err := FindAndLoadConfig(dir)
		assert.Error(t, err)
	})
}

func TestConfig_Merge(t *testing.T) {
	base := DefaultConfig()
	base.Headers = map[string]string{"A": "1"}

	merged := base.Merge(&Config{
		Timeout: 1000,
		Bail:    BoolPtr(true),
		Headers: map[string]string{"B": "2"},
	})

	assert.Equal(t, 1000, merged.Timeout)
	assert.True(t, merged.GetBail())
	assert.Equal(t, "1", merged.Headers["A"])
	assert.Equal(t, "2", merged.Headers["B"])

	// nil merge is a no-op
	assert.Equal(t, merged, merged.Merge(nil))
}
