package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 150, cfg.Search.MaxCheck)
	assert.Equal(t, 5, cfg.Pagination.PageSize)
	assert.Equal(t, 120*time.Second, cfg.SessionTTL())
	assert.Equal(t, 15*time.Second, cfg.Timeout())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "https://gd.example.net"
timeout_seconds = 5

[search]
max_check = 80

[difficulty]
demon_threshold = 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://gd.example.net", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 80, cfg.Search.MaxCheck)
	assert.Equal(t, 7, cfg.Difficulty.DemonThreshold)

	// Untouched sections keep their defaults.
	assert.Equal(t, 5, cfg.Pagination.PageSize)
	assert.Equal(t, 6, cfg.Search.Concurrency)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
