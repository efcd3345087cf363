package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTING_WEB_PORT", "PORT", "LISTING_WEB_DOCUMENT", "LISTING_WEB_PUBLIC_DIR",
		"LISTING_WEB_TEMPLATE", "LISTING_WEB_BASE_URL", "LISTING_WEB_FETCH_TIMEOUT",
		"LISTING_WEB_RATE_LIMIT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "listing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
document: https://cdn.example/listings/42/
base_url: https://listing.example/42
fetch_timeout: 3s
rate_limit: 10
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "https://cdn.example/listings/42/", cfg.Document)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, "public", cfg.PublicDir)

	t.Setenv("PORT", "7000")
	t.Setenv("LISTING_WEB_FETCH_TIMEOUT", "250ms")
	t.Setenv("LISTING_WEB_RATE_LIMIT", "0")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchTimeout)
	assert.Equal(t, 0, cfg.RateLimit)

	t.Setenv("LISTING_WEB_PORT", "7100")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7100", cfg.Addr)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("addr: [unterminated"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)

	t.Setenv("LISTING_WEB_FETCH_TIMEOUT", "soon")
	_, err = Load("")
	require.ErrorContains(t, err, "LISTING_WEB_FETCH_TIMEOUT")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Document = " "
	cfg.RateLimit = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document is required")
	assert.Contains(t, err.Error(), "rate_limit")
}
