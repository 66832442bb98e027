package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "discovery", cfg.Matching.DefaultMode)
	assert.Equal(t, 5*time.Minute, cfg.Matching.CacheTTL.Std())
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetServerAddr())
}

func TestLoadConfigFromFile(t *testing.T) {
	chdir(t, t.TempDir())

	path := writeConfig(t, `{
		"server": {"port": 9090, "read_timeout": "30s"},
		"logging": {"level": "debug"},
		"matching": {"default_mode": "precise", "cache_ttl": "1m", "catalog_path": "catalog.yaml"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "precise", cfg.Matching.DefaultMode)
	assert.Equal(t, time.Minute, cfg.Matching.CacheTTL.Std())
	assert.Equal(t, "catalog.yaml", cfg.Matching.CatalogPath)
	// untouched defaults survive a partial file
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("MATCH_DEFAULT_MODE", "precise")
	t.Setenv("MATCH_CACHE_TTL", "0s")
	t.Setenv("CATALOG_PATH", "/etc/catalog.json")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "precise", cfg.Matching.DefaultMode)
	assert.Equal(t, time.Duration(0), cfg.Matching.CacheTTL.Std())
	assert.Equal(t, "/etc/catalog.json", cfg.Matching.CatalogPath)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_HOST=127.0.0.1\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SERVER_HOST") })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
}

func TestLoadConfigErrors(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := LoadConfig(writeConfig(t, `{not json`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `{"matching": {"default_mode": "fuzzy"}}`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `{"server": {"port": 70000}}`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `{"server": {"mode": "staging"}}`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `{"matching": {"cache_ttl": "soon"}}`))
	assert.Error(t, err)

	t.Setenv("SERVER_PORT", "eighty")
	_, err = LoadConfig("")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
