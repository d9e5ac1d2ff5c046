package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-reading-cache/persistence"
	"github.com/goliatone/go-reading-cache/provider"
)

// clearEnv blanks every variable Load reads so the host environment does
// not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		KeyAPIKey, KeyModel, KeySystemInstruction, KeyDBPath, KeyCacheCapacity,
		KeyCacheTTL, KeyWordsPerPage, KeyDebug, KeyMetricsAddr,
	} {
		t.Setenv(envName(key), "")
	}
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, provider.DefaultModel, cfg.Model)
	assert.Equal(t, persistence.DefaultPath, cfg.DBPath)
	assert.Equal(t, 100, cfg.CacheCapacity)
	assert.Equal(t, 60*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 800, cfg.WordsPerPage)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BIBLIOTHEK_DB_PATH", "/tmp/lesen.db")
	t.Setenv("BIBLIOTHEK_CACHE_TTL", "30m")
	t.Setenv("BIBLIOTHEK_CACHE_CAPACITY", "5")
	t.Setenv("BIBLIOTHEK_DEBUG", "true")
	t.Setenv("BIBLIOTHEK_METRICS_ADDR", ":9090")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/lesen.db", cfg.DBPath)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.CacheCapacity)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ":9090", cfg.MetricsAddr)

	assert.Equal(t, 5, cfg.Cache().Capacity)
	assert.Equal(t, 30*time.Minute, cfg.Cache().TTL)
	assert.Equal(t, "/tmp/lesen.db", cfg.Store().Path)
}

func TestLoad_APIKeyFallbacks(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"plain API_KEY", map[string]string{"API_KEY": "plain"}, "plain"},
		{"gemini wins over plain", map[string]string{"API_KEY": "plain", "GEMINI_API_KEY": "gemini"}, "gemini"},
		{"prefixed wins", map[string]string{"API_KEY": "plain", "GEMINI_API_KEY": "gemini", "BIBLIOTHEK_API_KEY": "own"}, "own"},
		{"whitespace is trimmed", map[string]string{"API_KEY": "  key  "}, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(New(), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.APIKey)
			assert.Equal(t, tt.want, cfg.Provider().APIKey)
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bibliothek.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: gemini-test\nwords_per_page: 250\ncache_ttl: 2h\n"), 0o600))
	t.Setenv("BIBLIOTHEK_WORDS_PER_PAGE", "300")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-test", cfg.Model)
	assert.Equal(t, 2*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 300, cfg.WordsPerPage, "environment overrides the file")

	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Model:         provider.DefaultModel,
		DBPath:        "x.db",
		CacheCapacity: 1,
		CacheTTL:      time.Minute,
		WordsPerPage:  1,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty model", func(c *Config) { c.Model = "" }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"zero capacity", func(c *Config) { c.CacheCapacity = 0 }},
		{"sub-second ttl", func(c *Config) { c.CacheTTL = time.Millisecond }},
		{"negative words per page", func(c *Config) { c.WordsPerPage = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("BIBLIOTHEK_MODEL=from-dotenv\n"), 0o600))

	require.NoError(t, os.Unsetenv("BIBLIOTHEK_MODEL"))
	require.NoError(t, LoadDotEnv(file, filepath.Join(dir, "missing.env")))
	t.Cleanup(func() { os.Unsetenv("BIBLIOTHEK_MODEL") })

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Model)
}
