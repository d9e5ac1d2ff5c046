package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/goliatone/go-reading-cache/cache"
	"github.com/goliatone/go-reading-cache/paginate"
	"github.com/goliatone/go-reading-cache/persistence"
	"github.com/goliatone/go-reading-cache/provider"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BIBLIOTHEK"

// Configuration keys.
const (
	KeyAPIKey            = "api_key"
	KeyModel             = "model"
	KeySystemInstruction = "system_instruction"
	KeyDBPath            = "db_path"
	KeyCacheCapacity     = "cache_capacity"
	KeyCacheTTL          = "cache_ttl"
	KeyWordsPerPage      = "words_per_page"
	KeyDebug             = "debug"
	KeyMetricsAddr       = "metrics_addr"
)

// ErrInvalidConfig is returned by Validate and Load when a value is out of
// range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved application configuration.
type Config struct {
	APIKey            string
	Model             string
	SystemInstruction string
	DBPath            string
	CacheCapacity     int
	CacheTTL          time.Duration
	WordsPerPage      int
	Debug             bool
	MetricsAddr       string
}

// New returns a viper instance with defaults and environment bindings.
// The API key also falls back to GEMINI_API_KEY and API_KEY.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	defaults := cache.DefaultConfig()
	v.SetDefault(KeyModel, provider.DefaultModel)
	v.SetDefault(KeySystemInstruction, provider.DefaultSystemInstruction)
	v.SetDefault(KeyDBPath, persistence.DefaultPath)
	v.SetDefault(KeyCacheCapacity, defaults.Capacity)
	v.SetDefault(KeyCacheTTL, defaults.TTL)
	v.SetDefault(KeyWordsPerPage, paginate.DefaultWordsPerPage)
	v.SetDefault(KeyDebug, false)

	_ = v.BindEnv(KeyAPIKey, EnvPrefix+"_API_KEY", "GEMINI_API_KEY", "API_KEY")
	return v
}

// LoadDotEnv loads variables from the given files, .env by default.
// Missing files are ignored and variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// Load reads configFile, when set, and resolves a validated Config from v.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		APIKey:            strings.TrimSpace(v.GetString(KeyAPIKey)),
		Model:             v.GetString(KeyModel),
		SystemInstruction: v.GetString(KeySystemInstruction),
		DBPath:            v.GetString(KeyDBPath),
		CacheCapacity:     v.GetInt(KeyCacheCapacity),
		CacheTTL:          v.GetDuration(KeyCacheTTL),
		WordsPerPage:      v.GetInt(KeyWordsPerPage),
		Debug:             v.GetBool(KeyDebug),
		MetricsAddr:       v.GetString(KeyMetricsAddr),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration. A missing API key is valid; provider
// calls then fail with provider.ErrConfigurationMissing.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.DBPath, validation.Required),
		validation.Field(&c.CacheCapacity, validation.Required, validation.Min(1)),
		validation.Field(&c.CacheTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.WordsPerPage, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Cache returns the memory cache configuration.
func (c Config) Cache() cache.Config {
	cfg := cache.DefaultConfig()
	cfg.Capacity = c.CacheCapacity
	cfg.TTL = c.CacheTTL
	return cfg
}

// Provider returns the provider configuration.
func (c Config) Provider() provider.Config {
	return provider.Config{
		APIKey:            c.APIKey,
		Model:             c.Model,
		SystemInstruction: c.SystemInstruction,
	}
}

// Store returns the persistence configuration.
func (c Config) Store() persistence.Config {
	return persistence.Config{Path: c.DBPath}
}
