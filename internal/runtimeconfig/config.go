package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-translations/internal/languages"
)

var ErrDefaultLanguageInvalid = errors.New("translations config: default language is not in the supported catalog")
var ErrCacheTTLInvalid = errors.New("translations config: cache ttl must be positive")
var ErrCacheMaxEntriesInvalid = errors.New("translations config: cache max entries must be positive")
var ErrProviderKindUnknown = errors.New("translations config: provider kind is invalid")
var ErrProviderTimeoutInvalid = errors.New("translations config: provider timeout must be zero or positive")
var ErrChunkSizeInvalid = errors.New("translations config: batch chunk size must be positive")
var ErrHistoryLimitInvalid = errors.New("translations config: history limit must be positive")
var ErrStorageProviderUnknown = errors.New("translations config: storage provider is invalid")
var ErrStorageDriverUnknown = errors.New("translations config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("translations config: storage dsn is required for bun storage")
var ErrLoggingProviderRequired = errors.New("translations config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("translations config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("translations config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("translations config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the translations
// module. Fields intentionally use simple types so host applications can
// extend them later.
type Config struct {
	Enabled      bool
	Languages    LanguagesConfig
	Cache        CacheConfig
	Provider     ProviderConfig
	Orchestrator OrchestratorConfig
	Storage      StorageConfig
	Logging      LoggingConfig
	Features     Features
}

// LanguagesConfig selects the default language used when callers do not name
// a source explicitly.
type LanguagesConfig struct {
	Default string
}

// CacheConfig captures translation cache behaviour.
type CacheConfig struct {
	Enabled    bool
	TTL        time.Duration
	MaxEntries int
}

// ProviderConfig binds the external translation provider. Missing credentials
// are not a validation error: the provider reports "not configured" at call
// time so hosts can boot without a translation backend.
type ProviderConfig struct {
	Kind     string
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
	HTMLOnly bool
}

// OrchestratorConfig captures session behaviour.
type OrchestratorConfig struct {
	ChunkSize    int
	HistoryLimit int
	// AutoSave asks the host to persist accepted translations immediately;
	// persistence itself stays with the host's record store.
	AutoSave bool
}

// StorageConfig selects the record store backing the workflow tracker.
type StorageConfig struct {
	Provider string
	Driver   string
	DSN      string
	Debug    bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Commands bool
	Logger   bool
}

// DefaultConfig returns opinionated defaults: Chinese-first catalog, 24h
// cache, HTTP provider with a 5s timeout, in-memory record store.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Languages: LanguagesConfig{
			Default: string(languages.Chinese),
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        24 * time.Hour,
			MaxEntries: 1000,
		},
		Provider: ProviderConfig{
			Kind:    "http",
			Timeout: 5 * time.Second,
		},
		Orchestrator: OrchestratorConfig{
			ChunkSize:    5,
			HistoryLimit: 50,
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if _, ok := languages.Parse(cfg.Languages.Default); !ok {
		return fmt.Errorf("%w: %s", ErrDefaultLanguageInvalid, cfg.Languages.Default)
	}
	if cfg.Cache.Enabled {
		if cfg.Cache.TTL <= 0 {
			return ErrCacheTTLInvalid
		}
		if cfg.Cache.MaxEntries <= 0 {
			return ErrCacheMaxEntriesInvalid
		}
	}
	switch normalize(cfg.Provider.Kind) {
	case "http", "openai", "stub":
	default:
		return fmt.Errorf("%w: %s", ErrProviderKindUnknown, cfg.Provider.Kind)
	}
	if cfg.Provider.Timeout < 0 {
		return ErrProviderTimeoutInvalid
	}
	if cfg.Orchestrator.ChunkSize <= 0 {
		return ErrChunkSizeInvalid
	}
	if cfg.Orchestrator.HistoryLimit <= 0 {
		return ErrHistoryLimitInvalid
	}
	switch normalize(cfg.Storage.Provider) {
	case "memory":
	case "bun":
		switch normalize(cfg.Storage.Driver) {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
