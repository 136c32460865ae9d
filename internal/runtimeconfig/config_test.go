package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-translations/internal/runtimeconfig"
)

func TestConfigValidate_Defaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Languages.Default != "zh" {
		t.Fatalf("default language = %q, want zh", cfg.Languages.Default)
	}
	if cfg.Orchestrator.ChunkSize != 5 || cfg.Orchestrator.HistoryLimit != 50 {
		t.Fatalf("unexpected orchestrator defaults %+v", cfg.Orchestrator)
	}
}

func TestConfigValidate_RejectsUnknownDefaultLanguage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Languages.Default = "fr"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrDefaultLanguageInvalid) {
		t.Fatalf("expected ErrDefaultLanguageInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsBadCacheSettingsOnlyWhenEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.TTL = 0
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}

	cfg.Cache.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled cache must skip ttl validation, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownProviderKind(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Provider.Kind = "grpc"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrProviderKindUnknown) {
		t.Fatalf("expected ErrProviderKindUnknown, got %v", err)
	}
}

func TestConfigValidate_AllowsMissingProviderCredentials(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Provider.Endpoint = ""
	cfg.Provider.APIKey = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("missing credentials must validate; not-configured is a call-time condition, got %v", err)
	}
}

func TestConfigValidate_BunStorageRequiresDriverAndDSN(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}

	cfg.Storage.Driver = "sqlite"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}

	cfg.Storage.DSN = "file::memory:?cache=shared"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsNonPositiveChunkSize(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Orchestrator.ChunkSize = 0

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrChunkSizeInvalid) {
		t.Fatalf("expected ErrChunkSizeInvalid, got %v", err)
	}
}
