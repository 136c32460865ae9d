package translations

import "github.com/goliatone/go-translations/internal/runtimeconfig"

var (
	ErrDefaultLanguageInvalid  = runtimeconfig.ErrDefaultLanguageInvalid
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheMaxEntriesInvalid  = runtimeconfig.ErrCacheMaxEntriesInvalid
	ErrProviderKindUnknown     = runtimeconfig.ErrProviderKindUnknown
	ErrProviderTimeoutInvalid  = runtimeconfig.ErrProviderTimeoutInvalid
	ErrChunkSizeInvalid        = runtimeconfig.ErrChunkSizeInvalid
	ErrHistoryLimitInvalid     = runtimeconfig.ErrHistoryLimitInvalid
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config             = runtimeconfig.Config
	LanguagesConfig    = runtimeconfig.LanguagesConfig
	CacheConfig        = runtimeconfig.CacheConfig
	ProviderConfig     = runtimeconfig.ProviderConfig
	OrchestratorConfig = runtimeconfig.OrchestratorConfig
	StorageConfig      = runtimeconfig.StorageConfig
	LoggingConfig      = runtimeconfig.LoggingConfig
	Features           = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
