package di

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-translations/internal/logging"
	"github.com/goliatone/go-translations/internal/logging/console"
	"github.com/goliatone/go-translations/internal/logging/gologger"
	"github.com/goliatone/go-translations/internal/orchestrator"
	"github.com/goliatone/go-translations/internal/provider"
	"github.com/goliatone/go-translations/internal/records"
	"github.com/goliatone/go-translations/internal/runtimeconfig"
	"github.com/goliatone/go-translations/internal/translationcache"
	"github.com/goliatone/go-translations/internal/workflow"
	"github.com/goliatone/go-translations/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies from a validated Config. Every binding
// can be overridden through options before services are finalised.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	translator     interfaces.Translator
	cache          *translationcache.Cache
	recordStore    records.Store
	hooks          orchestrator.Hooks

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	orchestratorSvc *orchestrator.Orchestrator
	workflowSvc     workflow.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithTranslator overrides the provider binding derived from config.
func WithTranslator(t interfaces.Translator) Option {
	return func(c *Container) {
		if t != nil {
			c.translator = t
		}
	}
}

// WithRecordStore overrides the record store binding derived from config.
func WithRecordStore(store records.Store) Option {
	return func(c *Container) {
		if store != nil {
			c.recordStore = store
		}
	}
}

// WithLoggerProvider overrides the logger provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an existing database handle instead of opening one from
// the storage DSN. The caller keeps ownership of the handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithRepositoryCache wraps the bun record store with go-repository-cache.
func WithRepositoryCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithHooks registers orchestrator lifecycle callbacks.
func WithHooks(hooks orchestrator.Hooks) Option {
	return func(c *Container) {
		c.hooks = hooks
	}
}

// NewContainer assembles the translation services for the given configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil && cfg.Features.Logger {
		provider, err := resolveLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.cache == nil {
		cacheOpts := []translationcache.Option{}
		if cfg.Cache.TTL > 0 {
			cacheOpts = append(cacheOpts, translationcache.WithTTL(cfg.Cache.TTL))
		}
		if cfg.Cache.MaxEntries > 0 {
			cacheOpts = append(cacheOpts, translationcache.WithMaxEntries(cfg.Cache.MaxEntries))
		}
		c.cache = translationcache.New(cacheOpts...)
	}

	if c.translator == nil {
		c.translator = resolveTranslator(cfg.Provider)
	}

	if c.recordStore == nil {
		store, err := c.resolveRecordStore(cfg.Storage)
		if err != nil {
			return nil, err
		}
		c.recordStore = store
	}

	c.orchestratorSvc = orchestrator.New(c.translator, c.cache,
		orchestrator.WithLogger(logging.OrchestratorLogger(c.loggerProvider)),
		orchestrator.WithChunkSize(cfg.Orchestrator.ChunkSize),
		orchestrator.WithHistoryLimit(cfg.Orchestrator.HistoryLimit),
		orchestrator.WithCacheEnabled(cfg.Cache.Enabled),
		orchestrator.WithHooks(c.hooks),
	)

	c.workflowSvc = workflow.NewService(c.recordStore,
		workflow.WithLogger(logging.WorkflowLogger(c.loggerProvider)),
	)

	return c, nil
}

// Orchestrator returns the translation orchestrator.
func (c *Container) Orchestrator() *orchestrator.Orchestrator {
	return c.orchestratorSvc
}

// Workflow returns the status tracker.
func (c *Container) Workflow() workflow.Service {
	return c.workflowSvc
}

// Cache returns the shared translation cache.
func (c *Container) Cache() *translationcache.Cache {
	return c.cache
}

// RecordStore returns the record store backing the tracker.
func (c *Container) RecordStore() records.Store {
	return c.recordStore
}

// Translator returns the bound provider.
func (c *Container) Translator() interfaces.Translator {
	return c.translator
}

// LoggerProvider returns the configured logger provider, which may be nil
// when the logging feature is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB returns the database handle when bun storage is configured.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// Close cancels in-flight translations and releases owned resources.
// Database handles supplied via WithBunDB are left open.
func (c *Container) Close() error {
	if c.orchestratorSvc != nil {
		_ = c.orchestratorSvc.Close()
	}
	if c.bunDB != nil && c.ownsDB {
		return c.bunDB.Close()
	}
	return nil
}

func (c *Container) resolveRecordStore(cfg runtimeconfig.StorageConfig) (records.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "memory":
		return records.NewMemoryStore(), nil
	case "bun":
		if c.bunDB == nil {
			db, err := openBunDB(cfg)
			if err != nil {
				return nil, err
			}
			c.bunDB = db
			c.ownsDB = true
		}
		if c.cacheService != nil && c.keySerializer != nil {
			return records.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer), nil
		}
		return records.NewBunStore(c.bunDB), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageProviderUnknown, cfg.Provider)
	}
}

func resolveTranslator(cfg runtimeconfig.ProviderConfig) interfaces.Translator {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "openai":
		return provider.NewOpenAI(provider.OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	case "stub":
		return &provider.StubTranslator{}
	default:
		return provider.NewHTTP(provider.HTTPConfig{
			Endpoint: cfg.Endpoint,
			APIKey:   cfg.APIKey,
			Timeout:  cfg.Timeout,
			HTMLOnly: cfg.HTMLOnly,
		})
	}
}

func resolveLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		minLevel := consoleLevel(cfg.Level)
		return console.NewProvider(console.Options{MinLevel: &minLevel}), nil
	}
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}
