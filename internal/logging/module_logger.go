package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-translations/pkg/interfaces"
)

const (
	rootModule         = "translations"
	cacheModule        = "translations.cache"
	providerModule     = "translations.provider"
	orchestratorModule = "translations.orchestrator"
	workflowModule     = "translations.workflow"
)

const (
	fieldContentID = "content_id"
	fieldLanguage  = "language"
	fieldOperation = "operation"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CacheLogger returns the logger namespace reserved for the translation cache.
func CacheLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cacheModule)
}

// ProviderLogger returns the logger namespace reserved for translation providers.
func ProviderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, providerModule)
}

// OrchestratorLogger returns the logger namespace reserved for the orchestrator.
func OrchestratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, orchestratorModule)
}

// WorkflowLogger returns the logger namespace reserved for review workflows.
func WorkflowLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, workflowModule)
}

// WithTranslationContext enriches the provided logger with common translation
// fields such as content id, target language, and operation. Empty values are
// ignored.
func WithTranslationContext(logger interfaces.Logger, contentID, language, operation string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(contentID); trimmed != "" {
		fields[fieldContentID] = trimmed
	}
	if trimmed := strings.TrimSpace(language); trimmed != "" {
		fields[fieldLanguage] = trimmed
	}
	if trimmed := strings.TrimSpace(operation); trimmed != "" {
		fields[fieldOperation] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
