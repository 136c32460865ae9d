// Package translations provides multi-language content translation for a
// fixed six-language catalog: provider-backed translation with caching and
// partial-success handling, deterministic display-language fallback, and a
// review workflow over externally persisted content records.
package translations

import (
	"github.com/goliatone/go-translations/internal/di"
	"github.com/goliatone/go-translations/internal/domain"
	"github.com/goliatone/go-translations/internal/identity"
	"github.com/goliatone/go-translations/internal/languages"
	"github.com/goliatone/go-translations/internal/orchestrator"
	"github.com/goliatone/go-translations/internal/records"
	"github.com/goliatone/go-translations/internal/translationcache"
	"github.com/goliatone/go-translations/internal/workflow"
	"github.com/goliatone/go-translations/pkg/interfaces"
	"github.com/google/uuid"
)

// Language identifies one catalog language by its ISO 639-1 code.
type Language = languages.Language

// Catalog languages, in fallback-resolution order after English and Chinese.
const (
	Chinese  = languages.Chinese
	English  = languages.English
	Japanese = languages.Japanese
	Korean   = languages.Korean
	Arabic   = languages.Arabic
	Spanish  = languages.Spanish
)

// MultiLanguageText maps catalog languages to text values. Absent or blank
// entries count as missing.
type MultiLanguageText = languages.MultiLanguageText

// ContentType enumerates the record kinds the workflow tracker manages.
type ContentType = domain.ContentType

const (
	ContentTypeProduct    = domain.ContentTypeProduct
	ContentTypeArticle    = domain.ContentTypeArticle
	ContentTypePage       = domain.ContentTypePage
	ContentTypeJobPosting = domain.ContentTypeJobPosting
	ContentTypeCategory   = domain.ContentTypeCategory
)

// TranslationStatus is the publication lifecycle stage of a record.
type TranslationStatus = domain.TranslationStatus

const (
	StatusDraft         = domain.StatusDraft
	StatusPendingReview = domain.StatusPendingReview
	StatusPublished     = domain.StatusPublished
)

// Orchestrator-facing types.
type (
	Orchestrator        = orchestrator.Orchestrator
	Outcome             = orchestrator.Outcome
	TranslationResponse = orchestrator.Response
	TranslationRequest  = orchestrator.Request
	HistoryItem         = orchestrator.HistoryItem
	Hooks               = orchestrator.Hooks
)

const (
	OutcomeCompleted = orchestrator.OutcomeCompleted
	OutcomePartial   = orchestrator.OutcomePartial
	OutcomeFailed    = orchestrator.OutcomeFailed
	OutcomeCancelled = orchestrator.OutcomeCancelled
)

// Workflow-facing types.
type (
	WorkflowService        = workflow.Service
	TranslationProgress    = workflow.Progress
	IncompleteItem         = workflow.IncompleteItem
	SubmitForReviewRequest = workflow.SubmitForReviewRequest
	ReviewRequest          = workflow.ReviewRequest
	UpdateLanguageRequest  = workflow.UpdateLanguageRequest
	CopyTranslationRequest = workflow.CopyTranslationRequest
	ContentRecord          = records.ContentRecord
	RecordStore            = records.Store
	RecordListOptions      = records.ListOptions
)

// Provider boundary types.
type (
	Translator       = interfaces.Translator
	ProviderRequest  = interfaces.TranslationRequest
	ProviderResult   = interfaces.TranslationResult
	TextFormat       = interfaces.TextFormat
	TranslationCache = translationcache.Cache
)

const (
	FormatPlain    = interfaces.FormatPlain
	FormatMarkdown = interfaces.FormatMarkdown
	FormatHTML     = interfaces.FormatHTML
)

// ErrTranslatorNotConfigured re-exports the provider's distinguished
// misconfiguration sentinel.
var ErrTranslatorNotConfigured = interfaces.ErrTranslatorNotConfigured

// SupportedLanguages returns the fixed catalog in canonical order.
func SupportedLanguages() []Language {
	out := make([]Language, len(languages.Supported))
	copy(out, languages.Supported)
	return out
}

// ResolveContent picks the display text for the requested language: exact
// match, then English, then Chinese, then the first available catalog entry,
// then the empty string.
func ResolveContent(content MultiLanguageText, requested Language) string {
	return languages.Resolve(content, requested)
}

// MissingLanguages lists catalog languages without a non-blank value.
func MissingLanguages(content MultiLanguageText) []Language {
	return languages.Missing(content)
}

// CompletenessPercent is the rounded share of catalog languages filled in.
func CompletenessPercent(content MultiLanguageText) int {
	return languages.CompletenessPercent(content)
}

// DeterministicRecordID derives a stable record identifier from a content
// type and an external key, so repeated imports of the same upstream item
// address the same row. Pass the resulting ID on ContentRecord before Create.
func DeterministicRecordID(contentType ContentType, externalKey string) uuid.UUID {
	return identity.RecordUUID(string(contentType), externalKey)
}

// CacheKey exposes the deterministic translation cache key so callers can
// pre-check cache state without triggering a translation.
func CacheKey(sourceText string, sourceLanguage Language, targets []Language, format TextFormat) string {
	codes := make([]string, len(targets))
	for i, target := range targets {
		codes[i] = string(target)
	}
	return translationcache.Key(sourceText, string(sourceLanguage), codes, format)
}

// Module is the top level translations runtime façade.
type Module struct {
	container *di.Container
}

// New constructs the module using the provided configuration and optional DI
// overrides such as WithTranslator or WithRecordStore.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// DI option re-exports for host applications.
var (
	WithTranslator      = di.WithTranslator
	WithRecordStore     = di.WithRecordStore
	WithLoggerProvider  = di.WithLoggerProvider
	WithBunDB           = di.WithBunDB
	WithRepositoryCache = di.WithRepositoryCache
	WithHooks           = di.WithHooks
)

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Orchestrator returns the stateful translation coordinator.
func (m *Module) Orchestrator() *Orchestrator {
	return m.container.Orchestrator()
}

// Workflow returns the status tracker over the record store.
func (m *Module) Workflow() WorkflowService {
	return m.container.Workflow()
}

// Cache returns the shared translation cache for diagnostics and admin
// tooling.
func (m *Module) Cache() *TranslationCache {
	return m.container.Cache()
}

// Records returns the record store backing the workflow tracker.
func (m *Module) Records() RecordStore {
	return m.container.RecordStore()
}

// Close cancels in-flight translations and releases owned resources.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
