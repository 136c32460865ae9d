package interfaces

import (
	"context"
	"errors"
)

// ErrTranslatorNotConfigured indicates the translation provider is missing
// credentials or an endpoint. Callers surface this as an operator-actionable
// condition rather than a generic provider failure.
var ErrTranslatorNotConfigured = errors.New("translator not configured: check provider credentials and reload")

// TextFormat describes how source text must be interpreted during
// translation. This is unrelated to the record-level content type
// (product/article/...) used by the workflow tracker.
type TextFormat string

const (
	FormatPlain    TextFormat = "plain"
	FormatMarkdown TextFormat = "markdown"
	FormatHTML     TextFormat = "html"
)

// TranslationRequest asks a provider to translate one source text into a set
// of target languages in a single call. Language codes are plain strings at
// this boundary; the module validates them against its catalog before any
// provider call.
type TranslationRequest struct {
	SourceText      string
	SourceLanguage  string
	TargetLanguages []string
	Format          TextFormat
}

// TranslationResult is the normalized provider outcome. Translations holds
// exactly the languages the provider supplied; FailedLanguages lists the
// requested targets it did not. A result with some of each is a partial
// success, an expected first-class outcome.
type TranslationResult struct {
	Translations    map[string]string
	FailedLanguages []string
}

// OK reports whether at least one target language succeeded.
func (r TranslationResult) OK() bool {
	return len(r.Translations) > 0
}

// Complete reports whether every requested target succeeded.
func (r TranslationResult) Complete() bool {
	return len(r.Translations) > 0 && len(r.FailedLanguages) == 0
}

// Translator is the external translation provider boundary. Implementations
// must make exactly one provider call per request, honor context
// cancellation, apply a bounded timeout, and never panic across this
// boundary: failures come back as errors, partial fulfilment as a result
// with FailedLanguages set.
type Translator interface {
	Translate(ctx context.Context, req TranslationRequest) (TranslationResult, error)
	// BatchTranslate processes independent requests and returns results
	// aligned positionally with the input.
	BatchTranslate(ctx context.Context, reqs []TranslationRequest) ([]TranslationResult, error)
}
