package provider

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-translations/internal/languages"
	"github.com/goliatone/go-translations/pkg/interfaces"
)

// DefaultTimeout bounds a single provider call. Mirrors the timeout applied
// to other outbound lookups in the application.
const DefaultTimeout = 5 * time.Second

var (
	ErrSourceTextRequired = errors.New("provider: source text required")
	ErrSourceLanguage     = errors.New("provider: source language not supported")
	ErrTargetsRequired    = errors.New("provider: at least one target language required")
	ErrTargetLanguage     = errors.New("provider: target language not supported")
	ErrFormatInvalid      = errors.New("provider: text format invalid")
)

// ValidateRequest checks a translation request before any network call.
// Validation failures never reach the provider.
func ValidateRequest(req interfaces.TranslationRequest) error {
	if strings.TrimSpace(req.SourceText) == "" {
		return ErrSourceTextRequired
	}
	if _, ok := languages.Parse(req.SourceLanguage); !ok {
		return ErrSourceLanguage
	}
	if len(req.TargetLanguages) == 0 {
		return ErrTargetsRequired
	}
	for _, target := range req.TargetLanguages {
		if _, ok := languages.Parse(target); !ok {
			return ErrTargetLanguage
		}
	}
	switch req.Format {
	case interfaces.FormatPlain, interfaces.FormatMarkdown, interfaces.FormatHTML:
		return nil
	default:
		return ErrFormatInvalid
	}
}

// RequestErrors exposes the same checks as ozzo field errors for callers
// composing larger validations (command messages embed translation requests).
// Returns nil when the request is valid.
func RequestErrors(req interfaces.TranslationRequest) validation.Errors {
	errs := validation.Errors{}
	if strings.TrimSpace(req.SourceText) == "" {
		errs["source_text"] = validation.NewError("translations.provider.source_text_required", "source text is required")
	}
	if _, ok := languages.Parse(req.SourceLanguage); !ok {
		errs["source_language"] = validation.NewError("translations.provider.source_language_invalid", "source language is not supported")
	}
	if len(req.TargetLanguages) == 0 {
		errs["target_languages"] = validation.NewError("translations.provider.targets_required", "at least one target language is required")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// normalizeResult partitions a provider response against the requested
// targets: translations the provider supplied stay, every other requested
// target lands in FailedLanguages, preserving request order.
func normalizeResult(targets []string, supplied map[string]string) interfaces.TranslationResult {
	result := interfaces.TranslationResult{Translations: map[string]string{}}
	for _, target := range targets {
		code := strings.ToLower(strings.TrimSpace(target))
		if text, ok := supplied[code]; ok && strings.TrimSpace(text) != "" {
			result.Translations[code] = text
			continue
		}
		result.FailedLanguages = append(result.FailedLanguages, code)
	}
	return result
}

func failAll(targets []string) interfaces.TranslationResult {
	result := interfaces.TranslationResult{Translations: map[string]string{}}
	for _, target := range targets {
		result.FailedLanguages = append(result.FailedLanguages, strings.ToLower(strings.TrimSpace(target)))
	}
	return result
}
