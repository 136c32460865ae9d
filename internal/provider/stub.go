package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-translations/pkg/interfaces"
)

// StubTranslator is an in-memory Translator for tests and local development.
// By default it "translates" by suffixing the target language code; individual
// targets can be forced to fail and whole calls can be delayed or rejected.
type StubTranslator struct {
	// FailLanguages lists target codes the stub reports as failed.
	FailLanguages []string
	// Err, when set, fails every call outright.
	Err error
	// NotConfigured makes every call return ErrTranslatorNotConfigured.
	NotConfigured bool
	// Delay is applied before responding, honoring context cancellation.
	Delay time.Duration
	// Render overrides the default text transform.
	Render func(text, target string) string

	mu       sync.Mutex
	requests []interfaces.TranslationRequest
}

var _ interfaces.Translator = (*StubTranslator)(nil)

func (s *StubTranslator) Translate(ctx context.Context, req interfaces.TranslationRequest) (interfaces.TranslationResult, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return interfaces.TranslationResult{}, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return interfaces.TranslationResult{}, err
	}
	if s.NotConfigured {
		return interfaces.TranslationResult{}, interfaces.ErrTranslatorNotConfigured
	}
	if s.Err != nil {
		return interfaces.TranslationResult{}, s.Err
	}

	result := interfaces.TranslationResult{Translations: map[string]string{}}
	for _, target := range req.TargetLanguages {
		if s.failsFor(target) {
			result.FailedLanguages = append(result.FailedLanguages, target)
			continue
		}
		result.Translations[target] = s.render(req.SourceText, target)
	}
	return result, nil
}

func (s *StubTranslator) BatchTranslate(ctx context.Context, reqs []interfaces.TranslationRequest) ([]interfaces.TranslationResult, error) {
	results := make([]interfaces.TranslationResult, 0, len(reqs))
	for _, req := range reqs {
		result, err := s.Translate(ctx, req)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Calls reports how many provider calls the stub has received.
func (s *StubTranslator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of every request received so far.
func (s *StubTranslator) Requests() []interfaces.TranslationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]interfaces.TranslationRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *StubTranslator) failsFor(target string) bool {
	for _, lang := range s.FailLanguages {
		if lang == target {
			return true
		}
	}
	return false
}

func (s *StubTranslator) render(text, target string) string {
	if s.Render != nil {
		return s.Render(text, target)
	}
	return fmt.Sprintf("%s [%s]", text, target)
}
