package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/goliatone/go-translations/internal/languages"
	"github.com/goliatone/go-translations/pkg/interfaces"
)

// OpenAIConfig configures the LLM-backed translation provider.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider translates through chat completions: one request carrying
// every target language, answered as a JSON object keyed by language code.
// Missing keys in the model's answer are treated as partial fulfilment.
type OpenAIProvider struct {
	client     openai.Client
	model      string
	timeout    time.Duration
	configured bool
}

// NewOpenAI constructs the provider. Missing credentials defer to a per-call
// ErrTranslatorNotConfigured, matching the HTTP provider.
func NewOpenAI(cfg OpenAIConfig) *OpenAIProvider {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	key := strings.TrimSpace(cfg.APIKey)
	return &OpenAIProvider{
		client:     openai.NewClient(option.WithAPIKey(key)),
		model:      model,
		timeout:    timeout,
		configured: key != "",
	}
}

// Translate implements interfaces.Translator.
func (p *OpenAIProvider) Translate(ctx context.Context, req interfaces.TranslationRequest) (interfaces.TranslationResult, error) {
	if err := ValidateRequest(req); err != nil {
		return failAll(req.TargetLanguages), err
	}
	if !p.configured {
		return failAll(req.TargetLanguages), interfaces.ErrTranslatorNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(translationSystemPrompt(req)),
			openai.UserMessage(req.SourceText),
		},
	})
	if err != nil {
		return failAll(req.TargetLanguages), fmt.Errorf("provider: openai: %w", err)
	}
	if len(completion.Choices) == 0 {
		return failAll(req.TargetLanguages), fmt.Errorf("provider: openai: no choices returned")
	}

	supplied, err := parseTranslationJSON(completion.Choices[0].Message.Content)
	if err != nil {
		return failAll(req.TargetLanguages), fmt.Errorf("provider: openai: %w", err)
	}
	return normalizeResult(req.TargetLanguages, supplied), nil
}

// BatchTranslate processes requests sequentially, preserving input order.
func (p *OpenAIProvider) BatchTranslate(ctx context.Context, reqs []interfaces.TranslationRequest) ([]interfaces.TranslationResult, error) {
	results := make([]interfaces.TranslationResult, len(reqs))
	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := p.Translate(ctx, req)
		if err != nil {
			result = failAll(req.TargetLanguages)
		}
		results[i] = result
	}
	return results, nil
}

func translationSystemPrompt(req interfaces.TranslationRequest) string {
	names := make([]string, 0, len(req.TargetLanguages))
	for _, target := range req.TargetLanguages {
		code, _ := languages.Parse(target)
		if info, ok := languages.Lookup(code); ok {
			names = append(names, fmt.Sprintf("%s (%s)", code, info.Name))
		}
	}
	format := req.Format
	if format == "" {
		format = interfaces.FormatPlain
	}
	return fmt.Sprintf(
		"Translate the user's %s text from %s into the following languages: %s. "+
			"Respond with a single JSON object mapping each language code to its translation. "+
			"Preserve markup. Omit a language rather than guessing if you cannot translate into it.",
		format, req.SourceLanguage, strings.Join(names, ", "))
}

func parseTranslationJSON(content string) (map[string]string, error) {
	trimmed := strings.TrimSpace(content)
	// Models occasionally wrap the object in a fenced block.
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var supplied map[string]string
	if err := json.Unmarshal([]byte(trimmed), &supplied); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	lowered := make(map[string]string, len(supplied))
	for code, text := range supplied {
		lowered[strings.ToLower(strings.TrimSpace(code))] = text
	}
	return lowered, nil
}
