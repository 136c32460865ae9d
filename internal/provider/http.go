package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-translations/pkg/interfaces"
)

// HTTPConfig configures the HTTP translation provider.
type HTTPConfig struct {
	Endpoint string
	APIKey   string
	// Timeout bounds each provider call. Zero means DefaultTimeout.
	Timeout time.Duration
	// HTMLOnly marks providers that cannot translate raw markdown; markdown
	// requests are rendered to HTML before dispatch.
	HTMLOnly bool
}

// HTTPProvider performs one JSON POST per request, asking for every target
// language in a single call. The provider may fulfil only a subset; the
// shortfall comes back as FailedLanguages rather than an error.
type HTTPProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
	timeout  time.Duration
	htmlOnly bool
}

// NewHTTP constructs the provider. A missing endpoint or API key is allowed
// at construction time; calls will fail with ErrTranslatorNotConfigured so
// hosts can boot without credentials and surface the condition per call.
func NewHTTP(cfg HTTPConfig) *HTTPProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPProvider{
		endpoint: strings.TrimSpace(cfg.Endpoint),
		apiKey:   strings.TrimSpace(cfg.APIKey),
		client:   &http.Client{},
		timeout:  timeout,
		htmlOnly: cfg.HTMLOnly,
	}
}

type wireRequest struct {
	SourceText      string   `json:"source_text"`
	SourceLanguage  string   `json:"source_language"`
	TargetLanguages []string `json:"target_languages"`
	Format          string   `json:"format"`
}

type wireResponse struct {
	Translations map[string]string `json:"translations"`
	Error        string            `json:"error,omitempty"`
}

// Translate implements interfaces.Translator.
func (p *HTTPProvider) Translate(ctx context.Context, req interfaces.TranslationRequest) (interfaces.TranslationResult, error) {
	if err := ValidateRequest(req); err != nil {
		return failAll(req.TargetLanguages), err
	}
	if p.endpoint == "" || p.apiKey == "" {
		return failAll(req.TargetLanguages), interfaces.ErrTranslatorNotConfigured
	}

	text := req.SourceText
	format := req.Format
	if p.htmlOnly && format == interfaces.FormatMarkdown {
		rendered, err := MarkdownToHTML(text)
		if err != nil {
			return failAll(req.TargetLanguages), fmt.Errorf("provider: markdown render: %w", err)
		}
		text = rendered
		format = interfaces.FormatHTML
	}

	payload := wireRequest{
		SourceText:      text,
		SourceLanguage:  strings.ToLower(strings.TrimSpace(req.SourceLanguage)),
		TargetLanguages: lowerAll(req.TargetLanguages),
		Format:          string(format),
	}

	body, err := p.doJSONRequest(ctx, payload)
	if err != nil {
		return failAll(req.TargetLanguages), err
	}

	var decoded wireResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return failAll(req.TargetLanguages), fmt.Errorf("provider: decode response: %w", err)
	}
	if len(decoded.Translations) == 0 {
		if decoded.Error != "" {
			return failAll(req.TargetLanguages), fmt.Errorf("provider: %s", decoded.Error)
		}
		return failAll(req.TargetLanguages), fmt.Errorf("provider: empty response")
	}

	return normalizeResult(req.TargetLanguages, decoded.Translations), nil
}

// BatchTranslate processes requests one by one, preserving input order. A
// failed request contributes an all-failed result in its slot instead of
// aborting the batch.
func (p *HTTPProvider) BatchTranslate(ctx context.Context, reqs []interfaces.TranslationRequest) ([]interfaces.TranslationResult, error) {
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

func (p *HTTPProvider) doJSONRequest(ctx context.Context, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("provider: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("provider: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("provider: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func lowerAll(codes []string) []string {
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = strings.ToLower(strings.TrimSpace(code))
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
