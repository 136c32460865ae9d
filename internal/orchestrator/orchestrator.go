package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-translations/internal/languages"
	"github.com/goliatone/go-translations/internal/logging"
	"github.com/goliatone/go-translations/internal/translationcache"
	"github.com/goliatone/go-translations/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	// DefaultChunkSize bounds concurrent provider load in BatchTranslate:
	// requests are processed in sequential chunks of this many items.
	DefaultChunkSize = 5
	// DefaultHistoryLimit caps the in-memory translation log.
	DefaultHistoryLimit = 50

	progressDispatched = 50
	progressDone       = 100
)

var (
	ErrSourceTextRequired = errors.New("orchestrator: source text required")
	ErrLanguageInvalid    = errors.New("orchestrator: language not supported")
	ErrNoTargets          = errors.New("orchestrator: no target languages after excluding source")
	ErrNoRequests         = errors.New("orchestrator: at least one request required")
	ErrClosed             = errors.New("orchestrator: closed")
)

// notConfiguredMessage replaces the raw provider sentinel with the wording
// shown to operators.
const notConfiguredMessage = "translation service is not configured: add provider credentials and reload before retrying"

const cancelledMessage = "translation cancelled"

// Outcome is the terminal state of one translation session.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomePartial   Outcome = "partially_completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// Response is the explicit three-way translation outcome. A partial response
// still carries every translation that did succeed; callers must not discard
// them just because FailedLanguages is non-empty.
type Response struct {
	Outcome         Outcome
	Translations    map[string]string
	FailedLanguages []string
	// Message describes the shortfall for partial and failed outcomes.
	Message   string
	FromCache bool
	Duration  time.Duration
}

// Usable reports whether the response carries translations the caller can
// accept (complete or partial).
func (r Response) Usable() bool {
	return r.Outcome == OutcomeCompleted || r.Outcome == OutcomePartial
}

// Request is one unit of work for BatchTranslate. Targets defaults to the
// catalog minus the source language.
type Request struct {
	SourceText     string
	SourceLanguage languages.Language
	Targets        []languages.Language
	Format         interfaces.TextFormat
}

// HistoryItem is one completed translation call. History is process-lifetime
// only; it is never persisted.
type HistoryItem struct {
	ID              uuid.UUID
	SourceText      string
	SourceLanguage  languages.Language
	TargetLanguages []string
	Format          interfaces.TextFormat
	// Translations holds only the succeeded subset.
	Translations map[string]string
	Timestamp    time.Time
	Duration     time.Duration
}

// Hooks are synchronous side-channel notifications. A panicking hook is
// recovered and logged so it cannot corrupt orchestrator state.
type Hooks struct {
	OnSuccess  func(translations map[string]string)
	OnError    func(message string)
	OnProgress func(lang languages.Language, percent int)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger wires the logger used for session telemetry.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock injects the time source used for history timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		if clock != nil {
			o.now = clock
		}
	}
}

// WithChunkSize overrides the BatchTranslate chunk size.
func WithChunkSize(size int) Option {
	return func(o *Orchestrator) {
		if size > 0 {
			o.chunkSize = size
		}
	}
}

// WithHistoryLimit overrides the history cap.
func WithHistoryLimit(limit int) Option {
	return func(o *Orchestrator) {
		if limit > 0 {
			o.historyLimit = limit
		}
	}
}

// WithCacheEnabled toggles cache reads and writes. Disabled means every call
// reaches the provider.
func WithCacheEnabled(enabled bool) Option {
	return func(o *Orchestrator) {
		o.cacheEnabled = enabled
	}
}

// WithHooks registers the lifecycle callbacks.
func WithHooks(hooks Hooks) Option {
	return func(o *Orchestrator) {
		o.hooks = hooks
	}
}

// Orchestrator is the stateful translation façade. It owns in-flight session
// bookkeeping, cache interaction, and the bounded history log. The cache and
// history are shared across concurrent sessions so unrelated callers benefit
// from each other's hits.
type Orchestrator struct {
	translator   interfaces.Translator
	cache        *translationcache.Cache
	cacheEnabled bool
	chunkSize    int
	historyLimit int
	hooks        Hooks
	logger       interfaces.Logger
	now          func() time.Time

	mu          sync.Mutex
	closed      bool
	nextSession uint64
	sessions    map[uint64]*session
	translating map[languages.Language]int
	progress    map[languages.Language]int
	history     []HistoryItem
	lastError   string
}

type session struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
	langs  []languages.Language
}

// New constructs an Orchestrator over a translator and a shared cache.
func New(translator interfaces.Translator, cache *translationcache.Cache, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		translator:   translator,
		cache:        cache,
		cacheEnabled: true,
		chunkSize:    DefaultChunkSize,
		historyLimit: DefaultHistoryLimit,
		logger:       logging.NoOp(),
		now:          time.Now,
		sessions:     map[uint64]*session{},
		translating:  map[languages.Language]int{},
		progress:     map[languages.Language]int{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// TranslateToLanguage translates text into a single target language. On a
// cache hit the provider is not called but the success hook still fires.
func (o *Orchestrator) TranslateToLanguage(ctx context.Context, source, target languages.Language, text string, format interfaces.TextFormat) (Response, error) {
	if strings.TrimSpace(text) == "" {
		return Response{}, ErrSourceTextRequired
	}
	if !languages.IsSupported(source) || !languages.IsSupported(target) {
		return Response{}, ErrLanguageInvalid
	}
	if o.isClosed() {
		return Response{}, ErrClosed
	}
	format = normalizeFormat(format)

	key := translationcache.Key(text, string(source), []string{string(target)}, format)
	if cached, ok := o.cacheGet(key); ok {
		o.emitSuccess(cached.Translations)
		return Response{
			Outcome:      OutcomeCompleted,
			Translations: cloneStringMap(cached.Translations),
			FromCache:    true,
		}, nil
	}

	sess, err := o.begin(ctx, []languages.Language{target})
	if err != nil {
		return Response{}, err
	}
	defer o.finish(sess)

	started := o.now()
	o.setProgress(sess, []languages.Language{target}, progressDispatched)

	result, err := o.translator.Translate(sess.ctx, interfaces.TranslationRequest{
		SourceText:      text,
		SourceLanguage:  string(source),
		TargetLanguages: []string{string(target)},
		Format:          format,
	})
	if o.abandoned(sess) {
		return Response{Outcome: OutcomeCancelled, Message: cancelledMessage}, nil
	}
	if err != nil {
		return o.fail(providerMessage(err)), nil
	}
	if !result.OK() {
		return o.fail(fmt.Sprintf("translation to %s failed", target)), nil
	}

	o.setProgress(sess, []languages.Language{target}, progressDone)
	duration := o.now().Sub(started)

	committed := o.commit(sess, func() {
		if o.cacheEnabled && o.cache != nil {
			o.cache.Set(key, result)
		}
		o.appendHistoryLocked(HistoryItem{
			ID:              uuid.New(),
			SourceText:      text,
			SourceLanguage:  source,
			TargetLanguages: []string{string(target)},
			Format:          format,
			Translations:    cloneStringMap(result.Translations),
			Timestamp:       o.now(),
			Duration:        duration,
		})
		o.lastError = ""
	})
	if !committed {
		return Response{Outcome: OutcomeCancelled, Message: cancelledMessage}, nil
	}

	o.emitSuccess(result.Translations)
	o.opLogger("orchestrator.translate_to_language", map[string]any{
		"source": source,
		"target": target,
	}).Info("translation completed", "duration_ms", duration.Milliseconds())
	return Response{
		Outcome:      OutcomeCompleted,
		Translations: cloneStringMap(result.Translations),
		Duration:     duration,
	}, nil
}

// TranslateToAll translates text into every given target in one provider
// call. Targets defaults to the catalog minus the source language. A partial
// provider result is a usable outcome: the succeeded subset is cached,
// recorded in history, and returned alongside the failed-language list.
func (o *Orchestrator) TranslateToAll(ctx context.Context, source languages.Language, text string, format interfaces.TextFormat, targets ...languages.Language) (Response, error) {
	if strings.TrimSpace(text) == "" {
		return Response{}, ErrSourceTextRequired
	}
	if !languages.IsSupported(source) {
		return Response{}, ErrLanguageInvalid
	}
	resolved, err := resolveTargets(source, targets)
	if err != nil {
		return Response{}, err
	}
	if o.isClosed() {
		return Response{}, ErrClosed
	}
	format = normalizeFormat(format)

	codes := languageCodes(resolved)
	batchKey := translationcache.Key(text, string(source), codes, format)
	if cached, ok := o.cacheGet(batchKey); ok {
		o.emitSuccess(cached.Translations)
		return Response{
			Outcome:         outcomeFor(cached),
			Translations:    cloneStringMap(cached.Translations),
			FailedLanguages: append([]string(nil), cached.FailedLanguages...),
			Message:         partialMessage(cached, len(codes)),
			FromCache:       true,
		}, nil
	}

	sess, err := o.begin(ctx, resolved)
	if err != nil {
		return Response{}, err
	}
	defer o.finish(sess)

	started := o.now()
	o.setProgress(sess, resolved, progressDispatched)

	result, err := o.translator.Translate(sess.ctx, interfaces.TranslationRequest{
		SourceText:      text,
		SourceLanguage:  string(source),
		TargetLanguages: codes,
		Format:          format,
	})
	if o.abandoned(sess) {
		return Response{Outcome: OutcomeCancelled, Message: cancelledMessage}, nil
	}
	if err != nil {
		return o.fail(providerMessage(err)), nil
	}
	if !result.OK() {
		return o.fail(fmt.Sprintf("all %d languages failed: %s", len(codes), strings.Join(result.FailedLanguages, ", "))), nil
	}

	o.setProgress(sess, resolved, progressDone)
	duration := o.now().Sub(started)
	message := partialMessage(result, len(codes))

	committed := o.commit(sess, func() {
		if o.cacheEnabled && o.cache != nil {
			o.cache.SetBatch(text, string(source), format, result, codes)
		}
		o.appendHistoryLocked(HistoryItem{
			ID:              uuid.New(),
			SourceText:      text,
			SourceLanguage:  source,
			TargetLanguages: codes,
			Format:          format,
			Translations:    cloneStringMap(result.Translations),
			Timestamp:       o.now(),
			Duration:        duration,
		})
		if result.Complete() {
			o.lastError = ""
		} else {
			o.lastError = message
		}
	})
	if !committed {
		return Response{Outcome: OutcomeCancelled, Message: cancelledMessage}, nil
	}

	o.emitSuccess(result.Translations)
	o.opLogger("orchestrator.translate_to_all", map[string]any{
		"source":  source,
		"targets": len(codes),
		"failed":  len(result.FailedLanguages),
	}).Info("translation settled", "duration_ms", duration.Milliseconds())
	return Response{
		Outcome:         outcomeFor(result),
		Translations:    cloneStringMap(result.Translations),
		FailedLanguages: append([]string(nil), result.FailedLanguages...),
		Message:         message,
		Duration:        duration,
	}, nil
}

// BatchTranslate processes requests in sequential fixed-size chunks so at
// most one chunk is in flight against the provider at a time. Responses are
// aligned positionally with the input. Successful translations across all
// chunks are aggregated into a single success hook at the end; individual
// chunk results are not cached here.
func (o *Orchestrator) BatchTranslate(ctx context.Context, reqs []Request) ([]Response, error) {
	if len(reqs) == 0 {
		return nil, ErrNoRequests
	}

	providerReqs := make([]interfaces.TranslationRequest, len(reqs))
	reqLangs := make([][]languages.Language, len(reqs))
	touched := map[languages.Language]struct{}{}
	for i, req := range reqs {
		if strings.TrimSpace(req.SourceText) == "" {
			return nil, ErrSourceTextRequired
		}
		if !languages.IsSupported(req.SourceLanguage) {
			return nil, ErrLanguageInvalid
		}
		resolved, err := resolveTargets(req.SourceLanguage, req.Targets)
		if err != nil {
			return nil, err
		}
		reqLangs[i] = resolved
		for _, lang := range resolved {
			touched[lang] = struct{}{}
		}
		providerReqs[i] = interfaces.TranslationRequest{
			SourceText:      req.SourceText,
			SourceLanguage:  string(req.SourceLanguage),
			TargetLanguages: languageCodes(resolved),
			Format:          normalizeFormat(req.Format),
		}
	}

	sessionLangs := make([]languages.Language, 0, len(touched))
	for _, lang := range languages.Supported {
		if _, ok := touched[lang]; ok {
			sessionLangs = append(sessionLangs, lang)
		}
	}

	sess, err := o.begin(ctx, sessionLangs)
	if err != nil {
		return nil, err
	}
	defer o.finish(sess)

	responses := make([]Response, len(reqs))
	for i := range responses {
		responses[i] = Response{Outcome: OutcomeCancelled, Message: cancelledMessage}
	}

	aggregated := map[string]string{}
	totalChunks := (len(reqs) + o.chunkSize - 1) / o.chunkSize

	for chunk := 0; chunk < totalChunks; chunk++ {
		start := chunk * o.chunkSize
		end := start + o.chunkSize
		if end > len(reqs) {
			end = len(reqs)
		}

		results, err := o.translator.BatchTranslate(sess.ctx, providerReqs[start:end])
		if o.abandoned(sess) {
			return responses, nil
		}

		chunkLangs := map[languages.Language]struct{}{}
		for i := start; i < end; i++ {
			for _, lang := range reqLangs[i] {
				chunkLangs[lang] = struct{}{}
			}
			if err != nil || i-start >= len(results) {
				responses[i] = o.fail(providerMessage(err))
				continue
			}
			result := results[i-start]
			if !result.OK() {
				responses[i] = Response{
					Outcome:         OutcomeFailed,
					FailedLanguages: append([]string(nil), result.FailedLanguages...),
					Message:         fmt.Sprintf("all %d languages failed", len(providerReqs[i].TargetLanguages)),
				}
				continue
			}
			for lang, translated := range result.Translations {
				aggregated[lang] = translated
			}
			responses[i] = Response{
				Outcome:         outcomeFor(result),
				Translations:    cloneStringMap(result.Translations),
				FailedLanguages: append([]string(nil), result.FailedLanguages...),
				Message:         partialMessage(result, len(providerReqs[i].TargetLanguages)),
			}
		}

		percent := progressDone * (chunk + 1) / totalChunks
		langs := make([]languages.Language, 0, len(chunkLangs))
		for _, lang := range sessionLangs {
			if _, ok := chunkLangs[lang]; ok {
				langs = append(langs, lang)
			}
		}
		o.setProgress(sess, langs, percent)
	}

	if len(aggregated) > 0 {
		o.emitSuccess(aggregated)
	}
	o.opLogger("orchestrator.batch_translate", map[string]any{
		"requests": len(reqs),
		"chunks":   totalChunks,
	}).Info("batch settled")
	return responses, nil
}

// Cancel aborts every in-flight session and synchronously resets the
// translating set and progress map so the next operation starts from idle.
// The cancelled sessions' late provider responses are discarded: they write
// neither cache nor history. Calling Cancel while idle is a no-op.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	sessions := o.sessions
	o.sessions = map[uint64]*session{}
	o.translating = map[languages.Language]int{}
	o.progress = map[languages.Language]int{}
	o.mu.Unlock()

	for _, sess := range sessions {
		sess.cancel()
	}
	if len(sessions) > 0 {
		o.logger.Info("translation cancelled", "sessions", len(sessions))
	}
}

// Close cancels any in-flight session and rejects subsequent operations.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	o.Cancel()
	return nil
}

// ClearError resets the last recorded error message.
func (o *Orchestrator) ClearError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastError = ""
}

// ClearHistory drops the history log.
func (o *Orchestrator) ClearHistory() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = nil
}

// IsTranslating reports whether any session is in flight.
func (o *Orchestrator) IsTranslating() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.translating) > 0
}

// IsLanguageTranslating reports whether lang is a target of any in-flight
// session.
func (o *Orchestrator) IsLanguageTranslating(lang languages.Language) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.translating[lang] > 0
}

// Progress reports the current percent for lang, zero when idle.
func (o *Orchestrator) Progress(lang languages.Language) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.progress[lang]
}

// History returns the log most-recent-first, capped at the configured limit.
func (o *Orchestrator) History() []HistoryItem {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]HistoryItem, len(o.history))
	copy(out, o.history)
	return out
}

// LastError returns the most recent failure or partial-shortfall message,
// empty after a fully successful call or ClearError.
func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastError
}

func (o *Orchestrator) isClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

func (o *Orchestrator) begin(ctx context.Context, langs []languages.Language) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil, ErrClosed
	}
	sctx, cancel := context.WithCancel(ctx)
	o.nextSession++
	sess := &session{id: o.nextSession, ctx: sctx, cancel: cancel, langs: langs}
	o.sessions[sess.id] = sess
	for _, lang := range langs {
		o.translating[lang]++
		o.progress[lang] = 0
	}
	return sess, nil
}

// finish is the guaranteed cleanup run on every exit path: it releases the
// session's languages and resets their progress. Sessions already cleared by
// Cancel are skipped.
func (o *Orchestrator) finish(sess *session) {
	sess.cancel()
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, live := o.sessions[sess.id]; !live {
		return
	}
	delete(o.sessions, sess.id)
	for _, lang := range sess.langs {
		if o.translating[lang] <= 1 {
			delete(o.translating, lang)
			delete(o.progress, lang)
		} else {
			o.translating[lang]--
		}
	}
}

// abandoned reports whether the session was cancelled out from under the
// in-flight call, in which case its late result must be discarded.
func (o *Orchestrator) abandoned(sess *session) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, live := o.sessions[sess.id]; !live {
		return true
	}
	return sess.ctx.Err() != nil
}

// commit runs the session's cache and history writes under the state lock so
// a concurrent Cancel either happens before (write skipped) or after (write
// kept) but never interleaves.
func (o *Orchestrator) commit(sess *session, write func()) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, live := o.sessions[sess.id]; !live || sess.ctx.Err() != nil {
		return false
	}
	write()
	return true
}

func (o *Orchestrator) appendHistoryLocked(item HistoryItem) {
	o.history = append([]HistoryItem{item}, o.history...)
	if len(o.history) > o.historyLimit {
		o.history = o.history[:o.historyLimit]
	}
}

func (o *Orchestrator) setProgress(sess *session, langs []languages.Language, percent int) {
	o.mu.Lock()
	if _, live := o.sessions[sess.id]; !live {
		o.mu.Unlock()
		return
	}
	for _, lang := range langs {
		o.progress[lang] = percent
	}
	o.mu.Unlock()

	for _, lang := range langs {
		o.emitProgress(lang, percent)
	}
}

func (o *Orchestrator) fail(message string) Response {
	o.mu.Lock()
	o.lastError = message
	o.mu.Unlock()
	o.emitError(message)
	return Response{Outcome: OutcomeFailed, Message: message}
}

func (o *Orchestrator) cacheGet(key string) (interfaces.TranslationResult, bool) {
	if !o.cacheEnabled || o.cache == nil {
		return interfaces.TranslationResult{}, false
	}
	return o.cache.Get(key)
}

func (o *Orchestrator) emitSuccess(translations map[string]string) {
	if o.hooks.OnSuccess == nil {
		return
	}
	defer o.recoverHook("on_success")
	o.hooks.OnSuccess(cloneStringMap(translations))
}

func (o *Orchestrator) emitError(message string) {
	if o.hooks.OnError == nil {
		return
	}
	defer o.recoverHook("on_error")
	o.hooks.OnError(message)
}

func (o *Orchestrator) emitProgress(lang languages.Language, percent int) {
	if o.hooks.OnProgress == nil {
		return
	}
	defer o.recoverHook("on_progress")
	o.hooks.OnProgress(lang, percent)
}

func (o *Orchestrator) recoverHook(name string) {
	if r := recover(); r != nil {
		o.logger.Error("hook panicked", "hook", name, "panic", r)
	}
}

func (o *Orchestrator) opLogger(operation string, fields map[string]any) interfaces.Logger {
	merged := map[string]any{"operation": operation}
	for key, value := range fields {
		merged[key] = value
	}
	return logging.WithFields(o.logger, merged)
}

// resolveTargets validates and dedupes targets, excluding the source
// language. An empty list defaults to every other supported language.
func resolveTargets(source languages.Language, targets []languages.Language) ([]languages.Language, error) {
	if len(targets) == 0 {
		out := make([]languages.Language, 0, len(languages.Supported)-1)
		for _, lang := range languages.Supported {
			if lang != source {
				out = append(out, lang)
			}
		}
		return out, nil
	}

	seen := map[languages.Language]struct{}{}
	out := make([]languages.Language, 0, len(targets))
	for _, lang := range targets {
		if !languages.IsSupported(lang) {
			return nil, ErrLanguageInvalid
		}
		if lang == source {
			continue
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	if len(out) == 0 {
		return nil, ErrNoTargets
	}
	return out, nil
}

func languageCodes(langs []languages.Language) []string {
	out := make([]string, len(langs))
	for i, lang := range langs {
		out[i] = string(lang)
	}
	return out
}

func outcomeFor(result interfaces.TranslationResult) Outcome {
	if result.Complete() {
		return OutcomeCompleted
	}
	return OutcomePartial
}

// partialMessage names exactly which languages failed and the success ratio.
// Empty for complete results.
func partialMessage(result interfaces.TranslationResult, requested int) string {
	if result.Complete() || len(result.FailedLanguages) == 0 {
		return ""
	}
	failed := append([]string(nil), result.FailedLanguages...)
	sort.Strings(failed)
	return fmt.Sprintf("%d/%d languages translated; failed: %s",
		len(result.Translations), requested, strings.Join(failed, ", "))
}

func providerMessage(err error) string {
	if errors.Is(err, interfaces.ErrTranslatorNotConfigured) {
		return notConfiguredMessage
	}
	if err == nil {
		return "translation failed"
	}
	return err.Error()
}

func normalizeFormat(format interfaces.TextFormat) interfaces.TextFormat {
	if format == "" {
		return interfaces.FormatPlain
	}
	return format
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
