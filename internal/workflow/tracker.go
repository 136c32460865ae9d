package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-translations/internal/domain"
	"github.com/goliatone/go-translations/internal/languages"
	"github.com/goliatone/go-translations/internal/logging"
	"github.com/goliatone/go-translations/internal/records"
	"github.com/goliatone/go-translations/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrContentIDRequired   = errors.New("workflow: content id required")
	ErrContentTypeInvalid  = errors.New("workflow: content type invalid")
	ErrContentTypeMismatch = errors.New("workflow: content type does not match record")
	ErrActorRequired       = errors.New("workflow: actor id required")
	ErrFeedbackRequired    = errors.New("workflow: reviewer feedback required")
	ErrLanguageInvalid     = errors.New("workflow: language not supported")
	ErrNoFieldValues       = errors.New("workflow: at least one field value required")
)

// Error codes attached to store failures surfaced through OperationError.
const (
	CodeRecordNotFound = "RECORD_NOT_FOUND"
	CodeUnknown        = "UNKNOWN_ERROR"
)

// OperationError tags a failed tracker operation with a stable code alongside
// the underlying cause.
type OperationError struct {
	Code    string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("workflow: %s: %s", e.Code, e.Message)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Progress summarizes translation completeness for one record, computed over
// its primary translatable field.
type Progress struct {
	ContentID            uuid.UUID
	ContentType          domain.ContentType
	PrimaryField         string
	TotalLanguages       int
	CompletedLanguages   []languages.Language
	PendingLanguages     []languages.Language
	CompletionPercentage int
}

// IncompleteItem tags a record with its missing languages.
type IncompleteItem struct {
	Record               *records.ContentRecord
	MissingLanguages     []languages.Language
	CompletionPercentage int
}

// SubmitForReviewRequest asks to move a record into review.
type SubmitForReviewRequest struct {
	ContentID    uuid.UUID
	ContentType  domain.ContentType
	TranslatorID uuid.UUID
	Notes        string
}

// ReviewRequest carries an approve/reject decision.
type ReviewRequest struct {
	ContentID   uuid.UUID
	ContentType domain.ContentType
	ReviewerID  uuid.UUID
	Feedback    string
}

// UpdateLanguageRequest merges field values for one language into a record.
type UpdateLanguageRequest struct {
	ContentID   uuid.UUID
	ContentType domain.ContentType
	Language    languages.Language
	FieldValues map[string]string
}

// CopyTranslationRequest duplicates one language's values into another.
type CopyTranslationRequest struct {
	ContentID   uuid.UUID
	ContentType domain.ContentType
	FromLang    languages.Language
	ToLang      languages.Language
}

// Service audits translation completeness over persisted records and drives
// review transitions. It never calls the translation provider.
type Service interface {
	GetProgress(ctx context.Context, contentID uuid.UUID, contentType domain.ContentType) (*Progress, error)
	SubmitForReview(ctx context.Context, req SubmitForReviewRequest) (*records.ContentRecord, error)
	ApproveTranslation(ctx context.Context, req ReviewRequest) (*records.ContentRecord, error)
	RejectTranslation(ctx context.Context, req ReviewRequest) (*records.ContentRecord, error)
	UpdateLanguage(ctx context.Context, req UpdateLanguageRequest) (*records.ContentRecord, error)
	CopyTranslation(ctx context.Context, req CopyTranslationRequest) (*records.ContentRecord, error)
	GetPendingReviews(ctx context.Context, contentType ...domain.ContentType) ([]*records.ContentRecord, error)
	GetIncompleteTranslations(ctx context.Context, contentType ...domain.ContentType) ([]IncompleteItem, error)
}

// ServiceOption configures the tracker.
type ServiceOption func(*service)

// WithLogger wires the logger used for operation telemetry.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock injects the time source used for record timestamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type service struct {
	store  records.Store
	logger interfaces.Logger
	now    func() time.Time
}

// NewService constructs the workflow tracker over a record store.
func NewService(store records.Store, opts ...ServiceOption) Service {
	s := &service{
		store:  store,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) GetProgress(ctx context.Context, contentID uuid.UUID, contentType domain.ContentType) (*Progress, error) {
	record, err := s.loadRecord(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}

	field, values, _ := record.PrimaryField()
	return &Progress{
		ContentID:            record.ID,
		ContentType:          record.ContentType,
		PrimaryField:         field,
		TotalLanguages:       len(languages.Supported),
		CompletedLanguages:   languages.Present(values),
		PendingLanguages:     languages.Missing(values),
		CompletionPercentage: languages.CompletenessPercent(values),
	}, nil
}

func (s *service) SubmitForReview(ctx context.Context, req SubmitForReviewRequest) (*records.ContentRecord, error) {
	if req.TranslatorID == uuid.Nil {
		return nil, ErrActorRequired
	}
	return s.transition(ctx, TransitionSubmitForReview, req.ContentID, req.ContentType, map[string]any{
		"translator_id": req.TranslatorID,
		"notes":         strings.TrimSpace(req.Notes),
	})
}

func (s *service) ApproveTranslation(ctx context.Context, req ReviewRequest) (*records.ContentRecord, error) {
	if req.ReviewerID == uuid.Nil {
		return nil, ErrActorRequired
	}
	return s.transition(ctx, TransitionApprove, req.ContentID, req.ContentType, map[string]any{
		"reviewer_id": req.ReviewerID,
	})
}

func (s *service) RejectTranslation(ctx context.Context, req ReviewRequest) (*records.ContentRecord, error) {
	if req.ReviewerID == uuid.Nil {
		return nil, ErrActorRequired
	}
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, ErrFeedbackRequired
	}
	return s.transition(ctx, TransitionReject, req.ContentID, req.ContentType, map[string]any{
		"reviewer_id": req.ReviewerID,
	})
}

func (s *service) UpdateLanguage(ctx context.Context, req UpdateLanguageRequest) (*records.ContentRecord, error) {
	if !languages.IsSupported(req.Language) {
		return nil, ErrLanguageInvalid
	}
	if len(req.FieldValues) == 0 {
		return nil, ErrNoFieldValues
	}

	record, err := s.loadRecord(ctx, req.ContentID, req.ContentType)
	if err != nil {
		return nil, err
	}

	if record.Fields == nil {
		record.Fields = map[string]languages.MultiLanguageText{}
	}
	for field, value := range req.FieldValues {
		values, ok := record.Fields[field]
		if !ok {
			if !isTranslatableField(field) {
				continue
			}
			values = languages.MultiLanguageText{}
		}
		values[req.Language] = value
		record.Fields[field] = values
	}
	record.UpdatedAt = s.now()

	updated, err := s.store.Update(ctx, record)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	s.opLogger("workflow.translations.update_language", map[string]any{
		"content_id": req.ContentID,
		"language":   req.Language,
	}).Info("language updated", "fields", len(req.FieldValues))
	return updated, nil
}

func (s *service) CopyTranslation(ctx context.Context, req CopyTranslationRequest) (*records.ContentRecord, error) {
	if !languages.IsSupported(req.FromLang) || !languages.IsSupported(req.ToLang) {
		return nil, ErrLanguageInvalid
	}

	record, err := s.loadRecord(ctx, req.ContentID, req.ContentType)
	if err != nil {
		return nil, err
	}

	copied := 0
	for _, field := range records.TranslatableFields {
		values, ok := record.Fields[field]
		if !ok {
			continue
		}
		if !languages.IsAvailable(values, req.FromLang) {
			continue
		}
		values[req.ToLang] = values[req.FromLang]
		record.Fields[field] = values
		copied++
	}
	if copied > 0 {
		record.UpdatedAt = s.now()
		updated, err := s.store.Update(ctx, record)
		if err != nil {
			return nil, wrapStoreError(err)
		}
		record = updated
	}

	s.opLogger("workflow.translations.copy", map[string]any{
		"content_id": req.ContentID,
		"from":       req.FromLang,
		"to":         req.ToLang,
	}).Info("translation copied", "fields", copied)
	return record, nil
}

func (s *service) GetPendingReviews(ctx context.Context, contentType ...domain.ContentType) ([]*records.ContentRecord, error) {
	opts := records.ListOptions{Status: domain.StatusPendingReview}
	if len(contentType) > 0 && contentType[0] != "" {
		if !domain.IsValidContentType(contentType[0]) {
			return nil, ErrContentTypeInvalid
		}
		opts.ContentType = contentType[0]
	}
	rows, _, err := s.store.List(ctx, opts)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	return rows, nil
}

func (s *service) GetIncompleteTranslations(ctx context.Context, contentType ...domain.ContentType) ([]IncompleteItem, error) {
	opts := records.ListOptions{}
	if len(contentType) > 0 && contentType[0] != "" {
		if !domain.IsValidContentType(contentType[0]) {
			return nil, ErrContentTypeInvalid
		}
		opts.ContentType = contentType[0]
	}
	rows, _, err := s.store.List(ctx, opts)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	items := make([]IncompleteItem, 0, len(rows))
	for _, record := range rows {
		_, values, _ := record.PrimaryField()
		missing := languages.Missing(values)
		if len(missing) == 0 {
			continue
		}
		items = append(items, IncompleteItem{
			Record:               record,
			MissingLanguages:     missing,
			CompletionPercentage: languages.CompletenessPercent(values),
		})
	}
	return items, nil
}

func (s *service) transition(ctx context.Context, name string, contentID uuid.UUID, contentType domain.ContentType, fields map[string]any) (*records.ContentRecord, error) {
	record, err := s.loadRecord(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}

	next, err := Apply(name, record.TranslationStatus)
	if err != nil {
		return nil, err
	}

	previous := record.TranslationStatus
	record.TranslationStatus = next
	record.UpdatedAt = s.now()

	updated, err := s.store.Update(ctx, record)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	fields["content_id"] = contentID
	fields["from"] = previous
	fields["to"] = next
	s.opLogger("workflow.translations."+name, fields).Info("status transition applied")
	return updated, nil
}

func (s *service) loadRecord(ctx context.Context, contentID uuid.UUID, contentType domain.ContentType) (*records.ContentRecord, error) {
	if contentID == uuid.Nil {
		return nil, ErrContentIDRequired
	}
	if contentType != "" && !domain.IsValidContentType(contentType) {
		return nil, ErrContentTypeInvalid
	}

	record, err := s.store.GetByID(ctx, contentID)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	if contentType != "" && record.ContentType != contentType {
		return nil, ErrContentTypeMismatch
	}
	return record, nil
}

func (s *service) opLogger(operation string, fields map[string]any) interfaces.Logger {
	merged := map[string]any{"operation": operation}
	for key, value := range fields {
		merged[key] = value
	}
	return logging.WithFields(s.logger, merged)
}

func isTranslatableField(field string) bool {
	for _, known := range records.TranslatableFields {
		if known == field {
			return true
		}
	}
	return false
}

func wrapStoreError(err error) error {
	if err == nil {
		return nil
	}

	code := CodeUnknown
	category := goerrors.CategoryCommand
	var notFound *records.NotFoundError
	if errors.As(err, &notFound) {
		code = CodeRecordNotFound
		category = repository.CategoryDatabaseNotFound
	}

	cause := err
	if !goerrors.IsWrapped(cause) {
		cause = goerrors.Wrap(err, category, "record store operation failed").
			WithTextCode(code)
	}
	return &OperationError{
		Code:    code,
		Message: err.Error(),
		Err:     cause,
	}
}
