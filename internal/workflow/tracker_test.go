package workflow

import (
	"context"
	"errors"
	"reflect"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-translations/internal/domain"
	"github.com/goliatone/go-translations/internal/languages"
	"github.com/goliatone/go-translations/internal/records"
	"github.com/google/uuid"
)

func newTracker(t *testing.T) (Service, *records.MemoryStore) {
	t.Helper()
	store := records.NewMemoryStore()
	return NewService(store), store
}

func seedRecord(t *testing.T, store *records.MemoryStore, contentType domain.ContentType, fields map[string]languages.MultiLanguageText) *records.ContentRecord {
	t.Helper()
	record, err := store.Create(context.Background(), &records.ContentRecord{
		ContentType:       contentType,
		Fields:            fields,
		TranslationStatus: domain.StatusDraft,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return record
}

func TestTracker_ReviewLifecycle(t *testing.T) {
	svc, store := newTracker(t)
	ctx := context.Background()

	record := seedRecord(t, store, domain.ContentTypeProduct, map[string]languages.MultiLanguageText{
		"name": {languages.Chinese: "产品"},
	})
	translator := uuid.New()
	reviewer := uuid.New()

	if record.TranslationStatus != domain.StatusDraft {
		t.Fatalf("new record status = %s, want draft", record.TranslationStatus)
	}

	submitted, err := svc.SubmitForReview(ctx, SubmitForReviewRequest{
		ContentID:    record.ID,
		ContentType:  domain.ContentTypeProduct,
		TranslatorID: translator,
		Notes:        "ready",
	})
	if err != nil {
		t.Fatalf("SubmitForReview() error = %v", err)
	}
	if submitted.TranslationStatus != domain.StatusPendingReview {
		t.Fatalf("status after submit = %s", submitted.TranslationStatus)
	}

	persisted, _ := store.GetByID(ctx, record.ID)
	if persisted.TranslationStatus != domain.StatusPendingReview {
		t.Fatalf("persisted status = %s, want pending_review", persisted.TranslationStatus)
	}

	approved, err := svc.ApproveTranslation(ctx, ReviewRequest{
		ContentID:   record.ID,
		ContentType: domain.ContentTypeProduct,
		ReviewerID:  reviewer,
	})
	if err != nil {
		t.Fatalf("ApproveTranslation() error = %v", err)
	}
	if approved.TranslationStatus != domain.StatusPublished {
		t.Fatalf("status after approve = %s", approved.TranslationStatus)
	}

	// A published record can be resubmitted and rejected back to draft.
	if _, err := svc.SubmitForReview(ctx, SubmitForReviewRequest{
		ContentID:    record.ID,
		ContentType:  domain.ContentTypeProduct,
		TranslatorID: translator,
	}); err != nil {
		t.Fatalf("resubmit error = %v", err)
	}
	rejected, err := svc.RejectTranslation(ctx, ReviewRequest{
		ContentID:   record.ID,
		ContentType: domain.ContentTypeProduct,
		ReviewerID:  reviewer,
		Feedback:    "terminology is off",
	})
	if err != nil {
		t.Fatalf("RejectTranslation() error = %v", err)
	}
	if rejected.TranslationStatus != domain.StatusDraft {
		t.Fatalf("status after reject = %s", rejected.TranslationStatus)
	}
}

func TestTracker_TransitionGuards(t *testing.T) {
	svc, store := newTracker(t)
	ctx := context.Background()
	record := seedRecord(t, store, domain.ContentTypeArticle, nil)
	reviewer := uuid.New()

	if _, err := svc.ApproveTranslation(ctx, ReviewRequest{
		ContentID:   record.ID,
		ContentType: domain.ContentTypeArticle,
		ReviewerID:  reviewer,
	}); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("expected ErrTransitionNotAllowed approving a draft, got %v", err)
	}

	if _, err := svc.RejectTranslation(ctx, ReviewRequest{
		ContentID:   record.ID,
		ContentType: domain.ContentTypeArticle,
		ReviewerID:  reviewer,
	}); !errors.Is(err, ErrFeedbackRequired) {
		t.Fatalf("expected ErrFeedbackRequired, got %v", err)
	}

	if _, err := svc.SubmitForReview(ctx, SubmitForReviewRequest{
		ContentID:   record.ID,
		ContentType: domain.ContentTypeArticle,
	}); !errors.Is(err, ErrActorRequired) {
		t.Fatalf("expected ErrActorRequired, got %v", err)
	}
}

func TestTracker_GetProgress(t *testing.T) {
	svc, store := newTracker(t)
	record := seedRecord(t, store, domain.ContentTypeProduct, map[string]languages.MultiLanguageText{
		"name": {languages.Chinese: "a", languages.English: "b", languages.Japanese: "c"},
	})

	progress, err := svc.GetProgress(context.Background(), record.ID, domain.ContentTypeProduct)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if progress.PrimaryField != "name" {
		t.Fatalf("PrimaryField = %q", progress.PrimaryField)
	}
	if progress.CompletionPercentage != 50 {
		t.Fatalf("CompletionPercentage = %d, want 50", progress.CompletionPercentage)
	}
	want := []languages.Language{languages.Korean, languages.Arabic, languages.Spanish}
	if !reflect.DeepEqual(progress.PendingLanguages, want) {
		t.Fatalf("PendingLanguages = %v, want %v", progress.PendingLanguages, want)
	}
	if progress.TotalLanguages != len(languages.Supported) {
		t.Fatalf("TotalLanguages = %d", progress.TotalLanguages)
	}
}

func TestTracker_GetProgressPrefersTitleOverDescription(t *testing.T) {
	svc, store := newTracker(t)
	record := seedRecord(t, store, domain.ContentTypeArticle, map[string]languages.MultiLanguageText{
		"title":       {languages.English: "t"},
		"description": {languages.English: "d", languages.Chinese: "d"},
	})

	progress, err := svc.GetProgress(context.Background(), record.ID, domain.ContentTypeArticle)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if progress.PrimaryField != "title" {
		t.Fatalf("PrimaryField = %q, want title", progress.PrimaryField)
	}
}

func TestTracker_UpdateLanguageMerges(t *testing.T) {
	svc, store := newTracker(t)
	record := seedRecord(t, store, domain.ContentTypeProduct, map[string]languages.MultiLanguageText{
		"name": {languages.Chinese: "产品"},
	})

	updated, err := svc.UpdateLanguage(context.Background(), UpdateLanguageRequest{
		ContentID:   record.ID,
		ContentType: domain.ContentTypeProduct,
		Language:    languages.English,
		FieldValues: map[string]string{
			"name":        "Product",
			"description": "A fine product",
			"unknown":     "dropped",
		},
	})
	if err != nil {
		t.Fatalf("UpdateLanguage() error = %v", err)
	}

	name := updated.Fields["name"]
	if name[languages.Chinese] != "产品" || name[languages.English] != "Product" {
		t.Fatalf("expected merge to preserve existing languages, got %+v", name)
	}
	if updated.Fields["description"][languages.English] != "A fine product" {
		t.Fatalf("expected translatable field to be created, got %+v", updated.Fields)
	}
	if _, ok := updated.Fields["unknown"]; ok {
		t.Fatal("unknown fields must not be created")
	}
}

func TestTracker_CopyTranslation(t *testing.T) {
	svc, store := newTracker(t)
	record := seedRecord(t, store, domain.ContentTypeProduct, map[string]languages.MultiLanguageText{
		"title":       {languages.Chinese: "标题"},
		"description": {languages.English: "only english"},
	})

	copied, err := svc.CopyTranslation(context.Background(), CopyTranslationRequest{
		ContentID:   record.ID,
		ContentType: domain.ContentTypeProduct,
		FromLang:    languages.Chinese,
		ToLang:      languages.English,
	})
	if err != nil {
		t.Fatalf("CopyTranslation() error = %v", err)
	}

	title := copied.Fields["title"]
	if title[languages.Chinese] != "标题" || title[languages.English] != "标题" {
		t.Fatalf("expected verbatim copy, got %+v", title)
	}
	// Fields lacking the source language stay untouched.
	if _, ok := copied.Fields["description"][languages.Chinese]; ok {
		t.Fatalf("description must not gain languages, got %+v", copied.Fields["description"])
	}
}

func TestTracker_GetPendingReviews(t *testing.T) {
	svc, store := newTracker(t)
	ctx := context.Background()

	product := seedRecord(t, store, domain.ContentTypeProduct, nil)
	article := seedRecord(t, store, domain.ContentTypeArticle, nil)
	translator := uuid.New()

	for _, record := range []*records.ContentRecord{product, article} {
		if _, err := svc.SubmitForReview(ctx, SubmitForReviewRequest{
			ContentID:    record.ID,
			ContentType:  record.ContentType,
			TranslatorID: translator,
		}); err != nil {
			t.Fatalf("SubmitForReview() error = %v", err)
		}
	}
	seedRecord(t, store, domain.ContentTypePage, nil)

	all, err := svc.GetPendingReviews(ctx)
	if err != nil {
		t.Fatalf("GetPendingReviews() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetPendingReviews() = %d records, want 2", len(all))
	}

	onlyArticles, err := svc.GetPendingReviews(ctx, domain.ContentTypeArticle)
	if err != nil {
		t.Fatalf("GetPendingReviews(article) error = %v", err)
	}
	if len(onlyArticles) != 1 || onlyArticles[0].ContentType != domain.ContentTypeArticle {
		t.Fatalf("GetPendingReviews(article) = %+v", onlyArticles)
	}
}

func TestTracker_GetIncompleteTranslations(t *testing.T) {
	svc, store := newTracker(t)

	seedRecord(t, store, domain.ContentTypeProduct, map[string]languages.MultiLanguageText{
		"name": {
			languages.Chinese: "a", languages.English: "b", languages.Japanese: "c",
			languages.Korean: "d", languages.Arabic: "e", languages.Spanish: "f",
		},
	})
	partial := seedRecord(t, store, domain.ContentTypeProduct, map[string]languages.MultiLanguageText{
		"name": {languages.Chinese: "只有中文"},
	})

	items, err := svc.GetIncompleteTranslations(context.Background())
	if err != nil {
		t.Fatalf("GetIncompleteTranslations() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 incomplete record, got %d", len(items))
	}
	if items[0].Record.ID != partial.ID {
		t.Fatalf("unexpected record %+v", items[0].Record)
	}
	if items[0].CompletionPercentage != 17 {
		t.Fatalf("CompletionPercentage = %d, want 17", items[0].CompletionPercentage)
	}
}

func TestTracker_StoreErrorsCarryCodes(t *testing.T) {
	svc, _ := newTracker(t)

	_, err := svc.GetProgress(context.Background(), uuid.New(), domain.ContentTypeProduct)
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %v", err)
	}
	if opErr.Code != CodeRecordNotFound {
		t.Fatalf("Code = %s, want %s", opErr.Code, CodeRecordNotFound)
	}
	if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		t.Fatalf("expected database not-found category, got %v", err)
	}
}

type failingStore struct {
	records.Store
	err error
}

func (f *failingStore) GetByID(context.Context, uuid.UUID) (*records.ContentRecord, error) {
	return nil, f.err
}

func TestTracker_UnknownStoreErrorsDefaultCode(t *testing.T) {
	svc := NewService(&failingStore{err: errors.New("connection reset")})

	_, err := svc.GetProgress(context.Background(), uuid.New(), domain.ContentTypeProduct)
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %v", err)
	}
	if opErr.Code != CodeUnknown {
		t.Fatalf("Code = %s, want %s", opErr.Code, CodeUnknown)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestTracker_ContentTypeMismatch(t *testing.T) {
	svc, store := newTracker(t)
	record := seedRecord(t, store, domain.ContentTypeProduct, nil)

	if _, err := svc.GetProgress(context.Background(), record.ID, domain.ContentTypeArticle); !errors.Is(err, ErrContentTypeMismatch) {
		t.Fatalf("expected ErrContentTypeMismatch, got %v", err)
	}
	if _, err := svc.GetProgress(context.Background(), record.ID, domain.ContentType("banner")); !errors.Is(err, ErrContentTypeInvalid) {
		t.Fatalf("expected ErrContentTypeInvalid, got %v", err)
	}
}

func TestApply_TransitionTable(t *testing.T) {
	if _, err := Apply("promote", domain.StatusDraft); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("expected unknown transition error, got %v", err)
	}
	next, err := Apply(TransitionSubmitForReview, domain.StatusDraft)
	if err != nil || next != domain.StatusPendingReview {
		t.Fatalf("Apply(submit, draft) = %s, %v", next, err)
	}

	available := AvailableTransitions(domain.StatusPendingReview)
	want := []string{TransitionApprove, TransitionReject}
	if !reflect.DeepEqual(available, want) {
		t.Fatalf("AvailableTransitions = %v, want %v", available, want)
	}
}
