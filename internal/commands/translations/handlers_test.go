package translationscmd

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-translations/internal/domain"
	"github.com/goliatone/go-translations/internal/languages"
	"github.com/goliatone/go-translations/internal/orchestrator"
	"github.com/goliatone/go-translations/internal/provider"
	"github.com/goliatone/go-translations/internal/records"
	"github.com/goliatone/go-translations/internal/translationcache"
	"github.com/goliatone/go-translations/internal/workflow"
	"github.com/google/uuid"
)

func seedTracker(t *testing.T) (workflow.Service, *records.ContentRecord) {
	t.Helper()
	store := records.NewMemoryStore()
	record, err := store.Create(context.Background(), &records.ContentRecord{
		ContentType: domain.ContentTypeProduct,
		Fields: map[string]languages.MultiLanguageText{
			"title": {languages.Chinese: "标题"},
		},
		TranslationStatus: domain.StatusDraft,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return workflow.NewService(store), record
}

func TestTranslateToAllHandler(t *testing.T) {
	stub := &provider.StubTranslator{}
	orch := orchestrator.New(stub, translationcache.New())
	handler := NewTranslateToAllHandler(orch, nil)

	err := handler.Execute(context.Background(), TranslateToAllCommand{
		SourceText:     "你好",
		SourceLanguage: "zh",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stub.Calls() != 1 {
		t.Fatalf("Calls = %d, want 1", stub.Calls())
	}
}

func TestTranslateToAllHandler_ValidationCategory(t *testing.T) {
	stub := &provider.StubTranslator{}
	orch := orchestrator.New(stub, translationcache.New())
	handler := NewTranslateToAllHandler(orch, nil)

	err := handler.Execute(context.Background(), TranslateToAllCommand{
		SourceText:     "",
		SourceLanguage: "zh",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if stub.Calls() != 0 {
		t.Fatal("validation failure must not reach the provider")
	}
}

func TestTranslateToAllCommand_RejectsUnknownTarget(t *testing.T) {
	err := TranslateToAllCommand{
		SourceText:     "hello",
		SourceLanguage: "en",
		Targets:        []string{"ja", "fr"},
	}.Validate()
	if err == nil {
		t.Fatal("expected target validation error")
	}
}

func TestSubmitForReviewHandler(t *testing.T) {
	tracker, record := seedTracker(t)
	handler := NewSubmitForReviewHandler(tracker, nil)

	err := handler.Execute(context.Background(), SubmitForReviewCommand{
		ContentID:    record.ID,
		ContentType:  "product",
		TranslatorID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	progress, err := tracker.GetProgress(context.Background(), record.ID, domain.ContentTypeProduct)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if progress.ContentID != record.ID {
		t.Fatalf("unexpected progress %+v", progress)
	}
	pending, err := tracker.GetPendingReviews(context.Background())
	if err != nil {
		t.Fatalf("GetPendingReviews() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
}

func TestRejectCommand_RequiresFeedback(t *testing.T) {
	tracker, record := seedTracker(t)
	handler := NewRejectTranslationHandler(tracker, nil)

	err := handler.Execute(context.Background(), RejectTranslationCommand{
		ContentID:   record.ID,
		ContentType: "product",
		ReviewerID:  uuid.New(),
	})
	if err == nil {
		t.Fatal("expected feedback validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestCopyTranslationHandler(t *testing.T) {
	tracker, record := seedTracker(t)
	handler := NewCopyTranslationHandler(tracker, nil)

	err := handler.Execute(context.Background(), CopyTranslationCommand{
		ContentID:   record.ID,
		ContentType: "product",
		FromLang:    "zh",
		ToLang:      "en",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	progress, err := tracker.GetProgress(context.Background(), record.ID, domain.ContentTypeProduct)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if progress.CompletionPercentage != 33 {
		t.Fatalf("CompletionPercentage = %d, want 33 after copy", progress.CompletionPercentage)
	}
}

func TestCopyCommand_RejectsSameLanguage(t *testing.T) {
	err := CopyTranslationCommand{
		ContentID:   uuid.New(),
		ContentType: "product",
		FromLang:    "zh",
		ToLang:      "zh",
	}.Validate()
	if err == nil {
		t.Fatal("expected same-language validation error")
	}
}
