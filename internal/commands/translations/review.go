package translationscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-translations/internal/commands"
	"github.com/goliatone/go-translations/internal/domain"
	"github.com/goliatone/go-translations/internal/workflow"
	"github.com/goliatone/go-translations/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	submitForReviewMessageType = "translations.submit_for_review"
	approveMessageType         = "translations.approve"
	rejectMessageType          = "translations.reject"
)

// SubmitForReviewCommand moves a record into review.
type SubmitForReviewCommand struct {
	ContentID    uuid.UUID `json:"content_id"`
	ContentType  string    `json:"content_type"`
	TranslatorID uuid.UUID `json:"translator_id"`
	Notes        string    `json:"notes,omitempty"`
}

// Type implements command.Message.
func (SubmitForReviewCommand) Type() string { return submitForReviewMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SubmitForReviewCommand) Validate() error {
	errs := validation.Errors{}
	if m.ContentID == uuid.Nil {
		errs["content_id"] = validation.NewError("translations.submit_for_review.content_id_required", "content_id is required")
	}
	if !domain.IsValidContentType(domain.ContentType(m.ContentType)) {
		errs["content_type"] = validation.NewError("translations.submit_for_review.content_type_invalid", "content_type is not recognized")
	}
	if m.TranslatorID == uuid.Nil {
		errs["translator_id"] = validation.NewError("translations.submit_for_review.translator_id_required", "translator_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmitForReviewHandler submits records for review via the workflow tracker.
type SubmitForReviewHandler struct {
	inner *commands.Handler[SubmitForReviewCommand]
}

// NewSubmitForReviewHandler constructs a handler wired to the provided tracker.
func NewSubmitForReviewHandler(service workflow.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SubmitForReviewCommand]) *SubmitForReviewHandler {
	exec := func(ctx context.Context, msg SubmitForReviewCommand) error {
		_, err := service.SubmitForReview(ctx, workflow.SubmitForReviewRequest{
			ContentID:    msg.ContentID,
			ContentType:  domain.ContentType(msg.ContentType),
			TranslatorID: msg.TranslatorID,
			Notes:        msg.Notes,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[SubmitForReviewCommand]{
		commands.WithLogger[SubmitForReviewCommand](logger),
		commands.WithOperation[SubmitForReviewCommand]("translations.submit_for_review"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SubmitForReviewHandler{
		inner: commands.NewHandler[SubmitForReviewCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SubmitForReviewCommand].Execute.
func (h *SubmitForReviewHandler) Execute(ctx context.Context, msg SubmitForReviewCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ApproveTranslationCommand publishes a record pending review.
type ApproveTranslationCommand struct {
	ContentID   uuid.UUID `json:"content_id"`
	ContentType string    `json:"content_type"`
	ReviewerID  uuid.UUID `json:"reviewer_id"`
	Feedback    string    `json:"feedback,omitempty"`
}

// Type implements command.Message.
func (ApproveTranslationCommand) Type() string { return approveMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m ApproveTranslationCommand) Validate() error {
	return validateReview(m.ContentID, m.ContentType, m.ReviewerID, "translations.approve", false, m.Feedback)
}

// ApproveTranslationHandler approves pending reviews via the workflow tracker.
type ApproveTranslationHandler struct {
	inner *commands.Handler[ApproveTranslationCommand]
}

// NewApproveTranslationHandler constructs a handler wired to the provided tracker.
func NewApproveTranslationHandler(service workflow.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ApproveTranslationCommand]) *ApproveTranslationHandler {
	exec := func(ctx context.Context, msg ApproveTranslationCommand) error {
		_, err := service.ApproveTranslation(ctx, workflow.ReviewRequest{
			ContentID:   msg.ContentID,
			ContentType: domain.ContentType(msg.ContentType),
			ReviewerID:  msg.ReviewerID,
			Feedback:    msg.Feedback,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ApproveTranslationCommand]{
		commands.WithLogger[ApproveTranslationCommand](logger),
		commands.WithOperation[ApproveTranslationCommand]("translations.approve"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ApproveTranslationHandler{
		inner: commands.NewHandler[ApproveTranslationCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ApproveTranslationCommand].Execute.
func (h *ApproveTranslationHandler) Execute(ctx context.Context, msg ApproveTranslationCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RejectTranslationCommand sends a pending review back to draft. Feedback for
// the translator is mandatory.
type RejectTranslationCommand struct {
	ContentID   uuid.UUID `json:"content_id"`
	ContentType string    `json:"content_type"`
	ReviewerID  uuid.UUID `json:"reviewer_id"`
	Feedback    string    `json:"feedback"`
}

// Type implements command.Message.
func (RejectTranslationCommand) Type() string { return rejectMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m RejectTranslationCommand) Validate() error {
	return validateReview(m.ContentID, m.ContentType, m.ReviewerID, "translations.reject", true, m.Feedback)
}

// RejectTranslationHandler rejects pending reviews via the workflow tracker.
type RejectTranslationHandler struct {
	inner *commands.Handler[RejectTranslationCommand]
}

// NewRejectTranslationHandler constructs a handler wired to the provided tracker.
func NewRejectTranslationHandler(service workflow.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RejectTranslationCommand]) *RejectTranslationHandler {
	exec := func(ctx context.Context, msg RejectTranslationCommand) error {
		_, err := service.RejectTranslation(ctx, workflow.ReviewRequest{
			ContentID:   msg.ContentID,
			ContentType: domain.ContentType(msg.ContentType),
			ReviewerID:  msg.ReviewerID,
			Feedback:    msg.Feedback,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[RejectTranslationCommand]{
		commands.WithLogger[RejectTranslationCommand](logger),
		commands.WithOperation[RejectTranslationCommand]("translations.reject"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RejectTranslationHandler{
		inner: commands.NewHandler[RejectTranslationCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RejectTranslationCommand].Execute.
func (h *RejectTranslationHandler) Execute(ctx context.Context, msg RejectTranslationCommand) error {
	return h.inner.Execute(ctx, msg)
}

func validateReview(contentID uuid.UUID, contentType string, reviewerID uuid.UUID, prefix string, requireFeedback bool, feedback string) error {
	errs := validation.Errors{}
	if contentID == uuid.Nil {
		errs["content_id"] = validation.NewError(prefix+".content_id_required", "content_id is required")
	}
	if !domain.IsValidContentType(domain.ContentType(contentType)) {
		errs["content_type"] = validation.NewError(prefix+".content_type_invalid", "content_type is not recognized")
	}
	if reviewerID == uuid.Nil {
		errs["reviewer_id"] = validation.NewError(prefix+".reviewer_id_required", "reviewer_id is required")
	}
	if requireFeedback && strings.TrimSpace(feedback) == "" {
		errs["feedback"] = validation.NewError(prefix+".feedback_required", "feedback is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
