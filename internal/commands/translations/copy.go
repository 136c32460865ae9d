package translationscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-translations/internal/commands"
	"github.com/goliatone/go-translations/internal/domain"
	"github.com/goliatone/go-translations/internal/languages"
	"github.com/goliatone/go-translations/internal/workflow"
	"github.com/goliatone/go-translations/pkg/interfaces"
	"github.com/google/uuid"
)

const copyTranslationMessageType = "translations.copy"

// CopyTranslationCommand duplicates one language's field values into another
// language on the same record. The copy is verbatim, not a translation call.
type CopyTranslationCommand struct {
	ContentID   uuid.UUID `json:"content_id"`
	ContentType string    `json:"content_type"`
	FromLang    string    `json:"from_lang"`
	ToLang      string    `json:"to_lang"`
}

// Type implements command.Message.
func (CopyTranslationCommand) Type() string { return copyTranslationMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m CopyTranslationCommand) Validate() error {
	errs := validation.Errors{}
	if m.ContentID == uuid.Nil {
		errs["content_id"] = validation.NewError("translations.copy.content_id_required", "content_id is required")
	}
	if !domain.IsValidContentType(domain.ContentType(m.ContentType)) {
		errs["content_type"] = validation.NewError("translations.copy.content_type_invalid", "content_type is not recognized")
	}
	if _, ok := languages.Parse(m.FromLang); !ok {
		errs["from_lang"] = validation.NewError("translations.copy.from_lang_invalid", "from_lang is not supported")
	}
	if _, ok := languages.Parse(m.ToLang); !ok {
		errs["to_lang"] = validation.NewError("translations.copy.to_lang_invalid", "to_lang is not supported")
	}
	if len(errs) == 0 && m.FromLang == m.ToLang {
		errs["to_lang"] = validation.NewError("translations.copy.same_language", "to_lang must differ from from_lang")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CopyTranslationHandler copies field values across languages via the
// workflow tracker.
type CopyTranslationHandler struct {
	inner *commands.Handler[CopyTranslationCommand]
}

// NewCopyTranslationHandler constructs a handler wired to the provided tracker.
func NewCopyTranslationHandler(service workflow.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CopyTranslationCommand]) *CopyTranslationHandler {
	exec := func(ctx context.Context, msg CopyTranslationCommand) error {
		from, _ := languages.Parse(msg.FromLang)
		to, _ := languages.Parse(msg.ToLang)
		_, err := service.CopyTranslation(ctx, workflow.CopyTranslationRequest{
			ContentID:   msg.ContentID,
			ContentType: domain.ContentType(msg.ContentType),
			FromLang:    from,
			ToLang:      to,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CopyTranslationCommand]{
		commands.WithLogger[CopyTranslationCommand](logger),
		commands.WithOperation[CopyTranslationCommand]("translations.copy"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CopyTranslationHandler{
		inner: commands.NewHandler[CopyTranslationCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CopyTranslationCommand].Execute.
func (h *CopyTranslationHandler) Execute(ctx context.Context, msg CopyTranslationCommand) error {
	return h.inner.Execute(ctx, msg)
}
