package translationscmd

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-translations/internal/commands"
	"github.com/goliatone/go-translations/internal/languages"
	"github.com/goliatone/go-translations/internal/orchestrator"
	"github.com/goliatone/go-translations/pkg/interfaces"
)

const translateToAllMessageType = "translations.translate_to_all"

// TranslateToAllCommand requests translation of one source text into every
// supported language, or an explicit target subset.
type TranslateToAllCommand struct {
	SourceText     string   `json:"source_text"`
	SourceLanguage string   `json:"source_language"`
	Targets        []string `json:"targets,omitempty"`
	Format         string   `json:"format,omitempty"`
}

// Type implements command.Message.
func (TranslateToAllCommand) Type() string { return translateToAllMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m TranslateToAllCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.SourceText) == "" {
		errs["source_text"] = validation.NewError("translations.translate_to_all.source_text_required", "source_text is required")
	}
	if _, ok := languages.Parse(m.SourceLanguage); !ok {
		errs["source_language"] = validation.NewError("translations.translate_to_all.source_language_invalid", "source_language is not supported")
	}
	for _, target := range m.Targets {
		if _, ok := languages.Parse(target); !ok {
			errs["targets"] = validation.NewError("translations.translate_to_all.target_invalid", "targets contains an unsupported language")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TranslateToAllHandler drives the orchestrator through the shared command
// handler foundation. Partial successes settle without error; only a fully
// failed call surfaces one.
type TranslateToAllHandler struct {
	inner *commands.Handler[TranslateToAllCommand]
}

// NewTranslateToAllHandler constructs a handler wired to the provided orchestrator.
func NewTranslateToAllHandler(orch *orchestrator.Orchestrator, logger interfaces.Logger, opts ...commands.HandlerOption[TranslateToAllCommand]) *TranslateToAllHandler {
	exec := func(ctx context.Context, msg TranslateToAllCommand) error {
		source, _ := languages.Parse(msg.SourceLanguage)
		targets := make([]languages.Language, 0, len(msg.Targets))
		for _, raw := range msg.Targets {
			if lang, ok := languages.Parse(raw); ok {
				targets = append(targets, lang)
			}
		}

		resp, err := orch.TranslateToAll(ctx, source, msg.SourceText, interfaces.TextFormat(msg.Format), targets...)
		if err != nil {
			return err
		}
		if !resp.Usable() {
			return errors.New(resp.Message)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[TranslateToAllCommand]{
		commands.WithLogger[TranslateToAllCommand](logger),
		commands.WithOperation[TranslateToAllCommand]("translations.translate_to_all"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &TranslateToAllHandler{
		inner: commands.NewHandler[TranslateToAllCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[TranslateToAllCommand].Execute.
func (h *TranslateToAllHandler) Execute(ctx context.Context, msg TranslateToAllCommand) error {
	return h.inner.Execute(ctx, msg)
}
