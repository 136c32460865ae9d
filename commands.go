package translations

import (
	"github.com/goliatone/go-translations/internal/commands"
	translationscmd "github.com/goliatone/go-translations/internal/commands/translations"
)

// Command message re-exports so host dispatchers can construct and route the
// module's commands without importing internal packages.
type (
	TranslateToAllCommand     = translationscmd.TranslateToAllCommand
	SubmitForReviewCommand    = translationscmd.SubmitForReviewCommand
	ApproveTranslationCommand = translationscmd.ApproveTranslationCommand
	RejectTranslationCommand  = translationscmd.RejectTranslationCommand
	CopyTranslationCommand    = translationscmd.CopyTranslationCommand
)

// CommandHandlers bundles the module's command handlers, ready to register on
// a host dispatcher.
type CommandHandlers struct {
	TranslateToAll     *translationscmd.TranslateToAllHandler
	SubmitForReview    *translationscmd.SubmitForReviewHandler
	ApproveTranslation *translationscmd.ApproveTranslationHandler
	RejectTranslation  *translationscmd.RejectTranslationHandler
	CopyTranslation    *translationscmd.CopyTranslationHandler
}

// Commands builds the handler set over the module's orchestrator and workflow
// tracker.
func (m *Module) Commands() CommandHandlers {
	logger := commands.CommandLogger(m.container.LoggerProvider(), "translations")
	return CommandHandlers{
		TranslateToAll:     translationscmd.NewTranslateToAllHandler(m.container.Orchestrator(), logger),
		SubmitForReview:    translationscmd.NewSubmitForReviewHandler(m.container.Workflow(), logger),
		ApproveTranslation: translationscmd.NewApproveTranslationHandler(m.container.Workflow(), logger),
		RejectTranslation:  translationscmd.NewRejectTranslationHandler(m.container.Workflow(), logger),
		CopyTranslation:    translationscmd.NewCopyTranslationHandler(m.container.Workflow(), logger),
	}
}
