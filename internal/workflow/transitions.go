package workflow

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-translations/internal/domain"
)

// ErrTransitionNotAllowed indicates the requested lifecycle change is not in
// the transition table for the record's current status.
var ErrTransitionNotAllowed = errors.New("workflow: transition not allowed")

// Transition declares an allowed move between two lifecycle stages.
type Transition struct {
	Name string
	From []domain.TranslationStatus
	To   domain.TranslationStatus
}

const (
	TransitionSubmitForReview = "submit_for_review"
	TransitionApprove         = "approve"
	TransitionReject          = "reject"
)

// transitions is the review state machine: draft → pending_review →
// published, with reject returning to draft. Submission is also allowed from
// published so already-live content can be re-reviewed after edits. There is
// no completeness gate anywhere in the table: incomplete translations may be
// submitted and published.
var transitions = []Transition{
	{
		Name: TransitionSubmitForReview,
		From: []domain.TranslationStatus{domain.StatusDraft, domain.StatusPublished},
		To:   domain.StatusPendingReview,
	},
	{
		Name: TransitionApprove,
		From: []domain.TranslationStatus{domain.StatusPendingReview},
		To:   domain.StatusPublished,
	},
	{
		Name: TransitionReject,
		From: []domain.TranslationStatus{domain.StatusPendingReview},
		To:   domain.StatusDraft,
	},
}

// Apply resolves the named transition against the current status, returning
// the target status or ErrTransitionNotAllowed.
func Apply(name string, current domain.TranslationStatus) (domain.TranslationStatus, error) {
	for _, tr := range transitions {
		if tr.Name != name {
			continue
		}
		for _, from := range tr.From {
			if from == current {
				return tr.To, nil
			}
		}
		return "", fmt.Errorf("%w: %s from %s", ErrTransitionNotAllowed, name, current)
	}
	return "", fmt.Errorf("%w: unknown transition %s", ErrTransitionNotAllowed, name)
}

// AvailableTransitions lists the transition names usable from a status.
func AvailableTransitions(current domain.TranslationStatus) []string {
	names := make([]string, 0, len(transitions))
	for _, tr := range transitions {
		for _, from := range tr.From {
			if from == current {
				names = append(names, tr.Name)
				break
			}
		}
	}
	return names
}
