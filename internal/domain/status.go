package domain

import "strings"

// TranslationStatus represents the publication lifecycle stage of a content
// record, independent of which languages are filled in.
type TranslationStatus string

const (
	// StatusDraft indicates translations still under preparation.
	StatusDraft TranslationStatus = "draft"
	// StatusPendingReview marks translations submitted for editorial review.
	StatusPendingReview TranslationStatus = "pending_review"
	// StatusPublished identifies translations approved for public rendering.
	StatusPublished TranslationStatus = "published"
)

// Statuses lists the lifecycle stages in transition order.
var Statuses = []TranslationStatus{StatusDraft, StatusPendingReview, StatusPublished}

// IsValidStatus reports whether value belongs to the closed status set.
func IsValidStatus(value TranslationStatus) bool {
	switch value {
	case StatusDraft, StatusPendingReview, StatusPublished:
		return true
	default:
		return false
	}
}

// ParseStatus coerces arbitrary status strings into the closed set. Empty
// input maps to draft; unrecognized values are rejected.
func ParseStatus(input string) (TranslationStatus, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return StatusDraft, true
	}
	status := TranslationStatus(trimmed)
	if !IsValidStatus(status) {
		return "", false
	}
	return status, true
}
