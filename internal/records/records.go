package records

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-translations/internal/domain"
	"github.com/goliatone/go-translations/internal/languages"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TranslatableFields is the fixed set of per-language fields a content record
// may carry. CopyTranslation and completeness audits iterate this set.
var TranslatableFields = []string{"name", "title", "description", "summary", "content"}

// PrimaryFields orders the fields used to judge a record's translation
// completeness: the first field present on the record wins.
var PrimaryFields = []string{"name", "title", "description"}

// ContentRecord is a translatable content row. Fields maps a field name to
// its per-language values; TranslationStatus tracks the review lifecycle
// independently of which languages are filled in.
type ContentRecord struct {
	bun.BaseModel `bun:"table:content_records,alias:cr"`

	ID                uuid.UUID                                `bun:",pk,type:uuid" json:"id"`
	ContentType       domain.ContentType                       `bun:"content_type,notnull" json:"content_type"`
	Fields            map[string]languages.MultiLanguageText   `bun:"fields,type:jsonb,notnull" json:"fields"`
	TranslationStatus domain.TranslationStatus                 `bun:"translation_status,notnull,default:'draft'" json:"translation_status"`
	IsPublished       bool                                     `bun:"is_published,notnull,default:false" json:"is_published"`
	CreatedAt         time.Time                                `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time                                `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// PrimaryField returns the record's primary translatable field following the
// PrimaryFields preference order. The boolean is false when none is present.
func (r *ContentRecord) PrimaryField() (string, languages.MultiLanguageText, bool) {
	if r == nil {
		return "", nil, false
	}
	for _, field := range PrimaryFields {
		if values, ok := r.Fields[field]; ok {
			return field, values, true
		}
	}
	return "", nil, false
}

// ListOptions filters and paginates record listings. Zero values mean "no
// filter" / "no pagination".
type ListOptions struct {
	ContentType domain.ContentType
	Status      domain.TranslationStatus
	Page        int
	PageSize    int
}

// Store is the record persistence boundary consumed by the workflow tracker.
// Implementations return defensive copies; callers may mutate results freely.
type Store interface {
	Create(ctx context.Context, record *ContentRecord) (*ContentRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ContentRecord, error)
	List(ctx context.Context, opts ListOptions) ([]*ContentRecord, int, error)
	Update(ctx context.Context, record *ContentRecord) (*ContentRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError reports a missing record lookup.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("records: %s %q not found", e.Resource, e.Key)
}

func cloneRecord(record *ContentRecord) *ContentRecord {
	if record == nil {
		return nil
	}
	copied := *record
	copied.Fields = cloneFields(record.Fields)
	return &copied
}

func cloneFields(fields map[string]languages.MultiLanguageText) map[string]languages.MultiLanguageText {
	if fields == nil {
		return nil
	}
	out := make(map[string]languages.MultiLanguageText, len(fields))
	for field, values := range fields {
		copied := make(languages.MultiLanguageText, len(values))
		for lang, text := range values {
			copied[lang] = text
		}
		out[field] = copied
	}
	return out
}
