package records

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/goliatone/go-translations/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunStore implements Store on a Bun-backed database with optional caching.
type BunStore struct {
	repo repository.Repository[*ContentRecord]
}

// NewBunStore creates a record store without caching.
func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache creates a record store wrapped with the caching services.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunStore {
	base := newRecordRepository(db)
	wrapped := base
	if cacheService != nil && keySerializer != nil {
		wrapped = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunStore{repo: wrapped}
}

func newRecordRepository(db *bun.DB) repository.Repository[*ContentRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ContentRecord]{
		NewRecord: func() *ContentRecord { return &ContentRecord{} },
		GetID: func(r *ContentRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *ContentRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *ContentRecord) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}

// Create inserts the record.
func (s *BunStore) Create(ctx context.Context, record *ContentRecord) (*ContentRecord, error) {
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("content_record repository error: %w", err)
	}
	return created, nil
}

// GetByID retrieves a record by identifier.
func (s *BunStore) GetByID(ctx context.Context, id uuid.UUID) (*ContentRecord, error) {
	record, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

// List returns records matching opts, newest first, with the pre-pagination total.
func (s *BunStore) List(ctx context.Context, opts ListOptions) ([]*ContentRecord, int, error) {
	criteria := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return applyRecordFilters(q, opts)
		}),
	}
	if opts.PageSize > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		criteria = append(criteria, repository.SelectPaginate(opts.PageSize, (page-1)*opts.PageSize))
	}
	records, total, err := s.repo.List(ctx, criteria...)
	if err != nil {
		return nil, 0, fmt.Errorf("content_record repository error: %w", err)
	}
	return records, total, nil
}

// Update persists the full translatable payload and lifecycle columns.
func (s *BunStore) Update(ctx context.Context, record *ContentRecord) (*ContentRecord, error) {
	updated, err := s.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"content_type",
			"fields",
			"translation_status",
			"is_published",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return updated, nil
}

// Delete removes a record by identifier.
func (s *BunStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, &ContentRecord{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

func applyRecordFilters(q *bun.SelectQuery, opts ListOptions) *bun.SelectQuery {
	if opts.ContentType != "" && domain.IsValidContentType(opts.ContentType) {
		q = q.Where("?TableAlias.content_type = ?", string(opts.ContentType))
	}
	if opts.Status != "" && domain.IsValidStatus(opts.Status) {
		q = q.Where("?TableAlias.translation_status = ?", string(opts.Status))
	}
	return q.Order("created_at DESC")
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: "content_record",
			Key:      key,
		}
	}
	return fmt.Errorf("content_record repository error: %w", err)
}
