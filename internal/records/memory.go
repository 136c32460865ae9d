package records

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation for scaffolding and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*ContentRecord
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]*ContentRecord),
		now:     time.Now,
	}
}

// Create inserts the supplied record, assigning an ID when absent.
func (m *MemoryStore) Create(_ context.Context, record *ContentRecord) (*ContentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneRecord(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = m.now()
	}
	copied.UpdatedAt = copied.CreatedAt
	m.records[copied.ID] = copied
	return cloneRecord(copied), nil
}

// GetByID retrieves a record by identifier.
func (m *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*ContentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "content_record", Key: id.String()}
	}
	return cloneRecord(record), nil
}

// List returns records matching opts, newest first, with the pre-pagination total.
func (m *MemoryStore) List(_ context.Context, opts ListOptions) ([]*ContentRecord, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*ContentRecord, 0, len(m.records))
	for _, record := range m.records {
		if opts.ContentType != "" && record.ContentType != opts.ContentType {
			continue
		}
		if opts.Status != "" && record.TranslationStatus != opts.Status {
			continue
		}
		matched = append(matched, cloneRecord(record))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if opts.PageSize > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * opts.PageSize
		if start >= total {
			return []*ContentRecord{}, total, nil
		}
		end := start + opts.PageSize
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

// Update replaces a stored record.
func (m *MemoryStore) Update(_ context.Context, record *ContentRecord) (*ContentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "content_record", Key: record.ID.String()}
	}
	copied := cloneRecord(record)
	copied.CreatedAt = existing.CreatedAt
	copied.UpdatedAt = m.now()
	m.records[copied.ID] = copied
	return cloneRecord(copied), nil
}

// Delete removes a record.
func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return &NotFoundError{Resource: "content_record", Key: id.String()}
	}
	delete(m.records, id)
	return nil
}
