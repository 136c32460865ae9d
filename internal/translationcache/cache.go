package translationcache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-translations/internal/identity"
	"github.com/goliatone/go-translations/pkg/interfaces"
)

const (
	// DefaultTTL bounds how long a cached translation stays servable.
	DefaultTTL = 24 * time.Hour
	// DefaultMaxEntries bounds cache memory; the oldest-inserted entry is
	// evicted first when the bound is exceeded.
	DefaultMaxEntries = 1000
)

// Cache is a TTL plus insertion-order bounded store of provider results.
// Eviction is FIFO on insertion order: Get never bumps an entry. Shared
// across orchestrator sessions so unrelated callers benefit from each
// other's hits.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	order      []string
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

type entry struct {
	result     interfaces.TranslationResult
	insertedAt time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMaxEntries overrides the default capacity.
func WithMaxEntries(max int) Option {
	return func(c *Cache) {
		if max > 0 {
			c.maxEntries = max
		}
	}
}

// WithClock injects the time source used for expiry checks.
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) {
		if clock != nil {
			c.now = clock
		}
	}
}

// New constructs a Cache with the default TTL and capacity.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    map[string]*entry{},
		maxEntries: DefaultMaxEntries,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the deterministic cache key for a translation request. Targets
// are sorted so logically identical target sets share a key regardless of
// request order; the source text contributes a full-text digest, so long
// near-duplicate texts do not collide.
func Key(sourceText, sourceLanguage string, targets []string, format interfaces.TextFormat) string {
	sorted := make([]string, 0, len(targets))
	for _, target := range targets {
		trimmed := strings.ToLower(strings.TrimSpace(target))
		if trimmed == "" {
			continue
		}
		sorted = append(sorted, trimmed)
	}
	sort.Strings(sorted)

	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(sourceLanguage)))
	b.WriteByte(':')
	b.WriteString(strings.Join(sorted, "+"))
	b.WriteByte(':')
	b.WriteString(string(format))
	b.WriteByte(':')
	b.WriteString(identity.TextDigest(sourceText))
	return b.String()
}

// Get returns the cached result for key. Entries older than the TTL are
// evicted as a side effect and reported as misses.
func (c *Cache) Get(key string) (interfaces.TranslationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		return interfaces.TranslationResult{}, false
	}
	if c.now().Sub(ent.insertedAt) > c.ttl {
		c.removeLocked(key)
		return interfaces.TranslationResult{}, false
	}
	return ent.result, true
}

// Set inserts or overwrites the result for key. When the insert would exceed
// capacity the single oldest-inserted entry is evicted first; check-and-evict
// plus insert happen under one lock so no caller observes the cache above
// capacity.
func (c *Cache) Set(key string, result interfaces.TranslationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, result)
}

// SetBatch records a batch result under batchKey and also derives a
// per-language entry for every succeeded target, so a later single-language
// request for an already-translated language is a hit. The dual write is part
// of the cache contract, not an optimization.
func (c *Cache) SetBatch(sourceText, sourceLanguage string, format interfaces.TextFormat, result interfaces.TranslationResult, targets []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setLocked(Key(sourceText, sourceLanguage, targets, format), result)
	for lang, text := range result.Translations {
		single := interfaces.TranslationResult{Translations: map[string]string{lang: text}}
		c.setLocked(Key(sourceText, sourceLanguage, []string{lang}, format), single)
	}
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*entry{}
	c.order = c.order[:0]
}

// Size reports the number of live entries.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) setLocked(key string, result interfaces.TranslationResult) {
	if existing, ok := c.entries[key]; ok {
		existing.result = result
		existing.insertedAt = c.now()
		// An overwrite counts as a fresh insertion, so the key also moves
		// to the back of the eviction order.
		c.moveToBackLocked(key)
		return
	}
	if len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = &entry{result: result, insertedAt: c.now()}
	c.order = append(c.order, key)
}

func (c *Cache) moveToBackLocked(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(append(c.order[:i], c.order[i+1:]...), key)
			return
		}
	}
}

func (c *Cache) evictOldestLocked() {
	for len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if _, ok := c.entries[oldest]; ok {
			delete(c.entries, oldest)
			return
		}
	}
}

func (c *Cache) removeLocked(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
