package translationcache

import (
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-translations/pkg/interfaces"
)

func result(lang, text string) interfaces.TranslationResult {
	return interfaces.TranslationResult{Translations: map[string]string{lang: text}}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("hello", "en", []string{"ja", "ko"}, interfaces.FormatPlain)
	b := Key("hello", "en", []string{"ko", "ja"}, interfaces.FormatPlain)
	if a != b {
		t.Fatalf("expected target order not to matter: %q vs %q", a, b)
	}

	if Key("hello", "en", []string{"ja"}, interfaces.FormatPlain) == Key("hello!", "en", []string{"ja"}, interfaces.FormatPlain) {
		t.Fatal("expected distinct texts to produce distinct keys")
	}
	if Key("hello", "en", []string{"ja"}, interfaces.FormatPlain) == Key("hello", "en", []string{"ja"}, interfaces.FormatHTML) {
		t.Fatal("expected format to partition keys")
	}
	if Key("hello", "en", []string{"ja"}, interfaces.FormatPlain) == Key("hello", "en", []string{"ja", "ko"}, interfaces.FormatPlain) {
		t.Fatal("expected batch key to differ from single-language key")
	}
}

func TestCache_GetSet(t *testing.T) {
	c := New()
	key := Key("hello", "en", []string{"ja"}, interfaces.FormatPlain)

	if _, ok := c.Get(key); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set(key, result("ja", "こんにちは"))
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got.Translations["ja"] != "こんにちは" {
		t.Fatalf("unexpected cached value %+v", got)
	}
	if c.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", c.Size())
	}
}

func TestCache_TTLEvictsOnGet(t *testing.T) {
	current := time.Unix(1700000000, 0)
	c := New(WithClock(func() time.Time { return current }))

	key := Key("hello", "en", []string{"ja"}, interfaces.FormatPlain)
	c.Set(key, result("ja", "こんにちは"))

	current = current.Add(DefaultTTL - time.Second)
	if _, ok := c.Get(key); !ok {
		t.Fatal("expected hit just inside the TTL window")
	}

	current = current.Add(2 * time.Second)
	if _, ok := c.Get(key); ok {
		t.Fatal("expected stale entry to miss")
	}
	if c.Size() != 0 {
		t.Fatalf("expected stale entry to be evicted, Size() = %d", c.Size())
	}
}

func TestCache_FIFOEviction(t *testing.T) {
	c := New(WithMaxEntries(1000))

	for i := 0; i < 1001; i++ {
		c.Set(Key(fmt.Sprintf("text-%d", i), "en", []string{"ja"}, interfaces.FormatPlain), result("ja", "x"))
	}
	if c.Size() != 1000 {
		t.Fatalf("Size() = %d, want 1000", c.Size())
	}
	if _, ok := c.Get(Key("text-0", "en", []string{"ja"}, interfaces.FormatPlain)); ok {
		t.Fatal("expected first-inserted entry to be evicted")
	}
	if _, ok := c.Get(Key("text-1", "en", []string{"ja"}, interfaces.FormatPlain)); !ok {
		t.Fatal("expected second-inserted entry to survive")
	}
}

func TestCache_GetDoesNotBumpInsertionOrder(t *testing.T) {
	c := New(WithMaxEntries(2))

	first := Key("one", "en", []string{"ja"}, interfaces.FormatPlain)
	second := Key("two", "en", []string{"ja"}, interfaces.FormatPlain)
	c.Set(first, result("ja", "1"))
	c.Set(second, result("ja", "2"))

	// Touch the oldest entry; FIFO must still evict it.
	if _, ok := c.Get(first); !ok {
		t.Fatal("expected hit for first entry")
	}
	c.Set(Key("three", "en", []string{"ja"}, interfaces.FormatPlain), result("ja", "3"))

	if _, ok := c.Get(first); ok {
		t.Fatal("expected oldest-inserted entry to be evicted despite recent Get")
	}
	if _, ok := c.Get(second); !ok {
		t.Fatal("expected newer entry to survive")
	}
}

func TestCache_OverwriteRefreshesInsertionOrder(t *testing.T) {
	c := New(WithMaxEntries(2))

	first := Key("one", "en", []string{"ja"}, interfaces.FormatPlain)
	second := Key("two", "en", []string{"ja"}, interfaces.FormatPlain)
	c.Set(first, result("ja", "1"))
	c.Set(second, result("ja", "2"))

	// Overwriting counts as a fresh insertion: the refreshed entry moves to
	// the back of the eviction order, so the untouched one goes first.
	c.Set(first, result("ja", "1b"))
	c.Set(Key("three", "en", []string{"ja"}, interfaces.FormatPlain), result("ja", "3"))

	if _, ok := c.Get(second); ok {
		t.Fatal("expected untouched entry to be evicted first")
	}
	got, ok := c.Get(first)
	if !ok {
		t.Fatal("expected refreshed entry to survive eviction")
	}
	if got.Translations["ja"] != "1b" {
		t.Fatalf("Translations[ja] = %q, want refreshed value", got.Translations["ja"])
	}
}

func TestCache_SetBatchDualWrite(t *testing.T) {
	c := New()
	batch := interfaces.TranslationResult{
		Translations: map[string]string{
			"en": "Hello",
			"ja": "こんにちは",
		},
		FailedLanguages: []string{"ko"},
	}
	targets := []string{"en", "ja", "ko"}
	c.SetBatch("你好", "zh", interfaces.FormatPlain, batch, targets)

	if _, ok := c.Get(Key("你好", "zh", targets, interfaces.FormatPlain)); !ok {
		t.Fatal("expected batch entry to be cached")
	}
	single, ok := c.Get(Key("你好", "zh", []string{"en"}, interfaces.FormatPlain))
	if !ok {
		t.Fatal("expected derived single-language entry for en")
	}
	if single.Translations["en"] != "Hello" {
		t.Fatalf("unexpected derived entry %+v", single)
	}
	if _, ok := c.Get(Key("你好", "zh", []string{"ko"}, interfaces.FormatPlain)); ok {
		t.Fatal("failed language must not get a derived entry")
	}
	// Batch entry plus two derived singles.
	if c.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", c.Size())
	}
}

func TestCache_Clear(t *testing.T) {
	c := New()
	c.Set(Key("hello", "en", []string{"ja"}, interfaces.FormatPlain), result("ja", "x"))
	c.Clear()
	if c.Size() != 0 {
		t.Fatalf("Size() after Clear = %d, want 0", c.Size())
	}
}

func TestCache_OverwriteKeepsSize(t *testing.T) {
	c := New()
	key := Key("hello", "en", []string{"ja"}, interfaces.FormatPlain)
	c.Set(key, result("ja", "a"))
	c.Set(key, result("ja", "b"))
	if c.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", c.Size())
	}
	got, _ := c.Get(key)
	if got.Translations["ja"] != "b" {
		t.Fatalf("expected overwrite to win, got %+v", got)
	}
}
