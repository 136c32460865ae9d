package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUID_Deterministic(t *testing.T) {
	a := UUID("go-translations:record:product:sku-100")
	b := UUID("go-translations:record:product:sku-100")
	if a == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if a != b {
		t.Fatalf("expected identical uuids, got %s and %s", a, b)
	}
	if UUID("") != uuid.Nil {
		t.Fatal("expected empty key to map to uuid.Nil")
	}
}

func TestTextDigest(t *testing.T) {
	if TextDigest("hello world") != TextDigest("hello world") {
		t.Fatal("identical texts must share a digest")
	}
	if TextDigest("hello world") == TextDigest("hello world!") {
		t.Fatal("distinct texts must not share a digest")
	}
	prefix := "a long shared prefix repeated enough times to exceed any truncation window "
	if TextDigest(prefix+"one") == TextDigest(prefix+"two") {
		t.Fatal("texts sharing a long prefix must not share a digest")
	}
	if TextDigest("") != "empty" {
		t.Fatalf("TextDigest(\"\") = %q, want sentinel", TextDigest(""))
	}
}

func TestRecordUUID(t *testing.T) {
	if RecordUUID("Product", " sku-1 ") != RecordUUID("product", "sku-1") {
		t.Fatal("expected content type casing and spacing to normalize")
	}
	if RecordUUID("product", "sku-1") == RecordUUID("article", "sku-1") {
		t.Fatal("expected content types to partition the key space")
	}
}
