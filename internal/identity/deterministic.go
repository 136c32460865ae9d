package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// TextDigest condenses arbitrary source text into a fixed-length token safe to
// embed in cache keys. The digest covers the whole text, so two long texts
// sharing a common prefix still produce distinct digests. Unlike UUID, input
// is not normalized: texts differing only in case or spacing are distinct.
func TextDigest(text string) string {
	if text == "" {
		return "empty"
	}
	uid, err := hashid.NewUUID("go-translations:text:"+text, hashid.WithHashAlgorithm(hashid.SHA256))
	if err != nil || uid == uuid.Nil {
		uid = uuid.NewSHA1(uuid.NameSpaceOID, []byte(text))
	}
	return uid.String()
}

// RecordUUID derives a stable identifier for a content record seeded from an
// external key.
func RecordUUID(contentType, externalKey string) uuid.UUID {
	return UUID("go-translations:record:" + strings.ToLower(strings.TrimSpace(contentType)) + ":" + strings.TrimSpace(externalKey))
}
