package languages

import (
	"math"
	"strings"
)

// Resolve picks the best available text for a requested language. Priority is
// fixed: the requested language, then English, then Chinese, then the first
// non-empty value in catalog order, then the empty string. Nil content is
// safe and resolves to "".
func Resolve(content MultiLanguageText, requested Language) string {
	if len(content) == 0 {
		return ""
	}
	if text := content[requested]; strings.TrimSpace(text) != "" {
		return text
	}
	if text := content[English]; strings.TrimSpace(text) != "" {
		return text
	}
	if text := content[Chinese]; strings.TrimSpace(text) != "" {
		return text
	}
	for _, lang := range Supported {
		if text := content[lang]; strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

// IsAvailable reports whether content has a non-empty value for lang.
func IsAvailable(content MultiLanguageText, lang Language) bool {
	if content == nil {
		return false
	}
	return strings.TrimSpace(content[lang]) != ""
}

// Missing lists every catalog language lacking a non-empty value, in catalog
// order. Nil content yields the full catalog.
func Missing(content MultiLanguageText) []Language {
	missing := make([]Language, 0, len(Supported))
	for _, lang := range Supported {
		if !IsAvailable(content, lang) {
			missing = append(missing, lang)
		}
	}
	return missing
}

// Present lists every catalog language with a non-empty value, in catalog order.
func Present(content MultiLanguageText) []Language {
	present := make([]Language, 0, len(Supported))
	for _, lang := range Supported {
		if IsAvailable(content, lang) {
			present = append(present, lang)
		}
	}
	return present
}

// CompletenessPercent reports how much of the catalog content covers, as an
// integer percentage rounded half away from zero.
func CompletenessPercent(content MultiLanguageText) int {
	if len(Supported) == 0 {
		return 0
	}
	filled := len(Present(content))
	return int(math.Round(100 * float64(filled) / float64(len(Supported))))
}
