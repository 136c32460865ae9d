package languages

import "strings"

// Language is a supported language code from the fixed catalog.
type Language string

const (
	Chinese  Language = "zh"
	English  Language = "en"
	Japanese Language = "ja"
	Korean   Language = "ko"
	Arabic   Language = "ar"
	Spanish  Language = "es"
)

// Direction describes the text rendering direction for a language.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Info carries the display metadata attached to a catalog language.
type Info struct {
	Code       Language
	Name       string
	NativeName string
	Direction  Direction
}

// Supported lists the catalog languages in canonical order. The order is
// load-bearing: Missing reports gaps in this order and Resolve uses it to
// pick the "first available" fallback tier.
var Supported = []Language{Chinese, English, Japanese, Korean, Arabic, Spanish}

var catalog = map[Language]Info{
	Chinese:  {Code: Chinese, Name: "Chinese", NativeName: "中文", Direction: DirectionLTR},
	English:  {Code: English, Name: "English", NativeName: "English", Direction: DirectionLTR},
	Japanese: {Code: Japanese, Name: "Japanese", NativeName: "日本語", Direction: DirectionLTR},
	Korean:   {Code: Korean, Name: "Korean", NativeName: "한국어", Direction: DirectionLTR},
	Arabic:   {Code: Arabic, Name: "Arabic", NativeName: "العربية", Direction: DirectionRTL},
	Spanish:  {Code: Spanish, Name: "Spanish", NativeName: "Español", Direction: DirectionLTR},
}

// MultiLanguageText maps a language code to the text stored for it. A missing
// key means the field has not been translated into that language yet.
type MultiLanguageText map[Language]string

// IsSupported reports whether code belongs to the catalog.
func IsSupported(code Language) bool {
	_, ok := catalog[code]
	return ok
}

// Parse normalizes a raw language code against the catalog.
func Parse(raw string) (Language, bool) {
	code := Language(strings.ToLower(strings.TrimSpace(raw)))
	if !IsSupported(code) {
		return "", false
	}
	return code, true
}

// Lookup returns the catalog metadata for a language.
func Lookup(code Language) (Info, bool) {
	info, ok := catalog[code]
	return info, ok
}

// DirectionOf returns the text direction for a language. Unknown codes render
// left-to-right.
func DirectionOf(code Language) Direction {
	if info, ok := catalog[code]; ok {
		return info.Direction
	}
	return DirectionLTR
}
