// Package lang names the output languages generated text can be written in.
package lang

import "strings"

// Language is a supported output language code
type Language string

const (
	English            Language = "en"
	ChineseSimplified  Language = "zh"
	ChineseTraditional Language = "zh-tw"
	Japanese           Language = "ja"
	Korean             Language = "ko"
)

var displayNames = map[Language]string{
	English:            "English",
	ChineseSimplified:  "中文（简体）",
	ChineseTraditional: "中文（繁體）",
	Japanese:           "日本語",
	Korean:             "한국어",
}

// aliases maps common spellings and locale tags onto a language
var aliases = map[string]Language{
	"en-us":   English,
	"en-gb":   English,
	"english": English,
	"zh-cn":   ChineseSimplified,
	"zh-hans": ChineseSimplified,
	"zh-hant": ChineseTraditional,
	"zh-hk":   ChineseTraditional,
	"ja-jp":   Japanese,
	"ko-kr":   Korean,
}

// String returns the language code
func (l Language) String() string {
	return string(l)
}

// IsValid checks if the language is supported
func (l Language) IsValid() bool {
	_, ok := displayNames[l]
	return ok
}

// DisplayName returns the language's own name for itself, or the code when unknown
func (l Language) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return string(l)
}

// Supported returns the supported languages in display order
func Supported() []Language {
	return []Language{English, ChineseSimplified, ChineseTraditional, Japanese, Korean}
}

// Lookup resolves a code or alias, case-insensitively. Underscores are read as dashes.
func Lookup(s string) (Language, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if l := Language(key); l.IsValid() {
		return l, true
	}
	l, ok := aliases[key]
	return l, ok
}

// ParseLanguage resolves s, falling back to English when it is not supported
func ParseLanguage(s string) Language {
	if l, ok := Lookup(s); ok {
		return l
	}
	return English
}
