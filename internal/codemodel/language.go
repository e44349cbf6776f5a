package codemodel

import (
	"github.com/go-enry/go-enry/v2"
)

// Linguist names of the languages with a code model
const (
	LanguageCSharp = "C#"
	LanguageJava   = "Java"
)

func isSupported(lang string) bool {
	_, ok := grammars[lang]
	return ok
}

// LanguageForPath returns the supported language a file is written in, judging by
// its name only. Ambiguous extensions resolve to the supported candidate.
func LanguageForPath(path string) (string, bool) {
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return lang, isSupported(lang)
	}
	for _, lang := range enry.GetLanguagesByExtension(path, nil, nil) {
		if isSupported(lang) {
			return lang, true
		}
	}
	return "", false
}

// DetectLanguage classifies a file by name and content, preferring supported
// languages when the extension alone is ambiguous.
func DetectLanguage(path string, content []byte) string {
	candidates := enry.GetLanguagesByExtension(path, content, nil)
	var supported []string
	for _, lang := range candidates {
		if isSupported(lang) {
			supported = append(supported, lang)
		}
	}
	if len(supported) == 1 {
		return supported[0]
	}
	return enry.GetLanguage(path, content)
}
