// Package langdetect classifies files using go-enry: which language a
// document is written in, and whether a file should be processed at all.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// LanguageMarkdown is the go-enry name for Markdown documents.
const LanguageMarkdown = "Markdown"

// SkipReason explains why a file is not processed.
type SkipReason string

const (
	SkipNone      SkipReason = ""
	SkipBinary    SkipReason = "binary"
	SkipVendored  SkipReason = "vendored"
	SkipGenerated SkipReason = "generated"
)

// Detect returns the go-enry language name for a file, or "" when unknown.
func Detect(path string, content []byte) string {
	name := filepath.Base(path)

	// ".md" is ambiguous in enry's tables (GCC machine description).
	if strings.EqualFold(filepath.Ext(name), ".md") {
		return LanguageMarkdown
	}

	if lang, safe := enry.GetLanguageByExtension(name); safe {
		return lang
	}

	if lang, safe := enry.GetLanguageByFilename(name); safe {
		return lang
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	return enry.GetLanguage(name, content)
}

// IsMarkdown reports whether lang names Markdown (or an alias of it).
func IsMarkdown(lang string) bool {
	switch strings.ToLower(lang) {
	case "markdown", "md", "gfm":
		return true
	default:
		return false
	}
}

// Classify decides whether a file should be skipped. Binary files are always
// skipped; vendored and generated files only when includeVendored is false.
func Classify(path string, content []byte, includeVendored bool) SkipReason {
	if enry.IsBinary(content) {
		return SkipBinary
	}

	if includeVendored {
		return SkipNone
	}

	if enry.IsVendor(filepath.ToSlash(path)) {
		return SkipVendored
	}

	if enry.IsGenerated(filepath.ToSlash(path), content) {
		return SkipGenerated
	}

	return SkipNone
}
