package voice

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinSpeechLength is the shortest sanitized text worth synthesizing, in runes.
// Shorter text is skipped, not rejected.
const MinSpeechLength = 5

var (
	stageDirectionRe = regexp.MustCompile(`\[.*?/\]`)
	decorSymbolRe    = regexp.MustCompile(`[✅ℹ️🔍⚠️*●#=]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// Sanitize normalizes assistant output for speech: bracketed stage directions
// and decorative symbols are dropped, whitespace runs collapse to single
// spaces. Total over all input; degenerate input yields the empty string.
func Sanitize(raw string) string {
	s := stageDirectionRe.ReplaceAllString(raw, "")
	s = decorSymbolRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Speakable reports whether sanitized text meets the minimum length gate.
func Speakable(text string) bool {
	return utf8.RuneCountInString(text) >= MinSpeechLength
}
