// Package text provides small utilities for text measurement and truncation
// shared by the summarization providers.
package text

// CountRunes counts the number of Unicode characters (runes) in the given
// text. Counting runes instead of bytes keeps limits consistent for
// multi-byte content (Turkish diacritics, emoji, CJK).
func CountRunes(text string) int {
	return len([]rune(text))
}

// TruncateRunes returns the leading max runes of text.
// Truncation is silent: callers that need to surface it should compare
// lengths themselves.
func TruncateRunes(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
