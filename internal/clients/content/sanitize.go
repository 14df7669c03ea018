package content

import "regexp"

// RedactionMarker replaces instruction-override attempts in player text
const RedactionMarker = "[REDACTED]"

var overridePattern = regexp.MustCompile(`(?i)(ignore|system|assistant|instructions):`)

// SanitizeDebrief neutralizes substrings in player text that look like
// attempts to override the prompt. It lowers the risk of injection but does
// not remove it; the prompt also frames the text as inert data.
func SanitizeDebrief(text string) string {
	return overridePattern.ReplaceAllString(text, RedactionMarker)
}
