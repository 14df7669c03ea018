package content

import (
	"regexp"
	"strings"
)

// Response is a raw collaborator reply. It is either Structured, when the
// provider enforced the schema, or Freeform, when the reply is text that
// needs a best-effort parse first.
type Response interface {
	// Payload returns the bytes to decode as JSON
	Payload() ([]byte, bool)
}

// Structured is a reply produced under schema enforcement
type Structured struct {
	Text string
}

// Payload implements Response
func (r Structured) Payload() ([]byte, bool) {
	text := strings.TrimSpace(r.Text)
	return []byte(text), text != ""
}

// Freeform is a reply from a grounded request, possibly wrapped in markdown
type Freeform struct {
	Text string
}

// Payload implements Response. It strips code fences and any prose around the
// outermost JSON object.
func (r Freeform) Payload() ([]byte, bool) {
	text := StripCodeFences(r.Text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, false
	}
	return []byte(text[start : end+1]), true
}

// NewResponse wraps raw in the variant matching how req was issued
func NewResponse(req *Request, raw string) Response {
	if req.Grounded {
		return Freeform{Text: raw}
	}
	return Structured{Text: raw}
}

var (
	openingFence = regexp.MustCompile("(?i)^```(json)?\\s*")
	closingFence = regexp.MustCompile("\\s*```$")
	labelEcho    = regexp.MustCompile(`(?i)^(EASY|MEDIUM|HARD):\s*`)
)

// StripCodeFences removes one enclosing markdown code fence
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = openingFence.ReplaceAllString(text, "")
	text = closingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// StripDifficultyLabel removes a leading difficulty label echoed into mission text
func StripDifficultyLabel(text string) string {
	return strings.TrimSpace(labelEcho.ReplaceAllString(text, ""))
}
