package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from free-text input before it is validated and stored.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// maxPasses bounds the sanitize/decode loop for deeply nested entity encodings.
const maxPasses = 8

// String removes all HTML and trims surrounding whitespace.
// Entities are decoded so "R&D" stays "R&D", and decoded text is sanitised again
// until it is stable, so "&lt;script&gt;" cannot come back out as markup.
func (s *Sanitizer) String(input string) string {
	if input == "" {
		return ""
	}
	out := input
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(s.policy.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	// Still changing: keep the escaped form.
	return strings.TrimSpace(s.policy.Sanitize(out))
}

// StringPtr sanitises an optional value, keeping nil as nil.
func (s *Sanitizer) StringPtr(input *string) *string {
	if input == nil {
		return nil
	}
	out := s.String(*input)
	return &out
}
