package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	s := New()

	assert.Equal(t, "Backend Engineer", s.String("  <b>Backend</b> Engineer "))
	assert.Equal(t, "", s.String("<script>alert(1)</script>"))
	assert.Equal(t, "R&D Lead", s.String("R&D Lead"))
	assert.Equal(t, "", s.String(""))
}

func TestStringDecodedEntitiesAreSanitised(t *testing.T) {
	s := New()

	cases := map[string]string{
		"encoded script":        "&lt;script&gt;alert(1)&lt;/script&gt;",
		"double encoded img":    "&amp;lt;img src=x onerror=alert(1)&amp;gt;",
		"encoded bold in text":  "Go &lt;b&gt;expert&lt;/b&gt;",
		"triple encoded script": "&amp;amp;lt;script&amp;amp;gt;x&amp;amp;lt;/script&amp;amp;gt;",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			out := s.String(in)
			assert.NotContains(t, out, "<")
			assert.NotContains(t, out, ">")
			assert.Equal(t, out, s.String(out), "output must be stable when saved again")
		})
	}

	assert.Equal(t, "", s.String("&lt;script&gt;alert(1)&lt;/script&gt;"))
	assert.Equal(t, "", s.String("&amp;lt;img src=x onerror=alert(1)&amp;gt;"))
	assert.Equal(t, "Go expert", s.String("Go &lt;b&gt;expert&lt;/b&gt;"))
}

func TestStringPtr(t *testing.T) {
	s := New()

	assert.Nil(t, s.StringPtr(nil))

	in := "<i>Berlin</i>"
	out := s.StringPtr(&in)
	if assert.NotNil(t, out) {
		assert.Equal(t, "Berlin", *out)
	}
}
