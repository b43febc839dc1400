package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBadgeForCount(t *testing.T) {
	cases := map[int]VerificationBadge{
		0: BadgeNone,
		1: BadgeBronze,
		2: BadgeSilver,
		3: BadgeGold,
		4: BadgePlatinum,
	}
	for n, want := range cases {
		assert.Equal(t, want, BadgeForCount(n), "count %d", n)
	}
}

func TestVerificationFactorsCount(t *testing.T) {
	assert.Equal(t, 0, VerificationFactors{}.Count())
	assert.Equal(t, 2, VerificationFactors{UserVerified: true, HasVerifiedExperience: true}.Count())
	assert.Equal(t, 3, VerificationFactors{true, true, true}.Count())
}

func TestParseVerificationBadge(t *testing.T) {
	b, err := ParseVerificationBadge("gold")
	require.NoError(t, err)
	assert.Equal(t, BadgeGold, b)

	b, err = ParseVerificationBadge(" Platinum ")
	require.NoError(t, err)
	assert.Equal(t, BadgePlatinum, b)

	_, err = ParseVerificationBadge("diamond")
	assert.Error(t, err)
}

func TestBuildSearchableText(t *testing.T) {
	user := &User{FullName: "Ada Lovelace", Email: "ada@example.com"}
	entry := &DirectoryEntry{Headline: strPtr("Engineer"), Location: strPtr("  ")}
	edu := []Education{{Institution: "MIT", Degree: "BSc", FieldOfStudy: strPtr("CS")}}
	exp := []Experience{{Company: "Acme", Role: "Dev"}, {Company: "Globex", Role: ""}}

	got := BuildSearchableText(user, entry, edu, exp)
	assert.Equal(t, "Ada Lovelace ada@example.com Engineer MIT BSc CS Acme Dev Globex", got)

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, got, BuildSearchableText(user, entry, edu, exp))
	})

	t.Run("nil inputs", func(t *testing.T) {
		assert.Equal(t, "", BuildSearchableText(nil, nil, nil, nil))
	})

	t.Run("truncated to limit", func(t *testing.T) {
		long := strings.Repeat("é", MaxSearchableTextLength+50)
		text := BuildSearchableText(&User{FullName: long}, nil, nil, nil)
		assert.Equal(t, MaxSearchableTextLength, utf8.RuneCountInString(text))
	})
}
