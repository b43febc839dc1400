package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxSearchableTextLength bounds the stored searchable_text column.
const MaxSearchableTextLength = 2000

type VerificationBadge string

const (
	BadgeNone   VerificationBadge = "NONE"
	BadgeBronze VerificationBadge = "BRONZE"
	BadgeSilver VerificationBadge = "SILVER"
	BadgeGold   VerificationBadge = "GOLD"
	// BadgePlatinum is reserved. The current three-factor count tops out at GOLD.
	BadgePlatinum VerificationBadge = "PLATINUM"
)

var verificationBadges = []VerificationBadge{BadgeNone, BadgeBronze, BadgeSilver, BadgeGold, BadgePlatinum}

// ParseVerificationBadge accepts a badge name in any letter case.
func ParseVerificationBadge(s string) (VerificationBadge, error) {
	candidate := VerificationBadge(strings.ToUpper(strings.TrimSpace(s)))
	for _, b := range verificationBadges {
		if b == candidate {
			return b, nil
		}
	}
	return "", fmt.Errorf("invalid verification badge %q", s)
}

// VerificationFactors are the credentials counted towards a badge.
type VerificationFactors struct {
	UserVerified          bool
	HasVerifiedEducation  bool
	HasVerifiedExperience bool
}

func (f VerificationFactors) Count() int {
	n := 0
	for _, ok := range []bool{f.UserVerified, f.HasVerifiedEducation, f.HasVerifiedExperience} {
		if ok {
			n++
		}
	}
	return n
}

// BadgeForCount maps a verified-credential count to its tier.
func BadgeForCount(verifiedCount int) VerificationBadge {
	switch verifiedCount {
	case 0:
		return BadgeNone
	case 1:
		return BadgeBronze
	case 2:
		return BadgeSilver
	case 3:
		return BadgeGold
	default:
		return BadgePlatinum
	}
}

type DirectoryEntry struct {
	ID                int64             `json:"id"`
	UserID            int64             `json:"userId"`
	FullName          string            `json:"fullName"`
	Headline          *string           `json:"headline"`
	Location          *string           `json:"location"`
	VerificationBadge VerificationBadge `json:"verificationBadge"`
	IsVisible         bool              `json:"isVisible"`
	SearchableText    string            `json:"searchableText"`
	ProfileViews      int               `json:"profileViews"`
	LastActive        *time.Time        `json:"lastActive"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// BuildSearchableText derives the searchable projection of a profile. The result depends only
// on its arguments: user name and email, the entry's headline and location, then every
// education (institution, degree, field of study) and experience (company, role).
// Blank parts are skipped and the result is capped at MaxSearchableTextLength runes.
func BuildSearchableText(user *User, entry *DirectoryEntry, educations []Education, experiences []Experience) string {
	parts := make([]string, 0, 4+3*len(educations)+2*len(experiences))
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	addPtr := func(s *string) {
		if s != nil {
			add(*s)
		}
	}

	if user != nil {
		add(user.FullName)
		add(user.Email)
	}
	if entry != nil {
		addPtr(entry.Headline)
		addPtr(entry.Location)
	}
	for _, edu := range educations {
		add(edu.Institution)
		add(edu.Degree)
		addPtr(edu.FieldOfStudy)
	}
	for _, exp := range experiences {
		add(exp.Company)
		add(exp.Role)
	}

	return truncateRunes(strings.Join(parts, " "), MaxSearchableTextLength)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit]))
}

type HeadlineLocationInput struct {
	Headline *string `json:"headline" validate:"omitempty,max=200"`
	Location *string `json:"location" validate:"omitempty,max=100"`
}

// DirectoryRepository lookups return (nil, nil) when the entry does not exist.
// List methods only return visible entries, ordered by id ascending.
type DirectoryRepository interface {
	Create(ctx context.Context, entry *DirectoryEntry) error
	GetByUserID(ctx context.Context, userID int64) (*DirectoryEntry, error)
	ExistsByUserID(ctx context.Context, userID int64) (bool, error)
	Update(ctx context.Context, entry *DirectoryEntry) error
	DeleteByUserID(ctx context.Context, userID int64) error
	ListVisible(ctx context.Context) ([]DirectoryEntry, error)
	// Search matches keyword case-insensitively against full name, headline and searchable text.
	Search(ctx context.Context, keyword string) ([]DirectoryEntry, error)
	ListVisibleByBadge(ctx context.Context, badge VerificationBadge) ([]DirectoryEntry, error)
	IncrementProfileViews(ctx context.Context, userID int64) (int, error)
}

// DirectoryUsecase is the Directory Manager.
type DirectoryUsecase interface {
	AddToDirectory(ctx context.Context, userID int64) (*DirectoryEntry, error)
	UpdateDirectoryEntry(ctx context.Context, userID int64) (*DirectoryEntry, error)
	RefreshIfMember(ctx context.Context, userID int64) error
	RemoveFromDirectory(ctx context.Context, userID int64) error
	UpdateVisibility(ctx context.Context, userID int64, visible bool) (*DirectoryEntry, error)
	UpdateHeadlineAndLocation(ctx context.Context, userID int64, input HeadlineLocationInput) (*DirectoryEntry, error)
	SearchDirectory(ctx context.Context, keyword string) ([]DirectoryEntry, error)
	GetPublicProfile(ctx context.Context, userID int64) (*DirectoryEntry, error)
	GetMyEntry(ctx context.Context, userID int64) (*DirectoryEntry, error)
	GetByVerificationBadge(ctx context.Context, badge VerificationBadge) ([]DirectoryEntry, error)
	CalculateVerificationBadge(ctx context.Context, userID int64) (VerificationBadge, error)
}

// VerificationUsecase lets administrators mark users and CV credentials as verified.
type VerificationUsecase interface {
	VerifyUser(ctx context.Context, actor Actor, userID int64, verified bool) (*User, error)
	VerifyEducation(ctx context.Context, actor Actor, educationID int64, verified bool) (*Education, error)
	VerifyExperience(ctx context.Context, actor Actor, experienceID int64, verified bool) (*Experience, error)
}
