package usecase

import (
	"context"
	"strings"
	"time"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"
	"vericv-backend/pkg/logger"
	"vericv-backend/pkg/sanitize"
	"vericv-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type directoryUsecase struct {
	directoryRepo  domain.DirectoryRepository
	userRepo       domain.UserRepository
	cvRepo         domain.CVRepository
	educationRepo  domain.EducationRepository
	experienceRepo domain.ExperienceRepository
	validate       *validator.Validate
	sanitizer      *sanitize.Sanitizer
	now            func() time.Time
}

func NewDirectoryUsecase(
	directoryRepo domain.DirectoryRepository,
	userRepo domain.UserRepository,
	cvRepo domain.CVRepository,
	educationRepo domain.EducationRepository,
	experienceRepo domain.ExperienceRepository,
	validate *validator.Validate,
) domain.DirectoryUsecase {
	return &directoryUsecase{
		directoryRepo:  directoryRepo,
		userRepo:       userRepo,
		cvRepo:         cvRepo,
		educationRepo:  educationRepo,
		experienceRepo: experienceRepo,
		validate:       validate,
		sanitizer:      sanitize.New(),
		now:            time.Now,
	}
}

// credentials is everything a directory entry is derived from.
type credentials struct {
	user        *domain.User
	cv          *domain.CV
	educations  []domain.Education
	experiences []domain.Experience
}

func (c credentials) factors() domain.VerificationFactors {
	f := domain.VerificationFactors{UserVerified: c.user != nil && c.user.IsVerified}
	for _, e := range c.educations {
		if e.IsVerified {
			f.HasVerifiedEducation = true
			break
		}
	}
	for _, e := range c.experiences {
		if e.IsVerified {
			f.HasVerifiedExperience = true
			break
		}
	}
	return f
}

// loadCredentials resolves the user's CV and reads its children by CV id.
// A user without a CV has no education or experience.
func (u *directoryUsecase) loadCredentials(ctx context.Context, userID int64) (credentials, error) {
	var c credentials

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return c, err
	}
	if user == nil {
		return c, apperror.NotFound("User not found")
	}
	c.user = user

	cv, err := u.cvRepo.GetByUserID(ctx, userID)
	if err != nil {
		return c, err
	}
	if cv == nil {
		return c, nil
	}
	c.cv = cv

	if c.educations, err = u.educationRepo.ListByCVID(ctx, cv.ID); err != nil {
		return c, err
	}
	if c.experiences, err = u.experienceRepo.ListByCVID(ctx, cv.ID); err != nil {
		return c, err
	}
	return c, nil
}

// derive recomputes every projected field of entry from c.
func (u *directoryUsecase) derive(entry *domain.DirectoryEntry, c credentials) {
	now := u.now()
	entry.FullName = c.user.FullName
	entry.VerificationBadge = domain.BadgeForCount(c.factors().Count())
	entry.SearchableText = domain.BuildSearchableText(c.user, entry, c.educations, c.experiences)
	entry.LastActive = &now
	entry.UpdatedAt = now
}

func (u *directoryUsecase) AddToDirectory(ctx context.Context, userID int64) (*domain.DirectoryEntry, error) {
	c, err := u.loadCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists, err := u.directoryRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.AlreadyExists("User is already in the directory")
	}

	entry := &domain.DirectoryEntry{
		UserID:    userID,
		IsVisible: true,
	}
	if c.cv != nil && c.cv.Headline != "" {
		headline := c.cv.Headline
		entry.Headline = &headline
	}
	u.derive(entry, c)
	entry.CreatedAt = entry.UpdatedAt

	if err := u.directoryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (u *directoryUsecase) UpdateDirectoryEntry(ctx context.Context, userID int64) (*domain.DirectoryEntry, error) {
	entry, err := u.GetMyEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, err := u.loadCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.derive(entry, c)
	if err := u.directoryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RefreshIfMember refreshes the user's entry and is a no-op for non-members.
func (u *directoryUsecase) RefreshIfMember(ctx context.Context, userID int64) error {
	exists, err := u.directoryRepo.ExistsByUserID(ctx, userID)
	if err != nil || !exists {
		return err
	}
	_, err = u.UpdateDirectoryEntry(ctx, userID)
	return err
}

func (u *directoryUsecase) RemoveFromDirectory(ctx context.Context, userID int64) error {
	if _, err := u.GetMyEntry(ctx, userID); err != nil {
		return err
	}
	return u.directoryRepo.DeleteByUserID(ctx, userID)
}

func (u *directoryUsecase) UpdateVisibility(ctx context.Context, userID int64, visible bool) (*domain.DirectoryEntry, error) {
	entry, err := u.GetMyEntry(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry.IsVisible = visible
	entry.UpdatedAt = u.now()
	if err := u.directoryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateHeadlineAndLocation overwrites the non-nil fields and recomputes only the
// searchable text. Name, badge and lastActive change on refresh.
func (u *directoryUsecase) UpdateHeadlineAndLocation(ctx context.Context, userID int64, input domain.HeadlineLocationInput) (*domain.DirectoryEntry, error) {
	input.Headline = u.sanitizer.StringPtr(input.Headline)
	input.Location = u.sanitizer.StringPtr(input.Location)
	if err := validation.Check(u.validate, input); err != nil {
		return nil, err
	}

	entry, err := u.GetMyEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, err := u.loadCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Headline != nil {
		entry.Headline = input.Headline
	}
	if input.Location != nil {
		entry.Location = input.Location
	}
	entry.SearchableText = domain.BuildSearchableText(c.user, entry, c.educations, c.experiences)
	entry.UpdatedAt = u.now()

	if err := u.directoryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (u *directoryUsecase) SearchDirectory(ctx context.Context, keyword string) ([]domain.DirectoryEntry, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return u.directoryRepo.ListVisible(ctx)
	}
	return u.directoryRepo.Search(ctx, keyword)
}

// GetPublicProfile returns a visible entry and counts the view. Hidden entries are
// reported as absent and not counted. A failed increment is logged and does not fail the read.
func (u *directoryUsecase) GetPublicProfile(ctx context.Context, userID int64) (*domain.DirectoryEntry, error) {
	entry, err := u.directoryRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil || !entry.IsVisible {
		return nil, apperror.NotFound("Directory entry not found")
	}

	views, err := u.directoryRepo.IncrementProfileViews(ctx, userID)
	if err != nil {
		logger.Log.WarnContext(ctx, "failed to increment profile views", "user_id", userID, "error", err)
		return entry, nil
	}
	entry.ProfileViews = views
	return entry, nil
}

func (u *directoryUsecase) GetMyEntry(ctx context.Context, userID int64) (*domain.DirectoryEntry, error) {
	entry, err := u.directoryRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NotFound("Directory entry not found")
	}
	return entry, nil
}

func (u *directoryUsecase) GetByVerificationBadge(ctx context.Context, badge domain.VerificationBadge) ([]domain.DirectoryEntry, error) {
	return u.directoryRepo.ListVisibleByBadge(ctx, badge)
}

// CalculateVerificationBadge returns NONE for an unknown user.
func (u *directoryUsecase) CalculateVerificationBadge(ctx context.Context, userID int64) (domain.VerificationBadge, error) {
	c, err := u.loadCredentials(ctx, userID)
	if apperror.IsKind(err, apperror.KindNotFound) {
		return domain.BadgeNone, nil
	}
	if err != nil {
		return "", err
	}
	return domain.BadgeForCount(c.factors().Count()), nil
}
