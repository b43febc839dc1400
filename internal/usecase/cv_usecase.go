package usecase

import (
	"context"
	"time"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"
	"vericv-backend/pkg/sanitize"
	"vericv-backend/pkg/security"
	"vericv-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type cvUsecase struct {
	cvRepo         domain.CVRepository
	educationRepo  domain.EducationRepository
	experienceRepo domain.ExperienceRepository
	userRepo       domain.UserRepository
	validate       *validator.Validate
	sanitizer      *sanitize.Sanitizer
	secLogger      *security.SecurityLogger
}

func NewCVUsecase(
	cvRepo domain.CVRepository,
	educationRepo domain.EducationRepository,
	experienceRepo domain.ExperienceRepository,
	userRepo domain.UserRepository,
	validate *validator.Validate,
	secLogger *security.SecurityLogger,
) domain.CVUsecase {
	if secLogger == nil {
		secLogger = security.DefaultLogger()
	}
	return &cvUsecase{
		cvRepo:         cvRepo,
		educationRepo:  educationRepo,
		experienceRepo: experienceRepo,
		userRepo:       userRepo,
		validate:       validate,
		sanitizer:      sanitize.New(),
		secLogger:      secLogger,
	}
}

func (u *cvUsecase) CreateCV(ctx context.Context, userID int64, input domain.CVInput) (*domain.CV, error) {
	input = u.cleanCV(input)
	if err := validation.Check(u.validate, input); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	exists, err := u.cvRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.AlreadyExists("User already has a CV")
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	now := time.Now()
	cv := &domain.CV{
		UserID:    userID,
		Headline:  input.Headline,
		Summary:   input.Summary,
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.cvRepo.Create(ctx, cv); err != nil {
		return nil, err
	}
	return cv, nil
}

func (u *cvUsecase) GetUserCV(ctx context.Context, userID int64) (*domain.CV, error) {
	cv, err := u.cvRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cv == nil {
		return nil, apperror.NotFound("CV not found")
	}
	return cv, nil
}

// GetCVByID does not check visibility. Use GetPublicCV for anonymous readers.
func (u *cvUsecase) GetCVByID(ctx context.Context, cvID int64) (*domain.CV, error) {
	cv, err := u.cvRepo.GetByID(ctx, cvID)
	if err != nil {
		return nil, err
	}
	if cv == nil {
		return nil, apperror.NotFound("CV not found")
	}
	return cv, nil
}

func (u *cvUsecase) GetMyCVDetails(ctx context.Context, userID int64) (*domain.CVDetails, error) {
	cv, err := u.GetUserCV(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.details(ctx, cv)
}

func (u *cvUsecase) GetPublicCV(ctx context.Context, cvID int64) (*domain.CVDetails, error) {
	cv, err := u.GetCVByID(ctx, cvID)
	if err != nil {
		return nil, err
	}
	if !cv.IsPublic {
		return nil, apperror.Forbidden("This CV is private")
	}
	return u.details(ctx, cv)
}

func (u *cvUsecase) GetPublicCVByUserID(ctx context.Context, userID int64) (*domain.CVDetails, error) {
	cv, err := u.GetUserCV(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cv.IsPublic {
		return nil, apperror.Forbidden("This CV is private")
	}
	return u.details(ctx, cv)
}

func (u *cvUsecase) UpdateCV(ctx context.Context, cvID, userID int64, input domain.CVInput) (*domain.CV, error) {
	input = u.cleanCV(input)
	if err := validation.Check(u.validate, input); err != nil {
		return nil, err
	}

	cv, err := u.ownedCV(ctx, cvID, userID)
	if err != nil {
		return nil, err
	}

	cv.Headline = input.Headline
	cv.Summary = input.Summary
	if input.IsPublic != nil {
		cv.IsPublic = *input.IsPublic
	}
	cv.UpdatedAt = time.Now()

	if err := u.cvRepo.Update(ctx, cv); err != nil {
		return nil, err
	}
	return cv, nil
}

func (u *cvUsecase) DeleteCV(ctx context.Context, cvID, userID int64) (domain.CascadeDeleteResult, error) {
	if _, err := u.ownedCV(ctx, cvID, userID); err != nil {
		return domain.CascadeDeleteResult{}, err
	}
	return u.cvRepo.DeleteWithChildren(ctx, cvID)
}

func (u *cvUsecase) AddEducation(ctx context.Context, cvID, userID int64, input domain.EducationInput) (*domain.Education, error) {
	input = u.cleanEducation(input)
	if err := validation.Check(u.validate, input); err != nil {
		return nil, err
	}
	if _, err := u.ownedCV(ctx, cvID, userID); err != nil {
		return nil, err
	}

	edu := &domain.Education{CVID: cvID}
	applyEducation(edu, input)
	if err := u.educationRepo.Create(ctx, edu); err != nil {
		return nil, err
	}
	return edu, nil
}

func (u *cvUsecase) UpdateEducation(ctx context.Context, educationID, userID int64, input domain.EducationInput) (*domain.Education, error) {
	input = u.cleanEducation(input)
	if err := validation.Check(u.validate, input); err != nil {
		return nil, err
	}

	edu, err := u.ownedEducation(ctx, educationID, userID)
	if err != nil {
		return nil, err
	}

	applyEducation(edu, input)
	if err := u.educationRepo.Update(ctx, edu); err != nil {
		return nil, err
	}
	return edu, nil
}

func (u *cvUsecase) DeleteEducation(ctx context.Context, educationID, userID int64) error {
	if _, err := u.ownedEducation(ctx, educationID, userID); err != nil {
		return err
	}
	return u.educationRepo.Delete(ctx, educationID)
}

func (u *cvUsecase) ListEducation(ctx context.Context, cvID int64) ([]domain.Education, error) {
	if _, err := u.GetCVByID(ctx, cvID); err != nil {
		return nil, err
	}
	return u.educationRepo.ListByCVID(ctx, cvID)
}

func (u *cvUsecase) AddExperience(ctx context.Context, cvID, userID int64, input domain.ExperienceInput) (*domain.Experience, error) {
	input = u.cleanExperience(input)
	if err := validation.Check(u.validate, input); err != nil {
		return nil, err
	}
	if _, err := u.ownedCV(ctx, cvID, userID); err != nil {
		return nil, err
	}

	exp := &domain.Experience{CVID: cvID}
	applyExperience(exp, input)
	if err := u.experienceRepo.Create(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

func (u *cvUsecase) UpdateExperience(ctx context.Context, experienceID, userID int64, input domain.ExperienceInput) (*domain.Experience, error) {
	input = u.cleanExperience(input)
	if err := validation.Check(u.validate, input); err != nil {
		return nil, err
	}

	exp, err := u.ownedExperience(ctx, experienceID, userID)
	if err != nil {
		return nil, err
	}

	applyExperience(exp, input)
	if err := u.experienceRepo.Update(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

func (u *cvUsecase) DeleteExperience(ctx context.Context, experienceID, userID int64) error {
	if _, err := u.ownedExperience(ctx, experienceID, userID); err != nil {
		return err
	}
	return u.experienceRepo.Delete(ctx, experienceID)
}

func (u *cvUsecase) ListExperience(ctx context.Context, cvID int64) ([]domain.Experience, error) {
	if _, err := u.GetCVByID(ctx, cvID); err != nil {
		return nil, err
	}
	return u.experienceRepo.ListByCVID(ctx, cvID)
}

// ownedCV loads the CV and enforces that userID owns it.
func (u *cvUsecase) ownedCV(ctx context.Context, cvID, userID int64) (*domain.CV, error) {
	cv, err := u.GetCVByID(ctx, cvID)
	if err != nil {
		return nil, err
	}
	if cv.UserID != userID {
		u.secLogger.LogOwnershipViolation(ctx, userID, "cv", cvID)
		return nil, apperror.Unauthorized("You are not allowed to modify this CV")
	}
	return cv, nil
}

// Ownership of a child record is always resolved through its parent CV.
func (u *cvUsecase) ownedEducation(ctx context.Context, educationID, userID int64) (*domain.Education, error) {
	edu, err := u.educationRepo.GetByID(ctx, educationID)
	if err != nil {
		return nil, err
	}
	if edu == nil {
		return nil, apperror.NotFound("Education not found")
	}
	if _, err := u.ownedCV(ctx, edu.CVID, userID); err != nil {
		return nil, err
	}
	return edu, nil
}

func (u *cvUsecase) ownedExperience(ctx context.Context, experienceID, userID int64) (*domain.Experience, error) {
	exp, err := u.experienceRepo.GetByID(ctx, experienceID)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, apperror.NotFound("Experience not found")
	}
	if _, err := u.ownedCV(ctx, exp.CVID, userID); err != nil {
		return nil, err
	}
	return exp, nil
}

func (u *cvUsecase) details(ctx context.Context, cv *domain.CV) (*domain.CVDetails, error) {
	educations, err := u.educationRepo.ListByCVID(ctx, cv.ID)
	if err != nil {
		return nil, err
	}
	experiences, err := u.experienceRepo.ListByCVID(ctx, cv.ID)
	if err != nil {
		return nil, err
	}
	if educations == nil {
		educations = []domain.Education{}
	}
	if experiences == nil {
		experiences = []domain.Experience{}
	}
	return &domain.CVDetails{CV: cv, Education: educations, Experience: experiences}, nil
}

func (u *cvUsecase) cleanCV(in domain.CVInput) domain.CVInput {
	in.Headline = u.sanitizer.String(in.Headline)
	in.Summary = u.sanitizer.StringPtr(in.Summary)
	return in
}

func (u *cvUsecase) cleanEducation(in domain.EducationInput) domain.EducationInput {
	in.Institution = u.sanitizer.String(in.Institution)
	in.Degree = u.sanitizer.String(in.Degree)
	in.FieldOfStudy = u.sanitizer.StringPtr(in.FieldOfStudy)
	in.StartDate = nilIfBlank(u.sanitizer.StringPtr(in.StartDate))
	in.EndDate = nilIfBlank(u.sanitizer.StringPtr(in.EndDate))
	return in
}

func (u *cvUsecase) cleanExperience(in domain.ExperienceInput) domain.ExperienceInput {
	in.Company = u.sanitizer.String(in.Company)
	in.Role = u.sanitizer.String(in.Role)
	in.Description = u.sanitizer.StringPtr(in.Description)
	in.StartDate = nilIfBlank(u.sanitizer.StringPtr(in.StartDate))
	in.EndDate = nilIfBlank(u.sanitizer.StringPtr(in.EndDate))
	return in
}

func nilIfBlank(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// isVerified and verificationDate are left untouched; only admins change them.
func applyEducation(edu *domain.Education, in domain.EducationInput) {
	edu.Institution = in.Institution
	edu.Degree = in.Degree
	edu.FieldOfStudy = in.FieldOfStudy
	edu.StartDate = in.StartDate
	edu.EndDate = in.EndDate
}

func applyExperience(exp *domain.Experience, in domain.ExperienceInput) {
	exp.Company = in.Company
	exp.Role = in.Role
	exp.Description = in.Description
	exp.StartDate = in.StartDate
	exp.EndDate = in.EndDate
	exp.IsCurrent = in.IsCurrent != nil && *in.IsCurrent
}
