package usecase

import (
	"context"
	"strconv"
	"time"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"
	"vericv-backend/pkg/logger"
	"vericv-backend/pkg/security"
)

type verificationUsecase struct {
	userRepo       domain.UserRepository
	cvRepo         domain.CVRepository
	educationRepo  domain.EducationRepository
	experienceRepo domain.ExperienceRepository
	directory      domain.DirectoryUsecase
	secLogger      *security.SecurityLogger
	now            func() time.Time
}

func NewVerificationUsecase(
	userRepo domain.UserRepository,
	cvRepo domain.CVRepository,
	educationRepo domain.EducationRepository,
	experienceRepo domain.ExperienceRepository,
	directory domain.DirectoryUsecase,
	secLogger *security.SecurityLogger,
) domain.VerificationUsecase {
	if secLogger == nil {
		secLogger = security.DefaultLogger()
	}
	return &verificationUsecase{
		userRepo:       userRepo,
		cvRepo:         cvRepo,
		educationRepo:  educationRepo,
		experienceRepo: experienceRepo,
		directory:      directory,
		secLogger:      secLogger,
		now:            time.Now,
	}
}

func (uc *verificationUsecase) VerifyUser(ctx context.Context, actor domain.Actor, userID int64, verified bool) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Unauthorized("Only admins can change verification status")
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	if err := uc.userRepo.SetVerified(ctx, userID, verified); err != nil {
		return nil, err
	}
	user.IsVerified = verified

	uc.logChange(ctx, actor, "user", userID, verified)
	uc.refresh(ctx, userID)
	return user, nil
}

func (uc *verificationUsecase) VerifyEducation(ctx context.Context, actor domain.Actor, educationID int64, verified bool) (*domain.Education, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Unauthorized("Only admins can change verification status")
	}

	edu, err := uc.educationRepo.GetByID(ctx, educationID)
	if err != nil {
		return nil, err
	}
	if edu == nil {
		return nil, apperror.NotFound("Education not found")
	}

	at := uc.stamp(verified)
	if err := uc.educationRepo.SetVerified(ctx, educationID, verified, at); err != nil {
		return nil, err
	}
	edu.IsVerified = verified
	edu.VerificationDate = at

	uc.logChange(ctx, actor, "education", educationID, verified)
	uc.refreshCVOwner(ctx, edu.CVID)
	return edu, nil
}

func (uc *verificationUsecase) VerifyExperience(ctx context.Context, actor domain.Actor, experienceID int64, verified bool) (*domain.Experience, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Unauthorized("Only admins can change verification status")
	}

	exp, err := uc.experienceRepo.GetByID(ctx, experienceID)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, apperror.NotFound("Experience not found")
	}

	at := uc.stamp(verified)
	if err := uc.experienceRepo.SetVerified(ctx, experienceID, verified, at); err != nil {
		return nil, err
	}
	exp.IsVerified = verified
	exp.VerificationDate = at

	uc.logChange(ctx, actor, "experience", experienceID, verified)
	uc.refreshCVOwner(ctx, exp.CVID)
	return exp, nil
}

// stamp returns the verification time, or nil when the flag is cleared.
func (uc *verificationUsecase) stamp(verified bool) *time.Time {
	if !verified {
		return nil
	}
	now := uc.now()
	return &now
}

func (uc *verificationUsecase) refreshCVOwner(ctx context.Context, cvID int64) {
	cv, err := uc.cvRepo.GetByID(ctx, cvID)
	if err != nil || cv == nil {
		logger.Log.WarnContext(ctx, "could not resolve CV owner for directory refresh", "cv_id", cvID, "error", err)
		return
	}
	uc.refresh(ctx, cv.UserID)
}

// The verification itself is already committed, so a refresh failure is only logged.
func (uc *verificationUsecase) refresh(ctx context.Context, userID int64) {
	if uc.directory == nil {
		return
	}
	if err := uc.directory.RefreshIfMember(ctx, userID); err != nil {
		logger.Log.WarnContext(ctx, "directory refresh failed", "user_id", userID, "error", err)
	}
}

func (uc *verificationUsecase) logChange(ctx context.Context, actor domain.Actor, resource string, id int64, verified bool) {
	uc.secLogger.Log(ctx, security.SecurityEvent{
		Event:        security.EventVerificationChange,
		SubjectType:  "user_id",
		SubjectValue: security.HashValue(strconv.FormatInt(actor.UserID, 10)),
		Details: map[string]interface{}{
			"resource":    resource,
			"resource_id": id,
			"verified":    verified,
		},
	})
}
