package usecase_test

import (
	"context"
	"testing"
	"time"

	"vericv-backend/internal/domain"
	"vericv-backend/internal/usecase"
	"vericv-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var admin = domain.Actor{UserID: 100, Roles: []string{domain.RoleUser, domain.RoleAdmin}}

func TestVerificationRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewVerificationUsecase(new(MockUserRepo), new(MockCVRepo), new(MockEducationRepo), new(MockExperienceRepo), nil, nil)
	user := domain.Actor{UserID: 1, Roles: []string{domain.RoleUser}}

	_, err := uc.VerifyUser(ctx, user, 2, true)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
	_, err = uc.VerifyEducation(ctx, user, 2, true)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
	_, err = uc.VerifyExperience(ctx, user, 2, true)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

func TestVerifyEducationRefreshesOwnerEntry(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	cvs := new(MockCVRepo)
	edus := new(MockEducationRepo)
	dir := new(MockDirectoryUsecase)
	uc := usecase.NewVerificationUsecase(users, cvs, edus, new(MockExperienceRepo), dir, nil)

	edus.On("GetByID", ctx, int64(5)).Return(&domain.Education{ID: 5, CVID: 10}, nil)
	edus.On("SetVerified", ctx, int64(5), true, mock.AnythingOfType("*time.Time")).Return(nil)
	cvs.On("GetByID", ctx, int64(10)).Return(&domain.CV{ID: 10, UserID: 1}, nil)
	dir.On("RefreshIfMember", ctx, int64(1)).Return(nil)

	edu, err := uc.VerifyEducation(ctx, admin, 5, true)
	require.NoError(t, err)
	assert.True(t, edu.IsVerified)
	require.NotNil(t, edu.VerificationDate)
	assert.WithinDuration(t, time.Now(), *edu.VerificationDate, time.Minute)
	dir.AssertExpectations(t)
}

func TestUnverifyExperienceClearsDate(t *testing.T) {
	ctx := context.Background()
	exps := new(MockExperienceRepo)
	cvs := new(MockCVRepo)
	dir := new(MockDirectoryUsecase)
	uc := usecase.NewVerificationUsecase(new(MockUserRepo), cvs, new(MockEducationRepo), exps, dir, nil)

	stamped := time.Now()
	exps.On("GetByID", ctx, int64(7)).Return(&domain.Experience{ID: 7, CVID: 10, IsVerified: true, VerificationDate: &stamped}, nil)
	exps.On("SetVerified", ctx, int64(7), false, (*time.Time)(nil)).Return(nil)
	cvs.On("GetByID", ctx, int64(10)).Return(&domain.CV{ID: 10, UserID: 1}, nil)
	dir.On("RefreshIfMember", ctx, int64(1)).Return(nil)

	exp, err := uc.VerifyExperience(ctx, admin, 7, false)
	require.NoError(t, err)
	assert.False(t, exp.IsVerified)
	assert.Nil(t, exp.VerificationDate)
}

func TestVerifyUser(t *testing.T) {
	ctx := context.Background()

	t.Run("sets flag and refreshes", func(t *testing.T) {
		users := new(MockUserRepo)
		dir := new(MockDirectoryUsecase)
		uc := usecase.NewVerificationUsecase(users, new(MockCVRepo), new(MockEducationRepo), new(MockExperienceRepo), dir, nil)

		users.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1}, nil)
		users.On("SetVerified", ctx, int64(1), true).Return(nil)
		dir.On("RefreshIfMember", ctx, int64(1)).Return(apperror.Internal(nil))

		user, err := uc.VerifyUser(ctx, admin, 1, true)
		require.NoError(t, err)
		assert.True(t, user.IsVerified)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := usecase.NewVerificationUsecase(users, new(MockCVRepo), new(MockEducationRepo), new(MockExperienceRepo), nil, nil)
		users.On("GetByID", ctx, int64(9)).Return(nil, nil)

		_, err := uc.VerifyUser(ctx, admin, 9, true)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}
