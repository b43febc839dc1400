package usecase_test

import (
	"context"
	"time"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

type MockCVRepo struct {
	mock.Mock
}

func (m *MockCVRepo) Create(ctx context.Context, cv *domain.CV) error {
	return m.Called(ctx, cv).Error(0)
}
func (m *MockCVRepo) GetByID(ctx context.Context, id int64) (*domain.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CV), args.Error(1)
}
func (m *MockCVRepo) GetByUserID(ctx context.Context, userID int64) (*domain.CV, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CV), args.Error(1)
}
func (m *MockCVRepo) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockCVRepo) Update(ctx context.Context, cv *domain.CV) error {
	return m.Called(ctx, cv).Error(0)
}
func (m *MockCVRepo) DeleteWithChildren(ctx context.Context, id int64) (domain.CascadeDeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.CascadeDeleteResult), args.Error(1)
}

type MockEducationRepo struct {
	mock.Mock
}

func (m *MockEducationRepo) Create(ctx context.Context, education *domain.Education) error {
	return m.Called(ctx, education).Error(0)
}
func (m *MockEducationRepo) GetByID(ctx context.Context, id int64) (*domain.Education, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Education), args.Error(1)
}
func (m *MockEducationRepo) ListByCVID(ctx context.Context, cvID int64) ([]domain.Education, error) {
	args := m.Called(ctx, cvID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Education), args.Error(1)
}
func (m *MockEducationRepo) Update(ctx context.Context, education *domain.Education) error {
	return m.Called(ctx, education).Error(0)
}
func (m *MockEducationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockEducationRepo) SetVerified(ctx context.Context, id int64, verified bool, at *time.Time) error {
	return m.Called(ctx, id, verified, at).Error(0)
}

type MockExperienceRepo struct {
	mock.Mock
}

func (m *MockExperienceRepo) Create(ctx context.Context, experience *domain.Experience) error {
	return m.Called(ctx, experience).Error(0)
}
func (m *MockExperienceRepo) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Experience), args.Error(1)
}
func (m *MockExperienceRepo) ListByCVID(ctx context.Context, cvID int64) ([]domain.Experience, error) {
	args := m.Called(ctx, cvID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Experience), args.Error(1)
}
func (m *MockExperienceRepo) Update(ctx context.Context, experience *domain.Experience) error {
	return m.Called(ctx, experience).Error(0)
}
func (m *MockExperienceRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockExperienceRepo) SetVerified(ctx context.Context, id int64, verified bool, at *time.Time) error {
	return m.Called(ctx, id, verified, at).Error(0)
}

type MockDirectoryRepo struct {
	mock.Mock
}

func (m *MockDirectoryRepo) Create(ctx context.Context, entry *domain.DirectoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockDirectoryRepo) GetByUserID(ctx context.Context, userID int64) (*domain.DirectoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectoryEntry), args.Error(1)
}
func (m *MockDirectoryRepo) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockDirectoryRepo) Update(ctx context.Context, entry *domain.DirectoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockDirectoryRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockDirectoryRepo) ListVisible(ctx context.Context) ([]domain.DirectoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectoryEntry), args.Error(1)
}
func (m *MockDirectoryRepo) Search(ctx context.Context, keyword string) ([]domain.DirectoryEntry, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectoryEntry), args.Error(1)
}
func (m *MockDirectoryRepo) ListVisibleByBadge(ctx context.Context, badge domain.VerificationBadge) ([]domain.DirectoryEntry, error) {
	args := m.Called(ctx, badge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectoryEntry), args.Error(1)
}
func (m *MockDirectoryRepo) IncrementProfileViews(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockDirectoryUsecase only implements the refresh hook used by verification.
type MockDirectoryUsecase struct {
	domain.DirectoryUsecase
	mock.Mock
}

func (m *MockDirectoryUsecase) RefreshIfMember(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func newValidator() *validator.Validate {
	return validation.New()
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
