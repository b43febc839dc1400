package usecase_test

import (
	"context"
	"testing"
	"time"

	"vericv-backend/internal/domain"
	"vericv-backend/internal/usecase"
	"vericv-backend/pkg/apperror"
	"vericv-backend/pkg/auth"
	"vericv-backend/pkg/security"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "unit-test-secret-unit-test-secret"

func newAuthUsecase(t *testing.T, users *MockUserRepo, maxAttempts int) domain.AuthUsecase {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := security.DefaultLoginTrackerConfig()
	cfg.MaxAttempts = maxAttempts
	tracker := security.NewLoginTracker(client, cfg, nil)
	return usecase.NewAuthUsecase(users, auth.NewTokenService(testSecret, time.Hour), tracker, nil, newValidator())
}

func hashed(t *testing.T, password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates unverified user with token", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := newAuthUsecase(t, users, 5)
		users.On("ExistsByEmail", ctx, "ada@example.com").Return(false, nil)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 42
		}).Return(nil)

		res, err := uc.Register(ctx, domain.RegisterInput{Email: " Ada@Example.com ", FullName: "Ada Lovelace", Password: "correct horse"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", res.TokenType)
		assert.Equal(t, int64(3600), res.ExpiresIn)
		assert.False(t, res.User.IsVerified)
		assert.True(t, res.User.IsActive)
		assert.Equal(t, []string{domain.RoleUser}, res.User.Roles)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("correct horse")))

		claims, err := auth.NewTokenService(testSecret, time.Hour).Verify(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", claims.Email())
		assert.Equal(t, int64(42), *claims.UserID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := newAuthUsecase(t, users, 5)
		users.On("ExistsByEmail", ctx, "ada@example.com").Return(true, nil)

		_, err := uc.Register(ctx, domain.RegisterInput{Email: "ada@example.com", FullName: "Ada", Password: "correct horse"})
		assert.True(t, apperror.IsKind(err, apperror.KindAlreadyExists))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc := newAuthUsecase(t, new(MockUserRepo), 5)

		_, err := uc.Register(ctx, domain.RegisterInput{Email: "not-an-email", FullName: "R2D2", Password: "short"})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		assert.Contains(t, err.Error(), "email must be a valid email address")
		assert.Contains(t, err.Error(), "password must be at least 8 characters")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	meta := domain.RequestMeta{IP: "10.0.0.1", UserAgent: "test"}

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := newAuthUsecase(t, users, 5)
		users.On("GetByEmail", ctx, "ada@example.com").
			Return(&domain.User{ID: 1, Email: "ada@example.com", PasswordHash: hashed(t, "secret-pass"), IsActive: true}, nil)

		res, err := uc.Login(ctx, domain.LoginInput{Email: "ada@example.com", Password: "secret-pass"}, meta)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := newAuthUsecase(t, users, 5)
		users.On("GetByEmail", ctx, "ada@example.com").
			Return(&domain.User{ID: 1, Email: "ada@example.com", PasswordHash: hashed(t, "secret-pass"), IsActive: true}, nil)
		users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)

		_, err1 := uc.Login(ctx, domain.LoginInput{Email: "ada@example.com", Password: "wrong-pass"}, meta)
		_, err2 := uc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "wrong-pass"}, meta)
		assert.True(t, apperror.IsKind(err1, apperror.KindUnauthenticated))
		assert.Equal(t, err1.Error(), err2.Error())
	})

	t.Run("inactive account", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := newAuthUsecase(t, users, 5)
		users.On("GetByEmail", ctx, "ada@example.com").
			Return(&domain.User{ID: 1, Email: "ada@example.com", PasswordHash: hashed(t, "secret-pass"), IsActive: false}, nil)

		_, err := uc.Login(ctx, domain.LoginInput{Email: "ada@example.com", Password: "secret-pass"}, meta)
		assert.True(t, apperror.IsKind(err, apperror.KindUnauthenticated))
	})

	t.Run("locked after repeated failures", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := newAuthUsecase(t, users, 3)
		users.On("GetByEmail", ctx, "ada@example.com").
			Return(&domain.User{ID: 1, Email: "ada@example.com", PasswordHash: hashed(t, "secret-pass"), IsActive: true}, nil)

		for i := 0; i < 3; i++ {
			_, err := uc.Login(ctx, domain.LoginInput{Email: "ada@example.com", Password: "wrong-pass"}, meta)
			assert.True(t, apperror.IsKind(err, apperror.KindUnauthenticated))
		}

		_, err := uc.Login(ctx, domain.LoginInput{Email: "ada@example.com", Password: "secret-pass"}, meta)
		assert.True(t, apperror.IsKind(err, apperror.KindRateLimited))
		users.AssertNumberOfCalls(t, "GetByEmail", 3)
	})
}

func TestGetCurrentUser(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	uc := newAuthUsecase(t, users, 5)
	users.On("GetByID", ctx, int64(1)).Return(nil, nil)

	_, err := uc.GetCurrentUser(ctx, 1)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
