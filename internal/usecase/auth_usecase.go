package usecase

import (
	"context"
	"strings"
	"time"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"
	"vericv-backend/pkg/auth"
	"vericv-backend/pkg/logger"
	"vericv-backend/pkg/sanitize"
	"vericv-backend/pkg/security"
	"vericv-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentialsMessage = "Invalid email or password"

type authUsecase struct {
	userRepo     domain.UserRepository
	tokens       *auth.TokenService
	loginTracker *security.LoginTracker
	secLogger    *security.SecurityLogger
	validate     *validator.Validate
	sanitizer    *sanitize.Sanitizer
	bcryptCost   int
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	tokens *auth.TokenService,
	loginTracker *security.LoginTracker,
	secLogger *security.SecurityLogger,
	validate *validator.Validate,
) domain.AuthUsecase {
	if secLogger == nil {
		secLogger = security.DefaultLogger()
	}
	if loginTracker == nil {
		loginTracker = security.NewLoginTracker(nil, security.DefaultLoginTrackerConfig(), secLogger)
	}
	return &authUsecase{
		userRepo:     userRepo,
		tokens:       tokens,
		loginTracker: loginTracker,
		secLogger:    secLogger,
		validate:     validate,
		sanitizer:    sanitize.New(),
		bcryptCost:   bcrypt.DefaultCost,
	}
}

func (u *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = u.sanitizer.String(input.FullName)
	if err := validation.Check(u.validate, input); err != nil {
		return nil, err
	}

	exists, err := u.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.AlreadyExists("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), u.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
		IsActive:     true,
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	u.secLogger.Log(ctx, security.SecurityEvent{
		Event:        security.EventRegistered,
		SubjectType:  "email",
		SubjectValue: security.MaskEmail(user.Email),
	})
	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, input domain.LoginInput, meta domain.RequestMeta) (*domain.AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validation.Check(u.validate, input); err != nil {
		return nil, err
	}

	blocked, err := u.loginTracker.IsBlocked(ctx, input.Email, meta.IP)
	if err != nil {
		// Redis trouble must not lock everybody out.
		logger.Log.WarnContext(ctx, "login tracker unavailable", "error", err)
	}
	if blocked {
		u.secLogger.LogLoginBlocked(ctx, input.Email, meta.IP, meta.UserAgent, meta.RequestID)
		return nil, apperror.TooManyRequests("Too many failed login attempts, try again later")
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !checkPassword(user.PasswordHash, input.Password) {
		u.recordFailure(ctx, input.Email, meta)
		return nil, apperror.Unauthenticated(invalidCredentialsMessage)
	}
	if !user.IsActive {
		u.recordFailure(ctx, input.Email, meta)
		return nil, apperror.Unauthenticated("Account is disabled")
	}

	if err := u.loginTracker.ClearAttempts(ctx, input.Email, meta.IP); err != nil {
		logger.Log.WarnContext(ctx, "failed to clear login attempts", "error", err)
	}
	u.secLogger.LogLoginSuccess(ctx, input.Email, meta.IP, meta.UserAgent, meta.RequestID)
	return u.issue(user)
}

func (u *authUsecase) recordFailure(ctx context.Context, email string, meta domain.RequestMeta) {
	_, _, err := u.loginTracker.RecordFailedAttempt(ctx, email, security.LoginMeta{
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		RequestID: meta.RequestID,
	})
	if err != nil {
		logger.Log.WarnContext(ctx, "failed to record login attempt", "error", err)
	}
}

func (u *authUsecase) issue(user *domain.User) (*domain.AuthResult, error) {
	id := user.ID
	token, err := u.tokens.Issue(user.Email, &id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(u.tokens.TTL().Seconds()),
		User:      user,
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (u *authUsecase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
