package domain

import (
	"context"
	"slices"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	IsVerified   bool      `json:"isVerified"`
	IsActive     bool      `json:"isActive"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// Actor is the authenticated caller of an operation, resolved by the transport layer.
type Actor struct {
	UserID int64
	Roles  []string
}

func (a Actor) IsAdmin() bool {
	return slices.Contains(a.Roles, RoleAdmin)
}

// RequestMeta carries transport details used for security logging.
type RequestMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	FullName string `json:"fullName" validate:"notblank,max=200,valid_name,no_emoji"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
	User      *User  `json:"user"`
}

// UserRepository lookups return (nil, nil) when the user does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SetVerified(ctx context.Context, id int64, verified bool) error
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput, meta RequestMeta) (*AuthResult, error)
	GetCurrentUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
