package postgres

import (
	"context"
	"errors"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

type userRepo struct {
	db DBTX
}

func NewUserRepository(db DBTX) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, full_name, password_hash, is_verified, is_active, roles, created_at, updated_at`

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, full_name, password_hash, is_verified, is_active, roles, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              RETURNING id`
	err := r.db.QueryRow(ctx, query,
		user.Email, user.FullName, user.PasswordHash, user.IsVerified, user.IsActive,
		pq.Array(user.Roles), user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return mapWriteError(err, "User with this email already exists")
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepo) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	var roles []string
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash,
		&user.IsVerified, &user.IsActive, pq.Array(&roles),
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	user.Roles = roles
	return &user, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

func (r *userRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET is_verified = $2, updated_at = NOW() WHERE id = $1`, id, verified)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}
