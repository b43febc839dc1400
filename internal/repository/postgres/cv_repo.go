package postgres

import (
	"context"
	"errors"
	"fmt"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
)

type cvRepo struct {
	db DBTX
}

func NewCVRepository(db DBTX) domain.CVRepository {
	return &cvRepo{db: db}
}

const cvColumns = `id, user_id, headline, summary, is_public, created_at, updated_at`

func (r *cvRepo) Create(ctx context.Context, cv *domain.CV) error {
	query := `INSERT INTO cvs (user_id, headline, summary, is_public, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id`
	err := r.db.QueryRow(ctx, query,
		cv.UserID, cv.Headline, cv.Summary, cv.IsPublic, cv.CreatedAt, cv.UpdatedAt,
	).Scan(&cv.ID)
	if err != nil {
		return mapWriteError(err, "User already has a CV")
	}
	return nil
}

func (r *cvRepo) GetByID(ctx context.Context, id int64) (*domain.CV, error) {
	return r.getOne(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1`, id)
}

func (r *cvRepo) GetByUserID(ctx context.Context, userID int64) (*domain.CV, error) {
	return r.getOne(ctx, `SELECT `+cvColumns+` FROM cvs WHERE user_id = $1`, userID)
}

func (r *cvRepo) getOne(ctx context.Context, query string, arg int64) (*domain.CV, error) {
	var cv domain.CV
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&cv.ID, &cv.UserID, &cv.Headline, &cv.Summary, &cv.IsPublic, &cv.CreatedAt, &cv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &cv, nil
}

func (r *cvRepo) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cvs WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

func (r *cvRepo) Update(ctx context.Context, cv *domain.CV) error {
	query := `UPDATE cvs SET headline = $2, summary = $3, is_public = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, cv.ID, cv.Headline, cv.Summary, cv.IsPublic, cv.UpdatedAt)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("CV not found")
	}
	return nil
}

// DeleteWithChildren removes education, experience and the CV in one transaction.
// Nothing is committed unless the CV row itself is deleted.
func (r *cvRepo) DeleteWithChildren(ctx context.Context, id int64) (domain.CascadeDeleteResult, error) {
	var res domain.CascadeDeleteResult

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return res, apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM education WHERE cv_id = $1`, id)
	if err != nil {
		return res, apperror.Internal(fmt.Errorf("delete education: %w", err))
	}
	res.Education = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `DELETE FROM experience WHERE cv_id = $1`, id)
	if err != nil {
		return res, apperror.Internal(fmt.Errorf("delete experience: %w", err))
	}
	res.Experience = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return res, apperror.Internal(fmt.Errorf("delete cv: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return domain.CascadeDeleteResult{}, apperror.NotFound("CV not found")
	}
	res.CV = tag.RowsAffected()

	if err := tx.Commit(ctx); err != nil {
		return domain.CascadeDeleteResult{}, apperror.Internal(err)
	}
	return res, nil
}
