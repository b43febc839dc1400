package postgres

import (
	"context"
	"errors"
	"time"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
)

type experienceRepo struct {
	db DBTX
}

func NewExperienceRepository(db DBTX) domain.ExperienceRepository {
	return &experienceRepo{db: db}
}

const experienceColumns = `id, cv_id, company, role, description, start_date, end_date, is_current, is_verified, verification_date`

func scanExperience(row pgx.Row) (*domain.Experience, error) {
	var e domain.Experience
	var startDate, endDate *time.Time
	err := row.Scan(
		&e.ID, &e.CVID, &e.Company, &e.Role, &e.Description,
		&startDate, &endDate, &e.IsCurrent, &e.IsVerified, &e.VerificationDate,
	)
	if err != nil {
		return nil, err
	}
	e.StartDate = fromDate(startDate)
	e.EndDate = fromDate(endDate)
	return &e, nil
}

func (r *experienceRepo) Create(ctx context.Context, e *domain.Experience) error {
	startDate, err := toDate(e.StartDate)
	if err != nil {
		return err
	}
	endDate, err := toDate(e.EndDate)
	if err != nil {
		return err
	}

	query := `INSERT INTO experience (cv_id, company, role, description, start_date, end_date, is_current, is_verified, verification_date)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              RETURNING id`
	err = r.db.QueryRow(ctx, query,
		e.CVID, e.Company, e.Role, e.Description, startDate, endDate, e.IsCurrent, e.IsVerified, e.VerificationDate,
	).Scan(&e.ID)
	if err != nil {
		return mapWriteError(err, "Experience already exists")
	}
	return nil
}

func (r *experienceRepo) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	e, err := scanExperience(r.db.QueryRow(ctx, `SELECT `+experienceColumns+` FROM experience WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return e, nil
}

func (r *experienceRepo) ListByCVID(ctx context.Context, cvID int64) ([]domain.Experience, error) {
	rows, err := r.db.Query(ctx, `SELECT `+experienceColumns+` FROM experience WHERE cv_id = $1 ORDER BY id`, cvID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	result := []domain.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return result, nil
}

func (r *experienceRepo) Update(ctx context.Context, e *domain.Experience) error {
	startDate, err := toDate(e.StartDate)
	if err != nil {
		return err
	}
	endDate, err := toDate(e.EndDate)
	if err != nil {
		return err
	}

	query := `UPDATE experience SET company = $2, role = $3, description = $4, start_date = $5, end_date = $6, is_current = $7
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, e.ID, e.Company, e.Role, e.Description, startDate, endDate, e.IsCurrent)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Experience not found")
	}
	return nil
}

func (r *experienceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM experience WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Experience not found")
	}
	return nil
}

func (r *experienceRepo) SetVerified(ctx context.Context, id int64, verified bool, at *time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE experience SET is_verified = $2, verification_date = $3 WHERE id = $1`, id, verified, at)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Experience not found")
	}
	return nil
}
