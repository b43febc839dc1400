package postgres

import (
	"context"
	"errors"
	"time"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
)

type educationRepo struct {
	db DBTX
}

func NewEducationRepository(db DBTX) domain.EducationRepository {
	return &educationRepo{db: db}
}

const educationColumns = `id, cv_id, institution, degree, field_of_study, start_date, end_date, is_verified, verification_date`

func scanEducation(row pgx.Row) (*domain.Education, error) {
	var e domain.Education
	var startDate, endDate *time.Time
	err := row.Scan(
		&e.ID, &e.CVID, &e.Institution, &e.Degree, &e.FieldOfStudy,
		&startDate, &endDate, &e.IsVerified, &e.VerificationDate,
	)
	if err != nil {
		return nil, err
	}
	e.StartDate = fromDate(startDate)
	e.EndDate = fromDate(endDate)
	return &e, nil
}

func (r *educationRepo) Create(ctx context.Context, e *domain.Education) error {
	startDate, err := toDate(e.StartDate)
	if err != nil {
		return err
	}
	endDate, err := toDate(e.EndDate)
	if err != nil {
		return err
	}

	query := `INSERT INTO education (cv_id, institution, degree, field_of_study, start_date, end_date, is_verified, verification_date)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              RETURNING id`
	err = r.db.QueryRow(ctx, query,
		e.CVID, e.Institution, e.Degree, e.FieldOfStudy, startDate, endDate, e.IsVerified, e.VerificationDate,
	).Scan(&e.ID)
	if err != nil {
		return mapWriteError(err, "Education already exists")
	}
	return nil
}

func (r *educationRepo) GetByID(ctx context.Context, id int64) (*domain.Education, error) {
	e, err := scanEducation(r.db.QueryRow(ctx, `SELECT `+educationColumns+` FROM education WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return e, nil
}

func (r *educationRepo) ListByCVID(ctx context.Context, cvID int64) ([]domain.Education, error) {
	rows, err := r.db.Query(ctx, `SELECT `+educationColumns+` FROM education WHERE cv_id = $1 ORDER BY id`, cvID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	result := []domain.Education{}
	for rows.Next() {
		e, err := scanEducation(rows)
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

func (r *educationRepo) Update(ctx context.Context, e *domain.Education) error {
	startDate, err := toDate(e.StartDate)
	if err != nil {
		return err
	}
	endDate, err := toDate(e.EndDate)
	if err != nil {
		return err
	}

	query := `UPDATE education SET institution = $2, degree = $3, field_of_study = $4, start_date = $5, end_date = $6
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, e.ID, e.Institution, e.Degree, e.FieldOfStudy, startDate, endDate)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Education not found")
	}
	return nil
}

func (r *educationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM education WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Education not found")
	}
	return nil
}

func (r *educationRepo) SetVerified(ctx context.Context, id int64, verified bool, at *time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE education SET is_verified = $2, verification_date = $3 WHERE id = $1`, id, verified, at)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Education not found")
	}
	return nil
}
