package postgres

import (
	"errors"
	"time"

	"vericv-backend/pkg/apperror"
	"vericv-backend/pkg/validation"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapWriteError converts constraint violations into domain errors. Anything else is internal.
func mapWriteError(err error, conflictMessage string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.AlreadyExists(conflictMessage)
		case pgForeignKeyViolation:
			return apperror.NotFound("Referenced record not found")
		}
	}
	return apperror.Internal(err)
}

// toDate parses an optional YYYY-MM-DD value for a DATE column.
func toDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(validation.DateLayout, *s)
	if err != nil {
		return nil, apperror.Validation("date must be in YYYY-MM-DD format")
	}
	return &t, nil
}

func fromDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validation.DateLayout)
	return &s
}
