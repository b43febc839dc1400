package postgres

import (
	"context"
	"errors"
	"strings"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
)

type directoryRepo struct {
	db DBTX
}

func NewDirectoryRepository(db DBTX) domain.DirectoryRepository {
	return &directoryRepo{db: db}
}

const directoryColumns = `id, user_id, full_name, headline, location, verification_badge, is_visible,
	COALESCE(searchable_text, ''), profile_views, last_active, created_at, updated_at`

func scanDirectoryEntry(row pgx.Row) (*domain.DirectoryEntry, error) {
	var e domain.DirectoryEntry
	var badge string
	err := row.Scan(
		&e.ID, &e.UserID, &e.FullName, &e.Headline, &e.Location, &badge, &e.IsVisible,
		&e.SearchableText, &e.ProfileViews, &e.LastActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.VerificationBadge = domain.VerificationBadge(badge)
	return &e, nil
}

func (r *directoryRepo) Create(ctx context.Context, e *domain.DirectoryEntry) error {
	query := `INSERT INTO directory_entries
                (user_id, full_name, headline, location, verification_badge, is_visible, searchable_text,
                 profile_views, last_active, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
              RETURNING id`
	err := r.db.QueryRow(ctx, query,
		e.UserID, e.FullName, e.Headline, e.Location, string(e.VerificationBadge), e.IsVisible, e.SearchableText,
		e.ProfileViews, e.LastActive, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return mapWriteError(err, "User is already in the directory")
	}
	return nil
}

func (r *directoryRepo) GetByUserID(ctx context.Context, userID int64) (*domain.DirectoryEntry, error) {
	e, err := scanDirectoryEntry(r.db.QueryRow(ctx, `SELECT `+directoryColumns+` FROM directory_entries WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return e, nil
}

func (r *directoryRepo) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM directory_entries WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

// Update writes every mutable column except profile_views, which only
// IncrementProfileViews touches.
func (r *directoryRepo) Update(ctx context.Context, e *domain.DirectoryEntry) error {
	query := `UPDATE directory_entries
              SET full_name = $2, headline = $3, location = $4, verification_badge = $5, is_visible = $6,
                  searchable_text = $7, last_active = $8, updated_at = $9
              WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query,
		e.UserID, e.FullName, e.Headline, e.Location, string(e.VerificationBadge), e.IsVisible,
		e.SearchableText, e.LastActive, e.UpdatedAt,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Directory entry not found")
	}
	return nil
}

func (r *directoryRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM directory_entries WHERE user_id = $1`, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Directory entry not found")
	}
	return nil
}

func (r *directoryRepo) ListVisible(ctx context.Context) ([]domain.DirectoryEntry, error) {
	return r.list(ctx, `SELECT `+directoryColumns+` FROM directory_entries WHERE is_visible ORDER BY id`)
}

func (r *directoryRepo) Search(ctx context.Context, keyword string) ([]domain.DirectoryEntry, error) {
	query := `SELECT ` + directoryColumns + ` FROM directory_entries
              WHERE is_visible
                AND (full_name ILIKE $1 ESCAPE '\'
                  OR COALESCE(headline, '') ILIKE $1 ESCAPE '\'
                  OR COALESCE(searchable_text, '') ILIKE $1 ESCAPE '\')
              ORDER BY id`
	return r.list(ctx, query, ContainsPattern(keyword))
}

func (r *directoryRepo) ListVisibleByBadge(ctx context.Context, badge domain.VerificationBadge) ([]domain.DirectoryEntry, error) {
	query := `SELECT ` + directoryColumns + ` FROM directory_entries
              WHERE is_visible AND verification_badge = $1
              ORDER BY id`
	return r.list(ctx, query, string(badge))
}

// IncrementProfileViews bumps the counter in a single statement and returns the new value.
func (r *directoryRepo) IncrementProfileViews(ctx context.Context, userID int64) (int, error) {
	var views int
	err := r.db.QueryRow(ctx,
		`UPDATE directory_entries SET profile_views = profile_views + 1 WHERE user_id = $1 RETURNING profile_views`,
		userID,
	).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NotFound("Directory entry not found")
		}
		return 0, apperror.Internal(err)
	}
	return views, nil
}

func (r *directoryRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.DirectoryEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	entries := []domain.DirectoryEntry{}
	for rows.Next() {
		e, err := scanDirectoryEntry(rows)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds an ILIKE pattern that matches keyword literally as a substring.
func ContainsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}
