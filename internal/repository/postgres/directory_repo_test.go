package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%Gold%", ContainsPattern("Gold"))
	assert.Equal(t, `%100\%%`, ContainsPattern("100%"))
	assert.Equal(t, `%a\_b%`, ContainsPattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, ContainsPattern(`c:\dir`))
}

func TestDates(t *testing.T) {
	d := "2020-02-29"
	parsed, err := toDate(&d)
	assert.NoError(t, err)
	assert.Equal(t, d, *fromDate(parsed))

	empty := ""
	parsed, err = toDate(&empty)
	assert.NoError(t, err)
	assert.Nil(t, parsed)
	assert.Nil(t, fromDate(nil))

	bad := "2020/02/29"
	_, err = toDate(&bad)
	assert.Error(t, err)
}

var directoryTestColumns = []string{
	"id", "user_id", "full_name", "headline", "location", "verification_badge", "is_visible",
	"searchable_text", "profile_views", "last_active", "created_at", "updated_at",
}

func directoryRow(rows *pgxmock.Rows, id, userID int64, name string, headline *string, at time.Time) *pgxmock.Rows {
	return rows.AddRow(id, userID, name, headline, (*string)(nil), "BRONZE", true, name, 0, &at, at, at)
}

func TestDirectorySearchQuery(t *testing.T) {
	ctx := context.Background()
	db := newMockDB(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	headline := "Go engineer"

	filter := regexp.QuoteMeta(`FROM directory_entries WHERE is_visible` +
		` AND (full_name ILIKE $1 ESCAPE '\'` +
		` OR COALESCE(headline, '') ILIKE $1 ESCAPE '\'` +
		` OR COALESCE(searchable_text, '') ILIKE $1 ESCAPE '\')` +
		` ORDER BY id`)
	rows := pgxmock.NewRows(directoryTestColumns)
	directoryRow(rows, 1, 10, "Ada", &headline, now)
	directoryRow(rows, 2, 20, "Grace", nil, now)
	db.ExpectQuery(filter).WithArgs(`%50\%\_off%`).WillReturnRows(rows)

	got, err := NewDirectoryRepository(db).Search(ctx, "50%_off")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []int64{1, 2}, []int64{got[0].ID, got[1].ID})
	assert.Equal(t, domain.BadgeBronze, got[0].VerificationBadge)
	assert.Equal(t, "Go engineer", *got[0].Headline)
	assert.Nil(t, got[1].Headline)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestDirectoryListVisibleQuery(t *testing.T) {
	db := newMockDB(t)
	db.ExpectQuery(regexp.QuoteMeta(`FROM directory_entries WHERE is_visible ORDER BY id`)).
		WillReturnRows(pgxmock.NewRows(directoryTestColumns))

	got, err := NewDirectoryRepository(db).ListVisible(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestIncrementProfileViews(t *testing.T) {
	ctx := context.Background()
	increment := regexp.QuoteMeta(`UPDATE directory_entries SET profile_views = profile_views + 1 WHERE user_id = $1 RETURNING profile_views`)

	t.Run("returns the new count", func(t *testing.T) {
		db := newMockDB(t)
		db.ExpectQuery(increment).WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows([]string{"profile_views"}).AddRow(5))

		views, err := NewDirectoryRepository(db).IncrementProfileViews(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, 5, views)
		assert.NoError(t, db.ExpectationsWereMet())
	})

	t.Run("missing entry", func(t *testing.T) {
		db := newMockDB(t)
		db.ExpectQuery(increment).WithArgs(int64(8)).
			WillReturnRows(pgxmock.NewRows([]string{"profile_views"}))

		_, err := NewDirectoryRepository(db).IncrementProfileViews(ctx, 8)

		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}
