package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/swpark/prayernote/internal/errs"
	"github.com/swpark/prayernote/internal/model"
)

var progressID = mustUUID("cccccccc-cccc-cccc-cccc-cccccccccccc")

var progressColNames = []string{"id", "prayer_id", "content", "recorded_date", "tags", "created_at", "updated_at"}

func TestProgressRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgressRepo(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`
INSERT INTO progress (id, prayer_id, content, recorded_date, tags)
SELECT $1, pr.id, $3, $4, $5
FROM prayers pr
WHERE pr.id=$2 AND pr.user_id=$6
RETURNING created_at, updated_at`)).
		WithArgs(progressID, prayerID, "felt peace", day("2024-01-03"), []string{}, ownerID).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	p := &model.Progress{
		ID: progressID, PrayerID: prayerID,
		Content: "felt peace", RecordedDate: day("2024-01-03"), Tags: []string{},
	}
	require.NoError(t, repo.Create(context.Background(), ownerID, p))
	require.Equal(t, now, p.CreatedAt)
}

func TestProgressRepo_Create_UnownedParent(t *testing.T) {
	// The INSERT..SELECT matches no parent row, so nothing comes back.
	db, mock := newMockDB(t)
	repo := NewProgressRepo(db)

	mock.ExpectQuery(`INSERT INTO progress`).
		WithArgs(progressID, prayerID, "intruding", day("2024-01-03"), []string{}, ownerID).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}))

	p := &model.Progress{
		ID: progressID, PrayerID: prayerID,
		Content: "intruding", RecordedDate: day("2024-01-03"), Tags: []string{},
	}
	require.ErrorIs(t, repo.Create(context.Background(), ownerID, p), errs.ErrNotFound)
}

func TestProgressRepo_ListForPrayer(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgressRepo(db)
	now := time.Now()

	mock.ExpectQuery(`JOIN prayers pr ON pr.id = pg.prayer_id`).
		WithArgs(prayerID, ownerID).
		WillReturnRows(pgxmock.NewRows(progressColNames).
			AddRow(progressID, prayerID, "later", day("2024-01-05"), []string{}, now, now).
			AddRow(mustUUID("dddddddd-dddd-dddd-dddd-dddddddddddd"), prayerID, "earlier", day("2024-01-02"), []string{}, now, now))

	out, err := repo.ListForPrayer(context.Background(), prayerID, ownerID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "later", out[0].Content)
}

func TestProgressRepo_Get_WrongOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgressRepo(db)

	mock.ExpectQuery(`WHERE pg.id=\$1 AND pr.user_id=\$2`).
		WithArgs(progressID, ownerID).
		WillReturnRows(pgxmock.NewRows(progressColNames))

	_, err := repo.Get(context.Background(), progressID, ownerID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProgressRepo_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgressRepo(db)
	now := time.Now()

	content := "revised"
	mock.ExpectQuery(`UPDATE progress pg SET`).
		WithArgs(progressID, ownerID, &content, (*time.Time)(nil), (*[]string)(nil)).
		WillReturnRows(pgxmock.NewRows(progressColNames).
			AddRow(progressID, prayerID, "revised", day("2024-01-03"), []string{}, now, now))

	p, err := repo.Update(context.Background(), progressID, ownerID, model.ProgressUpdate{Content: &content})
	require.NoError(t, err)
	require.Equal(t, "revised", p.Content)
}

func TestProgressRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgressRepo(db)

	mock.ExpectExec(`DELETE FROM progress pg`).
		WithArgs(progressID, ownerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), progressID, ownerID))
}

func TestProgressRepo_CountForPrayers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgressRepo(db)

	other := mustUUID("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee")
	ids := []uuid.UUID{prayerID, other}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT prayer_id, COUNT(*) FROM progress WHERE prayer_id = ANY($1) GROUP BY prayer_id`)).
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows([]string{"prayer_id", "count"}).AddRow(prayerID, 3))

	counts, err := repo.CountForPrayers(context.Background(), ids)
	require.NoError(t, err)
	require.Equal(t, 3, counts[prayerID])
	_, ok := counts[other]
	require.False(t, ok)
}

func TestProgressRepo_CountForPrayers_Empty(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewProgressRepo(db)

	counts, err := repo.CountForPrayers(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, counts)
}
