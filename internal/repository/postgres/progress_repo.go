package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/swpark/prayernote/internal/errs"
	"github.com/swpark/prayernote/internal/model"
)

// ProgressRepo implements ProgressRepository using PostgreSQL. Every query
// reaches progress rows through the parent prayer's user_id, so ownership
// checks and row access are always one statement.
type ProgressRepo struct{ db *DB }

// NewProgressRepo constructs a progress repository.
func NewProgressRepo(db *DB) *ProgressRepo { return &ProgressRepo{db: db} }

func scanProgress(row pgx.Row) (*model.Progress, error) {
	var p model.Progress
	err := row.Scan(&p.ID, &p.PrayerID, &p.Content, &p.RecordedDate, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts via INSERT..SELECT over the parent prayer so the ownership
// check and the insert cannot race; no matching parent yields ErrNotFound.
func (r *ProgressRepo) Create(ctx context.Context, ownerID uuid.UUID, p *model.Progress) error {
	const q = `
INSERT INTO progress (id, prayer_id, content, recorded_date, tags)
SELECT $1, pr.id, $3, $4, $5
FROM prayers pr
WHERE pr.id=$2 AND pr.user_id=$6
RETURNING created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, p.ID, p.PrayerID, p.Content, p.RecordedDate, p.Tags, ownerID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}

// ListForPrayer returns the prayer's entries, newest recorded first.
func (r *ProgressRepo) ListForPrayer(ctx context.Context, prayerID, ownerID uuid.UUID) ([]model.Progress, error) {
	const q = `
SELECT pg.id, pg.prayer_id, pg.content, pg.recorded_date, pg.tags, pg.created_at, pg.updated_at
FROM progress pg
JOIN prayers pr ON pr.id = pg.prayer_id
WHERE pg.prayer_id=$1 AND pr.user_id=$2
ORDER BY pg.recorded_date DESC, pg.created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, prayerID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Progress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Get selects one entry through its parent's ownership.
func (r *ProgressRepo) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Progress, error) {
	const q = `
SELECT pg.id, pg.prayer_id, pg.content, pg.recorded_date, pg.tags, pg.created_at, pg.updated_at
FROM progress pg
JOIN prayers pr ON pr.id = pg.prayer_id
WHERE pg.id=$1 AND pr.user_id=$2`
	return scanProgress(r.db.Pool.QueryRow(ctx, q, id, ownerID))
}

// Update applies partial changes through the parent join.
func (r *ProgressRepo) Update(ctx context.Context, id, ownerID uuid.UUID, upd model.ProgressUpdate) (*model.Progress, error) {
	const q = `
UPDATE progress pg SET
  content       = COALESCE($3, pg.content),
  recorded_date = COALESCE($4, pg.recorded_date),
  tags          = COALESCE($5, pg.tags),
  updated_at    = now()
FROM prayers pr
WHERE pg.id=$1 AND pr.id = pg.prayer_id AND pr.user_id=$2
RETURNING pg.id, pg.prayer_id, pg.content, pg.recorded_date, pg.tags, pg.created_at, pg.updated_at`
	return scanProgress(r.db.Pool.QueryRow(ctx, q, id, ownerID, upd.Content, upd.RecordedDate, upd.Tags))
}

// Delete removes one entry through the parent join.
func (r *ProgressRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	const q = `
DELETE FROM progress pg
USING prayers pr
WHERE pg.id=$1 AND pr.id = pg.prayer_id AND pr.user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// CountForPrayers batches entry counts for a set of prayers. Prayers with no
// entries are simply absent from the result map.
func (r *ProgressRepo) CountForPrayers(ctx context.Context, prayerIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(prayerIDs))
	if len(prayerIDs) == 0 {
		return out, nil
	}
	const q = `SELECT prayer_id, COUNT(*) FROM progress WHERE prayer_id = ANY($1) GROUP BY prayer_id`
	rows, err := r.db.Pool.Query(ctx, q, prayerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}
