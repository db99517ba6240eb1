package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/swpark/prayernote/internal/errs"
	"github.com/swpark/prayernote/internal/model"
	"github.com/swpark/prayernote/internal/repository"
)

// PrayerRepo implements PrayerRepository using PostgreSQL.
type PrayerRepo struct{ db *DB }

// NewPrayerRepo constructs a prayer repository.
func NewPrayerRepo(db *DB) *PrayerRepo { return &PrayerRepo{db: db} }

const prayerCols = `id, user_id, subject, title, body, category, targets, tags, status, start_date, resolution_date, resolution_note, created_at, updated_at`

func scanPrayer(row pgx.Row) (*model.Prayer, error) {
	var p model.Prayer
	err := row.Scan(
		&p.ID, &p.UserID, &p.Subject, &p.Title, &p.Body, &p.Category,
		&p.Targets, &p.Tags, &p.Status, &p.StartDate,
		&p.ResolutionDate, &p.ResolutionNote, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func collectPrayers(rows pgx.Rows) ([]model.Prayer, error) {
	defer rows.Close()
	out := []model.Prayer{}
	for rows.Next() {
		p, err := scanPrayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Create inserts a new prayer row and fills store-maintained timestamps.
func (r *PrayerRepo) Create(ctx context.Context, p *model.Prayer) error {
	const q = `
INSERT INTO prayers (id, user_id, subject, title, body, category, targets, tags, status, start_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created_at, updated_at`
	return r.db.Pool.QueryRow(ctx, q,
		p.ID, p.UserID, p.Subject, p.Title, p.Body, p.Category,
		p.Targets, p.Tags, p.Status, p.StartDate,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Get selects one prayer by (id, owner) in a single lookup.
func (r *PrayerRepo) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Prayer, error) {
	const q = `SELECT ` + prayerCols + ` FROM prayers WHERE id=$1 AND user_id=$2`
	return scanPrayer(r.db.Pool.QueryRow(ctx, q, id, ownerID))
}

// listConditions builds the conjunctive WHERE clause for the owner + filter.
func listConditions(ownerID uuid.UUID, f model.ListFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{ownerID}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Subject != nil {
		args = append(args, *f.Subject)
		conds = append(conds, fmt.Sprintf("subject = $%d", len(args)))
	}
	if f.Search != nil {
		args = append(args, "%"+*f.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR body ILIKE $%d)", len(args), len(args)))
	}
	return strings.Join(conds, " AND "), args
}

// List returns one page of the filtered set plus its total count. The count
// is taken before pagination so callers can derive page math.
func (r *PrayerRepo) List(ctx context.Context, ownerID uuid.UUID, f model.ListFilter, offset, limit int) ([]model.Prayer, int, error) {
	where, args := listConditions(ownerID, f)

	var total int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM prayers WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	q := fmt.Sprintf(`SELECT %s FROM prayers WHERE %s ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`,
		prayerCols, where, len(args)-1, len(args))
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectPrayers(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update applies partial changes via COALESCE so unset fields keep their
// current values, and returns the updated row.
func (r *PrayerRepo) Update(ctx context.Context, id, ownerID uuid.UUID, upd model.PrayerUpdate) (*model.Prayer, error) {
	const q = `
UPDATE prayers SET
  subject    = COALESCE($3, subject),
  title      = COALESCE($4, title),
  body       = COALESCE($5, body),
  category   = COALESCE($6, category),
  targets    = COALESCE($7, targets),
  tags       = COALESCE($8, tags),
  start_date = COALESCE($9, start_date),
  updated_at = now()
WHERE id=$1 AND user_id=$2
RETURNING ` + prayerCols
	return scanPrayer(r.db.Pool.QueryRow(ctx, q, id, ownerID,
		upd.Subject, upd.Title, upd.Body, upd.Category, upd.Targets, upd.Tags, upd.StartDate))
}

// Delete removes the prayer. Progress rows cascade via FK.
func (r *PrayerRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	const q = `DELETE FROM prayers WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Resolve sets status and both resolution fields in one atomic update.
func (r *PrayerRepo) Resolve(ctx context.Context, id, ownerID uuid.UUID, date time.Time, note string) (*model.Prayer, error) {
	const q = `
UPDATE prayers SET
  status          = 'resolved',
  resolution_date = $3,
  resolution_note = $4,
  updated_at      = now()
WHERE id=$1 AND user_id=$2
RETURNING ` + prayerCols
	return scanPrayer(r.db.Pool.QueryRow(ctx, q, id, ownerID, date, note))
}

// Counts computes total/active/resolved in a single pass.
func (r *PrayerRepo) Counts(ctx context.Context, ownerID uuid.UUID) (repository.PrayerCounts, error) {
	const q = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE status = 'active'),
       COUNT(*) FILTER (WHERE status = 'resolved')
FROM prayers WHERE user_id=$1`
	var c repository.PrayerCounts
	if err := r.db.Pool.QueryRow(ctx, q, ownerID).Scan(&c.Total, &c.Active, &c.Resolved); err != nil {
		return repository.PrayerCounts{}, err
	}
	return c, nil
}

// CountsBySubject returns per-subject counts, largest first.
func (r *PrayerRepo) CountsBySubject(ctx context.Context, ownerID uuid.UUID) ([]model.SubjectCount, error) {
	const q = `
SELECT subject, COUNT(*)
FROM prayers WHERE user_id=$1
GROUP BY subject
ORDER BY COUNT(*) DESC, subject ASC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SubjectCount{}
	for rows.Next() {
		var sc model.SubjectCount
		if err := rows.Scan(&sc.Subject, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Recent returns the owner's most recently created prayers.
func (r *PrayerRepo) Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.Prayer, error) {
	const q = `SELECT ` + prayerCols + ` FROM prayers WHERE user_id=$1 ORDER BY created_at DESC, id ASC LIMIT $2`
	rows, err := r.db.Pool.Query(ctx, q, ownerID, limit)
	if err != nil {
		return nil, err
	}
	return collectPrayers(rows)
}

// ResolvedWithoutNote returns resolved prayers missing a resolution note.
func (r *PrayerRepo) ResolvedWithoutNote(ctx context.Context, ownerID uuid.UUID) ([]model.Prayer, error) {
	const q = `
SELECT ` + prayerCols + `
FROM prayers
WHERE user_id=$1 AND status='resolved' AND COALESCE(resolution_note, '') = ''
ORDER BY resolution_date DESC, id ASC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return collectPrayers(rows)
}
