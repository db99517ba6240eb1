package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/swpark/prayernote/internal/model"
)

// PrayerCounts groups the dashboard counters computed in one pass.
type PrayerCounts struct {
	Total    int
	Active   int
	Resolved int
}

// PrayerRepository provides ownership-scoped access to prayers. Every
// single-row operation filters by (id, owner) in the same statement; a row
// owned by someone else is indistinguishable from an absent one.
type PrayerRepository interface {
	// Create inserts a new prayer and fills store-maintained timestamps.
	Create(ctx context.Context, p *model.Prayer) error
	// Get loads one prayer owned by ownerID.
	Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Prayer, error)
	// List returns a page of the owner's prayers matching the filter plus the
	// total count over the filtered set. Ordering is created_at DESC, id ASC.
	List(ctx context.Context, ownerID uuid.UUID, f model.ListFilter, offset, limit int) ([]model.Prayer, int, error)
	// Update applies partial changes and returns the updated row.
	Update(ctx context.Context, id, ownerID uuid.UUID, upd model.PrayerUpdate) (*model.Prayer, error)
	// Delete removes the prayer; progress entries cascade in the store.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	// Resolve atomically sets status=resolved with date and note.
	Resolve(ctx context.Context, id, ownerID uuid.UUID, date time.Time, note string) (*model.Prayer, error)
	// Counts returns total/active/resolved for the owner.
	Counts(ctx context.Context, ownerID uuid.UUID) (PrayerCounts, error)
	// CountsBySubject returns per-subject counts ordered by count descending.
	CountsBySubject(ctx context.Context, ownerID uuid.UUID) ([]model.SubjectCount, error)
	// Recent returns the owner's most recently created prayers.
	Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.Prayer, error)
	// ResolvedWithoutNote returns resolved prayers whose note is empty.
	ResolvedWithoutNote(ctx context.Context, ownerID uuid.UUID) ([]model.Prayer, error)
}
