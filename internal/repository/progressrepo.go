package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/swpark/prayernote/internal/model"
)

// ProgressRepository provides access to progress entries, scoped to the
// owner of the parent prayer. Operations that reach a row owned by someone
// else report errs.ErrNotFound.
type ProgressRepository interface {
	// Create inserts a progress entry iff the parent prayer is owned by ownerID;
	// the ownership check and the insert are one statement.
	Create(ctx context.Context, ownerID uuid.UUID, p *model.Progress) error
	// ListForPrayer returns the prayer's entries, recorded_date DESC.
	ListForPrayer(ctx context.Context, prayerID, ownerID uuid.UUID) ([]model.Progress, error)
	// Get loads one entry through its parent's ownership.
	Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Progress, error)
	// Update applies partial changes and returns the updated row.
	Update(ctx context.Context, id, ownerID uuid.UUID, upd model.ProgressUpdate) (*model.Progress, error)
	// Delete removes one entry through its parent's ownership.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	// CountForPrayers returns entry counts for the given prayers in one query.
	CountForPrayers(ctx context.Context, prayerIDs []uuid.UUID) (map[uuid.UUID]int, error)
}
