package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/swpark/prayernote/internal/errs"
	"github.com/swpark/prayernote/internal/model"
	"github.com/swpark/prayernote/internal/repository"
)

// ProgressService defines operations over progress entries. Ownership is
// always transitive through the parent prayer; a parent owned by someone
// else surfaces as errs.ErrNotFound.
type ProgressService interface {
	// Create records a new entry under the owner's prayer.
	Create(ctx context.Context, ownerID, prayerID uuid.UUID, in model.ProgressCreate) (*model.Progress, error)
	// ListForPrayer returns the prayer's entries, newest recorded first.
	ListForPrayer(ctx context.Context, ownerID, prayerID uuid.UUID) ([]model.Progress, error)
	// Update applies partial changes to one entry.
	Update(ctx context.Context, ownerID, id uuid.UUID, upd model.ProgressUpdate) (*model.Progress, error)
	// Delete removes one entry.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type ProgressServiceImpl struct {
	prayers  repository.PrayerRepository
	progress repository.ProgressRepository
}

// NewProgressService constructs ProgressService with required dependencies.
func NewProgressService(prayers repository.PrayerRepository, progress repository.ProgressRepository) *ProgressServiceImpl {
	return &ProgressServiceImpl{prayers: prayers, progress: progress}
}

// Create records a new entry. The parent ownership check happens inside the
// repository insert, so there is no check-then-write gap.
func (s *ProgressServiceImpl) Create(ctx context.Context, ownerID, prayerID uuid.UUID, in model.ProgressCreate) (*model.Progress, error) {
	if ownerID == uuid.Nil || prayerID == uuid.Nil {
		return nil, errs.ErrNotFound
	}
	if in.Content == "" {
		return nil, errs.Validationf("content: required")
	}
	if in.RecordedDate.IsZero() {
		return nil, errs.Validationf("recorded_date: required")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.Progress{
		ID:           id,
		PrayerID:     prayerID,
		Content:      in.Content,
		RecordedDate: in.RecordedDate,
		Tags:         emptyIfNil(in.Tags),
	}
	if err := s.progress.Create(ctx, ownerID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListForPrayer verifies the parent first so an unowned prayer yields
// not-found rather than an empty list.
func (s *ProgressServiceImpl) ListForPrayer(ctx context.Context, ownerID, prayerID uuid.UUID) ([]model.Progress, error) {
	if ownerID == uuid.Nil || prayerID == uuid.Nil {
		return nil, errs.ErrNotFound
	}
	if _, err := s.prayers.Get(ctx, prayerID, ownerID); err != nil {
		return nil, err
	}
	return s.progress.ListForPrayer(ctx, prayerID, ownerID)
}

// Update applies partial changes; provided fields must be non-empty.
func (s *ProgressServiceImpl) Update(ctx context.Context, ownerID, id uuid.UUID, upd model.ProgressUpdate) (*model.Progress, error) {
	if ownerID == uuid.Nil || id == uuid.Nil {
		return nil, errs.ErrNotFound
	}
	if upd.Content != nil && *upd.Content == "" {
		return nil, errs.Validationf("content: must not be empty")
	}
	if upd.RecordedDate != nil && upd.RecordedDate.IsZero() {
		return nil, errs.Validationf("recorded_date: invalid")
	}
	return s.progress.Update(ctx, id, ownerID, upd)
}

// Delete removes one entry.
func (s *ProgressServiceImpl) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if ownerID == uuid.Nil || id == uuid.Nil {
		return errs.ErrNotFound
	}
	return s.progress.Delete(ctx, id, ownerID)
}
