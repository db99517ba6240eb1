package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/swpark/prayernote/internal/errs"
	"github.com/swpark/prayernote/internal/model"
	"github.com/swpark/prayernote/internal/repository"
)

// Pagination bounds for prayer listings.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PrayerService defines ownership-scoped operations over prayers.
type PrayerService interface {
	// Create registers a new active prayer for the owner.
	Create(ctx context.Context, ownerID uuid.UUID, in model.PrayerCreate) (*model.Prayer, error)
	// Get loads one prayer owned by ownerID.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Prayer, error)
	// List returns one page of decorated prayers, the filtered total and page count.
	List(ctx context.Context, ownerID uuid.UUID, f model.ListFilter, page, pageSize int) ([]model.PrayerListItem, int, int, error)
	// Update applies partial changes.
	Update(ctx context.Context, ownerID, id uuid.UUID, upd model.PrayerUpdate) (*model.Prayer, error)
	// Delete removes the prayer and, through store cascades, its progress entries.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	// Resolve marks the prayer resolved with a date and note.
	Resolve(ctx context.Context, ownerID, id uuid.UUID, date time.Time, note string) (*model.Prayer, error)
}

type PrayerServiceImpl struct {
	prayers  repository.PrayerRepository
	progress repository.ProgressRepository
	now      func() time.Time
}

// NewPrayerService constructs PrayerService with required dependencies.
func NewPrayerService(prayers repository.PrayerRepository, progress repository.ProgressRepository) *PrayerServiceImpl {
	return &PrayerServiceImpl{prayers: prayers, progress: progress, now: time.Now}
}

// WithClock overrides the service clock; used by tests.
func (s *PrayerServiceImpl) WithClock(now func() time.Time) *PrayerServiceImpl {
	s.now = now
	return s
}

func validatePrayerCreate(in model.PrayerCreate) error {
	switch {
	case in.Subject == "":
		return errs.Validationf("subject: required")
	case in.Title == "":
		return errs.Validationf("title: required")
	case in.Body == "":
		return errs.Validationf("body: required")
	case in.Category == "":
		return errs.Validationf("category: required")
	case in.StartDate.IsZero():
		return errs.Validationf("start_date: required")
	}
	return nil
}

// Create registers a new prayer in the active state.
func (s *PrayerServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, in model.PrayerCreate) (*model.Prayer, error) {
	if ownerID == uuid.Nil {
		return nil, errs.Validationf("empty owner id")
	}
	if err := validatePrayerCreate(in); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.Prayer{
		ID:        id,
		UserID:    ownerID,
		Subject:   in.Subject,
		Title:     in.Title,
		Body:      in.Body,
		Category:  in.Category,
		Targets:   emptyIfNil(in.Targets),
		Tags:      emptyIfNil(in.Tags),
		Status:    model.StatusActive,
		StartDate: in.StartDate,
	}
	if err := s.prayers.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// emptyIfNil keeps list fields as JSON arrays, never null.
func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

// Get loads one prayer.
func (s *PrayerServiceImpl) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Prayer, error) {
	if ownerID == uuid.Nil || id == uuid.Nil {
		return nil, errs.ErrNotFound
	}
	return s.prayers.Get(ctx, id, ownerID)
}

// List clamps pagination (page >= 1, page_size in [1,100]), fetches one page
// and decorates items with progress counts and prayer-day spans.
func (s *PrayerServiceImpl) List(ctx context.Context, ownerID uuid.UUID, f model.ListFilter, page, pageSize int) ([]model.PrayerListItem, int, int, error) {
	if ownerID == uuid.Nil {
		return nil, 0, 0, errs.Validationf("empty owner id")
	}
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = defaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}

	prayers, total, err := s.prayers.List(ctx, ownerID, f, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}
	items, err := decorate(ctx, s.progress, prayers, s.now())
	if err != nil {
		return nil, 0, 0, err
	}
	pages := (total + pageSize - 1) / pageSize
	return items, total, pages, nil
}

// Update applies partial changes; provided fields must be non-empty.
func (s *PrayerServiceImpl) Update(ctx context.Context, ownerID, id uuid.UUID, upd model.PrayerUpdate) (*model.Prayer, error) {
	if ownerID == uuid.Nil || id == uuid.Nil {
		return nil, errs.ErrNotFound
	}
	for field, v := range map[string]*string{
		"subject": upd.Subject, "title": upd.Title, "body": upd.Body, "category": upd.Category,
	} {
		if v != nil && *v == "" {
			return nil, errs.Validationf("%s: must not be empty", field)
		}
	}
	if upd.StartDate != nil && upd.StartDate.IsZero() {
		return nil, errs.Validationf("start_date: invalid")
	}
	return s.prayers.Update(ctx, id, ownerID, upd)
}

// Delete removes the prayer.
func (s *PrayerServiceImpl) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if ownerID == uuid.Nil || id == uuid.Nil {
		return errs.ErrNotFound
	}
	return s.prayers.Delete(ctx, id, ownerID)
}

// Resolve marks the prayer resolved; the status flip and both resolution
// fields land in one atomic store update.
func (s *PrayerServiceImpl) Resolve(ctx context.Context, ownerID, id uuid.UUID, date time.Time, note string) (*model.Prayer, error) {
	if ownerID == uuid.Nil || id == uuid.Nil {
		return nil, errs.ErrNotFound
	}
	if date.IsZero() {
		return nil, errs.Validationf("resolution_date: required")
	}
	// An empty note is allowed; the dashboard surfaces unnoted resolutions
	// so the owner can fill them in later.
	return s.prayers.Resolve(ctx, id, ownerID, date, note)
}

// decorate attaches progress counts (batched) and prayer-day spans.
func decorate(ctx context.Context, progress repository.ProgressRepository, prayers []model.Prayer, today time.Time) ([]model.PrayerListItem, error) {
	ids := make([]uuid.UUID, len(prayers))
	for i := range prayers {
		ids[i] = prayers[i].ID
	}
	counts, err := progress.CountForPrayers(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]model.PrayerListItem, len(prayers))
	for i, p := range prayers {
		items[i] = model.PrayerListItem{
			Prayer:        p,
			ProgressCount: counts[p.ID],
			PrayerDays:    PrayerDays(p, today),
		}
	}
	return items, nil
}
