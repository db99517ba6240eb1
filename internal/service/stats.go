package service

import (
	"context"
	"math"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/swpark/prayernote/internal/errs"
	"github.com/swpark/prayernote/internal/model"
	"github.com/swpark/prayernote/internal/repository"
)

// Recent-listing bounds.
const (
	defaultRecentLimit = 5
	maxRecentLimit     = 20
)

// StatsService derives read-only dashboard views from the prayer store.
type StatsService interface {
	// Dashboard aggregates counts, resolve rate and per-subject totals.
	Dashboard(ctx context.Context, ownerID uuid.UUID) (model.DashboardStats, error)
	// Recent returns the most recently created prayers, decorated.
	Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.PrayerListItem, error)
	// ResolvedWithoutNote lists resolved prayers missing a resolution note.
	ResolvedWithoutNote(ctx context.Context, ownerID uuid.UUID) ([]model.Prayer, error)
}

type StatsServiceImpl struct {
	prayers  repository.PrayerRepository
	progress repository.ProgressRepository
	now      func() time.Time
}

// NewStatsService constructs StatsService with required dependencies.
func NewStatsService(prayers repository.PrayerRepository, progress repository.ProgressRepository) *StatsServiceImpl {
	return &StatsServiceImpl{prayers: prayers, progress: progress, now: time.Now}
}

// WithClock overrides the service clock; used by tests.
func (s *StatsServiceImpl) WithClock(now func() time.Time) *StatsServiceImpl {
	s.now = now
	return s
}

// Dashboard aggregates the owner's prayers.
func (s *StatsServiceImpl) Dashboard(ctx context.Context, ownerID uuid.UUID) (model.DashboardStats, error) {
	if ownerID == uuid.Nil {
		return model.DashboardStats{}, errs.Validationf("empty owner id")
	}
	counts, err := s.prayers.Counts(ctx, ownerID)
	if err != nil {
		return model.DashboardStats{}, err
	}
	bySubject, err := s.prayers.CountsBySubject(ctx, ownerID)
	if err != nil {
		return model.DashboardStats{}, err
	}
	return model.DashboardStats{
		Total:          counts.Total,
		Active:         counts.Active,
		Resolved:       counts.Resolved,
		ResolveRatePct: ResolveRate(counts.Resolved, counts.Total),
		BySubject:      bySubject,
	}, nil
}

// Recent returns the owner's newest prayers; limit <= 0 uses the default,
// larger values clamp to the maximum.
func (s *StatsServiceImpl) Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.PrayerListItem, error) {
	if ownerID == uuid.Nil {
		return nil, errs.Validationf("empty owner id")
	}
	switch {
	case limit < 1:
		limit = defaultRecentLimit
	case limit > maxRecentLimit:
		limit = maxRecentLimit
	}
	prayers, err := s.prayers.Recent(ctx, ownerID, limit)
	if err != nil {
		return nil, err
	}
	return decorate(ctx, s.progress, prayers, s.now())
}

// ResolvedWithoutNote lists resolved prayers whose note was never written.
func (s *StatsServiceImpl) ResolvedWithoutNote(ctx context.Context, ownerID uuid.UUID) ([]model.Prayer, error) {
	if ownerID == uuid.Nil {
		return nil, errs.Validationf("empty owner id")
	}
	return s.prayers.ResolvedWithoutNote(ctx, ownerID)
}

// ResolveRate returns resolved/total*100 rounded to 2 decimals, 0.0 for an
// empty set.
func ResolveRate(resolved, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(resolved)/float64(total)*100*100) / 100
}

// PrayerDays returns the inclusive day span a prayer has been (or was)
// prayed for: start through today for active prayers, start through the
// resolution date once resolved. Anomalous date entry clamps to 1 instead
// of going negative.
func PrayerDays(p model.Prayer, today time.Time) int {
	end := today
	if p.Status == model.StatusResolved && p.ResolutionDate != nil {
		end = *p.ResolutionDate
	}
	days := int(civilDay(end).Sub(civilDay(p.StartDate))/(24*time.Hour)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// civilDay truncates a timestamp to its calendar date in UTC.
func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
