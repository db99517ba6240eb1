package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/swpark/prayernote/internal/errs"
	"github.com/swpark/prayernote/internal/model"
	"github.com/swpark/prayernote/internal/repository"
)

// In-memory fakes for the repository and limiter interfaces.

type fakeUsers struct {
	byID map[uuid.UUID]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return errs.ErrAlreadyExists
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id uuid.UUID, name *string, hash []byte) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if hash != nil {
		u.PasswordHash = hash
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeLimiter struct {
	allowed     bool
	blockOnFail bool

	allowCalls   int
	failureCalls int
	successCalls int
}

func newFakeLimiter() *fakeLimiter { return &fakeLimiter{allowed: true} }

func (f *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	f.allowCalls++
	return f.allowed, 0, nil
}

func (f *fakeLimiter) Success(context.Context, string, []byte) error {
	f.successCalls++
	return nil
}

func (f *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	f.failureCalls++
	return f.blockOnFail, 0, nil
}

type fakePrayers struct {
	order []*model.Prayer // insertion order; listings run newest first

	lastOffset int
	lastLimit  int
}

func newFakePrayers() *fakePrayers { return &fakePrayers{} }

func (f *fakePrayers) find(id, ownerID uuid.UUID) (*model.Prayer, error) {
	for _, p := range f.order {
		if p.ID == id && p.UserID == ownerID {
			return p, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakePrayers) Create(_ context.Context, p *model.Prayer) error {
	p.CreatedAt = time.Now().Add(time.Duration(len(f.order)) * time.Second)
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.order = append(f.order, &cp)
	return nil
}

func (f *fakePrayers) Get(_ context.Context, id, ownerID uuid.UUID) (*model.Prayer, error) {
	p, err := f.find(id, ownerID)
	if err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (f *fakePrayers) matching(ownerID uuid.UUID, filter model.ListFilter) []*model.Prayer {
	var out []*model.Prayer
	for i := len(f.order) - 1; i >= 0; i-- {
		p := f.order[i]
		if p.UserID != ownerID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.Subject != nil && p.Subject != *filter.Subject {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(p.Title), needle) &&
				!strings.Contains(strings.ToLower(p.Body), needle) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func (f *fakePrayers) List(_ context.Context, ownerID uuid.UUID, filter model.ListFilter, offset, limit int) ([]model.Prayer, int, error) {
	f.lastOffset, f.lastLimit = offset, limit
	all := f.matching(ownerID, filter)
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]model.Prayer, 0, end-offset)
	for _, p := range all[offset:end] {
		page = append(page, *p)
	}
	return page, total, nil
}

func (f *fakePrayers) Update(_ context.Context, id, ownerID uuid.UUID, upd model.PrayerUpdate) (*model.Prayer, error) {
	p, err := f.find(id, ownerID)
	if err != nil {
		return nil, err
	}
	if upd.Subject != nil {
		p.Subject = *upd.Subject
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Body != nil {
		p.Body = *upd.Body
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Targets != nil {
		p.Targets = *upd.Targets
	}
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	if upd.StartDate != nil {
		p.StartDate = *upd.StartDate
	}
	cp := *p
	return &cp, nil
}

func (f *fakePrayers) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	for i, p := range f.order {
		if p.ID == id && p.UserID == ownerID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (f *fakePrayers) Resolve(_ context.Context, id, ownerID uuid.UUID, date time.Time, note string) (*model.Prayer, error) {
	p, err := f.find(id, ownerID)
	if err != nil {
		return nil, err
	}
	p.Status = model.StatusResolved
	p.ResolutionDate = &date
	p.ResolutionNote = &note
	cp := *p
	return &cp, nil
}

func (f *fakePrayers) Counts(_ context.Context, ownerID uuid.UUID) (repository.PrayerCounts, error) {
	var c repository.PrayerCounts
	for _, p := range f.order {
		if p.UserID != ownerID {
			continue
		}
		c.Total++
		if p.Status == model.StatusResolved {
			c.Resolved++
		} else {
			c.Active++
		}
	}
	return c, nil
}

func (f *fakePrayers) CountsBySubject(_ context.Context, ownerID uuid.UUID) ([]model.SubjectCount, error) {
	counts := make(map[string]int)
	for _, p := range f.order {
		if p.UserID == ownerID {
			counts[p.Subject]++
		}
	}
	out := make([]model.SubjectCount, 0, len(counts))
	for subject, n := range counts {
		out = append(out, model.SubjectCount{Subject: subject, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Subject < out[j].Subject
	})
	return out, nil
}

func (f *fakePrayers) Recent(_ context.Context, ownerID uuid.UUID, limit int) ([]model.Prayer, error) {
	f.lastLimit = limit
	all := f.matching(ownerID, model.ListFilter{})
	if limit > len(all) {
		limit = len(all)
	}
	out := make([]model.Prayer, 0, limit)
	for _, p := range all[:limit] {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePrayers) ResolvedWithoutNote(_ context.Context, ownerID uuid.UUID) ([]model.Prayer, error) {
	var out []model.Prayer
	for _, p := range f.order {
		if p.UserID != ownerID || p.Status != model.StatusResolved {
			continue
		}
		if p.ResolutionNote == nil || *p.ResolutionNote == "" {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeProgress struct {
	prayers *fakePrayers
	order   []*model.Progress
}

func newFakeProgress(prayers *fakePrayers) *fakeProgress {
	return &fakeProgress{prayers: prayers}
}

func (f *fakeProgress) owns(prayerID, ownerID uuid.UUID) bool {
	_, err := f.prayers.find(prayerID, ownerID)
	return err == nil
}

func (f *fakeProgress) Create(_ context.Context, ownerID uuid.UUID, p *model.Progress) error {
	if !f.owns(p.PrayerID, ownerID) {
		return errs.ErrNotFound
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.order = append(f.order, &cp)
	return nil
}

func (f *fakeProgress) ListForPrayer(_ context.Context, prayerID, ownerID uuid.UUID) ([]model.Progress, error) {
	if !f.owns(prayerID, ownerID) {
		return nil, nil
	}
	var out []model.Progress
	for i := len(f.order) - 1; i >= 0; i-- {
		if f.order[i].PrayerID == prayerID {
			out = append(out, *f.order[i])
		}
	}
	return out, nil
}

func (f *fakeProgress) Get(_ context.Context, id, ownerID uuid.UUID) (*model.Progress, error) {
	for _, p := range f.order {
		if p.ID == id && f.owns(p.PrayerID, ownerID) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeProgress) Update(_ context.Context, id, ownerID uuid.UUID, upd model.ProgressUpdate) (*model.Progress, error) {
	for _, p := range f.order {
		if p.ID != id || !f.owns(p.PrayerID, ownerID) {
			continue
		}
		if upd.Content != nil {
			p.Content = *upd.Content
		}
		if upd.RecordedDate != nil {
			p.RecordedDate = *upd.RecordedDate
		}
		if upd.Tags != nil {
			p.Tags = *upd.Tags
		}
		cp := *p
		return &cp, nil
	}
	return nil, errs.ErrNotFound
}

func (f *fakeProgress) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	for i, p := range f.order {
		if p.ID == id && f.owns(p.PrayerID, ownerID) {
			f.order = append(f.order[:i], f.order[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (f *fakeProgress) CountForPrayers(_ context.Context, prayerIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)
	for _, p := range f.order {
		counts[p.PrayerID]++
	}
	out := make(map[uuid.UUID]int, len(prayerIDs))
	for _, id := range prayerIDs {
		if n, ok := counts[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func mustUUID(s string) uuid.UUID { return uuid.Must(uuid.FromString(s)) }

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}
