// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Status of a prayer record.
type Status string

const (
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
)

// Tokens collects an issued access/refresh token pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // access token expiry (for diagnostics)
}

// User represents an account. The password is stored only as a one-way hash.
type User struct {
	ID           uuid.UUID
	Email        string // unique, stored lowercased
	PasswordHash []byte
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Prayer is a single tracked prayer request owned by exactly one user.
// ResolutionDate and ResolutionNote are set iff Status == StatusResolved.
type Prayer struct {
	ID             uuid.UUID
	UserID         uuid.UUID // FK -> users.id
	Subject        string
	Title          string
	Body           string
	Category       string
	Targets        []string
	Tags           []string
	Status         Status
	StartDate      time.Time // calendar date, midnight UTC
	ResolutionDate *time.Time
	ResolutionNote *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PrayerCreate carries the fields required to register a new prayer.
type PrayerCreate struct {
	Subject   string
	Title     string
	Body      string
	Category  string
	Targets   []string
	Tags      []string
	StartDate time.Time
}

// PrayerUpdate carries partial changes; nil fields keep current values.
type PrayerUpdate struct {
	Subject   *string
	Title     *string
	Body      *string
	Category  *string
	Targets   *[]string
	Tags      *[]string
	StartDate *time.Time
}

// PrayerListItem decorates a prayer with derived read-only fields.
type PrayerListItem struct {
	Prayer
	ProgressCount int
	PrayerDays    int
}

// ListFilter narrows prayer list queries; nil fields are not applied.
// Present filters combine conjunctively.
type ListFilter struct {
	Status  *Status
	Subject *string
	Search  *string // case-insensitive substring over title or body
}

// Progress is a dated update note attached to a prayer. Ownership is
// transitive through the parent prayer.
type Progress struct {
	ID           uuid.UUID
	PrayerID     uuid.UUID // FK -> prayers.id
	Content      string
	RecordedDate time.Time
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProgressCreate carries the fields required to record a progress entry.
type ProgressCreate struct {
	Content      string
	RecordedDate time.Time
	Tags         []string
}

// ProgressUpdate carries partial changes; nil fields keep current values.
type ProgressUpdate struct {
	Content      *string
	RecordedDate *time.Time
	Tags         *[]string
}

// SubjectCount is a per-subject aggregate.
type SubjectCount struct {
	Subject string
	Count   int
}

// DashboardStats aggregates an owner's prayers for the dashboard.
type DashboardStats struct {
	Total          int
	Active         int
	Resolved       int
	ResolveRatePct float64 // resolved/total*100 rounded to 2 decimals, 0.0 when empty
	BySubject      []SubjectCount
}
