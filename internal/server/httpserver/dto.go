package httpserver

import (
	"time"

	"github.com/swpark/prayernote/internal/model"
)

// Wire types. Calendar dates travel as "2006-01-02" strings; timestamps as
// RFC 3339 via encoding/json's time.Time handling.

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func toTokenResponse(t model.Tokens) tokenResponse {
	return tokenResponse{AccessToken: t.AccessToken, RefreshToken: t.RefreshToken, TokenType: "bearer"}
}

type authResponse struct {
	User userResponse `json:"user"`
	tokenResponse
}

type prayerResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Subject        string    `json:"subject"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Category       string    `json:"category"`
	Targets        []string  `json:"targets"`
	Tags           []string  `json:"tags"`
	Status         string    `json:"status"`
	StartDate      string    `json:"start_date"`
	ResolutionDate *string   `json:"resolution_date,omitempty"`
	ResolutionNote *string   `json:"resolution_note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toPrayerResponse(p model.Prayer) prayerResponse {
	resp := prayerResponse{
		ID:        p.ID.String(),
		UserID:    p.UserID.String(),
		Subject:   p.Subject,
		Title:     p.Title,
		Body:      p.Body,
		Category:  p.Category,
		Targets:   p.Targets,
		Tags:      p.Tags,
		Status:    string(p.Status),
		StartDate: formatDate(p.StartDate),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.ResolutionDate != nil {
		d := formatDate(*p.ResolutionDate)
		resp.ResolutionDate = &d
	}
	resp.ResolutionNote = p.ResolutionNote
	return resp
}

type prayerItemResponse struct {
	prayerResponse
	ProgressCount int `json:"progress_count"`
	PrayerDays    int `json:"prayer_days"`
}

func toPrayerItemResponse(it model.PrayerListItem) prayerItemResponse {
	return prayerItemResponse{
		prayerResponse: toPrayerResponse(it.Prayer),
		ProgressCount:  it.ProgressCount,
		PrayerDays:     it.PrayerDays,
	}
}

func toPrayerItemResponses(items []model.PrayerListItem) []prayerItemResponse {
	out := make([]prayerItemResponse, len(items))
	for i, it := range items {
		out[i] = toPrayerItemResponse(it)
	}
	return out
}

func toPrayerResponses(prayers []model.Prayer) []prayerResponse {
	out := make([]prayerResponse, len(prayers))
	for i, p := range prayers {
		out[i] = toPrayerResponse(p)
	}
	return out
}

type prayerListResponse struct {
	Items []prayerItemResponse `json:"items"`
	Total int                  `json:"total"`
	Page  int                  `json:"page"`
	Pages int                  `json:"pages"`
}

type progressResponse struct {
	ID           string    `json:"id"`
	PrayerID     string    `json:"prayer_id"`
	Content      string    `json:"content"`
	RecordedDate string    `json:"recorded_date"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toProgressResponse(p model.Progress) progressResponse {
	return progressResponse{
		ID:           p.ID.String(),
		PrayerID:     p.PrayerID.String(),
		Content:      p.Content,
		RecordedDate: formatDate(p.RecordedDate),
		Tags:         p.Tags,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type subjectCountResponse struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

type dashboardStatsResponse struct {
	Total          int                    `json:"total"`
	Active         int                    `json:"active"`
	Resolved       int                    `json:"resolved"`
	ResolveRatePct float64                `json:"resolve_rate_pct"`
	BySubject      []subjectCountResponse `json:"by_subject"`
}

func toDashboardStatsResponse(st model.DashboardStats) dashboardStatsResponse {
	bySubject := make([]subjectCountResponse, len(st.BySubject))
	for i, sc := range st.BySubject {
		bySubject[i] = subjectCountResponse{Subject: sc.Subject, Count: sc.Count}
	}
	return dashboardStatsResponse{
		Total:          st.Total,
		Active:         st.Active,
		Resolved:       st.Resolved,
		ResolveRatePct: st.ResolveRatePct,
		BySubject:      bySubject,
	}
}
