package httpserver

import (
	"net/http"
)

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	stats, err := s.stats.Dashboard(r.Context(), u.ID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardStatsResponse(stats))
}

type recentPrayersResponse struct {
	Items []prayerItemResponse `json:"items"`
	Total int                  `json:"total"`
}

func (s *Server) handleRecentPrayers(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	items, err := s.stats.Recent(r.Context(), u.ID, queryInt(r, "limit", 0))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recentPrayersResponse{Items: toPrayerItemResponses(items), Total: len(items)})
}

type unnotedPrayersResponse struct {
	Items []prayerResponse `json:"items"`
	Total int              `json:"total"`
}

func (s *Server) handleUnnotedPrayers(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	prayers, err := s.stats.ResolvedWithoutNote(r.Context(), u.ID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unnotedPrayersResponse{Items: toPrayerResponses(prayers), Total: len(prayers)})
}
