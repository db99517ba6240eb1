package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/swpark/prayernote/internal/model"
)

type createPrayerRequest struct {
	Subject   string   `json:"subject"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Category  string   `json:"category"`
	Targets   []string `json:"targets"`
	Tags      []string `json:"tags"`
	StartDate string   `json:"start_date"`
}

func (s *Server) handleCreatePrayer(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createPrayerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_start_date")
		return
	}
	p, err := s.prayers.Create(r.Context(), u.ID, model.PrayerCreate{
		Subject:   req.Subject,
		Title:     req.Title,
		Body:      req.Body,
		Category:  req.Category,
		Targets:   req.Targets,
		Tags:      req.Tags,
		StartDate: startDate,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPrayerResponse(*p))
}

// queryInt parses an integer query param, falling back on absence or junk.
func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func (s *Server) handleListPrayers(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	var f model.ListFilter
	if v := q.Get("status"); v != "" {
		st := model.Status(v)
		if st != model.StatusActive && st != model.StatusResolved {
			writeError(w, http.StatusBadRequest, "invalid_status")
			return
		}
		f.Status = &st
	}
	if v := q.Get("subject"); v != "" {
		f.Subject = &v
	}
	if v := q.Get("search"); v != "" {
		f.Search = &v
	}
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 0)

	items, total, pages, err := s.prayers.List(r.Context(), u.ID, f, page, pageSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if page < 1 {
		page = 1
	}
	writeJSON(w, http.StatusOK, prayerListResponse{
		Items: toPrayerItemResponses(items),
		Total: total,
		Page:  page,
		Pages: pages,
	})
}

// prayerIDParam parses the {prayerID} URL segment.
func prayerIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.FromString(chi.URLParam(r, "prayerID"))
	return id, err == nil
}

func (s *Server) handleGetPrayer(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := prayerIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	p, err := s.prayers.Get(r.Context(), u.ID, id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPrayerResponse(*p))
}

type updatePrayerRequest struct {
	Subject   *string   `json:"subject"`
	Title     *string   `json:"title"`
	Body      *string   `json:"body"`
	Category  *string   `json:"category"`
	Targets   *[]string `json:"targets"`
	Tags      *[]string `json:"tags"`
	StartDate *string   `json:"start_date"`
}

func (s *Server) handleUpdatePrayer(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := prayerIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var req updatePrayerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	upd := model.PrayerUpdate{
		Subject:  req.Subject,
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Targets:  req.Targets,
		Tags:     req.Tags,
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start_date")
			return
		}
		upd.StartDate = &d
	}
	p, err := s.prayers.Update(r.Context(), u.ID, id, upd)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPrayerResponse(*p))
}

func (s *Server) handleDeletePrayer(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := prayerIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err := s.prayers.Delete(r.Context(), u.ID, id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type resolvePrayerRequest struct {
	ResolutionDate string `json:"resolution_date"`
	ResolutionNote string `json:"resolution_note"`
}

func (s *Server) handleResolvePrayer(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := prayerIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var req resolvePrayerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	date, err := parseDate(req.ResolutionDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_resolution_date")
		return
	}
	p, err := s.prayers.Resolve(r.Context(), u.ID, id, date, req.ResolutionNote)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPrayerResponse(*p))
}
