package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/swpark/prayernote/internal/model"
)

type progressListResponse struct {
	Items []progressResponse `json:"items"`
	Total int                `json:"total"`
}

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	prayerID, ok := prayerIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	entries, err := s.progress.ListForPrayer(r.Context(), u.ID, prayerID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	items := make([]progressResponse, len(entries))
	for i, p := range entries {
		items[i] = toProgressResponse(p)
	}
	writeJSON(w, http.StatusOK, progressListResponse{Items: items, Total: len(items)})
}

type createProgressRequest struct {
	Content      string   `json:"content"`
	RecordedDate string   `json:"recorded_date"`
	Tags         []string `json:"tags"`
}

func (s *Server) handleCreateProgress(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	prayerID, ok := prayerIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var req createProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	recorded, err := parseDate(req.RecordedDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_recorded_date")
		return
	}
	p, err := s.progress.Create(r.Context(), u.ID, prayerID, model.ProgressCreate{
		Content:      req.Content,
		RecordedDate: recorded,
		Tags:         req.Tags,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProgressResponse(*p))
}

// progressIDParam parses the {progressID} URL segment.
func progressIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.FromString(chi.URLParam(r, "progressID"))
	return id, err == nil
}

type updateProgressRequest struct {
	Content      *string   `json:"content"`
	RecordedDate *string   `json:"recorded_date"`
	Tags         *[]string `json:"tags"`
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := progressIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var req updateProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	upd := model.ProgressUpdate{Content: req.Content, Tags: req.Tags}
	if req.RecordedDate != nil {
		d, err := parseDate(*req.RecordedDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_recorded_date")
			return
		}
		upd.RecordedDate = &d
	}
	p, err := s.progress.Update(r.Context(), u.ID, id, upd)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(*p))
}

func (s *Server) handleDeleteProgress(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := progressIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err := s.progress.Delete(r.Context(), u.ID, id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
