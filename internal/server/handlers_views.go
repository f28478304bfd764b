package server

import (
	"net/http"
	"strconv"
	"time"
)

func (s *Server) handleTopViews(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = n
	}
	category := r.URL.Query().Get("category")

	top, err := s.views.TopN(limit, category)
	if err != nil {
		respondInternal(w, err, "ranking posts by views")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "success", "data": top})
}

func (s *Server) handleViewsOverview(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	for _, d := range []string{startDate, endDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			respondError(w, http.StatusBadRequest, "Dates must be in YYYY-MM-DD format")
			return
		}
	}

	overview, err := s.views.Overview(startDate, endDate)
	if err != nil {
		respondInternal(w, err, "building views overview")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "success", "data": overview})
}
