package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/history"
	"github.com/abhisek/founderfit/internal/scoring"
	"github.com/abhisek/founderfit/internal/store"
)

const defaultListLimit = 50

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"advice": s.advice.Available(),
	})
}

type kindView struct {
	Kind  advice.Kind `json:"kind"`
	Title string      `json:"title"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	kinds := make([]kindView, 0, len(advice.Kinds()))
	for _, k := range advice.Kinds() {
		kinds = append(kinds, kindView{Kind: k, Title: k.Title()})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"categories":        s.catalog.Categories,
		"sectors":           catalog.Sectors,
		"experience_levels": catalog.ExperienceLevels,
		"tiers":             scoring.Tiers(),
		"advice_kinds":      kinds,
	})
}

type assessmentView struct {
	ID          string                `json:"id"`
	Timestamp   time.Time             `json:"timestamp"`
	Name        string                `json:"name,omitempty"`
	Company     string                `json:"company,omitempty"`
	Age         *int                  `json:"age,omitempty"`
	Sector      string                `json:"sector"`
	Experience  string                `json:"experience"`
	Overall     float64               `json:"overall"`
	Level       string                `json:"level"`
	StrongCount int                   `json:"strong_count"`
	Scores      []store.CategoryScore `json:"scores"`
}

func newAssessmentView(rec store.AssessmentRecord) assessmentView {
	return assessmentView{
		ID:          rec.ID,
		Timestamp:   rec.Timestamp,
		Name:        rec.Name,
		Company:     rec.Company,
		Age:         rec.Age,
		Sector:      rec.Sector,
		Experience:  rec.Experience,
		Overall:     rec.Overall,
		Level:       rec.Level,
		StrongCount: rec.StrongCount,
		Scores:      rec.Scores,
	}
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	if s.assessments == nil {
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "assessment storage is not configured")
		return
	}

	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.assessments.List(r.Context(), store.QueryOpts{Limit: limit})
	if err != nil {
		respondErr(w, err)
		return
	}
	out := make([]assessmentView, len(records))
	for i, rec := range records {
		out[i] = newAssessmentView(rec)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if s.assessments == nil {
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "assessment storage is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	rec, err := s.assessments.Get(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	if rec == nil {
		respondError(w, http.StatusNotFound, "ASSESSMENT_NOT_FOUND", "assessment not found")
		return
	}

	doc, err := history.Document(r.Context(), s.assessments, s.catalog, id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"assessment": newAssessmentView(*rec),
		"report":     doc,
	})
}
