package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/history"
	"github.com/abhisek/founderfit/internal/report"
	"github.com/abhisek/founderfit/internal/scoring"
	"github.com/abhisek/founderfit/internal/sessions"
	"github.com/abhisek/founderfit/internal/store"
)

type sessionView struct {
	ID          string                 `json:"id"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Answers     assessment.Answers     `json:"answers"`
	Respondent  assessment.Respondent  `json:"respondent"`
	Answered    int                    `json:"answered"`
	Total       int                    `json:"total"`
	Progress    float64                `json:"progress"`
	Complete    bool                   `json:"complete"`
	Missing     []string               `json:"missing"`
	Next        string                 `json:"next,omitempty"`
	Advice      map[advice.Kind]string `json:"advice,omitempty"`
	SubmittedID string                 `json:"submitted_id,omitempty"`
}

func (s *Server) sessionView(sess *sessions.Session) (sessionView, error) {
	st, err := sess.Store(s.catalog)
	if err != nil {
		return sessionView{}, err
	}
	next, _ := st.NextIncompleteCategory("")
	missing := assessment.Missing(st, sess.Respondent)
	if missing == nil {
		missing = []string{}
	}
	return sessionView{
		ID:          sess.ID,
		CreatedAt:   sess.CreatedAt,
		UpdatedAt:   sess.UpdatedAt,
		Answers:     sess.Answers,
		Respondent:  sess.Respondent,
		Answered:    st.Answered(),
		Total:       s.catalog.TotalStatements(),
		Progress:    scoring.ProgressPercent(st),
		Complete:    assessment.Complete(st, sess.Respondent),
		Missing:     missing,
		Next:        next,
		Advice:      sess.Advice,
		SubmittedID: sess.SubmittedID,
	}, nil
}

func (s *Server) respondSession(w http.ResponseWriter, status int, sess *sessions.Session) {
	view, err := s.sessionView(sess)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, status, view)
}

// loadSession fetches the session named in the URL and rebuilds its store.
func (s *Server) loadSession(ctx context.Context, r *http.Request) (*sessions.Session, *assessment.Store, error) {
	sess, err := s.sessions.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		return nil, nil, err
	}
	st, err := sess.Store(s.catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("restore session %s: %w", sess.ID, err)
	}
	return sess, st, nil
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := sessions.New(s.catalog)
	if err := s.sessions.Create(r.Context(), sess); err != nil {
		respondErr(w, err)
		return
	}
	s.respondSession(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	s.respondSession(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type ratingRequest struct {
	Category string `json:"category"`
	Index    *int   `json:"index"`
	Value    int    `json:"value"`
}

func (s *Server) handleSetRating(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Index == nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "index is required")
		return
	}

	sess, err := s.sessions.Update(r.Context(), chi.URLParam(r, "id"), func(sess *sessions.Session) error {
		st, err := sess.Store(s.catalog)
		if err != nil {
			return err
		}
		if err := st.Set(req.Category, *req.Index, assessment.Rating(req.Value)); err != nil {
			return err
		}
		sess.Answers = st.Answers()
		return nil
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	s.respondSession(w, http.StatusOK, sess)
}

func (s *Server) handleSetRespondent(w http.ResponseWriter, r *http.Request) {
	var req assessment.Respondent
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondErr(w, err)
		return
	}

	sess, err := s.sessions.Update(r.Context(), chi.URLParam(r, "id"), func(sess *sessions.Session) error {
		sess.Respondent = req
		return nil
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	s.respondSession(w, http.StatusOK, sess)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	_, st, err := s.loadSession(r.Context(), r)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, scoring.Evaluate(st))
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	_, st, err := s.loadSession(r.Context(), r)
	if err != nil {
		respondErr(w, err)
		return
	}
	next, ok := st.NextIncompleteCategory(r.URL.Query().Get("after"))
	respondJSON(w, http.StatusOK, map[string]any{
		"category": next,
		"done":     !ok,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, st, err := s.loadSession(r.Context(), r)
	if err != nil {
		respondErr(w, err)
		return
	}
	now := s.now()

	q := r.URL.Query()
	if q.Get("format") == "txt" {
		kind, err := advice.ParseKind(q.Get("kind"))
		if err != nil {
			respondErr(w, err)
			return
		}
		text, ok := sess.Advice[kind]
		if !ok {
			respondError(w, http.StatusNotFound, "ADVICE_NOT_FOUND", fmt.Sprintf("no %s advice generated yet", kind))
			return
		}
		writeDownload(w, "text/plain; charset=utf-8", kind.Filename(now), []byte(text))
		return
	}

	format, err := report.ParseFormat(q.Get("format"))
	if err == nil && format == report.Text {
		err = fmt.Errorf("%w: %q", report.ErrUnknownFormat, q.Get("format"))
	}
	if err != nil {
		respondErr(w, err)
		return
	}

	body, err := report.Render(format, report.Document{
		GeneratedAt: now,
		Respondent:  sess.Respondent,
		Result:      scoring.Evaluate(st),
		Summary:     sess.Advice[advice.Summary],
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	writeDownload(w, format.ContentType(), report.Filename(format, now), []byte(body))
}

func writeDownload(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// submitClaimTTL is how long a submission in progress blocks others. An
// older claim is taken over by the next submit.
const submitClaimTTL = time.Minute

var (
	errAlreadySubmitted = errors.New("session already submitted")
	errSubmitInProgress = errors.New("submission already in progress")
)

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if s.assessments == nil {
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "assessment storage is not configured")
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	now := s.now()

	var submittedID string
	sess, err := s.sessions.Update(ctx, id, func(sess *sessions.Session) error {
		switch {
		case sess.SubmittedID != "":
			submittedID = sess.SubmittedID
			return errAlreadySubmitted
		case sess.SubmitClaim != "" && now.Sub(sess.SubmitClaimedAt) < submitClaimTTL:
			return errSubmitInProgress
		case sess.SubmitClaim == "":
			sess.SubmitClaim = uuid.NewString()
		}
		sess.SubmitClaimedAt = now
		return nil
	})
	switch {
	case errors.Is(err, errAlreadySubmitted):
		respondJSON(w, http.StatusOK, map[string]string{"assessment_id": submittedID})
		return
	case errors.Is(err, errSubmitInProgress):
		respondError(w, http.StatusConflict, "SUBMIT_IN_PROGRESS", err.Error())
		return
	case err != nil:
		respondErr(w, err)
		return
	}
	claim := sess.SubmitClaim

	rec, err := s.saveClaimed(ctx, sess, claim)
	if err != nil {
		s.releaseClaim(context.WithoutCancel(ctx), id, claim)
		respondErr(w, err)
		return
	}

	_, err = s.sessions.Update(ctx, id, func(sess *sessions.Session) error {
		sess.SubmittedID = rec.ID
		sess.SubmitClaim = ""
		sess.SubmitClaimedAt = time.Time{}
		return nil
	})
	if err != nil && !errors.Is(err, sessions.ErrNotFound) {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"assessment_id": rec.ID})
}

// saveClaimed stores the session under the claimed assessment ID. A claim
// taken over from an abandoned submission may already be stored; that
// record is returned as is.
func (s *Server) saveClaimed(ctx context.Context, sess *sessions.Session, claim string) (*store.AssessmentRecord, error) {
	existing, err := s.assessments.Get(ctx, claim)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	st, err := sess.Store(s.catalog)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", sess.ID, err)
	}
	return history.SaveAs(ctx, s.assessments, claim, history.Submission{
		Respondent: sess.Respondent,
		Store:      st,
		Advice:     sess.Advice,
		Model:      s.advice.ModelID(),
	})
}

func (s *Server) releaseClaim(ctx context.Context, id, claim string) {
	_, err := s.sessions.Update(ctx, id, func(sess *sessions.Session) error {
		if sess.SubmitClaim == claim {
			sess.SubmitClaim = ""
			sess.SubmitClaimedAt = time.Time{}
		}
		return nil
	})
	if err != nil && !errors.Is(err, sessions.ErrNotFound) {
		slog.Warn("failed to release submit claim", "session", id, "error", err)
	}
}
