package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/history"
	"github.com/abhisek/founderfit/internal/report"
	"github.com/abhisek/founderfit/internal/sessions"
)

const maxBodyBytes = 1 << 20

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// respondErr maps domain errors onto status codes. Unrecognised errors are
// logged and reported as 500 without their text.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessions.ErrNotFound):
		respondError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "session not found")
	case errors.Is(err, assessment.ErrUnknownCategory),
		errors.Is(err, assessment.ErrIndexOutOfRange),
		errors.Is(err, assessment.ErrInvalidRating),
		errors.Is(err, assessment.ErrInvalidAge),
		errors.Is(err, assessment.ErrInvalidExperience),
		errors.Is(err, assessment.ErrEmptySelection):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, advice.ErrUnknownKind):
		respondError(w, http.StatusNotFound, "UNKNOWN_ADVICE_KIND", err.Error())
	case errors.Is(err, report.ErrUnknownFormat):
		respondError(w, http.StatusBadRequest, "UNKNOWN_FORMAT", err.Error())
	case errors.Is(err, history.ErrIncomplete):
		respondError(w, http.StatusConflict, "INCOMPLETE", err.Error())
	case errors.Is(err, advice.ErrNoProvider):
		respondError(w, http.StatusServiceUnavailable, "ADVICE_UNAVAILABLE", "no LLM provider is configured")
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// decodeJSON reads a bounded JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
