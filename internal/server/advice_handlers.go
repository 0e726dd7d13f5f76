package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/scoring"
	"github.com/abhisek/founderfit/internal/sessions"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 10 * time.Second

// StreamMessage is one websocket frame of an advice stream. Chunks carry
// fragments; done carries the full text; error ends the stream without it.
type StreamMessage struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

type adviceView struct {
	Kind     advice.Kind `json:"kind"`
	Title    string      `json:"title"`
	Model    string      `json:"model"`
	Content  string      `json:"content"`
	Filename string      `json:"filename"`
}

// adviceInput resolves the kind in the URL and the scored input for it.
func (s *Server) adviceInput(ctx context.Context, r *http.Request) (advice.Kind, *sessions.Session, advice.Input, error) {
	kind, err := advice.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", nil, advice.Input{}, err
	}
	sess, st, err := s.loadSession(ctx, r)
	if err != nil {
		return "", nil, advice.Input{}, err
	}
	if !s.advice.Available() {
		return "", nil, advice.Input{}, advice.ErrNoProvider
	}
	return kind, sess, advice.Input{Respondent: sess.Respondent, Result: scoring.Evaluate(st)}, nil
}

func (s *Server) storeAdvice(ctx context.Context, id string, kind advice.Kind, text string) error {
	_, err := s.sessions.Update(ctx, id, func(sess *sessions.Session) error {
		sess.SetAdvice(kind, text)
		return nil
	})
	return err
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	kind, sess, in, err := s.adviceInput(r.Context(), r)
	if err != nil {
		respondErr(w, err)
		return
	}

	text, err := s.advice.Collect(r.Context(), kind, in, nil)
	if err != nil {
		slog.Warn("advice request failed", "session", sess.ID, "kind", kind, "error", err)
		respondError(w, http.StatusBadGateway, "ADVICE_FAILED", err.Error())
		return
	}

	if err := s.storeAdvice(r.Context(), sess.ID, kind, text); err != nil {
		respondErr(w, err)
		return
	}

	respondJSON(w, http.StatusOK, adviceView{
		Kind:     kind,
		Title:    kind.Title(),
		Model:    s.advice.ModelID(),
		Content:  text,
		Filename: kind.Filename(s.now()),
	})
}

func (s *Server) handleHighlights(w http.ResponseWriter, r *http.Request) {
	sess, st, err := s.loadSession(r.Context(), r)
	if err != nil {
		respondErr(w, err)
		return
	}

	h, err := s.advice.Highlights(r.Context(), advice.Input{Respondent: sess.Respondent, Result: scoring.Evaluate(st)})
	if err != nil {
		if errors.Is(err, advice.ErrNoProvider) {
			respondErr(w, err)
			return
		}
		slog.Warn("highlights request failed", "session", sess.ID, "error", err)
		respondError(w, http.StatusBadGateway, "ADVICE_FAILED", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h)
}

// handleAdviceStream relays advice fragments over a websocket. Closing the
// socket cancels generation; partial text is never stored.
func (s *Server) handleAdviceStream(w http.ResponseWriter, r *http.Request) {
	kind, sess, in, err := s.adviceInput(r.Context(), r)
	if err != nil {
		respondErr(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client sends nothing; a read error means it went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("websocket read error", "error", err)
				}
				return
			}
		}
	}()

	slog.Info("advice stream started", "session", sess.ID, "kind", kind)

	var writeErr error
	text, err := s.advice.Collect(ctx, kind, in, func(chunk string) {
		if writeErr != nil {
			return
		}
		if writeErr = sendStreamMessage(conn, StreamMessage{Type: "chunk", Data: chunk}); writeErr != nil {
			cancel()
		}
	})
	if err != nil {
		if writeErr == nil && ctx.Err() == nil {
			slog.Warn("advice stream failed", "session", sess.ID, "kind", kind, "error", err)
			_ = sendStreamMessage(conn, StreamMessage{Type: "error", Data: err.Error()})
		} else {
			slog.Info("advice stream cancelled", "session", sess.ID, "kind", kind)
		}
		return
	}

	if err := s.storeAdvice(context.WithoutCancel(ctx), sess.ID, kind, text); err != nil {
		slog.Error("failed to store advice", "session", sess.ID, "kind", kind, "error", err)
	}

	if err := sendStreamMessage(conn, StreamMessage{Type: "done", Data: text}); err != nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func sendStreamMessage(conn *websocket.Conn, msg StreamMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("failed to send stream message", "error", err)
		return err
	}
	return nil
}
