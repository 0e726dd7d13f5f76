package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/config"
	"github.com/abhisek/founderfit/internal/llm"
	"github.com/abhisek/founderfit/internal/sessions"
	"github.com/abhisek/founderfit/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type testEnv struct {
	srv      *Server
	mock     *llm.MockProvider
	sessions *sessions.MemoryRepo
}

func newTestEnv(t *testing.T, withProvider bool) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{sessions: sessions.NewMemoryRepo(time.Hour)}
	var svc *advice.Service
	if withProvider {
		env.mock = llm.NewMockProvider()
		svc = advice.NewService(env.mock, advice.DefaultConfig())
	}

	env.srv = NewServer(Options{
		Config:      config.ServerConfig{Addr: ":0", RequestTimeout: 10 * time.Second},
		Catalog:     catalog.Default(),
		Sessions:    env.sessions,
		Advice:      svc,
		Assessments: db.AssessmentRepo(),
	})
	env.srv.now = func() time.Time { return time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC) }
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.srv.Router().ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()
	rec, env := e.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var view sessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.NotEmpty(t, view.ID)
	return view.ID
}

func (e *testEnv) rateAll(t *testing.T, id string, v int) {
	t.Helper()
	for _, cat := range catalog.Default().Categories {
		for i := range cat.Statements {
			rec, _ := e.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/ratings",
				map[string]any{"category": cat.Name, "index": i, "value": v})
			require.Equal(t, http.StatusOK, rec.Code)
		}
	}
}

func (e *testEnv) setProfile(t *testing.T, id string) {
	t.Helper()
	rec, _ := e.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/respondent", map[string]any{
		"name":       "Fatou Ndiaye",
		"age":        29,
		"sector":     "Commerce",
		"experience": "3-5 years",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t, false)
	rec, env := e.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"advice":false`)
}

func TestCatalog(t *testing.T) {
	e := newTestEnv(t, false)
	rec, env := e.do(t, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Categories       []catalog.Category `json:"categories"`
		Sectors          []string           `json:"sectors"`
		ExperienceLevels []string           `json:"experience_levels"`
		AdviceKinds      []kindView         `json:"advice_kinds"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Categories, 6)
	assert.Equal(t, catalog.Sectors, data.Sectors)
	assert.Equal(t, catalog.ExperienceLevels, data.ExperienceLevels)
	assert.Len(t, data.AdviceKinds, len(advice.Kinds()))
}

func TestSessionLifecycle(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)

	rec, env := e.do(t, http.MethodGet, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view sessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 0, view.Answered)
	assert.Equal(t, 36, view.Total)
	assert.False(t, view.Complete)
	assert.Equal(t, catalog.Leadership, view.Next)
	assert.Contains(t, view.Missing, "sector")

	rec, env = e.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/ratings",
		map[string]any{"category": catalog.Leadership, "index": 0, "value": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 1, view.Answered)
	require.NotNil(t, view.Answers[catalog.Leadership][0])
	assert.EqualValues(t, 5, *view.Answers[catalog.Leadership][0])

	rec, _ = e.do(t, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, env = e.do(t, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", env.Error.Code)
}

func TestSetRating_Validation(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)

	tests := []struct {
		name     string
		body     any
		wantCode string
	}{
		{"rating too high", map[string]any{"category": catalog.Leadership, "index": 0, "value": 6}, "VALIDATION_ERROR"},
		{"rating zero", map[string]any{"category": catalog.Leadership, "index": 0, "value": 0}, "VALIDATION_ERROR"},
		{"unknown category", map[string]any{"category": "Cooking", "index": 0, "value": 3}, "VALIDATION_ERROR"},
		{"index out of range", map[string]any{"category": catalog.Leadership, "index": 6, "value": 3}, "VALIDATION_ERROR"},
		{"missing index", map[string]any{"category": catalog.Leadership, "value": 3}, "VALIDATION_ERROR"},
		{"unknown field", map[string]any{"category": catalog.Leadership, "index": 0, "value": 3, "weight": 2}, "INVALID_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := e.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/ratings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}

	// A rejected rating leaves the session unchanged.
	_, env := e.do(t, http.MethodGet, "/api/v1/sessions/"+id, nil)
	var view sessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 0, view.Answered)

	rec, _ := e.do(t, http.MethodPut, "/api/v1/sessions/missing/ratings",
		map[string]any{"category": catalog.Leadership, "index": 0, "value": 3})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetRespondent(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)

	rec, env := e.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/respondent", map[string]any{"age": 12})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, _ = e.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/respondent", map[string]any{"experience": "forever"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	e.setProfile(t, id)
	_, env = e.do(t, http.MethodGet, "/api/v1/sessions/"+id, nil)
	var view sessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "Fatou Ndiaye", view.Respondent.Name)
	assert.Equal(t, "Commerce", view.Respondent.Sector.Or(""))
	assert.NotContains(t, view.Missing, "sector")
}

func TestResultsAndNext(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)

	for i := range 6 {
		rec, _ := e.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/ratings",
			map[string]any{"category": catalog.Leadership, "index": i, "value": 5})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/results", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Overall float64 `json:"overall"`
		Tier    struct {
			Label string `json:"label"`
		} `json:"tier"`
		Answered int `json:"answered"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.InDelta(t, 5.0/6.0, res.Overall, 1e-9)
	assert.Equal(t, "Beginner", res.Tier.Label)
	assert.Equal(t, 6, res.Answered)

	_, env = e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/next?after="+catalog.Leadership, nil)
	assert.JSONEq(t, fmt.Sprintf(`{"category":%q,"done":false}`, catalog.Management), string(env.Data))

	// Leadership is complete, so scanning from the last category wraps past it.
	_, env = e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/next?after="+strings.ReplaceAll(catalog.FinancialSkill, " ", "%20"), nil)
	assert.JSONEq(t, fmt.Sprintf(`{"category":%q,"done":false}`, catalog.Management), string(env.Data))
}

func TestExport(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)
	e.rateAll(t, id, 3)
	e.setProfile(t, id)

	rec, _ := e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="founderfit_report_20260502.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "category,score\nLeadership,3.00\n"))

	rec, _ = e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/export?format=md", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "- Name: Fatou Ndiaye")
	assert.Contains(t, rec.Body.String(), "**Profile: Intermediate**")

	rec, env := e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UNKNOWN_FORMAT", env.Error.Code)

	rec, env = e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/export?format=txt&kind=summary", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ADVICE_NOT_FOUND", env.Error.Code)
}

func TestSubmit(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)

	rec, env := e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INCOMPLETE", env.Error.Code)

	e.rateAll(t, id, 4)
	rec, _ = e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "profile still missing")

	e.setProfile(t, id)
	rec, env = e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assessmentID := out["assessment_id"]
	require.NotEmpty(t, assessmentID)

	// Submitting again returns the same assessment.
	rec, env = e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, assessmentID, out["assessment_id"])

	rec, env = e.do(t, http.MethodGet, "/api/v1/assessments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []assessmentView
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, assessmentID, list[0].ID)
	assert.Equal(t, "Excellence", list[0].Level)
	assert.Equal(t, 6, list[0].StrongCount)

	rec, _ = e.do(t, http.MethodGet, "/api/v1/assessments/"+assessmentID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = e.do(t, http.MethodGet, "/api/v1/assessments/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = e.do(t, http.MethodGet, "/api/v1/assessments?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// gatedRepo holds SaveWithAdvice until release is closed, or fails it
// when fail is set.
type gatedRepo struct {
	store.AssessmentRepo
	entered chan struct{}
	release chan struct{}
	fail    error
}

func (g *gatedRepo) SaveWithAdvice(ctx context.Context, rec *store.AssessmentRecord, adv []*store.AdviceRecord) error {
	if g.fail != nil {
		err := g.fail
		g.fail = nil
		return err
	}
	if g.entered != nil {
		close(g.entered)
		<-g.release
	}
	return g.AssessmentRepo.SaveWithAdvice(ctx, rec, adv)
}

func TestSubmit_ConcurrentRequestsStoreOnce(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)
	e.rateAll(t, id, 3)
	e.setProfile(t, id)

	gate := &gatedRepo{
		AssessmentRepo: e.srv.assessments,
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	e.srv.assessments = gate

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		rec := httptest.NewRecorder()
		e.srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil))
		first <- rec
	}()

	select {
	case <-gate.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submit never reached the store")
	}

	rec, env := e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "SUBMIT_IN_PROGRESS", env.Error.Code)

	close(gate.release)
	assert.Equal(t, http.StatusCreated, (<-first).Code)

	list, err := gate.List(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSubmit_FailedSaveReleasesClaim(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)
	e.rateAll(t, id, 3)
	e.setProfile(t, id)

	e.srv.assessments = &gatedRepo{AssessmentRepo: e.srv.assessments, fail: errors.New("disk full")}

	rec, _ := e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec, _ = e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSubmit_TakesOverAbandonedClaim(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)
	e.rateAll(t, id, 3)
	e.setProfile(t, id)

	claimedAt := e.srv.now()
	_, err := e.sessions.Update(context.Background(), id, func(sess *sessions.Session) error {
		sess.SubmitClaim = "abandoned-claim"
		sess.SubmitClaimedAt = claimedAt
		return nil
	})
	require.NoError(t, err)

	rec, _ := e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	e.srv.now = func() time.Time { return claimedAt.Add(submitClaimTTL + time.Second) }
	rec, env := e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "abandoned-claim", out["assessment_id"])
}

func TestAdvice(t *testing.T) {
	e := newTestEnv(t, true)
	id := e.createSession(t)
	e.rateAll(t, id, 2)
	e.setProfile(t, id)

	e.mock.AddResponse(llm.MockResponse{Chunks: []string{"1. Keep a cash book.\n", "2. Visit the DER/FJ office."}})
	rec, env := e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/advice/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view adviceView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "1. Keep a cash book.\n2. Visit the DER/FJ office.", view.Content)
	assert.Equal(t, "summary_20260502.txt", view.Filename)
	assert.Equal(t, "mock", view.Model)

	// Summary advice is embedded in the report and downloadable on its own.
	rec, _ = e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/export?format=md", nil)
	assert.Contains(t, rec.Body.String(), "## Summary Recommendations\n\n1. Keep a cash book.")
	rec, _ = e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/export?format=txt&kind=summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="summary_20260502.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, view.Content, rec.Body.String())

	e.mock.AddResponse(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("slow down")}})
	rec, env = e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/advice/training", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "ADVICE_FAILED", env.Error.Code)

	e.mock.AddResponse(llm.MockResponse{Chunks: []string{"partial "}, StreamErr: errors.New("connection reset")})
	rec, _ = e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/advice/funding", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	sess, err := e.sessions.Get(t.Context(), id)
	require.NoError(t, err)
	assert.NotContains(t, sess.Advice, advice.Training)
	assert.NotContains(t, sess.Advice, advice.Funding, "partial text must not be stored")

	rec, env = e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/advice/poetry", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "UNKNOWN_ADVICE_KIND", env.Error.Code)
}

func TestAdvice_NoProvider(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)

	rec, env := e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/advice/summary", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "ADVICE_UNAVAILABLE", env.Error.Code)
}

func TestHighlights(t *testing.T) {
	e := newTestEnv(t, true)
	id := e.createSession(t)
	e.mock.AddResponse(llm.MockResponse{Content: json.RawMessage(
		`{"focus_skills":["Financial Management"],"action_30_days":"Open a business account","resource":"ADEPME"}`)})

	rec, env := e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/highlights", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var h advice.Highlights
	require.NoError(t, json.Unmarshal(env.Data, &h))
	assert.Equal(t, []string{"Financial Management"}, h.FocusSkills)
	assert.Equal(t, "ADEPME", h.Resource)
}

func readStream(t *testing.T, conn *websocket.Conn) []StreamMessage {
	t.Helper()
	var msgs []StreamMessage
	for {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return msgs
		}
		msgs = append(msgs, msg)
		if msg.Type == "done" || msg.Type == "error" {
			return msgs
		}
	}
}

func dialStream(t *testing.T, e *testEnv, id string, kind advice.Kind) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(e.srv.Router())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/sessions/" + id + "/advice/" + string(kind) + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestAdviceStream(t *testing.T) {
	e := newTestEnv(t, true)
	id := e.createSession(t)
	e.mock.AddResponse(llm.MockResponse{Chunks: []string{"Join ", "a mentoring ", "circle."}})

	msgs := readStream(t, dialStream(t, e, id, advice.Mentoring))
	require.Len(t, msgs, 4)
	assert.Equal(t, StreamMessage{Type: "chunk", Data: "Join "}, msgs[0])
	assert.Equal(t, StreamMessage{Type: "chunk", Data: "circle."}, msgs[2])
	assert.Equal(t, StreamMessage{Type: "done", Data: "Join a mentoring circle."}, msgs[3])

	sess, err := e.sessions.Get(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "Join a mentoring circle.", sess.Advice[advice.Mentoring])
}

func TestAdviceStream_Error(t *testing.T) {
	e := newTestEnv(t, true)
	id := e.createSession(t)
	e.mock.AddResponse(llm.MockResponse{Chunks: []string{"Start "}, StreamErr: errors.New("upstream closed")})

	msgs := readStream(t, dialStream(t, e, id, advice.Strategy))
	require.Len(t, msgs, 2)
	assert.Equal(t, "chunk", msgs[0].Type)
	assert.Equal(t, "error", msgs[1].Type)
	assert.Contains(t, msgs[1].Data, "upstream closed")

	sess, err := e.sessions.Get(t.Context(), id)
	require.NoError(t, err)
	assert.Empty(t, sess.Advice)
}

func TestAdviceStream_RejectedBeforeUpgrade(t *testing.T) {
	e := newTestEnv(t, false)
	id := e.createSession(t)

	ts := httptest.NewServer(e.srv.Router())
	defer ts.Close()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/sessions/" + id + "/advice/summary/stream"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	e := newTestEnv(t, false)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sessions", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	e.srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
