package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hmi-lab/llm-study/app"
	"github.com/hmi-lab/llm-study/config"
	"github.com/hmi-lab/llm-study/database"
	"github.com/hmi-lab/llm-study/llm"
	"github.com/hmi-lab/llm-study/model"
	"github.com/hmi-lab/llm-study/study"
	"github.com/stretchr/testify/require"
)

var testSequences = [][]string{
	{"Labeling", "Analytical", "Creative", "Procedural"},
	{"Analytical", "Procedural", "Labeling", "Creative"},
}

// stubLLM records every message array it is asked to complete.
type stubLLM struct {
	mu         sync.Mutex
	completion llm.Completion
	err        error
	delay      time.Duration
	calls      [][]model.Message
}

func (s *stubLLM) Complete(ctx context.Context, messages []model.Message) (llm.Completion, error) {
	s.mu.Lock()
	s.calls = append(s.calls, messages)
	completion, err, delay := s.completion, s.err, s.delay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return completion, err
}

func (s *stubLLM) set(completion llm.Completion, err error) {
	s.mu.Lock()
	s.completion, s.err = completion, err
	s.mu.Unlock()
}

func newTestApp(t *testing.T, client llm.Client, maxParticipants, minResponseMs int) app.App {
	t.Helper()

	cfg := config.Config{
		DBUrl:           filepath.Join(t.TempDir(), "study.sqlite"),
		MinResponseMs:   minResponseMs,
		MaxParticipants: maxParticipants,
		Model:           "test-model",
		SystemPrompt:    "system instruction",
		Sequences:       testSequences,
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assigner, err := study.NewAssigner(cfg.Sequences)
	require.NoError(t, err)

	return app.App{DB: db, Config: cfg, LLM: client, Assigner: assigner}
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerTestParticipant(t *testing.T, handler http.Handler, email string) model.RegisterResponse {
	t.Helper()

	rec := postJSON(t, handler, "/register", model.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Age:       28,
		Gender:    "F",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeJSON[model.RegisterResponse](t, rec)
}

func TestOnlineStatus(t *testing.T) {
	a := newTestApp(t, &stubLLM{}, 5, 0)
	handler := Wire(a)

	req := httptest.NewRequest(http.MethodGet, "/online-status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "online")
}
