package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianbank/nova/internal/core"
	"github.com/meridianbank/nova/internal/eval"
)

type stubResponder struct {
	reply   string
	err     error
	threads []string
}

func (s *stubResponder) Respond(ctx context.Context, threadID, prompt string) (string, error) {
	s.threads = append(s.threads, threadID)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestRouter(t *testing.T, stub *stubResponder, datasetDir string) http.Handler {
	t.Helper()
	return NewRouter(core.Testing, Dependencies{
		ChatHandler:   NewChatHandler(stub),
		EvalHandler:   NewEvalHandler(eval.NewRunner(stub), datasetDir),
		HealthHandler: NewHealthHandler(nil),
	})
}

// TestChat_GeneratesThreadID verifies a missing thread_id starts a new thread.
func TestChat_GeneratesThreadID(t *testing.T) {
	stub := &stubResponder{reply: "Hello, I am Nova."}
	r := newTestRouter(t, stub, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"prompt":"hi"}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hello, I am Nova.", resp.Response)
	assert.NotEmpty(t, resp.ThreadID)
	require.Len(t, stub.threads, 1)
	assert.Equal(t, resp.ThreadID, stub.threads[0])
}

// TestChat_ReusesThreadID verifies an explicit thread_id is passed through.
func TestChat_ReusesThreadID(t *testing.T) {
	stub := &stubResponder{reply: "ok"}
	r := newTestRouter(t, stub, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"prompt":"hi","thread_id":"thread-42"}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "thread-42", resp.ThreadID)
	require.Len(t, stub.threads, 1)
	assert.Equal(t, "thread-42", stub.threads[0])
}

// TestChat_EmptyPrompt verifies the 400 path.
func TestChat_EmptyPrompt(t *testing.T) {
	r := newTestRouter(t, &stubResponder{}, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"prompt":"  "}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestChat_AgentFailure verifies internal faults map to the generic message.
func TestChat_AgentFailure(t *testing.T) {
	stub := &stubResponder{err: errors.New("model unavailable")}
	r := newTestRouter(t, stub, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"prompt":"hi"}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An error occurred"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "model unavailable")
}

// TestSimulation_RunsDataset verifies the batch endpoint replays rows in order.
func TestSimulation_RunsDataset(t *testing.T) {
	dir := t.TempDir()
	rows := `[{"id":"row-1","messages":["hi","my pan is ABCPI1234K"]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smoke.json"), []byte(rows), 0o644))

	stub := &stubResponder{reply: "ok"}
	r := newTestRouter(t, stub, dir)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/simulation/smoke", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result eval.RunResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "simulation", result.Mode)
	require.Len(t, result.Rows, 1)
	assert.Len(t, result.Rows[0].Turns, 2)

	// both turns share the row's thread
	require.Len(t, stub.threads, 2)
	assert.Equal(t, stub.threads[0], stub.threads[1])
}

// TestSingleTurn_FreshThreads verifies every prompt runs on its own thread.
func TestSingleTurn_FreshThreads(t *testing.T) {
	dir := t.TempDir()
	rows := `[{"id":"row-1","messages":["hi","hello again"]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smoke.json"), []byte(rows), 0o644))

	stub := &stubResponder{reply: "ok"}
	r := newTestRouter(t, stub, dir)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/single-turn/smoke", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, stub.threads, 2)
	assert.NotEqual(t, stub.threads[0], stub.threads[1])
}

// TestSimulation_UnknownDataset verifies the 404 path.
func TestSimulation_UnknownDataset(t *testing.T) {
	r := newTestRouter(t, &stubResponder{}, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/simulation/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestHealthz verifies the liveness probe without a backing dependency.
func TestHealthz(t *testing.T) {
	r := newTestRouter(t, &stubResponder{}, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
