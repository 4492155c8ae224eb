package serve

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-ai/finrag/chartdata"
	"github.com/finsight-ai/finrag/graphrag"
	"github.com/finsight-ai/finrag/pipeline"
)

// fakeAsker scripts the pipeline result and records the call.
type fakeAsker struct {
	outcome  *pipeline.Outcome
	err      error
	question string
	history  []pipeline.Turn
}

func (f *fakeAsker) Ask(_ context.Context, question string, history []pipeline.Turn) (*pipeline.Outcome, error) {
	f.question = question
	f.history = history
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func newTestServer(t *testing.T, asker Asker) *Server {
	t.Helper()
	s, err := NewServer(asker, DefaultConfig())
	require.NoError(t, err)
	return s
}

func postChat(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeChat(t *testing.T, w *httptest.ResponseRecorder) ChatResponse {
	t.Helper()
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleChat(t *testing.T) {
	t.Run("text answer", func(t *testing.T) {
		asker := &fakeAsker{outcome: &pipeline.Outcome{
			Status: pipeline.StatusAnswer,
			Answer: "Acme revenue was $10M in 2023.",
		}}
		s := newTestServer(t, asker)

		w := postChat(t, s, ChatRequest{Question: "What was Acme's 2023 revenue?"})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeChat(t, w)
		assert.Equal(t, "Acme revenue was $10M in 2023.", resp.Answer)
		assert.Empty(t, resp.ChartImage)
		assert.Empty(t, resp.Error)
		assert.Equal(t, "What was Acme's 2023 revenue?", asker.question)
	})

	t.Run("chart answer carries base64 png", func(t *testing.T) {
		png := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
		asker := &fakeAsker{outcome: &pipeline.Outcome{
			Status:   pipeline.StatusChart,
			Answer:   "Revenue grew from $8M to $10M.",
			Chart:    &chartdata.ChartData{CanGenerateChart: true, ChartType: chartdata.ChartTypeBar},
			ChartPNG: png,
		}}
		s := newTestServer(t, asker)

		w := postChat(t, s, ChatRequest{Question: "Chart revenue by year"})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeChat(t, w)
		assert.Equal(t, "bar", resp.ChartType)
		decoded, err := base64.StdEncoding.DecodeString(resp.ChartImage)
		require.NoError(t, err)
		assert.Equal(t, png, decoded)
	})

	t.Run("designed chart failure returns answer plus error field", func(t *testing.T) {
		asker := &fakeAsker{outcome: &pipeline.Outcome{
			Status:     pipeline.StatusAnswer,
			Answer:     "The 2030 forecast is not available.",
			ChartError: "chart not available: 2030 forecast data is not available",
		}}
		s := newTestServer(t, asker)

		w := postChat(t, s, ChatRequest{Question: "Chart the 2030 forecast"})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeChat(t, w)
		assert.Equal(t, "The 2030 forecast is not available.", resp.Answer)
		assert.Contains(t, resp.Error, "chart not available")
		assert.Empty(t, resp.ChartImage)
	})

	t.Run("history forwarded to the pipeline", func(t *testing.T) {
		asker := &fakeAsker{outcome: &pipeline.Outcome{Status: pipeline.StatusAnswer, Answer: "ok"}}
		s := newTestServer(t, asker)

		w := postChat(t, s, ChatRequest{
			Question:    "and in 2022?",
			ChatHistory: []HistoryTurn{{Question: "revenue 2023?", Answer: "$10M"}},
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, asker.history, 1)
		assert.Equal(t, "revenue 2023?", asker.history[0].Question)
		assert.Equal(t, "$10M", asker.history[0].Answer)
	})

	t.Run("missing question is a 400", func(t *testing.T) {
		s := newTestServer(t, &fakeAsker{outcome: &pipeline.Outcome{}})

		w := postChat(t, s, map[string]string{"not_question": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, decodeChat(t, w).Error)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		s := newTestServer(t, &fakeAsker{outcome: &pipeline.Outcome{}})

		req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("infrastructure failure is a 502 with a generic message", func(t *testing.T) {
		asker := &fakeAsker{err: graphrag.ErrEvidenceUnavailable}
		s := newTestServer(t, asker)

		w := postChat(t, s, ChatRequest{Question: "q"})
		require.Equal(t, http.StatusBadGateway, w.Code)

		resp := decodeChat(t, w)
		assert.NotContains(t, resp.Error, "evidence source unavailable")
		assert.NotEmpty(t, resp.Error)
		assert.Empty(t, resp.Answer)
	})
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &fakeAsker{outcome: &pipeline.Outcome{}})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSetupTracing(t *testing.T) {
	tracer, shutdown, err := SetupTracing(io.Discard)
	require.NoError(t, err)
	require.NotNil(t, tracer)

	_, span := tracer.Start(context.Background(), "test-span")
	span.End()

	require.NoError(t, shutdown(context.Background()))
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, &fakeAsker{outcome: &pipeline.Outcome{Status: pipeline.StatusAnswer, Answer: "ok"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
