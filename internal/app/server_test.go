package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServerApp(t *testing.T) *App {
	t.Helper()
	cfg := testConfig(t)
	cfg.Server.RateLimit = 0
	cfg.Server.ShutdownTimeout = time.Second

	a, err := New(context.Background(), cfg, discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestHandler_AnalyzeWord(t *testing.T) {
	t.Parallel()

	a := newServerApp(t)
	h, stop := a.Handler(testConfig(t))
	defer stop()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-word",
		strings.NewReader(`{"word":"Walked","fullText":"She walked home. It rained."}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Word     string `json:"word"`
		Sentence string `json:"sentence"`
		NLP      struct {
			Root  string  `json:"root"`
			Tense *string `json:"tense"`
		} `json:"nlp"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "walked", got.Word)
	assert.Equal(t, "She walked home.", got.Sentence)
	assert.Equal(t, "walk", got.NLP.Root)
	require.NotNil(t, got.NLP.Tense)
}

func TestHandler_TranslateNotConfigured(t *testing.T) {
	t.Parallel()

	a := newServerApp(t)
	h, stop := a.Handler(testConfig(t))
	defer stop()

	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(`{"text":"hello"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	a := newServerApp(t)
	cfg := testConfig(t)
	cfg.Server.ShutdownTimeout = time.Second

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, cfg, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/live")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestHandler_VocabularyWords(t *testing.T) {
	t.Parallel()

	a := newServerApp(t)
	h, stop := a.Handler(testConfig(t))
	defer stop()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vocabulary/words?level=B2", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page struct {
		Words []struct {
			ID   string `json:"id"`
			Word string `json:"word"`
		} `json:"words"`
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Words, 1)
	assert.Equal(t, "abandon", page.Words[0].Word)
}

func TestHandler_StoryWriteNeedsAdminToken(t *testing.T) {
	t.Parallel()

	a := newServerApp(t)
	h, stop := a.Handler(testConfig(t))
	defer stop()

	body := `{"title":"Harbour","level":"B1","text":"Ships left at dawn."}`

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer correct-horse")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Harbour")
}
