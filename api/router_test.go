package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/webcheck/backend/analyzer"
	"github.com/webcheck/backend/config"
	"github.com/webcheck/backend/fetcher"
	"github.com/webcheck/backend/stats"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuditor struct {
	calls  int
	result *analyzer.AnalysisResult
	err    error
}

func (s *stubAuditor) Analyze(_ context.Context, rawURL string) (*analyzer.AnalysisResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	res := *s.result
	res.URL = rawURL
	return &res, nil
}

func testConfig() config.Config {
	return config.Config{
		Server:    config.ServerConfig{Host: "0.0.0.0", Port: 8082, Mode: gin.TestMode, Environment: "test"},
		RateLimit: config.RateLimitConfig{Rate: 100, Burst: 100},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestServer(auditor Auditor) *Server {
	return NewServer(auditor, stats.New(), testConfig(), zap.NewNop())
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func sampleResult() *analyzer.AnalysisResult {
	return &analyzer.AnalysisResult{
		Title:           "Example",
		MetaDescription: "No description found",
		SEO:             analyzer.SEOAnalysis{Score: 80, Issues: []string{}, Recommendations: []string{}},
		Accessibility:   analyzer.AccessibilityAnalysis{Score: 60, Issues: []string{}},
		Performance:     analyzer.PerformanceAnalysis{Score: 100, Issues: []string{}},
		BrokenLinks:     analyzer.BrokenLinks{Internal: []string{}, External: []string{}},
		Images:          analyzer.ImageAnalysis{MissingAlt: []string{}},
		Headers:         analyzer.HeaderAnalysis{Structure: []string{}},
		FutureScope:     []string{},
		OverallScore:    analyzer.OverallScore(80, 60, 100),
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	for _, path := range []string{"/analyze", "/api/analyze"} {
		t.Run(path, func(t *testing.T) {
			auditor := &stubAuditor{result: sampleResult()}
			h := newTestServer(auditor).Handler()

			rec := post(h, path, `{"url":"https://example.com"}`)

			require.Equal(t, http.StatusOK, rec.Code)
			var got analyzer.AnalysisResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "https://example.com", got.URL)
			assert.Equal(t, 80, got.OverallScore)
			assert.Equal(t, 1, auditor.calls)
		})
	}
}

func TestAnalyzeInputErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty object", `{}`, errURLRequired},
		{"blank url", `{"url":"  "}`, errURLRequired},
		{"no body", ``, errURLRequired},
		{"malformed json", `{"url":`, errURLRequired},
		{"null url", `{"url":null}`, errURLRequired},
		{"number url", `{"url":42}`, errInvalidURL},
		{"boolean url", `{"url":true}`, errInvalidURL},
		{"object url", `{"url":{"a":1}}`, errInvalidURL},
		{"array url", `{"url":["https://example.com"]}`, errInvalidURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auditor := &stubAuditor{result: sampleResult()}
			rec := post(newTestServer(auditor).Handler(), "/analyze", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.want), rec.Body.String())
			assert.Zero(t, auditor.calls)
		})
	}
}

func TestAnalyzeTrimsURL(t *testing.T) {
	auditor := &stubAuditor{result: sampleResult()}

	rec := post(newTestServer(auditor).Handler(), "/analyze", `{"url":"  https://example.com\n"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got analyzer.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "https://example.com", got.URL)
	assert.Equal(t, 1, auditor.calls)
}

func TestAnalyzeNonStringURLWithRealAnalyzer(t *testing.T) {
	h := NewServer(analyzer.New(zap.NewNop()), stats.New(), testConfig(), zap.NewNop()).Handler()

	for _, body := range []string{`{"url":42}`, `{"url":true}`, `{"url":{"a":1}}`} {
		rec := post(h, "/analyze", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"Invalid URL format"}`, rec.Body.String(), body)
	}
}

func TestAnalyzeInvalidURLFormat(t *testing.T) {
	auditor := &stubAuditor{err: fmt.Errorf("%w: unsupported scheme", fetcher.ErrInvalidURL)}

	rec := post(newTestServer(auditor).Handler(), "/analyze", `{"url":"ftp://x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid URL format"}`, rec.Body.String())
}

func TestAnalyzeFailureHidesDetails(t *testing.T) {
	auditor := &stubAuditor{err: fmt.Errorf("%w: dial tcp: lookup nowhere.invalid: no such host", fetcher.ErrFetchFailed)}

	rec := post(newTestServer(auditor).Handler(), "/analyze", `{"url":"https://nowhere.invalid"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to analyze website. Please check the URL and try again."}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "no such host")
}

func TestAnalyzeWithRealAnalyzer(t *testing.T) {
	h := newTestServer(analyzer.New(zap.NewNop())).Handler()

	t.Run("non http scheme", func(t *testing.T) {
		rec := post(h, "/analyze", `{"url":"ftp://x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid URL format"}`, rec.Body.String())
	})

	t.Run("unreachable host", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		rec := post(h, "/analyze", fmt.Sprintf(`{"url":%q}`, addr))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body, 1)
		assert.Equal(t, errAnalysisFailed, body["error"])
	})
}

func TestAnalyzeRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Rate: 0.001, Burst: 1}
	auditor := &stubAuditor{result: sampleResult()}
	h := NewServer(auditor, stats.New(), cfg, zap.NewNop()).Handler()

	assert.Equal(t, http.StatusOK, post(h, "/analyze", `{"url":"https://example.com"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(h, "/analyze", `{"url":"https://example.com"}`).Code)
	assert.Equal(t, http.StatusOK, get(h, "/health").Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(&stubAuditor{})
	s.now = func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) }
	h := s.Handler()

	for _, path := range []string{"/health", "/api/health"} {
		rec := get(h, path)
		require.Equal(t, http.StatusOK, rec.Code)

		var body healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, Version, body.Version)
		assert.Equal(t, "2026-10-15T09:30:00Z", body.Timestamp)
		assert.Equal(t, 8082, body.Port)
		assert.Equal(t, "test", body.Environment)
		assert.Equal(t, "/analyze (POST)", body.Endpoints["analyze"])
		assert.Equal(t, "/health (GET)", body.Endpoints["health"])
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	auditor := &stubAuditor{result: sampleResult()}
	h := newTestServer(auditor).Handler()

	post(h, "/analyze", `{"url":"https://example.com"}`)
	auditor.err = errors.New("boom")
	post(h, "/analyze", `{"url":"https://example.org"}`)

	rec := get(h, "/statistics")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap stats.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.TotalRequests)
	assert.InDelta(t, 50.0, snap.ErrorRate, 0.001)
	assert.Nil(t, snap.PopularURLs)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(&stubAuditor{result: sampleResult()}).Handler()
	post(h, "/analyze", `{"url":"https://example.com"}`)

	rec := get(h, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "webcheck_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(&stubAuditor{}).Handler()
	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
