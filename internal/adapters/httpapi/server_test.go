package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeText struct {
	err       error
	available bool
	got       []string
}

func (f *fakeText) Analyze(_ context.Context, text string) (*domain.TextAnalysis, error) {
	f.got = append(f.got, text)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TextAnalysis{ID: "t1", InputText: text, RiskScore: 72.5, Verdict: domain.VerdictConfirmedScam}, nil
}

func (f *fakeText) ModelAvailable() bool { return f.available }

type fakeURL struct {
	deep []bool
}

func (f *fakeURL) Analyze(_ context.Context, raw string, deep bool) *domain.URLAnalysis {
	f.deep = append(f.deep, deep)
	return &domain.URLAnalysis{ID: "u1", URL: "http://" + raw, Domain: raw, RiskScore: 40, Verdict: domain.VerdictSuspicious, Reasons: []string{}}
}

func (f *fakeURL) DeepScanServices() []string { return []string{"VirusTotal", "URLScan"} }

type fakeHistory struct {
	records  []domain.HistoryRecord
	limits   []int
	feedback map[string]string
}

func (f *fakeHistory) List(_ context.Context, limit int) ([]domain.HistoryRecord, error) {
	f.limits = append(f.limits, limit)
	return f.records, nil
}

func (f *fakeHistory) RecordFeedback(_ context.Context, id, feedbackType, _ string) error {
	if !domain.ValidFeedbackType(feedbackType) {
		return errors.Wrapf(domain.ErrInvalidFeedbackType, "%q", feedbackType)
	}
	if _, ok := f.feedback[id]; !ok {
		return errors.Wrapf(domain.ErrRecordNotFound, "id %s", id)
	}
	f.feedback[id] = feedbackType
	return nil
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	router := NewRouter(Options{Text: &fakeText{available: true}, URL: &fakeURL{}})

	rec := do(t, router, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["model_available"])
	assert.Equal(t, []any{"VirusTotal", "URLScan"}, body["deep_scan_services"])
}

func TestAnalyzeText(t *testing.T) {
	text := &fakeText{}
	router := NewRouter(Options{Text: text})

	rec := do(t, router, http.MethodPost, "/api/v1/analyze/text", `{"text": "verify your account"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Confirmed Scam", body["verdict"])
	assert.Equal(t, 72.5, body["risk_score"])
	assert.Equal(t, []string{"verify your account"}, text.got)
}

func TestAnalyzeText_EmptyTextIsAnalyzed(t *testing.T) {
	text := &fakeText{}
	router := NewRouter(Options{Text: text})

	rec := do(t, router, http.MethodPost, "/api/v1/analyze/text", `{"text": ""}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{""}, text.got)
}

func TestAnalyzeText_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want string
	}{
		{"invalid json", `{"text":`, nil, "invalid request body"},
		{"missing field", `{"message": "hi"}`, nil, "field 'text' is required"},
		{"malformed input", `{"text": "x"}`, errors.Wrap(domain.ErrMalformedInput, "text exceeds 10 bytes"), "malformed input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(Options{Text: &fakeText{err: tt.err}})

			rec := do(t, router, http.MethodPost, "/api/v1/analyze/text", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode(t, rec)["error"], tt.want)
		})
	}
}

func TestAnalyzeText_InternalError(t *testing.T) {
	router := NewRouter(Options{Text: &fakeText{err: errors.New("text analysis aborted: panic: boom")}})

	rec := do(t, router, http.MethodPost, "/api/v1/analyze/text", `{"text": "x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "text analysis aborted: panic: boom", decode(t, rec)["error"])
}

func TestAnalyzeText_BodyTooLarge(t *testing.T) {
	router := NewRouter(Options{Text: &fakeText{}})
	body := `{"text": "` + strings.Repeat("a", MaxBodyBytes) + `"}`

	rec := do(t, router, http.MethodPost, "/api/v1/analyze/text", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeURL(t *testing.T) {
	url := &fakeURL{}
	router := NewRouter(Options{URL: url})

	rec := do(t, router, http.MethodPost, "/api/v1/analyze/url", `{"url": "example.com", "deep_scan": true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "example.com", body["domain"])
	assert.Equal(t, "Suspicious", body["verdict"])
	assert.Equal(t, []bool{true}, url.deep)

	rec = do(t, router, http.MethodPost, "/api/v1/analyze/url", `{"deep_scan": true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotConfigured(t *testing.T) {
	router := NewRouter(Options{})

	assert.Equal(t, http.StatusNotImplemented, do(t, router, http.MethodPost, "/api/v1/analyze/text", `{"text":"x"}`).Code)
	assert.Equal(t, http.StatusNotImplemented, do(t, router, http.MethodPost, "/api/v1/analyze/url", `{"url":"x"}`).Code)
	assert.Equal(t, http.StatusNotImplemented, do(t, router, http.MethodGet, "/api/v1/history", "").Code)

	rec := do(t, router, http.MethodPost, "/api/v1/history/abc/feedback", `{"type":"correct"}`)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, domain.ErrFeedbackUnsupported.Error(), decode(t, rec)["error"])

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/metrics", "").Code)
}

func TestListHistory(t *testing.T) {
	hist := &fakeHistory{records: []domain.HistoryRecord{
		{ID: "a", Type: domain.AnalysisText, Verdict: domain.VerdictLegitimate},
	}}
	router := NewRouter(Options{History: hist})

	rec := do(t, router, http.MethodGet, "/api/v1/history?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var records []domain.HistoryRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)

	do(t, router, http.MethodGet, "/api/v1/history", "")
	assert.Equal(t, []int{5, DefaultHistoryLimit}, hist.limits)

	for _, bad := range []string{"abc", "0", "-3"} {
		rec = do(t, router, http.MethodGet, "/api/v1/history?limit="+bad, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestRecordFeedback(t *testing.T) {
	hist := &fakeHistory{feedback: map[string]string{"abc": ""}}
	router := NewRouter(Options{Feedback: hist})

	rec := do(t, router, http.MethodPost, "/api/v1/history/abc/feedback", `{"type": "false_positive", "comments": "my bank"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "recorded", decode(t, rec)["status"])
	assert.Equal(t, "false_positive", hist.feedback["abc"])

	rec = do(t, router, http.MethodPost, "/api/v1/history/abc/feedback", `{"type": "meh"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/history/zzz/feedback", `{"type": "correct"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/history/abc/feedback", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	m := metrics.New()
	m.ObserveAnalysis("text", "Legitimate", 0)
	router := NewRouter(Options{Metrics: m.Handler()})

	rec := do(t, router, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fraudtect_analyses_total")
}

func TestServerRun_StopsOnCancel(t *testing.T) {
	srv := New("127.0.0.1:0", Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, srv.Run(ctx))
	assert.NotNil(t, srv.Handler())
}
