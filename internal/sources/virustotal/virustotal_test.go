package virustotal

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/sources/common"
	"fraudtect/internal/testutil"
)

const (
	submitKey   = "POST /api/v3/urls"
	analysisKey = "GET /api/v3/analyses/u-abc-123"

	submitOK = `{"data": {"type": "analysis", "id": "u-abc-123"}}`
	queued   = `{"data": {"id": "u-abc-123", "attributes": {"status": "queued", "stats": {}}}}`
	done     = `{"data": {"id": "u-abc-123", "attributes": {"status": "completed",
		"stats": {"harmless": 60, "malicious": 4, "suspicious": 1, "undetected": 10, "timeout": 0}}}}`
)

type sleepRecorder struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.sleeps = append(s.sleeps, d)
	s.mu.Unlock()
	return ctx.Err()
}

func newTestClient(t *testing.T, key string, routes map[string]testutil.Route) (*Client, *testutil.FakeServer, *sleepRecorder) {
	t.Helper()
	server := testutil.NewFakeServer(t, routes)
	rec := &sleepRecorder{}
	client := New(Config{
		BaseConfig: common.BaseConfig{
			APIKey: key,
			Sleep:  rec.sleep,
		},
		BaseURL: server.URL,
	}, logx.NewSilent())
	return client, server, rec
}

func TestClient_KeyMissing(t *testing.T) {
	client, server, _ := newTestClient(t, "", map[string]testutil.Route{})

	report := client.Check(context.Background(), "http://example.com")

	assert.Equal(t, domain.ReportKeyMissing, report.Status)
	assert.Equal(t, "VirusTotal API key missing", report.Error)
	assert.Equal(t, ServiceName, report.Service)
	assert.Empty(t, server.Requests(), "no network call without key")
}

func TestClient_ReadyAfterPolling(t *testing.T) {
	client, server, rec := newTestClient(t, "vt-key", map[string]testutil.Route{
		submitKey:   {Body: submitOK},
		analysisKey: {Sequence: []testutil.Route{{Body: queued}, {Body: done}}},
	})

	report := client.Check(context.Background(), "http://example.com")

	require.Equal(t, domain.ReportReady, report.Status, report.Error)
	assert.Equal(t, 4, report.Malicious)
	assert.Equal(t, 60, report.Stats["harmless"])
	assert.Equal(t, "u-abc-123", report.ScanID)
	assert.Equal(t, "https://www.virustotal.com/gui/url/aHR0cDovL2V4YW1wbGUuY29t/detection", report.Link)
	assert.Empty(t, report.Error)

	assert.Equal(t, 1, server.Hits(submitKey))
	assert.Equal(t, 2, server.Hits(analysisKey))
	assert.Equal(t, []time.Duration{DefaultInitialDelay, DefaultPollInterval}, rec.sleeps)

	for _, req := range server.Requests() {
		assert.Equal(t, "vt-key", req.Header.Get("x-apikey"))
	}
	assert.Equal(t, "application/x-www-form-urlencoded", server.Requests()[0].Header.Get("Content-Type"))
}

func TestClient_TimedOut(t *testing.T) {
	client, server, _ := newTestClient(t, "vt-key", map[string]testutil.Route{
		submitKey:   {Body: submitOK},
		analysisKey: {Body: queued},
	})

	report := client.Check(context.Background(), "http://example.com")

	assert.Equal(t, domain.ReportTimedOut, report.Status)
	assert.Equal(t, DefaultMaxAttempts, server.Hits(analysisKey))
	assert.Contains(t, report.Error, "VirusTotal scan is taking too long")
	assert.Equal(t, 0, report.Malicious)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		routes map[string]testutil.Route
		want   string
	}{
		{
			name:   "submit rejected",
			routes: map[string]testutil.Route{submitKey: {Status: http.StatusInternalServerError, Body: `{}`}},
			want:   "VirusTotal submit failed: 500",
		},
		{
			name: "fetch forbidden",
			routes: map[string]testutil.Route{
				submitKey:   {Body: submitOK},
				analysisKey: {Status: http.StatusForbidden, Body: `{}`},
			},
			want: "VirusTotal fetch failed: 403",
		},
		{
			name:   "missing analysis id",
			routes: map[string]testutil.Route{submitKey: {Body: `{"data": {}}`}},
			want:   "VirusTotal submit failed: missing analysis id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, _ := newTestClient(t, "vt-key", tt.routes)

			report := client.Check(context.Background(), "http://example.com")

			assert.Equal(t, domain.ReportFailed, report.Status)
			assert.Contains(t, report.Error, tt.want)
		})
	}
}

func TestClient_CancelledContext(t *testing.T) {
	client, _, _ := newTestClient(t, "vt-key", map[string]testutil.Route{submitKey: {Body: submitOK}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := client.Check(ctx, "http://example.com")

	assert.Equal(t, domain.ReportFailed, report.Status)
	assert.Equal(t, "VirusTotal request cancelled", report.Error)
}

func TestGUILink(t *testing.T) {
	assert.Equal(t, "https://www.virustotal.com/gui/url/aHR0cHM6Ly9hLmI_eD0x/detection", GUILink("https://a.b?x=1"))
}
