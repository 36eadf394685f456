// internal/core/usecases/url_analyzer_test.go
package usecases

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/metrics"
	"fraudtect/internal/testutil"
	"fraudtect/internal/urlrisk"
)

// metricNames retorna los nombres de las familias registradas con al menos una muestra.
func metricNames(t *testing.T, reg *prometheus.Registry) map[string]bool {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func registryAged(days int) stubRegistry {
	created := testutil.DaysAgo(days)
	return stubRegistry{info: domain.RegistryInfo{CreationDate: &created}}
}

func TestURLAnalyzer_Analyze(t *testing.T) {
	sink := &mockSink{}
	m := metrics.New()
	engine := urlrisk.New(
		stubResolver{err: errors.Errorf("%w: no such host", domain.ErrDNSResolution)},
		registryAged(10),
		urlrisk.WithClock(fixedNow),
		urlrisk.WithMetrics(m),
	)
	a := NewURLAnalyzer(URLAnalyzerOptions{Engine: engine, History: sink, Metrics: m, Now: fixedNow})

	res := a.Analyze(context.Background(), "free-prize.xyz", false)

	assert.Equal(t, 100, res.RiskScore)
	assert.Equal(t, domain.VerdictMalicious, res.Verdict)

	records := sink.all()
	require.Len(t, records, 1)
	assert.Equal(t, domain.AnalysisURL, records[0].Type)
	assert.Equal(t, "http://free-prize.xyz", records[0].Input)
	assert.Equal(t, 100.0, records[0].RiskScore)

	names := metricNames(t, m.Registry())
	assert.True(t, names["fraudtect_external_failures_total"])
	assert.True(t, names["fraudtect_analysis_duration_seconds"])
}

func TestURLAnalyzer_DeepScanKeyMissing(t *testing.T) {
	engine := urlrisk.New(stubResolver{}, registryAged(200),
		urlrisk.WithClock(fixedNow),
		urlrisk.WithReputation(stubService{name: "VirusTotal", report: domain.ReputationReport{
			Service: "VirusTotal", Status: domain.ReportKeyMissing, Error: "VirusTotal API key missing",
		}}),
	)
	a := NewURLAnalyzer(URLAnalyzerOptions{Engine: engine})

	res := a.Analyze(context.Background(), "https://example.com", true)

	require.NotNil(t, res)
	assert.Equal(t, 0, res.RiskScore)
	assert.Equal(t, domain.VerdictLegitimate, res.Verdict)
	assert.Equal(t, "VirusTotal API key missing", res.Reputation["virustotal"].Error)
	assert.Equal(t, []string{"VirusTotal"}, a.DeepScanServices())
}

func TestURLAnalyzer_EmptyInput(t *testing.T) {
	a := NewURLAnalyzer(URLAnalyzerOptions{Engine: urlrisk.New(stubResolver{}, stubRegistry{})})

	res := a.Analyze(context.Background(), "", false)

	require.NotNil(t, res)
	assert.False(t, res.DNSResolves)
	assert.Contains(t, res.Reasons, urlrisk.ReasonDNSFailure)
}

func TestURLAnalyzer_ServicePanicStaysInsideReport(t *testing.T) {
	sink := &mockSink{}
	engine := urlrisk.New(stubResolver{}, registryAged(200),
		urlrisk.WithClock(fixedNow),
		urlrisk.WithReputation(nilMapService{name: "VirusTotal"}),
	)
	a := NewURLAnalyzer(URLAnalyzerOptions{Engine: engine, History: sink})

	var res *domain.URLAnalysis
	require.NotPanics(t, func() {
		res = a.Analyze(context.Background(), "https://example.com", true)
	})

	require.NotNil(t, res)
	assert.Equal(t, 0, res.RiskScore)
	assert.Equal(t, domain.ReportFailed, res.Reputation["virustotal"].Status)
	assert.Contains(t, res.Reputation["virustotal"].Error, "assignment to entry in nil map")
	assert.Len(t, sink.all(), 1, "history still recorded")
}
