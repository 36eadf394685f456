// internal/core/usecases/url_analyzer.go
package usecases

import (
	"context"
	"time"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/platform/metrics"
	"fraudtect/internal/urlrisk"
)

// URLAnalyzer ejecuta el motor de riesgo de URLs y registra el resultado.
type URLAnalyzer struct {
	engine  *urlrisk.Engine
	history historyRecorder
	metrics *metrics.Metrics
	logger  logx.Logger
	now     func() time.Time
}

// URLAnalyzerOptions configura el URLAnalyzer.
type URLAnalyzerOptions struct {
	Engine  *urlrisk.Engine
	History ports.HistorySink
	Metrics *metrics.Metrics
	Logger  logx.Logger
	Now     func() time.Time
}

// NewURLAnalyzer crea una nueva instancia del analizador de URLs.
func NewURLAnalyzer(opts URLAnalyzerOptions) *URLAnalyzer {
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := opts.Logger.With("component", "url-analyzer")
	return &URLAnalyzer{
		engine:  opts.Engine,
		history: historyRecorder{sink: opts.History, logger: logger},
		metrics: opts.Metrics,
		logger:  logger,
		now:     opts.Now,
	}
}

// Analyze nunca falla: una entrada vacía también produce resultado.
func (a *URLAnalyzer) Analyze(ctx context.Context, rawURL string, deepScan bool) *domain.URLAnalysis {
	start := time.Now()

	res := a.engine.Analyze(ctx, rawURL, deepScan)

	a.history.record(ctx, newRecord(res.ID, domain.AnalysisURL, res.URL, float64(res.RiskScore), res.Verdict, a.now()))
	a.metrics.ObserveAnalysis(domain.AnalysisURL.String(), res.Verdict.String(), time.Since(start))

	if ctx.Err() != nil {
		a.logger.Warn("url analysis finished after cancellation", "url", res.URL, "error", ctx.Err().Error())
	}
	return res
}

// DeepScanServices lista los servicios de reputación configurados.
func (a *URLAnalyzer) DeepScanServices() []string {
	return a.engine.Services()
}
