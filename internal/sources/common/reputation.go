// Package common provides shared abstractions for reputation service clients.
package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/httpclient"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/platform/resilience"
)

// maxErrorRunes acota el texto de error guardado en un reporte.
const maxErrorRunes = 200

// BaseConfig contains configuration for BaseReputationSource.
type BaseConfig struct {
	ServiceName string // Visible name ("VirusTotal", "URLScan")
	APIKey      string
	Timeout     time.Duration // Per-request HTTP timeout

	// Polling
	InitialDelay time.Duration
	PollInterval time.Duration
	MaxAttempts  int
	Sleep        resilience.SleepFunc // nil = real sleep

	// HTTP retries for transient statuses
	MaxRetries   int
	RetryBackoff time.Duration

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// BaseReputationSource provides the common plumbing of a reputation client:
// API key check, HTTP client, poller and the mapping of failures into the report.
//
// Usage:
//  1. Embed BaseReputationSource in your client struct
//  2. Call NewBaseReputationSource() with your config
//  3. In Check(), start with KeyMissing() and end with Poll()
type BaseReputationSource struct {
	name   string
	apiKey string
	client *httpclient.Client
	poller resilience.Poller
	logger logx.Logger
}

// NewBaseReputationSource creates a new BaseReputationSource with the given configuration.
func NewBaseReputationSource(logger logx.Logger, cfg BaseConfig) BaseReputationSource {
	if logger == nil {
		logger = logx.Nop()
	}

	poller := resilience.NewPoller(cfg.InitialDelay, cfg.PollInterval, cfg.MaxAttempts)
	if cfg.Sleep != nil {
		poller.Sleep = cfg.Sleep
	}

	client := httpclient.New(httpclient.Config{
		Timeout:         cfg.Timeout,
		MaxRetries:      cfg.MaxRetries,
		RetryBackoff:    cfg.RetryBackoff,
		MaxRetryBackoff: 10 * time.Second,
		UserAgent:       httpclient.DefaultUserAgent,
		Transport:       cfg.Transport,
	}, logger)

	return BaseReputationSource{
		name:   cfg.ServiceName,
		apiKey: strings.TrimSpace(cfg.APIKey),
		client: client,
		poller: poller,
		logger: logger.With("source", strings.ToLower(cfg.ServiceName)),
	}
}

// Name implements ports.ReputationService.
func (b *BaseReputationSource) Name() string { return b.name }

// APIKey returns the configured key.
func (b *BaseReputationSource) APIKey() string { return b.apiKey }

// HTTP returns the shared HTTP client.
func (b *BaseReputationSource) HTTP() *httpclient.Client { return b.client }

// Logger returns the source logger.
func (b *BaseReputationSource) Logger() logx.Logger { return b.logger }

// Poller returns the poll configuration.
func (b *BaseReputationSource) Poller() resilience.Poller { return b.poller }

// NewReport crea un reporte vacío para este servicio.
func (b *BaseReputationSource) NewReport() domain.ReputationReport {
	return domain.ReputationReport{Service: b.name}
}

// KeyMissing retorna un reporte key_missing cuando no hay API key.
// En ese caso no se hace ninguna llamada de red.
func (b *BaseReputationSource) KeyMissing() (domain.ReputationReport, bool) {
	if b.apiKey != "" {
		return domain.ReputationReport{}, false
	}
	report := b.NewReport()
	report.Status = domain.ReportKeyMissing
	report.Error = fmt.Sprintf("%s %v", b.name, domain.ErrAPIKeyMissing)
	b.logger.Debug("API key missing, skipping service")
	return report, true
}

// Fail marca el reporte como failed con el texto del error.
func (b *BaseReputationSource) Fail(report domain.ReputationReport, err error) domain.ReputationReport {
	report.Status = domain.ReportFailed
	report.Error = fmt.Sprintf("%s %s", b.name, ErrorText(err))
	b.logger.Warn("reputation check failed", "error", report.Error)
	return report
}

// Poll ejecuta fn con el poller y refleja el estado terminal en el reporte.
// Retorna true solo si el resultado quedó listo.
func (b *BaseReputationSource) Poll(ctx context.Context, report *domain.ReputationReport, fn resilience.PollFunc) bool {
	res := b.poller.Run(ctx, fn)

	b.logger.Debug("poll finished",
		"state", res.State.String(),
		"attempts", res.Attempts,
	)

	switch res.State {
	case resilience.PollReady:
		report.Status = domain.ReportReady
		return true
	case resilience.PollTimedOut:
		report.Status = domain.ReportTimedOut
		report.Error = fmt.Sprintf("%s %v (%d attempts)", b.name, domain.ErrScanTimedOut, res.Attempts)
		b.logger.Warn("scan timed out", "attempts", res.Attempts)
		return false
	default:
		*report = b.Fail(*report, res.Err)
		return false
	}
}

// StatusError construye el error de un status HTTP inesperado.
func StatusError(stage string, resp *http.Response) error {
	return errors.Errorf("%w: %s failed: %d", domain.ErrReputationService, stage, resp.StatusCode)
}

// ErrorText produce un texto de una línea para guardar en el reporte.
// Quita el prefijo del sentinel de reputación, que el nombre del servicio ya aporta.
func ErrorText(err error) string {
	if err == nil {
		return "failed"
	}
	if errors.IsCanceled(err) {
		return "request cancelled"
	}
	msg := err.Error()
	msg = strings.TrimPrefix(msg, domain.ErrReputationService.Error()+": ")
	msg = strings.Join(strings.Fields(msg), " ")
	return domain.TruncateRunes(msg, maxErrorRunes)
}
