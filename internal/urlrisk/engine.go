// Package urlrisk implements the additive URL risk model: DNS, TLD, length and
// registry age heuristics, plus optional reputation services on deep scans.
package urlrisk

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/lexicon"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/platform/metrics"
	"fraudtect/internal/platform/validator"
)

// Score contributions.
const (
	DNSFailureScore     = 40
	SuspiciousTLDScore  = 25
	LongDomainScore     = 10
	VeryNewDomainScore  = 35
	RecentDomainScore   = 15
	ReputationPerEngine = 5
	ReputationMaxScore  = 50

	LongDomainLength = 30
	VeryNewDomainAge = 30
	RecentDomainAge  = 90
)

// Truncation of failure details, in runes.
const (
	dnsDetailLimit      = 80
	registryDetailLimit = 120
)

// SuspiciousTLDs se evalúan en orden; basta con una coincidencia.
var SuspiciousTLDs = []string{".vip", ".xyz", ".top", ".club", ".online"}

// Reason and explanation texts.
const (
	ReasonDNSFailure    = "Domain failed DNS resolution"
	ReasonSuspiciousTLD = "Suspicious TLD commonly abused in scams"
	ReasonLongDomain    = "Unusually long domain"

	dnsOK             = "Domain resolves correctly"
	noRedFlags        = "No major red flags detected."
	riskFactorsHeader = "Risk factors detected:"
	newDomainAdvisory = "Newly registered domains are frequently used in phishing attacks."
)

// Engine evalúa URLs. Es seguro para uso concurrente: no guarda estado entre llamadas.
type Engine struct {
	resolver   ports.Resolver
	registry   ports.RegistryLookup
	reputation []ports.ReputationService
	urlTerms   *lexicon.Matcher
	now        func() time.Time
	logger     logx.Logger
	metrics    *metrics.Metrics
}

// Option configura un Engine.
type Option func(*Engine)

// WithReputation añade servicios de reputación, consultados en orden en deep scan.
func WithReputation(services ...ports.ReputationService) Option {
	return func(e *Engine) {
		e.reputation = append(e.reputation, services...)
	}
}

// WithClock reemplaza el reloj usado para calcular la edad del dominio.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logx.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics counts failed external signals.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New crea un Engine. resolver y registry son obligatorios.
func New(resolver ports.Resolver, registry ports.RegistryLookup, opts ...Option) *Engine {
	e := &Engine{
		resolver: resolver,
		registry: registry,
		urlTerms: lexicon.NewURLMatcher(),
		now:      time.Now,
		logger:   logx.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "urlrisk")
	return e
}

// Services retorna los nombres de los servicios de reputación configurados.
func (e *Engine) Services() []string {
	names := make([]string, 0, len(e.reputation))
	for _, s := range e.reputation {
		names = append(names, s.Name())
	}
	return names
}

// Analyze evalúa raw y nunca falla: cada señal que falla queda como razón
// o dentro del reporte de su servicio.
func (e *Engine) Analyze(ctx context.Context, raw string, deepScan bool) *domain.URLAnalysis {
	normalized := NormalizeURL(raw)
	host := ExtractHost(normalized)

	res := &domain.URLAnalysis{
		ID:       uuid.NewString(),
		URL:      normalized,
		Domain:   host,
		Reasons:  []string{},
		URLTerms: e.urlTerms.Match(normalized),
	}

	e.logger.Debug("analyzing url", "host", host, "deep_scan", deepScan)

	score := 0

	// DNS
	if err := e.resolve(ctx, host); err != nil {
		res.DNSStatus = failureText(domain.ErrDNSResolution, err, dnsDetailLimit)
		score += DNSFailureScore
		res.Reasons = append(res.Reasons, ReasonDNSFailure)
		e.metrics.ExternalFailure("dns")
	} else {
		res.DNSResolves = true
		res.DNSStatus = dnsOK
	}

	// TLD
	for _, tld := range SuspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			score += SuspiciousTLDScore
			res.Reasons = append(res.Reasons, ReasonSuspiciousTLD)
			break
		}
	}

	// Longitud
	if len(host) > LongDomainLength {
		score += LongDomainScore
		res.Reasons = append(res.Reasons, ReasonLongDomain)
	}

	// Registro (RDAP)
	info, err := e.lookup(ctx, host)
	if err != nil {
		reason := registryReason(err)
		res.Registry = domain.RegistryInfo{Error: reason}
		res.Reasons = append(res.Reasons, reason)
		e.metrics.ExternalFailure("rdap")
		e.logger.Debug("registry lookup failed", "host", host, "error", err.Error())
	} else {
		res.Registry = info
		res.AgeDays = info.AgeDays(e.now())
	}
	if age := res.AgeDays; age != nil {
		switch {
		case *age < VeryNewDomainAge:
			score += VeryNewDomainScore
			res.Reasons = append(res.Reasons, fmt.Sprintf("Very new domain (%d days old)", *age))
		case *age < RecentDomainAge:
			score += RecentDomainScore
			res.Reasons = append(res.Reasons, fmt.Sprintf("Recently registered domain (%d days old)", *age))
		}
	}

	// Deep scan
	if deepScan && len(e.reputation) > 0 {
		reports, flagged, total := e.deepScan(ctx, normalized)
		res.Reputation = reports
		if total > 0 {
			score += min(ReputationMaxScore, total*ReputationPerEngine)
			for _, name := range flagged {
				res.Reasons = append(res.Reasons, fmt.Sprintf("Flagged by %s engines", name))
			}
		}
	}

	res.RiskScore = clamp(score, 0, 100)
	res.Verdict = domain.URLVerdictFromScore(res.RiskScore)
	res.Explanation = Explain(res.Reasons, res.RiskScore, res.AgeDays)

	e.logger.Info("url analysis completed",
		"host", host,
		"risk_score", res.RiskScore,
		"verdict", res.Verdict.String(),
		"reasons", len(res.Reasons),
	)
	return res
}

func (e *Engine) resolve(ctx context.Context, host string) (err error) {
	if host == "" {
		return errors.Errorf("%w: empty host", domain.ErrDNSResolution)
	}
	defer recoverSignal("resolver", &err)
	return e.resolver.Resolve(ctx, host)
}

func (e *Engine) lookup(ctx context.Context, host string) (info domain.RegistryInfo, err error) {
	switch {
	case host == "":
		return domain.RegistryInfo{}, errors.Errorf("%w: empty domain", domain.ErrRegistryLookup)
	case validator.IsIP(host):
		return domain.RegistryInfo{}, errors.Errorf("%w: IP hosts have no domain registration", domain.ErrRegistryLookup)
	}
	defer recoverSignal("registry lookup", &err)
	return e.registry.Lookup(ctx, RegistrableDomain(host))
}

// recoverSignal convierte un panic de un colaborador en error, para que el
// resto de señales del análisis se conserven.
func recoverSignal(source string, err *error) {
	if r := recover(); r != nil {
		*err = errors.Errorf("%s panicked: %v", source, r)
	}
}

// deepScan consulta cada servicio en orden. Solo los reportes ready suman.
func (e *Engine) deepScan(ctx context.Context, target string) (map[string]domain.ReputationReport, []string, int) {
	reports := make(map[string]domain.ReputationReport, len(e.reputation))
	var flagged []string
	total := 0

	for _, svc := range e.reputation {
		report := e.check(ctx, svc, target)
		if report.Service == "" {
			report.Service = svc.Name()
		}
		reports[strings.ToLower(svc.Name())] = report

		switch {
		case report.Ready():
			if report.Malicious > 0 {
				total += report.Malicious
				flagged = append(flagged, svc.Name())
			}
		case report.Status == domain.ReportFailed, report.Status == domain.ReportTimedOut:
			e.metrics.ExternalFailure(strings.ToLower(svc.Name()))
			e.logger.Warn("reputation service failed",
				"service", svc.Name(),
				"status", report.Status.String(),
				"error", report.Error,
			)
		}
	}
	return reports, flagged, total
}

// check aísla el panic de un servicio en un reporte failed propio.
func (e *Engine) check(ctx context.Context, svc ports.ReputationService, target string) (report domain.ReputationReport) {
	defer func() {
		if r := recover(); r != nil {
			report = domain.ReputationReport{
				Service: svc.Name(),
				Status:  domain.ReportFailed,
				Error:   fmt.Sprintf("%s check panicked: %v", svc.Name(), r),
			}
		}
	}()
	return svc.Check(ctx, target)
}

// Explain arma la explicación en líneas separadas por "\n".
func Explain(reasons []string, score int, ageDays *int) string {
	lines := make([]string, 0, len(reasons)+3)
	if len(reasons) > 0 {
		lines = append(lines, riskFactorsHeader)
		for _, r := range reasons {
			lines = append(lines, "• "+r)
		}
	} else {
		lines = append(lines, noRedFlags)
	}
	if ageDays != nil && *ageDays < VeryNewDomainAge {
		lines = append(lines, newDomainAdvisory)
	}
	lines = append(lines, fmt.Sprintf("Final risk score: %d/100", score))
	return strings.Join(lines, "\n")
}

// registryReason convierte un fallo de registro en el texto de la razón.
func registryReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCreationDate):
		return domain.ErrMissingCreationDate.Error()
	case errors.Is(err, domain.ErrUnsupportedRegistryFormat):
		return domain.ErrUnsupportedRegistryFormat.Error()
	default:
		return failureText(domain.ErrRegistryLookup, err, registryDetailLimit)
	}
}

// failureText produce "<sentinel>: <detalle truncado>", sin repetir el prefijo
// cuando err ya envuelve al sentinel.
func failureText(sentinel, err error, limit int) string {
	detail := err.Error()
	prefix := sentinel.Error()
	if strings.HasPrefix(detail, prefix) {
		detail = strings.TrimPrefix(strings.TrimPrefix(detail, prefix), ": ")
	}
	if detail == "" {
		return prefix
	}
	return prefix + ": " + domain.TruncateRunes(detail, limit)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
