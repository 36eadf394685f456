// internal/core/domain/enums.go
package domain

// Verdict es el tier de riesgo final de un análisis.
type Verdict string

const (
	// Tiers de texto
	VerdictConfirmedScam Verdict = "Confirmed Scam"
	VerdictLikelyScam    Verdict = "Likely Scam"

	// Compartidos por texto y URL
	VerdictSuspicious Verdict = "Suspicious"
	VerdictLegitimate Verdict = "Legitimate"

	// Tier de URL
	VerdictMalicious Verdict = "Malicious"
)

// Severity orders verdicts for rendering: 0 is benign, 3 is the worst tier.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityHigh
	SeverityCritical
)

// String retorna la representación string del veredicto.
func (v Verdict) String() string {
	return string(v)
}

// Severity retorna la severidad asociada al veredicto.
func (v Verdict) Severity() Severity {
	switch v {
	case VerdictConfirmedScam, VerdictMalicious:
		return SeverityCritical
	case VerdictLikelyScam:
		return SeverityHigh
	case VerdictSuspicious:
		return SeverityLow
	default:
		return SeverityNone
	}
}

// IsValid verifica si el veredicto es conocido.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictConfirmedScam, VerdictLikelyScam, VerdictSuspicious, VerdictLegitimate, VerdictMalicious:
		return true
	default:
		return false
	}
}

// Text tier lower bounds, inclusive.
const (
	TextConfirmedThreshold  = 65.0
	TextLikelyThreshold     = 45.0
	TextSuspiciousThreshold = 20.0
)

// URL tier lower bounds, inclusive.
const (
	URLMaliciousThreshold  = 70
	URLSuspiciousThreshold = 40
)

// TextVerdictFromScore mapea un score fusionado (0-100) a su tier.
func TextVerdictFromScore(score float64) Verdict {
	switch {
	case score >= TextConfirmedThreshold:
		return VerdictConfirmedScam
	case score >= TextLikelyThreshold:
		return VerdictLikelyScam
	case score >= TextSuspiciousThreshold:
		return VerdictSuspicious
	default:
		return VerdictLegitimate
	}
}

// URLVerdictFromScore mapea el score entero de una URL a su tier.
func URLVerdictFromScore(score int) Verdict {
	switch {
	case score >= URLMaliciousThreshold:
		return VerdictMalicious
	case score >= URLSuspiciousThreshold:
		return VerdictSuspicious
	default:
		return VerdictLegitimate
	}
}

// AnalysisType identifica qué tipo de entrada produjo un registro de historial.
type AnalysisType string

const (
	AnalysisText  AnalysisType = "text"
	AnalysisURL   AnalysisType = "url"
	AnalysisImage AnalysisType = "image"
)

// IsValid verifica si el tipo de análisis es válido.
func (a AnalysisType) IsValid() bool {
	switch a {
	case AnalysisText, AnalysisURL, AnalysisImage:
		return true
	default:
		return false
	}
}

// String retorna la representación string del tipo.
func (a AnalysisType) String() string {
	return string(a)
}

// ReportStatus es el estado terminal de una consulta de reputación.
type ReportStatus string

const (
	ReportReady      ReportStatus = "ready"
	ReportTimedOut   ReportStatus = "timed_out"
	ReportFailed     ReportStatus = "failed"
	ReportKeyMissing ReportStatus = "key_missing"
)

// String retorna la representación string del estado.
func (s ReportStatus) String() string {
	return string(s)
}

// Classifier sentinel labels.
const (
	LabelScam             = "Scam"
	LabelLegit            = "Legit"
	LabelModelUnavailable = "Model Unavailable"
	LabelPredictionError  = "Prediction Error"
)
