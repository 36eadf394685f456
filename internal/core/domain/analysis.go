// internal/core/domain/analysis.go
package domain

import "time"

// Input truncation limits.
const (
	MaxResultInputRunes  = 500
	MaxHistoryInputRunes = 200
)

// TextAnalysis es el resultado inmutable de analizar un texto.
type TextAnalysis struct {
	ID              string   `json:"id"`
	InputText       string   `json:"input_text"`
	MatchedKeywords []string `json:"matched_keywords"`
	KeywordScore    int      `json:"keyword_score"`
	MLPrediction    string   `json:"ml_prediction"`
	MLProbability   float64  `json:"ml_probability"`
	ConfidenceScore float64  `json:"confidence_score"`
	ScamCategory    string   `json:"scam_category"`
	RiskScore       float64  `json:"risk_score"`
	Verdict         Verdict  `json:"verdict"`
	Explanation     string   `json:"ai_explanation"`
}

// URLAnalysis es el resultado de analizar una URL. Nunca representa un fallo:
// las señales que fallan quedan como razones o dentro de su reporte.
type URLAnalysis struct {
	ID          string                      `json:"id"`
	URL         string                      `json:"url"`
	Domain      string                      `json:"domain"`
	DNSResolves bool                        `json:"dns_resolves"`
	DNSStatus   string                      `json:"dns_status"`
	AgeDays     *int                        `json:"domain_age_days"`
	Registry    RegistryInfo                `json:"whois_data"`
	Reasons     []string                    `json:"reasons"`
	RiskScore   int                         `json:"risk_score"`
	Verdict     Verdict                     `json:"verdict"`
	Explanation string                      `json:"explanation"`
	Reputation  map[string]ReputationReport `json:"osint,omitempty"`
	URLTerms    []string                    `json:"url_terms,omitempty"`
}

// RegistryInfo resume el registro de un dominio. Error se rellena cuando la
// consulta falla y el resto de campos queda vacío.
type RegistryInfo struct {
	CreationDate   *time.Time `json:"creation_date,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Registrar      string     `json:"registrar,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// AgeDays returns whole days elapsed since creation, floored, or nil when unknown.
func (r RegistryInfo) AgeDays(now time.Time) *int {
	if r.CreationDate == nil {
		return nil
	}
	days := int(now.Sub(*r.CreationDate).Hours() / 24)
	if now.Before(*r.CreationDate) {
		days = 0
	}
	return &days
}

// ReputationReport es la respuesta estructurada de un servicio de reputación.
type ReputationReport struct {
	Service   string         `json:"service"`
	Status    ReportStatus   `json:"status"`
	Malicious int            `json:"malicious"`
	Stats     map[string]int `json:"stats,omitempty"`
	Link      string         `json:"link,omitempty"`
	ScanID    string         `json:"scan_id,omitempty"`
	Error     string         `json:"error,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// Ready reports whether the service produced a usable verdict.
func (r ReputationReport) Ready() bool {
	return r.Status == ReportReady
}

// Feedback es la corrección de un operador sobre un análisis registrado.
type Feedback struct {
	Type      string    `json:"type"`
	Comments  string    `json:"comments,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Feedback types accepted from operators.
const (
	FeedbackCorrect       = "correct"
	FeedbackFalsePositive = "false_positive"
	FeedbackFalseNegative = "false_negative"
)

// ValidFeedbackType verifica si el tipo de feedback es aceptado.
func ValidFeedbackType(t string) bool {
	switch t {
	case FeedbackCorrect, FeedbackFalsePositive, FeedbackFalseNegative:
		return true
	default:
		return false
	}
}

// HistoryRecord es la fila plana que se persiste tras cada análisis.
type HistoryRecord struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Type      AnalysisType `json:"type"`
	Input     string       `json:"input"`
	RiskScore float64      `json:"risk_score"`
	Verdict   Verdict      `json:"verdict"`
	Feedback  *Feedback    `json:"user_feedback,omitempty"`
}

// TruncateRunes corta s a n runas sin partir caracteres multibyte.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
