// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/ui"
)

// verdictStyle colorea el veredicto según su severidad.
func verdictStyle(v domain.Verdict) pterm.RGBStyle {
	switch v.Severity() {
	case domain.SeverityCritical:
		return ui.StyleCritical
	case domain.SeverityHigh:
		return ui.StyleError
	case domain.SeverityLow:
		return ui.StyleWarning
	default:
		return ui.StyleSuccess
	}
}

// reportStatus traduce el estado de un reporte de reputación al de la UI.
func reportStatus(r domain.ReputationReport) ui.Status {
	switch r.Status {
	case domain.ReportReady:
		if r.Malicious > 0 {
			return ui.StatusError
		}
		return ui.StatusSuccess
	case domain.ReportTimedOut:
		return ui.StatusWarning
	case domain.ReportKeyMissing:
		return ui.StatusSkipped
	default:
		return ui.StatusError
	}
}

// TextTable imprime el análisis de un texto.
func TextTable(w io.Writer, res *domain.TextAnalysis) error {
	keywords := "none"
	if len(res.MatchedKeywords) > 0 {
		keywords = strings.Join(res.MatchedKeywords, ", ")
	}

	data := pterm.TableData{
		{"Field", "Value"},
		{"Risk Score", fmt.Sprintf("%.2f/100", res.RiskScore)},
		{"Verdict", verdictStyle(res.Verdict).Sprint(res.Verdict.String())},
		{"Category", res.ScamCategory},
		{"ML Prediction", fmt.Sprintf("%s (%.2f%%)", res.MLPrediction, res.MLProbability)},
		{"Confidence", fmt.Sprintf("%.2f%%", res.ConfidenceScore)},
		{"Keyword Score", fmt.Sprintf("%d", res.KeywordScore)},
		{"Matched Keywords", keywords},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s Text Analysis %s\n", ui.IconShield, ui.StyleSecondary.Sprint(res.ID))
	if err := renderTable(&b, data); err != nil {
		return err
	}
	writeExplanation(&b, res.Explanation)

	_, err := io.WriteString(w, b.String())
	return err
}

// URLTable imprime el análisis de una URL, con los reportes de reputación si los hay.
func URLTable(w io.Writer, res *domain.URLAnalysis) error {
	dnsStatus := ui.StatusSuccess
	if !res.DNSResolves {
		dnsStatus = ui.StatusError
	}

	age := "unknown"
	if res.AgeDays != nil {
		age = fmt.Sprintf("%d days", *res.AgeDays)
	}

	registrar := res.Registry.Registrar
	if res.Registry.Error != "" {
		registrar = ui.StatusWarning.Label(res.Registry.Error)
	}
	if registrar == "" {
		registrar = "-"
	}

	data := pterm.TableData{
		{"Field", "Value"},
		{"URL", res.URL},
		{"Domain", res.Domain},
		{"DNS", dnsStatus.Label(res.DNSStatus)},
		{"Domain Age", age},
		{"Registrar", registrar},
		{"Risk Score", fmt.Sprintf("%d/100", res.RiskScore)},
		{"Verdict", verdictStyle(res.Verdict).Sprint(res.Verdict.String())},
	}
	if len(res.URLTerms) > 0 {
		data = append(data, []string{"URL Terms", strings.Join(res.URLTerms, ", ")})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s URL Analysis %s\n", ui.IconTarget, ui.StyleSecondary.Sprint(res.ID))
	if err := renderTable(&b, data); err != nil {
		return err
	}

	if len(res.Reputation) > 0 {
		fmt.Fprintf(&b, "\n%s Reputation\n", ui.IconStats)
		if err := renderTable(&b, reputationRows(res.Reputation)); err != nil {
			return err
		}
	}

	writeExplanation(&b, res.Explanation)

	_, err := io.WriteString(w, b.String())
	return err
}

func reputationRows(reports map[string]domain.ReputationReport) pterm.TableData {
	keys := make([]string, 0, len(reports))
	for k := range reports {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := pterm.TableData{{"Service", "Status", "Malicious", "Details"}}
	for _, k := range keys {
		r := reports[k]
		name := r.Service
		if name == "" {
			name = k
		}
		details := r.Link
		if r.Error != "" {
			details = r.Error
		}
		data = append(data, []string{
			name,
			reportStatus(r).Label(r.Status.String()),
			fmt.Sprintf("%d", r.Malicious),
			details,
		})
	}
	return data
}

// HistoryTable imprime los registros del historial, el más reciente primero.
func HistoryTable(w io.Writer, records []domain.HistoryRecord) error {
	if len(records) == 0 {
		_, err := io.WriteString(w, "No analyses recorded.\n")
		return err
	}

	data := pterm.TableData{{"ID", "Time", "Type", "Score", "Verdict", "Input", "Feedback"}}
	for _, rec := range records {
		feedback := "-"
		if rec.Feedback != nil {
			feedback = rec.Feedback.Type
		}
		data = append(data, []string{
			rec.ID,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Type.String(),
			fmt.Sprintf("%.2f", rec.RiskScore),
			verdictStyle(rec.Verdict).Sprint(rec.Verdict.String()),
			domain.TruncateRunes(oneLine(rec.Input), 40),
			feedback,
		})
	}

	var b strings.Builder
	if err := renderTable(&b, data); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderTable(b *strings.Builder, data pterm.TableData) error {
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(data).
		Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	b.WriteString(out)
	b.WriteString("\n")
	return nil
}

func writeExplanation(b *strings.Builder, explanation string) {
	if explanation == "" {
		return
	}
	fmt.Fprintf(b, "\n%s Explanation\n", ui.IconInfo)
	for _, line := range strings.Split(explanation, "\n") {
		fmt.Fprintf(b, "  %s\n", line)
	}
	b.WriteString("\n")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
