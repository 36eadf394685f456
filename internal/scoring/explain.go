package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// ExplainInput reúne los valores ya calculados de un análisis de texto.
type ExplainInput struct {
	Terms        []string
	KeywordScore int
	Label        string
	Probability  float64
	Confidence   float64
	Category     string
	RiskScore    float64
}

// Explain escribe una línea por sección, siempre en el mismo orden.
func Explain(in ExplainInput) string {
	lines := make([]string, 0, 6)

	if len(in.Terms) > 0 {
		lines = append(lines, fmt.Sprintf("- Scam indicators detected: %s.", strings.Join(in.Terms, ", ")))
	} else {
		lines = append(lines, "- No explicit scam-related keywords were detected.")
	}
	lines = append(lines,
		fmt.Sprintf("- Keyword engine contributed a risk score of %d.", in.KeywordScore),
		fmt.Sprintf("- AI model prediction: %s (Probability: %.2f%%).", in.Label, in.Probability),
		fmt.Sprintf("- Model confidence level: %.2f%%.", in.Confidence),
		fmt.Sprintf("- Identified scam category: %s.", in.Category),
		fmt.Sprintf("- Final hybrid risk score: %s%% (combined ML probability and keyword signals).", formatScore(in.RiskScore)),
	)

	return strings.Join(lines, "\n")
}

// formatScore imprime el score sin ceros de relleno: 56.1, 100, 0.
func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
