package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudtect/internal/core/domain"
)

func TestFuse(t *testing.T) {
	tests := []struct {
		name    string
		lexical int
		ml      float64
		want    float64
	}{
		{"nothing", 0, 0, 0},
		{"ml only", 0, 80, 48},
		{"keywords only", 10, 0, 20},
		{"mixed", 7, 26.89, 30.13},
		{"clamped high", 36, 93.57, 100},
		{"model unavailable", 3, 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fuse(tt.lexical, tt.ml))
		})
	}
}

func TestFuse_BoundedAndMonotone(t *testing.T) {
	prev := -1.0
	for lex := 0; lex <= 200; lex += 5 {
		got := Fuse(lex, 50)
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 100.0)
		assert.GreaterOrEqual(t, got, prev, "non-decreasing in keyword score")
		prev = got
	}

	prev = -1.0
	for ml := 0.0; ml <= 100; ml += 2.5 {
		got := Fuse(4, ml)
		assert.GreaterOrEqual(t, got, prev, "non-decreasing in probability")
		prev = got
	}
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 100.0, Confidence(0))
	assert.Equal(t, 0.0, Confidence(50))
	assert.Equal(t, 100.0, Confidence(100))
	assert.Equal(t, 87.14, Confidence(93.57))
	assert.Equal(t, 46.22, Confidence(26.89))
}

func TestVerdictBoundaries(t *testing.T) {
	assert.Equal(t, domain.VerdictConfirmedScam, Verdict(65.00))
	assert.Equal(t, domain.VerdictLikelyScam, Verdict(64.99))
	assert.Equal(t, domain.VerdictLikelyScam, Verdict(45.00))
	assert.Equal(t, domain.VerdictSuspicious, Verdict(20.00))
	assert.Equal(t, domain.VerdictLegitimate, Verdict(19.99))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.68, Round2(2.675))
	assert.Equal(t, -2.68, Round2(-2.675))
	assert.Equal(t, 1.0, Round2(0.999))
}

func TestExplain(t *testing.T) {
	t.Run("with indicators", func(t *testing.T) {
		got := Explain(ExplainInput{
			Terms:        []string{"urgent", "otp"},
			KeywordScore: 10,
			Label:        "Scam",
			Probability:  93.57,
			Confidence:   87.14,
			Category:     "Phishing / Account Takeover",
			RiskScore:    76.14,
		})
		want := strings.Join([]string{
			"- Scam indicators detected: urgent, otp.",
			"- Keyword engine contributed a risk score of 10.",
			"- AI model prediction: Scam (Probability: 93.57%).",
			"- Model confidence level: 87.14%.",
			"- Identified scam category: Phishing / Account Takeover.",
			"- Final hybrid risk score: 76.14% (combined ML probability and keyword signals).",
		}, "\n")
		assert.Equal(t, want, got)
	})

	t.Run("no indicators still reports keyword score", func(t *testing.T) {
		got := Explain(ExplainInput{
			Label:    domain.LabelModelUnavailable,
			Category: "Uncategorized",
		})
		lines := strings.Split(got, "\n")
		require.Len(t, lines, 6)
		assert.Equal(t, "- No explicit scam-related keywords were detected.", lines[0])
		assert.Equal(t, "- Keyword engine contributed a risk score of 0.", lines[1])
		assert.Equal(t, "- AI model prediction: Model Unavailable (Probability: 0.00%).", lines[2])
		assert.Equal(t, "- Final hybrid risk score: 0% (combined ML probability and keyword signals).", lines[5])
	})

	t.Run("pure", func(t *testing.T) {
		in := ExplainInput{Terms: []string{"scam"}, KeywordScore: 6, Label: "Legit", Category: "Uncategorized", RiskScore: 100}
		assert.Equal(t, Explain(in), Explain(in))
		assert.Contains(t, Explain(in), "Final hybrid risk score: 100%")
	})
}

func TestVerdictUsesUnroundedScore(t *testing.T) {
	raw := FuseRaw(20, 41.66)
	assert.Less(t, raw, 65.0)
	assert.Equal(t, 65.0, Fuse(20, 41.66), "displayed value rounds up")
	assert.Equal(t, domain.VerdictLikelyScam, Verdict(raw))
}
