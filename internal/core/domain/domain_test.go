package domain

import (
	"testing"
	"time"

	"fraudtect/internal/testutil"
)

func TestTextVerdictFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Verdict
	}{
		{100, VerdictConfirmedScam},
		{65.00, VerdictConfirmedScam},
		{64.99, VerdictLikelyScam},
		{45.00, VerdictLikelyScam},
		{44.99, VerdictSuspicious},
		{20.00, VerdictSuspicious},
		{19.99, VerdictLegitimate},
		{0, VerdictLegitimate},
	}

	for _, tt := range tests {
		got := TextVerdictFromScore(tt.score)
		testutil.AssertEqual(t, got, tt.want, "verdict for score")
	}
}

func TestURLVerdictFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  Verdict
	}{
		{100, VerdictMalicious},
		{70, VerdictMalicious},
		{69, VerdictSuspicious},
		{40, VerdictSuspicious},
		{39, VerdictLegitimate},
		{0, VerdictLegitimate},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, URLVerdictFromScore(tt.score), tt.want, "url verdict for score")
	}
}

func TestVerdict_Severity(t *testing.T) {
	testutil.AssertEqual(t, VerdictConfirmedScam.Severity(), SeverityCritical, "confirmed is critical")
	testutil.AssertEqual(t, VerdictMalicious.Severity(), SeverityCritical, "malicious is critical")
	testutil.AssertEqual(t, VerdictLikelyScam.Severity(), SeverityHigh, "likely is high")
	testutil.AssertEqual(t, VerdictSuspicious.Severity(), SeverityLow, "suspicious is low")
	testutil.AssertEqual(t, VerdictLegitimate.Severity(), SeverityNone, "legitimate is none")
	testutil.AssertFalse(t, Verdict("nope").IsValid(), "unknown verdict invalid")
}

func TestRegistryInfo_AgeDays(t *testing.T) {
	now := testutil.FixtureNow

	testutil.AssertTrue(t, RegistryInfo{}.AgeDays(now) == nil, "no creation date gives nil age")

	created := now.Add(-(10*24*time.Hour + 23*time.Hour))
	age := RegistryInfo{CreationDate: &created}.AgeDays(now)
	testutil.AssertNotNil(t, age, "age known")
	testutil.AssertEqual(t, *age, 10, "age is floored")

	future := now.Add(48 * time.Hour)
	age = RegistryInfo{CreationDate: &future}.AgeDays(now)
	testutil.AssertEqual(t, *age, 0, "future creation clamps to zero")
}

func TestTruncateRunes(t *testing.T) {
	testutil.AssertEqual(t, TruncateRunes("héllo", 2), "hé", "multibyte kept whole")
	testutil.AssertEqual(t, TruncateRunes("abc", 10), "abc", "short string unchanged")
	testutil.AssertEqual(t, TruncateRunes("abc", 0), "", "zero limit")
}

func TestValidFeedbackType(t *testing.T) {
	testutil.AssertTrue(t, ValidFeedbackType(FeedbackFalsePositive), "false_positive accepted")
	testutil.AssertFalse(t, ValidFeedbackType("meh"), "unknown rejected")
}
