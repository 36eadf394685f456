package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudtect/internal/testutil"
)

func TestMatcher_Match(t *testing.T) {
	m := NewTextMatcher()

	t.Run("phishing message in table order", func(t *testing.T) {
		got := m.Match(testutil.FixtureScamTexts[0])
		assert.Equal(t, []string{
			"bank account", "urgent", "verify", "verify your account", "account", "otp", "click here",
		}, got)
		assert.Equal(t, 36, m.Score(got))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"lottery", "prize"}, m.Match("You WON the LoTTeRy PRIZE"))
	})

	t.Run("whole words only", func(t *testing.T) {
		assert.Empty(t, m.Match("earnings from the scammers were upidated"))
		assert.Equal(t, []string{"earn"}, m.Match("earn"))
	})

	t.Run("accented neighbours are word characters", func(t *testing.T) {
		assert.Empty(t, m.Match("réclaim your parcel"))
		assert.Empty(t, m.Match("fraudé"))
		assert.Empty(t, m.Match("überurgent"))
		assert.Equal(t, []string{"urgent"}, m.Match("¡urgent!"))
	})

	t.Run("curly and straight apostrophes", func(t *testing.T) {
		assert.Equal(t, []string{"don’t miss"}, m.Match("Don’t miss this!"))
		assert.Equal(t, []string{"don’t miss"}, m.Match("don't miss this"))
	})

	t.Run("legit and empty text", func(t *testing.T) {
		for _, text := range testutil.FixtureLegitTexts {
			got := m.Match(text)
			assert.Empty(t, got, text)
			assert.Equal(t, 0, m.Score(got))
		}
	})

	t.Run("distinct results", func(t *testing.T) {
		assert.Equal(t, []string{"scam"}, m.Match("scam scam SCAM"))
	})
}

func TestMatcher_Score(t *testing.T) {
	m := NewTextMatcher()

	assert.Equal(t, 6, m.Score([]string{"otp", "otp", "not-a-term"}), "duplicates once, unknown zero")
	assert.Equal(t, 0, m.Score(nil))

	a := m.Score([]string{"bitcoin", "urgent", "seed phrase"})
	b := m.Score([]string{"seed phrase", "bitcoin", "urgent"})
	assert.Equal(t, a, b, "order independent")
	assert.Equal(t, 17, a)
}

func TestCategorize(t *testing.T) {
	t.Run("largest overlap wins", func(t *testing.T) {
		assert.Equal(t, "Phishing / Account Takeover",
			CategorizeDefault([]string{"bank account", "urgent", "verify", "otp", "click here"}))
	})

	t.Run("tie goes to first declared", func(t *testing.T) {
		assert.Equal(t, "Financial Scam", CategorizeDefault([]string{"investment", "crypto"}))
		assert.Equal(t, "Financial Scam", CategorizeDefault([]string{"crypto", "investment"}))
	})

	t.Run("no overlap", func(t *testing.T) {
		assert.Equal(t, Uncategorized, CategorizeDefault(nil))
		assert.Equal(t, Uncategorized, CategorizeDefault([]string{"scam", "fake"}))
	})

	t.Run("custom categories", func(t *testing.T) {
		cats := []Category{
			{Label: "B", Terms: []string{"x", "x"}},
			{Label: "A", Terms: []string{"x", "y"}},
		}
		assert.Equal(t, "A", Categorize([]string{"x", "y"}, cats))
		assert.Equal(t, "B", Categorize([]string{"x"}, cats), "duplicate category terms count once")
	})
}

func TestTables(t *testing.T) {
	for _, term := range TextTerms.Terms() {
		assert.GreaterOrEqual(t, term.Weight, 1, term.Phrase)
		assert.LessOrEqual(t, term.Weight, 7, term.Phrase)
	}

	for _, cat := range Categories() {
		for _, term := range cat.Terms {
			_, ok := TextTerms.Weight(term)
			assert.True(t, ok, "category term %q must be in the text table", term)
		}
	}

	w, ok := URLTerms.Weight(".xyz")
	assert.True(t, ok)
	assert.Equal(t, 9, w)

	_, err := NewTable(Term{"a", 1}, Term{"a", 2})
	require.Error(t, err)
	_, err = NewTable(Term{"b", 0})
	require.Error(t, err)
	_, err = NewTable(Term{" ", 1})
	require.Error(t, err)
}

func TestURLMatcher(t *testing.T) {
	m := NewURLMatcher()
	assert.Equal(t, []string{"login", "verify", "wallet", ".xyz"},
		m.Match("http://login-verify.wallet.xyz/"))
}

func TestCategories_ReturnsCopy(t *testing.T) {
	cats := Categories()
	cats[0].Terms[0] = "mutated"
	assert.Equal(t, "investment", Categories()[0].Terms[0])
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text, phrase string
		want         bool
	}{
		{"claim your prize", "claim", true},
		{"réclaim", "claim", false},
		{"claimé", "claim", false},
		{"reclaim then claim", "claim", true},
		{"free-prize.xyz", ".xyz", true},
		{"free-prize.xyzw", ".xyz", false},
		{"hello", "", false},
		{"", "claim", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsWord(tt.text, tt.phrase), tt.text+" / "+tt.phrase)
	}
}
