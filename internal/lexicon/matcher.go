package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// apostrophes pliega comillas tipográficas a la recta para que
// "don’t miss" y "don't miss" coincidan igual.
var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Normalize aplica NFKC, case folding y pliegue de apóstrofos.
// Un cases.Caser no es seguro entre goroutines, así que se crea por llamada.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return apostrophes.Replace(s)
}

type compiledTerm struct {
	phrase     string
	normalized string
}

// Matcher encuentra los términos de una tabla presentes en un texto.
// Es inmutable tras construirse y se puede compartir.
type Matcher struct {
	table    *Table
	compiled []compiledTerm
}

// NewMatcher normaliza cada frase una sola vez.
func NewMatcher(table *Table) *Matcher {
	m := &Matcher{table: table, compiled: make([]compiledTerm, 0, table.Len())}
	for _, term := range table.terms {
		m.compiled = append(m.compiled, compiledTerm{
			phrase:     term.Phrase,
			normalized: Normalize(term.Phrase),
		})
	}
	return m
}

// NewTextMatcher retorna un matcher sobre TextTerms.
func NewTextMatcher() *Matcher { return NewMatcher(TextTerms) }

// NewURLMatcher retorna un matcher sobre URLTerms.
func NewURLMatcher() *Matcher { return NewMatcher(URLTerms) }

// Match retorna los términos distintos presentes en text, en orden de tabla.
func (m *Matcher) Match(text string) []string {
	matched := []string{}
	if text == "" {
		return matched
	}
	normalized := Normalize(text)
	for _, ct := range m.compiled {
		if containsWord(normalized, ct.normalized) {
			matched = append(matched, ct.phrase)
		}
	}
	return matched
}

// containsWord reporta si phrase aparece en text con límite de palabra a
// ambos lados. Equivale a \b<frase>\b pero con letras y dígitos Unicode
// como caracteres de palabra ("réclaim" no contiene "claim").
func containsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)

	for from := 0; from <= len(text)-len(phrase); {
		i := strings.Index(text[from:], phrase)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(phrase)

		before, after := rune(-1), rune(-1)
		if start > 0 {
			before, _ = utf8.DecodeLastRuneInString(text[:start])
		}
		if end < len(text) {
			after, _ = utf8.DecodeRuneInString(text[end:])
		}
		if isWordRune(before) != isWordRune(first) && isWordRune(after) != isWordRune(last) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return false
}

func isWordRune(r rune) bool {
	if r < 0 {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// Score suma los pesos de los términos distintos. Los duplicados cuentan
// una vez y los términos ajenos a la tabla aportan 0.
func (m *Matcher) Score(terms []string) int {
	seen := make(map[string]struct{}, len(terms))
	total := 0
	for _, term := range terms {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		if w, ok := m.table.Weight(term); ok {
			total += w
		}
	}
	return total
}

// Table retorna la tabla del matcher.
func (m *Matcher) Table() *Table {
	return m.table
}
