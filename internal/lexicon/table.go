// Package lexicon holds the curated scam term tables and the whole-word
// matcher that scores text against them.
package lexicon

import (
	"fmt"
	"strings"
)

// Term es una frase normalizada con su peso estático.
type Term struct {
	Phrase string
	Weight int
}

// Table es una tabla inmutable de términos en orden de declaración.
type Table struct {
	terms []Term
	index map[string]int
}

// NewTable valida y construye una tabla. Las frases se guardan tal cual;
// se rechazan vacías, duplicadas o con peso no positivo.
func NewTable(terms ...Term) (*Table, error) {
	t := &Table{
		terms: make([]Term, 0, len(terms)),
		index: make(map[string]int, len(terms)),
	}
	for _, term := range terms {
		if strings.TrimSpace(term.Phrase) == "" {
			return nil, fmt.Errorf("lexicon: empty phrase")
		}
		if term.Weight <= 0 {
			return nil, fmt.Errorf("lexicon: term %q has non-positive weight %d", term.Phrase, term.Weight)
		}
		if _, dup := t.index[term.Phrase]; dup {
			return nil, fmt.Errorf("lexicon: duplicate term %q", term.Phrase)
		}
		t.index[term.Phrase] = len(t.terms)
		t.terms = append(t.terms, term)
	}
	return t, nil
}

// MustTable es NewTable para tablas declaradas en el paquete.
func MustTable(terms ...Term) *Table {
	t, err := NewTable(terms...)
	if err != nil {
		panic(err)
	}
	return t
}

// Weight retorna el peso de una frase, o (0, false) si no está en la tabla.
func (t *Table) Weight(phrase string) (int, bool) {
	i, ok := t.index[phrase]
	if !ok {
		return 0, false
	}
	return t.terms[i].Weight, true
}

// Terms retorna una copia de los términos en orden de declaración.
func (t *Table) Terms() []Term {
	return append([]Term(nil), t.terms...)
}

// Len retorna el número de términos.
func (t *Table) Len() int {
	return len(t.terms)
}
