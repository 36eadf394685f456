package classifier

import (
	"math"
	"regexp"
	"strings"

	"fraudtect/internal/platform/errors"
)

// tokenPattern equivale al patrón por defecto \b\w\w+\b con \w en Unicode.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// VectorizerSpec es la sección "vectorizer" del artefacto.
type VectorizerSpec struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	NgramRange  [2]int         `json:"ngram_range"`
	StopWords   []string       `json:"stop_words"`
	Lowercase   bool           `json:"lowercase"`
	SublinearTF bool           `json:"sublinear_tf"`
	Norm        string         `json:"norm"`
}

// Vectorizer convierte texto en un vector TF-IDF disperso.
type Vectorizer struct {
	spec      VectorizerSpec
	stopWords map[string]struct{}
}

// NewVectorizer valida la especificación.
func NewVectorizer(spec VectorizerSpec) (*Vectorizer, error) {
	if len(spec.Vocabulary) == 0 {
		return nil, errors.New("empty vocabulary")
	}
	if len(spec.IDF) != len(spec.Vocabulary) {
		return nil, errors.Errorf("idf has %d entries, vocabulary has %d", len(spec.IDF), len(spec.Vocabulary))
	}
	for term, col := range spec.Vocabulary {
		if col < 0 || col >= len(spec.IDF) {
			return nil, errors.Errorf("term %q maps to column %d out of range", term, col)
		}
	}
	if spec.NgramRange == [2]int{} {
		spec.NgramRange = [2]int{1, 1}
	}
	if spec.NgramRange[0] < 1 || spec.NgramRange[1] < spec.NgramRange[0] {
		return nil, errors.Errorf("invalid ngram_range %v", spec.NgramRange)
	}
	switch spec.Norm {
	case "l2", "":
	default:
		return nil, errors.Errorf("unsupported norm %q", spec.Norm)
	}

	stop := make(map[string]struct{}, len(spec.StopWords))
	for _, w := range spec.StopWords {
		stop[w] = struct{}{}
	}
	return &Vectorizer{spec: spec, stopWords: stop}, nil
}

// Dim retorna el número de columnas.
func (v *Vectorizer) Dim() int {
	return len(v.spec.IDF)
}

// Tokens aplica minúsculas, tokenización y filtro de stop words.
func (v *Vectorizer) Tokens(text string) []string {
	if v.spec.Lowercase {
		text = strings.ToLower(text)
	}
	raw := tokenPattern.FindAllString(text, -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := v.stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Ngrams genera los n-gramas de palabras unidos por un espacio.
func (v *Vectorizer) Ngrams(tokens []string) []string {
	minN, maxN := v.spec.NgramRange[0], v.spec.NgramRange[1]
	out := make([]string, 0, len(tokens)*(maxN-minN+1))
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// Transform retorna columna -> peso TF-IDF, normalizado L2 si corresponde.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, gram := range v.Ngrams(v.Tokens(text)) {
		if col, ok := v.spec.Vocabulary[gram]; ok {
			counts[col]++
		}
	}

	var sumSq float64
	for col, tf := range counts {
		if v.spec.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		w := tf * v.spec.IDF[col]
		counts[col] = w
		sumSq += w * w
	}

	if v.spec.Norm == "l2" && sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for col := range counts {
			counts[col] /= norm
		}
	}
	return counts
}
