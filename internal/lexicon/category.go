package lexicon

// Uncategorized se devuelve cuando ninguna categoría tiene coincidencias.
const Uncategorized = "Uncategorized"

// Category agrupa términos bajo una etiqueta. Un término puede estar en varias.
type Category struct {
	Label string
	Terms []string
}

// Categorize elige la categoría con más términos coincidentes. Los empates
// los gana la primera declarada.
func Categorize(matched []string, cats []Category) string {
	if len(matched) == 0 {
		return Uncategorized
	}

	set := make(map[string]struct{}, len(matched))
	for _, term := range matched {
		set[term] = struct{}{}
	}

	best, bestCount := Uncategorized, 0
	for _, cat := range cats {
		count := 0
		seen := make(map[string]struct{}, len(cat.Terms))
		for _, term := range cat.Terms {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			if _, ok := set[term]; ok {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = cat.Label, count
		}
	}
	return best
}

// CategorizeDefault usa las categorías incorporadas.
func CategorizeDefault(matched []string) string {
	return Categorize(matched, categories)
}
