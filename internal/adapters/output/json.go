// internal/adapters/output/json.go
package output

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"fraudtect/internal/platform/errors"
)

// sanitizeName convierte un dominio o etiqueta en un nombre de fichero válido.
// Ejemplo: "example.com" -> "example_com"
func sanitizeName(name string) string {
	sanitized := strings.ReplaceAll(strings.TrimSpace(name), ".", "_")
	sanitized = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, sanitized)
	if sanitized == "" {
		return "report"
	}
	return sanitized
}

// WriteJSON codifica v en w, indentado si pretty.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}

// SaveJSON guarda v como <dir>/fraudtect_<name>_<timestamp>.json y retorna la ruta.
func SaveJSON(dir, name string, v any, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create output directory")
	}

	filename := "fraudtect_" + sanitizeName(name) + "_" + now.Format("20060102_150405") + ".json"
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to create output file")
	}
	defer f.Close()

	if err := WriteJSON(f, v, true); err != nil {
		return "", err
	}
	return path, nil
}
