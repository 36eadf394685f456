// Package output renders analyses and history as terminal tables or JSON.
package output

import (
	"io"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/config"
	"fraudtect/internal/platform/errors"
)

// Renderer escribe resultados en el formato configurado.
type Renderer struct {
	w      io.Writer
	format string
}

// NewRenderer valida el formato (table | json).
func NewRenderer(w io.Writer, format string) (*Renderer, error) {
	switch format {
	case config.FormatTable, config.FormatJSON:
	case "":
		format = config.FormatTable
	default:
		return nil, errors.Wrapf(domain.ErrInvalidConfig, "output format %q", format)
	}
	return &Renderer{w: w, format: format}, nil
}

// Format retorna el formato activo.
func (r *Renderer) Format() string { return r.format }

// Text renderiza un análisis de texto.
func (r *Renderer) Text(res *domain.TextAnalysis) error {
	if r.format == config.FormatJSON {
		return WriteJSON(r.w, res, true)
	}
	return TextTable(r.w, res)
}

// URL renderiza un análisis de URL.
func (r *Renderer) URL(res *domain.URLAnalysis) error {
	if r.format == config.FormatJSON {
		return WriteJSON(r.w, res, true)
	}
	return URLTable(r.w, res)
}

// History renderiza registros del historial.
func (r *Renderer) History(records []domain.HistoryRecord) error {
	if r.format == config.FormatJSON {
		if records == nil {
			records = []domain.HistoryRecord{}
		}
		return WriteJSON(r.w, records, true)
	}
	return HistoryTable(r.w, records)
}
