// Package history persists one flat record per analysis, either as JSON lines
// or in a local SQLite database.
package history

import (
	"io"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/platform/config"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
)

// Store es un sink que además permite listar.
type Store interface {
	ports.HistorySink
	ports.HistoryReader
	io.Closer
}

// DefaultListLimit se usa cuando el llamador no indica límite.
const DefaultListLimit = 50

// Open crea el sink configurado. Con backend "none" retorna (nil, nil).
func Open(cfg config.History, logger logx.Logger) (Store, error) {
	switch cfg.Backend {
	case config.HistoryNone:
		return nil, nil
	case config.HistorySQLite:
		sink, err := NewSQLiteSink(cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case config.HistoryFile, "":
		sink, err := NewFileSink(cfg.Dir, logger)
		if err != nil {
			return nil, err
		}
		return sink, nil
	default:
		return nil, errors.Wrapf(domain.ErrInvalidConfig, "history backend %q", cfg.Backend)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
