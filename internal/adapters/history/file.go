package history

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
)

// FileName del historial dentro del directorio configurado.
const FileName = "history.jsonl"

// FileSink agrega un objeto JSON por línea a <dir>/history.jsonl.
type FileSink struct {
	mu     sync.Mutex
	path   string
	logger logx.Logger
}

// NewFileSink crea el directorio si no existe.
func NewFileSink(dir string, logger logx.Logger) (*FileSink, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create history dir %s", dir)
	}
	return &FileSink{
		path:   filepath.Join(dir, FileName),
		logger: logger.With("component", "history-file"),
	}, nil
}

// Path retorna la ruta del fichero JSONL.
func (s *FileSink) Path() string { return s.path }

// Append implements ports.HistorySink.
func (s *FileSink) Append(ctx context.Context, rec domain.HistoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encode history record")
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open %s", s.path)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", s.path)
	}
	return f.Close()
}

// List retorna los últimos limit registros, el más reciente primero.
// Las líneas corruptas se saltan.
func (s *FileSink) List(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = normalizeLimit(limit)

	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.HistoryRecord{}, nil
		}
		return nil, errors.Wrapf(err, "read %s", s.path)
	}

	var records []domain.HistoryRecord
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec domain.HistoryRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			s.logger.Warn("skipping malformed history line", "line", lineNo, "error", err.Error())
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "scan %s", s.path)
	}

	out := make([]domain.HistoryRecord, 0, min(limit, len(records)))
	for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, records[i])
	}
	return out, nil
}

// Close implements io.Closer.
func (s *FileSink) Close() error { return nil }
