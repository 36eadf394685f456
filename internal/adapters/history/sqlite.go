package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id                TEXT PRIMARY KEY,
	ts                TEXT NOT NULL,
	type              TEXT NOT NULL,
	input             TEXT NOT NULL,
	risk_score        REAL NOT NULL,
	verdict           TEXT NOT NULL,
	feedback_type     TEXT,
	feedback_comments TEXT,
	feedback_ts       TEXT
);
CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(ts);
`

// tsLayout tiene ancho fijo para que el orden de texto coincida con el temporal.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteSink guarda el historial en la tabla analyses.
type SQLiteSink struct {
	db     *sql.DB
	logger logx.Logger
	now    func() time.Time
}

// NewSQLiteSink abre (o crea) la base de datos en path y aplica el esquema.
func NewSQLiteSink(path string, logger logx.Logger) (*SQLiteSink, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	if path == "" {
		return nil, errors.Wrap(domain.ErrInvalidConfig, "sqlite history path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create history dir %s", dir)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// Un solo escritor; SQLite serializa de todas formas
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to apply history schema")
	}

	return &SQLiteSink{
		db:     db,
		logger: logger.With("component", "history-sqlite"),
		now:    time.Now,
	}, nil
}

// Append implements ports.HistorySink.
func (s *SQLiteSink) Append(ctx context.Context, rec domain.HistoryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, ts, type, input, risk_score, verdict) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp.UTC().Format(tsLayout),
		rec.Type.String(),
		rec.Input,
		rec.RiskScore,
		rec.Verdict.String(),
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert history record")
	}
	return nil
}

// List retorna los últimos limit registros, el más reciente primero.
func (s *SQLiteSink) List(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, type, input, risk_score, verdict, feedback_type, feedback_comments, feedback_ts
		 FROM analyses ORDER BY ts DESC, rowid DESC LIMIT ?`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query history")
	}
	defer rows.Close()

	records := make([]domain.HistoryRecord, 0)
	for rows.Next() {
		var (
			rec                domain.HistoryRecord
			ts, kind, verdict  string
			fbType, fbComments sql.NullString
			fbTimestamp        sql.NullString
		)
		if err := rows.Scan(&rec.ID, &ts, &kind, &rec.Input, &rec.RiskScore, &verdict, &fbType, &fbComments, &fbTimestamp); err != nil {
			return nil, errors.Wrap(err, "failed to scan history row")
		}
		rec.Timestamp = parseTime(ts)
		rec.Type = domain.AnalysisType(kind)
		rec.Verdict = domain.Verdict(verdict)
		if fbType.Valid {
			rec.Feedback = &domain.Feedback{
				Type:      fbType.String,
				Comments:  fbComments.String,
				Timestamp: parseTime(fbTimestamp.String),
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read history rows")
	}
	return records, nil
}

// RecordFeedback implements ports.FeedbackRecorder.
func (s *SQLiteSink) RecordFeedback(ctx context.Context, id, feedbackType, comments string) error {
	if !domain.ValidFeedbackType(feedbackType) {
		return errors.Wrapf(domain.ErrInvalidFeedbackType, "%q", feedbackType)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE analyses SET feedback_type = ?, feedback_comments = ?, feedback_ts = ? WHERE id = ?`,
		feedbackType,
		comments,
		s.now().UTC().Format(tsLayout),
		id,
	)
	if err != nil {
		return errors.Wrap(err, "failed to record feedback")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to record feedback")
	}
	if n == 0 {
		return errors.Wrapf(domain.ErrRecordNotFound, "id %s", id)
	}

	s.logger.Info("feedback recorded", "id", id, "type", feedbackType)
	return nil
}

// Close cierra la base de datos.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
