// internal/core/ports/history.go
package ports

import (
	"context"

	"fraudtect/internal/core/domain"
)

// HistorySink recibe un registro por análisis completado.
type HistorySink interface {
	Append(ctx context.Context, rec domain.HistoryRecord) error
}

// HistoryReader es implementado por los sinks que permiten listar.
type HistoryReader interface {
	List(ctx context.Context, limit int) ([]domain.HistoryRecord, error)
}

// FeedbackRecorder es implementado por los sinks que aceptan feedback.
type FeedbackRecorder interface {
	RecordFeedback(ctx context.Context, id, feedbackType, comments string) error
}

// HistoryStore agrupa todas las capacidades del historial.
type HistoryStore interface {
	HistorySink
	HistoryReader
	FeedbackRecorder
	Close() error
}
