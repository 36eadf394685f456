// internal/core/usecases/history.go
package usecases

import (
	"context"
	"time"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/platform/logx"
)

// historyRecorder agrega un registro por análisis. Un error del sink se
// registra como warning y no afecta al resultado.
type historyRecorder struct {
	sink   ports.HistorySink
	logger logx.Logger
}

func (h historyRecorder) record(ctx context.Context, rec domain.HistoryRecord) {
	if h.sink == nil {
		return
	}
	rec.Input = domain.TruncateRunes(rec.Input, domain.MaxHistoryInputRunes)
	if err := h.sink.Append(ctx, rec); err != nil {
		h.logger.Warn("failed to append history record",
			"id", rec.ID,
			"type", rec.Type.String(),
			"error", err.Error(),
		)
	}
}

func newRecord(id string, kind domain.AnalysisType, input string, score float64, verdict domain.Verdict, now time.Time) domain.HistoryRecord {
	return domain.HistoryRecord{
		ID:        id,
		Timestamp: now.UTC(),
		Type:      kind,
		Input:     input,
		RiskScore: score,
		Verdict:   verdict,
	}
}
