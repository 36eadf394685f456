// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
)

// mockPredictor es un mock de ports.Predictor
type mockPredictor struct {
	pred  ports.Prediction
	calls int
}

func (m *mockPredictor) Predict(string) ports.Prediction {
	m.calls++
	return m.pred
}

func (m *mockPredictor) Available() bool { return true }

// panicPredictor simula un fallo inesperado fuera del adaptador
type panicPredictor struct{}

func (panicPredictor) Predict(string) ports.Prediction { panic("boom") }
func (panicPredictor) Available() bool                 { return true }

// mockSink es un mock de ports.HistorySink
type mockSink struct {
	mu      sync.Mutex
	records []domain.HistoryRecord
	err     error
}

func (m *mockSink) Append(_ context.Context, rec domain.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockSink) all() []domain.HistoryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.HistoryRecord(nil), m.records...)
}

type stubResolver struct{ err error }

func (s stubResolver) Resolve(context.Context, string) error { return s.err }

type stubRegistry struct {
	info domain.RegistryInfo
	err  error
}

func (s stubRegistry) Lookup(context.Context, string) (domain.RegistryInfo, error) {
	return s.info, s.err
}

type stubService struct {
	name   string
	report domain.ReputationReport
}

func (s stubService) Name() string { return s.name }

func (s stubService) Check(context.Context, string) domain.ReputationReport { return s.report }

// nilMapService escribe en un map nil dentro de Check
type nilMapService struct{ name string }

func (s nilMapService) Name() string { return s.name }

func (nilMapService) Check(context.Context, string) domain.ReputationReport {
	var extra map[string]any
	extra["verdict"] = "malicious"
	return domain.ReputationReport{Extra: extra}
}
