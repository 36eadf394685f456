package classifier

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/platform/logx"
)

// Scorer es lo que el adaptador necesita de un artefacto.
type Scorer interface {
	PredictProbability(text string) (float64, error)
}

// Adapter expone el artefacto como ports.Predictor. Sin artefacto queda en
// estado "unavailable" y nunca falla.
type Adapter struct {
	scorer Scorer
	logger logx.Logger
}

var _ ports.Predictor = (*Adapter)(nil)

// NewAdapter envuelve un scorer ya cargado; scorer nil deja el adaptador no disponible.
func NewAdapter(scorer Scorer, logger logx.Logger) *Adapter {
	if logger == nil {
		logger = logx.Nop()
	}
	if a, ok := scorer.(*Artifact); ok && a == nil {
		scorer = nil
	}
	return &Adapter{scorer: scorer, logger: logger.With("component", "classifier")}
}

// Load carga el artefacto de path. Siempre retorna un adaptador utilizable;
// el error, si lo hay, envuelve domain.ErrModelUnavailable.
func Load(path string, logger logx.Logger) (*Adapter, error) {
	artifact, err := LoadArtifact(path)
	adapter := NewAdapter(artifact, logger)
	if err != nil {
		adapter.logger.Warn("classifier artifact not loaded, predictions disabled", "path", path, "error", err.Error())
		return adapter, err
	}
	adapter.logger.Info("classifier artifact loaded", "path", path, "features", artifact.vec.Dim())
	return adapter, nil
}

// Available reporta si hay un artefacto cargado.
func (a *Adapter) Available() bool {
	return a != nil && a.scorer != nil
}

// Predict retorna la etiqueta y la probabilidad en porcentaje con dos decimales.
func (a *Adapter) Predict(text string) (pred ports.Prediction) {
	if !a.Available() {
		return ports.Prediction{Label: domain.LabelModelUnavailable, Probability: 0}
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Err(fmt.Errorf("%w: panic: %v", domain.ErrPrediction, r))
			pred = ports.Prediction{Label: domain.LabelPredictionError, Probability: 0}
		}
	}()

	p, err := a.scorer.PredictProbability(text)
	if err != nil {
		a.logger.Err(fmt.Errorf("%w: %v", domain.ErrPrediction, err))
		return ports.Prediction{Label: domain.LabelPredictionError, Probability: 0}
	}

	percent := p * 100
	label := domain.LabelLegit
	if percent >= 50 {
		label = domain.LabelScam
	}
	return ports.Prediction{Label: label, Probability: round2(percent)}
}

// round2 redondea a dos decimales, mitades lejos de cero.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
