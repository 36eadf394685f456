// Package classifier loads the exported TF-IDF + calibrated logistic
// regression artifact and turns its probability into a labelled prediction.
package classifier

import (
	"math"
	"os"

	"github.com/goccy/go-json"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
)

// Artifact es el modelo exportado: vectorizador y regresión calibrada.
// Es de solo lectura tras Load y se comparte durante todo el proceso.
type Artifact struct {
	Vectorizer VectorizerSpec `json:"vectorizer"`
	Model      ModelSpec      `json:"model"`

	vec *Vectorizer
}

// ModelSpec es una regresión logística con calibración sigmoide (Platt).
type ModelSpec struct {
	Coef        []float64   `json:"coef"`
	Intercept   float64     `json:"intercept"`
	Calibration Calibration `json:"calibration"`
}

// Calibration: p = 1 / (1 + exp(A*f + B)).
type Calibration struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// LoadArtifact lee y valida un artefacto JSON.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrModelUnavailable, "read %s: %v", path, err)
	}
	return ParseArtifact(data)
}

// ParseArtifact decodifica y valida un artefacto en memoria.
func ParseArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrapf(domain.ErrModelUnavailable, "decode artifact: %v", err)
	}
	if err := a.init(); err != nil {
		return nil, errors.Wrapf(domain.ErrModelUnavailable, "invalid artifact: %v", err)
	}
	return &a, nil
}

func (a *Artifact) init() error {
	vec, err := NewVectorizer(a.Vectorizer)
	if err != nil {
		return err
	}
	if len(a.Model.Coef) != vec.Dim() {
		return errors.Errorf("coef has %d entries, vocabulary needs %d", len(a.Model.Coef), vec.Dim())
	}
	if a.Model.Calibration.A == 0 && a.Model.Calibration.B == 0 {
		// Sin calibración: sigmoide logística estándar
		a.Model.Calibration.A = -1
	}
	a.vec = vec
	return nil
}

// PredictProbability retorna P(scam | text) en [0,1].
func (a *Artifact) PredictProbability(text string) (float64, error) {
	if a == nil || a.vec == nil {
		return 0, domain.ErrModelUnavailable
	}

	f := a.Model.Intercept
	for col, v := range a.vec.Transform(text) {
		f += a.Model.Coef[col] * v
	}

	p := 1 / (1 + math.Exp(a.Model.Calibration.A*f+a.Model.Calibration.B))
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, errors.Wrapf(domain.ErrPrediction, "non-finite probability for decision value %v", f)
	}
	return p, nil
}
