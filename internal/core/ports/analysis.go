// internal/core/ports/analysis.go
package ports

import (
	"context"

	"fraudtect/internal/core/domain"
)

// Prediction es la salida del clasificador: etiqueta y probabilidad (0-100).
type Prediction struct {
	Label       string
	Probability float64
}

// Predictor es el port del clasificador de texto.
// Nunca retorna error: los fallos se expresan con las etiquetas centinela.
type Predictor interface {
	Predict(text string) Prediction
	Available() bool
}

// Resolver verifica si un host resuelve en DNS.
type Resolver interface {
	Resolve(ctx context.Context, host string) error
}

// RegistryLookup obtiene la información de registro de un dominio.
type RegistryLookup interface {
	Lookup(ctx context.Context, domain string) (domain.RegistryInfo, error)
}

// ReputationService consulta un servicio externo de reputación de URLs.
// Los fallos se devuelven dentro del reporte, nunca como error.
type ReputationService interface {
	// Name retorna el nombre visible del servicio (ej: "VirusTotal")
	Name() string

	// Check envía la URL y espera el veredicto
	Check(ctx context.Context, url string) domain.ReputationReport
}
