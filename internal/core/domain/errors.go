// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio.
var (
	// Classifier errors (degradan, nunca fallan el análisis)
	ErrModelUnavailable = errors.New("classifier model unavailable")
	ErrPrediction       = errors.New("classifier prediction failed")

	// URL signal errors (se convierten en razones)
	ErrDNSResolution             = errors.New("DNS resolution failed")
	ErrRegistryLookup            = errors.New("WHOIS lookup failed")
	ErrUnsupportedRegistryFormat = errors.New("Unsupported WHOIS format")
	ErrMissingCreationDate       = errors.New("WHOIS did not return creation date")

	// Reputation errors (quedan en el reporte del servicio)
	ErrReputationService = errors.New("reputation service failed")
	ErrAPIKeyMissing     = errors.New("API key missing")
	ErrScanTimedOut      = errors.New("scan is taking too long")

	// Input errors
	ErrMalformedInput = errors.New("malformed input")

	// History errors
	ErrRecordNotFound      = errors.New("history record not found")
	ErrFeedbackUnsupported = errors.New("history backend does not support feedback")
	ErrInvalidFeedbackType = errors.New("invalid feedback type")

	// Configuration errors
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrConfigLoadFailed = errors.New("failed to load configuration")
)
