// internal/platform/resilience/guarded_service.go
package resilience

import (
	"context"
	"fmt"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/platform/logx"
)

// GuardedService envuelve un ReputationService con un circuit breaker.
// Con el circuito abierto el servicio no se llama y el reporte sale como failed.
type GuardedService struct {
	service        ports.ReputationService
	circuitBreaker *CircuitBreaker
	logger         logx.Logger
}

// NewGuardedService crea un nuevo GuardedService.
func NewGuardedService(service ports.ReputationService, cb *CircuitBreaker, logger logx.Logger) *GuardedService {
	if logger == nil {
		logger = logx.Nop()
	}
	return &GuardedService{
		service:        service,
		circuitBreaker: cb,
		logger:         logger.With("component", "guarded-service", "service", service.Name()),
	}
}

// Name retorna el nombre del servicio subyacente.
func (g *GuardedService) Name() string {
	return g.service.Name()
}

// Check consulta el servicio si el circuito lo permite.
func (g *GuardedService) Check(ctx context.Context, url string) domain.ReputationReport {
	if g.circuitBreaker != nil && !g.circuitBreaker.Allow() {
		g.logger.Warn("circuit breaker open, skipping service")
		return domain.ReputationReport{
			Service: g.service.Name(),
			Status:  domain.ReportFailed,
			Error:   fmt.Sprintf("%s: %v", g.service.Name(), ErrCircuitOpen),
		}
	}

	report := g.service.Check(ctx, url)

	if g.circuitBreaker != nil {
		switch report.Status {
		case domain.ReportReady:
			g.circuitBreaker.RecordSuccess()
		case domain.ReportFailed, domain.ReportTimedOut:
			// Una cancelación del llamador no dice nada de la salud del servicio
			if ctx.Err() == nil {
				g.circuitBreaker.RecordFailure()
			}
		}
	}

	if report.Status != domain.ReportReady {
		g.logger.Debug("service returned no verdict", "status", report.Status.String(), "error", report.Error)
	}

	return report
}

// CircuitBreaker retorna el circuit breaker (útil para testing/monitoring).
func (g *GuardedService) CircuitBreaker() *CircuitBreaker {
	return g.circuitBreaker
}
