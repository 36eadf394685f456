// internal/platform/registry/service_registry.go
package registry

import (
	"sort"
	"sync"
	"time"

	"fraudtect/internal/core/ports"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
)

// ServiceConfig es la configuración común que recibe cada factory de reputación.
type ServiceConfig struct {
	Enabled      bool
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	InitialDelay time.Duration
	PollInterval time.Duration
	MaxAttempts  int
	MaxRetries   int
	RetryBackoff time.Duration
}

// Validate rechaza valores que ninguna factory sabe usar.
func (c ServiceConfig) Validate() error {
	checks := []error{
		ValidateRequiredString("base_url", c.BaseURL),
		ValidatePositiveInt("max_attempts", c.MaxAttempts),
		ValidateNonNegativeInt("max_retries", c.MaxRetries),
		ValidateNonNegativeDuration("timeout", c.Timeout),
		ValidateNonNegativeDuration("initial_delay", c.InitialDelay),
		ValidateNonNegativeDuration("poll_interval", c.PollInterval),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// Metadata describe un servicio registrado.
type Metadata struct {
	DisplayName string
	Description string

	// Priority ordena los servicios en Build (mayor primero); también fija
	// el orden de las razones del deep scan.
	Priority    int
	RequiresKey bool
}

// ServiceFactory crea una instancia de ReputationService.
type ServiceFactory func(cfg ServiceConfig, logger logx.Logger) (ports.ReputationService, error)

// ServiceRegistry gestiona el registro y construcción de servicios de reputación.
// Los paquetes de cada servicio se registran desde init().
type ServiceRegistry struct {
	mu        sync.RWMutex
	factories map[string]ServiceFactory
	metadata  map[string]Metadata
	logger    logx.Logger
}

var (
	globalRegistry *ServiceRegistry
	once           sync.Once
)

// Global retorna la instancia global del registry.
func Global() *ServiceRegistry {
	once.Do(func() {
		globalRegistry = NewServiceRegistry(logx.Nop())
	})
	return globalRegistry
}

// NewServiceRegistry crea un registry vacío.
func NewServiceRegistry(logger logx.Logger) *ServiceRegistry {
	if logger == nil {
		logger = logx.Nop()
	}
	return &ServiceRegistry{
		factories: make(map[string]ServiceFactory),
		metadata:  make(map[string]Metadata),
		logger:    logger.With("component", "service-registry"),
	}
}

// Register registra una factory con su metadata.
func (r *ServiceRegistry) Register(name string, factory ServiceFactory, meta Metadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return errors.New("service name cannot be empty")
	}
	if factory == nil {
		return errors.Errorf("factory cannot be nil for service %s", name)
	}
	if _, exists := r.factories[name]; exists {
		return errors.Errorf("service %s is already registered", name)
	}

	r.factories[name] = factory
	r.metadata[name] = meta
	r.logger.Debug("service registered", "name", name, "priority", meta.Priority)
	return nil
}

// Build construye los servicios habilitados, ordenados por prioridad.
// Los nombres no registrados o con configuración inválida se omiten con un warning.
func (r *ServiceRegistry) Build(configs map[string]ServiceConfig, logger logx.Logger) []ports.ReputationService {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if logger == nil {
		logger = r.logger
	}

	names := make([]string, 0, len(configs))
	for name, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		if _, exists := r.factories[name]; !exists {
			logger.Warn("reputation service not registered, skipping", "service", name)
			continue
		}
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		pi, pj := r.metadata[names[i]].Priority, r.metadata[names[j]].Priority
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})

	services := make([]ports.ReputationService, 0, len(names))
	for _, name := range names {
		cfg := configs[name]
		if err := cfg.Validate(); err != nil {
			logger.Warn("invalid reputation service config, skipping", "service", name, "error", err.Error())
			continue
		}

		svc, err := r.factories[name](cfg, logger)
		if err != nil {
			logger.Warn("failed to build reputation service", "service", name, "error", err.Error())
			continue
		}

		services = append(services, svc)
		logger.Debug("reputation service built", "service", name, "priority", r.metadata[name].Priority)
	}

	return services
}

// List retorna los nombres registrados, ordenados.
func (r *ServiceRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMetadata retorna el metadata de un servicio.
func (r *ServiceRegistry) GetMetadata(name string) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, exists := r.metadata[name]
	return meta, exists
}

// IsRegistered verifica si un servicio está registrado.
func (r *ServiceRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// Clear elimina todos los registros (útil para testing).
func (r *ServiceRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = make(map[string]ServiceFactory)
	r.metadata = make(map[string]Metadata)
}
