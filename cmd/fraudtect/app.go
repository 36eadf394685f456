// cmd/fraudtect/app.go
package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fraudtect/internal/adapters/history"
	"fraudtect/internal/adapters/output"
	"fraudtect/internal/classifier"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/core/usecases"
	"fraudtect/internal/platform/config"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/platform/metrics"
	"fraudtect/internal/platform/registry"
	"fraudtect/internal/platform/resilience"
	"fraudtect/internal/platform/ui"
	"fraudtect/internal/sources/dns"
	"fraudtect/internal/sources/rdap"
	"fraudtect/internal/sources/urlscan"
	"fraudtect/internal/sources/virustotal"
	"fraudtect/internal/urlrisk"
)

// app agrupa los componentes construidos a partir de la configuración.
type app struct {
	cfg      config.Config
	logger   logx.Logger
	metrics  *metrics.Metrics
	history  history.Store
	text     *usecases.TextAnalyzer
	url      *usecases.URLAnalyzer
	renderer *output.Renderer
	stdout   io.Writer
}

// loadConfig lee --config y el resto de flags del comando.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}

// newApp construye el grafo completo: clasificador, fuentes, analizadores e historial.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := logx.NewWithLevel(logx.ParseLevel(cfg.LogLevel))
	stdout := cmd.OutOrStdout()

	if cfg.Output.NoColor || !ui.IsTerminal(stdout) {
		ui.DisableColor()
	}

	renderer, err := output.NewRenderer(stdout, cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	store, err := history.Open(cfg.History, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open history")
	}

	m := metrics.New()

	// El artefacto ausente no es fatal: el análisis degrada
	predictor, err := classifier.Load(cfg.Classifier.ArtifactPath, logger)
	if err != nil {
		logger.Debug("running without classifier", "error", err.Error())
	}

	// Un Store nil deja el historial desactivado
	var sink ports.HistorySink = store

	text := usecases.NewTextAnalyzer(usecases.TextAnalyzerOptions{
		Predictor:     predictor,
		History:       sink,
		Metrics:       m,
		Logger:        logger,
		MaxInputBytes: cfg.Text.MaxInputBytes,
	})

	engine := urlrisk.New(
		dns.New(cfg.DNS.Timeout, logger),
		rdap.New(rdap.Config{
			BaseURL:      cfg.Registry.BaseURL,
			Timeout:      cfg.Registry.Timeout,
			MaxRetries:   cfg.Resilience.MaxRetries,
			RetryBackoff: cfg.Resilience.RetryBackoff,
		}, logger),
		urlrisk.WithReputation(buildReputation(cfg, logger)...),
		urlrisk.WithLogger(logger),
		urlrisk.WithMetrics(m),
	)

	url := usecases.NewURLAnalyzer(usecases.URLAnalyzerOptions{
		Engine:  engine,
		History: sink,
		Metrics: m,
		Logger:  logger,
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		history:  store,
		text:     text,
		url:      url,
		renderer: renderer,
		stdout:   stdout,
	}, nil
}

// close libera el historial.
func (a *app) close() {
	if a.history == nil {
		return
	}
	if err := a.history.Close(); err != nil {
		a.logger.Warn("failed to close history", "error", err.Error())
	}
}

// buildReputation crea los servicios habilitados, envueltos con circuit breaker si procede.
func buildReputation(cfg config.Config, logger logx.Logger) []ports.ReputationService {
	services := registry.Global().Build(map[string]registry.ServiceConfig{
		virustotal.RegistryName: serviceConfig(cfg.Reputation.VirusTotal, cfg.Resilience),
		urlscan.RegistryName:    serviceConfig(cfg.Reputation.URLScan, cfg.Resilience),
	}, logger)

	if !cfg.Resilience.CircuitBreakerEnabled {
		return services
	}

	guarded := make([]ports.ReputationService, 0, len(services))
	for _, svc := range services {
		cb := resilience.NewCircuitBreaker(
			cfg.Resilience.CircuitBreakerThreshold,
			cfg.Resilience.CircuitBreakerTimeout,
			cfg.Resilience.CircuitBreakerHalfOpenMax,
		)
		guarded = append(guarded, resilience.NewGuardedService(svc, cb, logger))

		logger.Debug("wrapped reputation service with circuit breaker",
			"service", svc.Name(),
			"threshold", cfg.Resilience.CircuitBreakerThreshold,
		)
	}
	return guarded
}

func serviceConfig(svc config.Service, res config.Resilience) registry.ServiceConfig {
	return registry.ServiceConfig{
		Enabled:      svc.Enabled,
		APIKey:       svc.APIKey,
		BaseURL:      svc.BaseURL,
		Timeout:      svc.Timeout,
		InitialDelay: svc.InitialDelay,
		PollInterval: svc.PollInterval,
		MaxAttempts:  svc.MaxAttempts,
		MaxRetries:   res.MaxRetries,
		RetryBackoff: res.RetryBackoff,
	}
}

// readText elige la entrada: argumento, --file o stdin ("-" también es stdin).
func readText(args []string, file string, stdin io.Reader) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file == "-":
		return readAll(stdin)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrapf(err, "read %s", file)
		}
		return string(data), nil
	default:
		return readAll(stdin)
	}
}

func readAll(r io.Reader) (string, error) {
	if r == nil {
		return "", errors.New("no input: pass TEXT, --file or pipe stdin")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	return string(data), nil
}
