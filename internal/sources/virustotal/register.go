package virustotal

import (
	"fraudtect/internal/core/ports"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/platform/registry"
	"fraudtect/internal/sources/common"
)

// RegistryName es la clave del servicio en el registry y en los reportes.
const RegistryName = "virustotal"

func init() {
	if err := registry.Global().Register(
		RegistryName,
		func(cfg registry.ServiceConfig, logger logx.Logger) (ports.ReputationService, error) {
			return New(Config{
				BaseConfig: common.BaseConfig{
					APIKey:       cfg.APIKey,
					Timeout:      cfg.Timeout,
					InitialDelay: cfg.InitialDelay,
					PollInterval: cfg.PollInterval,
					MaxAttempts:  cfg.MaxAttempts,
					MaxRetries:   cfg.MaxRetries,
					RetryBackoff: cfg.RetryBackoff,
				},
				BaseURL: cfg.BaseURL,
			}, logger), nil
		},
		registry.Metadata{
			DisplayName: ServiceName,
			Description: "URL reputation from VirusTotal engines",
			Priority:    10,
			RequiresKey: true,
		},
	); err != nil {
		// El registry omitirá el servicio en Build()
		logx.New().Warn("failed to register reputation service", "service", RegistryName, "error", err.Error())
	}
}
