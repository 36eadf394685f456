// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
)

// EnvPrefix precede a todas las variables de entorno reconocidas.
const EnvPrefix = "FRAUDTECT_"

type Config struct {
	LogLevel string `yaml:"log_level"`

	Classifier Classifier `yaml:"classifier"`
	Text       Text       `yaml:"text"`
	DNS        DNS        `yaml:"dns"`
	Registry   Registry   `yaml:"registry"`
	Reputation Reputation `yaml:"reputation"`
	Resilience Resilience `yaml:"resilience"`
	History    History    `yaml:"history"`
	Server     Server     `yaml:"server"`
	Output     Output     `yaml:"output"`
}

type Classifier struct {
	ArtifactPath string `yaml:"artifact_path"`
}

type Text struct {
	MaxInputBytes int `yaml:"max_input_bytes"`
}

type DNS struct {
	Timeout time.Duration `yaml:"timeout"`
}

type Registry struct {
	BaseURL string        `yaml:"base_url"` // formato con %s para el dominio
	Timeout time.Duration `yaml:"timeout"`
}

type Reputation struct {
	VirusTotal Service `yaml:"virustotal"`
	URLScan    Service `yaml:"urlscan"`
}

// Service configura un servicio de reputación y su polling.
type Service struct {
	Enabled      bool          `yaml:"enabled"`
	APIKey       string        `yaml:"api_key"`
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxAttempts  int           `yaml:"max_attempts"`
}

type Resilience struct {
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`

	// Circuit Breaker configuration
	CircuitBreakerEnabled     bool          `yaml:"circuit_breaker_enabled"`
	CircuitBreakerThreshold   int           `yaml:"circuit_breaker_threshold"`
	CircuitBreakerTimeout     time.Duration `yaml:"circuit_breaker_timeout"`
	CircuitBreakerHalfOpenMax int           `yaml:"circuit_breaker_half_open_max"`
}

type History struct {
	Backend string `yaml:"backend"` // file | sqlite | none
	Dir     string `yaml:"dir"`
	Path    string `yaml:"path"` // fichero sqlite
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Output struct {
	Format  string `yaml:"format"` // table | json
	NoColor bool   `yaml:"no_color"`
}

// History backends.
const (
	HistoryFile   = "file"
	HistorySQLite = "sqlite"
	HistoryNone   = "none"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",

		Classifier: Classifier{
			ArtifactPath: "models/classifier.json",
		},

		Text: Text{
			MaxInputBytes: 100_000,
		},

		DNS: DNS{
			Timeout: 10 * time.Second,
		},

		Registry: Registry{
			BaseURL: "https://rdap.org/domain/%s",
			Timeout: 20 * time.Second,
		},

		Reputation: Reputation{
			VirusTotal: Service{
				Enabled:      true,
				BaseURL:      "https://www.virustotal.com",
				Timeout:      20 * time.Second,
				InitialDelay: 3 * time.Second,
				PollInterval: 3 * time.Second,
				MaxAttempts:  5,
			},
			URLScan: Service{
				Enabled:      true,
				BaseURL:      "https://urlscan.io",
				Timeout:      30 * time.Second,
				InitialDelay: 5 * time.Second,
				PollInterval: 5 * time.Second,
				MaxAttempts:  6,
			},
		},

		Resilience: Resilience{
			MaxRetries:                1,
			RetryBackoff:              1 * time.Second,
			CircuitBreakerEnabled:     true,
			CircuitBreakerThreshold:   3,
			CircuitBreakerTimeout:     60 * time.Second,
			CircuitBreakerHalfOpenMax: 1,
		},

		History: History{
			Backend: HistoryFile,
			Dir:     "logs",
			Path:    "logs/history.db",
		},

		Server: Server{
			Addr: ":8080",
		},

		Output: Output{
			Format: FormatTable,
		},
	}
}

// Load construye la configuración: defaults -> YAML -> ENV -> FLAGS.
// path vacío omite el fichero; fs puede ser nil.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFromFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	loadFromEnv(&cfg)

	if fs != nil {
		loadFromFlags(&cfg, fs)
	}

	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFromFile mezcla el YAML sobre los valores actuales.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(domain.ErrConfigLoadFailed, "read %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(domain.ErrConfigLoadFailed, "parse %s: %v", path, err)
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv(EnvPrefix+"LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvPrefix+"MODEL_PATH", ""); v != "" {
		cfg.Classifier.ArtifactPath = v
	}
	if v := getenv(EnvPrefix+"MAX_INPUT_BYTES", ""); v != "" {
		cfg.Text.MaxInputBytes = parseInt(v, cfg.Text.MaxInputBytes)
	}
	if v := getenv(EnvPrefix+"DNS_TIMEOUT", ""); v != "" {
		cfg.DNS.Timeout = parseDuration(v, cfg.DNS.Timeout)
	}
	if v := getenv(EnvPrefix+"RDAP_URL", ""); v != "" {
		cfg.Registry.BaseURL = v
	}
	if v := getenv(EnvPrefix+"RDAP_TIMEOUT", ""); v != "" {
		cfg.Registry.Timeout = parseDuration(v, cfg.Registry.Timeout)
	}

	// Reputation
	// Formato: FRAUDTECT_VT_API_KEY, FRAUDTECT_URLSCAN_ENABLED=false, ...
	services := []struct {
		prefix string
		svc    *Service
	}{
		{EnvPrefix + "VT_", &cfg.Reputation.VirusTotal},
		{EnvPrefix + "URLSCAN_", &cfg.Reputation.URLScan},
	}
	for _, s := range services {
		if v := getenv(s.prefix+"API_KEY", ""); v != "" {
			s.svc.APIKey = v
		}
		if v := getenv(s.prefix+"ENABLED", ""); v != "" {
			s.svc.Enabled = parseBool(v)
		}
		if v := getenv(s.prefix+"URL", ""); v != "" {
			s.svc.BaseURL = v
		}
		if v := getenv(s.prefix+"TIMEOUT", ""); v != "" {
			s.svc.Timeout = parseDuration(v, s.svc.Timeout)
		}
		if v := getenv(s.prefix+"MAX_ATTEMPTS", ""); v != "" {
			s.svc.MaxAttempts = parseInt(v, s.svc.MaxAttempts)
		}
	}

	// Resilience
	if v := getenv(EnvPrefix+"RESILIENCE_MAX_RETRIES", ""); v != "" {
		cfg.Resilience.MaxRetries = parseInt(v, cfg.Resilience.MaxRetries)
	}
	if v := getenv(EnvPrefix+"RESILIENCE_CB_ENABLED", ""); v != "" {
		cfg.Resilience.CircuitBreakerEnabled = parseBool(v)
	}
	if v := getenv(EnvPrefix+"RESILIENCE_CB_THRESHOLD", ""); v != "" {
		cfg.Resilience.CircuitBreakerThreshold = parseInt(v, cfg.Resilience.CircuitBreakerThreshold)
	}

	// History
	if v := getenv(EnvPrefix+"HISTORY_BACKEND", ""); v != "" {
		cfg.History.Backend = v
	}
	if v := getenv(EnvPrefix+"HISTORY_DIR", ""); v != "" {
		cfg.History.Dir = v
	}
	if v := getenv(EnvPrefix+"HISTORY_PATH", ""); v != "" {
		cfg.History.Path = v
	}

	if v := getenv(EnvPrefix+"SERVER_ADDR", ""); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv(EnvPrefix+"OUTPUT", ""); v != "" {
		cfg.Output.Format = v
	}
	if v := getenv(EnvPrefix+"NO_COLOR", ""); v != "" {
		cfg.Output.NoColor = parseBool(v)
	}
}

// BindFlags registra en fs los flags que Load sabe leer.
func BindFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()

	fs.String("log-level", def.LogLevel, "Nivel de log (debug, info, warn, error)")
	fs.StringP("output", "o", def.Output.Format, "Formato de salida (table, json)")
	fs.Bool("no-color", def.Output.NoColor, "Desactivar colores en la tabla")
	fs.String("model", def.Classifier.ArtifactPath, "Ruta del artefacto JSON del clasificador")
	fs.String("history", def.History.Backend, "Backend de historial (file, sqlite, none)")
	fs.String("history-dir", def.History.Dir, "Directorio del historial JSONL")
	fs.String("history-db", def.History.Path, "Fichero SQLite del historial")
	fs.String("rdap-url", def.Registry.BaseURL, "Plantilla de URL RDAP (con %s)")
	fs.Int("retries", def.Resilience.MaxRetries, "Reintentos HTTP por petición")
}

// loadFromFlags aplica solo los flags que el usuario cambió.
func loadFromFlags(cfg *Config, fs *pflag.FlagSet) {
	str := func(name string, dst *string) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	str("log-level", &cfg.LogLevel)
	str("output", &cfg.Output.Format)
	str("model", &cfg.Classifier.ArtifactPath)
	str("history", &cfg.History.Backend)
	str("history-dir", &cfg.History.Dir)
	str("history-db", &cfg.History.Path)
	str("rdap-url", &cfg.Registry.BaseURL)
	str("addr", &cfg.Server.Addr)

	if f := fs.Lookup("no-color"); f != nil && f.Changed {
		cfg.Output.NoColor = parseBool(f.Value.String())
	}
	if f := fs.Lookup("retries"); f != nil && f.Changed {
		cfg.Resilience.MaxRetries = parseInt(f.Value.String(), cfg.Resilience.MaxRetries)
	}
}

func normalize(c *Config) {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.History.Backend = strings.ToLower(strings.TrimSpace(c.History.Backend))

	if c.Text.MaxInputBytes <= 0 {
		c.Text.MaxInputBytes = 100_000
	}
	if c.Resilience.MaxRetries < 0 {
		c.Resilience.MaxRetries = 0
	}
	for _, svc := range []*Service{&c.Reputation.VirusTotal, &c.Reputation.URLScan} {
		svc.APIKey = strings.TrimSpace(svc.APIKey)
		svc.BaseURL = strings.TrimSuffix(svc.BaseURL, "/")
		if svc.MaxAttempts < 1 {
			svc.MaxAttempts = 1
		}
	}
	if c.History.Dir == "" {
		c.History.Dir = "logs"
	}
}

// Validate rechaza combinaciones que ningún componente sabe servir.
func (c Config) Validate() error {
	switch c.Output.Format {
	case FormatTable, FormatJSON:
	default:
		return errors.Wrapf(domain.ErrInvalidConfig, "output format %q", c.Output.Format)
	}
	switch c.History.Backend {
	case HistoryFile, HistorySQLite, HistoryNone:
	default:
		return errors.Wrapf(domain.ErrInvalidConfig, "history backend %q", c.History.Backend)
	}
	if !strings.Contains(c.Registry.BaseURL, "%s") {
		return errors.Wrapf(domain.ErrInvalidConfig, "registry base_url %q needs a %%s placeholder", c.Registry.BaseURL)
	}
	return nil
}

// Redacted devuelve una copia sin secretos (útil para debugging).
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "****"
	}
	c.Reputation.VirusTotal.APIKey = mask(c.Reputation.VirusTotal.APIKey)
	c.Reputation.URLScan.APIKey = mask(c.Reputation.URLScan.APIKey)
	return c
}

// ToYAML serializa la configuración sin secretos.
func (c Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// parseDuration acepta "20s" o segundos enteros.
func parseDuration(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if i, err := strconv.Atoi(v); err == nil {
		return time.Duration(i) * time.Second
	}
	return def
}

// String resume la configuración efectiva en una línea.
func (c Config) String() string {
	return fmt.Sprintf("Config{model=%s, history=%s, output=%s, vt_key=%t, urlscan_key=%t}",
		c.Classifier.ArtifactPath,
		c.History.Backend,
		c.Output.Format,
		c.Reputation.VirusTotal.APIKey != "",
		c.Reputation.URLScan.APIKey != "",
	)
}
