// Package rdap implements the domain registry lookup over RDAP (Registration
// Data Access Protocol). It retrieves the creation and expiration dates and
// the registrar of a registrable domain.
package rdap

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/httpclient"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/platform/validator"
)

const (
	// DefaultBaseURL is the rdap.org bootstrap service; %s is the domain.
	DefaultBaseURL = "https://rdap.org/domain/%s"

	// DefaultTimeout for one RDAP query.
	DefaultTimeout = 20 * time.Second
)

// Config for the RDAP client.
type Config struct {
	// BaseURL must contain a single %s for the domain.
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// Client implements ports.RegistryLookup against an RDAP server.
type Client struct {
	client  *httpclient.Client
	baseURL string
	logger  logx.Logger
}

// New creates a new RDAP client.
func New(cfg Config, logger logx.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logx.Nop()
	}

	httpConfig := httpclient.Config{
		Timeout:         cfg.Timeout,
		MaxRetries:      cfg.MaxRetries,
		RetryBackoff:    cfg.RetryBackoff,
		MaxRetryBackoff: 10 * time.Second,
		UserAgent:       httpclient.DefaultUserAgent + " RDAP Client",
		RateLimit:       5, // 5 requests per second
		RateLimitBurst:  2,
		Transport:       cfg.Transport,
	}

	return &Client{
		client:  httpclient.New(httpConfig, logger),
		baseURL: cfg.BaseURL,
		logger:  logger.With("source", "rdap"),
	}
}

// Lookup consulta el registro de domainName.
//
// Errores:
//   - domain.ErrMissingCreationDate si no hay evento "registration"
//   - domain.ErrUnsupportedRegistryFormat si la fecha no se puede parsear
//   - domain.ErrRegistryLookup para fallos de red, HTTP o JSON
func (c *Client) Lookup(ctx context.Context, domainName string) (domain.RegistryInfo, error) {
	domainName = validator.NormalizeDomain(domainName)
	if domainName == "" {
		return domain.RegistryInfo{}, errors.Errorf("%w: empty domain", domain.ErrRegistryLookup)
	}

	data, err := c.query(ctx, domainName)
	if err != nil {
		c.logger.Warn("RDAP query failed",
			"domain", domainName,
			"error", err.Error(),
		)
		return domain.RegistryInfo{}, err
	}

	info, err := registryInfo(data)
	if err != nil {
		c.logger.Debug("RDAP response without usable dates",
			"domain", domainName,
			"error", err.Error(),
		)
		return domain.RegistryInfo{}, err
	}

	c.logger.Debug("RDAP query completed",
		"domain", domainName,
		"registrar", info.Registrar,
	)
	return info, nil
}

// query performs the RDAP request and decodes the response.
func (c *Client) query(ctx context.Context, domainName string) (*rdapResponse, error) {
	target := strings.Replace(c.baseURL, "%s", url.PathEscape(domainName), 1)

	c.logger.Debug("Querying RDAP server",
		"domain", domainName,
		"url", target,
	)

	body, err := c.client.FetchJSON(ctx, target, nil)
	if err != nil {
		switch {
		case errors.IsNotFound(err):
			return nil, errors.Errorf("%w: domain not found in RDAP: %s", domain.ErrRegistryLookup, domainName)
		case errors.IsRateLimit(err):
			return nil, errors.Errorf("%w: RDAP rate limit exceeded", domain.ErrRegistryLookup)
		case errors.IsTimeout(err):
			return nil, errors.Errorf("%w: RDAP query timed out", domain.ErrRegistryLookup)
		default:
			return nil, errors.Errorf("%w: %v", domain.ErrRegistryLookup, err)
		}
	}

	var data rdapResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.Errorf("%w: invalid RDAP response: %v", domain.ErrRegistryLookup, err)
	}
	return &data, nil
}

// registryInfo extrae fechas y registrar de la respuesta.
func registryInfo(data *rdapResponse) (domain.RegistryInfo, error) {
	var (
		info       domain.RegistryInfo
		created    flexibleDate
		expiration flexibleDate
	)

	for _, event := range data.Events {
		switch strings.ToLower(event.EventAction) {
		case "registration":
			if created.IsEmpty() {
				created = event.EventDate
			}
		case "expiration":
			if expiration.IsEmpty() {
				expiration = event.EventDate
			}
		}
	}

	if created.IsEmpty() {
		return info, domain.ErrMissingCreationDate
	}
	t, ok := created.Time()
	if !ok {
		return info, errors.Wrapf(domain.ErrUnsupportedRegistryFormat, "registration date %q", created.String())
	}
	info.CreationDate = &t

	// La expiración es informativa: si no parsea se omite
	if exp, ok := expiration.Time(); ok {
		info.ExpirationDate = &exp
	}

	for _, entity := range data.Entities {
		if hasRole(entity.Roles, "registrar") {
			if name := extractVCardField(entity.VCardArray, "fn"); name != "" {
				info.Registrar = name
				break
			}
		}
	}

	return info, nil
}
