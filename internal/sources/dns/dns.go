// Package dns checks whether a host resolves, using the system resolver.
package dns

import (
	"context"
	"net"
	"time"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
)

// DefaultTimeout for one resolution.
const DefaultTimeout = 10 * time.Second

// LookupFunc resuelve un host a direcciones (net.Resolver.LookupHost).
type LookupFunc func(ctx context.Context, host string) ([]string, error)

// Resolver implements ports.Resolver.
type Resolver struct {
	lookup  LookupFunc
	timeout time.Duration
	logger  logx.Logger
}

// New creates a Resolver backed by net.DefaultResolver.
func New(timeout time.Duration, logger logx.Logger) *Resolver {
	return NewWithLookup(net.DefaultResolver.LookupHost, timeout, logger)
}

// NewWithLookup creates a Resolver with a custom lookup function.
func NewWithLookup(lookup LookupFunc, timeout time.Duration, logger logx.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Resolver{
		lookup:  lookup,
		timeout: timeout,
		logger:  logger.With("source", "dns"),
	}
}

// Resolve retorna nil si host tiene al menos una dirección.
// Los fallos envuelven domain.ErrDNSResolution con el detalle del resolver.
func (r *Resolver) Resolve(ctx context.Context, host string) error {
	if host == "" {
		return errors.Errorf("%w: empty host", domain.ErrDNSResolution)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	addrs, err := r.lookup(ctx, host)
	if err != nil {
		r.logger.Debug("DNS resolution failed",
			"host", host,
			"error", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return errors.Errorf("%w: %s", domain.ErrDNSResolution, detail(err))
	}
	if len(addrs) == 0 {
		return errors.Errorf("%w: no addresses for %s", domain.ErrDNSResolution, host)
	}

	r.logger.Debug("DNS resolved", "host", host, "addresses", len(addrs))
	return nil
}

// detail acorta los errores del resolver a su parte útil.
func detail(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return "no such host " + dnsErr.Name
		case dnsErr.IsTimeout:
			return "lookup timed out for " + dnsErr.Name
		}
	}
	if errors.IsTimeout(err) {
		return "lookup timed out"
	}
	return err.Error()
}
