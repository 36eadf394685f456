package urlrisk

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"fraudtect/internal/platform/validator"
)

// NormalizeURL recorta espacios y antepone http:// cuando falta el scheme.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !validator.HasScheme(raw) {
		raw = "http://" + raw
	}
	return raw
}

// ExtractHost retorna el host en minúsculas, sin puerto ni userinfo.
// Si la URL no parsea, se recorta a mano a partir del primer separador.
func ExtractHost(normalized string) string {
	if u, err := url.Parse(normalized); err == nil && u.Host != "" {
		return validator.NormalizeDomain(u.Hostname())
	}

	rest := normalized
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndexByte(rest, '@'); i >= 0 {
		rest = rest[i+1:]
	}
	if h, _, err := net.SplitHostPort(rest); err == nil {
		rest = h
	}
	rest = strings.TrimSuffix(strings.TrimPrefix(rest, "["), "]")
	return validator.NormalizeDomain(rest)
}

// RegistrableDomain retorna el eTLD+1 del host (ej: "login.example.co.uk" ->
// "example.co.uk"). Para IPs, hosts vacíos o sufijos desconocidos retorna el host.
func RegistrableDomain(host string) string {
	if host == "" || validator.IsIP(host) {
		return host
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}
