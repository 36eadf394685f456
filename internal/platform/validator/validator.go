// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Domain validators

var domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)

// IsDomain verifica si un string es un dominio válido (ASCII o punycode).
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !domainRegex.MatchString(domain) {
		return false
	}
	// Verificar que no sea una IP
	return net.ParseIP(domain) == nil
}

// NormalizeDomain normaliza un dominio a su forma canónica.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimSuffix(domain, ".")
}

// Network validators

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
// Acepta IPv6 entre corchetes, como aparece en el host de una URL.
func IsIP(ip string) bool {
	ip = strings.TrimSuffix(strings.TrimPrefix(ip, "["), "]")
	return net.ParseIP(ip) != nil
}

// URL validators

// HasScheme reporta si s empieza por http:// o https:// (sin distinguir mayúsculas).
func HasScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsURL verifica si un string es una URL válida con scheme y host.
func IsURL(urlStr string) bool {
	if len(urlStr) == 0 {
		return false
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

// Text validators

// IsText verifica que s sea UTF-8 válido y no supere maxBytes (0 = sin límite).
func IsText(s string, maxBytes int) bool {
	if maxBytes > 0 && len(s) > maxBytes {
		return false
	}
	return utf8.ValidString(s)
}

// IsEmpty verifica si un string está vacío (después de trim).
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
