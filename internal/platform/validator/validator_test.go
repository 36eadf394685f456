// internal/platform/validator/validator_test.go
package validator

import (
	"strings"
	"testing"

	"fraudtect/internal/testutil"
)

func TestIsDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid domain", "example.com", true},
		{"valid subdomain", "login.secure-wallet.xyz", true},
		{"punycode", "xn--pypal-4ve.com", true},
		{"empty string", "", false},
		{"too long", strings.Repeat("a", 300), false},
		{"ip address", "192.168.1.1", false},
		{"invalid chars", "exam ple.com", false},
		{"starts with hyphen", "-example.com", false},
		{"ends with hyphen", "example-.com", false},
		{"single label", "localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsDomain(tt.input), tt.expected, "domain validation")
		})
	}

	for _, d := range testutil.FixtureDomains {
		testutil.AssertTrue(t, IsDomain(d), "fixture domain "+d)
	}
	for _, d := range testutil.FixtureInvalidDomains {
		testutil.AssertFalse(t, IsDomain(d), "fixture invalid domain "+d)
	}
}

func TestNormalizeDomain(t *testing.T) {
	testutil.AssertEqual(t, NormalizeDomain("  EXAMPLE.COM. "), "example.com", "lowercase, trim, trailing dot")
	testutil.AssertEqual(t, NormalizeDomain("www.example.com"), "www.example.com", "www kept: heuristics see the real host")
}

func TestIsIP(t *testing.T) {
	for _, ip := range testutil.FixtureIPs {
		testutil.AssertTrue(t, IsIP(ip), "fixture ip "+ip)
	}
	testutil.AssertTrue(t, IsIP("[2001:db8::1]"), "bracketed ipv6")
	testutil.AssertFalse(t, IsIP("example.com"), "domain is not ip")
	testutil.AssertFalse(t, IsIP("999.1.1.1"), "out of range octet")
}

func TestHasScheme(t *testing.T) {
	testutil.AssertTrue(t, HasScheme("http://a.com"), "http")
	testutil.AssertTrue(t, HasScheme("HTTPS://a.com"), "case-insensitive")
	testutil.AssertFalse(t, HasScheme("ftp://a.com"), "other scheme")
	testutil.AssertFalse(t, HasScheme("a.com"), "no scheme")
}

func TestIsURL(t *testing.T) {
	testutil.AssertTrue(t, IsURL("https://example.com/path"), "valid url")
	testutil.AssertFalse(t, IsURL("example.com"), "no scheme")
	testutil.AssertFalse(t, IsURL(""), "empty")
	testutil.AssertFalse(t, IsURL("http://"), "no host")
}

func TestIsText(t *testing.T) {
	testutil.AssertTrue(t, IsText("hola, ¿qué tal?", 0), "utf-8 text")
	testutil.AssertTrue(t, IsText("", 10), "empty text is valid")
	testutil.AssertFalse(t, IsText(string([]byte{0xff, 0xfe}), 0), "invalid utf-8")
	testutil.AssertFalse(t, IsText("abcdef", 5), "over limit")
	testutil.AssertTrue(t, IsText("abcde", 5), "at limit")
}

func TestIsEmpty(t *testing.T) {
	testutil.AssertTrue(t, IsEmpty("   \n"), "whitespace only")
	testutil.AssertFalse(t, IsEmpty(" a "), "content")
}
