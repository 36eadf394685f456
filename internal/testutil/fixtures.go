// internal/testutil/fixtures.go
package testutil

import "time"

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureScamTexts are messages that should trip the keyword engine.
var FixtureScamTexts = []string{
	"URGENT: your bank account is suspended. Verify your account now, click here and share the OTP.",
	"Double your money with our crypto trading bot! Limited time airdrop, send money to claim your prize.",
	"Elon Musk bitcoin giveaway: connect your metamask and enter your seed phrase to receive the bonus.",
}

// FixtureLegitTexts are ordinary messages with no dictionary hits.
var FixtureLegitTexts = []string{
	"Hey, are we still meeting for lunch tomorrow at noon?",
	"The quarterly report is attached; let me know if anything looks off.",
	"",
}

// FixtureDomains contiene dominios de prueba válidos.
var FixtureDomains = []string{
	"example.com",
	"test.example.com",
	"subdomain.example.com",
	"another.test.example.com",
}

// FixtureInvalidDomains contiene dominios inválidos.
var FixtureInvalidDomains = []string{
	"",
	"not a domain",
	"192.168.1.1",
	"2001:db8::1",
	"-invalid.com",
	"invalid-.com",
	".example.com",
	"example..com",
}

// FixtureIPs contiene IPs de prueba.
var FixtureIPs = []string{
	"192.168.1.1",
	"10.0.0.1",
	"8.8.8.8",
}

// FixtureNow is a fixed clock for age computations.
var FixtureNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

// DaysAgo returns FixtureNow shifted back by n days.
func DaysAgo(n int) time.Time {
	return FixtureNow.AddDate(0, 0, -n)
}
