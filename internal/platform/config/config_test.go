// internal/platform/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/testutil"
)

func TestGetenv(t *testing.T) {
	t.Setenv("FRAUDTECT_TEST_KEY", "custom")
	t.Setenv("FRAUDTECT_TEST_EMPTY", "")

	testutil.AssertEqual(t, getenv("FRAUDTECT_TEST_KEY", "default"), "custom", "env var exists")
	testutil.AssertEqual(t, getenv("FRAUDTECT_TEST_MISSING", "default"), "default", "missing uses default")
	testutil.AssertEqual(t, getenv("FRAUDTECT_TEST_EMPTY", "default"), "default", "empty uses default")
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{" y ", true},
		{"0", false},
		{"false", false},
		{"off", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, parseBool(tt.input), tt.expected, "parseBool("+tt.input+")")
	}
}

func TestParseIntAndDuration(t *testing.T) {
	testutil.AssertEqual(t, parseInt("42", 1), 42, "valid int")
	testutil.AssertEqual(t, parseInt("x", 7), 7, "invalid int uses default")

	testutil.AssertEqual(t, parseDuration("1500ms", time.Second), 1500*time.Millisecond, "go duration")
	testutil.AssertEqual(t, parseDuration("12", time.Second), 12*time.Second, "bare seconds")
	testutil.AssertEqual(t, parseDuration("soon", time.Second), time.Second, "invalid uses default")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	testutil.AssertEqual(t, cfg.Text.MaxInputBytes, 100_000, "max input default")
	testutil.AssertEqual(t, cfg.DNS.Timeout, 10*time.Second, "dns timeout")
	testutil.AssertEqual(t, cfg.Registry.Timeout, 20*time.Second, "rdap timeout")
	testutil.AssertEqual(t, cfg.Registry.BaseURL, "https://rdap.org/domain/%s", "rdap url")
	testutil.AssertEqual(t, cfg.Reputation.VirusTotal.Timeout, 20*time.Second, "vt timeout")
	testutil.AssertEqual(t, cfg.Reputation.VirusTotal.MaxAttempts, 5, "vt attempts")
	testutil.AssertEqual(t, cfg.Reputation.URLScan.Timeout, 30*time.Second, "urlscan timeout")
	testutil.AssertEqual(t, cfg.Reputation.URLScan.InitialDelay, 5*time.Second, "urlscan delay")
	testutil.AssertEqual(t, cfg.Reputation.URLScan.MaxAttempts, 6, "urlscan attempts")
	testutil.AssertNoError(t, cfg.Validate(), "defaults are valid")
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fraudtect.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Precedence(t *testing.T) {
	path := writeYAML(t, `
log_level: warn
classifier:
  artifact_path: /from/yaml.json
history:
  backend: sqlite
reputation:
  virustotal:
    api_key: yaml-key
    poll_interval: 2s
output:
  format: json
`)

	t.Run("yaml over defaults", func(t *testing.T) {
		cfg, err := Load(path, nil)
		testutil.AssertNoError(t, err, "load should succeed")
		testutil.AssertEqual(t, cfg.LogLevel, "warn", "yaml log level")
		testutil.AssertEqual(t, cfg.Classifier.ArtifactPath, "/from/yaml.json", "yaml model")
		testutil.AssertEqual(t, cfg.Reputation.VirusTotal.PollInterval, 2*time.Second, "yaml duration")
		testutil.AssertEqual(t, cfg.Reputation.VirusTotal.MaxAttempts, 5, "untouched keys keep defaults")
	})

	t.Run("env over yaml", func(t *testing.T) {
		t.Setenv("FRAUDTECT_VT_API_KEY", "env-key")
		t.Setenv("FRAUDTECT_HISTORY_BACKEND", "none")

		cfg, err := Load(path, nil)
		testutil.AssertNoError(t, err, "load should succeed")
		testutil.AssertEqual(t, cfg.Reputation.VirusTotal.APIKey, "env-key", "env key wins")
		testutil.AssertEqual(t, cfg.History.Backend, HistoryNone, "env backend wins")
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("FRAUDTECT_OUTPUT", "json")

		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		BindFlags(fs)
		if err := fs.Parse([]string{"--output", "table", "--model", "/from/flag.json"}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		cfg, err := Load(path, fs)
		testutil.AssertNoError(t, err, "load should succeed")
		testutil.AssertEqual(t, cfg.Output.Format, FormatTable, "flag wins over env")
		testutil.AssertEqual(t, cfg.Classifier.ArtifactPath, "/from/flag.json", "flag wins over yaml")
		testutil.AssertEqual(t, cfg.LogLevel, "warn", "unchanged flag does not override yaml")
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		testutil.AssertTrue(t, errors.Is(err, domain.ErrConfigLoadFailed), "load failure")
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeYAML(t, "text: [unclosed"), nil)
		testutil.AssertTrue(t, errors.Is(err, domain.ErrConfigLoadFailed), "parse failure")
	})

	t.Run("invalid backend", func(t *testing.T) {
		t.Setenv("FRAUDTECT_HISTORY_BACKEND", "postgres")
		_, err := Load("", nil)
		testutil.AssertTrue(t, errors.Is(err, domain.ErrInvalidConfig), "invalid config")
	})

	t.Run("rdap template without placeholder", func(t *testing.T) {
		t.Setenv("FRAUDTECT_RDAP_URL", "https://rdap.example/domain/")
		_, err := Load("", nil)
		testutil.AssertTrue(t, errors.Is(err, domain.ErrInvalidConfig), "invalid config")
	})
}

func TestNormalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = " JSON "
	cfg.Text.MaxInputBytes = -1
	cfg.Reputation.URLScan.BaseURL = "https://urlscan.io/"
	cfg.Reputation.URLScan.MaxAttempts = 0

	normalize(&cfg)

	testutil.AssertEqual(t, cfg.Output.Format, FormatJSON, "format lowercased")
	testutil.AssertEqual(t, cfg.Text.MaxInputBytes, 100_000, "max input restored")
	testutil.AssertEqual(t, cfg.Reputation.URLScan.BaseURL, "https://urlscan.io", "trailing slash removed")
	testutil.AssertEqual(t, cfg.Reputation.URLScan.MaxAttempts, 1, "at least one attempt")
}

func TestRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reputation.VirusTotal.APIKey = "secret"

	out, err := cfg.ToYAML()
	testutil.AssertNoError(t, err, "marshal")
	testutil.AssertFalse(t, strings.Contains(out, "secret"), "key not leaked")
	testutil.AssertContains(t, cfg.String(), "vt_key=true", "summary reports key presence")
	testutil.AssertEqual(t, cfg.Reputation.VirusTotal.APIKey, "secret", "original untouched")
}
