// Package virustotal submits URLs to the VirusTotal v3 API and waits for the
// analysis verdict.
package virustotal

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/httpclient"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/sources/common"
)

const (
	// ServiceName is the visible service name.
	ServiceName = "VirusTotal"

	// DefaultBaseURL of the API.
	DefaultBaseURL = "https://www.virustotal.com"

	guiURLFormat = "https://www.virustotal.com/gui/url/%s/detection"

	statusCompleted = "completed"
)

// Defaults.
const (
	DefaultTimeout      = 20 * time.Second
	DefaultInitialDelay = 3 * time.Second
	DefaultPollInterval = 3 * time.Second
	DefaultMaxAttempts  = 5
)

// Config for the VirusTotal client.
type Config struct {
	common.BaseConfig
	BaseURL string
}

// Client implements ports.ReputationService.
type Client struct {
	common.BaseReputationSource
	baseURL string
}

// submitResponse es la respuesta de POST /api/v3/urls.
type submitResponse struct {
	Data struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"data"`
}

// analysisResponse es la respuesta de GET /api/v3/analyses/{id}.
type analysisResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Status string         `json:"status"`
			Stats  map[string]int `json:"stats"`
		} `json:"attributes"`
	} `json:"data"`
}

// New creates a new VirusTotal client. Zero config values take the defaults.
func New(cfg Config, logger logx.Logger) *Client {
	cfg.ServiceName = ServiceName
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultInitialDelay
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}

	return &Client{
		BaseReputationSource: common.NewBaseReputationSource(logger, cfg.BaseConfig),
		baseURL:              strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// Check envía target y espera a que el análisis termine.
func (c *Client) Check(ctx context.Context, target string) domain.ReputationReport {
	if report, missing := c.KeyMissing(); missing {
		return report
	}

	report := c.NewReport()
	report.Link = GUILink(target)
	headers := map[string]string{"x-apikey": c.APIKey()}

	analysisID, err := c.submit(ctx, target, headers)
	if err != nil {
		return c.Fail(report, err)
	}
	report.ScanID = analysisID

	var stats map[string]int
	ready := c.Poll(ctx, &report, func(ctx context.Context, attempt int) (bool, error) {
		analysis, err := c.fetch(ctx, analysisID, headers)
		if err != nil {
			return false, err
		}
		c.Logger().Debug("analysis status", "attempt", attempt, "status", analysis.Data.Attributes.Status)
		if analysis.Data.Attributes.Status != statusCompleted {
			return false, nil
		}
		stats = analysis.Data.Attributes.Stats
		return true, nil
	})
	if !ready {
		return report
	}

	if stats == nil {
		stats = map[string]int{}
	}
	report.Stats = stats
	report.Malicious = stats["malicious"]

	c.Logger().Info("analysis completed",
		"analysis_id", analysisID,
		"malicious", report.Malicious,
	)
	return report
}

// submit registra la URL y retorna el id del análisis.
func (c *Client) submit(ctx context.Context, target string, headers map[string]string) (string, error) {
	form := url.Values{"url": {target}}

	resp, err := c.HTTP().PostForm(ctx, c.baseURL+"/api/v3/urls", form, headers)
	if err != nil {
		return "", errors.Wrap(err, "submit failed")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return "", common.StatusError("submit", resp)
	}

	var out submitResponse
	if err := httpclient.DecodeJSON(resp, &out); err != nil {
		return "", errors.Wrap(err, "submit failed")
	}
	if out.Data.ID == "" {
		return "", errors.Wrap(errors.ErrInvalidResponse, "submit failed: missing analysis id")
	}
	return out.Data.ID, nil
}

// fetch consulta el estado del análisis.
func (c *Client) fetch(ctx context.Context, analysisID string, headers map[string]string) (*analysisResponse, error) {
	resp, err := c.HTTP().GetJSON(ctx, c.baseURL+"/api/v3/analyses/"+url.PathEscape(analysisID), headers)
	if err != nil {
		return nil, errors.Wrap(err, "fetch failed")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, common.StatusError("fetch", resp)
	}

	var out analysisResponse
	if err := httpclient.DecodeJSON(resp, &out); err != nil {
		return nil, errors.Wrap(err, "fetch failed")
	}
	return &out, nil
}

// GUILink es el enlace público al reporte de la URL (id = base64url sin padding).
func GUILink(target string) string {
	id := base64.RawURLEncoding.EncodeToString([]byte(target))
	return strings.Replace(guiURLFormat, "%s", id, 1)
}
