// Package urlscan submits URLs to urlscan.io and collects the scan verdict.
package urlscan

import (
	"context"
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
	ServiceName = "URLScan"

	// DefaultBaseURL of the API.
	DefaultBaseURL = "https://urlscan.io"

	visibilityPublic = "public"
)

// Defaults.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultInitialDelay = 5 * time.Second
	DefaultPollInterval = 5 * time.Second
	DefaultMaxAttempts  = 6
)

// Config for the urlscan client.
type Config struct {
	common.BaseConfig
	BaseURL string
}

// Client implements ports.ReputationService.
type Client struct {
	common.BaseReputationSource
	baseURL string
}

type submitRequest struct {
	URL        string `json:"url"`
	Visibility string `json:"visibility"`
}

type submitResponse struct {
	UUID    string `json:"uuid"`
	Result  string `json:"result"`
	Message string `json:"message"`
}

// resultResponse contiene solo los campos usados de /api/v1/result/{uuid}/.
type resultResponse struct {
	Task struct {
		ReportURL     string `json:"reportURL"`
		ScreenshotURL string `json:"screenshotURL"`
	} `json:"task"`
	Page struct {
		Domain  string `json:"domain"`
		IP      string `json:"ip"`
		Country string `json:"country"`
	} `json:"page"`
	Verdicts struct {
		Overall struct {
			Score     int  `json:"score"`
			Malicious bool `json:"malicious"`
		} `json:"overall"`
		Engines struct {
			MaliciousTotal int `json:"maliciousTotal"`
		} `json:"engines"`
	} `json:"verdicts"`
}

// New creates a new urlscan client. Zero config values take the defaults.
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

// Check envía target a urlscan.io y espera el resultado.
func (c *Client) Check(ctx context.Context, target string) domain.ReputationReport {
	if report, missing := c.KeyMissing(); missing {
		return report
	}

	report := c.NewReport()
	headers := map[string]string{"API-Key": c.APIKey()}

	submitted, err := c.submit(ctx, target, headers)
	if err != nil {
		return c.Fail(report, err)
	}
	report.ScanID = submitted.UUID
	report.Link = submitted.Result

	var result *resultResponse
	ready := c.Poll(ctx, &report, func(ctx context.Context, attempt int) (bool, error) {
		res, found, err := c.fetch(ctx, submitted.UUID, headers)
		if err != nil {
			return false, err
		}
		if !found {
			c.Logger().Debug("scan not ready yet", "attempt", attempt)
			return false, nil
		}
		result = res
		return true, nil
	})
	if !ready {
		return report
	}

	applyResult(&report, result)

	c.Logger().Info("scan completed",
		"uuid", submitted.UUID,
		"malicious", report.Malicious,
	)
	return report
}

// applyResult copia el veredicto y los datos de la página al reporte.
func applyResult(report *domain.ReputationReport, res *resultResponse) {
	malicious := res.Verdicts.Engines.MaliciousTotal
	if malicious == 0 && res.Verdicts.Overall.Malicious {
		malicious = 1
	}

	report.Malicious = malicious
	report.Stats = map[string]int{
		"malicious":     malicious,
		"verdict_score": res.Verdicts.Overall.Score,
	}
	if res.Task.ReportURL != "" {
		report.Link = res.Task.ReportURL
	}
	report.Extra = map[string]any{
		"page_domain":   res.Page.Domain,
		"page_ip":       res.Page.IP,
		"page_country":  res.Page.Country,
		"verdict_score": res.Verdicts.Overall.Score,
		"screenshot":    res.Task.ScreenshotURL,
		"report_url":    res.Task.ReportURL,
	}
}

// submit registra el escaneo. urlscan responde 200 o 201 según la versión.
func (c *Client) submit(ctx context.Context, target string, headers map[string]string) (*submitResponse, error) {
	payload := submitRequest{URL: target, Visibility: visibilityPublic}

	resp, err := c.HTTP().PostJSON(ctx, c.baseURL+"/api/v1/scan/", payload, headers)
	if err != nil {
		return nil, errors.Wrap(err, "submit failed")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		return nil, common.StatusError("submit", resp)
	}

	var out submitResponse
	if err := httpclient.DecodeJSON(resp, &out); err != nil {
		return nil, errors.Wrap(err, "submit failed")
	}
	if out.UUID == "" {
		return nil, errors.Wrap(errors.ErrInvalidResponse, "submit failed: missing scan uuid")
	}
	return &out, nil
}

// fetch consulta el resultado. found=false mientras el escaneo no termina (404).
func (c *Client) fetch(ctx context.Context, uuid string, headers map[string]string) (*resultResponse, bool, error) {
	resp, err := c.HTTP().GetJSON(ctx, c.baseURL+"/api/v1/result/"+url.PathEscape(uuid)+"/", headers)
	if err != nil {
		return nil, false, errors.Wrap(err, "result failed")
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, false, nil
	case http.StatusOK:
		var out resultResponse
		if err := httpclient.DecodeJSON(resp, &out); err != nil {
			return nil, false, errors.Wrap(err, "result failed")
		}
		return &out, true, nil
	default:
		resp.Body.Close()
		return nil, false, common.StatusError("result", resp)
	}
}
