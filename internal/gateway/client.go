// Package gateway provides a gateway to the scan backend REST API,
// abstracting away the HTTP client, authentication, and payload envelopes.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/mkamada/scanboard/internal/domain"
)

// RawTechnicalDebt is the backend's outstanding-findings block used to
// derive the technical-debt estimate.
type RawTechnicalDebt struct {
	CriticalCount        int `json:"critical_count"`
	HighCount            int `json:"high_count"`
	MediumCount          int `json:"medium_count"`
	LowCount             int `json:"low_count"`
	TotalVulnerabilities int `json:"total_vulnerabilities"`
}

// RawCodeQualityMetrics mirrors the backend code_quality_metrics group.
type RawCodeQualityMetrics struct {
	CoveragePercent    *float64          `json:"coverage_percent"`
	DuplicationPercent *float64          `json:"duplication_percent"`
	Maintainability    string            `json:"maintainability"`
	LinesOfCode        int               `json:"lines_of_code"`
	TechnicalDebt      *RawTechnicalDebt `json:"technical_debt"`
}

// RawOwaspCategory is one entry of the backend OWASP analysis.
type RawOwaspCategory struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Severity string `json:"severity"`
}

// RawSecurityMetrics mirrors the backend security_metrics group.
type RawSecurityMetrics struct {
	RiskLevel            string             `json:"risk_level"`
	TotalVulnerabilities int                `json:"total_vulnerabilities"`
	OwaspTop10           []RawOwaspCategory `json:"owasp_top_10"`
}

// RawTrendPoint is one backend vulnerability_trends sample.
type RawTrendPoint struct {
	Date     string `json:"date"`
	Critical int    `json:"critical"`
	High     int    `json:"high"`
	Medium   int    `json:"medium"`
	Low      int    `json:"low"`
	Total    int    `json:"total"`
}

// RawTeamMetrics mirrors the backend team_metrics group.
type RawTeamMetrics struct {
	ActiveDevelopers   int     `json:"active_developers"`
	ScansPerWeek       float64 `json:"scans_per_week"`
	AvgRemediationDays float64 `json:"avg_remediation_days"`
}

// RawSecurityOverview is the untransformed security-overview payload.
// Any group may be absent; the metrics transformer defaults it.
type RawSecurityOverview struct {
	SecurityMetrics     *RawSecurityMetrics    `json:"security_metrics"`
	CodeQualityMetrics  *RawCodeQualityMetrics `json:"code_quality_metrics"`
	VulnerabilityTrends []RawTrendPoint        `json:"vulnerability_trends"`
	ComplianceScores    map[string]float64     `json:"compliance_scores"`
	TeamMetrics         *RawTeamMetrics        `json:"team_metrics"`
}

// Fetcher defines the behavior of a gateway for fetching dashboard inputs
// from the backend.
type Fetcher interface {
	FetchRepositories(ctx context.Context) ([]domain.Repository, error)
	FetchCustomScans(ctx context.Context) ([]domain.CustomScanResult, error)
	FetchSecurityOverview(ctx context.Context, window domain.TimeFilter, repoSelector string) (RawSecurityOverview, error)
}

// Client is the concrete implementation of the Fetcher interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userID     int64
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Options tunes the backend client.
type Options struct {
	// UserID is the authenticated user's id. When non-zero, payloads owned
	// by a different user are discarded as empty.
	UserID int64
	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration
	// RequestsPerSecond throttles outgoing calls. Zero means 10 rps.
	RequestsPerSecond float64
	// Burst is the limiter burst size. Zero means 5.
	Burst int
}

// NewClient is a constructor that creates a new backend Client authenticated
// with the given bearer token.
func NewClient(baseURL, token string, opts Options, logger *zap.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if token == "" {
		return nil, fmt.Errorf("backend API token is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Timeout: opts.Timeout,
		Transport: &oauth2.Transport{
			Base:   http.DefaultTransport,
			Source: ts,
		},
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     opts.UserID,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		logger:     logger,
	}, nil
}

// repositoriesEnvelope is the wire envelope of GET /api/v1/repositories/.
type repositoriesEnvelope struct {
	UserID       int64               `json:"user_id"`
	Repositories []domain.Repository `json:"repositories"`
}

// customScansEnvelope is the wire envelope of GET /api/v1/scans/custom/.
type customScansEnvelope struct {
	UserID int64                     `json:"user_id"`
	Scans  []domain.CustomScanResult `json:"scans"`
}

// FetchRepositories returns the connected repositories for the
// authenticated user. A payload owned by a different user is discarded and
// an empty list is returned.
func (c *Client) FetchRepositories(ctx context.Context) ([]domain.Repository, error) {
	var env repositoriesEnvelope
	if err := c.get(ctx, "/api/v1/repositories/", nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	if !c.owned(env.UserID) {
		c.logger.Warn("discarding repositories payload with mismatched owner",
			zap.Int64("payload_user_id", env.UserID),
			zap.Int64("authenticated_user_id", c.userID))
		return []domain.Repository{}, nil
	}
	return env.Repositories, nil
}

// FetchCustomScans returns the custom-scan record stream for the
// authenticated user, with the same ownership guard as FetchRepositories.
func (c *Client) FetchCustomScans(ctx context.Context) ([]domain.CustomScanResult, error) {
	var env customScansEnvelope
	if err := c.get(ctx, "/api/v1/scans/custom/", nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch custom scans: %w", err)
	}
	if !c.owned(env.UserID) {
		c.logger.Warn("discarding custom scans payload with mismatched owner",
			zap.Int64("payload_user_id", env.UserID),
			zap.Int64("authenticated_user_id", c.userID))
		return []domain.CustomScanResult{}, nil
	}
	return env.Scans, nil
}

// FetchSecurityOverview returns the raw advanced-metrics payload for the
// given window and repository selection.
func (c *Client) FetchSecurityOverview(ctx context.Context, window domain.TimeFilter, repoSelector string) (RawSecurityOverview, error) {
	query := url.Values{}
	query.Set("time_range", window.QueryValue())
	query.Set("include_trends", "true")
	if repoSelector != "" && repoSelector != domain.AllRepositories {
		query.Set("repository_id", repoSelector)
	}
	var overview RawSecurityOverview
	if err := c.get(ctx, "/api/v1/metrics/security-overview", query, &overview); err != nil {
		return RawSecurityOverview{}, fmt.Errorf("failed to fetch security overview: %w", err)
	}
	return overview, nil
}

func (c *Client) owned(payloadUserID int64) bool {
	return c.userID == 0 || payloadUserID == c.userID
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait aborted: %w", err)
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("backend request", zap.String("url", u))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend returned %s for %s", resp.Status, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
