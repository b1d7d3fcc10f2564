package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

var projectIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

const maxBodyBytes = 8 << 20

type sanityClient struct {
	projectID  string
	dataset    string
	apiVersion string
	token      string
	useCDN     bool
	baseURL    string
	query      string
	httpClient *http.Client
	now        func() time.Time
	log        logger.Logger
}

type Option func(*sanityClient)

func WithHTTPClient(c *http.Client) Option {
	return func(s *sanityClient) { s.httpClient = c }
}

// WithBaseURL replaces the per-project Sanity host, e.g. with a test server.
func WithBaseURL(u string) Option {
	return func(s *sanityClient) { s.baseURL = strings.TrimRight(u, "/") }
}

func WithClock(now func() time.Time) Option {
	return func(s *sanityClient) { s.now = now }
}

// NewSanityClient returns a portfolio.Source reading the Sanity query API. The project id
// is checked on every fetch, not here.
func NewSanityClient(cfg config.Config, log logger.Logger, opts ...Option) portfolio.Source {
	c := &sanityClient{
		projectID:  strings.TrimSpace(cfg.Content.ProjectID),
		dataset:    cfg.Content.Dataset,
		apiVersion: strings.TrimPrefix(cfg.Content.APIVersion, "v"),
		token:      cfg.Content.Token,
		useCDN:     cfg.Content.UseCDN,
		query:      BuildQuery(portfolio.Tables()...),
		httpClient: http.DefaultClient,
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *sanityClient) endpoint() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	host := "api"
	if c.useCDN {
		host = "apicdn"
	}
	return fmt.Sprintf("https://%s.%s.sanity.io", c.projectID, host)
}

// FetchSnapshot issues exactly one query request. It never retries.
func (c *sanityClient) FetchSnapshot(ctx context.Context) (*portfolio.Snapshot, error) {
	if !projectIDPattern.MatchString(c.projectID) {
		return nil, apperror.NewConfigurationInvalid(
			fmt.Sprintf("content project id %q must contain only a-z, 0-9 and dashes", c.projectID), nil)
	}

	ctx, span := otel.Tracer("content").Start(ctx, "SanityQuery")
	defer span.End()
	span.SetAttributes(
		attribute.String("sanity.project_id", c.projectID),
		attribute.String("sanity.dataset", c.dataset),
	)

	raw, err := c.do(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sanity query failed")
		c.log.Error("Sanity query failed", err, zap.String("project_id", c.projectID))
		return nil, apperror.NewFetchFailed(err.Error(), err)
	}

	snapshot, err := portfolio.Normalize(raw, c.now())
	if errors.Is(err, portfolio.ErrMalformedDocument) {
		return nil, apperror.NewFetchFailed("sanity returned an unreadable result", err)
	}
	return snapshot, err
}

func (c *sanityClient) do(ctx context.Context) ([]byte, error) {
	u := fmt.Sprintf("%s/v%s/data/query/%s?query=%s",
		c.endpoint(), c.apiVersion, url.PathEscape(c.dataset), url.QueryEscape(c.query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build sanity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read sanity response: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("sanity response too large: over %d bytes", maxBodyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("sanity responded %d: %s", resp.StatusCode, errorMessage(body, resp.Status))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("sanity response is not JSON")
	}
	result := gjson.GetBytes(body, "result")
	if !result.Exists() {
		if gjson.GetBytes(body, "error").Exists() {
			return nil, fmt.Errorf("sanity query error: %s", errorMessage(body, "unknown error"))
		}
		return []byte("null"), nil
	}
	return []byte(result.Raw), nil
}

func errorMessage(body []byte, fallback string) string {
	for _, path := range []string{"error.description", "message", "error"} {
		if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.String() != "" {
			return r.String()
		}
	}
	return fallback
}
