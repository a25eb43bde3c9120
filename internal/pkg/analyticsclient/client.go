// Package analyticsclient queries a Flipt server's analytics API for flag
// evaluation counts.
package analyticsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/logger"
	"github.com/tegorov/flipt/internal/pkg/version"
)

// Default client settings
const (
	DefaultTimeout      = 10 * time.Second
	DefaultRetries      = 3
	DefaultRetryWaitMin = 250 * time.Millisecond
	DefaultRetryWaitMax = 2 * time.Second

	// maxErrorBody bounds how much of a failed response is kept in errors
	maxErrorBody = 512
)

// ErrNotFound is returned when the namespace or flag does not exist.
var ErrNotFound = errors.New("flag or namespace not found")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("analytics API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("analytics API returned %d: %s", e.StatusCode, e.Body)
}

// Is reports 404 responses as ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Config holds client settings.
type Config struct {
	Address      string // Flipt base URL, e.g. http://localhost:8080
	Timeout      time.Duration
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client implements analytics.Querier over HTTP.
type Client struct {
	baseURL *url.URL
	http    *retryablehttp.Client
}

var _ analytics.Querier = (*Client)(nil)

// New creates a client for the server at cfg.Address.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Address) == "" {
		return nil, fmt.Errorf("analytics address is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.Address, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid analytics address %q: %w", cfg.Address, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid analytics address %q: scheme must be http or https", cfg.Address)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = DefaultRetryWaitMin
	}
	if cfg.RetryWaitMax <= 0 {
		cfg.RetryWaitMax = DefaultRetryWaitMax
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.Retries
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = retryLogger{}
	// Hand the last response back instead of a generic "giving up" error so
	// the status and body reach the caller
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{baseURL: base, http: rc}, nil
}

// evaluationsURL is the Flipt analytics route for one flag.
func (c *Client) evaluationsURL(q analytics.Query) string {
	u := c.baseURL.JoinPath("api/v1/analytics/namespaces", url.PathEscape(q.NamespaceKey), "flags", url.PathEscape(q.FlagKey))

	params := url.Values{}
	params.Set("from", q.From)
	params.Set("to", q.To)
	u.RawQuery = params.Encode()
	return u.String()
}

type evaluationsResponse struct {
	Timestamps []string  `json:"timestamps"`
	Values     []float64 `json:"values"`
}

// GetFlagEvaluationsCount fetches the evaluation-count series for q.
func (c *Client) GetFlagEvaluationsCount(ctx context.Context, q analytics.Query) (*analytics.EvaluationSeries, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.evaluationsURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-Id", requestID)

	logger.DebugContext(ctx, "querying flag evaluation count",
		"request_id", requestID,
		"namespace", q.NamespaceKey,
		"flag", q.FlagKey,
		"from", q.From,
		"to", q.To)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analytics request %s failed: %w", requestID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var out evaluationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode analytics response: %w", err)
	}

	series := analytics.SeriesOrEmpty(&analytics.EvaluationSeries{
		Timestamps: out.Timestamps,
		Values:     out.Values,
	})
	return &series, nil
}

// retryLogger routes retryablehttp's leveled logging through the shared
// logger, resolving it per call so Disable/Enable take effect.
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.Error(msg, keysAndValues...)
}

func (retryLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug(msg, keysAndValues...)
}

func (retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.Debug(msg, keysAndValues...)
}

func (retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.Warn(msg, keysAndValues...)
}
