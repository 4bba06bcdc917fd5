package apifootball

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/charleschow/loteca-pipeline/internal/telemetry"
)

const (
	DefaultHost    = "api-football-v1.p.rapidapi.com"
	DefaultBaseURL = "https://api-football-v1.p.rapidapi.com/v3"
)

// ErrMissingKey is returned before any request when no RapidAPI key is set.
var ErrMissingKey = errors.New("rapidapi key missing")

type Options struct {
	BaseURL string
	Host    string
	Key     string
	Timeout time.Duration
	RPS     int
}

// Client talks to API-Football through RapidAPI.
type Client struct {
	baseURL    string
	host       string
	key        string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.RPS <= 0 {
		opts.RPS = 5
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		host:       strings.TrimSpace(opts.Host),
		key:        strings.TrimSpace(opts.Key),
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RPS), opts.RPS),
	}
}

func (c *Client) HasKey() bool { return c.key != "" }

func (c *Client) Host() string { return c.host }

// Get issues GET {baseURL}/{endpoint}?params and returns the body and status.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, int, error) {
	body, status, _, err := c.get(ctx, endpoint, params)
	return body, status, err
}

// get also reports the round-trip time, which excludes the limiter wait.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, int, time.Duration, error) {
	if c.key == "" {
		return nil, 0, 0, ErrMissingKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.key)
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.Metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, 0, 0, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, 0, fmt.Errorf("read response: %w", err)
	}
	elapsed := time.Since(start)

	telemetry.Metrics.ProviderRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	telemetry.Metrics.ProviderLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	telemetry.Debugf("apifootball: GET %s -> %d (%s)", endpoint, resp.StatusCode, elapsed)

	return body, resp.StatusCode, elapsed, nil
}
