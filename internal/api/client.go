package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rebeliceyang/lazybrew/internal/filter"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is the public Open Brewery DB breweries endpoint
const DefaultBaseURL = "https://api.openbrewerydb.org/v1/breweries"

// RequestIDHeader tags every outgoing request for log correlation
const RequestIDHeader = "X-Request-ID"

// Client issues read-only GET requests against the breweries API. It holds
// no query state; every method maps to exactly one endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	guard      *RateLimitGuard
	builder    *filter.Builder
	logger     zerolog.Logger
	userAgent  string

	// collapses identical in-flight autocomplete and meta reads
	group singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithGuard sets the rate limit guard
func WithGuard(g *RateLimitGuard) Option {
	return func(c *Client) { c.guard = g }
}

// WithLogger sets the request logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the given base URL
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		guard:      NewRateLimitGuard(DefaultRateLimitThreshold),
		builder:    filter.NewBuilder(),
		logger:     zerolog.Nop(),
		userAgent:  "lazybrew",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Guard returns the client's rate limit guard
func (c *Client) Guard() *RateLimitGuard {
	return c.guard
}

// GetBrewery fetches a single brewery by id
func (c *Client) GetBrewery(ctx context.Context, id string) (models.Brewery, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Brewery{}, errors.New("brewery id is required")
	}

	var b models.Brewery
	if err := c.get(ctx, OpGet, "/"+url.PathEscape(id), nil, &b); err != nil {
		return models.Brewery{}, err
	}
	return b, nil
}

// ListBreweries fetches one page of breweries matching the filter set
func (c *Client) ListBreweries(ctx context.Context, f models.FilterSet) ([]models.Brewery, error) {
	if err := c.builder.Validate(f); err != nil {
		return nil, err
	}

	var out []models.Brewery
	if err := c.get(ctx, OpList, "", c.builder.BuildQuery(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RandomBrewery fetches one random brewery. The endpoint answers with a
// single-element array which is unwrapped here.
func (c *Client) RandomBrewery(ctx context.Context) (models.Brewery, error) {
	var out []models.Brewery
	if err := c.get(ctx, OpRandom, "/random", nil, &out); err != nil {
		return models.Brewery{}, err
	}
	if len(out) == 0 {
		return models.Brewery{}, ErrEmptyRandom
	}
	return out[0], nil
}

// Search runs a free-text search. Callers must not pass blank text.
func (c *Client) Search(ctx context.Context, text string) ([]models.Brewery, error) {
	q := url.Values{}
	q.Set("query", text)

	var out []models.Brewery
	if err := c.get(ctx, OpSearch, "/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Autocomplete returns name suggestions for a partial query
func (c *Client) Autocomplete(ctx context.Context, text string) ([]models.Suggestion, error) {
	q := url.Values{}
	q.Set("query", text)

	v, err, _ := c.group.Do("autocomplete?"+q.Encode(), func() (interface{}, error) {
		var out []models.Suggestion
		if err := c.get(ctx, OpAutocomplete, "/autocomplete", q, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Suggestion), nil
}

// Meta fetches aggregate counts for a partial filter mapping
func (c *Client) Meta(ctx context.Context, params models.MetaParams) (models.MetaSummary, error) {
	q := c.builder.BuildMetaQuery(params)

	v, err, _ := c.group.Do("meta?"+q.Encode(), func() (interface{}, error) {
		var out models.MetaSummary
		if err := c.get(ctx, OpMeta, "/meta", q, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return models.MetaSummary{}, err
	}
	return v.(models.MetaSummary), nil
}

// get performs the request, runs the guard, then decodes the body into out
func (c *Client) get(ctx context.Context, op Operation, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	logger := c.logger.With().
		Str("op", string(op)).
		Str("request_id", requestID).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("url", endpoint).Msg("request failed")
		return fmt.Errorf("error %s: %w", op.verb(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Debug().
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if remaining, ok := c.guard.Check(resp); !ok {
		logger.Warn().Int("remaining", remaining).Msg("rate limit nearly exceeded")
		return &RateLimitError{Remaining: remaining}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}
