package directions

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/theoremus-urban-solutions/arnav/internal/logging"
	"github.com/theoremus-urban-solutions/arnav/route"
)

// DefaultBaseURL is the directions endpoint used when none is configured.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/directions/json"

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string
	// Mode is the travel mode; walking when empty.
	Mode    string
	Timeout time.Duration
	Cache   *Cache
	Logger  *slog.Logger
}

// Client fetches walking directions over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	mode       string
	cache      *Cache
	logger     *slog.Logger
}

// NewClient creates a new directions client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Mode == "" {
		opts.Mode = "walking"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		mode:       opts.Mode,
		cache:      opts.Cache,
		logger:     opts.Logger,
	}
}

// RequestURL returns the request URL for a route from origin to destination.
func (c *Client) RequestURL(origin, destination route.Point) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lon))
	q.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lon))
	q.Set("mode", c.mode)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch fetches the raw directions document.
func (c *Client) Fetch(ctx context.Context, origin, destination route.Point) ([]byte, error) {
	reqURL, err := c.RequestURL(origin, destination)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from directions endpoint", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Route returns the first leg from origin to destination, served from the
// cache when possible.
func (c *Client) Route(ctx context.Context, origin, destination route.Point) (Leg, error) {
	key := Key(origin, destination)
	if c.cache != nil {
		if e, ok := c.cache.Get(key); ok {
			c.logger.Debug("directions cache hit", "key", key)
			return e.Leg, nil
		}
	}

	data, err := c.Fetch(ctx, origin, destination)
	if err != nil {
		return Leg{}, err
	}
	leg, err := ParseSteps(data)
	if err != nil {
		return Leg{}, err
	}
	c.logger.Info("directions fetched", "steps", len(leg.Steps))

	if c.cache != nil {
		if err := c.cache.Put(key, Entry{Leg: leg, FetchedAt: time.Now()}); err != nil {
			c.logger.Warn("directions cache write failed", "error", err)
		}
	}
	return leg, nil
}
