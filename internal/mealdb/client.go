package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // thumbnail decoders
	_ "image/png"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"mealmate/internal/logging"
	"mealmate/internal/model"
)

// DefaultBaseURL is the public TheMealDB v1 endpoint with the shared test key.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1/"

// DefaultTimeout applies to each of the connect, read and write phases.
const DefaultTimeout = 15 * time.Second

const maxImageBytes = 8 << 20

// Endpoint names a path under the base URL.
type Endpoint string

const (
	EndpointSearch     Endpoint = "search.php"
	EndpointLookup     Endpoint = "lookup.php"
	EndpointRandom     Endpoint = "random.php"
	EndpointCategories Endpoint = "categories.php"
	EndpointList       Endpoint = "list.php"
	EndpointFilter     Endpoint = "filter.php"
)

// MealsEnvelope wraps every meal-shaped response. Meals is nil when upstream sends null.
type MealsEnvelope struct {
	Meals []model.Meal `json:"meals"`
}

// CategoriesEnvelope wraps categories.php.
type CategoriesEnvelope struct {
	Categories []model.Category `json:"categories"`
}

// AreasEnvelope wraps list.php?a=list, which reuses the "meals" key.
type AreasEnvelope struct {
	Meals []model.AreaItem `json:"meals"`
}

// API is the set of upstream operations the repository depends on.
type API interface {
	SearchByName(ctx context.Context, name string) (*MealsEnvelope, error)
	ListByFirstLetter(ctx context.Context, letter string) (*MealsEnvelope, error)
	LookupByID(ctx context.Context, id string) (*MealsEnvelope, error)
	Random(ctx context.Context) (*MealsEnvelope, error)
	Categories(ctx context.Context) (*CategoriesEnvelope, error)
	Areas(ctx context.Context) (*AreasEnvelope, error)
	FilterByIngredient(ctx context.Context, ingredient string) (*MealsEnvelope, error)
	FilterByCategory(ctx context.Context, category string) (*MealsEnvelope, error)
	FilterByArea(ctx context.Context, area string) (*MealsEnvelope, error)
}

// Client issues requests against TheMealDB.
type Client struct {
	baseURL    string
	userAgent  string
	connect    time.Duration
	read       time.Duration
	write      time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client built from the timeouts.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeouts sets the connect, read and write timeouts. Non-positive values keep the default.
func WithTimeouts(connect, read, write time.Duration) Option {
	return func(c *Client) {
		if connect > 0 {
			c.connect = connect
		}
		if read > 0 {
			c.read = read
		}
		if write > 0 {
			c.write = write
		}
	}
}

// WithLogger attaches a logger for per-request debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("mealdb base url required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mealdb base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("mealdb base url must be http(s), got %q", baseURL)
	}

	client := &Client{
		baseURL:   strings.TrimRight(baseURL, "/") + "/",
		userAgent: "mealmate",
		connect:   DefaultTimeout,
		read:      DefaultTimeout,
		write:     DefaultTimeout,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = newHTTPClient(client.connect, client.read, client.write)
	}
	return client, nil
}

// newHTTPClient maps the three phase timeouts onto net/http. net/http has no
// per-write deadline, so the write budget is folded into the overall limit.
func newHTTPClient(connect, read, write time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: connect, KeepAlive: 30 * time.Second}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   connect,
		ResponseHeaderTimeout: read,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   connect + read + write,
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET against endpoint with params and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, endpoint Endpoint, params map[string]string, out any) error {
	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	target := c.baseURL + string(endpoint)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	body, status, latency, err := c.fetch(ctx, target)
	logger := logging.WithContext(ctx, c.logger)
	if err != nil {
		logger.Debug("mealdb request failed",
			slog.String("endpoint", string(endpoint)),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.String("error", err.Error()),
		)
		if status != 0 {
			return fmt.Errorf("%w: %w", ErrNetwork, &StatusError{Endpoint: endpoint, StatusCode: status})
		}
		return fmt.Errorf("%w: %s: %w", ErrNetwork, endpoint, err)
	}
	logger.Debug("mealdb request",
		slog.String("endpoint", string(endpoint)),
		slog.String("query", query.Encode()),
		slog.Int("status", status),
		slog.Duration("latency", latency),
		slog.String("bytes", humanize.Bytes(uint64(len(body)))),
	)

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, endpoint, err)
	}
	return nil
}

// fetch returns a non-zero status alongside an error only for non-2xx responses.
func (c *Client) fetch(ctx context.Context, target string) ([]byte, int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return nil, 0, latency, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, latency, fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, time.Since(start), fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, time.Since(start), nil
}

func (c *Client) meals(ctx context.Context, endpoint Endpoint, params map[string]string) (*MealsEnvelope, error) {
	var envelope MealsEnvelope
	if err := c.Get(ctx, endpoint, params, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// SearchByName searches meals whose name contains name.
func (c *Client) SearchByName(ctx context.Context, name string) (*MealsEnvelope, error) {
	return c.meals(ctx, EndpointSearch, map[string]string{"s": name})
}

// ListByFirstLetter lists meals whose name starts with letter.
func (c *Client) ListByFirstLetter(ctx context.Context, letter string) (*MealsEnvelope, error) {
	return c.meals(ctx, EndpointSearch, map[string]string{"f": letter})
}

// LookupByID fetches the full record for id.
func (c *Client) LookupByID(ctx context.Context, id string) (*MealsEnvelope, error) {
	return c.meals(ctx, EndpointLookup, map[string]string{"i": id})
}

// Random fetches one random meal.
func (c *Client) Random(ctx context.Context) (*MealsEnvelope, error) {
	return c.meals(ctx, EndpointRandom, nil)
}

// Categories lists every meal category.
func (c *Client) Categories(ctx context.Context) (*CategoriesEnvelope, error) {
	var envelope CategoriesEnvelope
	if err := c.Get(ctx, EndpointCategories, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// Areas lists every cuisine area.
func (c *Client) Areas(ctx context.Context) (*AreasEnvelope, error) {
	var envelope AreasEnvelope
	if err := c.Get(ctx, EndpointList, map[string]string{"a": "list"}, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// FilterByIngredient lists meals using ingredient. Filter results only carry id, name and thumbnail.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) (*MealsEnvelope, error) {
	return c.meals(ctx, EndpointFilter, map[string]string{"i": ingredient})
}

// FilterByCategory lists meals in category.
func (c *Client) FilterByCategory(ctx context.Context, category string) (*MealsEnvelope, error) {
	return c.meals(ctx, EndpointFilter, map[string]string{"c": category})
}

// FilterByArea lists meals from area.
func (c *Client) FilterByArea(ctx context.Context, area string) (*MealsEnvelope, error) {
	return c.meals(ctx, EndpointFilter, map[string]string{"a": area})
}

// FetchImage downloads and decodes a JPEG or PNG thumbnail through the shared transport.
func (c *Client) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, fmt.Errorf("%w: empty image url", ErrNetwork)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build image request: %w", ErrNetwork, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: image: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: image returned %d", ErrNetwork, resp.StatusCode)
	}

	counter := &countingReader{r: io.LimitReader(resp.Body, maxImageBytes)}
	img, format, err := image.Decode(counter)
	if err != nil {
		return nil, fmt.Errorf("%w: image: %w", ErrDecode, err)
	}
	logging.WithContext(ctx, c.logger).Debug("thumbnail fetched",
		slog.String("format", format),
		slog.String("bytes", humanize.Bytes(uint64(counter.n))),
		slog.Duration("latency", time.Since(start)),
	)
	return img, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
