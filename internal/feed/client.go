package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
)

// maxBodyBytes bounds how much of a feed response is read
const maxBodyBytes = 8 << 20

// Config configures the HTTP feed client
type Config struct {
	EventsURL     string
	ProductsURL   string
	EventDays     int
	Timeout       time.Duration
	CacheTTL      time.Duration
	Sensor        string
	DataType      string
	Product       string
	ProductWindow time.Duration
}

// DefaultConfig returns the public NASA endpoints
func DefaultConfig() Config {
	return Config{
		EventsURL:     DefaultEventsURL,
		ProductsURL:   DefaultProductsURL,
		EventDays:     DefaultEventDays,
		Timeout:       DefaultTimeout,
		CacheTTL:      DefaultCacheTTL,
		Sensor:        DefaultSensor,
		DataType:      DefaultDataType,
		Product:       DefaultProduct,
		ProductWindow: DefaultProductWindow,
	}
}

// Client fetches both feeds over HTTP, caching successful responses
type Client struct {
	config     Config
	httpClient *http.Client
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewClient creates a feed client; zero config values fall back to the defaults
func NewClient(config Config, logger *slog.Logger) *Client {
	def := DefaultConfig()
	if config.EventsURL == "" {
		config.EventsURL = def.EventsURL
	}
	if config.ProductsURL == "" {
		config.ProductsURL = def.ProductsURL
	}
	if config.EventDays <= 0 {
		config.EventDays = def.EventDays
	}
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = def.CacheTTL
	}
	if config.Sensor == "" {
		config.Sensor = def.Sensor
	}
	if config.DataType == "" {
		config.DataType = def.DataType
	}
	if config.Product == "" {
		config.Product = def.Product
	}
	if config.ProductWindow <= 0 {
		config.ProductWindow = def.ProductWindow
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		cache:      cache.New(config.CacheTTL, config.CacheTTL*2),
		logger:     logger.With("component", "feed"),
	}
}

// Config returns the effective configuration
func (c *Client) Config() Config {
	return c.config
}

type eventsResponse struct {
	Events []json.RawMessage `json:"events"`
}

type cachedEvents struct {
	events    []models.EnvironmentalEvent
	malformed int
}

type filesResponse struct {
	Files []json.RawMessage `json:"files"`
}

// EventsURL builds the event query for a region: bbox is lonMin,latMin,lonMax,latMax
func (c *Client) EventsURL(region spatial.Region) string {
	latMin, latMax := region.LatRange()
	lonMin, lonMax := region.LonRange()

	q := url.Values{}
	q.Set("bbox", fmt.Sprintf("%s,%s,%s,%s", ftoa(lonMin), ftoa(latMin), ftoa(lonMax), ftoa(latMax)))
	q.Set("days", strconv.Itoa(c.config.EventDays))
	return c.config.EventsURL + "?" + q.Encode()
}

// ProductsURL builds the product search for the window ending at now
func (c *Client) ProductsURL(now time.Time) string {
	q := url.Values{}
	q.Set("sensor", c.config.Sensor)
	q.Set("dtype", c.config.DataType)
	q.Set("prd", c.config.Product)
	q.Set("start", now.Add(-c.config.ProductWindow).UTC().Format(time.DateOnly))
	q.Set("end", now.UTC().Format(time.DateOnly))
	return c.config.ProductsURL + "?" + q.Encode()
}

// FetchEvents retrieves the events inside the region
func (c *Client) FetchEvents(ctx context.Context, region spatial.Region) EventResult {
	u := c.EventsURL(region)
	if cached, found := c.cache.Get(u); found {
		if hit, ok := cached.(cachedEvents); ok {
			c.logger.Debug("event feed cache hit", "events", len(hit.events))
			return EventResult{Events: hit.events, Malformed: hit.malformed, OK: true, Cached: true}
		}
	}

	body, err := c.get(ctx, u)
	if err != nil {
		c.logger.Warn("event feed unavailable", "error", err)
		return EventResult{Reason: err.Error()}
	}

	var resp eventsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("event feed returned malformed JSON", "error", err)
		return EventResult{Reason: fmt.Sprintf("decode events: %v", err)}
	}

	events, malformed := decodeEvents(resp.Events)
	if malformed > 0 {
		c.logger.Warn("skipped undecodable events", "events", malformed)
	}

	c.cache.Set(u, cachedEvents{events: events, malformed: malformed}, cache.DefaultExpiration)
	c.logger.Info("fetched environmental events", "events", len(events))
	return EventResult{Events: events, Malformed: malformed, OK: true}
}

// decodeEvents decodes each event on its own so one bad entry only loses itself
func decodeEvents(raw []json.RawMessage) ([]models.EnvironmentalEvent, int) {
	events := make([]models.EnvironmentalEvent, 0, len(raw))
	malformed := 0
	for _, r := range raw {
		var e models.EnvironmentalEvent
		if err := json.Unmarshal(r, &e); err != nil {
			malformed++
			continue
		}
		events = append(events, e)
	}
	return events, malformed
}

// CountProducts counts the ocean-colour files available in the window ending at now.
// An empty body counts as zero files.
func (c *Client) CountProducts(ctx context.Context, now time.Time) ProductResult {
	u := c.ProductsURL(now)
	if cached, found := c.cache.Get(u); found {
		if count, ok := cached.(int); ok {
			return ProductResult{Count: count, OK: true, Cached: true}
		}
	}

	body, err := c.get(ctx, u)
	if err != nil {
		c.logger.Warn("product feed unavailable", "error", err)
		return ProductResult{Reason: err.Error()}
	}

	count := 0
	if len(body) > 0 {
		var resp filesResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			c.logger.Warn("product feed returned malformed JSON", "error", err)
			return ProductResult{Reason: fmt.Sprintf("decode products: %v", err)}
		}
		count = len(resp.Files)
	}

	c.cache.Set(u, count, cache.DefaultExpiration)
	c.logger.Info("counted ocean colour products", "files", count)
	return ProductResult{Count: count, OK: true}
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
