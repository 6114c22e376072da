// Package recipes searches TheMealDB and shapes its meal records into
// Recipe values for the recipe browser.
package recipes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"

	apperrors "task-board.com/task-board/internal/errors"
)

const (
	DefaultBaseURL      = "https://www.themealdb.com/api/json/v1/1"
	DefaultQuery        = "chicken"
	DefaultStaleTime    = 10 * time.Minute
	DefaultTimeout      = 10 * time.Second
	DefaultRetries      = 3
	defaultRetryWaitMin = time.Second
	defaultRetryWaitMax = 30 * time.Second
	maxResponseBytes    = 4 << 20
)

type searchResponse struct {
	Meals []meal `json:"meals"`
}

type Client struct {
	http         *retryablehttp.Client
	baseURL      string
	defaultQuery string
	cache        *resultCache
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithDefaultQuery sets the term searched when the caller passes a blank one.
func WithDefaultQuery(query string) Option {
	return func(c *Client) {
		c.defaultQuery = query
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.HTTPClient.Timeout = timeout
	}
}

func WithRetries(retries int) Option {
	return func(c *Client) {
		c.http.RetryMax = retries
	}
}

func WithRetryWait(min, max time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = min
		c.http.RetryWaitMax = max
	}
}

// WithStaleTime sets how long results are served from cache. Zero disables
// caching.
func WithStaleTime(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newResultCache(ttl)
	}
}

func NewClient(opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = DefaultRetries
	rc.RetryWaitMin = defaultRetryWaitMin
	rc.RetryWaitMax = defaultRetryWaitMax
	rc.HTTPClient.Timeout = DefaultTimeout
	rc.Logger = leveledLogger{entry: log.WithField("component", "recipes")}

	c := &Client{
		http:         rc,
		baseURL:      DefaultBaseURL,
		defaultQuery: DefaultQuery,
		cache:        newResultCache(DefaultStaleTime),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns the recipes matching term. A blank term searches the
// default query; no matches yield an empty slice.
func (c *Client) Search(ctx context.Context, term string) ([]Recipe, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		term = c.defaultQuery
	}
	key := strings.ToLower(term)

	if cached, ok := c.cache.get(key); ok {
		return cached, nil
	}

	recipes, err := c.fetch(ctx, term)
	if err != nil {
		return nil, err
	}

	c.cache.put(key, recipes)
	return recipes, nil
}

func (c *Client) fetch(ctx context.Context, term string) ([]Recipe, error) {
	endpoint := c.baseURL + "/search.php?s=" + url.QueryEscape(term)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrRecipeFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrRecipeFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrRecipeFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", apperrors.ErrRecipeFetchFailed, err)
	}

	var payload searchResponse
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", apperrors.ErrRecipeFetchFailed, err)
	}

	recipes := make([]Recipe, 0, len(payload.Meals))
	for _, m := range payload.Meals {
		recipes = append(recipes, m.toRecipe())
	}
	return recipes, nil
}

// leveledLogger routes retryablehttp's logging through logrus.
type leveledLogger struct {
	entry *log.Entry
}

func (l leveledLogger) fields(keysAndValues []interface{}) *log.Entry {
	fields := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Error(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Info(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}
