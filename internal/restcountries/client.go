// Package restcountries fetches the country list from the REST Countries API.
package restcountries

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
)

// DefaultURL requests only the fields the dashboard uses; the /all endpoint
// rejects requests without a fields filter.
const DefaultURL = "https://restcountries.com/v3.1/all?fields=name,region,population,area,borders,languages,timezones,latlng"

type Client struct {
	httpClient *http.Client
	url        string
	logger     *zap.Logger
	clock      clockz.Clock
}

// Option customizes a Client.
type Option func(*Client)

// WithURL overrides the endpoint (used in tests and for mirrors).
func WithURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.url = u
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpClient = h } }

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock used to stamp FetchedAt and time requests.
func WithClock(clock clockz.Clock) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewClient returns a client with the given timeout. There is no retry: a
// failed fetch is reported once and the caller degrades to an empty dataset.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        DefaultURL,
		logger:     zap.NewNop(),
		clock:      clockz.RealClock,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// URL returns the endpoint the client fetches.
func (c *Client) URL() string { return c.url }

// FetchRaw downloads and decodes the raw country records. Every failure is a
// *FetchError.
func (c *Client) FetchRaw(ctx context.Context) ([]dataset.RawCountry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "countrydash")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &FetchError{URL: c.url, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	raws, err := dataset.DecodeRaw(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	return raws, nil
}

// Dataset fetches and builds a Dataset. It always returns a usable Dataset:
// on failure it is empty and the error explains why.
func (c *Client) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	start := c.clock.Now()
	c.logger.Debug("fetching countries", zap.String("url", c.url))
	raws, err := c.FetchRaw(ctx)
	if err != nil {
		c.logger.Warn("country fetch failed, continuing with empty dataset",
			zap.String("url", c.url),
			zap.Duration("elapsed", c.clock.Now().Sub(start)),
			zap.Error(err))
		return dataset.Empty(dataset.WithSource(c.url), dataset.WithFetchedAt(c.clock.Now())), err
	}
	ds := dataset.Build(raws, dataset.WithSource(c.url), dataset.WithFetchedAt(c.clock.Now()))
	c.logger.Info("fetched countries",
		zap.String("url", c.url),
		zap.String("dataset_id", ds.ID),
		zap.Int("rows", ds.Len()),
		zap.Duration("elapsed", c.clock.Now().Sub(start)))
	return ds, nil
}
