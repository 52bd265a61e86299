// Package jupiter is a typed client for the Jupiter swap API: quotes, swap
// transactions and swap instructions.
package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shihanhana/jupiter-swap-api-client/internal/metrics"
)

const (
	endpointQuote            = "/quote"
	endpointSwap             = "/swap"
	endpointSwapInstructions = "/swap-instructions"
	endpointHealth           = "/health"
)

// Client calls a Jupiter swap API deployment. It holds no per-call state and is
// safe for concurrent use.
type Client struct {
	basePath string
	http     *http.Client
	log      zerolog.Logger
}

// Option configures Client construction.
type Option func(*Client)

// WithHTTPClient replaces the pooled default transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger attaches a logger for per-call debug events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient returns a client for basePath, e.g. https://quote-api.jup.ag/v6.
func NewClient(basePath string, opts ...Option) *Client {
	c := &Client{
		basePath: strings.TrimSuffix(basePath, "/"),
		http:     &http.Client{Transport: defaultTransport()},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 32
	t.IdleConnTimeout = 30 * time.Second
	t.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 60 * time.Second,
	}).DialContext
	return t
}

// BasePath returns the API root every endpoint is resolved against.
func (c *Client) BasePath() string { return c.basePath }

// Quote fetches a priced route for req.
func (c *Client) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	query, err := req.Values()
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodGet, endpointQuote, query, nil)
	if err != nil {
		return nil, err
	}
	return decode(c, endpointQuote, body, (*quoteResponseWire).quoteResponse)
}

// Swap builds the swap transaction. extraArgs are sent as query parameters.
func (c *Client) Swap(ctx context.Context, req *SwapRequest, extraArgs map[string]string) (*SwapResponse, error) {
	query := url.Values{}
	if err := mergeArgs(query, extraArgs); err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPost, endpointSwap, query, req)
	if err != nil {
		return nil, err
	}
	return decode(c, endpointSwap, body, (*swapResponseWire).swapResponse)
}

// SwapInstructions returns the swap as individual instructions plus the lookup
// tables needed to compile them.
func (c *Client) SwapInstructions(ctx context.Context, req *SwapRequest) (*SwapInstructionsResponse, error) {
	body, err := c.do(ctx, http.MethodPost, endpointSwapInstructions, nil, req)
	if err != nil {
		return nil, err
	}
	return decode(c, endpointSwapInstructions, body, (*swapInstructionsResponseWire).swapInstructionsResponse)
}

// HealthResponse is the service status document, kept schemaless.
type HealthResponse map[string]any

// Health calls GET /health. A non-2xx status is a RequestFailedError.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	body, err := c.do(ctx, http.MethodGet, endpointHealth, nil, nil)
	if err != nil {
		return nil, err
	}
	var out HealthResponse
	if err := json.Unmarshal(body, &out); err != nil {
		metrics.DecodeFailuresTotal.WithLabelValues(endpointHealth).Inc()
		return nil, &ParseError{Target: endpointHealth, Err: err}
	}
	return out, nil
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, payload any) ([]byte, error) {
	u := c.basePath + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("jupiter request failed")
		return nil, &DeserializationError{Err: err}
	}
	defer resp.Body.Close()

	code := strconv.Itoa(resp.StatusCode)
	metrics.RequestsTotal.WithLabelValues(endpoint, code).Inc()
	metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, err := io.ReadAll(resp.Body)
		if err != nil {
			text = nil
		}
		c.log.Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("jupiter request rejected")
		return nil, &RequestFailedError{StatusCode: resp.StatusCode, Body: string(text)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DeserializationError{Err: err}
	}
	c.log.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("request_ms", time.Since(start)).
		Int("bytes", len(body)).
		Msg("jupiter response received")
	return body, nil
}

// decode runs body through the mirror W and converts it to T.
func decode[W any, T any](c *Client, endpoint string, body []byte, convert func(*W) T) (*T, error) {
	start := time.Now()
	var w W
	if err := unmarshalWire(body, &w); err != nil {
		metrics.DecodeFailuresTotal.WithLabelValues(endpoint).Inc()
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("jupiter response rejected")
		return nil, &ParseError{Target: endpoint, Err: err}
	}
	out := convert(&w)
	c.log.Debug().Str("endpoint", endpoint).Dur("decode_ms", time.Since(start)).Msg("jupiter response decoded")
	return &out, nil
}
