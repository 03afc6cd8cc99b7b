// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package shopify talks to the Shopify Admin API. It stores blog articles
// with their structured sections copy, lists media for the image picker
// and reads and writes JSON metafields for the quickview settings.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultAPIVersion is the Admin API version used when none is configured.
const DefaultAPIVersion = "2025-07"

// maxErrorBody bounds how much of a failed response is kept in HTTPError.
const maxErrorBody = 2048

// HTTPError is returned when the Admin API answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("shopify: HTTP %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// IsNotFound reports whether err is an HTTP 404 from the Admin API.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

// UserError is one entry of a mutation's userErrors list.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
}

// UserErrors is returned when a mutation reports validation problems. Its
// message is the first entry's message, which is what the editor shows.
type UserErrors []UserError

func (u UserErrors) Error() string {
	if len(u) == 0 {
		return "shopify: mutation failed"
	}
	return u[0].Message
}

// orNil returns u as an error, or nil when it is empty.
func (u UserErrors) orNil() error {
	if len(u) == 0 {
		return nil
	}
	return u
}

// Option decorates the client's transport.
type Option func(http.RoundTripper) http.RoundTripper

type funcTripper func(*http.Request) (*http.Response, error)

func (f funcTripper) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// WithLogger logs every Admin API round trip at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(rt http.RoundTripper) http.RoundTripper {
		return funcTripper(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := rt.RoundTrip(r)
			attrs := []any{"method", r.Method, "path", r.URL.Path, "duration", time.Since(start)}
			if resp != nil {
				attrs = append(attrs, "status", resp.StatusCode)
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			log.Debug("shopify request", attrs...)
			return resp, err
		})
	}
}

// WithTracing wraps the transport with OpenTelemetry client spans.
func WithTracing() Option {
	return func(rt http.RoundTripper) http.RoundTripper {
		return otelhttp.NewTransport(rt)
	}
}

// Config holds the connection settings of a Client.
type Config struct {
	Shop        string // myshop.myshopify.com
	AccessToken string
	APIVersion  string
	// BaseURL overrides https://<Shop>, for tests.
	BaseURL string
	// Transport is the innermost round tripper. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
	// Calls, if set, counts API calls by api and outcome.
	Calls *prometheus.CounterVec
}

// Client is a minimal Admin API client for GraphQL and REST.
type Client struct {
	base    string
	version string
	token   string
	http    *http.Client
	calls   *prometheus.CounterVec
}

// NewClient creates a Client. Options wrap the transport in the order given.
func NewClient(cfg Config, opts ...Option) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://" + cfg.Shop
	}
	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	rt := cfg.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	for _, o := range opts {
		rt = o(rt)
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		version: version,
		token:   cfg.AccessToken,
		http:    &http.Client{Transport: rt, Timeout: 30 * time.Second},
		calls:   cfg.Calls,
	}
}

func (c *Client) url(path string) string {
	return c.base + "/admin/api/" + c.version + "/" + strings.TrimLeft(path, "/")
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors gqlerror.List   `json:"errors"`
}

// GraphQL runs a query or mutation and decodes its data into out. Top-level
// GraphQL errors are returned as a gqlerror.List.
func (c *Client) GraphQL(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	var resp graphQLResponse
	if err := c.do(ctx, "graphql", http.MethodPost, c.url("graphql.json"), bytes.NewReader(body), &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		c.count("graphql", "graphql_error")
		return resp.Errors
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}

// REST performs a REST Admin API call against path (for example
// "blogs.json") and decodes the JSON response into out, if non-nil.
func (c *Client) REST(ctx context.Context, method, path string, out any) error {
	return c.do(ctx, "rest", method, c.url(path), nil, out)
}

func (c *Client) do(ctx context.Context, api, method, url string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.count(api, "transport_error")
		return fmt.Errorf("shopify %s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.count(api, "http_error")
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	c.count(api, "ok")

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) count(api, outcome string) {
	if c.calls != nil {
		c.calls.WithLabelValues(api, outcome).Inc()
	}
}

// mustQuery checks a GraphQL document's syntax once, at package init, and
// returns it unchanged.
func mustQuery(q string) string {
	if _, err := parser.ParseQuery(&ast.Source{Input: q}); err != nil {
		panic(fmt.Sprintf("shopify: invalid graphql document: %v", err))
	}
	return q
}
