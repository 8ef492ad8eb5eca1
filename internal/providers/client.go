package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "countries/providers"
	// maxErrorBody caps how much of a failed response is kept for the caller.
	maxErrorBody = 512
	// maxBody caps how much of any response is read.
	maxBody = 16 << 20
)

// Client performs single-attempt HTTP calls against one upstream and
// classifies every failure into the provider error taxonomy.
type Client struct {
	id        string
	http      *http.Client
	userAgent string
	metrics   *Metrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMetrics records request counts, failures and latency.
func WithMetrics(m *Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger used for failed calls.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient replaces the underlying transport. The client's timeout is
// kept as given.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a client for the provider id using cfg's timeout and user agent.
func NewClient(id string, cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		id:        id,
		http:      &http.Client{Timeout: cfg.timeout()},
		userAgent: cfg.userAgent(),
		tracer:    otel.Tracer(tracerName),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the provider identifier used in errors, logs and metrics.
func (c *Client) ID() string {
	return c.id
}

// Request describes one upstream call.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Header http.Header
	Body   io.Reader
}

// Do executes req and returns the body of a 2xx response. Transport failures
// are ErrorUnreachable; other statuses are ErrorUpstream with the body kept.
func (c *Client) Do(ctx context.Context, req Request) (body []byte, err error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	ctx, span := c.tracer.Start(ctx, "provider."+c.id,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("provider.id", c.id),
			attribute.String("http.request.method", method),
		))
	start := time.Now()
	defer func() {
		c.metrics.Observe(c.id, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(GetCategory(err)))
			c.logger.WarnContext(ctx, "provider call failed",
				"provider", c.id,
				"category", GetCategory(err),
				"error", err,
			)
		}
		span.End()
	}()

	target, err := buildURL(req.URL, req.Query)
	if err != nil {
		return nil, NewProviderError(ErrorNotConfigured, c.id, "invalid request URL", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, req.Body)
	if err != nil {
		return nil, NewProviderError(ErrorInternal, c.id, "build request", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, NewProviderError(ErrorUnreachable, c.id, "request failed", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, NewProviderError(ErrorUnreachable, c.id, "read response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewUpstreamError(c.id, resp.StatusCode, truncate(string(body), maxErrorBody))
	}
	return body, nil
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, header http.Header, out any) error {
	body, err := c.Do(ctx, Request{URL: rawURL, Query: query, Header: header})
	if err != nil {
		return err
	}
	return c.decode(body, out)
}

// PostJSON sends payload as JSON and decodes the JSON response into out.
func (c *Client) PostJSON(ctx context.Context, rawURL string, header http.Header, payload, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return NewProviderError(ErrorInternal, c.id, "encode request", err)
	}
	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Type", "application/json")
	body, err := c.Do(ctx, Request{Method: http.MethodPost, URL: rawURL, Header: header, Body: bytes.NewReader(raw)})
	if err != nil {
		return err
	}
	return c.decode(body, out)
}

// PostFormJSON sends form values and decodes the JSON response into out.
func (c *Client) PostFormJSON(ctx context.Context, rawURL string, form url.Values, out any) error {
	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	body, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		URL:    rawURL,
		Header: header,
		Body:   strings.NewReader(form.Encode()),
	})
	if err != nil {
		return err
	}
	return c.decode(body, out)
}

func (c *Client) decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return NewProviderError(ErrorProtocol, c.id, "malformed JSON response", err)
	}
	return nil
}

// Protocol returns an ErrorProtocol error for this provider.
func (c *Client) Protocol(format string, args ...any) error {
	return NewProviderError(ErrorProtocol, c.id, fmt.Sprintf(format, args...), nil)
}

// NotFound returns an ErrorNotFound error for this provider.
func (c *Client) NotFound(format string, args ...any) error {
	return NewProviderError(ErrorNotFound, c.id, fmt.Sprintf(format, args...), nil)
}

// InvalidInput returns an ErrorInvalidInput error for this provider.
func (c *Client) InvalidInput(format string, args ...any) error {
	return NewProviderError(ErrorInvalidInput, c.id, fmt.Sprintf(format, args...), nil)
}

func buildURL(rawURL string, query url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// JoinURL appends path segments to base, escaping each segment.
func JoinURL(base string, segments ...string) string {
	out := strings.TrimRight(base, "/")
	for _, s := range segments {
		out += "/" + url.PathEscape(s)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
