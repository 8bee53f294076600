// Package siteapi is the HTTP client for the sites collection endpoint.
package siteapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"sitedeck/internal/jsonutil"
	"sitedeck/internal/site"
	"sitedeck/internal/telemetry"
)

// CollectionPath is the route of the sites collection.
const CollectionPath = "/api/sites"

// Client talks to a sites service.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	tracer  oteltrace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client is never
// modified; WithTimeout applies to a copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a whole-request timeout. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTracer records a span per request.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// NewClient creates a client for the service at baseURL (scheme://host[:port][/prefix]).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tracer:  telemetry.Disabled().Tracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// List fetches the whole collection (GET /api/sites).
func (c *Client) List(ctx context.Context) ([]site.Item, error) {
	const op = "list sites"
	ctx, span := c.tracer.Start(ctx, "sites.list", oteltrace.WithSpanKind(oteltrace.SpanKindClient))
	defer span.End()

	status, body, err := c.do(ctx, http.MethodGet, CollectionPath, op)
	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	items, err := site.DecodeCollection(body)
	if err != nil {
		err = fmt.Errorf("%s: %w", op, err)
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("sites.count", len(items)))
	return items, nil
}

// Delete removes one site (DELETE /api/sites/{id}).
// Success is decided purely by the HTTP status.
func (c *Client) Delete(ctx context.Context, id string) error {
	const op = "delete site"
	ctx, span := c.tracer.Start(ctx, "sites.delete",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(attribute.String("site.id", id)),
	)
	defer span.End()

	status, _, err := c.do(ctx, http.MethodDelete, CollectionPath+"/"+url.PathEscape(id), op)
	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// do issues the request and reads the whole body. Non-2xx responses are
// returned as *StatusError with the decoded body attached.
func (c *Client) do(ctx context.Context, method, path, op string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, &StatusError{Op: op, Code: resp.StatusCode, Body: jsonutil.Diagnostic(body)}
	}
	return resp.StatusCode, body, nil
}

func recordError(span oteltrace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
