// Package lookup resolves a barcode to a product display name through the
// OpenFoodFacts product API.
//
// A lookup never fails from the caller's point of view: every outcome is a
// Result, and only StatusFound carries a name.
package lookup

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shashiranjanraj/inventory/pkg/http"
	"github.com/shashiranjanraj/inventory/pkg/logger"
	"github.com/shashiranjanraj/inventory/pkg/metrics"
	"github.com/shashiranjanraj/inventory/pkg/workerpool"
)

// DefaultURLTemplate is the OpenFoodFacts v2 product endpoint; %s is the
// path-escaped barcode.
const DefaultURLTemplate = "https://world.openfoodfacts.org/api/v2/product/%s.json"

// Status classifies a lookup outcome.
type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusFailed   Status = "failed"
)

// Result is the outcome of one lookup. Name is set only when Status is
// StatusFound.
type Result struct {
	Status Status
	Name   string
	// Reason is a short diagnostic for NotFound and Failed results.
	Reason string
}

// Found reports whether a display name is available.
func (r Result) Found() bool { return r.Status == StatusFound }

// NameOr returns the looked-up name, or fallback when there is none.
func (r Result) NameOr(fallback string) string {
	if r.Found() {
		return r.Name
	}
	return fallback
}

// Config holds the endpoint template and per-request timeout.
type Config struct {
	URLTemplate string
	Timeout     time.Duration
	// MaxConcurrent caps in-flight LookupAsync calls; default 4. Up to twice
	// as many more wait in a queue, beyond that LookupAsync answers Failed.
	MaxConcurrent int
}

// Client performs barcode lookups.
type Client struct {
	urlTemplate string
	timeout     time.Duration
	pool        *workerpool.Pool
}

func NewClient(cfg Config) *Client {
	tmpl := cfg.URLTemplate
	if tmpl == "" {
		tmpl = DefaultURLTemplate
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	workers := cfg.MaxConcurrent
	if workers <= 0 {
		workers = 4
	}
	return &Client{
		urlTemplate: tmpl,
		timeout:     timeout,
		pool:        workerpool.New(workers, workers*2),
	}
}

// Close waits for queued async lookups and stops the workers.
func (c *Client) Close() error {
	c.pool.Shutdown()
	return nil
}

type productResponse struct {
	Product *struct {
		ProductName *string `json:"product_name"`
	} `json:"product"`
}

// Lookup fetches the display name for barcode. It does not retry or cache.
func (c *Client) Lookup(ctx context.Context, barcode string) Result {
	res := c.lookup(ctx, barcode)
	metrics.RecordLookup(string(res.Status))

	log := logger.WithCtx(ctx)
	switch res.Status {
	case StatusFound:
		log.Debug("lookup: product found", "barcode", barcode, "name", res.Name)
	case StatusNotFound:
		log.Debug("lookup: product not found", "barcode", barcode, "reason", res.Reason)
	default:
		log.Warn("lookup: request failed", "barcode", barcode, "reason", res.Reason)
	}
	return res
}

// LookupAsync runs Lookup on the client's worker pool and returns at once.
// The channel receives exactly one Result and is then closed.
func (c *Client) LookupAsync(ctx context.Context, barcode string) <-chan Result {
	out := make(chan Result, 1)
	err := c.pool.Submit(func() {
		defer close(out)
		out <- c.Lookup(ctx, barcode)
	})
	if err != nil {
		metrics.RecordLookup(string(StatusFailed))
		logger.WithCtx(ctx).Warn("lookup: not scheduled", "barcode", barcode, "error", err)
		out <- Result{Status: StatusFailed, Reason: err.Error()}
		close(out)
	}
	return out
}

func (c *Client) lookup(ctx context.Context, barcode string) Result {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return Result{Status: StatusNotFound, Reason: "empty barcode"}
	}

	endpoint := fmt.Sprintf(c.urlTemplate, url.PathEscape(barcode))

	resp, err := http.Get(endpoint).
		WithContext(ctx).
		Timeout(c.timeout).
		Send()
	if err != nil {
		return Result{Status: StatusFailed, Reason: err.Error()}
	}
	if !resp.OK() {
		return Result{Status: StatusNotFound, Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var body productResponse
	if err := resp.JSON(&body); err != nil {
		return Result{Status: StatusFailed, Reason: err.Error()}
	}
	if body.Product == nil {
		return Result{Status: StatusNotFound, Reason: "no product in response"}
	}
	if body.Product.ProductName == nil || strings.TrimSpace(*body.Product.ProductName) == "" {
		return Result{Status: StatusNotFound, Reason: "product has no name"}
	}

	return Result{Status: StatusFound, Name: strings.TrimSpace(*body.Product.ProductName)}
}
