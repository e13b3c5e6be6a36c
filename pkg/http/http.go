// Package http is the fluent outgoing HTTP client used for third-party APIs.
//
//	resp, err := http.Get(url).
//	    Timeout(5 * time.Second).
//	    WithContext(ctx).
//	    Send()
//
//	var body productResponse
//	err = resp.JSON(&body)
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"time"

	"github.com/shashiranjanraj/inventory/pkg/logger"
)

const defaultUserAgent = "inventory/1.0 (+https://github.com/shashiranjanraj/inventory)"

var defaultTransport = &gohttp.Transport{
	Proxy:               gohttp.ProxyFromEnvironment,
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

// DefaultClient is shared by every outgoing request. Tests can swap
// DefaultClient.Transport and restore it with ResetTransport.
var DefaultClient = &gohttp.Client{
	Transport: defaultTransport,
}

// ResetTransport restores the production transport on DefaultClient.
func ResetTransport() {
	DefaultClient.Transport = defaultTransport
}

// ------------------- Request -------------------

// Request is a fluent HTTP request builder. Each Send is a single attempt.
type Request struct {
	method  string
	url     string
	headers map[string]string
	timeout time.Duration
	ctx     context.Context
}

// Get starts a GET request.
func Get(url string) *Request { return newRequest(gohttp.MethodGet, url) }

func newRequest(method, url string) *Request {
	return &Request{
		method:  method,
		url:     url,
		headers: map[string]string{"Accept": "application/json", "User-Agent": defaultUserAgent},
		timeout: 30 * time.Second,
		ctx:     context.Background(),
	}
}

// Timeout bounds the whole request, body included.
func (r *Request) Timeout(d time.Duration) *Request {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// WithContext sets the parent context; cancelling it aborts the request.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx != nil {
		r.ctx = ctx
	}
	return r
}

// ------------------- Send -------------------

// Send executes the request. Non-2xx responses are not errors here; check
// Response.OK.
func (r *Request) Send() (*Response, error) {
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, r.method, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}

	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		logger.WithCtx(r.ctx).Debug("http: request failed", "url", r.url, "error", err)
		return nil, fmt.Errorf("http: %s %s: %w", r.method, r.url, err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Raw: raw}, nil
}

// ------------------- Response -------------------

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Raw        []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON unmarshals the response body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}
