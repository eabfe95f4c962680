// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the token and search calls.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/getdata-demo/pkg/types"
)

// DefaultTimeout bounds a single request when the caller sets none. The
// token and search calls share it.
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries a fresh UUID on every outbound request so a
// failing call can be matched against upstream logs.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of an error response body is kept.
const maxErrorBody = 64 << 10

// NewClient returns an http.Client whose transport stamps each request with
// the configured User-Agent and a request ID. The client itself carries no
// timeout; callers bound each call with WithTimeout.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{
		Transport: &headerTransport{
			base:      http.DefaultTransport,
			userAgent: cfg.UserAgent,
			newID:     uuid.NewString,
		},
	}
}

// headerTransport sets headers that every request should carry, leaving
// values the caller already set untouched.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
	newID     func() string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if t.userAgent != "" && r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", t.userAgent)
	}
	if r.Header.Get(RequestIDHeader) == "" {
		r.Header.Set(RequestIDHeader, t.newID())
	}
	return t.base.RoundTrip(r)
}

// WithTimeout derives a context bounded by d, falling back to DefaultTimeout
// when d is not positive.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultTimeout
	}
	return context.WithTimeout(ctx, d)
}

// StatusError reports a non-2xx response. Body holds the raw response text
// for diagnostics.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP %s (%s)", status, e.URL)
}

// CheckStatus returns nil for a 2xx response. Otherwise it drains up to
// 64 KiB of the body and returns a *StatusError. The caller still owns
// closing resp.Body.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	se := &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(data)),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		se.URL = resp.Request.URL.String()
	}
	return se
}
