// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package getdata runs searches against the Infobel GetData API.
package getdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/pdiddy/getdata-demo/internal/httputil"
	"github.com/pdiddy/getdata-demo/pkg/types"
)

// DefaultSearchURL is the GetData search endpoint.
const DefaultSearchURL = "https://getdata.infobelpro.com/api/search"

// SearchRequest is the body of POST /api/search. See
// https://getdata.infobelpro.com/Help/Model/SearchInput for field meanings.
type SearchRequest struct {
	DataType           int      `json:"dataType"`
	PageSize           int      `json:"pageSize"`
	DisplayLanguage    string   `json:"displayLanguage"`
	ReturnFirstPage    bool     `json:"returnFirstPage"`
	SortingOrder       []int    `json:"SortingOrder"`
	CountryCodes       []string `json:"CountryCodes"`
	InternationalCodes []string `json:"InternationalCodes"`
}

// BuildSearchPayload returns the fixed demo filter: ten US listings in
// International code 3674, English labels, first page returned inline.
// SortingOrder 5 is an opaque code from the API's SortingOrder model.
func BuildSearchPayload() SearchRequest {
	return SearchRequest{
		DataType:           1,
		PageSize:           10,
		DisplayLanguage:    "EN",
		ReturnFirstPage:    true,
		SortingOrder:       []int{5},
		CountryCodes:       []string{"US"},
		InternationalCodes: []string{"3674"},
	}
}

// SearchResponse is the decoded search body, kept as a map so fields the
// demo does not read survive untouched. Numbers decode as json.Number so
// large identifiers keep every digit.
type SearchResponse map[string]any

// FirstPageRecords returns the records in firstPageRecords. Absent, null or
// non-list values yield nil; entries that are not objects are skipped.
func (r SearchResponse) FirstPageRecords() []types.Record {
	raw, ok := r["firstPageRecords"].([]any)
	if !ok {
		return nil
	}
	records := make([]types.Record, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			records = append(records, types.Record(m))
		}
	}
	return records
}

// Client sends search requests.
type Client struct {
	HTTPClient *http.Client

	// SearchURL overrides DefaultSearchURL.
	SearchURL string

	// Timeout bounds one search request; zero means httputil.DefaultTimeout.
	Timeout time.Duration

	Logger *slog.Logger
}

// RunSearch posts payload with the bearer token and returns the decoded
// response. A non-2xx status yields a *SearchAPIError carrying the raw body.
// There is no retry.
func (c *Client) RunSearch(ctx context.Context, accessToken string, payload SearchRequest) (SearchResponse, error) {
	if accessToken == "" {
		return nil, errors.New("running search: empty access token")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding search payload: %w", err)
	}

	searchURL := c.SearchURL
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}

	ctx, cancel := httputil.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log := c.logger().With("url", searchURL)
	log.Debug("running search", "page_size", payload.PageSize, "countries", payload.CountryCodes)

	resp, err := c.bearerClient(accessToken).Do(req)
	if err != nil {
		return nil, &SearchAPIError{Err: err}
	}
	defer resp.Body.Close()

	log.Debug("search endpoint responded", "status", resp.StatusCode)

	if err := httputil.CheckStatus(resp); err != nil {
		apiErr := &SearchAPIError{Err: err}
		var se *httputil.StatusError
		if errors.As(err, &se) {
			apiErr.Body = se.Body
		}
		return nil, apiErr
	}

	var out SearchResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, &SearchAPIError{Err: fmt.Errorf("parsing search response: %w", err)}
	}
	if out == nil {
		out = SearchResponse{}
	}
	return out, nil
}

// bearerClient wraps the configured client's transport so every request
// carries Authorization: Bearer <token>.
func (c *Client) bearerClient(accessToken string) *http.Client {
	base := c.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	return &http.Client{
		Transport:     &oauth2.Transport{Source: src, Base: base.Transport},
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       base.Timeout,
	}
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SearchAPIError reports a failed search call. Body holds the raw response
// text for non-2xx statuses.
type SearchAPIError struct {
	Err  error
	Body string
}

func (e *SearchAPIError) Error() string {
	msg := fmt.Sprintf("GetData search failed: %v", e.Err)
	if e.Body != "" {
		msg += " | Response: " + e.Body
	}
	return msg
}

func (e *SearchAPIError) Unwrap() error { return e.Err }
