// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package auth obtains Infobel OAuth access tokens with the password grant.
// Credentials come from INFOBEL_USERNAME and INFOBEL_PASSWORD; the token
// endpoint is selected by APIKind.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/pdiddy/getdata-demo/internal/httputil"
)

// Environment variables holding the account credentials.
const (
	EnvUsername = "INFOBEL_USERNAME"
	EnvPassword = "INFOBEL_PASSWORD"
)

// APIKind selects which Infobel API a token is issued for.
type APIKind int

const (
	BizSearch APIKind = iota
	GetData
)

var tokenURLs = map[APIKind]string{
	BizSearch: "https://bizsearch.infobelpro.com/api/token",
	GetData:   "https://getdata.infobelpro.com/api/token",
}

// ParseAPIKind maps "bizsearch" or "getdata" (any case) to an APIKind.
func ParseAPIKind(s string) (APIKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bizsearch":
		return BizSearch, nil
	case "getdata":
		return GetData, nil
	}
	return 0, fmt.Errorf("%w: unsupported API kind %q, must be 'bizsearch' or 'getdata'", ErrInvalidArgument, s)
}

// String returns the lowercase selector accepted by ParseAPIKind.
func (k APIKind) String() string {
	switch k {
	case BizSearch:
		return "bizsearch"
	case GetData:
		return "getdata"
	}
	return fmt.Sprintf("APIKind(%d)", int(k))
}

// DisplayName is the product name used in messages.
func (k APIKind) DisplayName() string {
	switch k {
	case BizSearch:
		return "BizSearch"
	case GetData:
		return "GetData"
	}
	return k.String()
}

// TokenURL returns the fixed token endpoint for k.
func (k APIKind) TokenURL() string { return tokenURLs[k] }

func (k APIKind) valid() bool {
	_, ok := tokenURLs[k]
	return ok
}

// Credentials is the username/password pair sent with the password grant.
type Credentials struct {
	Username string
	Password string
}

// LoadCredentials reads both credential variables through lookup. A missing
// or empty variable yields a *ConfigurationError naming it.
func LoadCredentials(lookup func(string) (string, bool)) (Credentials, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var c Credentials
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{EnvUsername, &c.Username},
		{EnvPassword, &c.Password},
	} {
		v, ok := lookup(f.name)
		if !ok || v == "" {
			return Credentials{}, &ConfigurationError{Var: f.name}
		}
		*f.dst = v
	}
	return c, nil
}

// TokenResponse is the decoded token endpoint body. Only access_token is
// checked; every other field is passed through. Numbers decode as
// json.Number.
type TokenResponse map[string]any

// AccessToken returns the access_token field.
func (t TokenResponse) AccessToken() string {
	s, _ := t["access_token"].(string)
	return s
}

// TokenType returns token_type, defaulting to "Bearer".
func (t TokenResponse) TokenType() string {
	if s, ok := t["token_type"].(string); ok && s != "" {
		return s
	}
	return "Bearer"
}

// ExpiresIn returns the expires_in lifetime, or zero when the field is
// absent or not a number.
func (t TokenResponse) ExpiresIn() time.Duration {
	switch v := t["expires_in"].(type) {
	case float64:
		return time.Duration(v) * time.Second
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return time.Duration(n) * time.Second
		}
		if f, err := v.Float64(); err == nil {
			return time.Duration(f) * time.Second
		}
	}
	return 0
}

// OAuth2 converts the response into an *oauth2.Token. Expiry is computed
// relative to now; a zero ExpiresIn leaves it unset.
func (t TokenResponse) OAuth2(now time.Time) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken: t.AccessToken(),
		TokenType:   t.TokenType(),
	}
	if rt, ok := t["refresh_token"].(string); ok {
		tok.RefreshToken = rt
	}
	if d := t.ExpiresIn(); d > 0 {
		tok.Expiry = now.Add(d)
	}
	return tok.WithExtra(map[string]any(t))
}

// Authenticator requests tokens from the Infobel token endpoints.
type Authenticator struct {
	Client *http.Client

	// Timeout bounds one token request; zero means httputil.DefaultTimeout.
	Timeout time.Duration

	// TokenURLs overrides the fixed endpoint per kind. Missing entries use
	// APIKind.TokenURL.
	TokenURLs map[APIKind]string

	// Lookup reads credential variables; nil means os.LookupEnv.
	Lookup func(string) (string, bool)

	Logger *slog.Logger
}

func (a *Authenticator) endpoint(kind APIKind) string {
	if u := a.TokenURLs[kind]; u != "" {
		return u
	}
	return kind.TokenURL()
}

func (a *Authenticator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Authenticate exchanges the configured credentials for a token of the
// given kind and returns the full decoded response. An unknown kind or
// missing credentials fail before any request is sent.
func (a *Authenticator) Authenticate(ctx context.Context, kind APIKind) (TokenResponse, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: unsupported API kind %s", ErrInvalidArgument, kind)
	}

	creds, err := LoadCredentials(a.Lookup)
	if err != nil {
		return nil, err
	}

	tokenURL := a.endpoint(kind)
	form := url.Values{
		"grant_type": {"password"},
		"username":   {creds.Username},
		"password":   {creds.Password},
	}

	ctx, cancel := httputil.WithTimeout(ctx, a.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	log := a.logger().With("api", kind.String(), "url", tokenURL)
	log.Debug("requesting token")

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &AuthError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	log.Debug("token endpoint responded", "status", resp.StatusCode)

	if err := httputil.CheckStatus(resp); err != nil {
		authErr := &AuthError{Kind: kind, Err: err}
		var se *httputil.StatusError
		if errors.As(err, &se) {
			authErr.Body = se.Body
		}
		return nil, authErr
	}

	var data TokenResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, &AuthError{Kind: kind, Err: fmt.Errorf("parsing token response: %w", err)}
	}

	if data.AccessToken() == "" {
		return nil, &AuthError{Kind: kind, Err: errMissingAccessToken}
	}

	return data, nil
}
