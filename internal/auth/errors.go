// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package auth

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks a caller error detected before any request, such
// as an unknown API kind.
var ErrInvalidArgument = errors.New("invalid argument")

var errMissingAccessToken = errors.New("response did not include 'access_token'")

// ConfigurationError reports a required environment variable that is unset
// or empty.
type ConfigurationError struct {
	Var string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("environment variable '%s' is required for Infobel authentication", e.Var)
}

// AuthError reports a failed token request. Body holds the raw response
// text when the endpoint answered with a non-2xx status.
type AuthError struct {
	Kind APIKind
	Err  error
	Body string
}

func (e *AuthError) Error() string {
	name := e.Kind.DisplayName()
	if errors.Is(e.Err, errMissingAccessToken) {
		return fmt.Sprintf("%s token %v", name, e.Err)
	}
	msg := fmt.Sprintf("failed to obtain %s token: %v", name, e.Err)
	if e.Body != "" {
		msg += " | Response: " + e.Body
	}
	return msg
}

func (e *AuthError) Unwrap() error { return e.Err }
