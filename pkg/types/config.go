// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared across getdata-demo packages.
package types

import "time"

// HTTPConfig holds shared HTTP settings for the token and search calls.
type HTTPConfig struct {
	// Timeout bounds each request. Zero means the default of 30s.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "getdata-demo/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DemoConfig holds settings for one run of the GetData demo.
type DemoConfig struct {
	HTTPConfig `yaml:",inline"`

	// Output selects the result format: text, json or yaml.
	Output string `json:"output" yaml:"output"`

	// Styled renders text headers with terminal styling.
	Styled bool `json:"styled" yaml:"styled"`

	// SearchURL overrides the GetData search endpoint.
	SearchURL string `json:"search_url,omitempty" yaml:"search_url,omitempty"`

	// BizSearchTokenURL and GetDataTokenURL override the token endpoints.
	BizSearchTokenURL string `json:"bizsearch_token_url,omitempty" yaml:"bizsearch_token_url,omitempty"`
	GetDataTokenURL   string `json:"getdata_token_url,omitempty" yaml:"getdata_token_url,omitempty"`
}
