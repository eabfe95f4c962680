// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/getdata-demo/pkg/types"
)

// Format selects how records are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml; "" means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", s)
}

// WriteJSON writes records as indented JSON.
func WriteJSON(records []types.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteYAML writes records as a YAML sequence. Integers too large for
// int64 are written with every digit.
func WriteYAML(records []types.Record, w io.Writer) error {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = yamlValue(map[string]any(r))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// yamlValue rewrites json.Number values the YAML encoder would round
// through float64.
func yamlValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = yamlValue(val)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, val := range t {
			l[i] = yamlValue(val)
		}
		return l
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return t
		}
		if !strings.ContainsAny(t.String(), ".eE") {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: t.String()}
		}
	}
	return v
}

// Write renders records in format f. Text output goes through p.
func Write(f Format, records []types.Record, p *Printer) error {
	switch f {
	case FormatJSON:
		return WriteJSON(records, p.w)
	case FormatYAML:
		return WriteYAML(records, p.w)
	default:
		p.PrintResults(records)
		return nil
	}
}
