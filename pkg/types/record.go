// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one business listing as returned by the GetData search API.
// The API documents many optional fields and omits or nulls them freely, so
// a Record stays a plain map instead of a struct that would have to guess
// the schema.
type Record map[string]any

// Get returns the value stored under key rendered as a string. The boolean
// is false when the key is absent or the value is empty: nil, "", a zero
// number, false, or an empty list or object. Callers treat a false result
// as "field not provided".
func (r Record) Get(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s := stringify(v)
	return s, s != ""
}

// First returns the first present value among keys.
func (r Record) First(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r.Get(k); ok {
			return v, true
		}
	}
	return "", false
}

// stringify renders v as display text, returning "" for values that count
// as empty.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case int64:
		if t == 0 {
			return ""
		}
		return strconv.FormatInt(t, 10)
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return ""
		}
		return t.String()
	case []any:
		if len(t) == 0 {
			return ""
		}
	case map[string]any:
		if len(t) == 0 {
			return ""
		}
	}
	return fmt.Sprint(v)
}
