package soilid

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// lookup walks nested maps along keys.
func lookup(v any, keys ...string) (any, error) {
	cur := v
	for i, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: not an object", strings.Join(keys[:i], "."))
		}
		cur, ok = m[k]
		if !ok {
			return nil, fmt.Errorf("%s: missing", strings.Join(keys[:i+1], "."))
		}
	}
	return cur, nil
}

func lookupMap(v any, keys ...string) (map[string]any, error) {
	got, err := lookup(v, keys...)
	if err != nil {
		return nil, err
	}
	m, ok := got.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: not an object", strings.Join(keys, "."))
	}
	return m, nil
}

// optString reads a string field, treating a missing or non-string value as "".
func optString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t)
	case float32:
		return float64(t), !math.IsNaN(float64(t))
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

// integer accepts numbers and digit strings, the two ways the engine writes ids
// and ranks.
func integer(v any) (int, bool) {
	if s, ok := v.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		return n, err == nil
	}
	f, ok := number(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func requireNumber(m map[string]any, key string) (float64, error) {
	f, ok := number(m[key])
	if !ok {
		return 0, fmt.Errorf("%s: not a number: %v", key, m[key])
	}
	return f, nil
}

// firstString returns the first element of a list field, or the field itself
// when it is a plain string.
func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			s, _ := t[0].(string)
			return s
		}
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

// indexed reads one horizon's value from a per-horizon field, which the engine
// writes either as an object keyed by index digits or as a plain list.
func indexed(v any, key string) any {
	switch t := v.(type) {
	case map[string]any:
		return t[key]
	case []any:
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < len(t) {
			return t[i]
		}
	}
	return nil
}
