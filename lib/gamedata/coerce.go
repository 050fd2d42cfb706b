package gamedata

import (
	"math"
	"strconv"
	"time"
)

// Source payloads are decoded as map[string]any, so numbers arrive as
// float64, appids sometimes as strings, and scraped values as text. The
// coercers below absorb that variance; anything uncoercible becomes nil
// rather than an error.

func toRequiredString(v any) string {
	s := toString(v)
	if s == nil {
		return ""
	}
	return *s
}

func toString(v any) *string {
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		return &value
	case float64:
		s := strconv.FormatFloat(value, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(value)
		return &s
	case bool:
		s := strconv.FormatBool(value)
		return &s
	default:
		return nil
	}
}

func toBool(v any) *bool {
	if value, ok := v.(bool); ok {
		return &value
	}
	return nil
}

func toInt(v any) *int {
	switch value := v.(type) {
	case int:
		return &value
	case float64:
		if !math.IsInf(value, 0) && !math.IsNaN(value) {
			n := int(value)
			return &n
		}
	case string:
		if n, err := strconv.Atoi(value); err == nil {
			return &n
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			n := int(f)
			return &n
		}
	}
	return nil
}

// toFloat treats NaN and infinities as absent data so records stay
// JSON-serializable.
func toFloat(v any) *float64 {
	switch value := v.(type) {
	case float64:
		if !math.IsInf(value, 0) && !math.IsNaN(value) {
			return &value
		}
	case int:
		f := float64(value)
		return &f
	case string:
		if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return &f
		}
	}
	return nil
}

// toStringList always yields a list: nil stays empty, a lone scalar is
// wrapped, list entries that are not strings are stringified.
func toStringList(v any) []string {
	switch value := v.(type) {
	case nil:
		return []string{}
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s := toString(item); s != nil {
				out = append(out, *s)
			}
		}
		return out
	default:
		if s := toString(v); s != nil {
			return []string{*s}
		}
		return []string{}
	}
}

func toMapList(v any) []map[string]any {
	switch value := v.(type) {
	case nil:
		return []map[string]any{}
	case []map[string]any:
		return value
	case []any:
		out := make([]map[string]any, 0, len(value))
		for _, item := range value {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		return []map[string]any{value}
	default:
		return []map[string]any{}
	}
}

// toDate parses the two shapes release dates arrive in: ISO 8601
// (2023-06-15) and the Steam store format (Jun 15, 2023). Numeric values
// are treated as unix timestamps.
func toDate(v any) *time.Time {
	switch value := v.(type) {
	case time.Time:
		return &value
	case string:
		for _, layout := range []string{"2006-01-02", "Jan 2, 2006"} {
			if t, err := time.Parse(layout, value); err == nil {
				return &t
			}
		}
	case float64:
		t := time.Unix(int64(value), 0)
		return &t
	case int:
		t := time.Unix(int64(value), 0)
		return &t
	}
	return nil
}
