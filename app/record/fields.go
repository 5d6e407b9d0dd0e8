package record

// Field access helpers for records coming out of a spreadsheet-style store.
// The external schema has drifted over time, so the same semantic value can
// live under several field names, and lookup fields wrap scalars in arrays.
// Callers pass the known aliases in priority order and get a clean value back;
// nothing outside this package deals with the raw field map shapes.

import "strings"

// StringField returns the first non-empty string found under the named
// fields, unwrapping single-element lookup arrays.
func StringField(fields map[string]any, names ...string) string {
	for _, name := range names {
		if v, ok := fields[name]; ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// StringsField returns the value of the first present field as a string
// slice, for link fields holding record-id lists. A scalar value becomes a
// one-element slice; empty values yield nil.
func StringsField(fields map[string]any, names ...string) []string {
	for _, name := range names {
		v, ok := fields[name]
		if !ok || v == nil {
			continue
		}
		switch value := v.(type) {
		case []any:
			var result []string
			for _, item := range value {
				if s := asString(item); s != "" {
					result = append(result, s)
				}
			}
			return result
		case []string:
			if len(value) == 0 {
				return nil
			}
			return value
		default:
			if s := asString(v); s != "" {
				return []string{s}
			}
		}
	}
	return nil
}

// NumberField returns the first numeric value found under the named fields,
// or nil when none is set. A missing amount stays nil, it is never coerced
// to zero.
func NumberField(fields map[string]any, names ...string) *float64 {
	for _, name := range names {
		v, ok := fields[name]
		if !ok || v == nil {
			continue
		}
		switch value := v.(type) {
		case float64:
			n := value
			return &n
		case int:
			n := float64(value)
			return &n
		case []any:
			if len(value) > 0 {
				if f, ok := value[0].(float64); ok {
					n := f
					return &n
				}
			}
		}
	}
	return nil
}

func asString(v any) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case []any:
		if len(value) > 0 {
			if s, ok := value[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	case []string:
		if len(value) > 0 {
			return strings.TrimSpace(value[0])
		}
	}
	return ""
}
