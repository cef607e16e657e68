package normalize

import (
	"strconv"

	"trendscout/internal/models"
)

// Helpers for pulling loosely-typed values out of a RawItem. Upstream
// payloads mix strings, JSON numbers and nested objects for the same
// logical field, so every accessor tolerates every shape and reports
// absence instead of failing.

func nestedMap(item models.RawItem, key string) (models.RawItem, bool) {
	v, ok := item[key]
	if !ok {
		return nil, false
	}
	switch m := v.(type) {
	case map[string]interface{}:
		return models.RawItem(m), true
	case models.RawItem:
		return m, true
	}
	return nil, false
}

func stringField(item models.RawItem, key string) string {
	if v, ok := item[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstString returns the first non-empty string among the given keys.
func firstString(item models.RawItem, keys ...string) string {
	for _, key := range keys {
		if s := stringField(item, key); s != "" {
			return s
		}
	}
	return ""
}

// intField reads a count-like field that may arrive as a JSON number,
// an integer, or a numeric string.
func intField(item models.RawItem, key string) (int, bool) {
	v, ok := item[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// firstInt walks nested key paths and returns the first present
// integer value, or 0 when no path resolves.
func firstInt(item models.RawItem, paths ...[]string) int {
	for _, path := range paths {
		current := item
		for i, key := range path {
			if i == len(path)-1 {
				if n, found := intField(current, key); found {
					return n
				}
				break
			}
			next, ok := nestedMap(current, key)
			if !ok {
				break
			}
			current = next
		}
	}
	return 0
}
