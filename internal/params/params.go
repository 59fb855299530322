package params

import (
	"net/url"
	"strconv"
)

// Pair is a single named default value.
type Pair struct {
	Key   string
	Value string
}

// Merge builds the parameter set sent upstream.
//
// Defaults are applied first, in order. Then every key from overrides that is
// not listed in skip is applied on top, replacing all values of a default with
// the same key. The caller therefore always wins over a default.
func Merge(defaults []Pair, overrides url.Values, skip ...string) url.Values {
	merged := make(url.Values, len(defaults)+len(overrides))
	for _, d := range defaults {
		merged.Set(d.Key, d.Value)
	}

	skipped := make(map[string]struct{}, len(skip))
	for _, key := range skip {
		skipped[key] = struct{}{}
	}

	for key, values := range overrides {
		if _, ok := skipped[key]; ok {
			continue
		}
		merged[key] = append([]string(nil), values...)
	}

	return merged
}

// PositiveInt parses v as a positive integer and returns fallback otherwise.
func PositiveInt(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Float parses v as a number. ok is false for empty or malformed input.
func Float(v string) (f float64, ok bool) {
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
