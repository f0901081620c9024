// Package util holds small parsing helpers shared by the CLI and the
// wizard.
package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInts parses a comma-separated integer list, e.g. "10,10,10".
func ParseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q in %q. Use a comma-separated list like '10,10,10'", part, s)
		}
		out[i] = v
	}
	return out, nil
}

// ParseFloats parses a comma-separated real list, e.g. "1.0,0.5,2".
func ParseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in %q. Use a comma-separated list like '1.0,0.5,2'", part, s)
		}
		out[i] = v
	}
	return out, nil
}
