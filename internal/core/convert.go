package core

// convert.go turns raw census cells into typed values.
//
// Source files come from spreadsheets as often as from exports, so numeric
// cells are cleaned before parsing:
//   - thousands separators ("1,234,567")
//   - Excel formula prefixes (="123")
//   - surrounding quotes and whitespace
//
// Negative numbers are rejected: every census metric is a count or a measure.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a plain decimal after cleanup.
var numericRegex = regexp.MustCompile(`^[+]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		idx[strings.ToLower(CleanCell(h))] = i
	}
	return idx
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// cleanNumber strips separators and validates the numeric shape.
func cleanNumber(s string) (string, error) {
	s = strings.ReplaceAll(CleanCell(s), ",", "")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return "", fmt.Errorf("empty value")
	}
	if !numericRegex.MatchString(s) {
		return "", fmt.Errorf("invalid number %q", s)
	}
	return s, nil
}

// ParseCount parses a non-negative integer cell such as "1,234,567".
// A decimal with an empty or all-zero fraction ("12.0") is accepted.
func ParseCount(s string) (int64, error) {
	clean, err := cleanNumber(s)
	if err != nil {
		return 0, err
	}
	if i, err := strconv.ParseInt(clean, 10, 64); err == nil {
		return i, nil
	}
	whole, frac, ok := strings.Cut(clean, ".")
	if ok && strings.Trim(frac, "0") == "" && whole != "" {
		return strconv.ParseInt(whole, 10, 64)
	}
	return 0, fmt.Errorf("invalid integer %q", clean)
}

// ParseMeasure parses a non-negative floating-point cell such as "1,723,338.01".
func ParseMeasure(s string) (float64, error) {
	clean, err := cleanNumber(s)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", clean)
	}
	return f, nil
}
