// Package normalize converts the locale-formatted values scraped from
// Brazilian sources ("R$ 12,50", "3,45%") into nullable numbers for
// the downstream payload.
package normalize

import (
	"strconv"
	"strings"
)

// Number parses a locale-formatted numeric string. Currency markers
// and a percent sign are stripped, a comma decimal separator becomes
// a dot. Returns nil for empty input or anything that does not parse;
// it never fails.
func Number(raw string) *float64 {
	v := strings.ReplaceAll(raw, "R$", "")
	v = strings.ReplaceAll(v, "BRL", "")
	v = strings.ReplaceAll(v, "%", "")
	v = strings.ReplaceAll(v, ",", ".")
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &n
}

// Float wraps an already-numeric value; it exists so callers build
// the payload uniformly out of pointers.
func Float(n float64) *float64 { return &n }

// String returns nil for empty strings and a pointer otherwise, so
// absent raw fields serialize as JSON null rather than "".
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
