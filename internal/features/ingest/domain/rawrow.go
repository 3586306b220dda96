package domain

import (
	"strconv"
	"strings"
	"time"
)

// RawRow is one uploaded tabular row as a column-name → raw-value mapping.
// Values may be absent, blank, or the wrong shape; every accessor coerces or
// falls back to its default and never fails.
type RawRow map[string]string

// dateLayouts are the accepted input shapes for date-valued columns.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// missing reports whether a raw value counts as absent. Blank cells and the
// NaN-like tokens tabular exports produce are all treated as missing.
func missing(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "nan", "null", "none", "na":
		return true
	}
	return false
}

// GetString returns the trimmed value of a column, or def when missing.
func (r RawRow) GetString(key, def string) string {
	value, ok := r[key]
	if !ok || missing(value) {
		return def
	}
	return strings.TrimSpace(value)
}

// GetFloat returns the numeric value of a column. Missing or unparsable
// values degrade to def instead of failing the row.
func (r RawRow) GetFloat(key string, def float64) float64 {
	value, ok := r[key]
	if !ok || missing(value) {
		return def
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return def
	}
	return parsed
}

// GetDate returns the date value of a column, or nil when the cell is
// missing or not in any accepted shape.
func (r RawRow) GetDate(key string) *time.Time {
	value, ok := r[key]
	if !ok || missing(value) {
		return nil
	}
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}
