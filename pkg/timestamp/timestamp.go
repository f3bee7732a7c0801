// Package timestamp formats instants as fixed-width UTC strings whose
// lexicographic order matches chronological order. Every timestamp column
// in the store uses this layout, so range filters can compare strings.
package timestamp

import (
	"fmt"
	"time"
)

// Layout always renders milliseconds and a literal Z.
const Layout = "2006-01-02T15:04:05.000Z"

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse accepts any RFC 3339 timestamp, with or without fractional seconds
// or a zone offset.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Normalize re-renders an RFC 3339 timestamp in Layout.
func Normalize(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}

// NormalizePtr is Normalize for nullable columns; nil stays nil.
func NormalizePtr(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	n, err := Normalize(*s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
