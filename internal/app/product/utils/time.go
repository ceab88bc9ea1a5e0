package utils

import "time"

// FormatTimePtr renders t as RFC3339 in UTC, or nil when t is nil.
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
