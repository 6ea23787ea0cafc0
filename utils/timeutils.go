package utils

import "time"

// Iso8601FromTime formats t in UTC ISO8601
func Iso8601FromTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
