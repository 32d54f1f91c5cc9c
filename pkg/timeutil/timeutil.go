package timeutil

import "time"

// Log14Date formats t as the 14-digit UTC timestamp used in archive file
// names and legacy log lines, e.g. "20060802222118".
func Log14Date(t time.Time) string {
	return t.UTC().Format("20060102150405")
}

// Timestamp17 formats t as the 17-digit UTC timestamp (14 digits plus
// milliseconds) embedded in archive file names.
func Timestamp17(t time.Time) string {
	u := t.UTC()
	return u.Format("20060102150405") + u.Format(".000")[1:]
}

// WARCDate formats t as the ISO-8601 UTC form required by the record
// date field, e.g. "2006-08-02T22:21:18Z".
func WARCDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// FetchDurationMs returns the elapsed fetch time in milliseconds, or a
// negative value when either endpoint is unset (zero).
func FetchDurationMs(begin time.Time, completed time.Time) int64 {
	if begin.IsZero() || completed.IsZero() {
		return -1
	}
	return completed.Sub(begin).Milliseconds()
}
