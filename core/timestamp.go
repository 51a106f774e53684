package core

import (
	"strconv"
	"strings"
	"time"
)

// DateFromFilename extracts the snapshot date from a file name such as "state.1700000000".
// The last dot-separated segment must be a base-10 Unix timestamp in seconds.
// The result is truncated to midnight UTC; ok is false when the segment is empty or not an integer.
func DateFromFilename(name string) (time.Time, bool) {
	segment := name
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		segment = name[idx+1:]
	}
	if segment == "" {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return startOfDay(time.Unix(secs, 0)), true
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
