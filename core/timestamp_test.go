package core

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   time.Time
	}{
		{name: "prefixed timestamp", input: "state.1700000000", wantOK: true, want: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC)},
		{name: "bare timestamp", input: "1700000000", wantOK: true, want: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC)},
		{name: "several dots", input: "backup.state.json.86400", wantOK: true, want: time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "exact midnight", input: "s.1699920000", wantOK: true, want: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC)},
		{name: "before epoch", input: "s.-1", wantOK: true, want: time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "extension instead of timestamp", input: "state.json", wantOK: false},
		{name: "trailing dot", input: "state.", wantOK: false},
		{name: "empty name", input: "", wantOK: false},
		{name: "float seconds", input: "state.1700000000.5x", wantOK: false},
		{name: "space in segment", input: "state. 1700000000", wantOK: false},
		{name: "overflow", input: "state.99999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DateFromFilename(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
				assert.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

// FuzzDateFromFilename checks that a date is produced exactly when the last segment is an integer,
// and that it always falls on midnight UTC.
func FuzzDateFromFilename(f *testing.F) {
	for _, seed := range []string{"state.1700000000", "1", "a.b", "", ".", "x.-42", "chat.json"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, name string) {
		got, ok := DateFromFilename(name)

		segment := name[strings.LastIndex(name, ".")+1:]
		_, err := strconv.ParseInt(segment, 10, 64)
		if ok != (err == nil) {
			t.Fatalf("DateFromFilename(%q) ok=%v, but ParseInt error=%v", name, ok, err)
		}
		if !ok {
			return
		}
		if got.Location() != time.UTC || got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
			t.Fatalf("DateFromFilename(%q) = %v, want midnight UTC", name, got)
		}
	})
}
