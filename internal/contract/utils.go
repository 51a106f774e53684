package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	RiseColor = color.New(color.FgGreen, color.Bold) // RiseColor marks a value that went up.
	FallColor = color.New(color.FgRed, color.Bold)   // FallColor marks a value that went down.
	FlatColor = color.New(color.FgCyan)              // FlatColor marks the first point or an unchanged value.
)

// GetPlainDelta returns a signed text representation of a change between two points.
// The first point of a series has no predecessor and is shown as "start".
func GetPlainDelta(delta float64, first bool) string {
	switch {
	case first:
		return "start"
	case delta > 0:
		return fmt.Sprintf("+%g", delta)
	default:
		return fmt.Sprintf("%g", delta)
	}
}

// GetColorDelta returns a colored delta for console output (table).
// It uses GetPlainDelta to determine the string, and then applies the appropriate color.
func GetColorDelta(delta float64, first bool) string {
	text := GetPlainDelta(delta, first)
	switch {
	case first || delta == 0:
		return FlatColor.Sprint(text)
	case delta > 0:
		return RiseColor.Sprint(text)
	default:
		return FallColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".snapseries_history.db"
	}
	return filepath.Join(homeDir, ".snapseries_history.db")
}

// TruncateLabel truncates a label to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
