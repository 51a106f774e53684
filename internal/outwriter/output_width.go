package outwriter

import (
	"os"

	"github.com/snapseries/snapseries/internal/contract"
	"golang.org/x/term"
)

// GetTrendBarWidth calculates the maximum width of the trend bar in table output
// based on terminal width and the fixed columns.
func GetTrendBarWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.TermWidth > 0 {
		termWidth = cfg.TermWidth
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Index + Date + Value + Delta with borders/padding
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 10 {
		return 10
	}
	if available > 60 {
		return 60
	}
	return available
}
