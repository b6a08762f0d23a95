package outwriter

import (
	"os"

	"github.com/huangsam/scholarlens/internal/contract"
	"golang.org/x/term"
)

// Bounds for free-text columns such as department names and topics.
const (
	minLabelWidth = 12
	maxLabelWidth = 60
)

// getMaxLabelWidth calculates the maximum width for free-text cells in table
// output based on terminal width. fixedColumns is the number of narrow numeric
// columns sharing the row.
func getMaxLabelWidth(cfg *contract.Config, fixedColumns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Each numeric column takes roughly 12 cells with borders and padding
	available := termWidth - fixedColumns*12 - 10
	if available < minLabelWidth {
		return minLabelWidth
	}
	if available > maxLabelWidth {
		return maxLabelWidth
	}
	return available
}

// truncateLabel shortens s to maxWidth runes with an ellipsis suffix.
func truncateLabel(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}
