package outwriter

import (
	"os"

	"github.com/huangsam/repoguard/internal/contract"
	"golang.org/x/term"
)

// getMaxTableTextWidth calculates the maximum width for the free-form text
// column in table output (commit subjects, file paths, violation details)
// based on terminal width and the fixed column budget.
func getMaxTableTextWidth(cfg *contract.Config, baseWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 20

	// Calculate available space for the text column
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable text width
		return 15
	}
	if available > 70 {
		// Maximum text width to prevent overly long rows
		return 70
	}
	return available
}
