package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/fxplorer/internal/state"
)

// formatSearchStatus summarises the search shown on the prompt line.
func formatSearchStatus(browser *statepkg.BrowserState) string {
	if browser.Status() != statepkg.StatusSearching {
		return ""
	}
	stats := browser.SearchStats()
	parts := make([]string, 0, 3)
	if browser.SearchInProgress() {
		parts = append(parts, "searching…")
	} else {
		parts = append(parts, "done")
	}
	parts = append(parts, fmt.Sprintf("%s found", formatCompactNumber(len(browser.Entries()))))
	if stats.Visited > 0 {
		parts = append(parts, fmt.Sprintf("%s scanned", formatCompactNumber(int(stats.Visited))))
	}
	return strings.Join(parts, " · ")
}

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000.0)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000.0)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000.0)
	default:
		return fmt.Sprintf("%d", n)
	}
}
