package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/fxplorer/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil || state.Browser == nil {
		return nil
	}
	segments := contextualHelpSegments(state)
	return append(segments, persistentHelpSegments(state)...)
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch {
	case state.PromptActive && state.PromptKind == statepkg.PromptGoTo:
		return []string{
			"type: path",
			"↵: go",
			"Esc: cancel",
		}
	case state.PromptActive:
		return []string{
			"type: search term",
			"↵: search",
			"Esc: cancel",
		}
	case state.Browser.Status() == statepkg.StatusSearching:
		return []string{
			"↑↓: select",
			"↵: open",
			"/: new search",
			"Esc: back to listing",
		}
	default:
		return []string{
			"↑/↓/↵/→/←: navigate",
			"~: home",
			":: go to",
			"/: search",
			"r: refresh",
		}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state.PromptActive {
		return nil
	}
	hiddenStatus := "hidden"
	if state.Browser.ShowHidden() {
		hiddenStatus = "visible"
	}
	return []string{
		fmt.Sprintf(".: toggle %s", hiddenStatus),
		"q: quit",
	}
}
