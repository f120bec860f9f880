package render

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
	statepkg "github.com/kk-code-lab/fxplorer/internal/state"
	textutil "github.com/kk-code-lab/fxplorer/internal/textutil"
	"golang.org/x/text/unicode/norm"
)

const appName = "fxplorer"

// entryInfo is what the list needs to label and style a row.
type entryInfo struct {
	name    string
	dir     bool
	symlink bool
	hidden  bool
}

// Renderer handles all UI rendering
type Renderer struct {
	screen     tcell.Screen
	theme      ColorTheme
	classifier fsutil.Classifier
	// Render runs on the loop goroutine only, so the cache is unguarded.
	widths map[rune]int

	// Row metadata, valid while infoKey is unchanged.
	infoKey   string
	infoCache map[string]entryInfo
}

// NewRenderer creates a new renderer. classifier marks hidden rows.
func NewRenderer(screen tcell.Screen, classifier fsutil.Classifier) *Renderer {
	return &Renderer{
		screen:     screen,
		theme:      GetColorTheme(),
		classifier: classifier,
		widths:     make(map[rune]int),
		infoCache:  make(map[string]entryInfo),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.drawHeader(state, w)
	listStart := state.ListStartY()
	if listStart > 1 {
		r.drawPromptLine(state, w)
	}
	r.drawEntries(state, listStart, w, h-1)
	r.drawStatusLine(state, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar with the application name and current path.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	x := r.drawTextLine(0, 0, w, appName+" ", style)

	path := textutil.SanitizeTerminalText(state.Browser.CurrentPath())
	path = r.truncateLeftToWidth(path, w-x)
	x = r.drawTextLine(x, 0, w-x, path, style.Bold(true))
	r.fillLine(x, 0, w, style)
}

// drawPromptLine shows the term or path being typed, or the running search.
func (r *Renderer) drawPromptLine(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Foreground(r.theme.Foreground)
	cursorStyle := style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)

	goTo := state.PromptActive && state.PromptKind == statepkg.PromptGoTo
	lead, query := "/", state.Browser.SearchTerm()
	if state.PromptActive {
		query = state.PromptQuery
	}
	if goTo {
		lead = ":"
		query = r.truncateLeftToWidth(textutil.SanitizeTerminalText(query), w-2)
	} else {
		query = textutil.SanitizeTerminalText(query)
	}
	x := r.drawTextLine(0, 1, w, lead+query, style)
	if state.PromptActive {
		x = r.drawStyledRune(x, 1, w, '█', cursorStyle)
	}

	if status := formatSearchStatus(state.Browser); !goTo && status != "" && x < w {
		x = r.drawTextLine(x, 1, w-x, "  "+status, style.Dim(true))
	}
	r.fillLine(x, 1, w, style)
}

func (r *Renderer) drawEntries(state *statepkg.AppState, startY, w, bottom int) {
	browser := state.Browser
	searching := browser.Status() == statepkg.StatusSearching
	r.resetInfoCache(browser.CurrentPath() + "\x00" + browser.Status().String() + "\x00" + browser.SearchTerm())
	term := norm.NFC.String(textutil.SanitizeTerminalText(browser.SearchTerm()))

	y := startY
	for idx := state.ScrollOffset; idx < state.RowCount() && y < bottom; idx++ {
		path := state.RowAt(idx)
		info := r.entryInfo(path)
		selected := idx == state.SelectedIndex

		rowStyle := r.rowStyle(info, selected)
		icon := " "
		switch {
		case info.symlink:
			icon = "@"
		case info.dir:
			icon = "/"
		}
		prefix := " " + icon + " "
		x := r.drawTextLine(0, y, w, prefix, rowStyle)

		label := textutil.SanitizeTerminalText(entryLabel(browser.CurrentPath(), path, info.name, searching))
		shown := r.truncateTextToWidth(label, w-x)
		if searching {
			matchStyle := rowStyle.Foreground(r.theme.MatchFg).Bold(true)
			if selected {
				matchStyle = rowStyle.Bold(true).Underline(true)
			}
			spans := matchSpans(label, term)
			if shown != label {
				spans = clipSpans(spans, utf8.RuneCountInString(shown)-1)
			}
			x = r.drawHighlightedText(x, y, w, shown, spans, rowStyle, matchStyle)
		} else {
			x = r.drawTextLine(x, y, w-x, shown, rowStyle)
		}
		r.fillLine(x, y, w, rowStyle)
		y++
	}

	if len(browser.Entries()) == 0 && y < bottom {
		msg := "(empty)"
		if searching {
			msg = "(no matches yet)"
			if !browser.SearchInProgress() {
				msg = "(no matches)"
			}
		}
		r.drawTextLine(1, y, w-1, msg, tcell.StyleDefault.Dim(true))
	}
}

func (r *Renderer) rowStyle(info entryInfo, selected bool) tcell.Style {
	if selected {
		return tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	style := tcell.StyleDefault
	switch {
	case info.hidden:
		return style.Foreground(r.theme.HiddenFg)
	case info.symlink:
		return style.Foreground(r.theme.SymlinkFg)
	case info.dir:
		return style.Foreground(r.theme.DirectoryFg)
	default:
		return style.Foreground(r.theme.FileFg)
	}
}

// drawStatusLine shows the last error, or contextual key help.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 1
	if y < 1 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	text := buildFooterHelpText(state)
	if state.LastError != nil {
		text = " " + state.LastError.Error()
		style = style.Foreground(r.theme.ErrorFg)
	}
	text = r.truncateTextToWidth(textutil.SanitizeTerminalText(text), w)
	x := r.drawTextLine(0, y, w, text, style)
	r.fillLine(x, y, w, style)
}

func (r *Renderer) resetInfoCache(key string) {
	if key == r.infoKey {
		return
	}
	r.infoKey = key
	clear(r.infoCache)
}

// entryInfo stats path once per listing or search.
func (r *Renderer) entryInfo(path string) entryInfo {
	if path == fsutil.ParentMarker {
		return entryInfo{name: fsutil.ParentMarker, dir: true}
	}
	if info, ok := r.infoCache[path]; ok {
		return info
	}
	info := entryInfo{name: fsutil.LastSegment(path)}
	if entry, err := fsutil.Stat(path); err == nil {
		info.name = entry.Name
		info.dir = entry.IsDir()
		info.symlink = entry.IsSymlink
	}
	info.hidden = r.classifier.IsHidden(path)
	r.infoCache[path] = info
	return info
}
