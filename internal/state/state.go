package state

import (
	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
)

// PromptKind says what the prompt line is collecting.
type PromptKind int

const (
	PromptSearch PromptKind = iota
	PromptGoTo
)

// AppState is the single source of truth for the UI.
type AppState struct {
	Browser *BrowserState

	// Selection & viewport, indices into Rows
	SelectedIndex int
	ScrollOffset  int

	// Prompt line: a search term or a path to jump to
	PromptActive bool
	PromptKind   PromptKind
	PromptQuery  string

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Error state
	LastError error
}

// RowCount is the number of selectable rows: the entries, plus the parent
// pseudo-entry while listing a non-root directory.
func (s *AppState) RowCount() int {
	n := len(s.Browser.Entries())
	if s.hasParentRow() {
		n++
	}
	return n
}

// RowAt returns the path shown at row i, or fs.ParentMarker for the parent
// pseudo-entry.
func (s *AppState) RowAt(i int) string {
	if s.hasParentRow() {
		if i == 0 {
			return fsutil.ParentMarker
		}
		i--
	}
	entries := s.Browser.Entries()
	if i < 0 || i >= len(entries) {
		return ""
	}
	return entries[i]
}

// SelectedPath returns the path under the cursor.
func (s *AppState) SelectedPath() (string, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= s.RowCount() {
		return "", false
	}
	return s.RowAt(s.SelectedIndex), true
}

// ListStartY is the first screen row of the entry list.
func (s *AppState) ListStartY() int {
	if s.PromptActive || s.Browser.Status() == StatusSearching {
		return 2
	}
	return 1
}

// VisibleRows is how many entry rows fit between header and status line.
func (s *AppState) VisibleRows() int {
	rows := s.ScreenHeight - s.ListStartY() - 1
	if rows < 1 {
		return 1
	}
	return rows
}

func (s *AppState) hasParentRow() bool {
	return s.Browser.Status() == StatusListing && !fsutil.IsRoot(s.Browser.CurrentPath())
}

func (s *AppState) resetViewport() {
	s.SelectedIndex = 0
	s.ScrollOffset = 0
}

func (s *AppState) clampSelection() {
	count := s.RowCount()
	if s.SelectedIndex >= count {
		s.SelectedIndex = count - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	s.ensureSelectionVisible()
}

func (s *AppState) ensureSelectionVisible() {
	visible := s.VisibleRows()
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ScrollOffset+visible {
		s.ScrollOffset = s.SelectedIndex - visible + 1
	}
	if maxOffset := s.RowCount() - visible; s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}
