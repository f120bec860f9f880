package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type JumpToStartAction struct{}
type JumpToEndAction struct{}

// SelectIndexAction moves the cursor to a row, e.g. after a mouse click.
type SelectIndexAction struct {
	Index int
}

// ActivateAction opens the selected row: directories are entered, files are
// handed to the default application.
type ActivateAction struct{}
type GoUpAction struct{}
type GoHomeAction struct{}

// GoToPathAction lists Path; relative paths resolve against the current
// directory and a leading "~" against the home directory.
type GoToPathAction struct {
	Path string
}

// GoToPromptAction opens the prompt for a path, prefilled with the
// current directory.
type GoToPromptAction struct{}

// ===== SEARCH ACTIONS =====

type SearchStartAction struct{}
type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type SearchSubmitAction struct{}

// SearchCancelAction closes the prompt, or leaves search results and
// restores the directory listing.
type SearchCancelAction struct{}

// SearchTickAction pulls buffered results into the view; sent once per
// refresh tick.
type SearchTickAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type ToggleHiddenFilesAction struct{}

// RefreshAction re-reads the current directory after it changed on disk.
type RefreshAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
