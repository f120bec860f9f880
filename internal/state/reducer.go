package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
)

// StateReducer applies actions to an AppState.
type StateReducer struct{}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies action to state. Navigation failures are returned and
// also recorded in LastError; the browser itself is left unchanged.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {
	case NavigateUpAction:
		r.moveSelection(state, -1)
	case NavigateDownAction:
		r.moveSelection(state, 1)
	case ScrollPageUpAction:
		r.moveSelection(state, -state.VisibleRows())
	case ScrollPageDownAction:
		r.moveSelection(state, state.VisibleRows())
	case JumpToStartAction:
		r.moveSelection(state, -state.RowCount())
	case JumpToEndAction:
		r.moveSelection(state, state.RowCount())
	case SelectIndexAction:
		if a.Index >= 0 && a.Index < state.RowCount() {
			state.SelectedIndex = a.Index
			state.clampSelection()
		}

	case ActivateAction:
		return state, r.activateSelection(state)
	case GoUpAction:
		return state, r.goUp(state)
	case GoHomeAction:
		return r.Reduce(state, GoToPathAction{Path: "~"})
	case GoToPathAction:
		path, err := expandHome(a.Path)
		if err != nil {
			return state, r.fail(state, err)
		}
		return state, r.navigate(state, path)
	case GoToPromptAction:
		state.PromptActive = true
		state.PromptKind = PromptGoTo
		state.PromptQuery = state.Browser.CurrentPath()
		if !fsutil.IsRoot(state.PromptQuery) {
			state.PromptQuery += string(filepath.Separator)
		}
		state.clampSelection()

	case SearchStartAction:
		state.PromptActive = true
		state.PromptKind = PromptSearch
		state.PromptQuery = state.Browser.SearchTerm()
		state.clampSelection()
	case SearchCharAction:
		if state.PromptActive {
			state.PromptQuery += string(a.Char)
		}
	case SearchBackspaceAction:
		if state.PromptActive && state.PromptQuery != "" {
			_, size := utf8.DecodeLastRuneInString(state.PromptQuery)
			state.PromptQuery = state.PromptQuery[:len(state.PromptQuery)-size]
		}
	case SearchSubmitAction:
		if !state.PromptActive {
			return state, nil
		}
		if state.PromptKind == PromptGoTo {
			return r.Reduce(state, GoToPathAction{Path: state.PromptQuery})
		}
		state.PromptActive = false
		state.LastError = nil
		state.Browser.Search(state.PromptQuery)
		state.resetViewport()
	case SearchCancelAction:
		return state, r.cancelSearch(state)
	case SearchTickAction:
		if state.Browser.Drain() > 0 {
			state.clampSelection()
		}

	case ToggleHiddenFilesAction:
		selected, _ := state.SelectedPath()
		if err := state.Browser.ToggleHidden(); err != nil {
			return state, r.fail(state, err)
		}
		r.selectPath(state, selected)
	case RefreshAction:
		selected, _ := state.SelectedPath()
		if err := state.Browser.Refresh(); err != nil {
			return state, r.fail(state, err)
		}
		r.selectPath(state, selected)
	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampSelection()
	}
	return state, nil
}

func (r *StateReducer) moveSelection(state *AppState, delta int) {
	state.SelectedIndex += delta
	state.clampSelection()
}

func (r *StateReducer) activateSelection(state *AppState) error {
	path, ok := state.SelectedPath()
	if !ok {
		return nil
	}
	if path == fsutil.ParentMarker {
		return r.goUp(state)
	}

	beforePath, beforeStatus := state.Browser.CurrentPath(), state.Browser.Status()
	if err := state.Browser.ActivatePath(path); err != nil {
		return r.fail(state, err)
	}
	state.LastError = nil
	if state.Browser.CurrentPath() != beforePath || state.Browser.Status() != beforeStatus {
		state.resetViewport()
	}
	state.clampSelection()
	return nil
}

func (r *StateReducer) goUp(state *AppState) error {
	child := state.Browser.CurrentPath()
	if err := state.Browser.Activate(ParentTarget()); err != nil {
		return r.fail(state, err)
	}
	state.LastError = nil
	state.resetViewport()
	r.selectPath(state, child)
	return nil
}

func (r *StateReducer) navigate(state *AppState, path string) error {
	if err := state.Browser.Navigate(path); err != nil {
		return r.fail(state, err)
	}
	state.LastError = nil
	state.PromptActive = false
	state.resetViewport()
	state.clampSelection()
	return nil
}

func (r *StateReducer) cancelSearch(state *AppState) error {
	if state.PromptActive {
		state.PromptActive = false
		state.clampSelection()
		return nil
	}
	if state.Browser.Status() != StatusSearching {
		return nil
	}
	if err := state.Browser.ExitSearch(); err != nil {
		return r.fail(state, err)
	}
	state.resetViewport()
	state.clampSelection()
	return nil
}

// selectPath moves the cursor to path when it is among the rows.
func (r *StateReducer) selectPath(state *AppState, path string) {
	if path != "" {
		for i := 0; i < state.RowCount(); i++ {
			if state.RowAt(i) == path {
				state.SelectedIndex = i
				break
			}
		}
	}
	state.clampSelection()
}

// expandHome resolves a leading "~" or "~/".
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (r *StateReducer) fail(state *AppState, err error) error {
	state.LastError = err
	return err
}
