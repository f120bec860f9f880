package input

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
	statepkg "github.com/kk-code-lab/fxplorer/internal/state"
)

func newHandler(prompt bool) (*InputHandler, chan statepkg.Action) {
	actionChan := make(chan statepkg.Action, 4)
	handler := NewInputHandler(actionChan)
	browser := statepkg.NewBrowserState(statepkg.Options{Classifier: fsutil.NewClassifier(fsutil.RuleDotPrefix, nil)})
	handler.SetState(&statepkg.AppState{Browser: browser, PromptActive: prompt})
	return handler, actionChan
}

func expectAction(t *testing.T, actionChan chan statepkg.Action, want statepkg.Action) {
	t.Helper()
	select {
	case action := <-actionChan:
		if fmt.Sprintf("%T%v", action, action) != fmt.Sprintf("%T%v", want, want) {
			t.Fatalf("expected %T%v, got %T%v", want, want, action, action)
		}
	default:
		t.Fatalf("expected %T to be emitted", want)
	}
}

func TestNormalModeKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, 0), statepkg.NavigateUpAction{}},
		{"k", tcell.NewEventKey(tcell.KeyRune, 'k', 0), statepkg.NavigateUpAction{}},
		{"j", tcell.NewEventKey(tcell.KeyRune, 'j', 0), statepkg.NavigateDownAction{}},
		{"enter activates", tcell.NewEventKey(tcell.KeyEnter, 0, 0), statepkg.ActivateAction{}},
		{"right activates", tcell.NewEventKey(tcell.KeyRight, 0, 0), statepkg.ActivateAction{}},
		{"l activates", tcell.NewEventKey(tcell.KeyRune, 'l', 0), statepkg.ActivateAction{}},
		{"left goes up", tcell.NewEventKey(tcell.KeyLeft, 0, 0), statepkg.GoUpAction{}},
		{"backspace goes up", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), statepkg.GoUpAction{}},
		{"h goes up", tcell.NewEventKey(tcell.KeyRune, 'h', 0), statepkg.GoUpAction{}},
		{"slash opens prompt", tcell.NewEventKey(tcell.KeyRune, '/', 0), statepkg.SearchStartAction{}},
		{"escape leaves search", tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.SearchCancelAction{}},
		{"dot toggles hidden", tcell.NewEventKey(tcell.KeyRune, '.', 0), statepkg.ToggleHiddenFilesAction{}},
		{"tilde goes home", tcell.NewEventKey(tcell.KeyRune, '~', 0), statepkg.GoHomeAction{}},
		{"colon opens go-to prompt", tcell.NewEventKey(tcell.KeyRune, ':', 0), statepkg.GoToPromptAction{}},
		{"r refreshes", tcell.NewEventKey(tcell.KeyRune, 'r', 0), statepkg.RefreshAction{}},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, 0), statepkg.ScrollPageDownAction{}},
		{"G jumps to end", tcell.NewEventKey(tcell.KeyRune, 'G', 0), statepkg.JumpToEndAction{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, actionChan := newHandler(false)
			if !handler.ProcessEvent(tt.ev) {
				t.Fatalf("handler should keep running")
			}
			expectAction(t, actionChan, tt.want)
		})
	}
}

func TestPromptModeTypesInsteadOfNavigating(t *testing.T) {
	handler, actionChan := newHandler(true)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	expectAction(t, actionChan, statepkg.SearchCharAction{Char: 'q'})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '.', 0))
	expectAction(t, actionChan, statepkg.SearchCharAction{Char: '.'})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyBackspace, 0, 0))
	expectAction(t, actionChan, statepkg.SearchBackspaceAction{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	expectAction(t, actionChan, statepkg.SearchSubmitAction{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	expectAction(t, actionChan, statepkg.SearchCancelAction{})
}

func TestGoToPromptSubmitsPath(t *testing.T) {
	handler, actionChan := newHandler(true)
	handler.state.PromptKind = statepkg.PromptGoTo
	handler.state.PromptQuery = "/tmp/x"

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'y', 0))
	expectAction(t, actionChan, statepkg.SearchCharAction{Char: 'y'})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	expectAction(t, actionChan, statepkg.GoToPathAction{Path: "/tmp/x"})
}

func TestQuitStopsHandler(t *testing.T) {
	for _, prompt := range []bool{false, true} {
		handler, actionChan := newHandler(prompt)
		if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0)) {
			t.Fatalf("Ctrl-C should stop the handler (prompt=%v)", prompt)
		}
		expectAction(t, actionChan, statepkg.QuitAction{})
	}

	handler, actionChan := newHandler(false)
	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0)) {
		t.Fatalf("q should stop the handler")
	}
	expectAction(t, actionChan, statepkg.QuitAction{})
}

func TestResizeEmitsDimensions(t *testing.T) {
	handler, actionChan := newHandler(false)
	handler.ProcessEvent(tcell.NewEventResize(100, 40))
	expectAction(t, actionChan, statepkg.ResizeAction{Width: 100, Height: 40})
}

func TestUnboundRuneIsIgnored(t *testing.T) {
	handler, actionChan := newHandler(false)
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'z', 0))
	select {
	case action := <-actionChan:
		t.Fatalf("unexpected action %T", action)
	default:
	}
}
