package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/fxplorer/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ih.state != nil && ih.state.PromptActive {
			return ih.processPromptKey(ev)
		}
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processPromptKey edits the search term or go-to path.
func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.SearchCancelAction{}
	case tcell.KeyEnter:
		if ih.state.PromptKind == statepkg.PromptGoTo {
			ih.actionChan <- statepkg.GoToPathAction{Path: ih.state.PromptQuery}
		} else {
			ih.actionChan <- statepkg.SearchSubmitAction{}
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.SearchBackspaceAction{}
	case tcell.KeyRune:
		ih.actionChan <- statepkg.SearchCharAction{Char: ev.Rune()}
	}
	return true
}

// processKeyEvent handles keyboard input outside the prompt
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.SearchCancelAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.JumpToStartAction{}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.JumpToEndAction{}
	case tcell.KeyEnter, tcell.KeyRight:
		ih.actionChan <- statepkg.ActivateAction{}
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.GoUpAction{}
	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case 'k':
		ih.actionChan <- statepkg.NavigateUpAction{}
	case 'j':
		ih.actionChan <- statepkg.NavigateDownAction{}
	case 'g':
		ih.actionChan <- statepkg.JumpToStartAction{}
	case 'G':
		ih.actionChan <- statepkg.JumpToEndAction{}
	case 'l':
		ih.actionChan <- statepkg.ActivateAction{}
	case 'h':
		ih.actionChan <- statepkg.GoUpAction{}
	case '/':
		ih.actionChan <- statepkg.SearchStartAction{}
	case '.':
		ih.actionChan <- statepkg.ToggleHiddenFilesAction{}
	case '~':
		ih.actionChan <- statepkg.GoHomeAction{}
	case ':':
		ih.actionChan <- statepkg.GoToPromptAction{}
	case 'r':
		ih.actionChan <- statepkg.RefreshAction{}
	}
	return true
}
