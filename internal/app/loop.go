package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/fxplorer/internal/state"
)

const doubleClickThreshold = 300 * time.Millisecond

// clickTracker recognises a second click on the same row.
type clickTracker struct {
	row  int
	when time.Time
}

func (c *clickTracker) click(row int, now time.Time) bool {
	double := c.row == row && !c.when.IsZero() && now.Sub(c.when) <= doubleClickThreshold
	c.row = row
	c.when = now
	if double {
		c.when = time.Time{}
	}
	return double
}

// Run processes input, search results and directory changes until quit.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	interval := app.cfg.TickInterval
	var tickTimer *time.Timer
	var tickCh <-chan time.Time

	startTick := func() {
		if tickCh != nil {
			return
		}
		if tickTimer == nil {
			tickTimer = time.NewTimer(interval)
		} else {
			tickTimer.Reset(interval)
		}
		tickCh = tickTimer.C
	}

	stopTick := func() {
		if tickTimer == nil {
			return
		}
		if !tickTimer.Stop() {
			select {
			case <-tickTimer.C:
			default:
			}
		}
		tickCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		if app.state.Browser.SearchInProgress() {
			startTick()
		} else {
			stopTick()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-tickCh:
			tickCh = nil
			if app.handleAction(statepkg.SearchTickAction{}) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-app.watchChanges():
			if app.handleAction(statepkg.RefreshAction{}) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
		app.syncWatcher()
	}

	stopTick()
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps clicks to selection, double clicks to activation and the
// wheel to cursor movement.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.NavigateUpAction{}
		return
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.NavigateDownAction{}
		return
	case buttons&tcell.Button1 == 0:
		return
	}

	_, y := ev.Position()
	row := y - app.state.ListStartY()
	if row < 0 || row >= app.state.VisibleRows() {
		return
	}
	idx := app.state.ScrollOffset + row
	if idx >= app.state.RowCount() {
		return
	}
	app.actionCh <- statepkg.SelectIndexAction{Index: idx}
	if app.mouse.click(idx, time.Now()) {
		app.actionCh <- statepkg.ActivateAction{}
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Debugf("action %T: %v", action, err)
	}
	return true
}
