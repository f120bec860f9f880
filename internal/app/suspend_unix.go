//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/fxplorer/internal/state"
)

func (app *Application) suspendToShell() {
	// The traversal keeps running while stopped; its results are drained
	// after resume.
	_ = app.screen.Suspend()
	// Stop only this process, not the process group of the launching shell.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		app.logger.Warnf("resume: %v", err)
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.state.ScreenWidth = w
		app.state.ScreenHeight = h
	}
	// The directory may have changed while we were stopped.
	if _, err := app.reducer.Reduce(app.state, statepkg.RefreshAction{}); err != nil {
		app.logger.Debugf("refresh after resume: %v", err)
	}
	return true
}
