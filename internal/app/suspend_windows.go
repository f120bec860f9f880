//go:build windows

package app

// Windows consoles have no job control; Ctrl-Z is ignored.
func (app *Application) suspendToShell() {
	app.logger.Debugf("suspend is not supported on windows")
}

func (app *Application) resumeAfterStop() bool {
	return false
}
