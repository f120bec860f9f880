package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/fxplorer/internal/config"
	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
	statepkg "github.com/kk-code-lab/fxplorer/internal/state"
)

func newTestApp(t *testing.T, root string, opener statepkg.Opener) *Application {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	scr.SetSize(80, 20)

	cfg := config.DefaultConfig()
	cfg.HiddenRule = "dot"
	app, err := newApplication(scr, Options{Config: cfg, StartDir: root}, opener)
	if err != nil {
		t.Fatalf("newApplication: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func typeKeys(app *Application, text string) {
	for _, r := range text {
		app.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, 0))
		app.processActions()
	}
}

func TestNewApplicationListsStartDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt", ".hidden")
	app := newTestApp(t, root, nil)

	if app.CurrentPath() != fsutil.CleanPath(root) {
		t.Fatalf("CurrentPath = %q", app.CurrentPath())
	}
	if got := len(app.state.Browser.Entries()); got != 1 {
		t.Fatalf("entries = %v", app.state.Browser.Entries())
	}
	if app.state.ScreenWidth != 80 || app.state.ScreenHeight != 20 {
		t.Fatalf("screen size not copied: %dx%d", app.state.ScreenWidth, app.state.ScreenHeight)
	}
}

func TestNewApplicationFailsOnMissingDir(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer scr.Fini()

	_, err := newApplication(scr, Options{StartDir: filepath.Join(t.TempDir(), "missing")}, nil)
	if err == nil {
		t.Fatalf("expected error for missing start dir")
	}
}

func TestKeyboardSearchFlow(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "notes/todo.md", "todo.txt", "other.txt")
	app := newTestApp(t, root, nil)

	typeKeys(app, "/todo")
	app.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	app.processActions()

	browser := app.state.Browser
	if browser.Status() != statepkg.StatusSearching || browser.SearchTerm() != "todo" {
		t.Fatalf("search not started: %v %q", browser.Status(), browser.SearchTerm())
	}

	deadline := time.Now().Add(5 * time.Second)
	for browser.SearchInProgress() {
		if time.Now().After(deadline) {
			t.Fatalf("search did not finish")
		}
		app.handleAction(statepkg.SearchTickAction{})
		time.Sleep(time.Millisecond)
	}
	if got := len(browser.Entries()); got != 2 {
		t.Fatalf("results = %v", browser.Entries())
	}

	app.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	app.processActions()
	if browser.Status() != statepkg.StatusListing || len(browser.Entries()) != 3 {
		t.Fatalf("escape should restore listing: %v %v", browser.Status(), browser.Entries())
	}
}

func TestKeyboardGoToFlow(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "deep/er/file.txt")
	app := newTestApp(t, root, nil)

	typeKeys(app, ":deep")
	if !app.state.PromptActive || app.state.PromptKind != statepkg.PromptGoTo {
		t.Fatalf("go-to prompt not open")
	}
	app.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	app.processActions()

	want := filepath.Join(fsutil.CleanPath(root), "deep")
	if app.CurrentPath() != want || app.state.PromptActive {
		t.Fatalf("at %q (prompt %v), want %q", app.CurrentPath(), app.state.PromptActive, want)
	}
}

func TestQuitKeyStopsLoop(t *testing.T) {
	app := newTestApp(t, t.TempDir(), nil)
	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	if !app.shouldQuit {
		t.Fatalf("q should quit")
	}
}

func TestMouseDoubleClickActivates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "sub/file.txt")
	app := newTestApp(t, root, nil)

	// Row 0 is "..", row 1 is "sub"; the list starts on screen row 1.
	click := func() {
		app.handleEvent(tcell.NewEventMouse(3, 2, tcell.Button1, 0))
		app.processActions()
	}
	click()
	if app.state.SelectedIndex != 1 {
		t.Fatalf("SelectedIndex = %d, want 1", app.state.SelectedIndex)
	}
	click()
	if app.CurrentPath() != filepath.Join(fsutil.CleanPath(root), "sub") {
		t.Fatalf("double click should enter sub, at %q", app.CurrentPath())
	}
}

func TestActivateFileUsesOpener(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "only.txt")
	var opened string
	app := newTestApp(t, root, statepkg.OpenerFunc(func(p string) error {
		opened = p
		return nil
	}))

	app.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, 0))
	app.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	app.processActions()

	if opened != filepath.Join(fsutil.CleanPath(root), "only.txt") {
		t.Fatalf("opened %q", opened)
	}
}

func TestWatcherFollowsNavigation(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "sub/x")
	app := newTestApp(t, root, nil)
	if app.watcher == nil {
		t.Skip("fsnotify unavailable")
	}
	if app.watcher.Dir() != fsutil.CleanPath(root) {
		t.Fatalf("watching %q", app.watcher.Dir())
	}

	app.handleAction(statepkg.GoToPathAction{Path: filepath.Join(root, "sub")})
	app.syncWatcher()
	if app.watcher.Dir() != filepath.Join(fsutil.CleanPath(root), "sub") {
		t.Fatalf("watcher did not follow: %q", app.watcher.Dir())
	}

	writeTree(t, root, "sub/y")
	select {
	case <-app.watchChanges():
		app.handleAction(statepkg.RefreshAction{})
	case <-time.After(3 * time.Second):
		t.Fatalf("no change signal")
	}
	if got := len(app.state.Browser.Entries()); got != 2 {
		t.Fatalf("entries after refresh = %v", app.state.Browser.Entries())
	}
}
