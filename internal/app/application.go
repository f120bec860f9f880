package app

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/fxplorer/internal/config"
	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
	"github.com/kk-code-lab/fxplorer/internal/logger"
	"github.com/kk-code-lab/fxplorer/internal/search"
	statepkg "github.com/kk-code-lab/fxplorer/internal/state"
	inputui "github.com/kk-code-lab/fxplorer/internal/ui/input"
	renderui "github.com/kk-code-lab/fxplorer/internal/ui/render"
	"github.com/kk-code-lab/fxplorer/internal/watch"
)

// Options configures the interactive browser.
type Options struct {
	Config   *config.Config
	StartDir string
	Logger   logger.Logger
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	state    *statepkg.AppState
	reducer  *statepkg.StateReducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action
	watcher  *watch.DirWatcher
	logger   logger.Logger
	cfg      *config.Config

	cancel     context.CancelFunc
	shouldQuit bool
	mouse      clickTracker
}

// NewApplication opens the terminal and lists opts.StartDir.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	app, err := newApplication(screen, opts, detectOpener(opts.Logger))
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(screen tcell.Screen, opts Options, opener statepkg.Opener) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := logger.OrNop(opts.Logger)

	classifier := fsutil.NewClassifier(cfg.Rule(), func(path string, err error) {
		log.Debugf("hidden check %s: %v", path, err)
	})
	engine := search.NewEngine(classifier,
		search.WithResultBuffer(cfg.ResultBuffer),
		search.WithLogger(log),
	)

	ctx, cancel := context.WithCancel(context.Background())
	browser := statepkg.NewBrowserState(statepkg.Options{
		ShowHidden: cfg.ShowHidden,
		Classifier: classifier,
		Engine:     engine,
		Opener:     opener,
		Logger:     log,
		Context:    ctx,
	})
	if err := browser.Navigate(opts.StartDir); err != nil {
		cancel()
		return nil, err
	}

	state := &statepkg.AppState{Browser: browser}
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:   screen,
		state:    state,
		reducer:  statepkg.NewStateReducer(),
		renderer: renderui.NewRenderer(screen, classifier),
		input:    inputHandler,
		actionCh: actionCh,
		logger:   log,
		cfg:      cfg,
		cancel:   cancel,
	}

	if w, err := watch.New(log, 0); err != nil {
		log.Warnf("directory watcher unavailable: %v", err)
	} else {
		app.watcher = w
		app.syncWatcher()
	}
	return app, nil
}

// Close stops any search, the watcher and the terminal.
func (app *Application) Close() error {
	app.state.Browser.StopSearch()
	app.cancel()
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	app.screen.Fini()
	_ = flushConsoleInput()
	return nil
}

// CurrentPath is the directory shown when the app stopped.
func (app *Application) CurrentPath() string {
	return app.state.Browser.CurrentPath()
}

// syncWatcher follows the browser into the directory it now lists.
func (app *Application) syncWatcher() {
	if app.watcher == nil {
		return
	}
	dir := app.state.Browser.CurrentPath()
	if dir == app.watcher.Dir() {
		return
	}
	if err := app.watcher.Watch(dir); err != nil {
		app.logger.Debugf("watch %s: %v", dir, err)
	}
}

func (app *Application) watchChanges() <-chan struct{} {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Changes()
}
