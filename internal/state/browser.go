package state

import (
	"context"
	"path/filepath"

	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
	"github.com/kk-code-lab/fxplorer/internal/logger"
	"github.com/kk-code-lab/fxplorer/internal/search"
)

// Status is the browser's current mode.
type Status int

const (
	StatusIdle Status = iota
	StatusListing
	StatusSearching
)

func (s Status) String() string {
	switch s {
	case StatusListing:
		return "listing"
	case StatusSearching:
		return "searching"
	default:
		return "idle"
	}
}

// Opener hands a file to the platform's default application.
type Opener interface {
	Open(path string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(path string) error

func (f OpenerFunc) Open(path string) error { return f(path) }

// Target is an entry the user activated.
type Target struct {
	Path string
	Kind fsutil.Kind
}

// ParentTarget is the ".." pseudo-entry.
func ParentTarget() Target {
	return Target{Path: fsutil.ParentMarker, Kind: fsutil.KindParent}
}

// Options configures a BrowserState.
type Options struct {
	ShowHidden bool
	Classifier fsutil.Classifier
	// Engine defaults to one built from Classifier.
	Engine *search.Engine
	Opener Opener
	Logger logger.Logger
	// Context bounds every search session; defaults to Background.
	Context context.Context
}

// BrowserState holds the current directory, its entries, and at most one
// search session. It is owned by a single goroutine; search sessions only
// ever talk to it through their result channels.
type BrowserState struct {
	currentPath string
	entries     []string
	status      Status
	showHidden  bool

	lister  *fsutil.Lister
	engine  *search.Engine
	opener  Opener
	logger  logger.Logger
	baseCtx context.Context

	session    *search.Session
	searchTerm string
	lastStats  search.Stats
}

// NewBrowserState returns an Idle browser. Call Navigate to list a directory.
func NewBrowserState(opts Options) *BrowserState {
	log := logger.OrNop(opts.Logger)
	engine := opts.Engine
	if engine == nil {
		engine = search.NewEngine(opts.Classifier, search.WithLogger(log))
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return &BrowserState{
		status:     StatusIdle,
		showHidden: opts.ShowHidden,
		lister:     fsutil.NewLister(opts.Classifier),
		engine:     engine,
		opener:     opts.Opener,
		logger:     log,
		baseCtx:    ctx,
	}
}

// CurrentPath is the directory being browsed or searched.
func (b *BrowserState) CurrentPath() string { return b.currentPath }

// Entries returns the listing or the accumulated search results, in order.
// The slice must not be modified.
func (b *BrowserState) Entries() []string { return b.entries }

// Status reports the current mode.
func (b *BrowserState) Status() Status { return b.status }

// ShowHidden reports whether hidden entries are listed and searched.
func (b *BrowserState) ShowHidden() bool { return b.showHidden }

// SearchTerm is the term of the current or last search.
func (b *BrowserState) SearchTerm() string { return b.searchTerm }

// SearchInProgress reports whether a traversal may still deliver results.
func (b *BrowserState) SearchInProgress() bool { return b.session != nil }

// SearchStats returns progress of the live session, or of the last one.
func (b *BrowserState) SearchStats() search.Stats {
	if b.session != nil {
		return b.session.Stats()
	}
	return b.lastStats
}

// Navigate stops any search and lists path. On failure nothing but the
// search changes and the *fs.NavigationError is returned.
func (b *BrowserState) Navigate(path string) error {
	b.StopSearch()

	if path == fsutil.ParentMarker {
		path = fsutil.Parent(b.currentPath)
	} else if !filepath.IsAbs(path) && b.currentPath != "" {
		path = filepath.Join(b.currentPath, path)
	}
	path = fsutil.CleanPath(path)

	entries, err := b.lister.List(path, b.showHidden)
	if err != nil {
		b.logger.Warnf("navigate %s: %v", path, err)
		return err
	}

	b.currentPath = path
	b.entries = entries
	b.status = StatusListing
	b.logger.Debugf("navigate %s: %d entries", path, len(entries))
	return nil
}

// NavigateUp lists the parent of the current directory.
func (b *BrowserState) NavigateUp() error {
	return b.Navigate(fsutil.Parent(b.currentPath))
}

// Search replaces the entries with the results of a new search for term
// below the current directory. A running search is stopped first.
func (b *BrowserState) Search(term string) {
	b.StopSearch()

	b.searchTerm = term
	b.entries = []string{}
	b.lastStats = search.Stats{}
	b.session = b.engine.Start(b.baseCtx, b.currentPath, term, b.showHidden)
	b.status = StatusSearching
}

// StopSearch stops the running search, if any. Results gathered so far stay.
func (b *BrowserState) StopSearch() {
	if b.session == nil {
		return
	}
	b.session.Stop()
	b.lastStats = b.session.Stats()
	b.logger.Debugf("search %s: stopped by browser", b.session.ID())
	b.session = nil
}

// ExitSearch stops the search and restores the directory listing.
func (b *BrowserState) ExitSearch() error {
	b.StopSearch()
	b.searchTerm = ""
	return b.Navigate(b.currentPath)
}

// Drain appends every buffered search result to the entries without
// blocking and returns how many were added. A finished session is dropped.
func (b *BrowserState) Drain() int {
	if b.session == nil {
		return 0
	}
	paths, finished := b.session.Drain()
	b.entries = append(b.entries, paths...)
	if finished {
		b.lastStats = b.session.Stats()
		b.session = nil
	}
	return len(paths)
}

// Resolve classifies path for activation.
func (b *BrowserState) Resolve(path string) (Target, error) {
	if path == fsutil.ParentMarker {
		return ParentTarget(), nil
	}
	kind, err := fsutil.KindOf(path)
	if err != nil {
		return Target{}, &fsutil.NavigationError{Path: path, Err: err}
	}
	return Target{Path: path, Kind: kind}, nil
}

// ActivatePath resolves path and activates it.
func (b *BrowserState) ActivatePath(path string) error {
	target, err := b.Resolve(path)
	if err != nil {
		b.logger.Warnf("activate %s: %v", path, err)
		return err
	}
	return b.Activate(target)
}

// Activate stops any search, then navigates into directories and the
// parent entry, or opens files with the default application. Open failures
// are logged, never returned. Opening a search result leaves the search:
// currentPath stays put and its listing is shown again.
func (b *BrowserState) Activate(target Target) error {
	b.StopSearch()

	switch target.Kind {
	case fsutil.KindParent:
		return b.NavigateUp()
	case fsutil.KindDirectory:
		return b.Navigate(target.Path)
	}

	b.open(target.Path)
	if b.status != StatusSearching {
		return nil
	}
	entries, err := b.lister.List(b.currentPath, b.showHidden)
	if err != nil {
		// currentPath vanished under us; nothing sensible to list.
		b.status = StatusIdle
		b.entries = nil
		return err
	}
	b.entries = entries
	b.status = StatusListing
	return nil
}

func (b *BrowserState) open(path string) {
	if b.opener == nil {
		b.logger.Warnf("open %s: no opener available", path)
		return
	}
	if err := b.opener.Open(path); err != nil {
		b.logger.Warnf("open %s: %v", path, err)
	}
}

// ToggleHidden flips the hidden-file policy and re-lists, or restarts the
// search with the new policy.
func (b *BrowserState) ToggleHidden() error {
	b.showHidden = !b.showHidden
	if b.status == StatusSearching {
		b.Search(b.searchTerm)
		return nil
	}
	return b.Refresh()
}

// Refresh re-lists the current directory. It does nothing while searching.
func (b *BrowserState) Refresh() error {
	if b.status != StatusListing {
		return nil
	}
	entries, err := b.lister.List(b.currentPath, b.showHidden)
	if err != nil {
		return err
	}
	b.entries = entries
	return nil
}
