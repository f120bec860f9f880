package search

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
	"github.com/kk-code-lab/fxplorer/internal/logger"
)

const defaultResultBuffer = 256

// Engine starts cancellable background searches below a directory.
type Engine struct {
	classifier fsutil.Classifier
	logger     logger.Logger
	buffer     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithResultBuffer sets the capacity of each session's result channel.
func WithResultBuffer(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.buffer = n
		}
	}
}

// WithLogger routes traversal diagnostics to l.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.OrNop(l)
	}
}

// NewEngine returns an engine that applies classifier to decide which
// entries and subtrees are hidden.
func NewEngine(classifier fsutil.Classifier, opts ...Option) *Engine {
	e := &Engine{
		classifier: classifier,
		logger:     logger.Nop(),
		buffer:     defaultResultBuffer,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start spawns a traversal of root's descendants and returns its session.
// Every entry whose last path segment contains term is sent on the
// session's result channel as soon as it is found. With showHidden unset,
// hidden entries are skipped and hidden directories are not descended into.
// The traversal stops when ctx is done or the session is stopped.
func (e *Engine) Start(ctx context.Context, root, term string, showHidden bool) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	s := &Session{
		id:         uuid.NewString(),
		root:       root,
		term:       term,
		showHidden: showHidden,
		results:    make(chan string, e.buffer),
		done:       make(chan struct{}),
		cancel:     cancel,
	}

	e.logger.Debugf("search %s: start root=%s term=%q hidden=%t", s.id, root, term, showHidden)
	go e.run(ctx, s)
	return s
}

func (e *Engine) run(ctx context.Context, s *Session) {
	defer close(s.done)
	defer close(s.results)
	defer s.cancel()

	err := e.walk(ctx, s, s.root)

	stats := s.Stats()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		e.logger.Debugf("search %s: cancelled after visiting %d entries (%d matches)", s.id, stats.Visited, stats.Matched)
		return
	}
	e.logger.Debugf("search %s: finished, visited %d entries (%d matches)", s.id, stats.Visited, stats.Matched)
}

// walk visits dir's children depth-first, in directory read order. Symlinks
// are reported but not followed.
func (e *Engine) walk(ctx context.Context, s *Session, dir string) error {
	dirents, err := fsutil.ReadDir(dir)
	if err != nil {
		e.logger.Debugf("search %s: skipping %s: %v", s.id, dir, err)
	}

	for _, d := range dirents {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		fullPath := filepath.Join(dir, name)
		s.visited.Add(1)

		if e.classifier.Excluded(fullPath) {
			continue
		}
		if !s.showHidden && e.classifier.IsHidden(fullPath) {
			continue
		}

		if strings.Contains(name, s.term) {
			if err := s.emit(ctx, fullPath); err != nil {
				return err
			}
		}

		if d.IsDir() {
			if err := e.walk(ctx, s, fullPath); err != nil {
				return err
			}
		}
	}
	return nil
}
