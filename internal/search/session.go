package search

import (
	"context"
	"sync"
	"sync/atomic"
)

// Session is one running search. Results arrive on a FIFO channel that the
// traversal closes when it finishes or is stopped.
type Session struct {
	id         string
	root       string
	term       string
	showHidden bool

	results chan string
	done    chan struct{}

	cancel   context.CancelFunc
	stopOnce sync.Once

	visited atomic.Int64
	matched atomic.Int64
}

// Stats is a snapshot of a session's progress.
type Stats struct {
	Visited  int64
	Matched  int64
	Finished bool
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Root is the directory being searched.
func (s *Session) Root() string { return s.root }

// Term is the literal substring being matched.
func (s *Session) Term() string { return s.term }

// Results returns the stream of matching paths.
func (s *Session) Results() <-chan string { return s.results }

// Done is closed once the traversal goroutine has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// Stop asks the traversal to end. It is safe to call more than once, after
// the traversal has finished, and on a nil session. The traversal notices
// the request before visiting its next entry.
func (s *Session) Stop() {
	if s == nil {
		return
	}
	s.stopOnce.Do(s.cancel)
}

// Finished reports whether the traversal has exited.
func (s *Session) Finished() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Drain returns every result currently buffered, in arrival order, without
// waiting for more. finished is true once the stream is closed and empty.
func (s *Session) Drain() (paths []string, finished bool) {
	for {
		select {
		case p, ok := <-s.results:
			if !ok {
				return paths, true
			}
			paths = append(paths, p)
		default:
			return paths, false
		}
	}
}

// Stats returns the current progress counters.
func (s *Session) Stats() Stats {
	return Stats{
		Visited:  s.visited.Load(),
		Matched:  s.matched.Load(),
		Finished: s.Finished(),
	}
}

func (s *Session) emit(ctx context.Context, path string) error {
	select {
	case s.results <- path:
		s.matched.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
