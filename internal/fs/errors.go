package fs

import (
	"errors"
	iofs "io/fs"
	"syscall"
)

// Reason classifies why a directory could not be opened.
type Reason int

const (
	ReasonOther Reason = iota
	ReasonNotFound
	ReasonPermission
	ReasonNotDirectory
)

func (r Reason) String() string {
	switch r {
	case ReasonNotFound:
		return "no such directory"
	case ReasonPermission:
		return "permission denied"
	case ReasonNotDirectory:
		return "not a directory"
	default:
		return "unreadable"
	}
}

// ErrNotDirectory is matched by NavigationErrors whose target is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// NavigationError reports a directory that could not be listed.
type NavigationError struct {
	Path string
	Err  error
}

func (e *NavigationError) Error() string {
	return "cannot open " + e.Path + ": " + e.Reason().String()
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrNotDirectory.
func (e *NavigationError) Is(target error) bool {
	return target == ErrNotDirectory && e.Reason() == ReasonNotDirectory
}

// Reason derives the failure class from the wrapped error.
func (e *NavigationError) Reason() Reason {
	switch {
	case errors.Is(e.Err, ErrNotDirectory), errors.Is(e.Err, syscall.ENOTDIR):
		return ReasonNotDirectory
	case errors.Is(e.Err, iofs.ErrNotExist):
		return ReasonNotFound
	case errors.Is(e.Err, iofs.ErrPermission):
		return ReasonPermission
	default:
		return ReasonOther
	}
}
