package fs

import (
	"os"
)

// Kind classifies an activation target.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	// KindParent is the ".." pseudo-entry shown above a listing.
	KindParent
)

// ParentMarker is the display name of the parent pseudo-entry.
const ParentMarker = ".."

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindParent:
		return "parent"
	default:
		return "file"
	}
}

// Entry represents a single file or directory on disk. Name is NFC
// normalised for display; FullPath keeps the bytes the directory returned.
type Entry struct {
	Name      string
	FullPath  string
	Kind      Kind
	IsSymlink bool
}

// IsDir reports whether the entry can be navigated into.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory || e.Kind == KindParent
}

// KindOf stats path (following symlinks) and reports its kind.
func KindOf(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return KindFile, err
	}
	if info.IsDir() {
		return KindDirectory, nil
	}
	return KindFile, nil
}
