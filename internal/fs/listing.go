package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Lister reads a single directory level, honouring the hidden-file policy.
type Lister struct {
	Classifier Classifier
}

// NewLister returns a Lister using classifier.
func NewLister(classifier Classifier) *Lister {
	return &Lister{Classifier: classifier}
}

// List returns the full paths of dir's immediate children in directory
// read order. Hidden children are dropped unless showHidden is set, and so
// are children whose metadata cannot be read.
func (l *Lister) List(dir string, showHidden bool) ([]string, error) {
	entries, err := l.Entries(dir, showHidden)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.FullPath
	}
	return paths, nil
}

// Entries is List with metadata for display.
func (l *Lister) Entries(dir string, showHidden bool) ([]Entry, error) {
	dirents, err := readDirUnsorted(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		fullPath := filepath.Join(dir, d.Name())
		if !l.visible(fullPath, showHidden) {
			continue
		}
		entry, err := EntryFor(fullPath, d)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// EntryFor builds an Entry from a directory entry. Symlinks to
// directories are reported as directories.
func EntryFor(fullPath string, d os.DirEntry) (Entry, error) {
	info, err := d.Info()
	if err != nil {
		return Entry{}, err
	}

	kind := KindFile
	if d.IsDir() {
		kind = KindDirectory
	}
	isSymlink := info.Mode()&os.ModeSymlink != 0
	if isSymlink {
		if target, err := os.Stat(fullPath); err == nil && target.IsDir() {
			kind = KindDirectory
		}
	}

	return Entry{
		Name:      norm.NFC.String(d.Name()),
		FullPath:  fullPath,
		Kind:      kind,
		IsSymlink: isSymlink,
	}, nil
}

// Stat builds the Entry for a single path without following a final symlink.
func Stat(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}
	return EntryFor(path, iofs.FileInfoToDirEntry(info))
}

func (l *Lister) visible(fullPath string, showHidden bool) bool {
	if l.Classifier.Excluded(fullPath) {
		return false
	}
	return showHidden || !l.Classifier.IsHidden(fullPath)
}

// readDirUnsorted is os.ReadDir without the sort.
func readDirUnsorted(dir string) ([]os.DirEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &NavigationError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &NavigationError{Path: dir, Err: ErrNotDirectory}
	}

	f, err := os.Open(dir)
	if err != nil {
		return nil, &NavigationError{Path: dir, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	dirents, err := f.ReadDir(-1)
	if err != nil && len(dirents) == 0 {
		return nil, &NavigationError{Path: dir, Err: err}
	}
	return dirents, nil
}

// ReadDir exposes the unsorted single-level read to the search walker.
func ReadDir(dir string) ([]os.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return f.ReadDir(-1)
}
