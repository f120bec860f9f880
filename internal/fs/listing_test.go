package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestListFiltersHiddenEntries(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "readme.md"))
	mustWrite(t, filepath.Join(root, ".env"))
	mustWrite(t, filepath.Join(root, "src", "main.go"))

	lister := NewLister(NewClassifier(RuleDotPrefix, nil))

	got, err := lister.List(root, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	sort.Strings(got)
	want := []string{filepath.Join(root, "readme.md"), filepath.Join(root, "src")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("List = %v, want %v", got, want)
	}

	all, err := lister.List(root, true)
	if err != nil {
		t.Fatalf("List(showHidden): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries with hidden shown, got %v", all)
	}
}

func TestListDoesNotRecurse(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "a", "b", "c.txt"))

	got, err := NewLister(NewClassifier(RuleDotPrefix, nil)).List(root, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join(root, "a") {
		t.Fatalf("List = %v", got)
	}
}

func TestListErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	mustWrite(t, file)
	lister := NewLister(NewClassifier(RuleDotPrefix, nil))

	_, err := lister.List(filepath.Join(root, "missing"), false)
	var navErr *NavigationError
	if !errors.As(err, &navErr) || navErr.Reason() != ReasonNotFound {
		t.Fatalf("expected not-found navigation error, got %v", err)
	}
	if !errors.Is(err, iofs.ErrNotExist) {
		t.Fatalf("expected errors.Is ErrNotExist, got %v", err)
	}

	_, err = lister.List(file, false)
	if !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
}

func TestEntriesReportKinds(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "dir", "x"))
	mustWrite(t, filepath.Join(root, "file.txt"))

	entries, err := NewLister(NewClassifier(RuleDotPrefix, nil)).Entries(root, false)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	kinds := map[string]Kind{}
	for _, e := range entries {
		kinds[e.Name] = e.Kind
	}
	if kinds["dir"] != KindDirectory || kinds["file.txt"] != KindFile {
		t.Fatalf("unexpected kinds: %v", kinds)
	}
}

func TestKindOf(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f")
	mustWrite(t, file)

	if k, err := KindOf(root); err != nil || k != KindDirectory {
		t.Fatalf("KindOf(dir) = %v, %v", k, err)
	}
	if k, err := KindOf(file); err != nil || k != KindFile {
		t.Fatalf("KindOf(file) = %v, %v", k, err)
	}
	if _, err := KindOf(filepath.Join(root, "nope")); err == nil {
		t.Fatalf("expected lookup error")
	}
}

func TestStatNormalisesNameAndFlagsSymlinks(t *testing.T) {
	root := t.TempDir()
	decomposed := filepath.Join(root, "cafe\u0301")
	mustWrite(t, decomposed)

	e, err := Stat(decomposed)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if e.Name != "caf\u00e9" || e.FullPath != decomposed || e.Kind != KindFile {
		t.Fatalf("Stat = %+v", e)
	}

	link := filepath.Join(root, "link")
	if err := os.Symlink(root, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	e, err = Stat(link)
	if err != nil {
		t.Fatalf("Stat(link): %v", err)
	}
	if !e.IsSymlink || !e.IsDir() {
		t.Fatalf("link entry = %+v", e)
	}

	if _, err := Stat(filepath.Join(root, "nope")); !errors.Is(err, iofs.ErrNotExist) {
		t.Fatalf("Stat(missing) err = %v", err)
	}
}
