package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

// execute runs the command tree with an isolated, missing config file.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cmd.SetArgs(append([]string{"--config=" + cfgPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func lines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestSearchPrintsMatches(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "foo.txt", "sub/afoo.go", "sub/bar.txt", ".git/foo")

	out, _, err := execute(t, "search", "foo", root)
	require.NoError(t, err)

	base := fsutil.CleanPath(root)
	assert.ElementsMatch(t, []string{
		filepath.Join(base, "foo.txt"),
		filepath.Join(base, "sub", "afoo.go"),
	}, lines(out))
}

func TestSearchHiddenFlag(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".git/foo", "foo")

	out, _, err := execute(t, "search", "--hidden", "foo", root)
	require.NoError(t, err)

	base := fsutil.CleanPath(root)
	assert.ElementsMatch(t, []string{
		filepath.Join(base, ".git", "foo"),
		filepath.Join(base, "foo"),
	}, lines(out))
}

func TestSearchIsCaseSensitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "Foo", "foo")

	out, _, err := execute(t, "search", "Foo", root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(fsutil.CleanPath(root), "Foo")}, lines(out))
}

func TestSearchStats(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a", "b", "ab")

	_, stderr, err := execute(t, "search", "--stats", "a", root)
	require.NoError(t, err)
	assert.Equal(t, "2 matches, 3 entries scanned\n", stderr)
}

func TestSearchRejectsMissingAndFileRoots(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "file")

	_, _, err := execute(t, "search", "x", filepath.Join(root, "missing"))
	var navErr *fsutil.NavigationError
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, fsutil.ReasonNotFound, navErr.Reason())

	_, _, err = execute(t, "search", "x", filepath.Join(root, "file"))
	require.ErrorIs(t, err, fsutil.ErrNotDirectory)
}

func TestSearchRequiresTerm(t *testing.T) {
	_, _, err := execute(t, "search")
	require.Error(t, err)
}

func TestInvalidLogLevelFlag(t *testing.T) {
	_, _, err := execute(t, "search", "--log-level", "loud", "x", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestSearchWritesLogFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a")
	logPath := filepath.Join(t.TempDir(), "fx.log")

	_, _, err := execute(t, "search", "--log-file", logPath, "--log-level", "debug", "a", root)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG]")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "fxplorer "+Version), out)
}

func TestRootHelpMentionsSearch(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "search")
	assert.Contains(t, out, "--hidden")
}

func TestMatchPrinterHighlightsLastSegment(t *testing.T) {
	var buf bytes.Buffer
	p := newMatchPrinter(&buf, "foo", true, true)
	path := filepath.Join(string(filepath.Separator)+"foo", "xfoo")
	require.NoError(t, p.print(path))

	out := buf.String()
	assert.Contains(t, out, "\x1b[", "color should be forced on")
	// The directory part is dimmed but never highlighted.
	assert.Equal(t, 1, strings.Count(out, "\x1b[33;1m"))

	buf.Reset()
	p = newMatchPrinter(&buf, "foo", false, false)
	require.NoError(t, p.print(path))
	assert.Equal(t, path+"\n", buf.String())
}

func TestMatchPrinterSanitisesWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	p := newMatchPrinter(&buf, "foo", false, true)
	require.NoError(t, p.print(filepath.Join("dir", "foo\x1b]0;pwned\x07")))

	out := buf.String()
	assert.NotContains(t, out, "\x1b", "escape sequences must not reach a terminal")
	assert.NotContains(t, out, "\x07")
	assert.Equal(t, filepath.Join("dir", "foo?]0;pwned?")+"\n", out)
}

func TestColorDisabledForNonTerminal(t *testing.T) {
	assert.False(t, colorEnabled(&bytes.Buffer{}, false))
	assert.False(t, colorEnabled(os.Stdout, true))
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
