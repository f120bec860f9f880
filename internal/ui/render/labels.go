package render

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
)

// highlightSpan is a half-open rune range.
type highlightSpan struct {
	start int
	end   int
}

// entryLabel is the text shown for path: name while browsing, or the path
// below root with its last segment replaced by name while showing search
// results. name is the display form of the last segment.
func entryLabel(root, path, name string, searching bool) string {
	if path == fsutil.ParentMarker {
		return fsutil.ParentMarker
	}
	if name == "" {
		name = fsutil.LastSegment(path)
	}
	if !searching {
		return name
	}
	rel := relativeTo(root, path)
	return rel[:len(rel)-len(fsutil.LastSegment(rel))] + name
}

func relativeTo(root, path string) string {
	if path == root {
		return "."
	}
	prefix := root
	if !fsutil.IsRoot(root) {
		prefix += string(filepath.Separator)
	}
	if rel, ok := strings.CutPrefix(path, prefix); ok && rel != "" {
		return rel
	}
	return path
}

// matchSpans marks every occurrence of term inside the last segment of
// label, which is the only part a search matched against.
func matchSpans(label, term string) []highlightSpan {
	if term == "" || label == "" {
		return nil
	}
	name := fsutil.LastSegment(label)
	base := utf8.RuneCountInString(label[:len(label)-len(name)])
	termRunes := utf8.RuneCountInString(term)

	var spans []highlightSpan
	offset := 0
	for {
		idx := strings.Index(name[offset:], term)
		if idx < 0 {
			break
		}
		start := base + utf8.RuneCountInString(name[:offset+idx])
		spans = append(spans, highlightSpan{start: start, end: start + termRunes})
		offset += idx + len(term)
	}
	return spans
}

// clipSpans drops highlighting at or past rune limit, where a truncated
// label stops.
func clipSpans(spans []highlightSpan, limit int) []highlightSpan {
	clipped := spans[:0:0]
	for _, sp := range spans {
		if sp.start >= limit {
			break
		}
		sp.end = min(sp.end, limit)
		clipped = append(clipped, sp)
	}
	return clipped
}
