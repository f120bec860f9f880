package render

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestEntryLabel(t *testing.T) {
	root := filepath.Join(string(filepath.Separator)+"home", "user")
	nested := filepath.Join(root, "src", "main.go")

	tests := []struct {
		name      string
		path      string
		display   string
		searching bool
		want      string
	}{
		{"listing uses last segment", nested, "", false, "main.go"},
		{"listing uses display name", filepath.Join(root, "cafe\u0301"), "café", false, "café"},
		{"search is relative to root", nested, "main.go", true, filepath.Join("src", "main.go")},
		{"search swaps in display name", filepath.Join(root, "src", "cafe\u0301"), "café", true, filepath.Join("src", "café")},
		{"parent marker", "..", "..", false, ".."},
		{"outside root keeps full path", filepath.Join(string(filepath.Separator)+"etc", "hosts"), "hosts", true, filepath.Join(string(filepath.Separator)+"etc", "hosts")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entryLabel(root, tt.path, tt.display, tt.searching); got != tt.want {
				t.Fatalf("entryLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelativeToFilesystemRoot(t *testing.T) {
	sep := string(filepath.Separator)
	if filepath.Separator != '/' {
		t.Skip("unix root layout")
	}
	if got := relativeTo(sep, sep+"etc"); got != "etc" {
		t.Fatalf("relativeTo(/, /etc) = %q", got)
	}
}

func TestMatchSpansOnlyInLastSegment(t *testing.T) {
	label := filepath.Join("foo", "afoo_foo")
	got := matchSpans(label, "foo")
	want := []highlightSpan{{start: 5, end: 8}, {start: 9, end: 12}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spans = %v, want %v", got, want)
	}
}

func TestMatchSpansCountsRunes(t *testing.T) {
	got := matchSpans("żółw.txt", "w")
	want := []highlightSpan{{start: 3, end: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spans = %v, want %v", got, want)
	}
	if matchSpans("abc", "") != nil {
		t.Fatalf("empty term should not highlight")
	}
}

func TestClipSpansStopsAtTruncation(t *testing.T) {
	spans := []highlightSpan{{start: 2, end: 5}, {start: 7, end: 9}}
	got := clipSpans(spans, 4)
	want := []highlightSpan{{start: 2, end: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("clipSpans = %v, want %v", got, want)
	}
	if len(clipSpans(spans, 0)) != 0 {
		t.Fatalf("nothing should survive a zero limit")
	}
	if !reflect.DeepEqual(spans, []highlightSpan{{start: 2, end: 5}, {start: 7, end: 9}}) {
		t.Fatalf("input spans mutated: %v", spans)
	}
}
