package fs

import "os"

// pathStyle describes the separators of one platform's path syntax.
type pathStyle struct {
	sep    byte
	alt    byte
	drives bool
}

var (
	unixStyle    = pathStyle{sep: '/', alt: '/'}
	windowsStyle = pathStyle{sep: '\\', alt: '/', drives: true}
)

var nativeStyle = func() pathStyle {
	if os.PathSeparator == '\\' {
		return windowsStyle
	}
	return unixStyle
}()

func (s pathStyle) isSep(c byte) bool {
	return c == s.sep || c == s.alt
}

func (s pathStyle) lastSep(p string) int {
	for i := len(p) - 1; i >= 0; i-- {
		if s.isSep(p[i]) {
			return i
		}
	}
	return -1
}

func (s pathStyle) isDrive(p string) bool {
	if !s.drives || len(p) != 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (s pathStyle) clean(p string) string {
	if p == "" {
		return p
	}
	end := len(p)
	for end > 0 && s.isSep(p[end-1]) {
		end--
	}
	if end == 0 {
		return string(s.sep)
	}
	p = p[:end]
	if s.isDrive(p) {
		return p + string(s.sep)
	}
	return p
}

func (s pathStyle) isRoot(p string) bool {
	return p == string(s.sep) || (len(p) == 3 && s.isDrive(p[:2]) && s.isSep(p[2]))
}

func (s pathStyle) parent(p string) string {
	p = s.clean(p)
	if p == "" || s.isRoot(p) {
		return p
	}
	i := s.lastSep(p)
	if i < 0 {
		return p
	}
	if i == 0 {
		return string(s.sep)
	}
	return s.clean(p[:i])
}

func (s pathStyle) lastSegment(p string) string {
	return p[s.lastSep(p)+1:]
}

// LastSegment returns the text after the final path separator.
func LastSegment(path string) string {
	return nativeStyle.lastSegment(path)
}

// CleanPath drops trailing separators. A root or drive designator keeps
// exactly one ("/", `C:\`).
func CleanPath(path string) string {
	return nativeStyle.clean(path)
}

// Parent returns the directory one level above path. Roots are their own
// parent; a path without any separator is returned unchanged.
func Parent(path string) string {
	return nativeStyle.parent(path)
}

// IsRoot reports whether path is a filesystem root or drive root.
func IsRoot(path string) bool {
	return nativeStyle.isRoot(nativeStyle.clean(path))
}
