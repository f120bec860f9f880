//go:build windows

package fs

import (
	"golang.org/x/sys/windows"
)

const defaultHiddenRule = RuleAttribute

// AttributesSupported reports whether RuleAttribute can read hidden bits here.
func AttributesSupported() bool { return true }

const (
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

func fileAttributes(path string) (uint32, error) {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	return windows.GetFileAttributes(ptr)
}

func isProtectedJunction(path string, readAttrs func(string) (uint32, error)) bool {
	attrs, err := readAttrs(path)
	if err != nil {
		return false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
