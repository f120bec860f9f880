//go:build !windows

package fs

const defaultHiddenRule = RuleDotPrefix

// AttributesSupported reports whether RuleAttribute can read hidden bits here.
func AttributesSupported() bool { return false }

func fileAttributes(string) (uint32, error) {
	return 0, ErrAttributesUnsupported
}

func isProtectedJunction(string, func(string) (uint32, error)) bool {
	return false
}
