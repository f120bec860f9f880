package fs

import (
	"errors"
	"fmt"
	"strings"
)

// HiddenRule selects how a classifier decides that an entry is hidden.
type HiddenRule int

const (
	// RuleAuto picks the platform default when a Classifier is built.
	RuleAuto HiddenRule = iota
	// RuleDotPrefix hides entries whose name starts with '.'.
	RuleDotPrefix
	// RuleAttribute hides entries carrying the hidden attribute bit.
	RuleAttribute
)

const fileAttributeHidden = 0x02

// ErrAttributesUnsupported is returned by the attribute lookup on platforms
// without a hidden attribute bit.
var ErrAttributesUnsupported = errors.New("file attributes not supported on this platform")

// ParseHiddenRule maps a config value onto a HiddenRule.
func ParseHiddenRule(s string) (HiddenRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return RuleAuto, nil
	case "dot", "dotfile", "dot-prefix":
		return RuleDotPrefix, nil
	case "attribute", "attr":
		return RuleAttribute, nil
	default:
		return RuleAuto, fmt.Errorf("unknown hidden rule %q", s)
	}
}

func (r HiddenRule) String() string {
	switch r {
	case RuleDotPrefix:
		return "dot"
	case RuleAttribute:
		return "attribute"
	default:
		return "auto"
	}
}

// Classifier decides whether a path is hidden. The zero value uses the
// dot-prefix rule.
type Classifier struct {
	rule       HiddenRule
	attributes func(path string) (uint32, error)
	onError    func(path string, err error)
}

// NewClassifier builds a classifier for rule, resolving RuleAuto to the
// platform default. onError, if non-nil, receives attribute lookup failures.
func NewClassifier(rule HiddenRule, onError func(path string, err error)) Classifier {
	if rule == RuleAuto {
		rule = defaultHiddenRule
	}
	return Classifier{
		rule:       rule,
		attributes: fileAttributes,
		onError:    onError,
	}
}

// Rule returns the resolved rule.
func (c Classifier) Rule() HiddenRule {
	if c.rule == RuleAuto {
		return RuleDotPrefix
	}
	return c.rule
}

// IsHidden reports whether path is hidden. Attribute failures count as visible.
func (c Classifier) IsHidden(path string) bool {
	if c.Rule() != RuleAttribute {
		name := LastSegment(path)
		return len(name) > 0 && name[0] == '.'
	}

	readAttrs := c.attributes
	if readAttrs == nil {
		readAttrs = fileAttributes
	}
	attrs, err := readAttrs(path)
	if err != nil {
		if c.onError != nil {
			c.onError(path, err)
		}
		return false
	}
	return attrs&fileAttributeHidden != 0
}

// Excluded reports entries that never appear, even with hidden
// files shown (Windows compatibility junctions).
func (c Classifier) Excluded(path string) bool {
	readAttrs := c.attributes
	if readAttrs == nil {
		readAttrs = fileAttributes
	}
	return isProtectedJunction(path, readAttrs)
}
