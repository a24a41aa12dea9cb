package dispatch

import (
	"fmt"
	"regexp"
)

// TypeSet maps placeholder type tags to the expression fragment a tagged
// placeholder matches. Pattern compilation is a pure function of the
// pattern text and the TypeSet contents at the moment of the compile.
type TypeSet struct {
	tags map[string]string
}

// DefaultTypes returns a TypeSet with the built-in tags:
//
//	i   [0-9]+          integer
//	a   [A-Za-z]+       alphabetic
//	h   [0-9A-Fa-f]+    hexadecimal
//	s   [0-9A-Za-z_-]+  URL slug
//
// An untyped placeholder matches one path segment and needs no entry.
func DefaultTypes() *TypeSet {
	return &TypeSet{
		tags: map[string]string{
			"i": `[0-9]+`,
			"a": `[A-Za-z]+`,
			"h": `[0-9A-Fa-f]+`,
			"s": `[0-9A-Za-z_-]+`,
		},
	}
}

// Register adds or replaces a tag. Tags consist of letters and digits.
// The fragment must be a valid regular expression; it is checked here so
// a later pattern compile fails only for the pattern's own syntax.
func (ts *TypeSet) Register(tag, fragment string) error {
	if !validTag(tag) {
		return fmt.Errorf("%w: type tag %q", ErrPatternSyntax, tag)
	}
	if _, err := regexp.Compile(fragment); err != nil {
		return fmt.Errorf("%w: type %q fragment %q: %v", ErrPatternSyntax, tag, fragment, err)
	}
	ts.tags[tag] = fragment
	return nil
}

// fragment returns the expression registered for tag.
func (ts *TypeSet) fragment(tag string) (string, bool) {
	f, ok := ts.tags[tag]
	return f, ok
}

// validTag reports whether s is a non-empty run of letters and digits.
func validTag(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return s != ""
}
