package dispatch

import (
	"fmt"
	"strings"
)

// pathFor renders the pattern with params substituted for its
// placeholders. An optional group is omitted entirely unless every
// placeholder directly inside it has a value; nested groups decide for
// themselves. A missing placeholder outside any optional group is an
// error, as is a positional placeholder, which cannot be supplied by
// name.
func (m *matcher) pathFor(params Params) (string, error) {
	var b strings.Builder
	if err := m.render(&b, m.segs, params); err != nil {
		return "", err
	}
	// "/" and patterns whose groups were all omitted still name the root.
	if b.Len() == 0 && m.pattern != "" {
		return "/", nil
	}

	return b.String(), nil
}

func (m *matcher) render(b *strings.Builder, segs []segment, params Params) error {
	for i := range segs {
		s := &segs[i]
		switch s.kind {
		case segLiteral:
			b.WriteString(s.text)

		case segGroup:
			if !m.satisfied(s.children, params) {
				continue
			}
			if err := m.render(b, s.children, params); err != nil {
				return err
			}

		case segCapture:
			c := &m.captures[s.idx]
			if c.name == "" {
				return fmt.Errorf("%w: %q has a positional placeholder", ErrMissingParameter, m.pattern)
			}
			v, ok := params[c.name]
			if !ok {
				return fmt.Errorf("%w: %q", ErrMissingParameter, c.name)
			}
			if !c.check.MatchString(v) {
				return fmt.Errorf("%w: %q = %q, expected %q", ErrParameterValue, c.name, v, c.fragment)
			}
			b.WriteString(v)
		}
	}

	return nil
}

// satisfied reports whether every placeholder directly inside an
// optional group has a value.
func (m *matcher) satisfied(segs []segment, params Params) bool {
	for i := range segs {
		s := &segs[i]
		if s.kind != segCapture {
			continue
		}
		c := &m.captures[s.idx]
		if c.name == "" {
			return false
		}
		if _, ok := params[c.name]; !ok {
			return false
		}
	}

	return true
}
