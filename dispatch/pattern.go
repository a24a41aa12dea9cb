package dispatch

import (
	"fmt"
	"regexp"
	"strings"
)

// segKind discriminates parsed pattern elements.
type segKind int

const (
	segLiteral segKind = iota
	segCapture
	segGroup
)

// segment is one parsed element of a pattern: a run of literal text, a
// placeholder, or an optional group of nested segments. The parsed tree
// is kept on the compiled matcher so reverse generation can replay the
// pattern with optional groups omitted.
type segment struct {
	kind     segKind
	text     string    // segLiteral: raw text, unescaped
	tag      string    // segCapture: "" default, a type tag, "*", "**", or "@"
	name     string    // segCapture: placeholder name, "" for positional
	expr     string    // segCapture with tag "@": the embedded expression
	idx      int       // segCapture: index into matcher.captures
	children []segment // segGroup
}

// capture describes one placeholder of a compiled pattern, in pattern
// order.
type capture struct {
	name     string         // "" for positional captures
	group    int            // submatch index in the compiled expression
	fragment string         // expression fragment the placeholder matches
	check    *regexp.Regexp // anchored fragment, validates PathFor values
}

// matcher is a compiled pattern. A nil re accepts every path.
type matcher struct {
	pattern  string
	re       *regexp.Regexp
	segs     []segment
	captures []capture
}

// compilePattern compiles pattern against the given types.
//
// The grammar: literal text with [...] blocks. A block is a placeholder
// when its content is "*" or "**" (optionally followed by :name), starts
// with "@" (embedded expression), or has a type tag of letters and digits
// before its first colon; any other block is an optional group, and
// groups nest. One trailing "/" is trimmed before compiling, and the
// matcher accepts paths with and without one trailing "/". Brackets
// inside an embedded expression must stay balanced; escaping them is not
// supported.
func compilePattern(pattern string, types *TypeSet) (*matcher, error) {
	if pattern == "" {
		return &matcher{pattern: pattern}, nil
	}

	trimmed := strings.TrimSuffix(pattern, "/")
	segs, err := parseRegion(pattern, 0, len(trimmed))
	if err != nil {
		return nil, err
	}

	m := &matcher{pattern: pattern}
	e := &emitter{pattern: pattern, types: types, group: 1}

	var expr strings.Builder
	expr.WriteByte('^')
	if err := e.emit(&expr, m, segs); err != nil {
		return nil, err
	}
	expr.WriteString("/?$")

	re, err := compileRegexp(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrPatternSyntax, pattern, err)
	}

	m.re = re
	m.segs = segs
	return m, nil
}

// parseRegion parses pattern[lo:hi] into segments. Positions in errors
// are offsets into the full pattern.
func parseRegion(pattern string, lo, hi int) ([]segment, error) {
	var segs []segment

	lit := lo
	for i := lo; i < hi; {
		switch pattern[i] {
		case '[':
			end, err := closingBracket(pattern, i, hi)
			if err != nil {
				return nil, err
			}
			if lit < i {
				segs = append(segs, segment{kind: segLiteral, text: pattern[lit:i]})
			}
			seg, ok, err := classifyBlock(pattern, i+1, end)
			if err != nil {
				return nil, err
			}
			if ok {
				segs = append(segs, seg)
			}
			i = end + 1
			lit = i
		case ']':
			return nil, fmt.Errorf("%w: %q: unmatched ] at offset %d", ErrPatternSyntax, pattern, i)
		default:
			i++
		}
	}
	if lit < hi {
		segs = append(segs, segment{kind: segLiteral, text: pattern[lit:hi]})
	}

	return segs, nil
}

// closingBracket returns the index of the ] matching the [ at start,
// counting nesting depth.
func closingBracket(pattern string, start, hi int) (int, error) {
	level := 0
	for i := start; i < hi; i++ {
		switch pattern[i] {
		case '[':
			level++
		case ']':
			if level--; level == 0 {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %q: unterminated [ at offset %d", ErrPatternSyntax, pattern, start)
}

// classifyBlock decides what the block with content pattern[lo:hi] is.
// The second result is false for an empty group, which contributes
// nothing.
func classifyBlock(pattern string, lo, hi int) (segment, bool, error) {
	content := pattern[lo:hi]

	// Embedded expression. The name is the text after the last colon
	// when that text is a plain identifier; everything else is the
	// expression body, inserted without escaping.
	if strings.HasPrefix(content, "@") {
		body, name := content[1:], ""
		if i := strings.LastIndexByte(body, ':'); i >= 0 && isIdentifier(body[i+1:]) {
			body, name = body[:i], body[i+1:]
		}
		if body == "" {
			return segment{}, false, fmt.Errorf("%w: %q: empty expression at offset %d", ErrPatternSyntax, pattern, lo)
		}
		return segment{kind: segCapture, tag: "@", name: name, expr: body}, true, nil
	}

	// Wildcards: [*] and [**], optionally named.
	for _, tag := range []string{"**", "*"} {
		if content == tag {
			return segment{kind: segCapture, tag: tag}, true, nil
		}
		if rest, ok := strings.CutPrefix(content, tag+":"); ok {
			if strings.ContainsAny(rest, "[]") {
				return segment{}, false, fmt.Errorf("%w: %q: malformed placeholder name %q", ErrPatternSyntax, pattern, rest)
			}
			return segment{kind: segCapture, tag: tag, name: rest}, true, nil
		}
	}

	// Typed placeholder: [tag:name] with an empty or letters-and-digits
	// tag before the first colon. Unknown tags are rejected when the
	// pattern is compiled against a TypeSet.
	if i := strings.IndexByte(content, ':'); i >= 0 {
		if tag := content[:i]; tag == "" || validTag(tag) {
			name := content[i+1:]
			if strings.ContainsAny(name, "[]") {
				return segment{}, false, fmt.Errorf("%w: %q: malformed placeholder name %q", ErrPatternSyntax, pattern, name)
			}
			return segment{kind: segCapture, tag: tag, name: name}, true, nil
		}
	}

	// Everything else is an optional group.
	children, err := parseRegion(pattern, lo, hi)
	if err != nil {
		return segment{}, false, err
	}
	if len(children) == 0 {
		return segment{}, false, nil
	}

	return segment{kind: segGroup, children: children}, true, nil
}

// emitter builds the regular expression and capture list for a parsed
// pattern.
type emitter struct {
	pattern string
	types   *TypeSet
	group   int  // next submatch index
	final   bool // a ** placeholder has been emitted
}

func (e *emitter) emit(expr *strings.Builder, m *matcher, segs []segment) error {
	for i := range segs {
		s := &segs[i]
		if e.final {
			return fmt.Errorf("%w: %q: [**] must be the final element", ErrPatternSyntax, e.pattern)
		}

		switch s.kind {
		case segLiteral:
			expr.WriteString(regexp.QuoteMeta(s.text))

		case segGroup:
			expr.WriteString("(?:")
			if err := e.emit(expr, m, s.children); err != nil {
				return err
			}
			expr.WriteString(")?")

		case segCapture:
			frag, err := e.fragment(s)
			if err != nil {
				return err
			}
			check, err := compileRegexp("^(?:" + frag + ")$")
			if err != nil {
				return fmt.Errorf("%w: %q: invalid expression %q: %v", ErrPatternSyntax, e.pattern, frag, err)
			}

			s.idx = len(m.captures)
			m.captures = append(m.captures, capture{
				name:     s.name,
				group:    e.group,
				fragment: frag,
				check:    check,
			})

			fmt.Fprintf(expr, "(%s)", frag)
			e.group += 1 + countCaptures(frag)
			if s.tag == "**" {
				e.final = true
			}
		}
	}

	return nil
}

// fragment resolves the expression fragment for a placeholder.
func (e *emitter) fragment(s *segment) (string, error) {
	switch s.tag {
	case "@":
		return s.expr, nil
	case "*":
		return `[^/]+`, nil
	case "**":
		// Lazy, so the /?$ tolerance suffix takes a trailing slash
		// instead of the capture; both spellings of a path then yield
		// the same value.
		return `.+?`, nil
	case "":
		return `[^/]+?`, nil
	default:
		frag, ok := e.types.fragment(s.tag)
		if !ok {
			return "", fmt.Errorf("%w: %q: unknown placeholder type %q", ErrPatternSyntax, e.pattern, s.tag)
		}
		return frag, nil
	}
}

// countCaptures counts the capturing groups of an expression fragment so
// that the submatch indices of later placeholders stay aligned when a
// fragment carries groups of its own.
func countCaptures(s string) int {
	n := 0
	class := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			class = true
		case ']':
			class = false
		case '(':
			if class {
				break
			}
			if i+1 < len(s) && s[i+1] == '?' {
				// (?P<name>...) and (?<name>...) capture, other (?...)
				// forms do not. RE2 rejects lookbehind, so a (?< in an
				// expression that compiles always opens a named capture.
				if i+2 < len(s) && (s[i+2] == 'P' || s[i+2] == '<') {
					n++
				}
				break
			}
			n++
		}
	}

	return n
}

// isIdentifier reports whether s is a letter or underscore followed by
// letters, digits, or underscores.
func isIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case c == '_':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return s != ""
}

// match tests path and returns the raw submatches on success.
func (m *matcher) match(path string) ([]string, bool) {
	if m.re == nil {
		return nil, true
	}
	sub := m.re.FindStringSubmatch(path)
	if sub == nil {
		return nil, false
	}

	return sub, true
}

// addVars merges the captures of one successful match into the pass
// context. Empty captures, from omitted optional groups, are dropped;
// named captures overwrite earlier values and positional captures
// append.
func (m *matcher) addVars(dc *Context, sub []string) {
	for i := range m.captures {
		c := &m.captures[i]
		if c.group >= len(sub) {
			continue
		}
		v := sub[c.group]
		if v == "" {
			continue
		}
		if c.name == "" {
			dc.positional = append(dc.positional, v)
			continue
		}
		dc.params[c.name] = v
	}
}
