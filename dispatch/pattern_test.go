package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, pattern string) *matcher {
	t.Helper()
	m, err := compilePattern(pattern, DefaultTypes())
	require.NoError(t, err)
	return m
}

// matchVars compiles pattern, matches path, and returns the merged
// captures the way a dispatch pass would see them.
func matchVars(t *testing.T, pattern, path string) (Params, []string, bool) {
	t.Helper()
	m := mustCompile(t, pattern)
	sub, ok := m.match(path)
	if !ok {
		return nil, nil, false
	}
	dc := newContext(context.Background(), "GET", path)
	m.addVars(dc, sub)
	return dc.params, dc.positional, true
}

func TestCompilePatternLiterals(t *testing.T) {
	t.Run("exact path", func(t *testing.T) {
		m := mustCompile(t, "/about")
		for _, path := range []string{"/about", "/about/"} {
			_, ok := m.match(path)
			assert.True(t, ok, path)
		}
		for _, path := range []string{"/abou", "/aboutx", "/about/x"} {
			_, ok := m.match(path)
			assert.False(t, ok, path)
		}
	})

	t.Run("root", func(t *testing.T) {
		m := mustCompile(t, "/")
		_, ok := m.match("/")
		assert.True(t, ok)
		_, ok = m.match("/x")
		assert.False(t, ok)
	})

	t.Run("empty pattern matches any path", func(t *testing.T) {
		m := mustCompile(t, "")
		for _, path := range []string{"/", "/a/b/c", ""} {
			sub, ok := m.match(path)
			assert.True(t, ok, path)
			assert.Nil(t, sub)
		}
	})

	t.Run("trailing slash in pattern ignored", func(t *testing.T) {
		m := mustCompile(t, "/posts/")
		for _, path := range []string{"/posts", "/posts/"} {
			_, ok := m.match(path)
			assert.True(t, ok, path)
		}
	})

	t.Run("meta characters are literal", func(t *testing.T) {
		m := mustCompile(t, "/a.b")
		_, ok := m.match("/a.b")
		assert.True(t, ok)
		_, ok = m.match("/axb")
		assert.False(t, ok)
	})
}

func TestPlaceholderTypes(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		path       string
		ok         bool
		params     Params
		positional []string
	}{
		{name: "integer", pattern: "/users/[i:id]", path: "/users/42", ok: true, params: Params{"id": "42"}},
		{name: "integer trailing slash", pattern: "/users/[i:id]", path: "/users/42/", ok: true, params: Params{"id": "42"}},
		{name: "integer rejects alpha", pattern: "/users/[i:id]", path: "/users/4x2"},
		{name: "integer rejects slash", pattern: "/users/[i:id]", path: "/users/4/2"},
		{name: "integer rejects empty", pattern: "/users/[i:id]", path: "/users/"},
		{name: "alpha", pattern: "/tags/[a:tag]", path: "/tags/golang", ok: true, params: Params{"tag": "golang"}},
		{name: "alpha rejects digits", pattern: "/tags/[a:tag]", path: "/tags/go2"},
		{name: "hex", pattern: "/blobs/[h:sum]", path: "/blobs/DeadBeef01", ok: true, params: Params{"sum": "DeadBeef01"}},
		{name: "hex rejects g", pattern: "/blobs/[h:sum]", path: "/blobs/deadbeeg"},
		{name: "slug", pattern: "/posts/[s:slug]", path: "/posts/go-1_22", ok: true, params: Params{"slug": "go-1_22"}},
		{name: "slug rejects dot", pattern: "/posts/[s:slug]", path: "/posts/a.b"},
		{name: "default segment", pattern: "/any/[:val]", path: "/any/x.y-z", ok: true, params: Params{"val": "x.y-z"}},
		{name: "default rejects slash", pattern: "/any/[:val]", path: "/any/x/y"},
		{name: "positional typed", pattern: "/o/[i:]", path: "/o/7", ok: true, positional: []string{"7"}},
		{name: "two placeholders", pattern: "/u/[i:uid]/p/[s:pid]", path: "/u/9/p/a-b", ok: true, params: Params{"uid": "9", "pid": "a-b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, positional, ok := matchVars(t, tt.pattern, tt.path)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			if tt.params == nil {
				assert.Empty(t, params)
			} else {
				assert.Equal(t, tt.params, params)
			}
			if tt.positional == nil {
				assert.Empty(t, positional)
			} else {
				assert.Equal(t, tt.positional, positional)
			}
		})
	}
}

func TestOptionalGroups(t *testing.T) {
	t.Run("group omitted", func(t *testing.T) {
		params, _, ok := matchVars(t, "/posts[/[i:page]]", "/posts")
		require.True(t, ok)
		assert.Empty(t, params)
	})

	t.Run("group present", func(t *testing.T) {
		params, _, ok := matchVars(t, "/posts[/[i:page]]", "/posts/3")
		require.True(t, ok)
		assert.Equal(t, Params{"page": "3"}, params)
	})

	t.Run("default placeholder in group", func(t *testing.T) {
		params, _, ok := matchVars(t, "/posts[/[:page]]", "/posts/7")
		require.True(t, ok)
		assert.Equal(t, Params{"page": "7"}, params)
	})

	t.Run("trailing slash with group omitted", func(t *testing.T) {
		params, _, ok := matchVars(t, "/posts[/[i:page]]", "/posts/")
		require.True(t, ok)
		assert.Empty(t, params)
	})

	t.Run("partial group input rejected", func(t *testing.T) {
		_, _, ok := matchVars(t, "/posts[/[i:page]]", "/posts/x")
		assert.False(t, ok)
	})

	t.Run("nested groups", func(t *testing.T) {
		const pattern = "/archive[/[i:year][/[i:month]]]"

		params, _, ok := matchVars(t, pattern, "/archive")
		require.True(t, ok)
		assert.Empty(t, params)

		params, _, ok = matchVars(t, pattern, "/archive/2024")
		require.True(t, ok)
		assert.Equal(t, Params{"year": "2024"}, params)

		params, _, ok = matchVars(t, pattern, "/archive/2024/06")
		require.True(t, ok)
		assert.Equal(t, Params{"year": "2024", "month": "06"}, params)

		_, _, ok = matchVars(t, pattern, "/archive//06")
		assert.False(t, ok)
	})

	t.Run("optional literal group", func(t *testing.T) {
		m := mustCompile(t, "/x[foo]")
		for _, path := range []string{"/x", "/xfoo"} {
			_, ok := m.match(path)
			assert.True(t, ok, path)
		}
		_, ok := m.match("/xf")
		assert.False(t, ok)
	})

	t.Run("empty group is a no-op", func(t *testing.T) {
		m := mustCompile(t, "/a[]b")
		_, ok := m.match("/ab")
		assert.True(t, ok)
		_, ok = m.match("/a")
		assert.False(t, ok)
	})
}

func TestWildcards(t *testing.T) {
	t.Run("single segment", func(t *testing.T) {
		_, positional, ok := matchVars(t, "/f/[*]", "/f/abc")
		require.True(t, ok)
		assert.Equal(t, []string{"abc"}, positional)

		_, _, ok = matchVars(t, "/f/[*]", "/f/a/b")
		assert.False(t, ok)
	})

	t.Run("named multi segment", func(t *testing.T) {
		params, _, ok := matchVars(t, "/files/[**:rest]", "/files/a/b/c")
		require.True(t, ok)
		assert.Equal(t, Params{"rest": "a/b/c"}, params)
	})

	t.Run("unnamed multi segment", func(t *testing.T) {
		_, positional, ok := matchVars(t, "/raw/[**]", "/raw/x/y")
		require.True(t, ok)
		assert.Equal(t, []string{"x/y"}, positional)
	})

	t.Run("trailing slash after wildcard pattern", func(t *testing.T) {
		m, err := compilePattern("/files/[**:rest]/", DefaultTypes())
		require.NoError(t, err)
		_, ok := m.match("/files/a/b")
		assert.True(t, ok)
	})

	t.Run("tolerated trailing slash stays out of the capture", func(t *testing.T) {
		for _, path := range []string{"/files/a/b", "/files/a/b/"} {
			params, _, ok := matchVars(t, "/files/[**:rest]", path)
			require.True(t, ok, path)
			assert.Equal(t, Params{"rest": "a/b"}, params, path)
		}
	})
}

func TestEmbeddedExpressions(t *testing.T) {
	t.Run("named", func(t *testing.T) {
		params, _, ok := matchVars(t, `/v/[@[0-9]+\.[0-9]+:ver]`, "/v/1.2")
		require.True(t, ok)
		assert.Equal(t, Params{"ver": "1.2"}, params)

		_, _, ok = matchVars(t, `/v/[@[0-9]+\.[0-9]+:ver]`, "/v/1x2")
		assert.False(t, ok)
	})

	t.Run("unnamed captures positionally", func(t *testing.T) {
		_, positional, ok := matchVars(t, `/m/[@(?:foo|bar)]`, "/m/foo")
		require.True(t, ok)
		assert.Equal(t, []string{"foo"}, positional)
	})

	t.Run("colon without identifier stays in expression", func(t *testing.T) {
		_, positional, ok := matchVars(t, `/t/[@a{1,2}:3]`, "/t/a:3")
		require.True(t, ok)
		assert.Equal(t, []string{"a:3"}, positional)
	})

	t.Run("inner capture groups stay aligned", func(t *testing.T) {
		params, _, ok := matchVars(t, `/c/[@(a+)(b+):x]/[i:n]`, "/c/aab/7")
		require.True(t, ok)
		assert.Equal(t, Params{"x": "aab", "n": "7"}, params)
	})

	t.Run("named inner groups stay aligned", func(t *testing.T) {
		for _, pattern := range []string{
			`/c/[@(?P<x>a+)(b+):y]/[i:n]`,
			`/c/[@(?<x>a+)(b+):y]/[i:n]`,
		} {
			params, _, ok := matchVars(t, pattern, "/c/aab/7")
			require.True(t, ok, pattern)
			assert.Equal(t, Params{"y": "aab", "n": "7"}, params, pattern)
		}
	})

	t.Run("balanced brackets inside expression", func(t *testing.T) {
		_, positional, ok := matchVars(t, `/k/[@x[0-9]{2}]`, "/k/x42")
		require.True(t, ok)
		assert.Equal(t, []string{"x42"}, positional)
	})
}

func TestPatternErrors(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		contains string
	}{
		{name: "unterminated bracket", pattern: "/x[y", contains: "unterminated ["},
		{name: "unmatched close", pattern: "/x]y", contains: "unmatched ]"},
		{name: "unknown type", pattern: "/x/[z9:id]", contains: `unknown placeholder type "z9"`},
		{name: "placeholder name with bracket", pattern: "/x/[i:a[b]]", contains: "malformed placeholder name"},
		{name: "wildcard name with bracket", pattern: "/x/[*:a[]]", contains: "malformed placeholder name"},
		{name: "wildcard not final", pattern: "/f/[**:rest]/x", contains: "must be the final element"},
		{name: "wildcard not final inside group", pattern: "/f/[[**:rest]x]", contains: "must be the final element"},
		{name: "empty expression", pattern: "/e/[@]", contains: "empty expression"},
		{name: "expression with only a name", pattern: "/e/[@:name]", contains: "empty expression"},
		{name: "bad embedded expression", pattern: "/b/[@(]", contains: "invalid expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := compilePattern(tt.pattern, DefaultTypes())
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrPatternSyntax)
			assert.ErrorContains(t, err, tt.contains)
		})
	}
}

func TestCaptureAccumulation(t *testing.T) {
	t.Run("empty captures dropped", func(t *testing.T) {
		params, positional, ok := matchVars(t, "/p[/[i:n]]", "/p")
		require.True(t, ok)
		assert.Empty(t, params)
		assert.Empty(t, positional)
	})

	t.Run("repeated name keeps last value", func(t *testing.T) {
		params, _, ok := matchVars(t, "/r/[:x]/[:x]", "/r/a/b")
		require.True(t, ok)
		assert.Equal(t, Params{"x": "b"}, params)
	})

	t.Run("named and positional mix", func(t *testing.T) {
		params, positional, ok := matchVars(t, "/m/[i:]/[s:slug]/[*]", "/m/1/ok/z")
		require.True(t, ok)
		assert.Equal(t, Params{"slug": "ok"}, params)
		assert.Equal(t, []string{"1", "z"}, positional)
	})
}

func TestTypeSet(t *testing.T) {
	t.Run("custom type", func(t *testing.T) {
		ts := DefaultTypes()
		require.NoError(t, ts.Register("even", `[0-9]*[02468]`))

		m, err := compilePattern("/n/[even:n]", ts)
		require.NoError(t, err)

		_, ok := m.match("/n/42")
		assert.True(t, ok)
		_, ok = m.match("/n/43")
		assert.False(t, ok)
	})

	t.Run("replace builtin", func(t *testing.T) {
		ts := DefaultTypes()
		require.NoError(t, ts.Register("i", `[0-9]{2}`))

		m, err := compilePattern("/d/[i:n]", ts)
		require.NoError(t, err)

		_, ok := m.match("/d/42")
		assert.True(t, ok)
		_, ok = m.match("/d/4")
		assert.False(t, ok)
		_, ok = m.match("/d/421")
		assert.False(t, ok)
	})

	t.Run("compile snapshots the fragment", func(t *testing.T) {
		ts := DefaultTypes()
		m, err := compilePattern("/x/[i:n]", ts)
		require.NoError(t, err)

		require.NoError(t, ts.Register("i", `[a-z]+`))

		_, ok := m.match("/x/7")
		assert.True(t, ok)
		_, ok = m.match("/x/a")
		assert.False(t, ok)
	})

	t.Run("invalid tag", func(t *testing.T) {
		ts := DefaultTypes()
		assert.ErrorIs(t, ts.Register("a-b", `[0-9]+`), ErrPatternSyntax)
		assert.ErrorIs(t, ts.Register("", `[0-9]+`), ErrPatternSyntax)
	})

	t.Run("invalid fragment", func(t *testing.T) {
		ts := DefaultTypes()
		assert.ErrorIs(t, ts.Register("x", `(`), ErrPatternSyntax)
	})
}

func TestCountCaptures(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want int
	}{
		{name: "plain", expr: `[0-9]+`, want: 0},
		{name: "groups", expr: `(a)(b)`, want: 2},
		{name: "non-capturing", expr: `(?:a|b)`, want: 0},
		{name: "named group", expr: `(?P<x>a)`, want: 1},
		{name: "named group angle spelling", expr: `(?<x>a)`, want: 1},
		{name: "escaped paren", expr: `\(a\)`, want: 0},
		{name: "paren in class", expr: `[()]+`, want: 0},
		{name: "nested", expr: `((a))`, want: 2},
		{name: "flag group", expr: `(?i:abc)`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countCaptures(tt.expr))
		})
	}
}

// --- Benchmarks ---

func BenchmarkCompilePattern(b *testing.B) {
	types := DefaultTypes()

	b.ResetTimer()
	for b.Loop() {
		compilePattern("/users/[i:id]/posts[/[s:slug]]", types) //nolint:errcheck
	}
}

func BenchmarkMatcherMatch(b *testing.B) {
	types := DefaultTypes()
	m, err := compilePattern("/users/[i:id]/posts[/[s:slug]]", types)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for b.Loop() {
		m.match("/users/42/posts/hello-world")
	}
}

// --- Fuzz ---

func FuzzCompilePattern(f *testing.F) {
	seeds := []string{
		"",
		"/",
		"/users/[i:id]",
		"/posts[/[:page]]",
		"/archive[/[i:year][/[i:month]]]",
		"/files/[**:rest]",
		`/v/[@[0-9]+\.[0-9]+:ver]`,
		"/x[",
		"]x",
		"[@]",
		"/a[]b",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, pattern string) {
		m, err := compilePattern(pattern, DefaultTypes())
		if err != nil {
			if m != nil {
				t.Errorf("compilePattern(%q) returned both a matcher and %v", pattern, err)
			}
			return
		}
		if m.pattern != pattern {
			t.Errorf("compilePattern(%q) kept pattern %q", pattern, m.pattern)
		}

		// Matching and capture merging must not panic for any
		// pattern that compiled.
		if sub, ok := m.match("/fuzz/input"); ok {
			dc := newContext(context.Background(), "GET", "/fuzz/input")
			m.addVars(dc, sub)
		}
	})
}
