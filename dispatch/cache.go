package dispatch

import (
	"regexp"
	"sync"
)

// regexpCache caches compiled expressions by their text. Patterns and
// placeholder validators are compiled once per distinct expression; the
// number of distinct expressions is bounded by the registered routes, so
// the cache grows to a fixed size and stays there.
var regexpCache sync.Map

// compileRegexp returns a cached *regexp.Regexp for expr, compiling and
// caching it on first use.
func compileRegexp(expr string) (*regexp.Regexp, error) {
	if v, ok := regexpCache.Load(expr); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	actual, _ := regexpCache.LoadOrStore(expr, re)

	return actual.(*regexp.Regexp), nil
}
