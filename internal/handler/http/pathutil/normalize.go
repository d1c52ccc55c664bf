package pathutil

import (
	"regexp"
	"strings"
)

// Dynamic routes collapsed to templates so metrics labels stay bounded.
// Evaluated in order, most specific first.
var pathPatterns = []struct {
	pattern  *regexp.Regexp
	template string
}{
	{regexp.MustCompile(`^/news/\d+$`), "/news/:id"},
	{regexp.MustCompile(`^/language/[a-zA-Z-]+$`), "/language/:code"},
}

// NormalizePath maps dynamic URL paths to their templates so path-labelled
// metrics do not explode in cardinality. Static paths pass through
// unchanged; query strings and trailing slashes are stripped first.
//
//	NormalizePath("/news/123")       // "/news/:id"
//	NormalizePath("/news/latest")    // "/news/latest" (unchanged)
//	NormalizePath("/language/en")    // "/language/:code"
//	NormalizePath("/news/123?x=1")   // "/news/:id"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
