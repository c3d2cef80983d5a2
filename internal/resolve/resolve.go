// Package resolve maps relative import specifiers onto files that exist in a
// repository listing.
package resolve

import (
	"path"
	"regexp"
	"strings"
)

// Suffixes are tried in this order against the joined base path. An exact
// match always wins over an extension, and extensions win over index files.
var Suffixes = []string{
	"",
	".js",
	".jsx",
	".ts",
	".tsx",
	".json",
	"/index.js",
	"/index.jsx",
	"/index.ts",
	"/index.tsx",
}

var reScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)

// PathSet is the set of repo-relative paths a specifier may resolve to.
type PathSet map[string]struct{}

// NewPathSet builds a PathSet from paths.
func NewPathSet(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is in the set.
func (s PathSet) Has(p string) bool {
	_, ok := s[p]
	return ok
}

// IsNetworkRef reports whether spec points outside the repository
// (https://..., data:, //cdn.example.com/...).
func IsNetworkRef(spec string) bool {
	return strings.HasPrefix(spec, "//") || reScheme.MatchString(spec)
}

// Resolve returns the path in known that spec refers to when imported from
// current. The second result is false when nothing matches, which is the
// normal outcome for package imports and for files outside the known set.
func Resolve(current, spec string, known PathSet) (string, bool) {
	if spec == "" || IsNetworkRef(spec) {
		return "", false
	}
	base := path.Join(path.Dir(current), spec)
	if strings.HasSuffix(spec, "/") && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	for _, suffix := range Suffixes {
		if candidate := base + suffix; known.Has(candidate) {
			return candidate, true
		}
	}
	return "", false
}
