package graph

import (
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	t "repograph/internal/types"
)

// RelevantExtensions decides which blobs are fetched and analysed: module
// code, markup, stylesheets, data and documentation.
var RelevantExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".html", ".css", ".json", ".md"}

// Filter selects the relevant blobs of a tree listing.
type Filter struct {
	exclude *ignore.GitIgnore
}

// NewFilter returns a Filter that additionally drops paths matching any of
// the gitignore-style exclude patterns. Blank patterns are ignored.
func NewFilter(exclude []string) *Filter {
	var lines []string
	for _, p := range exclude {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	if len(lines) == 0 {
		return &Filter{}
	}
	return &Filter{exclude: ignore.CompileIgnoreLines(lines...)}
}

// Relevant reports whether entry is a blob with an allowed extension that
// no exclude pattern matches. Extensions are compared case-sensitively.
func (f *Filter) Relevant(entry t.RepoFileEntry) bool {
	if entry.Kind != t.KindBlob || !hasRelevantExt(entry.Path) {
		return false
	}
	if f != nil && f.exclude != nil && f.exclude.MatchesPath(entry.Path) {
		return false
	}
	return true
}

// Apply keeps the relevant entries in listing order.
func (f *Filter) Apply(entries []t.RepoFileEntry) []t.RepoFileEntry {
	var out []t.RepoFileEntry
	for _, e := range entries {
		if f.Relevant(e) {
			out = append(out, e)
		}
	}
	return out
}

func hasRelevantExt(p string) bool {
	for _, ext := range RelevantExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}
