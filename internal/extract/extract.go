// Package extract pulls raw reference specifiers out of source text. Each
// syntax family has its own stateless extractor; Set picks one by extension.
package extract

import (
	"log"
	"path"
	"strings"
)

// Extractor returns the specifiers referenced by a file, in discovery order.
// Duplicates are kept. A file that cannot be analysed yields no specifiers.
type Extractor interface {
	Extract(filePath, source string) []string
}

// Func adapts a plain function to Extractor.
type Func func(filePath, source string) []string

func (f Func) Extract(filePath, source string) []string { return f(filePath, source) }

// Set dispatches to an extractor by file extension.
type Set struct {
	byExt map[string]Extractor
}

// NewSet returns the extractor set used by the graph pipeline:
// js/jsx/ts/tsx → module, html → markup, css → stylesheet.
func NewSet(logger *log.Logger) *Set {
	module := NewModule(logger)
	return &Set{byExt: map[string]Extractor{
		".js":   module,
		".jsx":  module,
		".ts":   module,
		".tsx":  module,
		".html": Func(Markup),
		".css":  Func(Stylesheet),
	}}
}

// For returns the extractor for filePath, if its extension has one.
// Extensions are matched case-sensitively.
func (s *Set) For(filePath string) (Extractor, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.byExt[path.Ext(filePath)]
	return e, ok
}

// Extract runs the matching extractor, or returns nil when none applies.
func (s *Set) Extract(filePath, source string) []string {
	e, ok := s.For(filePath)
	if !ok {
		return nil
	}
	return e.Extract(filePath, source)
}

// Language names the syntax family handled for filePath ("module", "markup",
// "stylesheet"), or "" when the file is not analysed.
func Language(filePath string) string {
	switch path.Ext(filePath) {
	case ".js", ".jsx", ".ts", ".tsx":
		return "module"
	case ".html":
		return "markup"
	case ".css":
		return "stylesheet"
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && strings.ContainsRune(`"'`+"`", rune(first)) {
			return s[1 : len(s)-1]
		}
	}
	return s
}
