package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// ErrSyntax is reported when a module does not parse cleanly.
var ErrSyntax = errors.New("syntax error")

const importQuery = `(import_statement source: (string) @source)`

var (
	queryOnce sync.Once
	query     *sitter.Query
	queryErr  error
)

func importsQuery() (*sitter.Query, error) {
	queryOnce.Do(func() {
		query, queryErr = sitter.NewQuery([]byte(importQuery), tsx.GetLanguage())
	})
	return query, queryErr
}

// Module extracts static import declarations from ECMAScript and TypeScript
// modules. The TSX grammar covers ES modules, JSX, type syntax, optional
// chaining, nullish coalescing and class fields, so one grammar serves
// .js, .jsx, .ts and .tsx alike.
type Module struct {
	log *log.Logger
}

// NewModule returns a module extractor that reports parse failures to
// logger (log.Default() when nil).
func NewModule(logger *log.Logger) *Module {
	if logger == nil {
		logger = log.Default()
	}
	return &Module{log: logger}
}

// Extract implements Extractor. A file with any syntax error contributes no
// specifiers; the failure is logged and otherwise ignored.
func (m *Module) Extract(filePath, source string) []string {
	specs, err := ModuleImports(context.Background(), []byte(source))
	if err != nil {
		m.log.Printf("Could not parse %s: %v", filePath, err)
		return nil
	}
	return specs
}

// ModuleImports returns the module specifier of every import declaration in
// src, in source order. Re-exports (export ... from) and require() calls are
// not import declarations and are ignored.
func ModuleImports(ctx context.Context, src []byte) ([]string, error) {
	q, err := importsQuery()
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsx.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		pt := firstError(root)
		return nil, &SyntaxError{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var specs []string
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			specs = append(specs, unquote(c.Node.Content(src)))
		}
	}
	return specs, nil
}

// SyntaxError locates the first malformed region of a module (1-based).
type SyntaxError struct {
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at %d:%d", ErrSyntax, e.Line, e.Column)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// firstError walks the tree depth-first to the earliest error or missing node.
func firstError(n *sitter.Node) sitter.Point {
	stack := []*sitter.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type() == "ERROR" || cur.IsMissing() {
			return cur.StartPoint()
		}
		if !cur.HasError() {
			continue
		}
		for i := int(cur.ChildCount()) - 1; i >= 0; i-- {
			if child := cur.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return n.StartPoint()
}
