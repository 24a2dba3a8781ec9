// Package csharp is the C# front-end: it parses source with the tree-sitter
// C# grammar and lowers the concrete syntax tree to a syntax.File.
package csharp

import (
	"context"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"

	"github.com/dusk-indust/archlens/internal/syntax"
)

// Compile-time assertion: *TreeSitterParser satisfies syntax.Parser.
var _ syntax.Parser = (*TreeSitterParser)(nil)

// TreeSitterParser implements syntax.Parser for C#. A new tree-sitter parser
// is created per Parse call, so one TreeSitterParser may be shared by
// concurrent callers.
type TreeSitterParser struct {
	language *tree_sitter.Language
}

// NewTreeSitterParser creates a parser with the C# grammar loaded.
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{
		language: tree_sitter.NewLanguage(tree_sitter_csharp.Language()),
	}
}

// Parse builds the declaration tree for one C# file. A tree that contains
// ERROR or MISSING nodes is rejected with an error wrapping syntax.ErrSyntax.
func (p *TreeSitterParser) Parse(_ context.Context, path string, source []byte) (*syntax.File, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%s: tree-sitter returned nil tree: %w", path, syntax.ErrSyntax)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			pos := bad.StartPosition()
			return nil, fmt.Errorf("%s:%d:%d: %w", path, pos.Row+1, pos.Column+1, syntax.ErrSyntax)
		}
		return nil, fmt.Errorf("%s: %w", path, syntax.ErrSyntax)
	}

	l := &lowerer{source: source}
	return &syntax.File{Path: path, Root: l.lowerUnit(root)}, nil
}

// Close is a no-op because parsers are created per Parse call.
func (p *TreeSitterParser) Close() error {
	return nil
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(node *tree_sitter.Node) *tree_sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}
