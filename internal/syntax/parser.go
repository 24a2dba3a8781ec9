package syntax

import (
	"context"
	"errors"
)

// ErrSyntax is wrapped by front-ends when a source file cannot be parsed.
var ErrSyntax = errors.New("syntax error")

// Parser turns source text into a declaration tree.
// Implementations: csharp.TreeSitterParser, and syntaxtest.Parser in tests.
type Parser interface {
	// Parse builds the declaration tree of one source file. path is used
	// for error messages and File.Path only.
	Parse(ctx context.Context, path string, source []byte) (*File, error)
}
