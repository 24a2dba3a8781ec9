// Package syntaxtest provides a canned syntax.Parser for tests of the
// packages that consume declaration trees.
package syntaxtest

import (
	"context"
	"fmt"

	"github.com/dusk-indust/archlens/internal/syntax"
)

// Parser returns canned trees keyed by path. Paths present in Errs fail
// with that error; unknown paths fail with syntax.ErrSyntax.
type Parser struct {
	Files map[string]*syntax.Node
	Errs  map[string]error
}

var _ syntax.Parser = (*Parser)(nil)

// Parse implements syntax.Parser.
func (p *Parser) Parse(_ context.Context, path string, _ []byte) (*syntax.File, error) {
	if err, ok := p.Errs[path]; ok {
		return nil, err
	}
	root, ok := p.Files[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, syntax.ErrSyntax)
	}
	return &syntax.File{Path: path, Root: root}, nil
}
