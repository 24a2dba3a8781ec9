// Package syntax defines the declaration tree a language front-end hands to
// the extractor. It carries only what structural extraction needs: kinds,
// identifiers, type text as written, parameters, base types and leading
// comment trivia.
package syntax

// Kind classifies a declaration node.
type Kind string

const (
	KindCompilationUnit Kind = "compilation_unit"
	KindNamespace       Kind = "namespace"
	KindClass           Kind = "class"
	KindInterface       Kind = "interface"
	KindType            Kind = "type" // struct, record, enum, delegate
	KindField           Kind = "field"
	KindProperty        Kind = "property"
	KindMethod          Kind = "method"
	KindConstructor     Kind = "constructor"
	KindMember          Kind = "member" // events, indexers, operators, ...
)

// TriviaKind classifies a leading comment block.
type TriviaKind string

const (
	TriviaComment       TriviaKind = "comment"
	TriviaSingleLineDoc TriviaKind = "single_line_doc" // one or more consecutive /// lines
	TriviaMultiLineDoc  TriviaKind = "multi_line_doc"  // /** ... */
)

// Trivia is a comment block that precedes a declaration.
type Trivia struct {
	Kind TriviaKind
	Text string // raw text including comment markers
}

// IsDoc reports whether the trivia is a documentation comment.
func (t Trivia) IsDoc() bool {
	return t.Kind == TriviaSingleLineDoc || t.Kind == TriviaMultiLineDoc
}

// Param is a single parameter of a method or constructor. Type is empty when
// the front-end could not find a declared type.
type Param struct {
	Name string
	Type string
}

// Node is one declaration in a source file.
type Node struct {
	Kind Kind
	Name string

	// Type is the declared type text for fields and properties and the
	// return type for methods.
	Type string

	// Variables lists the declarators of a field statement ("int x, y;").
	Variables []string

	Params    []Param
	BaseTypes []string
	Leading   []Trivia

	// Line is the 1-based start line.
	Line int

	Parent   *Node
	Children []*Node
}

// Append adds child under n and sets its parent pointer.
func (n *Node) Append(child *Node) *Node {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// MemberLike reports whether the node is a member declaration (anything that
// can carry documentation), as opposed to the compilation unit.
func (n *Node) MemberLike() bool {
	return n.Kind != KindCompilationUnit
}

// File is a parsed source file.
type File struct {
	Path string
	Root *Node
}
