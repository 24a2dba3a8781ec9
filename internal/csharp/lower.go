package csharp

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/archlens/internal/syntax"
)

// typeKinds maps type declaration node kinds to syntax kinds.
var typeKinds = map[string]syntax.Kind{
	"class_declaration":         syntax.KindClass,
	"interface_declaration":     syntax.KindInterface,
	"struct_declaration":        syntax.KindType,
	"record_declaration":        syntax.KindType,
	"record_struct_declaration": syntax.KindType,
	"enum_declaration":          syntax.KindType,
	"delegate_declaration":      syntax.KindType,
}

// otherMembers are member declarations that only matter as documentation
// anchors.
var otherMembers = map[string]bool{
	"event_field_declaration":         true,
	"event_declaration":               true,
	"indexer_declaration":             true,
	"operator_declaration":            true,
	"conversion_operator_declaration": true,
	"destructor_declaration":          true,
}

// lowerer converts a tree-sitter C# tree into syntax nodes.
type lowerer struct {
	source []byte
}

func (l *lowerer) lowerUnit(root *tree_sitter.Node) *syntax.Node {
	unit := &syntax.Node{Kind: syntax.KindCompilationUnit, Line: 1}
	l.lowerChildren(root, unit)
	return unit
}

// lowerChildren lowers the named children of n into parent. A file-scoped
// namespace adopts every declaration that follows it.
func (l *lowerer) lowerChildren(n *tree_sitter.Node, parent *syntax.Node) {
	target := parent
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Kind() == "file_scoped_namespace_declaration" {
			ns := l.newNode(child, syntax.KindNamespace)
			ns.Name = l.fieldText(child, "name")
			target.Append(ns)
			l.lowerChildren(child, ns)
			target = ns
			continue
		}
		l.lower(child, target)
	}
}

func (l *lowerer) lower(n *tree_sitter.Node, parent *syntax.Node) {
	kind := n.Kind()

	if k, ok := typeKinds[kind]; ok {
		decl := l.newNode(n, k)
		decl.Name = l.fieldText(n, "name")
		decl.BaseTypes = l.baseTypes(n)
		parent.Append(decl)
		if body := l.body(n); body != nil {
			l.lowerChildren(body, decl)
		}
		return
	}

	switch kind {
	case "namespace_declaration":
		ns := l.newNode(n, syntax.KindNamespace)
		ns.Name = l.fieldText(n, "name")
		parent.Append(ns)
		if body := l.body(n); body != nil {
			l.lowerChildren(body, ns)
		}

	case "declaration_list":
		l.lowerChildren(n, parent)

	case "field_declaration":
		decl := l.newNode(n, syntax.KindField)
		if vd := findChild(n, "variable_declaration"); vd != nil {
			decl.Type = l.fieldText(vd, "type")
			decl.Variables = l.declarators(vd)
		}
		parent.Append(decl)

	case "property_declaration":
		decl := l.newNode(n, syntax.KindProperty)
		decl.Name = l.fieldText(n, "name")
		decl.Type = l.fieldText(n, "type")
		parent.Append(decl)

	case "method_declaration":
		decl := l.newNode(n, syntax.KindMethod)
		decl.Name = l.fieldText(n, "name")
		decl.Type = l.fieldText(n, "returns")
		if decl.Type == "" {
			decl.Type = l.fieldText(n, "type")
		}
		decl.Params = l.params(n)
		parent.Append(decl)

	case "constructor_declaration":
		decl := l.newNode(n, syntax.KindConstructor)
		decl.Name = l.fieldText(n, "name")
		decl.Params = l.params(n)
		parent.Append(decl)

	default:
		if otherMembers[kind] {
			decl := l.newNode(n, syntax.KindMember)
			decl.Name = l.fieldText(n, "name")
			parent.Append(decl)
		}
	}
}

func (l *lowerer) newNode(n *tree_sitter.Node, kind syntax.Kind) *syntax.Node {
	return &syntax.Node{
		Kind:    kind,
		Line:    int(n.StartPosition().Row) + 1,
		Leading: l.leading(n),
	}
}

func (l *lowerer) body(n *tree_sitter.Node) *tree_sitter.Node {
	if b := n.ChildByFieldName("body"); b != nil {
		return b
	}
	return findChild(n, "declaration_list")
}

// declarators returns the variable names of a variable_declaration.
func (l *lowerer) declarators(vd *tree_sitter.Node) []string {
	var names []string
	for i := uint(0); i < vd.NamedChildCount(); i++ {
		d := vd.NamedChild(i)
		if d == nil || d.Kind() != "variable_declarator" {
			continue
		}
		name := l.fieldText(d, "name")
		if name == "" {
			if id := findChild(d, "identifier"); id != nil {
				name = l.text(id)
			}
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// params returns the parameters of a method or constructor in source order.
// A params array has no node of its own: its type and name fields sit
// directly on the parameter list.
func (l *lowerer) params(n *tree_sitter.Node) []syntax.Param {
	list := n.ChildByFieldName("parameters")
	if list == nil {
		list = findChild(n, "parameter_list")
	}
	if list == nil {
		return nil
	}
	var params []syntax.Param
	var arrayType string
	for i := uint(0); i < list.NamedChildCount(); i++ {
		p := list.NamedChild(i)
		if p == nil {
			continue
		}
		if p.Kind() == "parameter" {
			params = append(params, syntax.Param{
				Name: l.fieldText(p, "name"),
				Type: l.paramType(p.ChildByFieldName("type")),
			})
			continue
		}
		switch list.FieldNameForNamedChild(uint32(i)) {
		case "type":
			arrayType = l.text(p)
		case "name":
			params = append(params, syntax.Param{Name: l.text(p), Type: arrayType})
			arrayType = ""
		}
	}
	return params
}

// paramType returns the written type of a parameter without the scoped
// modifier.
func (l *lowerer) paramType(t *tree_sitter.Node) string {
	if t == nil {
		return ""
	}
	if t.Kind() == "scoped_type" {
		if inner := t.ChildByFieldName("type"); inner != nil {
			return l.text(inner)
		}
	}
	return l.text(t)
}

// baseTypes returns the entries of the declaration's base list as written.
func (l *lowerer) baseTypes(n *tree_sitter.Node) []string {
	list := findChild(n, "base_list")
	if list == nil {
		return nil
	}
	var out []string
	for i := uint(0); i < list.NamedChildCount(); i++ {
		c := list.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "comment", "argument_list":
			continue
		case "primary_constructor_base_type":
			t := c.ChildByFieldName("type")
			if t == nil {
				t = c.NamedChild(0)
			}
			if t != nil {
				out = append(out, l.text(t))
			}
		default:
			out = append(out, l.text(c))
		}
	}
	return out
}

// leading collects the comments directly preceding n and groups consecutive
// /// lines into one documentation block.
func (l *lowerer) leading(n *tree_sitter.Node) []syntax.Trivia {
	var run []*tree_sitter.Node
	for p := n.PrevSibling(); p != nil && p.Kind() == "comment"; p = p.PrevSibling() {
		run = append(run, p)
	}
	if len(run) == 0 {
		return nil
	}
	for i, j := 0, len(run)-1; i < j; i, j = i+1, j-1 {
		run[i], run[j] = run[j], run[i]
	}

	var out []syntax.Trivia
	for i := 0; i < len(run); i++ {
		text := l.text(run[i])
		kind := commentKind(text)
		if kind != syntax.TriviaSingleLineDoc {
			out = append(out, syntax.Trivia{Kind: kind, Text: text})
			continue
		}
		lines := []string{text}
		end := run[i].EndPosition().Row
		for i+1 < len(run) {
			next := run[i+1]
			nextText := l.text(next)
			if commentKind(nextText) != syntax.TriviaSingleLineDoc || next.StartPosition().Row != end+1 {
				break
			}
			lines = append(lines, nextText)
			end = next.EndPosition().Row
			i++
		}
		out = append(out, syntax.Trivia{Kind: kind, Text: strings.Join(lines, "\n")})
	}
	return out
}

func commentKind(text string) syntax.TriviaKind {
	switch {
	case strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////"):
		return syntax.TriviaSingleLineDoc
	case strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/**/"):
		return syntax.TriviaMultiLineDoc
	default:
		return syntax.TriviaComment
	}
}

func (l *lowerer) text(n *tree_sitter.Node) string {
	return n.Utf8Text(l.source)
}

func (l *lowerer) fieldText(n *tree_sitter.Node, field string) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return l.text(c)
}

// findChild returns the first named child of n with the given kind.
func findChild(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}
