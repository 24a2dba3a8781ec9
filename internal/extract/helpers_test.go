package extract

import "github.com/dusk-indust/archlens/internal/syntax"

func strPtr(s string) *string { return &s }

func field(typ string, names ...string) *syntax.Node {
	return &syntax.Node{Kind: syntax.KindField, Type: typ, Variables: names}
}

func property(name, typ string) *syntax.Node {
	return &syntax.Node{Kind: syntax.KindProperty, Name: name, Type: typ}
}

func method(name string, leading ...syntax.Trivia) *syntax.Node {
	return &syntax.Node{Kind: syntax.KindMethod, Name: name, Leading: leading}
}

func ctor(name string, params ...syntax.Param) *syntax.Node {
	return &syntax.Node{Kind: syntax.KindConstructor, Name: name, Params: params}
}

func class(name string, bases []string, members ...*syntax.Node) *syntax.Node {
	n := &syntax.Node{Kind: syntax.KindClass, Name: name, BaseTypes: bases}
	for _, m := range members {
		n.Append(m)
	}
	return n
}

func iface(name string, members ...*syntax.Node) *syntax.Node {
	n := &syntax.Node{Kind: syntax.KindInterface, Name: name}
	for _, m := range members {
		n.Append(m)
	}
	return n
}

func namespace(name string, members ...*syntax.Node) *syntax.Node {
	n := &syntax.Node{Kind: syntax.KindNamespace, Name: name}
	for _, m := range members {
		n.Append(m)
	}
	return n
}

func unit(members ...*syntax.Node) *syntax.Node {
	n := &syntax.Node{Kind: syntax.KindCompilationUnit}
	for _, m := range members {
		n.Append(m)
	}
	return n
}
