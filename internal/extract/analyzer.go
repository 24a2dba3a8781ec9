package extract

import (
	"strings"

	"github.com/dusk-indust/archlens/internal/model"
	"github.com/dusk-indust/archlens/internal/syntax"
)

// AnalyzeClass builds the entity for a class declaration. Only direct members
// of node are considered; nested types are separate entities.
func AnalyzeClass(node *syntax.Node, namespace string, idx TriviaIndex) model.ClassEntity {
	fields := node.Members(syntax.KindField)

	var attributes []string
	for _, f := range fields {
		for _, v := range f.Variables {
			attributes = append(attributes, v+": "+f.Type)
		}
	}
	for _, p := range node.Members(syntax.KindProperty) {
		attributes = append(attributes, p.Name+": "+p.Type)
	}

	deps := newOrderedSet()
	for _, f := range fields {
		deps.add(f.Type)
	}
	for _, ctor := range node.Members(syntax.KindConstructor) {
		for _, p := range ctor.Params {
			deps.add(p.Type)
		}
	}

	extends, implements := splitBaseTypes(node.BaseTypes)

	return model.ClassEntity{
		Name:         node.Name,
		Namespace:    namespace,
		Summary:      SummaryFor(node, idx),
		Attributes:   attributes,
		Methods:      analyzeMethods(node, idx),
		Dependencies: deps.nonBlank(),
		Implements:   implements,
		Extends:      extends,
	}
}

// AnalyzeInterface builds the entity for an interface declaration.
func AnalyzeInterface(node *syntax.Node, namespace string, idx TriviaIndex) model.InterfaceEntity {
	return model.InterfaceEntity{
		Name:      node.Name,
		Namespace: namespace,
		Methods:   analyzeMethods(node, idx),
	}
}

func analyzeMethods(node *syntax.Node, idx TriviaIndex) []model.MethodEntity {
	var methods []model.MethodEntity
	for _, m := range node.Members(syntax.KindMethod) {
		methods = append(methods, model.MethodEntity{
			Name:    m.Name,
			Summary: SummaryFor(m, idx),
		})
	}
	return methods
}

// splitBaseTypes treats the first base type as the inherited class and the
// rest as implemented interfaces. The split is positional: a class that only
// implements interfaces reports its first interface as extends.
func splitBaseTypes(bases []string) (extends *string, implements []string) {
	if len(bases) == 0 {
		return nil, nil
	}
	first := bases[0]
	if len(bases) > 1 {
		implements = append([]string(nil), bases[1:]...)
	}
	return &first, implements
}

// orderedSet deduplicates strings and remembers insertion order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) nonBlank() []string {
	out := make([]string, 0, len(s.items))
	for _, v := range s.items {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
