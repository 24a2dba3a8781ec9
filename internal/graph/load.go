package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/archlens/internal/model"
)

// Load writes the type graph of m into store: one node per class and
// interface, one per method, and EXTENDS, IMPLEMENTS, DEPENDS_ON and
// DECLARES edges. References that match no declared type become external
// nodes. Entities sharing an ID (partial declarations) collapse into the
// first one seen. The model itself is not modified.
func Load(ctx context.Context, store Store, m *model.Model) error {
	l := &loader{
		store:   store,
		types:   make(map[string]bool),
		methods: make(map[string]int),
		edges:   make(map[Edge]bool),
	}

	var declared []TypeNode
	for _, i := range m.Interfaces {
		declared = append(declared, TypeNode{
			ID:        TypeID(TypeKindInterface, i.Namespace, i.Name),
			Name:      i.Name,
			Namespace: i.Namespace,
			Kind:      TypeKindInterface,
		})
	}
	for _, c := range m.Classes {
		declared = append(declared, TypeNode{
			ID:        TypeID(TypeKindClass, c.Namespace, c.Name),
			Name:      c.Name,
			Namespace: c.Namespace,
			Kind:      TypeKindClass,
			Summary:   deref(c.Summary),
		})
	}
	for _, t := range declared {
		if err := l.addType(ctx, t); err != nil {
			return err
		}
	}
	l.resolver = NewResolver(declared)

	for _, i := range m.Interfaces {
		id := TypeID(TypeKindInterface, i.Namespace, i.Name)
		if err := l.addMethods(ctx, id, i.Methods); err != nil {
			return err
		}
	}

	for _, c := range m.Classes {
		id := TypeID(TypeKindClass, c.Namespace, c.Name)
		if err := l.addMethods(ctx, id, c.Methods); err != nil {
			return err
		}

		if c.Extends != nil {
			target, err := l.reference(ctx, HeadRef(*c.Extends), c.Namespace, TypeKindClass)
			if err != nil {
				return err
			}
			kind := EdgeKindExtends
			if target.Kind == TypeKindInterface {
				kind = EdgeKindImplements
			}
			if err := l.addEdge(ctx, Edge{SourceID: id, TargetID: target.ID, Kind: kind}); err != nil {
				return err
			}
		}

		for _, impl := range c.Implements {
			target, err := l.reference(ctx, HeadRef(impl), c.Namespace, TypeKindInterface)
			if err != nil {
				return err
			}
			if err := l.addEdge(ctx, Edge{SourceID: id, TargetID: target.ID, Kind: EdgeKindImplements}); err != nil {
				return err
			}
		}

		for _, dep := range c.Dependencies {
			for _, ref := range TypeRefs(dep) {
				target, err := l.reference(ctx, ref, c.Namespace, "")
				if err != nil {
					return err
				}
				if err := l.addEdge(ctx, Edge{SourceID: id, TargetID: target.ID, Kind: EdgeKindDependsOn}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// loader deduplicates nodes and edges across one Load call.
type loader struct {
	store    Store
	resolver *Resolver
	types    map[string]bool
	methods  map[string]int // methods stored per type ID
	edges    map[Edge]bool
}

func (l *loader) addType(ctx context.Context, t TypeNode) error {
	if l.types[t.ID] {
		return nil
	}
	l.types[t.ID] = true
	if err := l.store.AddType(ctx, t); err != nil {
		return fmt.Errorf("add type %s: %w", t.ID, err)
	}
	return nil
}

func (l *loader) addMethods(ctx context.Context, typeID string, methods []model.MethodEntity) error {
	_, qualified, _ := strings.Cut(typeID, ":")
	for _, meth := range methods {
		n := l.methods[typeID]
		l.methods[typeID]++
		node := MethodNode{
			ID:      fmt.Sprintf("method:%s.%s#%d", qualified, meth.Name, n),
			TypeID:  typeID,
			Name:    meth.Name,
			Summary: deref(meth.Summary),
		}
		if err := l.store.AddMethod(ctx, node); err != nil {
			return fmt.Errorf("add method %s: %w", node.ID, err)
		}
		if err := l.addEdge(ctx, Edge{SourceID: typeID, TargetID: node.ID, Kind: EdgeKindDeclares}); err != nil {
			return err
		}
	}
	return nil
}

// reference resolves ref to a declared type or creates an external node.
func (l *loader) reference(ctx context.Context, ref, namespace string, prefer TypeKind) (TypeNode, error) {
	if t, ok := l.resolver.Resolve(ref, namespace, prefer); ok {
		return t, nil
	}
	ext := TypeNode{
		ID:   TypeID(TypeKindExternal, "", ref),
		Name: ref,
		Kind: TypeKindExternal,
	}
	return ext, l.addType(ctx, ext)
}

// addEdge stores e once. Self references are dropped.
func (l *loader) addEdge(ctx context.Context, e Edge) error {
	if e.SourceID == e.TargetID || l.edges[e] {
		return nil
	}
	l.edges[e] = true
	if err := l.store.AddEdge(ctx, e); err != nil {
		return fmt.Errorf("add %s edge %s -> %s: %w", e.Kind, e.SourceID, e.TargetID, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
