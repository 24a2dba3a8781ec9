package graph

import (
	"strings"
	"unicode"

	"github.com/dusk-indust/archlens/internal/model"
)

// Resolver maps type references, as spelled in source, onto the types
// declared in a model. Matching is purely by name: the namespace of the
// referencing type and its parents first, then a dotted name taken as fully
// qualified, then a simple name declared exactly once anywhere.
type Resolver struct {
	byQualified map[string][]TypeNode
	bySimple    map[string][]TypeNode
}

// NewResolver indexes the declared types.
func NewResolver(types []TypeNode) *Resolver {
	r := &Resolver{
		byQualified: make(map[string][]TypeNode, len(types)),
		bySimple:    make(map[string][]TypeNode, len(types)),
	}
	for _, t := range types {
		if t.Kind == TypeKindExternal {
			continue
		}
		q := model.QualifiedName(t.Namespace, t.Name)
		r.byQualified[q] = append(r.byQualified[q], t)
		r.bySimple[t.Name] = append(r.bySimple[t.Name], t)
	}
	return r
}

// Resolve finds the declared type named by ref from code in namespace.
// When several kinds share a name, prefer decides; an empty prefer takes
// the first declared.
func (r *Resolver) Resolve(ref, namespace string, prefer TypeKind) (TypeNode, bool) {
	ref = strings.TrimPrefix(ref, "global::")
	if ref == "" {
		return TypeNode{}, false
	}

	// Enclosing namespaces, innermost first.
	for ns := namespace; ; {
		if cands := r.byQualified[model.QualifiedName(ns, ref)]; len(cands) > 0 {
			return pick(cands, prefer), true
		}
		if ns == "" {
			break
		}
		if i := strings.LastIndexByte(ns, '.'); i >= 0 {
			ns = ns[:i]
		} else {
			ns = ""
		}
	}

	if strings.Contains(ref, ".") {
		return TypeNode{}, false
	}

	cands := r.bySimple[ref]
	if len(cands) == 1 {
		return cands[0], true
	}
	if prefer != "" {
		var match []TypeNode
		for _, c := range cands {
			if c.Kind == prefer {
				match = append(match, c)
			}
		}
		if len(match) == 1 {
			return match[0], true
		}
	}
	return TypeNode{}, false
}

func pick(cands []TypeNode, prefer TypeKind) TypeNode {
	for _, c := range cands {
		if c.Kind == prefer {
			return c
		}
	}
	return cands[0]
}

// TypeRefs splits a type spelling into the type names it mentions, in
// order: "Dictionary<string, List<IRepo>>" yields Dictionary, string, List
// and IRepo. Array, nullable and pointer decorations are dropped.
func TypeRefs(spelling string) []string {
	var refs []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		name := strings.Trim(cur.String(), ".")
		cur.Reset()
		name = strings.TrimPrefix(name, "global::")
		if name != "" {
			refs = append(refs, name)
		}
	}
	for _, r := range spelling {
		switch {
		case r == '_' || r == '.' || r == ':' || unicode.IsLetter(r) || unicode.IsDigit(r):
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return refs
}

// HeadRef returns the outermost type name of a spelling, without generic
// arguments: "IComparable<Repo>" yields IComparable.
func HeadRef(spelling string) string {
	refs := TypeRefs(spelling)
	if len(refs) == 0 {
		return ""
	}
	return refs[0]
}
