package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/archlens/internal/model"
)

// MermaidOptions controls class diagram rendering.
type MermaidOptions struct {
	// NamespaceLevel wraps entities in namespace blocks named after their
	// namespace truncated to this many segments. Zero disables grouping.
	NamespaceLevel int
}

// GenerateMermaid produces a Mermaid classDiagram from a model.
// Interfaces come first, then classes with their attributes and methods,
// then inheritance and realization arrows.
func GenerateMermaid(m *model.Model, opts MermaidOptions) string {
	if m == nil {
		m = &model.Model{}
	}

	var sb strings.Builder
	sb.WriteString("classDiagram\n")

	// Interfaces precede classes, both with and without namespace blocks.
	var entities []diagramEntity
	for _, i := range m.Interfaces {
		entities = append(entities, diagramEntity{i.Namespace, func(w *strings.Builder, indent string) {
			writeInterface(w, i, indent)
		}})
	}
	for _, c := range m.Classes {
		entities = append(entities, diagramEntity{c.Namespace, func(w *strings.Builder, indent string) {
			writeClass(w, c, indent)
		}})
	}

	if opts.NamespaceLevel > 0 {
		for _, g := range GroupByNamespace(entities, opts.NamespaceLevel, func(e diagramEntity) string { return e.namespace }) {
			openNamespace(&sb, g.Name)
			for _, e := range g.Items {
				e.write(&sb, "    ")
			}
			sb.WriteString("  }\n")
		}
	} else {
		for _, e := range entities {
			e.write(&sb, "  ")
		}
	}

	// Stereotypes must sit outside namespace blocks.
	for _, i := range m.Interfaces {
		fmt.Fprintf(&sb, "  <<interface>> %s\n", mermaidID(i.Name))
	}

	interfaces := make(map[string]bool, len(m.Interfaces))
	for _, i := range m.Interfaces {
		interfaces[i.Name] = true
	}
	for _, c := range m.Classes {
		name := mermaidID(c.Name)
		if c.Extends != nil {
			arrow := "<|--"
			if interfaces[*c.Extends] {
				arrow = "<|.."
			}
			fmt.Fprintf(&sb, "  %s %s %s\n", mermaidID(*c.Extends), arrow, name)
		}
		for _, impl := range c.Implements {
			fmt.Fprintf(&sb, "  %s <|.. %s\n", mermaidID(impl), name)
		}
	}

	return sb.String()
}

// diagramEntity is a class or interface block waiting to be placed.
type diagramEntity struct {
	namespace string
	write     func(sb *strings.Builder, indent string)
}

func openNamespace(sb *strings.Builder, group string) {
	fmt.Fprintf(sb, "  namespace %s {\n", namespaceID(group))
}

func writeInterface(sb *strings.Builder, i model.InterfaceEntity, indent string) {
	fmt.Fprintf(sb, "%sclass %s {\n", indent, mermaidID(i.Name))
	for _, meth := range i.Methods {
		fmt.Fprintf(sb, "%s  +%s()\n", indent, mermaidText(meth.Name))
	}
	fmt.Fprintf(sb, "%s}\n", indent)
}

func writeClass(sb *strings.Builder, c model.ClassEntity, indent string) {
	fmt.Fprintf(sb, "%sclass %s {\n", indent, mermaidID(c.Name))
	for _, a := range c.Attributes {
		fmt.Fprintf(sb, "%s  %s\n", indent, mermaidText(a))
	}
	for _, meth := range c.Methods {
		fmt.Fprintf(sb, "%s  +%s()\n", indent, mermaidText(meth.Name))
	}
	fmt.Fprintf(sb, "%s}\n", indent)
}

// mermaidID turns a type spelling into a class identifier. Generic
// brackets use Mermaid's tilde notation; anything else outside
// [A-Za-z0-9_] becomes an underscore.
func mermaidID(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r == '<' || r == '>':
			sb.WriteRune('~')
		case r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}

// mermaidText rewrites generic brackets in member text, which Mermaid
// would otherwise read as markup.
func mermaidText(s string) string {
	return strings.NewReplacer("<", "~", ">", "~", "{", "(", "}", ")").Replace(s)
}

// namespaceID returns a block name Mermaid accepts for a namespace group.
func namespaceID(group string) string {
	if group == GlobalGroup {
		return "global"
	}
	return mermaidID(group)
}
