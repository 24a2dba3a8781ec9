package export

import "strings"

// GlobalGroup names the group of entities declared outside any namespace,
// or whose namespace truncates to nothing.
const GlobalGroup = "(global)"

// Group is a set of entities sharing a truncated namespace.
type Group[T any] struct {
	Name  string
	Items []T
}

// GroupByNamespace buckets items by their namespace truncated to level
// dot-separated segments. Groups and the items within them keep the order
// in which they first appear. A level of zero or less puts everything in
// GlobalGroup.
func GroupByNamespace[T any](items []T, level int, namespace func(T) string) []Group[T] {
	var groups []Group[T]
	index := make(map[string]int)
	for _, item := range items {
		name := truncateNamespace(namespace(item), level)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group[T]{Name: name})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

func truncateNamespace(ns string, level int) string {
	if ns == "" || level <= 0 {
		return GlobalGroup
	}
	parts := strings.Split(ns, ".")
	if level < len(parts) {
		parts = parts[:level]
	}
	return strings.Join(parts, ".")
}
