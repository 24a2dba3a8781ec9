package graph

import (
	"slices"
	"sort"
)

// neighborFunc returns the dependency neighbours of a type in one direction,
// sorted and distinct.
type neighborFunc func(id string) ([]string, error)

// walk runs a breadth-first traversal from start, up to maxDepth hops. Each
// reachable type yields one chain holding the first path that reached it.
func walk(start string, maxDepth int, next neighborFunc) ([]DependencyChain, error) {
	if maxDepth <= 0 {
		return nil, nil
	}

	paths := map[string][]string{start: {start}}
	frontier := []string{start}
	var chains []DependencyChain

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var level []string
		for _, id := range frontier {
			nbs, err := next(id)
			if err != nil {
				return nil, err
			}
			for _, nb := range nbs {
				if _, seen := paths[nb]; seen {
					continue
				}
				path := append(slices.Clone(paths[id]), nb)
				paths[nb] = path
				chains = append(chains, DependencyChain{Nodes: path, Depth: depth})
				level = append(level, nb)
			}
		}
		frontier = level
	}
	return chains, nil
}

// impact collects the dependents of changedTypes. Types with an edge into a
// changed type are directly affected; everything reaching them through
// further dependents is transitively affected. Changed types are never
// reported. RiskScore is the affected share of the declared types.
func impact(changedTypes []string, dependents neighborFunc, declared int) (*ImpactResult, error) {
	changed := make(map[string]bool, len(changedTypes))
	for _, id := range changedTypes {
		changed[id] = true
	}

	direct := make(map[string]bool)
	affected := make(map[string]bool)
	frontier := changedTypes
	for level := 0; len(frontier) > 0; level++ {
		var next []string
		for _, id := range frontier {
			deps, err := dependents(id)
			if err != nil {
				return nil, err
			}
			for _, dep := range deps {
				if changed[dep] || affected[dep] {
					continue
				}
				affected[dep] = true
				if level == 0 {
					direct[dep] = true
				}
				next = append(next, dep)
			}
		}
		frontier = next
	}

	result := &ImpactResult{
		DirectlyAffected:     sortedKeys(direct),
		TransitivelyAffected: sortedKeys(affected),
	}
	if declared > 0 {
		result.RiskScore = min(1, float64(len(affected))/float64(declared))
	}
	return result, nil
}

// sortedKeys returns the keys of s in ascending order, never nil.
func sortedKeys(s map[string]bool) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
