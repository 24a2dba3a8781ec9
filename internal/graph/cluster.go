package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ComputeClusters groups the declared types of store into clusters: the
// connected components of the EXTENDS, IMPLEMENTS and DEPENDS_ON edges taken
// as undirected. Components of a single type are not clusters. Each cluster
// is stored with BELONGS_TO edges from its members and named after the
// longest namespace prefix its members share.
func ComputeClusters(ctx context.Context, store Store) ([]ClusterNode, error) {
	types, err := store.GetAllTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("get types: %w", err)
	}
	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("get edges: %w", err)
	}

	sets := newDisjointSets()
	namespaces := make(map[string]string, len(types))
	for _, t := range types {
		if t.Kind != TypeKindExternal {
			namespaces[t.ID] = t.Namespace
			sets.add(t.ID)
		}
	}

	// links holds internal edges once per unordered pair; outside counts
	// edges from a member to an external type.
	links := make(map[[2]string]bool)
	outside := make(map[string]int)
	for _, e := range edges {
		if !dependencyKinds[e.Kind] || !sets.has(e.SourceID) || e.SourceID == e.TargetID {
			continue
		}
		if !sets.has(e.TargetID) {
			outside[e.SourceID]++
			continue
		}
		a, b := e.SourceID, e.TargetID
		if b < a {
			a, b = b, a
		}
		links[[2]string{a, b}] = true
		sets.union(a, b)
	}

	internal := make(map[string]int)
	for pair := range links {
		internal[sets.find(pair[0])]++
	}

	// types is ordered by ID, so members come out sorted and components
	// are ordered by their smallest member.
	members := make(map[string][]string)
	var roots []string
	for _, t := range types {
		if !sets.has(t.ID) {
			continue
		}
		root := sets.find(t.ID)
		if members[root] == nil {
			roots = append(roots, root)
		}
		members[root] = append(members[root], t.ID)
	}

	used := make(map[string]int)
	var clusters []ClusterNode
	for _, root := range roots {
		ids := members[root]
		if len(ids) < 2 {
			continue
		}
		sort.Strings(ids)

		nss := make([]string, len(ids))
		external := 0
		for i, id := range ids {
			nss[i] = namespaces[id]
			external += outside[id]
		}
		name := commonNamespace(nss)
		if used[name]++; used[name] > 1 {
			name = fmt.Sprintf("%s#%d", name, used[name])
		}

		cluster := ClusterNode{
			Name:          name,
			CohesionScore: cohesion(internal[root], external),
			Members:       ids,
		}
		if err := store.AddCluster(ctx, cluster); err != nil {
			return nil, err
		}
		for _, id := range ids {
			if err := store.AddEdge(ctx, Edge{SourceID: id, TargetID: name, Kind: EdgeKindBelongs}); err != nil {
				return nil, err
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters, nil
}

// cohesion is the share of a cluster's edges that stay inside it.
func cohesion(internal, external int) float64 {
	if internal+external == 0 {
		return 0
	}
	return float64(internal) / float64(internal+external)
}

// disjointSets is a union-find over type IDs.
type disjointSets struct {
	parent map[string]string
}

func newDisjointSets() *disjointSets {
	return &disjointSets{parent: make(map[string]string)}
}

func (d *disjointSets) add(id string) { d.parent[id] = id }

func (d *disjointSets) has(id string) bool {
	_, ok := d.parent[id]
	return ok
}

func (d *disjointSets) find(id string) string {
	for d.parent[id] != id {
		d.parent[id] = d.parent[d.parent[id]]
		id = d.parent[id]
	}
	return id
}

func (d *disjointSets) union(a, b string) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	// The smaller ID becomes the root so results do not depend on edge order.
	if rb < ra {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
}

// commonNamespace returns the longest dotted prefix shared by every
// namespace, or "(global)" when there is none.
func commonNamespace(namespaces []string) string {
	if len(namespaces) == 0 {
		return "(global)"
	}
	prefix := strings.Split(namespaces[0], ".")
	for _, ns := range namespaces[1:] {
		parts := strings.Split(ns, ".")
		n := 0
		for n < len(prefix) && n < len(parts) && prefix[n] == parts[n] {
			n++
		}
		prefix = prefix[:n]
	}
	if name := strings.Join(prefix, "."); name != "" {
		return name
	}
	return "(global)"
}
