package graph

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu       sync.RWMutex
	types    map[string]TypeNode
	methods  map[string]MethodNode
	edges    []Edge
	clusters []ClusterNode
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		types:   make(map[string]TypeNode),
		methods: make(map[string]MethodNode),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddType stores a type node keyed by its ID.
func (m *MemStore) AddType(_ context.Context, node TypeNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[node.ID] = node
	return nil
}

// AddMethod stores a method node keyed by its ID.
func (m *MemStore) AddMethod(_ context.Context, node MethodNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods[node.ID] = node
	return nil
}

// AddCluster appends a cluster to the internal slice.
func (m *MemStore) AddCluster(_ context.Context, node ClusterNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clusters = append(m.clusters, node)
	return nil
}

// AddEdge appends an edge to the internal slice.
func (m *MemStore) AddEdge(_ context.Context, edge Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, edge)
	return nil
}

// GetType returns the type node for the given ID, or nil if not found.
func (m *MemStore) GetType(_ context.Context, id string) (*TypeNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.types[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// GetMethods returns the methods declared by typeID, ordered by ID.
func (m *MemStore) GetMethods(_ context.Context, typeID string) ([]MethodNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []MethodNode
	for _, meth := range m.methods {
		if meth.TypeID == typeID {
			out = append(out, meth)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// QueryTypes returns types whose name contains query (case-insensitive),
// ordered by ID, up to limit results. An empty kind matches every kind and
// a limit <= 0 returns all matches.
func (m *MemStore) QueryTypes(_ context.Context, query string, kind TypeKind, limit int) ([]TypeNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lowerQuery := strings.ToLower(query)
	var results []TypeNode
	for _, t := range m.types {
		if kind != "" && t.Kind != kind {
			continue
		}
		if strings.Contains(strings.ToLower(t.Name), lowerQuery) {
			results = append(results, t)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetAllTypes returns every type node ordered by ID.
func (m *MemStore) GetAllTypes(_ context.Context) ([]TypeNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]TypeNode, 0, len(m.types))
	for _, t := range m.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetAllEdges returns a copy of all edges in the store.
func (m *MemStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Edge, len(m.edges))
	copy(out, m.edges)
	return out, nil
}

// GetDependencies walks dependency edges from typeID in the given direction,
// up to maxDepth hops.
func (m *MemStore) GetDependencies(_ context.Context, typeID string, direction Direction, maxDepth int) ([]DependencyChain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return walk(typeID, maxDepth, m.adjacency(direction))
}

// adjacency indexes dependency edges by their origin in the given direction:
// upstream maps a type to what it depends on, downstream to its dependents.
// Callers hold m.mu.
func (m *MemStore) adjacency(direction Direction) neighborFunc {
	adj := make(map[string][]string)
	seen := make(map[[2]string]bool)
	for _, e := range m.edges {
		if !dependencyKinds[e.Kind] {
			continue
		}
		from, to := e.SourceID, e.TargetID
		if direction == DirectionDownstream {
			from, to = to, from
		}
		if seen[[2]string{from, to}] {
			continue
		}
		seen[[2]string{from, to}] = true
		adj[from] = append(adj[from], to)
	}
	for _, ids := range adj {
		sort.Strings(ids)
	}
	return func(id string) ([]string, error) { return adj[id], nil }
}

// AssessImpact computes which declared types are affected by changing the
// given types.
func (m *MemStore) AssessImpact(_ context.Context, changedTypes []string) (*ImpactResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	declared := 0
	for _, t := range m.types {
		if t.Kind != TypeKindExternal {
			declared++
		}
	}
	return impact(changedTypes, m.adjacency(DirectionDownstream), declared)
}

// GetClusters returns all stored clusters.
func (m *MemStore) GetClusters(_ context.Context) ([]ClusterNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ClusterNode, len(m.clusters))
	copy(out, m.clusters)
	return out, nil
}

// Stats returns counts of all node and edge types in the graph.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &GraphStats{
		TypeCount:    len(m.types),
		MethodCount:  len(m.methods),
		ClusterCount: len(m.clusters),
		EdgeCount:    len(m.edges),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
