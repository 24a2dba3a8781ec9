package graph

import (
	"context"
	"io"
)

// Store is the interface for the type graph backend.
// Implementations: KuzuStore (embedded database), MemStore (in-process).
type Store interface {
	io.Closer

	// Schema setup — called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddType(ctx context.Context, node TypeNode) error
	AddMethod(ctx context.Context, node MethodNode) error
	AddCluster(ctx context.Context, node ClusterNode) error
	AddEdge(ctx context.Context, edge Edge) error

	// Read operations.
	GetType(ctx context.Context, id string) (*TypeNode, error)
	GetMethods(ctx context.Context, typeID string) ([]MethodNode, error)
	QueryTypes(ctx context.Context, query string, kind TypeKind, limit int) ([]TypeNode, error)
	GetAllTypes(ctx context.Context) ([]TypeNode, error)
	GetAllEdges(ctx context.Context) ([]Edge, error)

	// Graph traversal.
	GetDependencies(ctx context.Context, typeID string, direction Direction, maxDepth int) ([]DependencyChain, error)
	AssessImpact(ctx context.Context, changedTypes []string) (*ImpactResult, error)
	GetClusters(ctx context.Context) ([]ClusterNode, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}

// Direction controls dependency traversal direction.
type Direction string

const (
	DirectionUpstream   Direction = "upstream"   // what does this depend on?
	DirectionDownstream Direction = "downstream" // what depends on this?
)
