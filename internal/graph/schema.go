package graph

import "github.com/dusk-indust/archlens/internal/model"

// --- Enums ---

// TypeKind classifies type nodes in the graph.
type TypeKind string

const (
	TypeKindClass     TypeKind = "class"
	TypeKindInterface TypeKind = "interface"
	TypeKindExternal  TypeKind = "external" // referenced but not declared in the model
)

// EdgeKind classifies relationships between nodes.
type EdgeKind string

const (
	EdgeKindExtends    EdgeKind = "EXTENDS"    // type -> base class
	EdgeKindImplements EdgeKind = "IMPLEMENTS" // type -> interface
	EdgeKindDependsOn  EdgeKind = "DEPENDS_ON" // type -> field or constructor parameter type
	EdgeKindDeclares   EdgeKind = "DECLARES"   // type -> method
	EdgeKindBelongs    EdgeKind = "BELONGS_TO" // type -> cluster
)

// dependencyKinds are the edges followed by dependency traversal and
// clustering.
var dependencyKinds = map[EdgeKind]bool{
	EdgeKindExtends:    true,
	EdgeKindImplements: true,
	EdgeKindDependsOn:  true,
}

// --- Models ---

// TypeNode represents a class, an interface or an external type reference.
type TypeNode struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Namespace string   `json:"namespace"`
	Kind      TypeKind `json:"kind"`
	Summary   string   `json:"summary,omitempty"`
}

// MethodNode represents a method declared by a type.
type MethodNode struct {
	ID      string `json:"id"`
	TypeID  string `json:"typeId"`
	Name    string `json:"name"`
	Summary string `json:"summary,omitempty"`
}

// ClusterNode represents a group of connected types.
type ClusterNode struct {
	Name          string   `json:"name"`
	CohesionScore float64  `json:"cohesionScore"`
	Members       []string `json:"members"` // type IDs
}

// Edge represents a relationship between two nodes.
type Edge struct {
	SourceID string   `json:"sourceId"`
	TargetID string   `json:"targetId"`
	Kind     EdgeKind `json:"kind"`
}

// GraphStats summarizes a type graph.
type GraphStats struct {
	TypeCount    int `json:"typeCount"`
	MethodCount  int `json:"methodCount"`
	ClusterCount int `json:"clusterCount"`
	EdgeCount    int `json:"edgeCount"`
}

// DependencyChain is an ordered sequence of nodes forming a dependency path.
type DependencyChain struct {
	Nodes []string `json:"nodes"` // node IDs in order
	Depth int      `json:"depth"`
}

// ImpactResult describes the blast radius of changing a set of types.
type ImpactResult struct {
	DirectlyAffected     []string `json:"directlyAffected"`     // types that reference a changed type
	TransitivelyAffected []string `json:"transitivelyAffected"` // full dependent closure
	RiskScore            float64  `json:"riskScore"`            // 0.0-1.0, share of declared types affected
}

// TypeID builds the node ID of a type: "kind:qualified.Name".
func TypeID(kind TypeKind, namespace, name string) string {
	return string(kind) + ":" + model.QualifiedName(namespace, name)
}
