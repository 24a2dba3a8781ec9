package mcptools

import (
	"github.com/dusk-indust/archlens/internal/graph"
	"github.com/dusk-indust/archlens/internal/model"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// ExtractModelInput is the input for the extract_model MCP tool.
type ExtractModelInput struct {
	Path        string   `json:"path" jsonschema:"directory, .csproj or .sln file to extract"`
	Include     []string `json:"include,omitempty" jsonschema:"namespace patterns to include (* matches any run of characters)"`
	Exclude     []string `json:"exclude,omitempty" jsonschema:"namespace patterns to exclude; exclusion wins over inclusion"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directory names to skip while discovering files (e.g. obj, bin)"`
}

// FileFailure describes a file that contributed nothing to the model.
type FileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ExtractModelOutput is the result of the extract_model MCP tool.
type ExtractModelOutput struct {
	Model    *model.Model     `json:"model"`
	Stats    model.Stats      `json:"stats"`
	Graph    graph.GraphStats `json:"graph"`
	Files    int              `json:"files"`
	Failures []FileFailure    `json:"failures,omitempty"`
}

// QueryTypesInput is the input for the query_types MCP tool.
type QueryTypesInput struct {
	Query string `json:"query" jsonschema:"search query for type names (case-insensitive substring match)"`
	Kind  string `json:"kind,omitempty" jsonschema:"filter by type kind: class, interface, external"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QueryTypesOutput is the result of the query_types MCP tool.
type QueryTypesOutput struct {
	Types []graph.TypeNode `json:"types"`
	Total int              `json:"total"`
}

// GetDependenciesInput is the input for the get_dependencies MCP tool.
type GetDependenciesInput struct {
	TypeID    string `json:"typeId" jsonschema:"type node ID, e.g. class:App.Models.Repo"`
	Direction string `json:"direction,omitempty" jsonschema:"upstream (what it depends on) or downstream (what depends on it). Default: upstream"`
	MaxDepth  int    `json:"maxDepth,omitempty" jsonschema:"maximum traversal depth (default: 5)"`
}

// GetDependenciesOutput is the result of the get_dependencies MCP tool.
type GetDependenciesOutput struct {
	Chains []graph.DependencyChain `json:"chains"`
}

// AssessImpactInput is the input for the assess_impact MCP tool.
type AssessImpactInput struct {
	ChangedTypes []string `json:"changedTypes" jsonschema:"type node IDs that will be modified"`
}

// AssessImpactOutput is the result of the assess_impact MCP tool.
type AssessImpactOutput struct {
	Impact graph.ImpactResult `json:"impact"`
}

// GetClustersInput is the input for the get_clusters MCP tool.
type GetClustersInput struct{}

// GetClustersOutput is the result of the get_clusters MCP tool.
type GetClustersOutput struct {
	Clusters []graph.ClusterNode `json:"clusters"`
}

// RenderDiagramInput is the input for the render_diagram MCP tool.
type RenderDiagramInput struct {
	NamespaceLevel int `json:"namespaceLevel,omitempty" jsonschema:"group classes into namespace blocks truncated to this many segments (0: no grouping)"`
}

// RenderDiagramOutput is the result of the render_diagram MCP tool.
type RenderDiagramOutput struct {
	Mermaid string `json:"mermaid"`
}
