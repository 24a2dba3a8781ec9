package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/dusk-indust/archlens/internal/export"
	"github.com/dusk-indust/archlens/internal/graph"
	"github.com/dusk-indust/archlens/internal/model"
	"github.com/dusk-indust/archlens/internal/project"
	"github.com/dusk-indust/archlens/internal/syntax"
)

// errNoModel is returned by graph tools before extract_model has run.
var errNoModel = errors.New("no model extracted yet; call extract_model first")

// StoreFactory opens an empty graph store for one extraction.
type StoreFactory func() (graph.Store, error)

// MemStoreFactory returns in-memory stores.
func MemStoreFactory() (graph.Store, error) {
	return graph.NewMemStore(), nil
}

// ArchService holds the parser and the graph of the last extracted model.
type ArchService struct {
	parser   syntax.Parser
	newStore StoreFactory
	logger   *logrus.Logger

	mu    sync.RWMutex
	model *model.Model
	store graph.Store
}

// NewArchService creates an ArchService. A nil newStore uses MemStoreFactory
// and a nil logger the logrus standard logger.
func NewArchService(parser syntax.Parser, newStore StoreFactory, logger *logrus.Logger) *ArchService {
	if newStore == nil {
		newStore = MemStoreFactory
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ArchService{parser: parser, newStore: newStore, logger: logger}
}

// Close releases the current graph store and forgets the model. Tools called
// afterwards fail with errNoModel until the next extraction.
func (s *ArchService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = nil
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

// ExtractModel extracts the model of a C# project, loads it into a fresh
// graph store and computes clusters. The result replaces any earlier model.
func (s *ArchService) ExtractModel(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractModelInput,
) (*mcp.CallToolResult, ExtractModelOutput, error) {
	if input.Path == "" {
		return nil, ExtractModelOutput{}, fmt.Errorf("path is required")
	}

	run, err := project.Extract(ctx, project.Options{
		Input:       input.Path,
		Include:     input.Include,
		Exclude:     input.Exclude,
		ExcludeDirs: input.ExcludeDirs,
		Parser:      s.parser,
		Logger:      s.logger,
	})
	if err != nil {
		return nil, ExtractModelOutput{}, err
	}
	m := run.Result.Model

	store, err := s.newStore()
	if err != nil {
		return nil, ExtractModelOutput{}, fmt.Errorf("open graph store: %w", err)
	}
	if err := buildGraph(ctx, store, m); err != nil {
		store.Close()
		return nil, ExtractModelOutput{}, err
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		store.Close()
		return nil, ExtractModelOutput{}, fmt.Errorf("stats: %w", err)
	}

	// Readers hold the read lock for as long as they use a store, so once the
	// swap is done nobody can still be using the old one.
	s.mu.Lock()
	old := s.store
	s.model, s.store = m, store
	s.mu.Unlock()
	if old != nil {
		if err := old.Close(); err != nil {
			s.logger.WithError(err).Warn("closing previous graph store")
		}
	}

	out := ExtractModelOutput{
		Model: m,
		Stats: m.Stats(),
		Graph: *stats,
		Files: run.Result.Files,
	}
	for _, f := range run.Result.Failures {
		out.Failures = append(out.Failures, FileFailure{Path: f.Path, Error: f.Err.Error()})
	}
	return nil, out, nil
}

// buildGraph initializes store and fills it with m and its clusters.
func buildGraph(ctx context.Context, store graph.Store, m *model.Model) error {
	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	if err := graph.Load(ctx, store, m); err != nil {
		return fmt.Errorf("load graph: %w", err)
	}
	if _, err := graph.ComputeClusters(ctx, store); err != nil {
		return fmt.Errorf("compute clusters: %w", err)
	}
	return nil
}

// view runs fn against the last extracted model and its store. The read lock
// is held until fn returns, which keeps the store open for the duration.
func (s *ArchService) view(fn func(m *model.Model, store graph.Store) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.model == nil || s.store == nil {
		return errNoModel
	}
	return fn(s.model, s.store)
}

// QueryTypes searches for types by name substring match.
func (s *ArchService) QueryTypes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryTypesInput,
) (*mcp.CallToolResult, QueryTypesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	kind := graph.TypeKind(strings.ToLower(input.Kind))
	switch kind {
	case "", graph.TypeKindClass, graph.TypeKindInterface, graph.TypeKindExternal:
	default:
		return nil, QueryTypesOutput{}, fmt.Errorf("unknown kind %q", input.Kind)
	}

	var types []graph.TypeNode
	err := s.view(func(_ *model.Model, store graph.Store) error {
		var err error
		if types, err = store.QueryTypes(ctx, input.Query, kind, limit); err != nil {
			return fmt.Errorf("query types: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, QueryTypesOutput{}, err
	}

	return nil, QueryTypesOutput{
		Types: types,
		Total: len(types),
	}, nil
}

// GetDependencies traverses the dependency graph from a given type.
func (s *ArchService) GetDependencies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDependenciesInput,
) (*mcp.CallToolResult, GetDependenciesOutput, error) {
	if input.TypeID == "" {
		return nil, GetDependenciesOutput{}, fmt.Errorf("typeId is required")
	}
	direction := graph.DirectionUpstream
	if strings.EqualFold(input.Direction, "downstream") {
		direction = graph.DirectionDownstream
	}

	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 5
	}

	var chains []graph.DependencyChain
	err := s.view(func(_ *model.Model, store graph.Store) error {
		var err error
		if chains, err = store.GetDependencies(ctx, input.TypeID, direction, maxDepth); err != nil {
			return fmt.Errorf("get dependencies: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, GetDependenciesOutput{}, err
	}

	return nil, GetDependenciesOutput{Chains: chains}, nil
}

// AssessImpact computes which types are affected by modifying a set of types.
func (s *ArchService) AssessImpact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AssessImpactInput,
) (*mcp.CallToolResult, AssessImpactOutput, error) {
	if len(input.ChangedTypes) == 0 {
		return nil, AssessImpactOutput{}, fmt.Errorf("changedTypes is required")
	}
	var impact *graph.ImpactResult
	err := s.view(func(_ *model.Model, store graph.Store) error {
		var err error
		if impact, err = store.AssessImpact(ctx, input.ChangedTypes); err != nil {
			return fmt.Errorf("assess impact: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, AssessImpactOutput{}, err
	}

	return nil, AssessImpactOutput{Impact: *impact}, nil
}

// GetClusters returns all type clusters in the graph.
func (s *ArchService) GetClusters(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetClustersInput,
) (*mcp.CallToolResult, GetClustersOutput, error) {
	var clusters []graph.ClusterNode
	err := s.view(func(_ *model.Model, store graph.Store) error {
		var err error
		if clusters, err = store.GetClusters(ctx); err != nil {
			return fmt.Errorf("get clusters: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, GetClustersOutput{}, err
	}

	return nil, GetClustersOutput{Clusters: clusters}, nil
}

// RenderDiagram renders the last extracted model as a Mermaid class diagram.
func (s *ArchService) RenderDiagram(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RenderDiagramInput,
) (*mcp.CallToolResult, RenderDiagramOutput, error) {
	var diagram string
	err := s.view(func(m *model.Model, _ graph.Store) error {
		diagram = export.GenerateMermaid(m, export.MermaidOptions{NamespaceLevel: input.NamespaceLevel})
		return nil
	})
	if err != nil {
		return nil, RenderDiagramOutput{}, err
	}
	return nil, RenderDiagramOutput{Mermaid: diagram}, nil
}
