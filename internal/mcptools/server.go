package mcptools

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

// version is set by the linker at build time.
var version = "dev"

// NewArchMCPServer creates an MCP server with the architecture tools registered.
func NewArchMCPServer(svc *ArchService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "archlens",
		Version: version,
	}, nil)

	mcp.AddTool(server, tool("extract_model",
		"Extract the structural model (classes, interfaces, members, documentation summaries, relationships) of a C# directory, .csproj or .sln. Builds the type graph used by the other tools."),
		svc.ExtractModel)

	mcp.AddTool(server, tool("query_types",
		"Search the type graph for classes, interfaces and external types by name substring match. Optionally filter by kind and limit results."),
		svc.QueryTypes)

	mcp.AddTool(server, tool("get_dependencies",
		"Traverse inheritance, implementation and field/constructor dependencies upstream or downstream from a type. Returns dependency chains up to the specified depth."),
		svc.GetDependencies)

	mcp.AddTool(server, tool("assess_impact",
		"Compute which declared types are affected by modifying a set of types. Returns directly and transitively affected types with a risk score."),
		svc.AssessImpact)

	mcp.AddTool(server, tool("get_clusters",
		"Return the clusters of connected types found in the last extracted model, with cohesion scores."),
		svc.GetClusters)

	mcp.AddTool(server, tool("render_diagram",
		"Render the last extracted model as a Mermaid class diagram, optionally grouped into namespace blocks."),
		svc.RenderDiagram)

	return server
}

// tool describes an MCP tool; input and output schemas come from the
// handler types.
func tool(name, description string) *mcp.Tool {
	return &mcp.Tool{Name: name, Description: description}
}

// RunMCPServer serves the architecture tools over streamable HTTP on addr
// until ctx is cancelled.
func RunMCPServer(ctx context.Context, svc *ArchService, addr string) error {
	server := NewArchMCPServer(svc)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		svc.logger.WithField("addr", addr).Info("mcp server listening")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, svc *ArchService) error {
	return NewArchMCPServer(svc).Run(ctx, &mcp.StdioTransport{})
}
