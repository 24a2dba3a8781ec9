//go:build cgo

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dusk-indust/archlens/internal/graph"
)

// runQuery searches a graph persisted with --graph and prints the matching
// types with their dependencies, dependents and cluster.
func runQuery(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archlens query", flag.ContinueOnError)
	fs.SetOutput(stderr)
	graphDir := fs.String("graph", "", "graph database written by 'archlens --graph'")
	limit := fs.Int("limit", 10, "maximum number of matching types")
	depth := fs.Int("depth", 2, "dependency traversal depth")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *graphDir == "" || fs.NArg() != 1 {
		return fmt.Errorf("%w: archlens query --graph <dir> <pattern>", errUsage)
	}
	pattern := fs.Arg(0)

	if _, err := os.Stat(*graphDir); err != nil {
		return fmt.Errorf("no graph found at %s; run 'archlens <input> --graph %s' first", *graphDir, *graphDir)
	}

	store, err := graph.NewKuzuFileStore(*graphDir)
	if err != nil {
		return fmt.Errorf("open graph: %w", err)
	}
	defer store.Close()

	types, err := store.QueryTypes(ctx, pattern, "", *limit)
	if err != nil {
		return fmt.Errorf("query types: %w", err)
	}
	if len(types) == 0 {
		fmt.Fprintf(stdout, "No types match %q.\n", pattern)
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Graph Context for %q\n\n", pattern)

	sb.WriteString("**Types found:**\n")
	for _, t := range types {
		fmt.Fprintf(&sb, "- `%s %s`", t.Kind, t.ID)
		if t.Summary != "" {
			fmt.Fprintf(&sb, ": %s", t.Summary)
		}
		sb.WriteString("\n")
	}

	primary := types[0].ID

	upstream, err := store.GetDependencies(ctx, primary, graph.DirectionUpstream, *depth)
	if err != nil {
		return fmt.Errorf("get dependencies: %w", err)
	}
	if len(upstream) > 0 {
		fmt.Fprintf(&sb, "\n**Dependencies (upstream from `%s`):**\n", primary)
		writeChainEnds(&sb, upstream, 0)
	}

	downstream, err := store.GetDependencies(ctx, primary, graph.DirectionDownstream, *depth)
	if err != nil {
		return fmt.Errorf("get dependents: %w", err)
	}
	if len(downstream) > 0 {
		fmt.Fprintf(&sb, "\n**Dependents (downstream, %d types use `%s`):**\n", len(downstream), primary)
		writeChainEnds(&sb, downstream, 8)
	}

	clusters, err := store.GetClusters(ctx)
	if err != nil {
		return fmt.Errorf("get clusters: %w", err)
	}
	for _, c := range clusters {
		for _, member := range c.Members {
			if member == primary {
				fmt.Fprintf(&sb, "\n**Cluster:** %s (cohesion: %.2f), %d types\n",
					c.Name, c.CohesionScore, len(c.Members))
				break
			}
		}
	}

	_, err = io.WriteString(stdout, sb.String())
	return err
}

// writeChainEnds lists the last node of each chain, at most limit when limit > 0.
func writeChainEnds(sb *strings.Builder, chains []graph.DependencyChain, limit int) {
	shown := 0
	for _, chain := range chains {
		if len(chain.Nodes) < 2 {
			continue
		}
		if limit > 0 && shown == limit {
			fmt.Fprintf(sb, "- ... (%d more)\n", len(chains)-shown)
			return
		}
		fmt.Fprintf(sb, "- `%s`\n", chain.Nodes[len(chain.Nodes)-1])
		shown++
	}
}
