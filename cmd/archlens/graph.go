//go:build cgo

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/dusk-indust/archlens/internal/graph"
	"github.com/dusk-indust/archlens/internal/model"
)

// newGraphStore opens an in-memory Kuzu store for one MCP extraction.
func newGraphStore() (graph.Store, error) {
	return graph.NewKuzuStore()
}

// persistGraph writes the type graph of m to a Kuzu database at dir,
// replacing any database already there.
func persistGraph(ctx context.Context, dir string, m *model.Model, logger *logrus.Logger) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear graph dir: %w", err)
	}

	store, err := graph.NewKuzuFileStore(dir)
	if err != nil {
		return fmt.Errorf("open graph: %w", err)
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	if err := graph.Load(ctx, store, m); err != nil {
		return fmt.Errorf("load graph: %w", err)
	}
	clusters, err := graph.ComputeClusters(ctx, store)
	if err != nil {
		return fmt.Errorf("compute clusters: %w", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("graph stats: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"dir":      dir,
		"types":    stats.TypeCount,
		"edges":    stats.EdgeCount,
		"clusters": len(clusters),
	}).Info("graph persisted")
	return nil
}
