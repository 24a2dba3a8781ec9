//go:build !cgo

package main

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/dusk-indust/archlens/internal/graph"
	"github.com/dusk-indust/archlens/internal/model"
)

func newGraphStore() (graph.Store, error) {
	return graph.NewMemStore(), nil
}

func persistGraph(_ context.Context, _ string, _ *model.Model, _ *logrus.Logger) error {
	return errors.New("--graph requires a cgo build (kuzu)")
}

func runQuery(_ context.Context, _ []string, _, _ io.Writer) error {
	return errors.New("query requires a cgo build (kuzu)")
}
