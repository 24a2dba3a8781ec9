package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dusk-indust/archlens/internal/mcptools"
	"github.com/dusk-indust/archlens/internal/syntax"
)

// serveMCP runs the MCP server until ctx is cancelled: over streamable HTTP
// when addr is set, over stdio otherwise.
func serveMCP(ctx context.Context, parser syntax.Parser, addr string, logger *logrus.Logger) error {
	svc := mcptools.NewArchService(parser, newGraphStore, logger)
	defer svc.Close()

	if addr == "" {
		logger.Debug("serving MCP on stdio")
		return mcptools.RunMCPServerStdio(ctx, svc)
	}
	logger.WithField("addr", addr).Info("serving MCP over HTTP")
	return mcptools.RunMCPServer(ctx, svc, addr)
}
