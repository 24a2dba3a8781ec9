package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/dusk-indust/archlens/internal/csharp"
	"github.com/dusk-indust/archlens/internal/export"
	"github.com/dusk-indust/archlens/internal/model"
	"github.com/dusk-indust/archlens/internal/project"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "init":
			return runInit(args[1:], stdout, stderr)
		case "query":
			return runQuery(ctx, args[1:], stdout, stderr)
		}
	}

	flags, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	if flags.Version {
		fmt.Fprintln(stdout, version)
		return nil
	}

	logger := newLogger(stderr, flags.Verbose)

	parser := csharp.NewTreeSitterParser()
	defer parser.Close()

	if flags.ServeMCP {
		return serveMCP(ctx, parser, flags.Addr, logger)
	}

	if err := validFormat(flags.Format); err != nil {
		return err
	}

	res, err := project.Extract(ctx, project.Options{
		Input:       flags.Input,
		Include:     flags.Include,
		Exclude:     flags.Exclude,
		ExcludeDirs: flags.ExcludeDirs,
		Workers:     flags.Workers,
		FailFast:    flags.FailFast,
		Parser:      parser,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	cfg := res.Config
	flags.applyConfig(cfg.Output, cfg.Format, cfg.GraphDir, cfg.NamespaceLevel)
	if err := validFormat(flags.Format); err != nil {
		return err
	}

	m := res.Result.Model
	if err := writeOutput(flags, m, stdout); err != nil {
		return err
	}

	if flags.GraphDir != "" {
		if err := persistGraph(ctx, flags.GraphDir, m, logger); err != nil {
			return err
		}
	}

	stats := m.Stats()
	logger.WithFields(logrus.Fields{
		"classes":    stats.Classes,
		"interfaces": stats.Interfaces,
		"methods":    stats.Methods,
		"failures":   len(res.Result.Failures),
	}).Info("model written")
	return nil
}

// newLogger returns a logger writing to w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// render encodes m in the requested format.
func render(flags *cliFlags, m *model.Model) ([]byte, error) {
	if flags.Format == "mermaid" {
		return []byte(export.GenerateMermaid(m, export.MermaidOptions{
			NamespaceLevel: flags.NamespaceLevel,
		})), nil
	}
	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeOutput writes the rendered model to flags.Output, or to stdout when
// no output file is set.
func writeOutput(flags *cliFlags, m *model.Model, stdout io.Writer) error {
	data, err := render(flags, m)
	if err != nil {
		return err
	}
	if flags.Output == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flags.Output, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
