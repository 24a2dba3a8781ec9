// Package project runs one extraction over a C# input: it resolves the
// search directory, merges archlens.yml with the caller's options, discovers
// the source files and assembles the model.
package project

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/dusk-indust/archlens/internal/config"
	"github.com/dusk-indust/archlens/internal/extract"
	"github.com/dusk-indust/archlens/internal/filter"
	"github.com/dusk-indust/archlens/internal/source"
	"github.com/dusk-indust/archlens/internal/syntax"
)

// Options are the caller's settings for one run. List options extend the
// project configuration; scalar options override it when set.
type Options struct {
	Input       string
	Include     []string
	Exclude     []string
	ExcludeDirs []string
	Skip        []string
	Workers     int
	FailFast    bool

	Parser syntax.Parser
	Logger *logrus.Logger
}

// Run is the outcome of Extract.
type Run struct {
	Dir    string                // resolved search directory
	Config *config.ProjectConfig // project configuration merged with Options
	Files  []string              // discovered files, relative to Dir
	Result *extract.Result
}

// Extract resolves opts.Input and extracts the model of every .cs file
// beneath it. Input resolution, configuration and discovery errors are
// returned before any file is parsed.
func Extract(ctx context.Context, opts Options) (*Run, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	dir, err := source.Resolve(opts.Input)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	merge(cfg, opts)

	discovery, err := source.NewDiscovery(cfg.ExcludeDirs, cfg.Skip)
	if err != nil {
		return nil, err
	}
	files, err := discovery.Discover(dir)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"dir":   dir,
		"files": len(files),
	}).Info("discovered source files")

	ex := &extract.Extractor{
		Parser:   opts.Parser,
		Filter:   filter.New(cfg.Include, cfg.Exclude),
		Workers:  cfg.Workers,
		FailFast: cfg.FailFast,
		Logger:   log,
	}
	res, err := ex.Extract(ctx, os.DirFS(dir), files)
	if err != nil {
		return nil, err
	}

	stats := res.Model.Stats()
	log.WithFields(logrus.Fields{
		"classes":    stats.Classes,
		"interfaces": stats.Interfaces,
		"failures":   len(res.Failures),
	}).Info("extraction complete")

	return &Run{Dir: dir, Config: cfg, Files: files, Result: res}, nil
}

func merge(cfg *config.ProjectConfig, opts Options) {
	cfg.Include = append(cfg.Include, opts.Include...)
	cfg.Exclude = append(cfg.Exclude, opts.Exclude...)
	cfg.ExcludeDirs = append(cfg.ExcludeDirs, opts.ExcludeDirs...)
	cfg.Skip = append(cfg.Skip, opts.Skip...)
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	cfg.FailFast = cfg.FailFast || opts.FailFast
}
