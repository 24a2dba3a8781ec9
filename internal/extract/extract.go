// Package extract turns parsed source files into the structural model:
// documentation lookup, per-declaration member analysis and assembly of the
// class and interface collections across a batch of files.
package extract

import (
	"context"
	"fmt"
	"io/fs"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/archlens/internal/filter"
	"github.com/dusk-indust/archlens/internal/model"
	"github.com/dusk-indust/archlens/internal/syntax"
)

// FileError records why a single file contributed nothing to the model.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Result is the outcome of a batch extraction.
type Result struct {
	Model    *model.Model
	Files    int          // files parsed successfully
	Failures []*FileError // files skipped, in input order
}

// Extractor runs the model assembly over a set of files.
type Extractor struct {
	Parser syntax.Parser
	Filter *filter.Namespace

	// Workers bounds the number of files parsed concurrently. Zero means
	// GOMAXPROCS.
	Workers int

	// FailFast aborts the run on the first unreadable or unparseable file
	// instead of recording it in Result.Failures.
	FailFast bool

	Logger *logrus.Logger
}

// fileResult holds one file's entities until the ordered merge.
type fileResult struct {
	classes    []model.ClassEntity
	interfaces []model.InterfaceEntity
	err        *FileError
}

// Extract reads and parses every path from fsys and assembles the model.
// Entities appear in path order, then source order, regardless of how the
// parallel parsing was scheduled.
func (e *Extractor) Extract(ctx context.Context, fsys fs.FS, paths []string) (*Result, error) {
	log := e.logger()
	results := make([]fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			classes, interfaces, err := e.extractPath(gctx, fsys, path)
			if err != nil {
				ferr := &FileError{Path: path, Err: err}
				if e.FailFast {
					return ferr
				}
				results[i] = fileResult{err: ferr}
				return nil
			}
			results[i] = fileResult{classes: classes, interfaces: interfaces}
			log.WithFields(logrus.Fields{
				"file":       path,
				"classes":    len(classes),
				"interfaces": len(interfaces),
			}).Debug("extracted file")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Model: &model.Model{}}
	for _, r := range results {
		if r.err != nil {
			log.WithField("file", r.err.Path).WithError(r.err.Err).Warn("skipping file")
			res.Failures = append(res.Failures, r.err)
			continue
		}
		res.Files++
		res.Model.Classes = append(res.Model.Classes, r.classes...)
		res.Model.Interfaces = append(res.Model.Interfaces, r.interfaces...)
	}
	return res, nil
}

func (e *Extractor) extractPath(ctx context.Context, fsys fs.FS, path string) ([]model.ClassEntity, []model.InterfaceEntity, error) {
	source, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, nil, fmt.Errorf("read: %w", err)
	}
	file, err := e.Parser.Parse(ctx, path, source)
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}
	classes, interfaces := ExtractFile(file, e.Filter)
	return classes, interfaces, nil
}

// ExtractFile collects every class and interface declared anywhere in file
// whose namespace passes f. A nil filter includes everything.
func ExtractFile(file *syntax.File, f *filter.Namespace) ([]model.ClassEntity, []model.InterfaceEntity) {
	if file == nil || file.Root == nil {
		return nil, nil
	}
	idx := BuildTriviaIndex(file)
	decls := file.Root.Descendants()

	var classes []model.ClassEntity
	for _, n := range decls {
		if n.Kind != syntax.KindClass {
			continue
		}
		ns := n.EnclosingNamespace()
		if !f.Included(ns) {
			continue
		}
		classes = append(classes, AnalyzeClass(n, ns, idx))
	}

	var interfaces []model.InterfaceEntity
	for _, n := range decls {
		if n.Kind != syntax.KindInterface {
			continue
		}
		ns := n.EnclosingNamespace()
		if !f.Included(ns) {
			continue
		}
		interfaces = append(interfaces, AnalyzeInterface(n, ns, idx))
	}
	return classes, interfaces
}

func (e *Extractor) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (e *Extractor) logger() *logrus.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logrus.StandardLogger()
}
