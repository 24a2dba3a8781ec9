// Package source resolves the command-line input to a search directory and
// discovers the C# files beneath it.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrUnsupportedInput is returned for a file that is neither a project
	// nor a solution file.
	ErrUnsupportedInput = errors.New("unsupported input: expected a directory, .csproj or .sln")
)

// Resolve returns the directory to search for the given input. A directory
// is searched as is; a .csproj or .sln file is replaced by its containing
// directory.
func Resolve(input string) (string, error) {
	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrInputNotFound, input)
		}
		return "", fmt.Errorf("stat %s: %w", input, err)
	}
	if info.IsDir() {
		return input, nil
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case ".csproj", ".sln":
		return filepath.Dir(input), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedInput, input)
}

// compiledPattern holds a skip glob and, for "**/" patterns, the same glob
// anchored at the root so that "**/obj/**" also prunes a top-level obj.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	rooted  glob.Glob
}

// Discovery walks a directory tree for .cs files.
type Discovery struct {
	excludeDirs map[string]bool
	skip        []compiledPattern
}

// NewDiscovery compiles the skip globs. excludeDirs are directory base
// names pruned anywhere in the tree; .git is always pruned.
func NewDiscovery(excludeDirs, skip []string) (*Discovery, error) {
	d := &Discovery{excludeDirs: map[string]bool{".git": true}}
	for _, dir := range excludeDirs {
		d.excludeDirs[dir] = true
	}
	for _, pattern := range skip {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile skip pattern %q: %w", pattern, err)
		}
		cp := compiledPattern{pattern: pattern, glob: g}
		if trimmed, ok := strings.CutPrefix(pattern, "**/"); ok {
			if cp.rooted, err = glob.Compile(trimmed, '/'); err != nil {
				return nil, fmt.Errorf("compile skip pattern %q: %w", pattern, err)
			}
		}
		d.skip = append(d.skip, cp)
	}
	return d, nil
}

// Discover returns the slash-separated paths of every .cs file under root,
// relative to root and sorted.
func (d *Discovery) Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if rel != "." && (d.excludeDirs[entry.Name()] || d.skipped(rel+"/**")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".cs") || d.skipped(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func (d *Discovery) skipped(rel string) bool {
	for _, cp := range d.skip {
		if cp.glob.Match(rel) || (cp.rooted != nil && cp.rooted.Match(rel)) {
			return true
		}
	}
	return false
}
