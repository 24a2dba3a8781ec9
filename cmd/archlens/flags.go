package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// errUsage marks command-line mistakes; main prints usage for them.
var errUsage = errors.New("usage")

// CLI flags parsed from command line.
type cliFlags struct {
	Input          string
	Output         string
	Format         string
	NamespaceLevel int
	GraphDir       string
	Workers        int
	FailFast       bool
	Include        stringList
	Exclude        stringList
	ExcludeDirs    stringList
	Verbose        bool
	Version        bool
	ServeMCP       bool
	Addr           string

	// set records the flags given explicitly, so config values only fill
	// the ones left unset.
	set map[string]bool
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// variadicFlags consume every following token that does not start with "--".
var variadicFlags = []string{"include", "exclude"}

// expandVariadic rewrites "--include a b" into "--include=a --include=b" so
// the flag package can parse it. A variadic flag with no values is dropped.
func expandVariadic(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, ok := variadicName(args[i])
		if !ok {
			out = append(out, args[i])
			continue
		}
		for i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
			i++
			out = append(out, "--"+name+"="+args[i])
		}
	}
	return out
}

func variadicName(arg string) (string, bool) {
	name := strings.TrimLeft(arg, "-")
	if name == arg || strings.Contains(name, "=") {
		return "", false
	}
	for _, v := range variadicFlags {
		if name == v {
			return v, true
		}
	}
	return "", false
}

// parseArgs parses the command line. Flags may appear before or after the
// input argument.
func parseArgs(args []string, stderr io.Writer) (*cliFlags, error) {
	flags := &cliFlags{set: make(map[string]bool)}

	fs := flag.NewFlagSet("archlens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: archlens <dir|project.csproj|solution.sln> [flags]")
		fmt.Fprintln(fs.Output(), "       archlens init [--force] [dir]")
		fmt.Fprintln(fs.Output(), "       archlens query --graph <dir> <pattern>")
		fs.PrintDefaults()
	}
	fs.StringVar(&flags.Output, "output", "", "write the result to this file instead of stdout")
	fs.StringVar(&flags.Format, "format", "json", "output format: json or mermaid")
	fs.IntVar(&flags.NamespaceLevel, "namespace-level", 0, "group mermaid output by the first N namespace segments (0 = no grouping)")
	fs.StringVar(&flags.GraphDir, "graph", "", "also persist the type graph to a Kuzu database in this directory")
	fs.IntVar(&flags.Workers, "workers", 0, "parallel parse limit (default GOMAXPROCS)")
	fs.BoolVar(&flags.FailFast, "fail-fast", false, "abort on the first file that fails to parse")
	fs.Var(&flags.Include, "include", "namespace patterns to include (variadic, repeatable)")
	fs.Var(&flags.Exclude, "exclude", "namespace patterns to exclude (variadic, repeatable)")
	fs.Var(&flags.ExcludeDirs, "exclude-dir", "directory name to skip during discovery (repeatable)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server (stdio unless --addr is set)")
	fs.StringVar(&flags.Addr, "addr", "", "listen address for the streamable HTTP MCP server")

	var positional []string
	rest := expandVariadic(args)
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}
	fs.Visit(func(f *flag.Flag) { flags.set[f.Name] = true })

	if flags.Version || flags.ServeMCP {
		return flags, nil
	}
	switch len(positional) {
	case 0:
		return nil, fmt.Errorf("%w: missing input path", errUsage)
	case 1:
		flags.Input = positional[0]
	default:
		return nil, fmt.Errorf("%w: unexpected arguments %q", errUsage, positional[1:])
	}
	return flags, nil
}

// applyConfig fills flags that were not given explicitly from the project
// configuration.
func (f *cliFlags) applyConfig(output, format, graphDir string, namespaceLevel int) {
	if !f.set["output"] && output != "" {
		f.Output = output
	}
	if !f.set["format"] && format != "" {
		f.Format = format
	}
	if !f.set["graph"] && graphDir != "" {
		f.GraphDir = graphDir
	}
	if !f.set["namespace-level"] && namespaceLevel > 0 {
		f.NamespaceLevel = namespaceLevel
	}
}

func validFormat(format string) error {
	switch format {
	case "json", "mermaid":
		return nil
	}
	return fmt.Errorf("%w: unknown format %q (want json or mermaid)", errUsage, format)
}
