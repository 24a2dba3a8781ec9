package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// mcpConfig represents the structure of a .mcp.json file.
type mcpConfig struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// archlensMCPEntry is the MCP server configuration for the archlens binary.
var archlensMCPEntry = json.RawMessage(`{
  "type": "stdio",
  "command": "archlens",
  "args": ["--serve-mcp"]
}`)

// starterConfig is written to archlens.yml by init.
const starterConfig = `# archlens project configuration.
# Command-line flags override scalar values; include/exclude lists are appended.

# Namespace patterns; '*' matches any run of characters. Exclusion wins.
include: []
exclude: []

# Directory names skipped while discovering .cs files.
excludeDirs:
  - bin
  - obj

# Path globs (slash-separated, relative to this directory) to skip.
skip: []

format: json
namespaceLevel: 0
failFast: false
`

// runInit writes a starter archlens.yml and registers the archlens MCP server
// in .mcp.json of the target directory.
func runInit(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archlens init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "overwrite existing files and entries")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	root := "."
	switch fs.NArg() {
	case 0:
	case 1:
		root = fs.Arg(0)
	default:
		return fmt.Errorf("%w: init takes at most one directory", errUsage)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return err
	}

	if err := writeStarterConfig(filepath.Join(abs, "archlens.yml"), *force, stdout); err != nil {
		return err
	}
	if err := mergeMCPConfig(filepath.Join(abs, ".mcp.json"), *force, stdout); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "\nSetup complete. Run 'archlens .' to extract the model.")
	return nil
}

func writeStarterConfig(path string, force bool, stdout io.Writer) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(stdout, "  skipped %s (exists, use --force to overwrite)\n", filepath.Base(path))
			return nil
		}
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(stdout, "  created %s\n", filepath.Base(path))
	return nil
}

// mergeMCPConfig creates or merges the archlens entry into .mcp.json.
func mergeMCPConfig(mcpPath string, force bool, stdout io.Writer) error {
	var cfg mcpConfig

	data, err := os.ReadFile(mcpPath)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", mcpPath, err)
		}
	}

	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]json.RawMessage)
	}

	if _, exists := cfg.MCPServers["archlens"]; exists && !force {
		fmt.Fprintln(stdout, "  skipped .mcp.json archlens entry (exists, use --force to overwrite)")
		return nil
	}

	cfg.MCPServers["archlens"] = archlensMCPEntry

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling .mcp.json: %w", err)
	}

	if err := os.WriteFile(mcpPath, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", mcpPath, err)
	}

	action := "created"
	if data != nil {
		action = "updated"
	}
	fmt.Fprintf(stdout, "  %s .mcp.json with archlens MCP server\n", action)
	return nil
}
