package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from archlens.yml.
type ProjectConfig struct {
	Include        []string `yaml:"include,omitempty"`
	Exclude        []string `yaml:"exclude,omitempty"`
	ExcludeDirs    []string `yaml:"excludeDirs,omitempty"`
	Skip           []string `yaml:"skip,omitempty"`
	Output         string   `yaml:"output,omitempty"`
	Format         string   `yaml:"format,omitempty"`
	NamespaceLevel int      `yaml:"namespaceLevel,omitempty"`
	Workers        int      `yaml:"workers,omitempty"`
	FailFast       bool     `yaml:"failFast,omitempty"`
	GraphDir       string   `yaml:"graphDir,omitempty"`
}

// Load attempts to read archlens.yml or archlens.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"archlens.yml", "archlens.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
