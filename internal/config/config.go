package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonlens/internal/formatter"
)

// Config represents the complete configuration for jsonlens
type Config struct {
	Indent       int           `yaml:"indent" toml:"indent"`
	RootLabel    string        `yaml:"root_label" toml:"root_label"`
	PreviewLimit int           `yaml:"preview_limit" toml:"preview_limit"`
	Flatten      FlattenConfig `yaml:"flatten" toml:"flatten"`
	Search       SearchConfig  `yaml:"search" toml:"search"`
	Graph        GraphConfig   `yaml:"graph" toml:"graph"`
	Tree         TreeConfig    `yaml:"tree" toml:"tree"`
	Output       OutputConfig  `yaml:"output" toml:"output"`
	Dev          DevConfig     `yaml:"dev" toml:"dev"`
}

// FlattenConfig controls the flatten transform
type FlattenConfig struct {
	// ScalarKey is the key used when the document root is not a container
	ScalarKey string `yaml:"scalar_key" toml:"scalar_key"`
}

// SearchConfig controls search output
type SearchConfig struct {
	MaxResults int `yaml:"max_results" toml:"max_results"` // 0 means unlimited
}

// GraphConfig controls graph rendering
type GraphConfig struct {
	Format     string `yaml:"format" toml:"format"`
	RankDir    string `yaml:"rank_dir" toml:"rank_dir"`
	NodePrefix string `yaml:"node_prefix" toml:"node_prefix"`
}

// TreeConfig controls terminal tree rendering
type TreeConfig struct {
	LabelLimit int `yaml:"label_limit" toml:"label_limit"`
	// MaxDepth stops drawing below this many levels; 0 draws everything.
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`
}

// OutputConfig controls exported files
type OutputConfig struct {
	ExportName string `yaml:"export_name" toml:"export_name"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug" toml:"debug"`
}

// Graph formats accepted by GraphConfig.Format
var graphFormats = []string{"dot", "svg", "json"}

var rankDirs = []string{"LR", "RL", "TB", "BT"}

// configNames are searched, in order, in every directory from the working
// directory up to the filesystem root
var configNames = []string{".jsonlens.yml", ".jsonlens.yaml", ".jsonlens.toml"}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Indent:       formatter.DefaultIndent,
		RootLabel:    "root",
		PreviewLimit: formatter.DefaultPreviewLimit,
		Flatten: FlattenConfig{
			ScalarKey: "",
		},
		Search: SearchConfig{
			MaxResults: 0,
		},
		Graph: GraphConfig{
			Format:     "dot",
			RankDir:    "LR",
			NodePrefix: "node",
		},
		Tree: TreeConfig{
			LabelLimit: 20,
			MaxDepth:   64,
		},
		Output: OutputConfig{
			ExportName: "data.json",
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML or TOML file, chosen by
// extension. Fields missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			break
		}
		dir = parentDir
	}

	return ""
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	if c.PreviewLimit < 0 {
		return fmt.Errorf("preview_limit must not be negative, got %d", c.PreviewLimit)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must not be negative, got %d", c.Search.MaxResults)
	}
	if c.Tree.LabelLimit < 0 {
		return fmt.Errorf("tree.label_limit must not be negative, got %d", c.Tree.LabelLimit)
	}
	if c.Tree.MaxDepth < 0 {
		return fmt.Errorf("tree.max_depth must not be negative, got %d", c.Tree.MaxDepth)
	}
	if !contains(graphFormats, c.Graph.Format) {
		return fmt.Errorf("graph.format must be one of %s, got %q", strings.Join(graphFormats, ", "), c.Graph.Format)
	}
	if !contains(rankDirs, strings.ToUpper(c.Graph.RankDir)) {
		return fmt.Errorf("graph.rank_dir must be one of %s, got %q", strings.Join(rankDirs, ", "), c.Graph.RankDir)
	}
	if c.Output.ExportName == "" || filepath.Base(c.Output.ExportName) != c.Output.ExportName {
		return fmt.Errorf("output.export_name must be a plain file name, got %q", c.Output.ExportName)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Overrides holds command-line values that take precedence over the config
// file. Nil fields were not given on the command line.
type Overrides struct {
	Indent    *int
	RootLabel *string
	Debug     bool
}

// LoadConfigWithCLI loads config with CLI argument precedence. An empty
// configPath uses the defaults.
func LoadConfigWithCLI(configPath string, overrides Overrides) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if overrides.Indent != nil {
		cfg.Indent = *overrides.Indent
	}
	if overrides.RootLabel != nil {
		cfg.RootLabel = *overrides.RootLabel
	}
	// A flag can only switch debug on
	if overrides.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
