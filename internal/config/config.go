package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/getlawrence/brkset/internal/debugger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration file
const (
	EnvWorkspace    = "BRKSET_WORKSPACE"
	EnvDebugger     = "BRKSET_DEBUGGER"
	EnvDebuggerAddr = "BRKSET_DEBUGGER_ADDR"
	EnvStrict       = "BRKSET_STRICT"
	EnvNoColor      = "NO_COLOR"
)

const (
	defaultDebugger   = "print"
	defaultFormat     = "text"
	defaultConfigName = ".brkset.yaml"
)

// Config represents the brkset configuration
type Config struct {
	// Workspace discovery settings
	Workspace WorkspaceConfig `json:"workspace" yaml:"workspace"`

	// Debugger service settings
	Debugger DebuggerConfig `json:"debugger" yaml:"debugger"`

	// Traversal settings
	Traversal TraversalConfig `json:"traversal" yaml:"traversal"`

	// Output settings
	Output OutputConfig `json:"output" yaml:"output"`
}

// WorkspaceConfig describes where the solution lives and how it is read
type WorkspaceConfig struct {
	// Solution root; empty means search upwards for a *.sln
	Root string `json:"root" yaml:"root"`

	// Paths to exclude from the solution
	ExcludePaths []string `json:"exclude_paths" yaml:"exclude_paths"`

	// Maximum depth searched for projects below a solution folder
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// File patterns that mark a project directory
	ProjectMarkers []string `json:"project_markers" yaml:"project_markers"`
}

// DebuggerConfig selects the debugger service to attach to
type DebuggerConfig struct {
	// dap, delve or print
	Kind string `json:"kind" yaml:"kind"`

	// Addresses tried in order; the first reachable one wins
	Addrs []string `json:"addrs" yaml:"addrs"`

	DialTimeout time.Duration `json:"dial_timeout" yaml:"dial_timeout"`
}

// TraversalConfig contains traversal settings
type TraversalConfig struct {
	// Attempts made to read a namespace while the host is busy
	RetryAttempts int `json:"retry_attempts" yaml:"retry_attempts"`

	// Wait after each busy attempt
	RetryBackoff time.Duration `json:"retry_backoff" yaml:"retry_backoff"`

	// Also walk sub-projects when setting breakpoints in all projects
	Nested bool `json:"nested" yaml:"nested"`

	// Exit with an error status when anything was not found or skipped
	Strict bool `json:"strict" yaml:"strict"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	// Default output format
	Format string `json:"format" yaml:"format"`

	// Wait for a key press before exiting
	Wait bool `json:"wait" yaml:"wait"`

	// Whether to colorize output
	Color bool `json:"color" yaml:"color"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			ExcludePaths: []string{
				".git",
				".vs",
				".idea",
				"bin",
				"obj",
				"node_modules",
				"packages",
				"target",
				"build",
				"out",
			},
			MaxDepth:       10,
			ProjectMarkers: []string{"*.csproj", "*.vbproj", "*.fsproj", "pom.xml", "build.gradle", "build.gradle.kts"},
		},
		Debugger: DebuggerConfig{
			Kind:        defaultDebugger,
			Addrs:       []string{},
			DialTimeout: 10 * time.Second,
		},
		Traversal: TraversalConfig{
			RetryAttempts: 5,
			RetryBackoff:  500 * time.Millisecond,
		},
		Output: OutputConfig{
			Format: defaultFormat,
			Color:  true,
		},
	}
}

// LoadConfig loads configuration from a file, then applies .env and
// environment overrides
func LoadConfig(configPath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If no config file specified, try to find one
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := readConfigFile(config, configPath); err != nil {
			return nil, err
		}
	}

	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

func readConfigFile(config *Config, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// JSON documents are valid YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files when they exist.
// Variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from BRKSET_* environment variables
func ApplyEnv(config *Config) error {
	if v := os.Getenv(EnvWorkspace); v != "" {
		config.Workspace.Root = v
	}
	if v := os.Getenv(EnvDebugger); v != "" {
		config.Debugger.Kind = v
	}
	if v := os.Getenv(EnvDebuggerAddr); v != "" {
		config.Debugger.Addrs = SplitList(v)
	}
	if v := os.Getenv(EnvStrict); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvStrict, v, err)
		}
		config.Traversal.Strict = strict
	}
	if os.Getenv(EnvNoColor) != "" {
		config.Output.Color = false
	}
	return nil
}

// SplitList splits a comma separated list, dropping empty entries
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}
	if !slices.Contains(debugger.Kinds(), c.Debugger.Kind) {
		return fmt.Errorf("unsupported debugger type: %s", c.Debugger.Kind)
	}
	if c.Traversal.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Traversal.RetryAttempts)
	}
	if c.Traversal.RetryBackoff < 0 {
		return fmt.Errorf("retry backoff must not be negative")
	}
	return nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	// Current directory
	candidates := []string{
		".brkset.yaml",
		".brkset.yml",
		".brkset.json",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	// Home directory
	homeDir, err := os.UserHomeDir()
	if err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(homeDir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// GetConfigPath returns the config file path to use
func GetConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	found := findConfigFile()
	if found != "" {
		return found
	}

	// Default location
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(homeDir, defaultConfigName)
	}

	return defaultConfigName
}
