package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default configuration values matching the tool's documented behavior
const (
	// DefaultLineLength is the line length enforced by ruff
	DefaultLineLength = 88

	// TypeCheckerMypy is the only supported type checker backend
	TypeCheckerMypy = "mypy"
)

// Config is the main pyqc configuration. It is read-only once loaded;
// the runner and checkers share it without locking.
type Config struct {
	// LineLength is the maximum allowed line length
	LineLength int `json:"lineLength" mapstructure:"line-length" yaml:"line-length"`

	// TypeChecker selects the type checking backend
	TypeChecker string `json:"typeChecker" mapstructure:"type-checker" yaml:"type-checker"`

	// Parallel enables the bounded worker pool; when false files are
	// processed sequentially in input order
	Parallel bool `json:"parallel" mapstructure:"parallel" yaml:"parallel"`

	// Exclude holds gitignore-style patterns skipped during file collection
	Exclude []string `json:"exclude" mapstructure:"exclude" yaml:"exclude"`

	// Ruff holds lint and format checker configuration
	Ruff RuffConfig `json:"ruff" mapstructure:"ruff" yaml:"ruff"`

	// Mypy holds type checker configuration
	Mypy MypyConfig `json:"mypy" mapstructure:"mypy" yaml:"mypy"`
}

// RuffConfig configures the ruff lint and format invocations.
type RuffConfig struct {
	// ExtendSelect adds rule groups on top of ruff's defaults
	ExtendSelect []string `json:"extendSelect" mapstructure:"extend-select" yaml:"extend-select"`

	// Ignore lists rule codes to suppress
	Ignore []string `json:"ignore" mapstructure:"ignore" yaml:"ignore"`

	// LineLength overrides the line length for ruff (0 = tool default)
	LineLength int `json:"lineLength" mapstructure:"line-length" yaml:"line-length"`
}

// MypyConfig configures the mypy invocation.
type MypyConfig struct {
	// Strict enables mypy strict mode
	Strict bool `json:"strict" mapstructure:"strict" yaml:"strict"`

	// IgnoreMissingImports suppresses errors about untyped third-party imports
	IgnoreMissingImports bool `json:"ignoreMissingImports" mapstructure:"ignore-missing-imports" yaml:"ignore-missing-imports"`
}

// DefaultConfig returns the configuration used when no config file is found.
func DefaultConfig() *Config {
	return &Config{
		LineLength:  DefaultLineLength,
		TypeChecker: TypeCheckerMypy,
		Parallel:    true,
		Exclude: []string{
			".git",
			"__pycache__",
			".pytest_cache",
			".venv",
			"venv",
			"node_modules",
		},
		Ruff: RuffConfig{
			ExtendSelect: []string{"I", "N", "UP"},
			Ignore:       []string{"E501"},
			LineLength:   DefaultLineLength,
		},
		Mypy: MypyConfig{
			Strict:               true,
			IgnoreMissingImports: true,
		},
	}
}

// Validate checks the configuration for values the tool cannot honor.
func (c *Config) Validate() error {
	if c.LineLength <= 0 {
		return fmt.Errorf("line-length must be positive, got %d", c.LineLength)
	}
	if c.TypeChecker != "" && c.TypeChecker != TypeCheckerMypy {
		return fmt.Errorf("unsupported type checker: %s", c.TypeChecker)
	}
	return nil
}

// ConfigFileCandidates are the file names searched during discovery, in
// precedence order. pyproject.toml is consulted last and only its
// [tool.pyqc] table is read.
var ConfigFileCandidates = []string{
	".pyqc.yaml",
	".pyqc.yml",
	".pyqc.toml",
	"pyqc.yaml",
	"pyproject.toml",
}

// LoadConfig loads configuration from the given file, or discovers one
// starting from the current directory when the path is empty.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration, discovering a config file
// upward from targetPath when no explicit path is given.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses one configuration file. An empty
// path yields the defaults.
func loadConfigFromFile(configPath string) (*Config, error) {
	config := DefaultConfig()
	if configPath == "" {
		return config, nil
	}

	// A fresh viper instance per load avoids shared global state
	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if filepath.Base(configPath) == "pyproject.toml" {
		sub := v.Sub("tool.pyqc")
		if sub == nil {
			// pyproject.toml without a [tool.pyqc] table means defaults
			return config, nil
		}
		v = sub
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory returns the first candidate that exists in dir.
func searchConfigInDirectory(dir string) string {
	for _, candidate := range ConfigFileCandidates {
		path := filepath.Join(dir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			// pyproject.toml only counts when it carries a [tool.pyqc] table
			if candidate == "pyproject.toml" && !hasPyqcTable(path) {
				continue
			}
			return path
		}
	}
	return ""
}

// hasPyqcTable reports whether a pyproject.toml defines [tool.pyqc].
func hasPyqcTable(path string) bool {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return false
	}
	return v.Sub("tool.pyqc") != nil
}

// findDefaultConfig searches from the target directory up to the
// filesystem root, then the working directory, then the user's config
// directory.
func findDefaultConfig(targetPath string) string {
	if targetPath != "" {
		if absPath, err := filepath.Abs(targetPath); err == nil {
			if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory("."); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "pyqc")); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", "pyqc")); config != "" {
			return config
		}
	}

	return ""
}
