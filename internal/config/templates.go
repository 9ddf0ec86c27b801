package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigTemplate is the .pyqc.yaml written by `pyqc config init`.
const DefaultConfigTemplate = `# pyqc configuration
# https://github.com/pyqc-dev/pyqc

line-length: 88
type-checker: mypy
parallel: true

# gitignore-style patterns excluded from file collection
exclude:
  - .git
  - __pycache__
  - .pytest_cache
  - .venv
  - venv
  - node_modules

ruff:
  extend-select: [I, N, UP]
  ignore: [E501]
  line-length: 88

mypy:
  strict: true
  ignore-missing-imports: true
`

// WriteDefaultConfig writes the default configuration template to path,
// verifying first that the template still parses and validates.
func WriteDefaultConfig(path string) error {
	var config Config
	if err := yaml.Unmarshal([]byte(DefaultConfigTemplate), &config); err != nil {
		return fmt.Errorf("config template is not valid YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config template is invalid: %w", err)
	}

	if err := os.WriteFile(path, []byte(DefaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
