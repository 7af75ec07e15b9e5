package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"amalgo/core/assembler"
	"amalgo/core/logger"
)

const FileName = "amalgo.yaml"

type Config struct {
	// Output is the merged header's path. Empty means standard output.
	Output     string   `yaml:"output"`
	Recursive  bool     `yaml:"recursive"`
	HeaderDirs []string `yaml:"header_dirs"`
	SourceDirs []string `yaml:"source_dirs"`

	Extensions Extensions       `yaml:"extensions"`
	Rewrite    []assembler.Rule `yaml:"rewrite"`
}

// Extensions decide which discovered files become records, and of which
// kind. Files matching neither set are ignored entirely.
type Extensions struct {
	Header []string `yaml:"header"`
	Source []string `yaml:"source"`
}

func Default() *Config {
	return &Config{
		Output:     "single_header.h",
		Recursive:  true,
		HeaderDirs: []string{"include"},
		SourceDirs: []string{"src"},
		Extensions: Extensions{
			Header: []string{".h", ".hpp"},
			Source: []string{".c", ".cpp"},
		},
		Rewrite: []assembler.Rule{
			{Token: "AMALGO_SOURCE_INLINE", Replacement: "inline"},
		},
	}
}

func Load(wd string) (*Config, error) {
	filePath := filepath.Join(wd, FileName)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No config file found, using default config")
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	logger.Debug("Config file found: %s", filePath)
	logger.Debug("Config: %+v", cfg)

	return cfg, nil
}

// Write marshals the config to wd/amalgo.yaml. Used by `amalgo init`.
func (c *Config) Write(wd string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	filePath := filepath.Join(wd, FileName)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", filePath, err)
	}
	return nil
}
