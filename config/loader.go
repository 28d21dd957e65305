package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// splitFile is the on-disk shape of a split configuration: the split
// section lives under a top-level "split" key.
type splitFile struct {
	Split SplitConfig `yaml:"split"`
}

// LoadMergeConfig reads and validates a merge configuration file.
func LoadMergeConfig(path string) (*MergeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultMergeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadSplitConfig reads and validates a split configuration file.
func LoadSplitConfig(path string) (*SplitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var file splitFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg := file.Split
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// migrationFile is the on-disk shape of a standalone data migration
// configuration: the migration section lives under a top-level
// "migration" key, matching its placement inside merge configs.
type migrationFile struct {
	Migration DataMigrationConfig `yaml:"migration"`
}

// LoadMigrationConfig reads and validates a data migration configuration
// file.
func LoadMigrationConfig(path string) (*DataMigrationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var file migrationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg := file.Migration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadRefactorConfig reads and validates a refactor configuration file.
func LoadRefactorConfig(path string) (*RefactorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg RefactorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
