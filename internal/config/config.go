package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileNames lists the project file names looked up in a directory, in order
var FileNames = []string{"cssmin.yaml", "cssmin.yml"}

// Config represents a cssmin.yaml project file
type Config struct {
	Output   string   `yaml:"output"`
	Files    []string `yaml:"files"`
	Exclude  []string `yaml:"exclude"`
	Comments bool     `yaml:"comments"`
	Concat   bool     `yaml:"concat"`
	Workers  int      `yaml:"workers"`

	// Dir is the directory holding the file; relative paths resolve against it
	Dir string `yaml:"-"`
}

// Load parses the project file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)

	return cfg, nil
}

// Parse decodes project file contents
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return cfg, nil
}

// Find returns the path of the project file in dir, if any
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Exists checks if a project file exists in the directory
func Exists(dir string) bool {
	_, ok := Find(dir)
	return ok
}

// OutputDir returns the output directory resolved against the file location
func (c *Config) OutputDir() string {
	if c.Output == "" || filepath.IsAbs(c.Output) {
		return c.Output
	}
	return filepath.Join(c.Dir, c.Output)
}
