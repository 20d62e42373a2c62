package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CTAG07/coursegen/pkg/naming"
	"github.com/CTAG07/coursegen/pkg/templating"
	"github.com/natefinch/atomic"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// GeneratorConfig holds the settings of a generation run.
type GeneratorConfig struct {
	SourcePath   string `json:"source_path" yaml:"source_path" toml:"source_path"`
	OutputDir    string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
	DefaultLevel string `json:"default_level" yaml:"default_level" toml:"default_level"`
	DocumentName string `json:"document_name" yaml:"document_name" toml:"document_name"`
	ScriptName   string `json:"script_name" yaml:"script_name" toml:"script_name"`
}

// NamingConfig holds the course directory naming convention.
type NamingConfig struct {
	Prefix     string `json:"prefix" yaml:"prefix" toml:"prefix"`
	Separator  string `json:"separator" yaml:"separator" toml:"separator"`
	IDWidth    int    `json:"id_width" yaml:"id_width" toml:"id_width"`
	MaxSlugLen int    `json:"max_slug_length" yaml:"max_slug_length" toml:"max_slug_length"`
}

// Sanitizer returns the naming convention described by nc.
func (nc *NamingConfig) Sanitizer() naming.Sanitizer {
	return naming.Sanitizer{
		Prefix:     nc.Prefix,
		Separator:  nc.Separator,
		IDWidth:    nc.IDWidth,
		MaxSlugLen: nc.MaxSlugLen,
	}
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Generator *GeneratorConfig           `json:"generator_config" yaml:"generator_config" toml:"generator_config"`
	Templates *templating.TemplateConfig `json:"template_config" yaml:"template_config" toml:"template_config"`
	Naming    *NamingConfig              `json:"naming_config" yaml:"naming_config" toml:"naming_config"`
}

// DefaultGeneratorConfig creates a generator configuration with default values.
func DefaultGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		SourcePath:   "./courses-data.js",
		OutputDir:    "./courses",
		LogLevel:     "info",
		DefaultLevel: "beginner",
		DocumentName: "index.html",
		ScriptName:   "app.js",
	}
}

// DefaultNamingConfig creates a naming configuration matching naming.Default.
func DefaultNamingConfig() *NamingConfig {
	s := naming.Default()
	return &NamingConfig{
		Prefix:     s.Prefix,
		Separator:  s.Separator,
		IDWidth:    s.IDWidth,
		MaxSlugLen: s.MaxSlugLen,
	}
}

// DefaultConfig returns a complete configuration with every section populated.
func DefaultConfig() *Config {
	tmpl := templating.DefaultConfig()
	nc := DefaultNamingConfig()
	tmpl.IDWidth = nc.IDWidth
	return &Config{
		Generator: DefaultGeneratorConfig(),
		Templates: &tmpl,
		Naming:    nc,
	}
}

// codec is a configuration file format.
type codec struct {
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

var codecs = map[string]codec{
	".json": {
		marshal:   func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") },
		unmarshal: json.Unmarshal,
	},
	".yaml": {marshal: yaml.Marshal, unmarshal: yaml.Unmarshal},
	".yml":  {marshal: yaml.Marshal, unmarshal: yaml.Unmarshal},
	".toml": {marshal: toml.Marshal, unmarshal: toml.Unmarshal},
}

func codecFor(path string) (codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	c, ok := codecs[ext]
	if !ok {
		return codec{}, fmt.Errorf("unsupported config format %q (use .json, .yaml, .yml or .toml)", ext)
	}
	return c, nil
}

// LoadConfig reads the configuration from a file at the given path, choosing the format
// by extension. If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}

	// Initialize with default configurations
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if errors.Is(err, os.ErrNotExist) {
			var data []byte
			data, err = c.marshal(config)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Warn instead of failing, as the run can still proceed with defaults.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		// For other errors (e.g., permission denied), return the error.
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = c.unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A section explicitly set to null falls back to its defaults.
	defaults := DefaultConfig()
	if config.Generator == nil {
		config.Generator = defaults.Generator
	}
	if config.Templates == nil {
		config.Templates = defaults.Templates
	}
	if config.Naming == nil {
		config.Naming = defaults.Naming
	}
	// Pages show ids the way directory names pad them.
	config.Templates.IDWidth = config.Naming.IDWidth

	return config, nil
}

// Validate reports the first setting that would make a run impossible.
func (c *Config) Validate() error {
	g := c.Generator
	if strings.TrimSpace(g.OutputDir) == "" {
		return errors.New("generator_config.output_dir must be set")
	}
	if g.DocumentName == "" || g.ScriptName == "" {
		return errors.New("generator_config.document_name and script_name must be set")
	}
	if g.DocumentName == g.ScriptName {
		return errors.New("generator_config.document_name and script_name must differ")
	}
	if g.ScriptName != c.Templates.ScriptFile {
		return fmt.Errorf("generator_config.script_name %q does not match template_config.script_file %q",
			g.ScriptName, c.Templates.ScriptFile)
	}
	if _, err := parseLogLevel(g.LogLevel); err != nil {
		return err
	}
	if sep := c.Naming.Separator; sep != "_" && sep != "-" {
		return fmt.Errorf("naming_config.separator must be _ or -, got %q", sep)
	}
	if err := c.Naming.Sanitizer().Validate(); err != nil {
		return fmt.Errorf("naming_config: %w", err)
	}
	return nil
}
