package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadConfig_CreatesDefault(t *testing.T) {
	for _, name := range []string{"coursegen.json", "coursegen.yaml", "coursegen.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if !reflect.DeepEqual(cfg, DefaultConfig()) {
				t.Errorf("expected defaults, got %+v", cfg)
			}
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("default config file was not written: %v", err)
			}

			// The written file must load back to the same configuration.
			again, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("reloading default config failed: %v", err)
			}
			if !reflect.DeepEqual(again, cfg) {
				t.Errorf("round trip changed config:\n%+v\n%+v", cfg, again)
			}
		})
	}
}

func TestLoadConfig_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "c.json", `{"generator_config": {"output_dir": "/srv/courses", "log_level": "debug"}, "naming_config": {"separator": "-"}}`},
		{"yaml", "c.yaml", "generator_config:\n  output_dir: /srv/courses\n  log_level: debug\nnaming_config:\n  separator: \"-\"\n"},
		{"toml", "c.toml", "[generator_config]\noutput_dir = \"/srv/courses\"\nlog_level = \"debug\"\n\n[naming_config]\nseparator = \"-\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if cfg.Generator.OutputDir != "/srv/courses" || cfg.Generator.LogLevel != "debug" {
				t.Errorf("generator section not applied: %+v", cfg.Generator)
			}
			if cfg.Naming.Separator != "-" {
				t.Errorf("naming section not applied: %+v", cfg.Naming)
			}
			if cfg.Templates == nil || cfg.Templates.DocumentTemplate == "" {
				t.Error("missing template section should keep its defaults")
			}
		})
	}
}

func TestLoadConfig_KeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.json")
	if err := os.WriteFile(path, []byte(`{"generator_config": {"output_dir": "out"}, "template_config": null}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	def := DefaultConfig()
	if cfg.Generator.ScriptName != def.Generator.ScriptName || cfg.Generator.DefaultLevel != def.Generator.DefaultLevel {
		t.Errorf("unset generator fields lost their defaults: %+v", cfg.Generator)
	}
	if !reflect.DeepEqual(cfg.Templates, def.Templates) {
		t.Errorf("null template section should fall back to defaults, got %+v", cfg.Templates)
	}
}

func TestLoadConfig_IDWidthFollowsNaming(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("naming_config:\n  id_width: 4\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Templates.IDWidth != 4 {
		t.Errorf("template id width = %d, want the naming width 4", cfg.Templates.IDWidth)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "c.ini")); err == nil || !strings.Contains(err.Error(), "unsupported config format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"generator_config": [}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(bad); err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"dash separator", func(c *Config) { c.Naming.Separator = "-" }, ""},
		{"empty output", func(c *Config) { c.Generator.OutputDir = " " }, "output_dir"},
		{"same file names", func(c *Config) { c.Generator.DocumentName = "app.js" }, "must differ"},
		{"script mismatch", func(c *Config) { c.Generator.ScriptName = "course.js" }, "does not match"},
		{"bad log level", func(c *Config) { c.Generator.LogLevel = "loud" }, "unknown log level"},
		{"bad separator", func(c *Config) { c.Naming.Separator = "." }, "separator"},
		{"zero width", func(c *Config) { c.Naming.IDWidth = 0 }, "naming_config"},
		{"prefix with slash", func(c *Config) { c.Naming.Prefix = "a/b" }, "naming_config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, name := range []string{"debug", "INFO", "", "warn", "warning", "error"} {
		if _, err := parseLogLevel(name); err != nil {
			t.Errorf("parseLogLevel(%q) failed: %v", name, err)
		}
	}
	if _, err := parseLogLevel("verbose"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
