package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test compile defaults
	if cfg.Compile.ComputeTangents {
		t.Error("expected compute_tangents to be false by default")
	}
	if cfg.Compile.StepBudget != 4096 {
		t.Errorf("expected step budget 4096, got %d", cfg.Compile.StepBudget)
	}

	// Test export defaults
	if cfg.Export.Binary {
		t.Error("expected binary to be false by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
compile:
  compute_tangents: true
  step_budget: 512

export:
  binary: true

logging:
  level: "debug"
  log_file: "objgeom.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if !cfg.Compile.ComputeTangents {
		t.Error("expected compute_tangents to be true")
	}
	if cfg.Compile.StepBudget != 512 {
		t.Errorf("expected step budget 512, got %d", cfg.Compile.StepBudget)
	}
	if !cfg.Export.Binary {
		t.Error("expected binary to be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "objgeom.log" {
		t.Errorf("expected log file 'objgeom.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	// A file that only sets some keys keeps defaults for the rest.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
compile:
  step_budget: 64
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Compile.StepBudget != 64 {
		t.Errorf("expected step budget 64, got %d", cfg.Compile.StepBudget)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
compile:
  step_budget: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create objgeom.yaml in current directory
	configPath := filepath.Join(tmpDir, "objgeom.yaml")
	if err := os.WriteFile(configPath, []byte("compile:\n  step_budget: 128\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find objgeom.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "tangents flag",
			setup: func() {
				*flagTangents = true
			},
			verify: func(cfg *Config) {
				if !cfg.Compile.ComputeTangents {
					t.Error("expected compute_tangents to be true with tangents flag")
				}
			},
			teardown: func() {
				*flagTangents = false
			},
		},
		{
			name: "budget flag",
			setup: func() {
				*flagBudget = 256
			},
			verify: func(cfg *Config) {
				if cfg.Compile.StepBudget != 256 {
					t.Errorf("expected step budget 256, got %d", cfg.Compile.StepBudget)
				}
			},
			teardown: func() {
				*flagBudget = 0
			},
		},
		{
			name: "binary flag",
			setup: func() {
				*flagBinary = true
			},
			verify: func(cfg *Config) {
				if !cfg.Export.Binary {
					t.Error("expected binary to be true with binary flag")
				}
			},
			teardown: func() {
				*flagBinary = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
compile:
  compute_tangents: true
  step_budget: 1024
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagBudget = 2048
	defer func() {
		*flagConfig = ""
		*flagBudget = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Budget should be from flag (2048), not file (1024)
	if cfg.Compile.StepBudget != 2048 {
		t.Errorf("expected step budget 2048 from flag, got %d", cfg.Compile.StepBudget)
	}

	// Tangents should be from file since no flag override
	if !cfg.Compile.ComputeTangents {
		t.Error("expected compute_tangents true from file")
	}
}
