// Package config handles tool configuration loading and management.
package config

// Config holds all objgeom settings.
type Config struct {
	Compile CompileConfig `yaml:"compile"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// CompileConfig holds geometry compilation settings.
type CompileConfig struct {
	// ComputeTangents populates per-vertex tangents when the source
	// carries texture coordinates.
	ComputeTangents bool `yaml:"compute_tangents"`
	// StepBudget is the number of records consumed per parse step.
	// 0 parses the document in a single pass.
	StepBudget int `yaml:"step_budget"`
}

// ExportConfig holds glTF output settings.
type ExportConfig struct {
	// Binary writes a .glb container instead of JSON .gltf.
	Binary bool `yaml:"binary"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Compile: CompileConfig{
			ComputeTangents: false,
			StepBudget:      4096,
		},
		Export: ExportConfig{
			Binary: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
