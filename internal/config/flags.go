package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagTangents = flag.Bool("tangents", false, "Compute per-vertex tangents")
	flagBudget   = flag.Int("budget", 0, "Records consumed per parse step")
	flagBinary   = flag.Bool("binary", false, "Write binary glTF (.glb)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTangents {
		cfg.Compile.ComputeTangents = true
	}
	if *flagBudget > 0 {
		cfg.Compile.StepBudget = *flagBudget
	}
	if *flagBinary {
		cfg.Export.Binary = true
	}
}
