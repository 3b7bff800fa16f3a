// Package config provides configuration loading and defaults for codegauge.
package config

import "time"

// DefaultConfigDir is the default location for codegauge configuration.
const DefaultConfigDir = "~/.config/codegauge"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "codegauge.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. CODEGAUGE_ANALYSIS_LATENCY.
const EnvPrefix = "CODEGAUGE"

// DefaultAnalysis holds the default analysis settings.
var DefaultAnalysis = Analysis{
	Latency:          2 * time.Second,
	CacheSize:        128,
	BatchConcurrency: 4,
}

// DefaultIntake holds the default intake limits.
var DefaultIntake = Intake{
	MaxArchiveMB: 100,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: "auto",
	Width: 66,
}

// DefaultLog holds the default logging settings.
var DefaultLog = Log{
	Level: "warn",
}
