package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the top-level codegauge configuration.
type Config struct {
	Analysis Analysis `mapstructure:"analysis"`
	Intake   Intake   `mapstructure:"intake"`
	Output   Output   `mapstructure:"output"`
	Log      Log      `mapstructure:"log"`

	// DBPath overrides the history database location.
	DBPath string `mapstructure:"db_path"`
}

// Analysis configures the analyzer.
type Analysis struct {
	// Latency is the simulated processing delay before each analysis.
	Latency time.Duration `mapstructure:"latency"`

	// Seed fixes the random seed for every analysis. Zero means unset.
	Seed uint64 `mapstructure:"seed"`

	// StableSeed derives the seed from the descriptor, so the same input
	// always yields the same metrics.
	StableSeed bool `mapstructure:"stable_seed"`

	CacheSize        int `mapstructure:"cache_size"`
	BatchConcurrency int `mapstructure:"batch_concurrency"`
}

// Intake configures submission limits.
type Intake struct {
	MaxArchiveMB int64 `mapstructure:"max_archive_mb"`
}

// MaxArchiveBytes returns the archive size limit in bytes.
func (i Intake) MaxArchiveBytes() int64 {
	return i.MaxArchiveMB * 1024 * 1024
}

// Output defines output preferences.
type Output struct {
	// Color is "auto", "always" or "never".
	Color string `mapstructure:"color"`
	Width int    `mapstructure:"width"`
}

// Log defines logging preferences.
type Log struct {
	Level string `mapstructure:"level"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// LoadEnvFiles loads KEY=value pairs from the given .env files into the
// process environment. Missing files are skipped and variables that are
// already set win.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		p = expandPath(p)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return err
		}
	}
	return nil
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. Environment variables
// prefixed with CODEGAUGE_ override file values; a .env file in the
// working directory or the config directory is loaded first.
func Load(cfgFile string) (*Config, error) {
	if err := LoadEnvFiles(".env", filepath.Join(DefaultConfigDir, ".env")); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetDefault("analysis.latency", DefaultAnalysis.Latency)
	v.SetDefault("analysis.seed", DefaultAnalysis.Seed)
	v.SetDefault("analysis.stable_seed", DefaultAnalysis.StableSeed)
	v.SetDefault("analysis.cache_size", DefaultAnalysis.CacheSize)
	v.SetDefault("analysis.batch_concurrency", DefaultAnalysis.BatchConcurrency)
	v.SetDefault("intake.max_archive_mb", DefaultIntake.MaxArchiveMB)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("log.level", DefaultLog.Level)
	v.SetDefault("db_path", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// A missing config file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = DBPath()
	}
	cfg.DBPath = expandPath(cfg.DBPath)

	return &cfg, nil
}

// DBPath returns the default full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
