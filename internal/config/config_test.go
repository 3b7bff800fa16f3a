package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at empty temp dirs so the
// developer's own config and .env files are not picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Analysis.Latency)
	assert.Zero(t, cfg.Analysis.Seed)
	assert.Equal(t, 128, cfg.Analysis.CacheSize)
	assert.Equal(t, int64(100<<20), cfg.Intake.MaxArchiveBytes())
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, ".config", "codegauge", "codegauge.db"), cfg.DBPath)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
analysis:
  latency: 0s
  seed: 42
  stable_seed: true
intake:
  max_archive_mb: 10
output:
  color: never
`), 0o644))
	t.Setenv("CODEGAUGE_ANALYSIS_SEED", "7")
	t.Setenv("CODEGAUGE_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Analysis.Latency)
	assert.Equal(t, uint64(7), cfg.Analysis.Seed, "env wins over file")
	assert.True(t, cfg.Analysis.StableSeed)
	assert.Equal(t, int64(10<<20), cfg.Intake.MaxArchiveBytes())
	assert.Equal(t, "never", cfg.Output.Color)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("CODEGAUGE_ANALYSIS_CACHE_SIZE=9\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CODEGAUGE_ANALYSIS_CACHE_SIZE") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Analysis.CacheSize)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput.Width, cfg.Output.Width)
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, "x", "y"), expandPath("~/x/y"))
	assert.Equal(t, "/abs", expandPath("/abs"))
	assert.Equal(t, "rel", expandPath("rel"))
}
