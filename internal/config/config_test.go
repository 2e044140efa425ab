package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "src/components", cfg.Generator.OutputDir)
	assert.Equal(t, "function", cfg.Generator.Style)
	assert.True(t, cfg.Hooks.PreCommit)
	assert.Equal(t, "127.0.0.1:7414", cfg.Server.Addr)
	assert.False(t, cfg.Logging.DebugMode)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, GuardrailDir)
	require.NoError(t, os.MkdirAll(dir, 0755))

	data := []byte(`{
  "version": 1,
  "generator": {"output_dir": "app/components", "style": "arrow", "styling": "none"},
  "checks": {"checkers": {"debug-statement": {"severity": "warning"}}}
}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), data, 0644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "app/components", cfg.Generator.OutputDir)
	assert.Equal(t, "arrow", cfg.Generator.Style)
	// Defaults survive for fields the file does not set.
	assert.Equal(t, "127.0.0.1:7414", cfg.Server.Addr)
	assert.Equal(t, "warning", cfg.Checks.CheckerSeverity("debug-statement", "error"))
	assert.Equal(t, "error", cfg.Checks.CheckerSeverity("banned-phrase", "error"))
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, GuardrailDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("{not json"), 0644))

	_, err := Load(root)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Project.Name = "acme-web"
	cfg.Generator.WithStories = false
	require.NoError(t, cfg.Save(root))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "acme-web", loaded.Project.Name)
	assert.False(t, loaded.Generator.WithStories)
	assert.Equal(t, CurrentVersion, loaded.Version)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("GUARDRAIL_DEBUG enables debug mode", func(t *testing.T) {
		t.Setenv("GUARDRAIL_DEBUG", "true")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
	})

	t.Run("GUARDRAIL_SERVER_ADDR overrides addr", func(t *testing.T) {
		t.Setenv("GUARDRAIL_SERVER_ADDR", "127.0.0.1:9999")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	})

	t.Run("invalid bool is ignored", func(t *testing.T) {
		t.Setenv("GUARDRAIL_DEBUG", "banana")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.False(t, cfg.Logging.DebugMode)
	})

	t.Run("concurrency must be positive", func(t *testing.T) {
		t.Setenv("GUARDRAIL_CHECKS_CONCURRENCY", "-2")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 0, cfg.Checks.Concurrency)
	})
}

func TestIsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{DebugMode: false}
	assert.False(t, lc.IsCategoryEnabled("check"))

	lc = LoggingConfig{DebugMode: true}
	assert.True(t, lc.IsCategoryEnabled("check"))

	lc = LoggingConfig{DebugMode: true, Categories: map[string]bool{"check": false}}
	assert.False(t, lc.IsCategoryEnabled("check"))
	assert.True(t, lc.IsCategoryEnabled("hooks"))
}
