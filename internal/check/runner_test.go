package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardrail/internal/config"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	}
}

func TestEngineRunFindsViolations(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":          "# Readme\n\nThis code is battle-tested.\n",
		"src/app.ts":         "console.log('debug')\n",
		"src/lib/helpers.ts": "export const ok = 1\n",
		"node_modules/x.ts":  "console.log('never seen')\n",
	})

	engine := NewEngine(root, config.DefaultConfig())
	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.FilesChecked)
	assert.Equal(t, 2, result.Errors)
	assert.Equal(t, 0, result.Warnings)
	assert.True(t, result.Failed(false))

	var files []string
	for _, d := range result.Diagnostics {
		files = append(files, d.File)
	}
	assert.Equal(t, []string{"README.md", "src/app.ts"}, files)
}

func TestEngineCleanRunPasses(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/lib/date-utils.ts": "export const now = () => Date.now()\n",
	})

	engine := NewEngine(root, config.DefaultConfig())
	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.Diagnostics)
	assert.False(t, result.Failed(false))
}

func TestEngineDeterministicAcrossConcurrency(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["src/"+name+".ts"] = "console.log('" + name + "')\ndebugger;\n"
	}
	writeTree(t, root, files)

	cfg := config.DefaultConfig()
	engine := NewEngine(root, cfg)

	serial, err := engine.RunSerial(context.Background())
	require.NoError(t, err)
	parallel, err := engine.Run(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(serial.Diagnostics, parallel.Diagnostics); diff != "" {
		t.Errorf("serial vs parallel diagnostics mismatch (-serial +parallel):\n%s", diff)
	}
	assert.Equal(t, 16, serial.Errors)
}

func TestEngineSeverityOverrides(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/app.ts": "console.log('x')\n",
	})

	cfg := config.DefaultConfig()
	cfg.Checks.Checkers = map[string]config.CheckerConfig{
		CheckerDebugStatement: {Severity: "warning"},
	}

	result, err := NewEngine(root, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, 1, result.Warnings)
	assert.False(t, result.Failed(false))
	assert.True(t, result.Failed(true))
}

func TestEngineCheckerOff(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/app.ts": "console.log('x')\n",
	})

	cfg := config.DefaultConfig()
	cfg.Checks.Checkers = map[string]config.CheckerConfig{
		CheckerDebugStatement: {Severity: "off"},
	}

	result, err := NewEngine(root, cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
	assert.NotContains(t, result.Checkers, CheckerDebugStatement)
}

func TestEngineBadUserPatternSurfacesAsDiagnostic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/clean.ts": "export {}\n",
	})

	cfg := config.DefaultConfig()
	cfg.Checks.Checkers = map[string]config.CheckerConfig{
		CheckerBannedPhrase: {Patterns: []string{"(unclosed"}},
	}

	result, err := NewEngine(root, cfg).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, SeverityError, result.Diagnostics[0].Severity)
	assert.Contains(t, result.Diagnostics[0].Message, "checker misconfigured")
	assert.True(t, result.Failed(false))
}

func TestEngineRunPathsSkipsExcluded(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/app.ts":        "console.log('x')\n",
		"node_modules/v.ts": "console.log('y')\n",
	})

	engine := NewEngine(root, config.DefaultConfig())
	result, err := engine.RunPaths(context.Background(), []string{"src/app.ts", "node_modules/v.ts"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesChecked)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "src/app.ts", result.Diagnostics[0].File)
}

func TestRegistryResolvesConfiguredSeverities(t *testing.T) {
	cfg := config.DefaultConfig().Checks
	cfg.Checkers = map[string]config.CheckerConfig{
		CheckerDebugStatement: {Severity: "warning"},
		CheckerDocStyle:       {Severity: "error"},
	}

	registry, setup := NewRegistry(&cfg)
	require.Empty(t, setup)

	bySeverity := map[string]Severity{}
	for _, info := range registry.List() {
		bySeverity[info.ID] = info.Severity
	}
	assert.Equal(t, SeverityWarning, bySeverity[CheckerDebugStatement])
	assert.Equal(t, SeverityError, bySeverity[CheckerDocStyle])
	// Unconfigured checkers keep their defaults.
	assert.Equal(t, SeverityError, bySeverity[CheckerBannedPhrase])
	assert.Equal(t, SeverityWarning, bySeverity[CheckerImportStyle])
}

func TestRegistrySelectUnknownChecker(t *testing.T) {
	registry, setup := NewRegistry(&config.DefaultConfig().Checks)
	require.Empty(t, setup)

	err := registry.Select("debug-statement,nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")

	require.NoError(t, registry.Select("debug-statement"))
	assert.Equal(t, []string{"debug-statement"}, registry.IDs())
}
