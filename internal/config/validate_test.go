package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultsAreClean(t *testing.T) {
	issues := DefaultConfig().Validate()
	assert.Empty(t, issues)
}

func TestValidateFindsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator.Style = "class"
	cfg.Generator.OutputDir = "/etc/components"
	cfg.Checks.Include = append(cfg.Checks.Include, "[broken")
	cfg.Checks.Checkers = map[string]CheckerConfig{
		"banned-phrase": {Severity: "fatal", Patterns: []string{"(unclosed"}},
	}
	cfg.Server.Addr = "no-port"
	cfg.Logging.Format = "xml"

	issues := cfg.Validate()

	// Validation must not stop early: every bad field is reported.
	fields := make(map[string]bool)
	for _, i := range issues {
		fields[i.Field] = true
	}
	for _, want := range []string{
		"generator.style",
		"generator.output_dir",
		"checks.include",
		"checks.checkers.banned-phrase.severity",
		"checks.checkers.banned-phrase.patterns",
		"server.addr",
		"logging.format",
	} {
		assert.True(t, fields[want], "missing issue for %s", want)
	}
	assert.True(t, HasErrors(issues))
}

func TestValidateOutputDirEscape(t *testing.T) {
	for _, bad := range []string{"../elsewhere", "..", "sub/../../out"} {
		cfg := DefaultConfig()
		cfg.Generator.OutputDir = bad

		issues := cfg.Validate()
		require.Len(t, issues, 1, "dir=%s", bad)
		assert.Equal(t, "generator.output_dir", issues[0].Field)
		assert.Equal(t, "error", issues[0].Severity)
	}

	// A directory whose name merely starts with dots stays inside the root.
	for _, ok := range []string{"..foo", "src/..cache"} {
		cfg := DefaultConfig()
		cfg.Generator.OutputDir = ok
		assert.Empty(t, cfg.Validate(), "dir=%s", ok)
	}
}

func TestValidateNonLoopbackAddrWarns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Addr = "0.0.0.0:7414"

	issues := cfg.Validate()
	require.Len(t, issues, 1)
	assert.Equal(t, "warning", issues[0].Severity)
	assert.False(t, HasErrors(issues))
}

func TestCheckGlob(t *testing.T) {
	assert.NoError(t, checkGlob("**/*.tsx"))
	assert.NoError(t, checkGlob("*.md"))
	assert.Error(t, checkGlob("src/**/*.ts"))
	assert.Error(t, checkGlob("[bad"))
}
