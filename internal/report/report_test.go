package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardrail/internal/config"
	"guardrail/internal/project"
	"guardrail/internal/rules"
)

func TestGenerateReflectsRealResults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src/app.ts"), []byte("console.log('x')\n"), 0644))

	r, err := Generate(context.Background(), root, config.DefaultConfig(), Options{ProjectName: "acme"})
	require.NoError(t, err)

	assert.False(t, r.Passed())
	require.NotNil(t, r.CheckResult)
	assert.Equal(t, 1, r.CheckResult.Errors)

	byTitle := map[string]Section{}
	for _, s := range r.Sections {
		byTitle[s.Title] = s
	}
	assert.True(t, byTitle["Configuration"].Passed)
	assert.False(t, byTitle["Enforcement checks"].Passed)
	// No rule documents installed and no hook: both reported, not assumed.
	assert.False(t, byTitle["Rule documents"].Passed)
	assert.False(t, byTitle["Git hook"].Passed)
}

func TestGenerateCleanProjectPasses(t *testing.T) {
	root := t.TempDir()

	// Install rule documents so that section passes.
	data := rules.RenderData{Project: &project.Profile{Name: "acme"}, ServerAddr: "127.0.0.1:7414"}
	_, err := rules.Init(root, &config.DefaultConfig().Rules, data, false)
	require.NoError(t, err)

	r, err := Generate(context.Background(), root, config.DefaultConfig(), Options{ProjectName: "acme"})
	require.NoError(t, err)

	byTitle := map[string]Section{}
	for _, s := range r.Sections {
		byTitle[s.Title] = s
	}
	assert.True(t, byTitle["Configuration"].Passed)
	assert.True(t, byTitle["Enforcement checks"].Passed)
	assert.True(t, byTitle["Rule documents"].Passed)
	// Hook section still fails honestly outside a git repo.
	assert.False(t, byTitle["Git hook"].Passed)
	assert.False(t, r.Passed())
}

func TestGenerateSurfacesConfigErrors(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Generator.Style = "bogus"

	r, err := Generate(context.Background(), root, cfg, Options{ProjectName: "acme"})
	require.NoError(t, err)

	byTitle := map[string]Section{}
	for _, s := range r.Sections {
		byTitle[s.Title] = s
	}
	section := byTitle["Configuration"]
	assert.False(t, section.Passed)
	require.NotEmpty(t, section.Details)
	assert.Contains(t, strings.Join(section.Details, "\n"), "generator.style")
}

func TestGenerateWithBench(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("# a\n"), 0644))

	r, err := Generate(context.Background(), root, config.DefaultConfig(), Options{ProjectName: "acme", WithBench: true})
	require.NoError(t, err)

	require.NotNil(t, r.Bench)
	assert.Equal(t, 1, r.Bench.Files)
	assert.Greater(t, r.Bench.Serial.Nanoseconds(), int64(0))
	assert.Greater(t, r.Bench.Parallel.Nanoseconds(), int64(0))
}

func TestMarkdownRendering(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.md"), []byte("# T\n\nblazingly fast\n"), 0644))

	r, err := Generate(context.Background(), root, config.DefaultConfig(), Options{ProjectName: "acme"})
	require.NoError(t, err)

	md := r.Markdown()
	assert.Contains(t, md, "# Enforcement Verification Report")
	assert.Contains(t, md, "**Overall:** FAIL")
	assert.Contains(t, md, "## Findings")
	assert.Contains(t, md, "bad.md:3:")
	assert.NotContains(t, md, "{{")
}
