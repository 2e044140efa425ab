package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardrail/internal/config"
	"guardrail/internal/project"
)

func tsProfile() *project.Profile {
	return &project.Profile{
		Name:       "acme-web",
		Language:   "typescript",
		TypeScript: true,
		TestRunner: "vitest",
		Frameworks: []string{"react"},
	}
}

func newTestGenerator(t *testing.T) (*Generator, string) {
	t.Helper()
	root := t.TempDir()
	cfg := config.DefaultConfig().Generator
	return NewGenerator(root, cfg, tsProfile()), root
}

func TestPlanDefaultLayout(t *testing.T) {
	g, _ := newTestGenerator(t)

	plan, err := g.Plan("DatePicker")
	require.NoError(t, err)

	assert.Equal(t, "src/components/DatePicker", plan.Dir)
	var paths []string
	for _, f := range plan.Files {
		paths = append(paths, f.RelPath)
	}
	assert.Equal(t, []string{
		"src/components/DatePicker/DatePicker.tsx",
		"src/components/DatePicker/DatePicker.test.tsx",
		"src/components/DatePicker/DatePicker.stories.tsx",
		"src/components/DatePicker/DatePicker.module.css",
		"src/components/DatePicker/index.ts",
	}, paths)
}

func TestPlanRendersTemplates(t *testing.T) {
	g, _ := newTestGenerator(t)

	plan, err := g.Plan("DatePicker")
	require.NoError(t, err)

	byName := map[string]string{}
	for _, f := range plan.Files {
		byName[filepath.Base(f.RelPath)] = string(f.Content)
	}

	component := byName["DatePicker.tsx"]
	assert.Contains(t, component, "export function DatePicker")
	assert.Contains(t, component, "styles.datePicker")
	assert.Contains(t, component, "import styles from './DatePicker.module.css'")
	assert.NotContains(t, component, "{{")

	test := byName["DatePicker.test.tsx"]
	assert.Contains(t, test, "from 'vitest'")
	assert.Contains(t, test, "render(<DatePicker>")

	assert.Contains(t, byName["DatePicker.module.css"], ".datePicker {")
	assert.Contains(t, byName["index.ts"], "export { DatePicker }")
}

func TestPlanArrowStyleAndStyled(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig().Generator
	cfg.Style = "arrow"
	cfg.Styling = "styled"
	cfg.WithStories = false
	g := NewGenerator(root, cfg, tsProfile())

	plan, err := g.Plan("Button")
	require.NoError(t, err)

	byName := map[string]string{}
	for _, f := range plan.Files {
		byName[filepath.Base(f.RelPath)] = string(f.Content)
	}

	assert.Contains(t, byName["Button.tsx"], "export const Button = (")
	assert.Contains(t, byName["Button.tsx"], "<Container>")
	assert.Contains(t, byName["Button.styles.ts"], "styled-components")
	assert.NotContains(t, byName, "Button.stories.tsx")
	assert.NotContains(t, byName, "Button.module.css")
}

func TestPlanJavaScriptProfile(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig().Generator
	g := NewGenerator(root, cfg, &project.Profile{
		Name:       "acme-web",
		Language:   "javascript",
		TestRunner: "jest",
		Frameworks: []string{"react"},
	})

	plan, err := g.Plan("Widget")
	require.NoError(t, err)

	byName := map[string]string{}
	for _, f := range plan.Files {
		byName[filepath.Base(f.RelPath)] = string(f.Content)
	}
	require.Contains(t, byName, "Widget.jsx")
	require.Contains(t, byName, "Widget.stories.jsx")
	require.Contains(t, byName, "index.js")

	// Plain-JS output must carry no TypeScript syntax.
	component := byName["Widget.jsx"]
	assert.Contains(t, component, "export function Widget({ children }) {")
	assert.NotContains(t, component, "interface")
	assert.NotContains(t, component, "WidgetProps")

	stories := byName["Widget.stories.jsx"]
	assert.Contains(t, stories, "export default {")
	assert.Contains(t, stories, "export const Default = {")
	assert.NotContains(t, stories, "import type")
	assert.NotContains(t, stories, "Meta<")
	assert.NotContains(t, stories, "StoryObj")

	index := byName["index.js"]
	assert.Contains(t, index, "export { Widget }")
	assert.NotContains(t, index, "export type")
}

func TestPlanRejectsNonPascalCase(t *testing.T) {
	g, _ := newTestGenerator(t)

	for _, bad := range []string{"datePicker", "date-picker", "Date_Picker", "2Fast"} {
		_, err := g.Plan(bad)
		assert.Error(t, err, bad)
	}
}

func TestGenerateWritesAllFiles(t *testing.T) {
	g, root := newTestGenerator(t)

	plan, err := g.Plan("Card")
	require.NoError(t, err)
	require.NoError(t, g.Generate(plan, false))

	for _, f := range plan.Files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(f.RelPath)))
		require.NoError(t, err, f.RelPath)
		assert.Equal(t, f.Content, data)
	}

	// No staging leftovers.
	entries, err := os.ReadDir(filepath.Join(root, "src/components"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGenerateRefusesExistingWithoutForce(t *testing.T) {
	g, root := newTestGenerator(t)

	plan, err := g.Plan("Card")
	require.NoError(t, err)
	require.NoError(t, g.Generate(plan, false))

	err = g.Generate(plan, false)
	require.ErrorIs(t, err, ErrExists)

	// force replaces the directory, dropping files not in the plan.
	stray := filepath.Join(root, "src/components/Card/notes.txt")
	require.NoError(t, os.WriteFile(stray, []byte("x"), 0644))
	require.NoError(t, g.Generate(plan, true))
	_, err = os.Stat(stray)
	assert.True(t, os.IsNotExist(err))
}

func TestNaming(t *testing.T) {
	tests := []struct {
		in    string
		kebab string
		camel string
	}{
		{"Button", "button", "button"},
		{"DatePicker", "date-picker", "datePicker"},
		{"Nav2Bar", "nav2-bar", "nav2Bar"},
	}
	for _, tt := range tests {
		if got := ToKebab(tt.in); got != tt.kebab {
			t.Errorf("ToKebab(%q) = %q, want %q", tt.in, got, tt.kebab)
		}
		if got := ToCamel(tt.in); got != tt.camel {
			t.Errorf("ToCamel(%q) = %q, want %q", tt.in, got, tt.camel)
		}
	}
}
