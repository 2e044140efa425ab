package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
}

func TestScanReactProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
  "name": "acme-web",
  "dependencies": {"react": "^18.2.0", "styled-components": "^6.0.0"},
  "devDependencies": {"typescript": "^5.4.0", "vitest": "^1.0.0"}
}`)
	writeFile(t, root, "tsconfig.json", `{}`)
	writeFile(t, root, "pnpm-lock.yaml", "lockfileVersion: 9")

	p := Scan(root)

	assert.Equal(t, "acme-web", p.Name)
	assert.Equal(t, "typescript", p.Language)
	assert.True(t, p.TypeScript)
	assert.Equal(t, []string{"react", "styled-components"}, p.Frameworks)
	assert.Equal(t, "vitest", p.TestRunner)
	assert.Equal(t, "pnpm", p.PackageManager)
	assert.True(t, p.HasFramework("react"))
	assert.False(t, p.HasFramework("vue"))
}

func TestScanEmptyDirFallsBackToDirName(t *testing.T) {
	root := t.TempDir()

	p := Scan(root)

	assert.Equal(t, filepath.Base(root), p.Name)
	assert.Equal(t, "unknown", p.Language)
	assert.Empty(t, p.Frameworks)
}

func TestScanBadPackageJSONIsNotFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", "{broken")

	p := Scan(root)

	assert.Equal(t, "javascript", p.Language)
	assert.Equal(t, filepath.Base(root), p.Name)
}

func TestDetectPackageManagerPrefersPnpm(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package-lock.json", "{}")
	writeFile(t, root, "pnpm-lock.yaml", "")

	assert.Equal(t, "pnpm", detectPackageManager(root))
}
