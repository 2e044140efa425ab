// Package project scans a workspace and builds a lightweight profile:
// project name, primary language, frameworks, package manager and test
// runner. The profile feeds rule document templates and scaffolder defaults.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"guardrail/internal/logging"
)

// Profile describes what the scanner learned about a project.
type Profile struct {
	Name           string   `json:"name"`
	Language       string   `json:"language"`
	Frameworks     []string `json:"frameworks,omitempty"`
	PackageManager string   `json:"package_manager,omitempty"`
	TestRunner     string   `json:"test_runner,omitempty"`
	TypeScript     bool     `json:"typescript"`
}

// packageJSON is the subset of package.json the scanner reads.
type packageJSON struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Scan builds a profile for the given project root. Scanning is best-effort:
// unreadable or missing manifests degrade the profile, they never fail it.
func Scan(root string) *Profile {
	timer := logging.StartTimer(logging.CategoryBoot, "project.Scan")
	defer timer.Stop()

	profile := &Profile{
		Name:     filepath.Base(root),
		Language: detectLanguage(root),
	}

	if pkg := readPackageJSON(root); pkg != nil {
		if pkg.Name != "" {
			profile.Name = pkg.Name
		}
		deps := mergeDeps(pkg)
		profile.Frameworks = detectFrameworks(deps)
		profile.TestRunner = detectTestRunner(deps)
		_, profile.TypeScript = deps["typescript"]
	}
	if _, err := os.Stat(filepath.Join(root, "tsconfig.json")); err == nil {
		profile.TypeScript = true
	}

	profile.PackageManager = detectPackageManager(root)
	return profile
}

// detectLanguage looks for language-specific manifest files.
func detectLanguage(root string) string {
	checks := []struct {
		file     string
		language string
	}{
		{"tsconfig.json", "typescript"},
		{"package.json", "javascript"},
		{"go.mod", "go"},
		{"Cargo.toml", "rust"},
		{"pyproject.toml", "python"},
		{"requirements.txt", "python"},
		{"pom.xml", "java"},
		{"build.gradle", "java"},
		{"Gemfile", "ruby"},
	}

	for _, check := range checks {
		if _, err := os.Stat(filepath.Join(root, check.file)); err == nil {
			return check.language
		}
	}
	return "unknown"
}

func readPackageJSON(root string) *packageJSON {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		logging.Get(logging.CategoryBoot).Warn("package.json unreadable: %v", err)
		return nil
	}
	return &pkg
}

func mergeDeps(pkg *packageJSON) map[string]string {
	deps := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for k, v := range pkg.Dependencies {
		deps[k] = v
	}
	for k, v := range pkg.DevDependencies {
		deps[k] = v
	}
	return deps
}

// detectFrameworks returns a sorted list of recognized frameworks.
func detectFrameworks(deps map[string]string) []string {
	known := map[string]string{
		"react":             "react",
		"next":              "next",
		"vue":               "vue",
		"svelte":            "svelte",
		"@angular/core":     "angular",
		"express":           "express",
		"styled-components": "styled-components",
		"tailwindcss":       "tailwind",
	}

	var found []string
	for dep, name := range known {
		if _, ok := deps[dep]; ok {
			found = append(found, name)
		}
	}
	sort.Strings(found)
	return found
}

func detectTestRunner(deps map[string]string) string {
	for _, runner := range []string{"vitest", "jest", "mocha", "ava"} {
		if _, ok := deps[runner]; ok {
			return runner
		}
	}
	return ""
}

// detectPackageManager prefers lockfiles, the only reliable signal.
func detectPackageManager(root string) string {
	locks := []struct {
		file    string
		manager string
	}{
		{"pnpm-lock.yaml", "pnpm"},
		{"yarn.lock", "yarn"},
		{"bun.lockb", "bun"},
		{"package-lock.json", "npm"},
	}
	for _, l := range locks {
		if _, err := os.Stat(filepath.Join(root, l.file)); err == nil {
			return l.manager
		}
	}
	return ""
}

// HasFramework reports whether the profile detected a framework.
func (p *Profile) HasFramework(name string) bool {
	for _, f := range p.Frameworks {
		if f == name {
			return true
		}
	}
	return false
}
