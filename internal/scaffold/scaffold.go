// Package scaffold generates React component directories from templates:
// component file, test, stories, styles and an index barrel, shaped by the
// generator config. Generation is all-or-nothing: files are staged in a
// temp directory and moved into place with a single rename, so a failure
// never leaves a partial component behind.
package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"guardrail/internal/config"
	"guardrail/internal/logging"
	"guardrail/internal/project"
)

// ErrExists is returned when the component directory is already present
// and force was not given.
var ErrExists = errors.New("component directory already exists")

// PlannedFile is one file the generator intends to write.
type PlannedFile struct {
	RelPath string `json:"path"` // relative to the project root
	Content []byte `json:"-"`
	Size    int    `json:"size"`
}

// Plan is the full set of files for one component.
type Plan struct {
	Component string        `json:"component"`
	Dir       string        `json:"dir"` // component directory, relative to the project root
	Files     []PlannedFile `json:"files"`
}

// componentData is the template input.
type componentData struct {
	Name       string
	Kebab      string
	Camel      string
	Styling    string
	TestRunner string
	TypeScript bool
}

// Generator plans and writes component scaffolds.
type Generator struct {
	root    string
	cfg     config.GeneratorConfig
	profile *project.Profile
}

// NewGenerator builds a generator for a project root. The profile decides
// file extensions (.tsx vs .jsx) and test imports.
func NewGenerator(root string, cfg config.GeneratorConfig, profile *project.Profile) *Generator {
	return &Generator{root: root, cfg: cfg, profile: profile}
}

// Plan computes the files for a component without touching the filesystem.
func (g *Generator) Plan(name string) (*Plan, error) {
	if !IsPascalCase(name) {
		return nil, fmt.Errorf("component name %q must be PascalCase (e.g. DatePicker)", name)
	}

	data := componentData{
		Name:       name,
		Kebab:      ToKebab(name),
		Camel:      ToCamel(name),
		Styling:    g.styling(),
		TestRunner: g.profile.TestRunner,
		TypeScript: g.profile.TypeScript,
	}

	ext := ".jsx"
	if g.profile.TypeScript {
		ext = ".tsx"
	}
	indexExt := strings.TrimSuffix(ext, "x") // .ts / .js

	dir := filepath.ToSlash(filepath.Join(g.cfg.OutputDir, name))
	plan := &Plan{Component: name, Dir: dir}

	componentTmpl := functionComponentTemplate
	if g.cfg.Style == "arrow" {
		componentTmpl = arrowComponentTemplate
	}

	type spec struct {
		file string
		tmpl string
		want bool
	}
	specs := []spec{
		{name + ext, componentTmpl, true},
		{name + ".test" + ext, testTemplate, g.cfg.WithTests},
		{name + ".stories" + ext, storiesTemplate, g.cfg.WithStories},
		{name + ".module.css", cssModuleTemplate, data.Styling == "css-modules"},
		{name + ".styles" + indexExt, styledTemplate, data.Styling == "styled"},
		{"index" + indexExt, indexTemplate, true},
	}

	for _, s := range specs {
		if !s.want {
			continue
		}
		content, err := renderTemplate(s.file, s.tmpl, data)
		if err != nil {
			return nil, err
		}
		plan.Files = append(plan.Files, PlannedFile{
			RelPath: dir + "/" + s.file,
			Content: content,
			Size:    len(content),
		})
	}
	return plan, nil
}

// Generate writes a plan to disk. With force set, an existing component
// directory is replaced wholesale.
func (g *Generator) Generate(plan *Plan, force bool) error {
	log := logging.Get(logging.CategoryScaffold)
	target := filepath.Join(g.root, filepath.FromSlash(plan.Dir))

	if _, err := os.Stat(target); err == nil {
		if !force {
			return fmt.Errorf("%w: %s", ErrExists, plan.Dir)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("scaffold: create output dir: %w", err)
	}

	// Stage next to the target so the final rename stays on one filesystem.
	staging, err := os.MkdirTemp(parent, ".guardrail-scaffold-*")
	if err != nil {
		return fmt.Errorf("scaffold: create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	for _, f := range plan.Files {
		path := filepath.Join(staging, filepath.Base(filepath.FromSlash(f.RelPath)))
		if err := os.WriteFile(path, f.Content, 0644); err != nil {
			return fmt.Errorf("scaffold: stage %s: %w", f.RelPath, err)
		}
	}

	if force {
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("scaffold: replace %s: %w", plan.Dir, err)
		}
	}
	if err := os.Rename(staging, target); err != nil {
		return fmt.Errorf("scaffold: move component into place: %w", err)
	}

	log.Info("generated %s (%d files)", plan.Dir, len(plan.Files))
	return nil
}

func (g *Generator) styling() string {
	if g.cfg.Styling != "" {
		return g.cfg.Styling
	}
	if g.profile.HasFramework("styled-components") {
		return "styled"
	}
	return "css-modules"
}

func renderTemplate(name, text string, data componentData) ([]byte, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("scaffold: parse template %s: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return nil, fmt.Errorf("scaffold: render %s: %w", name, err)
	}
	out := strings.TrimPrefix(sb.String(), "\n")
	return []byte(out), nil
}
