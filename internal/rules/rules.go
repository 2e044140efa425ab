// Package rules manages the Markdown rule documents guardrail installs into
// a project: CLAUDE.md, FRICTION-MAPPING.md and SETUP.md. Documents are
// rendered from built-in templates with the scanned project profile as data,
// and stamped with frontmatter so later runs can tell a user-edited document
// from a stale one.
package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"guardrail/internal/config"
	"guardrail/internal/logging"
	"guardrail/internal/project"
)

// Doc is one built-in rule document.
type Doc struct {
	Name        string
	FileName    string
	Description string
	template    string
}

var builtins = []Doc{
	{
		Name:        "claude",
		FileName:    "CLAUDE.md",
		Description: "Guidance and honesty rules for AI coding assistants",
		template:    claudeMDTemplate,
	},
	{
		Name:        "friction-mapping",
		FileName:    "FRICTION-MAPPING.md",
		Description: "Maps development friction to the enforcement that removes it",
		template:    frictionMappingTemplate,
	},
	{
		Name:        "setup",
		FileName:    "SETUP.md",
		Description: "Project setup instructions for guardrail",
		template:    setupMDTemplate,
	},
}

// Docs returns the built-in documents in a stable order.
func Docs() []Doc {
	docs := make([]Doc, len(builtins))
	copy(docs, builtins)
	return docs
}

// Names returns the built-in document names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for _, d := range builtins {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a document by name or file name. Unknown names are an error
// listing the known ones.
func Lookup(name string) (Doc, error) {
	for _, d := range builtins {
		if d.Name == name || d.FileName == name {
			return d, nil
		}
	}
	return Doc{}, fmt.Errorf("unknown rule document %q (known: %s)", name, strings.Join(Names(), ", "))
}

// RenderData is the template input for rule documents.
type RenderData struct {
	Project    *project.Profile
	ServerAddr string
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// RenderBody executes the document template without frontmatter.
func (d Doc) RenderBody(data RenderData) ([]byte, error) {
	tmpl, err := template.New(d.Name).Funcs(templateFuncs).Parse(d.template)
	if err != nil {
		return nil, fmt.Errorf("rules: parse template %s: %w", d.Name, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return nil, fmt.Errorf("rules: render %s: %w", d.Name, err)
	}
	return []byte(sb.String()), nil
}

// Render produces the full on-disk document: frontmatter plus body.
func (d Doc) Render(data RenderData) ([]byte, error) {
	body, err := d.RenderBody(data)
	if err != nil {
		return nil, err
	}

	meta := Frontmatter{
		Name:         d.Name,
		Generator:    "guardrail",
		ContentHash:  hashBytes(body),
		TemplateHash: d.TemplateHash(),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	return writeFrontmatter(meta, body)
}

// TemplateHash identifies the template revision.
func (d Doc) TemplateHash() string {
	return hashBytes([]byte(d.template))
}

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}

// State classifies an installed document.
type State string

const (
	StateMissing State = "missing" // not on disk
	StateCurrent State = "current" // matches what we rendered
	StateDrifted State = "drifted" // edited by hand since rendering
	StateStale   State = "stale"   // rendered from an older template
)

// DocStatus is the status of one document in one project.
type DocStatus struct {
	Doc   Doc
	State State
	Path  string
}

// Status inspects each selected document on disk.
func Status(root string, cfg *config.RulesConfig) ([]DocStatus, error) {
	docs, err := selected(cfg)
	if err != nil {
		return nil, err
	}

	statuses := make([]DocStatus, 0, len(docs))
	for _, d := range docs {
		path := docPath(root, cfg, d)
		statuses = append(statuses, DocStatus{Doc: d, State: stateOf(path, d), Path: path})
	}
	return statuses, nil
}

func stateOf(path string, d Doc) State {
	content, err := os.ReadFile(path)
	if err != nil {
		return StateMissing
	}

	meta, body, err := parseFrontmatter(content)
	if err != nil {
		// No guardrail frontmatter: the user owns this file.
		return StateDrifted
	}
	if hashBytes(body) != meta.ContentHash {
		return StateDrifted
	}
	if meta.TemplateHash != d.TemplateHash() {
		return StateStale
	}
	return StateCurrent
}

// InitResult reports what Init did per document.
type InitResult struct {
	Written []string
	Skipped map[string]State // name -> why it was left alone
}

// Init renders the selected documents into the project. Missing and stale
// documents are (re)written; current ones are skipped; drifted ones are
// never overwritten unless force is set.
func Init(root string, cfg *config.RulesConfig, data RenderData, force bool) (*InitResult, error) {
	log := logging.Get(logging.CategoryRules)

	statuses, err := Status(root, cfg)
	if err != nil {
		return nil, err
	}

	result := &InitResult{Skipped: make(map[string]State)}
	for _, st := range statuses {
		switch {
		case st.State == StateCurrent:
			result.Skipped[st.Doc.Name] = st.State
			continue
		case st.State == StateDrifted && !force:
			log.Warn("%s drifted, keeping user edits", st.Doc.FileName)
			result.Skipped[st.Doc.Name] = st.State
			continue
		}

		content, err := st.Doc.Render(data)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(st.Path), 0755); err != nil {
			return nil, fmt.Errorf("rules: create dir for %s: %w", st.Doc.FileName, err)
		}
		if err := os.WriteFile(st.Path, content, 0644); err != nil {
			return nil, fmt.Errorf("rules: write %s: %w", st.Doc.FileName, err)
		}
		log.Info("wrote %s (%d bytes)", st.Path, len(content))
		result.Written = append(result.Written, st.Doc.Name)
	}
	return result, nil
}

// Body returns the Markdown body of an installed document, frontmatter
// stripped. Falls back to a fresh render when the document is not on disk.
func Body(root string, cfg *config.RulesConfig, d Doc, data RenderData) ([]byte, error) {
	content, err := os.ReadFile(docPath(root, cfg, d))
	if err != nil {
		if os.IsNotExist(err) {
			return d.RenderBody(data)
		}
		return nil, err
	}

	_, body, err := parseFrontmatter(content)
	if err != nil {
		// User-owned file without frontmatter: show as-is.
		return content, nil
	}
	return body, nil
}

func docPath(root string, cfg *config.RulesConfig, d Doc) string {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(root, filepath.FromSlash(dir), d.FileName)
}

func selected(cfg *config.RulesConfig) ([]Doc, error) {
	if len(cfg.Documents) == 0 {
		return Docs(), nil
	}

	var docs []Doc
	for _, name := range cfg.Documents {
		d, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}
