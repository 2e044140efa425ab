package rules

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontmatter indicates the document did not start with a YAML fence.
	ErrMissingFrontmatter = errors.New("rules: missing frontmatter")
	// ErrMalformedFrontmatter indicates the YAML block could not be parsed.
	ErrMalformedFrontmatter = errors.New("rules: malformed frontmatter")
)

// Frontmatter is the metadata block guardrail stamps on every rendered rule
// document. ContentHash is the hash of the body as rendered; TemplateHash
// identifies the template revision that produced it.
type Frontmatter struct {
	Name         string `yaml:"name"`
	Generator    string `yaml:"generator"`
	ContentHash  string `yaml:"content_hash"`
	TemplateHash string `yaml:"template_hash"`
	GeneratedAt  string `yaml:"generated_at"`
}

type envelope struct {
	Guardrail Frontmatter `yaml:"guardrail"`
}

// parseFrontmatter splits a document into its metadata block and body.
func parseFrontmatter(content []byte) (Frontmatter, []byte, error) {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return Frontmatter{}, nil, ErrMissingFrontmatter
	}
	parts := bytes.SplitN(normalized[4:], []byte("\n---\n"), 2)
	if len(parts) < 2 {
		return Frontmatter{}, nil, ErrMalformedFrontmatter
	}

	var env envelope
	if err := yaml.Unmarshal(parts[0], &env); err != nil {
		return Frontmatter{}, nil, fmt.Errorf("rules: parse frontmatter: %w", err)
	}
	body := bytes.TrimPrefix(parts[1], []byte("\n"))
	return env.Guardrail, body, nil
}

// writeFrontmatter renders metadata + body with YAML fences.
func writeFrontmatter(meta Frontmatter, body []byte) ([]byte, error) {
	data, err := yaml.Marshal(envelope{Guardrail: meta})
	if err != nil {
		return nil, fmt.Errorf("rules: encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n---\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}
