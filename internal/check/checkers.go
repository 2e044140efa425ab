package check

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// AllowMarker suppresses findings on a line when present. Mirrors the
// eslint-disable-line escape hatch so legitimate uses stay committable.
const AllowMarker = "guard-allow"

// Built-in checker IDs.
const (
	CheckerBannedPhrase   = "banned-phrase"
	CheckerDebugStatement = "debug-statement"
	CheckerFileNaming     = "file-naming"
	CheckerImportStyle    = "import-style"
	CheckerDocStyle       = "doc-style"
)

var sourceExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".mjs": true, ".cjs": true,
}

func isSourceFile(relPath string) bool {
	return sourceExts[path.Ext(relPath)]
}

func isMarkdownFile(relPath string) bool {
	return path.Ext(relPath) == ".md"
}

// ---------------------------------------------------------------------------
// patternChecker: shared engine for the regex-driven checkers.

type patternRule struct {
	re      *regexp.Regexp
	message string
}

type patternChecker struct {
	id          string
	description string
	rules       []patternRule
	applies     func(relPath string) bool
}

func (c *patternChecker) ID() string              { return c.id }
func (c *patternChecker) Description() string     { return c.description }
func (c *patternChecker) Applies(rel string) bool { return c.applies(rel) }

func (c *patternChecker) Check(f *File) []Diagnostic {
	var diags []Diagnostic
	markdown := isMarkdownFile(f.RelPath)
	inFence := false
	for lineNo, line := range f.Lines {
		// Fenced code blocks in markdown quote examples; the line rules
		// only apply to prose.
		if markdown && strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence || strings.Contains(line, AllowMarker) {
			continue
		}
		for _, rule := range c.rules {
			loc := rule.re.FindStringIndex(line)
			if loc == nil {
				continue
			}
			diags = append(diags, Diagnostic{
				Checker: c.id,
				File:    f.RelPath,
				Line:    lineNo + 1,
				Column:  loc[0] + 1,
				Message: rule.message,
				Snippet: strings.TrimSpace(line),
			})
		}
	}
	return diags
}

// compileExtra turns user-supplied config patterns into rules. A pattern
// that does not compile is returned as an error so the runner can surface
// it as a diagnostic rather than dropping it.
func compileExtra(patterns []string) ([]patternRule, []error) {
	var rules []patternRule
	var errs []error
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern %q: %w", p, err))
			continue
		}
		rules = append(rules, patternRule{re: re, message: fmt.Sprintf("matched configured pattern %q", p)})
	}
	return rules, errs
}

// newBannedPhraseChecker flags overclaiming language in docs and comments.
// The defaults are the phrases the rule documents ban outright.
func newBannedPhraseChecker(extra []patternRule) Checker {
	rules := []patternRule{
		{regexp.MustCompile(`(?i)production[- ]ready`), `banned phrase "production ready": describe what was verified instead`},
		{regexp.MustCompile(`(?i)100% (complete|coverage|tested)`), `banned phrase "100% ...": absolute claims are not verifiable`},
		{regexp.MustCompile(`(?i)fully (tested|implemented|functional)`), `banned phrase "fully ...": state the actual test surface`},
		{regexp.MustCompile(`(?i)enterprise[- ]grade`), `banned phrase "enterprise-grade"`},
		{regexp.MustCompile(`(?i)battle[- ]tested`), `banned phrase "battle-tested"`},
		{regexp.MustCompile(`(?i)blazing(ly)? fast`), `banned phrase "blazingly fast": benchmark or omit`},
	}
	return &patternChecker{
		id:          CheckerBannedPhrase,
		description: "Flags overclaiming language in docs and comments",
		rules:       append(rules, extra...),
		applies: func(rel string) bool {
			return isMarkdownFile(rel) || isSourceFile(rel)
		},
	}
}

// newDebugStatementChecker flags leftover debug output in source files.
func newDebugStatementChecker(extra []patternRule) Checker {
	rules := []patternRule{
		{regexp.MustCompile(`\bconsole\.(log|debug|trace)\s*\(`), "console debug statement must not be committed"},
		{regexp.MustCompile(`^\s*debugger\b`), "debugger statement must not be committed"},
		{regexp.MustCompile(`\balert\s*\(`), "alert() call must not be committed"},
	}
	return &patternChecker{
		id:          CheckerDebugStatement,
		description: "Flags console.log, debugger and alert left in source",
		rules:       append(rules, extra...),
		applies:     isSourceFile,
	}
}

// newImportStyleChecker enforces the import conventions: no deep relative
// chains (use the @/ alias) and no require() in ES module code.
func newImportStyleChecker(extra []patternRule) Checker {
	rules := []patternRule{
		{regexp.MustCompile(`from\s+['"](\.\./){3,}`), "import climbs 3+ directories: use the @/ path alias"},
		{regexp.MustCompile(`\brequire\s*\(\s*['"]`), "require() in ES module code: use import"},
		{regexp.MustCompile(`import\s+\*\s+as\s+React\b`), `use "import React from 'react'" (namespace import is banned)`},
	}
	return &patternChecker{
		id:          CheckerImportStyle,
		description: "Enforces import conventions in source files",
		rules:       append(rules, extra...),
		applies:     isSourceFile,
	}
}

// newDocStyleChecker enforces documentation structure rules that the banned
// phrase list does not cover.
func newDocStyleChecker(extra []patternRule) Checker {
	rules := []patternRule{
		{regexp.MustCompile(`(?i)^\s*(TODO|FIXME|TBD)\b`), "unresolved placeholder in documentation"},
		{regexp.MustCompile(`(?i)coming soon`), `"coming soon" in documentation: document what exists`},
		{regexp.MustCompile(`^\*\*[^*]+\*\*$`), "bold line used as heading: use a # heading"},
	}
	return &docStyleChecker{
		patternChecker: patternChecker{
			id:          CheckerDocStyle,
			description: "Enforces documentation structure conventions",
			rules:       append(rules, extra...),
			applies:     isMarkdownFile,
		},
	}
}

// docStyleChecker adds the file-level single-H1 rule on top of the line
// patterns.
type docStyleChecker struct {
	patternChecker
}

func (c *docStyleChecker) Check(f *File) []Diagnostic {
	diags := c.patternChecker.Check(f)

	inFence := false
	firstH1 := 0
	for lineNo, line := range f.Lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.HasPrefix(line, "# ") {
			if firstH1 == 0 {
				firstH1 = lineNo + 1
				continue
			}
			diags = append(diags, Diagnostic{
				Checker: c.id,
				File:    f.RelPath,
				Line:    lineNo + 1,
				Column:  1,
				Message: fmt.Sprintf("multiple top-level headings (first at line %d)", firstH1),
				Snippet: strings.TrimSpace(line),
			})
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// file-naming

var (
	kebabCaseRE  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	pascalCaseRE = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

// namingChecker validates file names: component files (.tsx/.jsx) are
// PascalCase, everything else is kebab-case. Known suffixes (.test,
// .stories, .module, .d) are stripped before the check.
type namingChecker struct{}

func (namingChecker) ID() string { return CheckerFileNaming }
func (namingChecker) Description() string {
	return "Enforces PascalCase components and kebab-case files"
}
func (namingChecker) Applies(rel string) bool {
	return isSourceFile(rel) || strings.HasSuffix(rel, ".css") || strings.HasSuffix(rel, ".scss")
}

func (c namingChecker) Check(f *File) []Diagnostic {
	base := path.Base(f.RelPath)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	// Strip one known qualifier suffix: Button.test.tsx, button.module.css.
	for _, suffix := range []string{".test", ".spec", ".stories", ".module", ".d"} {
		if strings.HasSuffix(stem, suffix) {
			stem = strings.TrimSuffix(stem, suffix)
			break
		}
	}

	if stem == "index" || stem == "" {
		return nil
	}

	componentExt := ext == ".tsx" || ext == ".jsx"
	if componentExt {
		if !pascalCaseRE.MatchString(stem) {
			return []Diagnostic{{
				Checker: CheckerFileNaming,
				File:    f.RelPath,
				Message: fmt.Sprintf("component file %q must be PascalCase", base),
			}}
		}
		return nil
	}

	if !kebabCaseRE.MatchString(stem) && !pascalCaseRE.MatchString(stem) {
		return []Diagnostic{{
			Checker: CheckerFileNaming,
			File:    f.RelPath,
			Message: fmt.Sprintf("file %q must be kebab-case", base),
		}}
	}
	return nil
}
