package check

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fileOf(rel, content string) *File {
	return &File{
		RelPath: rel,
		Content: []byte(content),
		Lines:   strings.Split(content, "\n"),
	}
}

func TestBannedPhraseChecker(t *testing.T) {
	c := newBannedPhraseChecker(nil)

	diags := c.Check(fileOf("README.md", "The system is Production-Ready.\nIt is 100% tested.\n"))
	assert.Len(t, diags, 2)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, CheckerBannedPhrase, diags[0].Checker)

	diags = c.Check(fileOf("README.md", "Verified by running the suite on CI.\n"))
	assert.Empty(t, diags)
}

func TestBannedPhraseRespectsAllowMarker(t *testing.T) {
	c := newBannedPhraseChecker(nil)

	content := `We never say "production ready". <!-- guard-allow -->` + "\n"
	assert.Empty(t, c.Check(fileOf("docs/rules.md", content)))
}

func TestDebugStatementChecker(t *testing.T) {
	c := newDebugStatementChecker(nil)

	tests := []struct {
		name string
		line string
		want int
	}{
		{"console.log", `  console.log("hi")`, 1},
		{"console.trace", `console.trace()`, 1},
		{"debugger", `debugger;`, 1},
		{"alert", `alert("boo")`, 1},
		{"console.error is allowed", `console.error(err)`, 0},
		{"in string mentioning logger", `const log = logger.info`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := c.Check(fileOf("src/app.ts", tt.line+"\n"))
			assert.Len(t, diags, tt.want)
		})
	}
}

func TestImportStyleChecker(t *testing.T) {
	c := newImportStyleChecker(nil)

	bad := "import { x } from '../../../lib/x';\nconst y = require('y');\n"
	diags := c.Check(fileOf("src/feature/deep/mod.ts", bad))
	assert.Len(t, diags, 2)

	good := "import { x } from '@/lib/x';\nimport y from '../sibling';\n"
	assert.Empty(t, c.Check(fileOf("src/feature/deep/mod.ts", good)))
}

func TestDocStyleCheckerSingleH1(t *testing.T) {
	c := newDocStyleChecker(nil)

	content := "# Title\n\nbody\n\n# Another Title\n"
	diags := c.Check(fileOf("SETUP.md", content))
	assert.Len(t, diags, 1)
	assert.Equal(t, 5, diags[0].Line)
	assert.Contains(t, diags[0].Message, "multiple top-level headings")
}

func TestDocStyleCheckerIgnoresFencedHeadings(t *testing.T) {
	c := newDocStyleChecker(nil)

	content := "# Title\n\n```md\n# not a heading\n```\n"
	assert.Empty(t, c.Check(fileOf("doc.md", content)))
}

func TestDocStyleCheckerIgnoresFencedPatterns(t *testing.T) {
	c := newDocStyleChecker(nil)

	// A doc may quote bad examples inside a code block.
	content := "# Title\n\n```text\nTODO: sample placeholder\n**Bold Heading Example**\ncoming soon\n```\n"
	assert.Empty(t, c.Check(fileOf("doc.md", content)))

	// The same lines outside a fence are findings.
	content = "# Title\n\nTODO: sample placeholder\n**Bold Heading Example**\n"
	assert.Len(t, c.Check(fileOf("doc.md", content)), 2)
}

func TestBannedPhraseIgnoresFencedMarkdown(t *testing.T) {
	c := newBannedPhraseChecker(nil)

	content := "# Title\n\n```\nproduction ready\n```\n"
	assert.Empty(t, c.Check(fileOf("doc.md", content)))

	// Fences only mean something in markdown; source files keep matching.
	assert.Len(t, c.Check(fileOf("src/app.ts", "// production ready\n")), 1)
}

func TestDocStyleCheckerBoldHeading(t *testing.T) {
	c := newDocStyleChecker(nil)

	diags := c.Check(fileOf("doc.md", "# T\n\n**Section Two**\n"))
	assert.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "bold line used as heading")
}

func TestNamingChecker(t *testing.T) {
	c := namingChecker{}

	tests := []struct {
		rel  string
		want int
	}{
		{"src/components/Button/Button.tsx", 0},
		{"src/components/Button/Button.test.tsx", 0},
		{"src/components/Button/index.ts", 0},
		{"src/components/button.tsx", 1}, // component files are PascalCase
		{"src/lib/date-utils.ts", 0},
		{"src/lib/dateUtils_old.ts", 1},
		{"src/components/Button/button.module.css", 0},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			diags := c.Check(&File{RelPath: tt.rel})
			assert.Len(t, diags, tt.want, "rel=%s", tt.rel)
		})
	}
}

func TestCompileExtraReportsBadPatterns(t *testing.T) {
	rules, errs := compileExtra([]string{`(?i)legit`, `(unclosed`})
	assert.Len(t, rules, 1)
	assert.Len(t, errs, 1)
}
