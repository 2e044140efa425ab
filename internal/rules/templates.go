package rules

// Built-in rule document templates. These use text/template syntax over
// RenderData. Editing a template changes its hash, which is how `rules
// status` tells stale installs from user-edited ones.

const claudeMDTemplate = `# CLAUDE.md

This file provides guidance to AI coding assistants working in {{.Project.Name}}.

## Project Facts

- **Language:** {{.Project.Language}}
{{- if .Project.Frameworks}}
- **Frameworks:** {{join .Project.Frameworks ", "}}
{{- end}}
{{- if .Project.PackageManager}}
- **Package manager:** {{.Project.PackageManager}}
{{- end}}
{{- if .Project.TestRunner}}
- **Test runner:** {{.Project.TestRunner}}
{{- end}}

## Honesty Rules

Claims about code must be verifiable from the repository or from a command
you actually ran. In particular:

- Never describe work as "production ready" or "fully tested". <!-- guard-allow: the rule names the phrases it bans -->
  State what was run and what it showed.
- If a check, test or build was not executed, say so. Do not infer success.
- When a task is partially done, list what remains. Partial work described
  as finished is treated as a defect.

These rules are enforced: the ` + "`banned-phrase`" + ` checker rejects commits whose
docs or comments contain overclaiming language.

## Code Conventions

- Component files are PascalCase (` + "`Button.tsx`" + `); everything else is
  kebab-case (` + "`date-utils.ts`" + `). Enforced by ` + "`file-naming`" + `.
- No ` + "`console.log`" + `, ` + "`debugger`" + ` or ` + "`alert`" + ` in committed source.
  Enforced by ` + "`debug-statement`" + `. Use the project logger instead.
- Imports that climb three or more directories must use the ` + "`@/`" + ` alias.
  Enforced by ` + "`import-style`" + `.

## Working With Enforcement

Run ` + "`guard check`" + ` before committing; the pre-commit hook runs the same
checks over staged files. A finding on a line that is genuinely correct can
be suppressed with a ` + "`guard-allow`" + ` marker on that line - use sparingly and
say why in the commit message.
`

const frictionMappingTemplate = `# FRICTION-MAPPING.md

Maps recurring friction in AI-assisted development to the enforcement that
removes it. Each entry names the observed failure, the cost, and the check
that now guards against it.

## 1. Overclaiming in documentation

**Failure:** status documents describing unverified work as done
("production ready", "100% complete"). <!-- guard-allow: names the banned phrases -->
**Cost:** reviewers trust and ship unfinished work.
**Enforcement:** ` + "`banned-phrase`" + ` checker, error severity, runs on every
commit via the pre-commit hook.

## 2. Debug output reaching main

**Failure:** ` + "`console.log`" + ` and ` + "`debugger`" + ` statements committed during
exploration and never removed.
**Cost:** noisy production logs, paused debuggers in deployed code.
**Enforcement:** ` + "`debug-statement`" + ` checker, error severity.

## 3. Inconsistent file naming

**Failure:** mixed PascalCase/camelCase/kebab-case file names break
case-sensitive imports between macOS and Linux.
**Cost:** builds that pass locally and fail in CI.
**Enforcement:** ` + "`file-naming`" + ` checker, error severity.

## 4. Deep relative import chains

**Failure:** ` + "`../../../`" + ` imports that break on every file move.
**Cost:** refactors touch dozens of unrelated files.
**Enforcement:** ` + "`import-style`" + ` checker, warning severity.

## 5. Placeholder documentation

**Failure:** docs full of TODO / TBD / "coming soon" sections. <!-- guard-allow -->
**Cost:** readers cannot tell what exists from what is planned.
**Enforcement:** ` + "`doc-style`" + ` checker, warning severity.

## Verifying the enforcement itself

` + "`guard report`" + ` regenerates the enforcement verification report from live
runs. Every number in the report comes from a check that actually executed;
there is no hardcoded success path.
`

const setupMDTemplate = `# SETUP.md

Getting guardrail running in {{.Project.Name}}.

## 1. Initialize

` + "```sh" + `
guard rules init
` + "```" + `

Creates ` + "`.guardrail/`" + ` with a default ` + "`config.json`" + ` and renders the rule
documents (CLAUDE.md, FRICTION-MAPPING.md, this file) from the scanned
project profile.

## 2. Install the git hook

` + "```sh" + `
guard hooks install
` + "```" + `

Writes a pre-commit hook that runs ` + "`guard check --staged`" + `. An existing
hook is backed up, not overwritten; ` + "`guard hooks uninstall`" + ` restores it.

## 3. Run the checks

` + "```sh" + `
guard check            # whole project
guard check --staged   # what the hook runs
guard check --format json
` + "```" + `

Exit code 1 means at least one error-severity finding.

## 4. Editor integration

` + "```sh" + `
guard serve
` + "```" + `

Watches the project and serves diagnostics at
` + "`http://{{.ServerAddr}}/diagnostics`" + ` for editor clients. ` + "`guard dashboard`" + `
shows the same diagnostics in the terminal.

## 5. Configuration

Edit ` + "`.guardrail/config.json`" + ` and run ` + "`guard validate`" + `. Checker
severities (` + "`error`" + `, ` + "`warning`" + `, ` + "`off`" + `) and extra patterns live under
` + "`checks.checkers`" + `.
`
