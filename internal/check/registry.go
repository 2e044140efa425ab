package check

import (
	"fmt"
	"sort"
	"strings"

	"guardrail/internal/config"
)

// defaultSeverities maps each built-in checker to the severity it runs at
// when config does not say otherwise.
var defaultSeverities = map[string]Severity{
	CheckerBannedPhrase:   SeverityError,
	CheckerDebugStatement: SeverityError,
	CheckerFileNaming:     SeverityError,
	CheckerImportStyle:    SeverityWarning,
	CheckerDocStyle:       SeverityWarning,
}

// registered pairs a checker with the severity its findings are reported at.
type registered struct {
	checker  Checker
	severity Severity
}

// Registry holds the active checkers for one run, with severities resolved
// from config.
type Registry struct {
	checkers []registered
}

// Info describes one checker for listings.
type Info struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// NewRegistry builds the built-in checker set. Checkers configured "off"
// are excluded. User patterns that fail to compile are returned as setup
// diagnostics so they surface in the run output instead of vanishing.
func NewRegistry(cfg *config.ChecksConfig) (*Registry, []Diagnostic) {
	var setup []Diagnostic

	build := func(id string, ctor func(extra []patternRule) Checker) (registered, bool) {
		sev := Severity(cfg.CheckerSeverity(id, string(defaultSeverities[id])))
		if sev == SeverityOff {
			return registered{}, false
		}
		extra, errs := compileExtra(cfg.ExtraPatterns(id))
		for _, err := range errs {
			setup = append(setup, Diagnostic{
				Checker:  id,
				Severity: SeverityError,
				File:     config.GuardrailDir + "/" + config.ConfigFile,
				Message:  fmt.Sprintf("checker misconfigured, %v", err),
			})
		}
		return registered{checker: ctor(extra), severity: sev}, true
	}

	r := &Registry{}
	ctors := []struct {
		id   string
		ctor func(extra []patternRule) Checker
	}{
		{CheckerBannedPhrase, newBannedPhraseChecker},
		{CheckerDebugStatement, newDebugStatementChecker},
		{CheckerImportStyle, newImportStyleChecker},
		{CheckerDocStyle, func(extra []patternRule) Checker { return newDocStyleChecker(extra) }},
	}
	for _, c := range ctors {
		if reg, ok := build(c.id, c.ctor); ok {
			r.checkers = append(r.checkers, reg)
		}
	}

	// file-naming takes no patterns.
	if sev := Severity(cfg.CheckerSeverity(CheckerFileNaming, string(defaultSeverities[CheckerFileNaming]))); sev != SeverityOff {
		r.checkers = append(r.checkers, registered{checker: namingChecker{}, severity: sev})
	}

	return r, setup
}

// Select narrows the registry to the given comma-separated checker IDs.
// Unknown IDs are an error listing the known ones.
func (r *Registry) Select(only string) error {
	if only == "" {
		return nil
	}

	want := make(map[string]bool)
	for _, id := range strings.Split(only, ",") {
		want[strings.TrimSpace(id)] = true
	}

	var kept []registered
	for _, reg := range r.checkers {
		if want[reg.checker.ID()] {
			kept = append(kept, reg)
			delete(want, reg.checker.ID())
		}
	}
	if len(want) > 0 {
		var unknown []string
		for id := range want {
			unknown = append(unknown, id)
		}
		sort.Strings(unknown)
		return fmt.Errorf("unknown checkers %s (known: %s)",
			strings.Join(unknown, ", "), strings.Join(r.IDs(), ", "))
	}

	r.checkers = kept
	return nil
}

// IDs returns the active checker IDs, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.checkers))
	for _, reg := range r.checkers {
		ids = append(ids, reg.checker.ID())
	}
	sort.Strings(ids)
	return ids
}

// List returns checker metadata for the `check --list` surface, sorted by ID.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.checkers))
	for _, reg := range r.checkers {
		infos = append(infos, Info{
			ID:          reg.checker.ID(),
			Description: reg.checker.Description(),
			Severity:    reg.severity,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}
