package report

import (
	"fmt"
	"strings"
	"time"
)

// Markdown renders the report as a Markdown document. Formatting only: the
// renderer never recomputes or adjusts any result.
func (r *Report) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Enforcement Verification Report\n\n")
	fmt.Fprintf(&sb, "- **Project:** %s\n", r.Project)
	fmt.Fprintf(&sb, "- **Run:** `%s`\n", r.RunID)
	fmt.Fprintf(&sb, "- **Generated:** %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "- **Overall:** %s\n\n", passLabel(r.Passed()))

	for _, s := range r.Sections {
		fmt.Fprintf(&sb, "## %s - %s\n\n", s.Title, passLabel(s.Passed))
		for _, d := range s.Details {
			fmt.Fprintf(&sb, "- %s\n", d)
		}
		fmt.Fprintf(&sb, "- measured in %s\n\n", s.Duration.Round(time.Microsecond))
	}

	if r.CheckResult != nil && len(r.CheckResult.Diagnostics) > 0 {
		fmt.Fprintf(&sb, "## Findings\n\n")
		for _, d := range r.CheckResult.Diagnostics {
			fmt.Fprintf(&sb, "- `%s`\n", d.String())
		}
		sb.WriteString("\n")
	}

	if r.Bench != nil {
		fmt.Fprintf(&sb, "## Check runtime (measured)\n\n")
		fmt.Fprintf(&sb, "| Mode | Files | Wall clock |\n|---|---|---|\n")
		fmt.Fprintf(&sb, "| serial | %d | %s |\n", r.Bench.Files, r.Bench.Serial.Round(time.Microsecond))
		fmt.Fprintf(&sb, "| parallel | %d | %s |\n\n", r.Bench.Files, r.Bench.Parallel.Round(time.Microsecond))
		fmt.Fprintf(&sb, "Parallel speedup: %.1f%%. Wall-clock numbers vary by machine and load.\n", r.Bench.SpeedupPct)
	}

	return sb.String()
}

func passLabel(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
