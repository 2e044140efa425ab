package config

import (
	"fmt"
	"net"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Issue is a single configuration problem found by Validate.
type Issue struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

var validSeverities = map[string]bool{"error": true, "warning": true, "off": true}

// Validate checks the full config and returns every problem found. It never
// stops at the first issue: each field is checked against the actual value,
// and an invalid config is only ever reported, not silently accepted.
func (c *Config) Validate() []Issue {
	var issues []Issue

	add := func(severity, field, format string, args ...any) {
		issues = append(issues, Issue{
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Severity: severity,
		})
	}

	if c.Version > CurrentVersion {
		add("warning", "version", "config version %d is newer than supported version %d", c.Version, CurrentVersion)
	}

	// Generator enums.
	switch c.Generator.Style {
	case "", "function", "arrow":
	default:
		add("error", "generator.style", "unknown style %q (want function or arrow)", c.Generator.Style)
	}
	switch c.Generator.Styling {
	case "", "css-modules", "styled", "none":
	default:
		add("error", "generator.styling", "unknown styling %q (want css-modules, styled or none)", c.Generator.Styling)
	}
	if dir := c.Generator.OutputDir; dir != "" {
		clean := filepath.ToSlash(filepath.Clean(dir))
		if filepath.IsAbs(dir) {
			add("error", "generator.output_dir", "must be relative to the project root, got absolute path %q", dir)
		} else if clean == ".." || strings.HasPrefix(clean, "../") {
			add("error", "generator.output_dir", "must not escape the project root: %q", dir)
		}
	}

	// Check globs must be syntactically valid.
	for _, glob := range c.Checks.Include {
		if err := checkGlob(glob); err != nil {
			add("error", "checks.include", "bad glob %q: %v", glob, err)
		}
	}
	if c.Checks.Concurrency < 0 {
		add("error", "checks.concurrency", "must be >= 0, got %d", c.Checks.Concurrency)
	}

	// Per-checker settings: severity enum and every regex must compile.
	for id, cc := range c.Checks.Checkers {
		if cc.Severity != "" && !validSeverities[strings.ToLower(cc.Severity)] {
			add("error", fmt.Sprintf("checks.checkers.%s.severity", id),
				"unknown severity %q (want error, warning or off)", cc.Severity)
		}
		for _, p := range cc.Patterns {
			if _, err := regexp.Compile(p); err != nil {
				add("error", fmt.Sprintf("checks.checkers.%s.patterns", id),
					"pattern %q does not compile: %v", p, err)
			}
		}
	}

	// Server address must parse; the server only ever binds loopback.
	if c.Server.Addr != "" {
		host, _, err := net.SplitHostPort(c.Server.Addr)
		if err != nil {
			add("error", "server.addr", "invalid address %q: %v", c.Server.Addr, err)
		} else if host != "localhost" && host != "127.0.0.1" && host != "::1" {
			add("warning", "server.addr", "non-loopback host %q exposes diagnostics to the network", host)
		}
	}
	if c.Server.DebounceMS < 0 {
		add("error", "server.debounce_ms", "must be >= 0, got %d", c.Server.DebounceMS)
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		add("error", "logging.format", "unknown format %q (want json or text)", c.Logging.Format)
	}

	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == "error" {
			return true
		}
	}
	return false
}

// checkGlob validates glob syntax. A leading "**/" prefix (match at any
// depth) is accepted on top of path.Match syntax.
func checkGlob(glob string) error {
	trimmed := strings.TrimPrefix(glob, "**/")
	if strings.Contains(trimmed, "**") {
		return fmt.Errorf("** is only supported as a leading prefix")
	}
	_, err := path.Match(trimmed, "sample")
	return err
}
