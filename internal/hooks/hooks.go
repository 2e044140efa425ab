// Package hooks installs and runs the git pre-commit enforcement. The
// installed hook is a thin shell script that defers to `guard hooks run`,
// so hook behavior updates with the binary, not with reinstallation.
package hooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"guardrail/internal/check"
	"guardrail/internal/config"
	"guardrail/internal/logging"
)

// sentinel identifies a hook script as ours. Present in every script we
// write; its absence means the hook belongs to the user.
const sentinel = "# guardrail pre-commit hook"

const hookScript = `#!/bin/sh
` + sentinel + `
# Installed by 'guard hooks install'. Remove with 'guard hooks uninstall'.
exec guard hooks run
`

// backupSuffix is appended to a pre-existing user hook on install.
const backupSuffix = ".pre-guardrail"

// Install writes the pre-commit hook. A pre-existing hook that is not ours
// is moved aside to pre-commit.pre-guardrail first; reinstalling over our
// own hook is a no-op.
func Install(root string) (string, error) {
	log := logging.Get(logging.CategoryHooks)

	dir, err := HooksDir(root)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("hooks: create hooks dir: %w", err)
	}

	path := filepath.Join(dir, "pre-commit")
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && strings.Contains(string(existing), sentinel):
		log.Info("hook already installed at %s", path)
	case err == nil:
		backup := path + backupSuffix
		// A leftover backup holds a hook the user has not restored yet;
		// overwriting it would lose that hook for good.
		if _, statErr := os.Stat(backup); statErr == nil {
			return "", fmt.Errorf("hooks: backup %s already exists, move it aside first", backup)
		} else if !os.IsNotExist(statErr) {
			return "", fmt.Errorf("hooks: inspect backup: %w", statErr)
		}
		if err := os.Rename(path, backup); err != nil {
			return "", fmt.Errorf("hooks: back up existing hook: %w", err)
		}
		log.Info("existing hook moved to %s", backup)
	case !os.IsNotExist(err):
		return "", fmt.Errorf("hooks: inspect existing hook: %w", err)
	}

	if err := os.WriteFile(path, []byte(hookScript), 0755); err != nil {
		return "", fmt.Errorf("hooks: write hook: %w", err)
	}
	log.Info("installed pre-commit hook at %s", path)
	return path, nil
}

// Uninstall removes our hook and restores any backup. Removing a hook we
// did not install is refused.
func Uninstall(root string) error {
	dir, err := HooksDir(root)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "pre-commit")
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !strings.Contains(string(content), sentinel) {
		return fmt.Errorf("hooks: %s was not installed by guardrail, leaving it alone", path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("hooks: remove hook: %w", err)
	}

	backup := path + backupSuffix
	if _, err := os.Stat(backup); err == nil {
		if err := os.Rename(backup, path); err != nil {
			return fmt.Errorf("hooks: restore backed-up hook: %w", err)
		}
	}
	return nil
}

// Installed reports whether our pre-commit hook is in place.
func Installed(root string) bool {
	dir, err := HooksDir(root)
	if err != nil {
		return false
	}
	content, err := os.ReadFile(filepath.Join(dir, "pre-commit"))
	return err == nil && strings.Contains(string(content), sentinel)
}

// Run executes the staged-file checks, the entry point the hook script
// calls. An empty index passes trivially.
func Run(ctx context.Context, root string, cfg *config.Config) (*check.Result, error) {
	timer := logging.StartTimer(logging.CategoryHooks, "hooks.Run")
	defer timer.Stop()

	staged, err := StagedFiles(root)
	if err != nil {
		return nil, err
	}

	engine := check.NewEngine(root, cfg)
	return engine.RunPaths(ctx, staged)
}
