package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"guardrail/internal/hooks"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage the git pre-commit hook",
	Long: `The pre-commit hook runs the enforcement checkers over staged files and
blocks the commit on error-severity findings. An existing hook from another
tool is backed up on install and restored on uninstall.`,
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}
		path, err := hooks.Install(root)
		if err != nil {
			if errors.Is(err, hooks.ErrNotGitRepo) {
				return fmt.Errorf("%s is not a git repository", root)
			}
			return err
		}
		fmt.Printf("installed %s\n", path)
		return nil
	},
}

var hooksUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the pre-commit hook, restoring any backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}
		if err := hooks.Uninstall(root); err != nil {
			return err
		}
		fmt.Println("pre-commit hook removed")
		return nil
	},
}

// hooksRunCmd is what the installed hook script executes. It is also
// useful directly: `guard hooks run` answers "would my commit pass".
var hooksRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the checks the pre-commit hook would run",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadWorkspace()
		if err != nil {
			return err
		}
		result, err := hooks.Run(cmd.Context(), root, cfg)
		if err != nil {
			return err
		}
		recordRun(root, "hook", result)
		printResult(result)
		if result.Failed(cfg.Hooks.FailOnWarn) {
			return fmt.Errorf("commit blocked: %d errors", result.Errors)
		}
		return nil
	},
}
