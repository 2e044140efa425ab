package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"guardrail/internal/check"
	"guardrail/internal/history"
	"guardrail/internal/hooks"
)

var (
	checkStaged     bool
	checkFormat     string
	checkOnly       string
	checkFailOnWarn bool
	checkList       bool
)

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Run the enforcement checkers",
	Long: `Runs every enabled checker over the project (or the given paths) and
prints findings as file:line:col diagnostics. Exit code 1 means at least
one error-severity finding.

Checkers:
  banned-phrase    overclaiming language in docs and comments
  debug-statement  console.log / debugger / alert in source
  file-naming      PascalCase components, kebab-case elsewhere
  import-style     deep ../../ chains, namespace React imports
  doc-style        placeholder sections, duplicate H1s`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}

	engine := check.NewEngine(root, cfg)
	if checkOnly != "" {
		if err := engine.Registry().Select(checkOnly); err != nil {
			return err
		}
	}

	if checkList {
		for _, info := range engine.Registry().List() {
			fmt.Printf("%-16s %-8s %s\n", info.ID, info.Severity, info.Description)
		}
		return nil
	}

	var result *check.Result
	switch {
	case checkStaged:
		var staged []string
		staged, err = hooks.StagedFiles(root)
		if err != nil {
			return err
		}
		result, err = engine.RunPaths(cmd.Context(), staged)
	case len(args) > 0:
		result, err = engine.RunPaths(cmd.Context(), args)
	default:
		result, err = engine.Run(cmd.Context())
	}
	if err != nil {
		return err
	}

	recordRun(root, "check", result)

	switch checkFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	case "text":
		printResult(result)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", checkFormat)
	}

	if result.Failed(checkFailOnWarn) {
		return fmt.Errorf("check failed: %d errors, %d warnings", result.Errors, result.Warnings)
	}
	return nil
}

func printResult(result *check.Result) {
	for _, d := range result.Diagnostics {
		fmt.Println(d.String())
	}
	fmt.Printf("%d files checked in %s: %d errors, %d warnings\n",
		result.FilesChecked, result.Duration.Round(time.Millisecond),
		result.Errors, result.Warnings)
}

// recordRun appends the run to .guardrail/history.db. History is best
// effort: a broken database never fails the check itself.
func recordRun(root, source string, result *check.Result) {
	store, err := history.Open(root)
	if err != nil {
		logger.Debug("history unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	err = store.Record(history.Run{
		ID:         result.RunID,
		Source:     source,
		StartedAt:  result.StartedAt,
		DurationMS: result.Duration.Milliseconds(),
		Files:      result.FilesChecked,
		Errors:     result.Errors,
		Warnings:   result.Warnings,
	})
	if err != nil {
		logger.Debug("history record failed", zap.Error(err))
	}
}

func init() {
	checkCmd.Flags().BoolVar(&checkStaged, "staged", false, "Check only files staged in git (what the pre-commit hook runs)")
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "Output format: text or json")
	checkCmd.Flags().StringVar(&checkOnly, "only", "", "Comma-separated checker IDs to run")
	checkCmd.Flags().BoolVar(&checkFailOnWarn, "fail-on-warn", false, "Exit 1 on warnings too")
	checkCmd.Flags().BoolVar(&checkList, "list", false, "List active checkers and exit")
}
