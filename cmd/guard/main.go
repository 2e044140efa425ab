package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"guardrail/internal/config"
	"guardrail/internal/logging"
)

var (
	// Global flags
	verbose   bool
	workspace string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "guard",
	Short: "guardrail - enforcement tooling for AI-assisted codebases",
	Long: `guardrail keeps AI-assisted projects honest.

It renders the project's rule documents (CLAUDE.md, FRICTION-MAPPING.md,
SETUP.md), scaffolds components that follow the conventions those documents
describe, and enforces the rules with checkers that run from the command
line, from a git pre-commit hook, and from a local diagnostics server for
editor integration.

Every check result is computed from the files as they are; nothing is
assumed or hardcoded.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// Categorized file logging is a no-op unless the project config
		// enables debug_mode, so this is safe before `guard init`.
		if root, err := resolveRoot(); err == nil {
			if err := logging.Initialize(root); err != nil {
				logger.Warn("file logging unavailable", zap.Error(err))
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Shutdown()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// resolveRoot returns the project root: the --workspace flag if given,
// otherwise the nearest ancestor holding .guardrail/ or .git/.
func resolveRoot() (string, error) {
	if workspace != "" {
		abs, err := filepath.Abs(workspace)
		if err != nil {
			return "", fmt.Errorf("resolve workspace: %w", err)
		}
		return abs, nil
	}
	return config.FindProjectRoot()
}

// loadWorkspace resolves the root and loads its config in one step; most
// commands start here.
func loadWorkspace() (string, *config.Config, error) {
	root, err := resolveRoot()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Project directory (default: walk up from cwd)")

	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.AddCommand(rulesStatusCmd)
	rulesCmd.AddCommand(rulesShowCmd)

	hooksCmd.AddCommand(hooksInstallCmd)
	hooksCmd.AddCommand(hooksUninstallCmd)
	hooksCmd.AddCommand(hooksRunCmd)

	generateCmd.AddCommand(generateComponentCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(hooksCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
