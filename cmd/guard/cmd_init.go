package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"guardrail/internal/config"
	"guardrail/internal/logging"
	"guardrail/internal/project"
	"guardrail/internal/rules"
)

var initForce bool

// initCmd sets up .guardrail/ and renders the rule documents.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize guardrail in the current project",
	Long: `Creates .guardrail/config.json with defaults, scans the project to build
its profile (language, frameworks, test runner), and renders the rule
documents from that profile.

Safe to re-run: existing config and user-edited documents are left alone.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		// No .guardrail or .git above us yet: initialize right here.
		root, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	cfgPath := config.Path(root)
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(cfgPath); os.IsNotExist(statErr) {
		if err := cfg.Save(root); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", cfgPath)
	} else {
		fmt.Printf("kept existing %s\n", cfgPath)
	}

	if err := logging.Initialize(root); err != nil {
		logger.Warn("file logging unavailable", zap.Error(err))
	}

	profile := project.Scan(root)
	fmt.Printf("project: %s (%s", profile.Name, profile.Language)
	if len(profile.Frameworks) > 0 {
		for _, f := range profile.Frameworks {
			fmt.Printf(", %s", f)
		}
	}
	fmt.Println(")")

	data := rules.RenderData{Project: profile, ServerAddr: cfg.Server.Addr}
	res, err := rules.Init(root, &cfg.Rules, data, initForce)
	if err != nil {
		return err
	}
	printInitResult(res)

	fmt.Println("\nnext: guard hooks install")
	return nil
}

func printInitResult(res *rules.InitResult) {
	for _, name := range res.Written {
		fmt.Printf("wrote %s\n", name)
	}
	skipped := make([]string, 0, len(res.Skipped))
	for name := range res.Skipped {
		skipped = append(skipped, name)
	}
	sort.Strings(skipped)
	for _, name := range skipped {
		fmt.Printf("kept %s (%s)\n", name, res.Skipped[name])
	}
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite user-edited rule documents")
}
