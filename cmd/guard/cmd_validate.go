package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"guardrail/internal/config"
)

// validateCmd checks .guardrail/config.json for real problems: bad enum
// values, globs and regexes that do not compile, escaping output paths.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate .guardrail/config.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadWorkspace()
		if err != nil {
			return err
		}

		issues := cfg.Validate()
		if len(issues) == 0 {
			fmt.Printf("%s is valid\n", config.Path(root))
			return nil
		}
		for _, issue := range issues {
			fmt.Println(issue.String())
		}
		if config.HasErrors(issues) {
			return fmt.Errorf("config invalid: %d issues", len(issues))
		}
		return nil
	},
}
