package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"guardrail/cmd/guard/ui"
)

// dashboardCmd shows live diagnostics in a terminal table.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive terminal view of the current findings",
	Long: `Runs the checkers and shows the findings in a navigable table.
Press r to re-run, q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadWorkspace()
		if err != nil {
			return err
		}
		model := ui.NewDashboard(root, cfg)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}
