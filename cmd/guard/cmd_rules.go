package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"guardrail/internal/project"
	"guardrail/internal/rules"
)

var (
	rulesForce bool
	rulesRaw   bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the project's rule documents",
	Long: `Rule documents (CLAUDE.md, FRICTION-MAPPING.md, SETUP.md) are rendered
from templates over the scanned project profile. Each rendered document
carries a frontmatter block with content and template hashes, which is how
guardrail tells its own installs from user edits.`,
}

var rulesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Render missing or stale rule documents",
	Long: `Renders the configured rule documents into the project root. Documents
the user has edited since install are reported as drifted and left alone
unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadWorkspace()
		if err != nil {
			return err
		}
		data := rules.RenderData{Project: project.Scan(root), ServerAddr: cfg.Server.Addr}
		res, err := rules.Init(root, &cfg.Rules, data, rulesForce)
		if err != nil {
			return err
		}
		printInitResult(res)
		return nil
	},
}

var rulesStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the install state of each rule document",
	Long: `States:
  missing  - not installed
  current  - matches what guardrail would render today
  drifted  - edited after install (user-owned; init will not touch it)
  stale    - installed from an older template (init re-renders it)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadWorkspace()
		if err != nil {
			return err
		}
		statuses, err := rules.Status(root, &cfg.Rules)
		if err != nil {
			return err
		}
		for _, st := range statuses {
			fmt.Printf("%-24s %s\n", st.Doc.FileName, st.State)
		}
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Render a rule document to the terminal",
	Long: `Prints the named document (claude, friction-mapping, setup) as it stands
in the project, or freshly rendered if it is not installed. Output is
formatted for the terminal unless --raw is given or stdout is not a TTY.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadWorkspace()
		if err != nil {
			return err
		}
		doc, err := rules.Lookup(args[0])
		if err != nil {
			return err
		}
		data := rules.RenderData{Project: project.Scan(root), ServerAddr: cfg.Server.Addr}
		body, err := rules.Body(root, &cfg.Rules, doc, data)
		if err != nil {
			return err
		}

		if rulesRaw || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(string(body))
			return nil
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return err
		}
		out, err := renderer.Render(string(body))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rulesInitCmd.Flags().BoolVar(&rulesForce, "force", false, "Overwrite drifted (user-edited) documents")
	rulesShowCmd.Flags().BoolVar(&rulesRaw, "raw", false, "Print raw Markdown without terminal formatting")
}
