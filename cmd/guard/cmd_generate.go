package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"guardrail/internal/project"
	"guardrail/internal/scaffold"
)

var (
	genForce     bool
	genDryRun    bool
	genOutputDir string
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate code that follows the project conventions",
}

var generateComponentCmd = &cobra.Command{
	Use:   "component [Name]",
	Short: "Scaffold a React component",
	Long: `Creates a component directory with the component file, a test, a story,
a style file and an index barrel. File extensions, test runner imports and
styling follow the scanned project profile. The directory is written
atomically: either every file lands or none do.

Example:
  guard generate component UserAvatar --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateComponent,
}

func runGenerateComponent(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	if genOutputDir != "" {
		cfg.Generator.OutputDir = genOutputDir
	}

	gen := scaffold.NewGenerator(root, cfg.Generator, project.Scan(root))
	plan, err := gen.Plan(args[0])
	if err != nil {
		return err
	}

	if genDryRun {
		fmt.Printf("would create %s/\n", plan.Dir)
		for _, f := range plan.Files {
			fmt.Printf("  %s (%d bytes)\n", f.RelPath, f.Size)
		}
		return nil
	}

	if err := gen.Generate(plan, genForce); err != nil {
		if errors.Is(err, scaffold.ErrExists) {
			return fmt.Errorf("%s already exists (use --force to replace)", plan.Dir)
		}
		return err
	}
	fmt.Printf("created %s/ (%d files)\n", plan.Dir, len(plan.Files))
	return nil
}

func init() {
	generateComponentCmd.Flags().BoolVar(&genForce, "force", false, "Replace an existing component directory")
	generateComponentCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Print the plan without writing files")
	generateComponentCmd.Flags().StringVar(&genOutputDir, "output-dir", "", "Override generator.output_dir from config")
}
