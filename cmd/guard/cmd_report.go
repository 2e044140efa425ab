package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"guardrail/internal/config"
	"guardrail/internal/history"
	"guardrail/internal/project"
	"guardrail/internal/report"
)

var (
	reportBench   bool
	reportOut     string
	reportHistory int
)

// reportCmd regenerates the enforcement verification report from live runs.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the enforcement verification report",
	Long: `Runs every verification (config validity, checkers, rule document
states, hook install) and writes the results as Markdown. Every number in
the report comes from a run that actually executed in this invocation.

--bench additionally measures the checker workload serially and in
parallel and reports both wall-clock times.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}

	if reportHistory > 0 {
		return printHistory(root, reportHistory)
	}

	profile := project.Scan(root)
	r, err := report.Generate(cmd.Context(), root, cfg, report.Options{
		ProjectName: profile.Name,
		WithBench:   reportBench,
	})
	if err != nil {
		return err
	}

	if r.CheckResult != nil {
		recordRun(root, "report", r.CheckResult)
	}

	md := r.Markdown()
	if reportOut == "-" {
		fmt.Print(md)
	} else {
		out := reportOut
		if out == "" {
			out = filepath.Join(root, config.GuardrailDir, "report.md")
		}
		if err := os.WriteFile(out, []byte(md), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
	}

	for _, s := range r.Sections {
		fmt.Printf("%-20s %s\n", s.Title, passLabel(s.Passed))
	}
	if !r.Passed() {
		return fmt.Errorf("verification failed")
	}
	return nil
}

func printHistory(root string, limit int) error {
	store, err := history.Open(root)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %-6s  %4d files  %2d errors  %2d warnings  %s\n",
			run.StartedAt.Local().Format(time.DateTime), run.Source,
			run.Files, run.Errors, run.Warnings, run.ID)
	}
	return nil
}

func passLabel(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func init() {
	reportCmd.Flags().BoolVar(&reportBench, "bench", false, "Measure serial vs parallel check runtime")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Output path ('-' for stdout; default .guardrail/report.md)")
	reportCmd.Flags().IntVar(&reportHistory, "history", 0, "Print the last N recorded runs instead of generating")
}
