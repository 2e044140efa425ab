package check

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"guardrail/internal/config"
	"guardrail/internal/logging"
)

// Result is the outcome of one engine run.
type Result struct {
	RunID        string        `json:"run_id"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	FilesChecked int           `json:"files_checked"`
	Checkers     []string      `json:"checkers"`
	Errors       int           `json:"errors"`
	Warnings     int           `json:"warnings"`
	Diagnostics  []Diagnostic  `json:"diagnostics"`
}

// Failed reports whether the run should produce a non-zero exit.
func (r *Result) Failed(failOnWarn bool) bool {
	if r.Errors > 0 {
		return true
	}
	return failOnWarn && r.Warnings > 0
}

// Engine runs the registered checkers over project files.
type Engine struct {
	root     string
	cfg      *config.Config
	registry *Registry
	setup    []Diagnostic
}

// NewEngine builds an engine for a project root. Setup problems (bad user
// patterns) are carried into every run's diagnostics.
func NewEngine(root string, cfg *config.Config) *Engine {
	registry, setup := NewRegistry(&cfg.Checks)
	return &Engine{root: root, cfg: cfg, registry: registry, setup: setup}
}

// Registry exposes the active checkers (for --only and listings).
func (e *Engine) Registry() *Registry { return e.registry }

// Run checks every file selected by the include globs.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	files, err := CollectFiles(e.root, &e.cfg.Checks)
	if err != nil {
		return nil, err
	}
	return e.runFiles(ctx, files, e.concurrency())
}

// RunPaths checks an explicit file list (staged files, editor buffers).
func (e *Engine) RunPaths(ctx context.Context, paths []string) (*Result, error) {
	return e.runFiles(ctx, FilterPaths(paths, &e.cfg.Checks), e.concurrency())
}

// RunSerial is Run with a single worker. Only the benchmark surface uses
// it; results are identical to Run by construction.
func (e *Engine) RunSerial(ctx context.Context) (*Result, error) {
	files, err := CollectFiles(e.root, &e.cfg.Checks)
	if err != nil {
		return nil, err
	}
	return e.runFiles(ctx, files, 1)
}

func (e *Engine) concurrency() int {
	if n := e.cfg.Checks.Concurrency; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func (e *Engine) runFiles(ctx context.Context, files []string, workers int) (*Result, error) {
	timer := logging.StartTimer(logging.CategoryCheck, "Engine.runFiles")
	defer timer.Stop()

	result := &Result{
		RunID:        uuid.NewString(),
		StartedAt:    time.Now(),
		FilesChecked: len(files),
		Checkers:     e.registry.IDs(),
	}
	result.Diagnostics = append(result.Diagnostics, e.setup...)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			diags := e.checkOne(rel)
			if len(diags) == 0 {
				return nil
			}
			mu.Lock()
			result.Diagnostics = append(result.Diagnostics, diags...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortDiagnostics(result.Diagnostics)
	result.Errors, result.Warnings = Count(result.Diagnostics)
	result.Duration = time.Since(result.StartedAt)

	logging.Get(logging.CategoryCheck).Info("run %s: %d files, %d errors, %d warnings in %s",
		result.RunID, result.FilesChecked, result.Errors, result.Warnings, result.Duration)
	return result, nil
}

// checkOne loads a file and runs every applicable checker against it. An
// unreadable file is itself a finding, never a silent skip.
func (e *Engine) checkOne(rel string) []Diagnostic {
	var diags []Diagnostic

	var f *File
	for _, reg := range e.registry.checkers {
		if !reg.checker.Applies(rel) {
			continue
		}
		if f == nil {
			loaded, err := LoadFile(e.root, rel)
			if err != nil {
				return []Diagnostic{{
					Checker:  reg.checker.ID(),
					Severity: SeverityError,
					File:     rel,
					Message:  "cannot read file: " + err.Error(),
				}}
			}
			f = loaded
		}
		for _, d := range reg.checker.Check(f) {
			d.Severity = reg.severity
			diags = append(diags, d)
		}
	}
	return diags
}
