package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"guardrail/internal/editor"
	"guardrail/internal/project"
	"guardrail/internal/rules"
)

var serveAddr string

// serveCmd runs the local diagnostics server that editor clients poll.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Watch the project and serve diagnostics over HTTP",
	Long: `Watches the project tree and re-runs the checkers when files change
(debounced). Editor clients read the results from a local HTTP endpoint:

  GET  /diagnostics   current findings, JSON
  GET  /status        project profile, rule document states, counts
  POST /check         force an immediate re-run

The server binds loopback only; it is not meant to be exposed.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data := rules.RenderData{Project: project.Scan(root), ServerAddr: cfg.Server.Addr}
	svc := editor.New(root, cfg, data)
	if err := svc.Start(ctx); err != nil {
		return err
	}

	fmt.Printf("watching %s\n", root)
	fmt.Printf("diagnostics at http://%s/diagnostics\n", svc.Addr())

	<-ctx.Done()
	fmt.Println("\nshutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return svc.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, loopback)")
}
