// Package editor runs the local diagnostics service behind `guard serve`:
// an fsnotify watcher that re-checks the project when files change, and a
// localhost HTTP surface editor clients poll for diagnostics. This is the
// integration point an editor extension talks to instead of shelling out
// to the CLI on every keystroke.
package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"guardrail/internal/check"
	"guardrail/internal/config"
	"guardrail/internal/history"
	"guardrail/internal/logging"
	"guardrail/internal/rules"
)

// Service owns the watcher, the check engine and the HTTP listener.
type Service struct {
	root string
	cfg  *config.Config

	engine   *check.Engine
	ruleData rules.RenderData

	mu        sync.RWMutex
	latest    *check.Result
	refreshed time.Time

	listener net.Listener
	server   *http.Server
	watcher  *watcher
	store    *history.Store

	done chan struct{}
}

// New builds a service for a project root.
func New(root string, cfg *config.Config, ruleData rules.RenderData) *Service {
	return &Service{
		root:     root,
		cfg:      cfg,
		engine:   check.NewEngine(root, cfg),
		ruleData: ruleData,
		done:     make(chan struct{}),
	}
}

// Start binds the listener, runs an initial check and begins watching.
// It does not block; use Shutdown to stop.
func (s *Service) Start(ctx context.Context) error {
	log := logging.Get(logging.CategoryServer)

	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("editor: listen on %s: %w", s.cfg.Server.Addr, err)
	}
	s.listener = ln

	w, err := newWatcher(s.root, &s.cfg.Checks)
	if err != nil {
		ln.Close()
		return err
	}
	s.watcher = w

	// Run history is best effort; a broken database never stops the server.
	if st, err := history.Open(s.root); err == nil {
		s.store = st
	} else {
		log.Warn("history unavailable: %v", err)
	}

	if _, err := s.Refresh(ctx); err != nil {
		log.Error("initial check failed: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /diagnostics", s.handleDiagnostics)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /check", s.handleCheck)
	s.server = &http.Server{Handler: mux}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("serve: %v", err)
		}
	}()
	go s.watchLoop(ctx)

	log.Info("diagnostics server listening on %s", s.Addr())
	return nil
}

// Addr returns the bound address (useful when the config port is 0).
func (s *Service) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops the watcher and drains the HTTP server.
func (s *Service) Shutdown(ctx context.Context) error {
	var firstErr error
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			firstErr = err
		}
	}
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	<-s.done
	if s.store != nil {
		if err := s.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Refresh re-runs the full check suite and swaps in the new result.
func (s *Service) Refresh(ctx context.Context) (*check.Result, error) {
	result, err := s.engine.Run(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latest = result
	s.refreshed = time.Now()
	s.mu.Unlock()

	if s.store != nil {
		err := s.store.Record(history.Run{
			ID:         result.RunID,
			Source:     "serve",
			StartedAt:  result.StartedAt,
			DurationMS: result.Duration.Milliseconds(),
			Files:      result.FilesChecked,
			Errors:     result.Errors,
			Warnings:   result.Warnings,
		})
		if err != nil {
			logging.Get(logging.CategoryServer).Debug("history record failed: %v", err)
		}
	}
	return result, nil
}

// watchLoop debounces change notifications into refreshes. It exits when
// the watcher closes or the context is cancelled.
func (s *Service) watchLoop(ctx context.Context) {
	defer close(s.done)
	log := logging.Get(logging.CategoryServer)

	debounce := time.Duration(s.cfg.Server.DebounceMS) * time.Millisecond
	if debounce <= 0 {
		debounce = 400 * time.Millisecond
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case rel, ok := <-s.watcher.Changes():
			if !ok {
				return
			}
			log.Debug("change: %s", rel)
			timer.Reset(debounce)
		case <-timer.C:
			if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				log.Error("refresh failed: %v", err)
			}
		}
	}
}

func (s *Service) snapshot() (*check.Result, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.refreshed
}

func (s *Service) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	result, _ := s.snapshot()
	if result == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no check run has completed yet"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// statusPayload is what GET /status returns.
type statusPayload struct {
	Project     string            `json:"project"`
	Watching    bool              `json:"watching"`
	RefreshedAt time.Time         `json:"refreshed_at"`
	RunID       string            `json:"run_id,omitempty"`
	Files       int               `json:"files_checked"`
	Errors      int               `json:"errors"`
	Warnings    int               `json:"warnings"`
	Rules       map[string]string `json:"rules"`
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	payload := statusPayload{
		Project:  s.ruleData.Project.Name,
		Watching: true,
		Rules:    map[string]string{},
	}

	if result, at := s.snapshot(); result != nil {
		payload.RefreshedAt = at
		payload.RunID = result.RunID
		payload.Files = result.FilesChecked
		payload.Errors = result.Errors
		payload.Warnings = result.Warnings
	}

	if statuses, err := rules.Status(s.root, &s.cfg.Rules); err == nil {
		for _, st := range statuses {
			payload.Rules[st.Doc.Name] = string(st.State)
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Service) handleCheck(w http.ResponseWriter, r *http.Request) {
	result, err := s.Refresh(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
