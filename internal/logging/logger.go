// Package logging provides config-driven categorized file-based logging.
// Logs are written to .guardrail/logs/ with a separate file per category.
// Logging is controlled by debug_mode in .guardrail/config.json - when false,
// no logs are written at all.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"guardrail/internal/config"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot     Category = "boot"     // CLI startup, project root discovery
	CategoryConfig   Category = "config"   // Config load, save, validation
	CategoryRules    Category = "rules"    // Rule document rendering and drift
	CategoryScaffold Category = "scaffold" // Component generation
	CategoryCheck    Category = "check"    // Enforcement check runs
	CategoryHooks    Category = "hooks"    // Git hook install/run
	CategoryServer   Category = "server"   // Diagnostics server and watcher
	CategoryReport   Category = "report"   // Report generation
	CategoryStore    Category = "store"    // Run history storage
)

// Entry is one structured log line in JSON format.
type Entry struct {
	Timestamp string `json:"ts"`
	Category  string `json:"cat"`
	Level     string `json:"level"`
	Message   string `json:"msg"`
}

// Logger writes to a single category file.
type Logger struct {
	mu       sync.Mutex
	category Category
	file     *os.File
}

var (
	mu        sync.Mutex
	loggers   = make(map[Category]*Logger)
	logDir    string
	logCfg    config.LoggingConfig
	available bool
)

// nop is returned for disabled categories so call sites never nil-check.
var nop = &Logger{}

// Initialize sets up the logging system for a project root. Must be called
// before Get. When debug_mode is off this is a no-op and every Get returns
// a no-op logger.
func Initialize(root string) error {
	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("logging: load config: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()

	logCfg = cfg.Logging
	available = false

	if !logCfg.DebugMode {
		return nil
	}

	logDir = filepath.Join(root, config.GuardrailDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("logging: ensure log dir: %w", err)
	}
	available = true
	return nil
}

// IsDebugMode reports whether logging is active.
func IsDebugMode() bool {
	mu.Lock()
	defer mu.Unlock()
	return available
}

// Get returns the logger for a category, creating its file on first use.
// Disabled categories get a no-op logger.
func Get(category Category) *Logger {
	mu.Lock()
	defer mu.Unlock()

	if !available || !logCfg.IsCategoryEnabled(string(category)) {
		return nop
	}

	if l, ok := loggers[category]; ok {
		return l
	}

	path := filepath.Join(logDir, string(category)+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nop
	}

	l := &Logger{category: category, file: f}
	loggers[category] = l
	return l
}

// Shutdown closes every open log file.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()

	for _, l := range loggers {
		l.mu.Lock()
		if l.file != nil {
			_ = l.file.Close()
			l.file = nil
		}
		l.mu.Unlock()
	}
	loggers = make(map[Category]*Logger)
	available = false
}

func (l *Logger) log(level, format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}

	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}

	if logCfg.Format == "json" {
		entry := Entry{
			Timestamp: time.Now().Format(time.RFC3339Nano),
			Category:  string(l.category),
			Level:     level,
			Message:   msg,
		}
		if data, err := json.Marshal(entry); err == nil {
			fmt.Fprintf(l.file, "%s\n", data)
		}
		return
	}

	fmt.Fprintf(l.file, "[%s] [%s] %s\n", time.Now().Format(time.RFC3339), level, msg)
}

func (l *Logger) Debug(format string, args ...any) { l.log("DEBUG", format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log("INFO", format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log("WARN", format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log("ERROR", format, args...) }

// Timer measures an operation and logs its duration on Stop.
type Timer struct {
	logger *Logger
	op     string
	start  time.Time
}

// StartTimer begins timing an operation in a category.
func StartTimer(category Category, op string) *Timer {
	return &Timer{logger: Get(category), op: op, start: time.Now()}
}

// Stop logs the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug("%s took %s", t.op, elapsed)
	return elapsed
}
