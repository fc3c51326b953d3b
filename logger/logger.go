// Package logger is the process-wide slog logger. Lines go to an optional
// file plus one console sink: stderr normally, or a caller-supplied writer
// while the TUI owns the terminal.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config describes logger settings.
type Config struct {
	Enabled bool
	Level   string
	Stdout  bool
	File    string
}

type state struct {
	cfg     Config
	file    *os.File
	console io.Writer // TUI log panel; nil means stderr when cfg.Stdout
	handler slog.Handler
}

var (
	mu  sync.RWMutex
	cur = state{handler: discard{}}
)

// Init configures the logger. Relative file paths resolve against dir.
// A log file that cannot be opened is reported, and logging continues
// without it.
func Init(cfg Config, dir string) error {
	mu.Lock()
	defer mu.Unlock()

	cur.cfg = cfg
	cur.closeFile()

	var openErr error
	if cfg.Enabled && cfg.File != "" {
		path := expandPath(cfg.File, dir)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			cur.build()
			return fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			openErr = fmt.Errorf("logger: open log file: %w", err)
		} else {
			cur.file = f
		}
	}

	cur.build()
	return openErr
}

// Intercept sends console lines to w in a compact form without timestamps.
// The log file keeps full lines.
func Intercept(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	cur.console = w
	cur.build()
}

// Restore sends console lines back to stderr.
func Restore() {
	mu.Lock()
	defer mu.Unlock()
	cur.console = nil
	cur.build()
}

// Close closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	cur.closeFile()
	cur.build()
}

func (s *state) build() {
	if !s.cfg.Enabled {
		s.handler = discard{}
		return
	}

	level := parseLevel(s.cfg.Level)
	var sinks fanout
	switch {
	case s.console != nil:
		sinks = append(sinks, slog.NewTextHandler(s.console, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: dropTime,
		}))
	case s.cfg.Stdout:
		sinks = append(sinks, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	if s.file != nil {
		sinks = append(sinks, slog.NewTextHandler(s.file, &slog.HandlerOptions{Level: level}))
	}

	switch len(sinks) {
	case 0:
		s.handler = discard{}
	case 1:
		s.handler = sinks[0]
	default:
		s.handler = sinks
	}
}

func (s *state) closeFile() {
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
}

// dropTime strips the top-level timestamp; the panel is read live.
func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

// fanout hands each record to every sink that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

func Debug(msg string, args ...any) { emit(slog.LevelDebug, msg, args...) }
func Info(msg string, args ...any)  { emit(slog.LevelInfo, msg, args...) }
func Warn(msg string, args ...any)  { emit(slog.LevelWarn, msg, args...) }
func Error(msg string, args ...any) { emit(slog.LevelError, msg, args...) }

func emit(level slog.Level, msg string, args ...any) {
	mu.RLock()
	h := cur.handler
	mu.RUnlock()

	ctx := context.Background()
	if !h.Enabled(ctx, level) {
		return
	}
	slog.New(h).Log(ctx, level, msg, args...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// expandPath resolves "~" to the home directory and relative paths
// against dir.
func expandPath(path, dir string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
