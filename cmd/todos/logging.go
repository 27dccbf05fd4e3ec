// Logging setup for the todos CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// levelFlag is a pflag.Value holding a slog level.
type levelFlag struct {
	level slog.Level
}

var _ pflag.Value = (*levelFlag)(nil)

func (f *levelFlag) String() string { return strings.ToLower(f.level.String()) }

func (f *levelFlag) Set(value string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return fmt.Errorf("invalid log level %q (want debug, info, warn, or error)", value)
	}
	f.level = level
	return nil
}

func (f *levelFlag) Type() string { return "level" }

// newLogger returns a text logger when w is a terminal and a JSON logger
// otherwise, so piped output stays machine-readable.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

// openLogFile opens path for appending and returns a logger writing JSON
// records to it. The TUI owns the terminal, so it only logs this way.
func openLogFile(path string, level slog.Level) (*slog.Logger, func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), file.Close, nil
}
