package main

import (
	"fmt"
	"io"
	"log/slog"
)

// outputError writes an error message to w and returns the exit code for it.
func outputError(w io.Writer, err error) int {
	fmt.Fprintf(w, "error: %s\n", err)
	return exitCode(err)
}

// newLogger returns a text logger on w whose level follows the -v count:
// warnings by default, info at -v, debug at -vv and above.
func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
