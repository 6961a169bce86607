package main

import (
	"errors"

	"github.com/matsen/mappy/internal/codec"
	"github.com/matsen/mappy/internal/config"
	"github.com/matsen/mappy/internal/storage"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitNotFound    = 1 // Key has no stored value
	ExitError       = 2 // Storage or I/O failure, anything unclassified
	ExitConfigError = 3 // Config directory unavailable or config.yml invalid
	ExitDataError   = 4 // Bad arguments, empty key, corrupt or non-text stored value
)

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	var uerr usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, storage.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, config.ErrConfigDirUnavailable), errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, codec.ErrEncoding), errors.Is(err, codec.ErrNotUTF8),
		errors.Is(err, storage.ErrEmptyKey), errors.As(err, &uerr):
		return ExitDataError
	default:
		return ExitError
	}
}
