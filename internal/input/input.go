// Package input decides whether a value argument names a file to read or is
// itself the literal value.
//
// The decision is made by path existence alone, so a literal value that
// happens to match an existing file name is read as that file. Set
// Options.Literal to skip the filesystem check.
package input

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"
)

// ErrIO is returned when the argument names a file that cannot be read.
var ErrIO = errors.New("reading value file")

// Source says where resolved bytes came from.
type Source int

const (
	SourceLiteral Source = iota
	SourceFile
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	default:
		return "literal"
	}
}

// Options controls resolution.
type Options struct {
	Literal bool         // Use the argument as-is without looking for a file
	Logger  *slog.Logger // Optional; nil discards
}

// Resolve returns the raw bytes for a value argument.
func Resolve(arg string, opts Options) ([]byte, error) {
	b, _, err := ResolveSource(arg, opts)
	return b, err
}

// ResolveSource is Resolve, also reporting which interpretation was used.
func ResolveSource(arg string, opts Options) ([]byte, Source, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if opts.Literal {
		logger.Debug("using value as literal", "reason", "forced")
		return []byte(arg), SourceLiteral, nil
	}

	info, err := os.Stat(arg)
	if err != nil {
		if noFileAt(err) {
			logger.Debug("using value as literal", "reason", "no such file", "error", err)
			return []byte(arg), SourceLiteral, nil
		}
		return nil, SourceFile, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if !info.Mode().IsRegular() {
		logger.Debug("using value as literal", "reason", "not a regular file", "mode", info.Mode().String())
		return []byte(arg), SourceLiteral, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, SourceFile, fmt.Errorf("%w: %v", ErrIO, err)
	}
	logger.Debug("read value from file", "path", arg, "bytes", len(data))
	return data, SourceFile, nil
}

// noFileAt reports whether a stat error means nothing can exist at the path:
// it is missing, too long to be a file name, or goes through a non-directory.
func noFileAt(err error) bool {
	return errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, syscall.ENAMETOOLONG) ||
		errors.Is(err, syscall.ENOTDIR)
}
