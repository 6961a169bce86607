package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/matsen/mappy/internal/codec"
	"github.com/matsen/mappy/internal/config"
	"github.com/matsen/mappy/internal/input"
	"github.com/matsen/mappy/internal/storage"
	"github.com/spf13/cobra"
)

func runMappy(cmd *cobra.Command, opts *rootOptions, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbosity)

	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	dbPath, err := config.ResolveDBPath(opts.DBPath)
	if err != nil {
		return fmt.Errorf("resolving database path: %w", err)
	}
	if err := config.EnsureDir(dbPath); err != nil {
		return err
	}

	db, err := storage.OpenDB(dbPath, storage.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("error closing database", "error", cerr)
		}
	}()
	logger.Info("database ready", "path", db.Path())

	key := args[0]
	if len(args) == 1 {
		return lookupValue(cmd.OutOrStdout(), db, key, opts.Raw)
	}
	return storeValue(db, key, args[1], input.Options{Literal: opts.Literal, Logger: logger}, logger)
}

// storeValue resolves arg to bytes, encodes them and upserts them under key.
func storeValue(db *storage.DB, key, arg string, inOpts input.Options, logger *slog.Logger) error {
	if key == "" {
		return storage.ErrEmptyKey
	}

	raw, src, err := input.ResolveSource(arg, inOpts)
	if err != nil {
		return err
	}

	if err := db.Upsert(key, codec.Encode(raw)); err != nil {
		return err
	}
	logger.Info("stored value", "key", key, "source", src.String(), "bytes", len(raw))
	return nil
}

// lookupValue writes the value stored under key to w. Unless raw is set the
// value must be UTF-8 text.
func lookupValue(w io.Writer, db *storage.DB, key string, raw bool) error {
	encoded, err := db.Lookup(key)
	if err != nil {
		return err
	}

	if raw {
		b, err := codec.Decode(encoded)
		if err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}
		_, err = w.Write(b)
		return err
	}

	text, err := codec.DecodeText(encoded)
	if err != nil {
		return fmt.Errorf("decoding %q: %w", key, err)
	}
	_, err = io.WriteString(w, text)
	return err
}
