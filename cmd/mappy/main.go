// Package main provides the mappy CLI entry point.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// rootOptions holds the flags for one invocation.
type rootOptions struct {
	Verbosity int
	Literal   bool
	Raw       bool
	DBPath    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit code. It is the only
// place errors are turned into exit codes, so deferred cleanup in commands
// always runs.
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{} // cobra falls back to os.Args on nil
	}

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		return outputError(stderr, err)
	}
	return ExitSuccess
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mappy [flags] <key> [<value>]",
		Short: "Stash values under a key and get them back",
		Long: `mappy is a small persistent key-value store.

  mappy <key>           print the value stored under <key>
  mappy <key> <value>   store <value> under <key>, replacing any old value

If <value> is the path of an existing regular file, the file's contents are
stored instead of the path itself. This means a literal value that happens
to match a file name is read as that file; pass --literal to store the
argument text as-is.

Values are printed exactly as stored, with no trailing newline added.

The database lives at <config-dir>/mappy/maps.db. Override it with --db,
the MAPPY_DB environment variable (also read from .env), or db_path in
<config-dir>/mappy/config.yml.

Exit codes: 0 success, 1 key not found, 2 storage or I/O error,
3 config error, 4 invalid input or stored data.`,
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMappy(cmd, opts, args)
		},
	}

	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase diagnostic output (repeatable)")
	cmd.Flags().BoolVarP(&opts.Literal, "literal", "l", false, "Store <value> as text even if it names a file")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Print the stored bytes without checking they are UTF-8 text")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "Database file to use instead of the default")
	cmd.Version = Version

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	return cmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 2 {
		return usageError{fmt.Errorf("accepts at most 2 arg(s), received %d", len(args))}
	}
	return nil
}
