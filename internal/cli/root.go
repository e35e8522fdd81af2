// Package cli implements the mirror command-line interface.
// Implements: root command structure, global flags, exit codes and output
// modes for inspecting the registered type graph.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mirror/internal/sample"
	"github.com/mesh-intelligence/mirror/pkg/mirror"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by bad input.
func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

// sysError marks err as an environment or storage failure.
func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// exitCode maps the error returned by the root command to a process exit
// code. Errors not produced by a command, such as flag parse errors, are
// user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitUserError
}

// NewRootCmd creates the top-level "mirror" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "mirror",
		Short: "Inspect types registered with the mirror reflection library",
		Long: "mirror lists registered types, explains conversion paths, reads\n" +
			"values through property paths, and stores snapshots of the type graph.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if f.verbose {
				level = slog.LevelDebug
			}
			mirror.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			if err := sample.Register(); err != nil {
				return sysError("register sample types: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&f.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&f.dataDir, "data-dir", "", "catalog data directory (default: .mirror-db)")
	root.PersistentFlags().BoolVar(&f.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log registry events to stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(f),
		newTypesCmd(f),
		newShowCmd(f),
		newPathCmd(f),
		newGetCmd(f),
		newExportCmd(f),
		newSnapshotsCmd(f),
		newGenCmd(),
	)

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes root with args and reports failures on stderr.
func run(root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "mirror:", err)
	}
	return exitCode(err)
}
