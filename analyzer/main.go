// Command formatlint reports malformed composite format templates in Go
// source, validates single templates, and serves the validator over HTTP.
package main

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes.
const (
	exitSuccess  = 0
	exitFindings = 1
	exitError    = 2
)

// errFindings signals a run that completed but found problems.
var errFindings = errors.New("findings reported")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// main is the CLI entry point for the format linter.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errFindings):
		return exitFindings
	default:
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "formatlint",
		Short:         "Check composite format templates such as \"{0,-10}: {1:F2}\"",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(newCheckCmd(), newValidateCmd(), newServeCmd())
	return root
}

// setupLogger installs the global zap logger used by every package.
func setupLogger(debug bool) error {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// encodeJSON serializes output as JSON and writes it to w.
//
// If compress is true, the output is gzip-compressed.
func encodeJSON(w io.Writer, output any, compress bool) error {
	if compress {
		return writeGzipJSON(w, output)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "") // disable indent (reduces size by > 2x)

	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeGzipJSON writes gzip-compressed JSON to w.
func writeGzipJSON(w io.Writer, output any) error {
	gzWriter := gzip.NewWriter(w)
	defer gzWriter.Close()

	enc := json.NewEncoder(gzWriter)
	enc.SetIndent("", "")

	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}

// absPath resolves path to an absolute path, since relative paths would
// invalidate the relative file names in findings.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("could not resolve absolute path for %s: %w", path, err)
	}
	return abs, nil
}
