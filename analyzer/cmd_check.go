package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abiiranathan/go-format-lint/analyzer/ast"
	"github.com/abiiranathan/go-format-lint/analyzer/config"
)

type checkOptions struct {
	configPath string
	compress   bool
	text       bool
	severity   string
	workers    int
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Analyze the Go packages under dir (default \".\")",
		Long: `Analyze the Go packages under dir and report every call to a tracked
formatting function whose constant template is malformed or does not match
its arguments.

Exits with status 1 when findings are reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runCheck(cmd, dir, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "Output gzip-compressed JSON")
	cmd.Flags().BoolVar(&opts.text, "text", false, "Output one line per finding instead of JSON")
	cmd.Flags().StringVar(&opts.severity, "severity", "", "Override the lowest reported severity (bug or code_smell)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Override the number of concurrent file workers")
	cmd.MarkFlagsMutuallyExclusive("compress", "text")

	return cmd
}

func runCheck(cmd *cobra.Command, dir string, opts checkOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.severity != "" {
		cfg.MinSeverity = opts.severity
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	absDir, err := absPath(dir)
	if err != nil {
		return err
	}

	result := ast.AnalyzeDir(absDir, cfg)

	out := cmd.OutOrStdout()
	if opts.text {
		writeText(out, result)
	} else if err := encodeJSON(out, result, opts.compress); err != nil {
		return err
	}

	if len(result.Findings) > 0 {
		return errFindings
	}
	return nil
}

// writeText prints findings in the file:line:col form editors understand.
func writeText(w io.Writer, result ast.AnalysisResult) {
	for _, f := range result.Findings {
		fmt.Fprintf(w, "%s:%d:%d: %s [%s, %s]\n", f.File, f.Line, f.Column, f.Message, f.Kind, f.Severity)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(w, "error: %s\n", e)
	}
	fmt.Fprintf(w, "%d finding(s) in %d call(s), %d skipped\n", len(result.Findings), result.Calls, result.Skipped)
}
