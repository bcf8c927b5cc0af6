package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abiiranathan/go-format-lint/analyzer/validator"
)

func newValidateCmd() *cobra.Command {
	var (
		arraySize int
		operation string
	)

	cmd := &cobra.Command{
		Use:   "validate TEMPLATE [ARG...]",
		Short: "Validate one template against argument labels",
		Example: `  formatlint validate "{0} of {1}" page total
  formatlint validate "{0}{1}" --array 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template := args[0]

			var formatArgs []validator.FormatArgument
			if cmd.Flags().Changed("array") {
				label := strings.Join(args[1:], ", ")
				if label == "" {
					label = "args"
				}
				formatArgs = []validator.FormatArgument{validator.ArrayArg(label, arraySize)}
			} else {
				for _, label := range args[1:] {
					formatArgs = append(formatArgs, validator.Arg(label))
				}
			}

			failure := validator.ValidateFormatCall(&template, formatArgs)
			out := cmd.OutOrStdout()
			if failure == nil {
				fmt.Fprintln(out, "valid")
				return nil
			}

			fmt.Fprintf(out, "%s [%s, %s]\n", failure.Message(), failure.Kind, validator.Classify(failure.Kind))
			if !validator.ShouldReport(failure, operation) {
				return nil
			}
			return errFindings
		},
	}

	cmd.Flags().IntVar(&arraySize, "array", validator.UnknownArraySize,
		"Pass the arguments as one array of this size (-1 for unknown)")
	cmd.Flags().StringVar(&operation, "operation", "Format",
		"Name of the formatting operation, used to decide whether trivial templates are reported")

	return cmd
}
