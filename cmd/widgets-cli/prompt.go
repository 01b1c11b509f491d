package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	dashwidgets "github.com/goliatone/go-dashwidgets"
	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/tui"
)

func newPromptCmd(driver tui.PromptDriver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill a widget interactively",
	}

	var (
		input         string
		output        string
		format        string
		includeHidden bool
	)
	formCmd := &cobra.Command{
		Use:   "form",
		Short: "Prompt for every visible field and print the submission records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := dashwidgets.LoadForm(cmd.Context(), input)
			if err != nil {
				return err
			}

			d := driver
			if d == nil {
				d = tui.NewSurveyDriver(cmd.ErrOrStderr())
			}
			term, err := tui.New(
				tui.WithPromptDriver(d),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
			)
			if err != nil {
				return err
			}

			var opts []form.SubmissionOption
			if includeHidden {
				opts = append(opts, form.WithHiddenFields())
			}
			records, err := term.CollectRecords(cmd.Context(), *payload, opts...)
			if errors.Is(err, tui.ErrAborted) {
				return fmt.Errorf("prompt aborted")
			}
			if err != nil {
				return err
			}

			data, err := term.Serialize(records)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, output, data); err != nil {
				return err
			}
			if output == "" {
				ensureNewline(cmd.OutOrStdout(), data)
			}
			return nil
		},
	}
	formCmd.Flags().StringVarP(&input, "input", "i", "", "JSON or YAML form payload (required)")
	formCmd.Flags().StringVarP(&format, "format", "f", string(tui.OutputFormatJSON), "record format: json, form or pretty")
	formCmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	formCmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "emit records for hidden fields")
	_ = formCmd.MarkFlagRequired("input")

	cmd.AddCommand(formCmd)
	return cmd
}
