package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/openapi"
)

func newFieldsCmd() *cobra.Command {
	var (
		source     string
		operation  string
		format     string
		output     string
		backendKey string
		tableName  string
		list       bool
		validate   bool
		readOnly   bool
		dialog     bool
	)
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Derive a form payload from an OpenAPI operation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("read openapi document: %w", err)
			}

			var opts []openapi.Option
			if validate {
				opts = append(opts, openapi.WithValidation())
			}
			if readOnly {
				opts = append(opts, openapi.WithReadOnly())
			}
			if dialog {
				opts = append(opts, openapi.WithDecorators(model.DecoratorFunc(func(form *model.FormInput) error {
					form.FormButton = true
					return nil
				})))
			}
			if backendKey != "" || tableName != "" {
				opts = append(opts, openapi.WithTarget(backendKey, tableName))
			}

			if list {
				spec, err := openapi.Parse(cmd.Context(), data, opts...)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, ref := range openapi.Operations(spec) {
					fmt.Fprintf(tw, "%s\t%s %s\t%s\n", ref.ID, ref.Method, ref.Path, ref.Summary)
				}
				return tw.Flush()
			}

			if operation == "" {
				return fmt.Errorf("--operation is required unless --list is set")
			}
			payload, err := openapi.FormFromOperation(cmd.Context(), data, operation, opts...)
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "", "json":
				if out, err = json.MarshalIndent(payload, "", "  "); err != nil {
					return err
				}
				out = append(out, '\n')
			case "yaml":
				var buf bytes.Buffer
				enc := yaml.NewEncoder(&buf)
				enc.SetIndent(2)
				if err := enc.Encode(payload); err != nil {
					return err
				}
				if err := enc.Close(); err != nil {
					return err
				}
				out = buf.Bytes()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			return writeOutput(cmd, output, out)
		},
	}
	cmd.Flags().StringVar(&source, "openapi", "", "OpenAPI 3 document, JSON or YAML (required)")
	cmd.Flags().StringVar(&operation, "operation", "", "operationId (or method:path) to derive fields from")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "payload format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&backendKey, "backend-key", "", "data backend key for every field's target column")
	cmd.Flags().StringVar(&tableName, "table", "", "table name for every field's target column")
	cmd.Flags().BoolVar(&list, "list", false, "list operations instead of deriving fields")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the document first")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "keep readOnly properties")
	cmd.Flags().BoolVar(&dialog, "dialog", false, "put the form behind an add button")
	_ = cmd.MarkFlagRequired("openapi")
	return cmd
}
