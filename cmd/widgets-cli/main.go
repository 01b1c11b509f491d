package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dashwidgets/pkg/renderers/tui"
)

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. driver answers the prompt command;
// nil means the interactive survey driver.
func newRootCmd(driver tui.PromptDriver) *cobra.Command {
	root := &cobra.Command{
		Use:   "widgets-cli",
		Short: "Render and fill dashboard widgets from the terminal",
		Long: `widgets-cli renders table editor and form widgets from JSON or YAML
payloads, fills forms interactively, and derives form payloads from OpenAPI
operations.

Examples:
  widgets-cli render table --input orders.yaml --format text
  widgets-cli render form --input signup.json --theme theme.json > form.html
  widgets-cli prompt form --input signup.json --format pretty
  widgets-cli fields --openapi petstore.yaml --operation createPet`,
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newPromptCmd(driver), newFieldsCmd())
	return root
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "written to %s\n", path)
	return nil
}

func ensureNewline(w io.Writer, data []byte) {
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(w)
	}
}
