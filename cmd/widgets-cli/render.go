package main

import (
	"fmt"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	dashwidgets "github.com/goliatone/go-dashwidgets"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/tui"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/vanilla"
	"github.com/goliatone/go-dashwidgets/pkg/styling"
	"github.com/goliatone/go-dashwidgets/pkg/widget"
)

type renderFlags struct {
	input    string
	format   string
	theme    string
	manifest string
	variant  string
	output   string
	open     bool
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a widget as HTML or terminal text",
	}
	cmd.AddCommand(newRenderTableCmd(), newRenderFormCmd())
	return cmd
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "JSON or YAML payload (required)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "html", "output format: html or text")
	cmd.Flags().StringVar(&f.theme, "theme", "", "JSON or YAML theme file")
	cmd.Flags().StringVar(&f.manifest, "theme-manifest", "", "go-theme manifest supplying style tokens")
	cmd.Flags().StringVar(&f.variant, "theme-variant", "", "manifest variant")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&f.open, "open", false, "render with the data-entry dialog open")
	_ = cmd.MarkFlagRequired("input")
}

func (f *renderFlags) rendererName() (string, error) {
	switch f.format {
	case "", "html":
		return vanilla.Name, nil
	case "text":
		return tui.Name, nil
	default:
		return "", fmt.Errorf("unknown format %q (want html or text)", f.format)
	}
}

func (f *renderFlags) loadTheme(cmd *cobra.Command) (*model.Theme, error) {
	if f.theme == "" {
		return nil, nil
	}
	return dashwidgets.LoadTheme(cmd.Context(), f.theme)
}

// selectTheme resolves the manifest flags into the renderer configuration
// and the ambient style environment. Both are nil without --theme-manifest.
func (f *renderFlags) selectTheme() (*theme.RendererConfig, styling.StyleResolver, error) {
	if f.manifest == "" {
		return nil, nil, nil
	}
	catalog := styling.NewCatalog("", f.variant)
	manifest, err := catalog.LoadFile(f.manifest)
	if err != nil {
		return nil, nil, err
	}
	selection, err := catalog.Select(manifest.Name, f.variant)
	if err != nil {
		return nil, nil, err
	}
	return styling.RendererConfig(selection), styling.NewSelectionResolver(selection), nil
}

func newRenderTableCmd() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Render a table editor payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := flags.rendererName()
			if err != nil {
				return err
			}
			input, err := dashwidgets.LoadTable(cmd.Context(), flags.input)
			if err != nil {
				return err
			}
			themeObject, err := flags.loadTheme(cmd)
			if err != nil {
				return err
			}
			themeConfig, resolver, err := flags.selectTheme()
			if err != nil {
				return err
			}
			renderers, err := dashwidgets.NewRenderers(nil, nil)
			if err != nil {
				return err
			}

			editor := renderers.NewTableEditor(func(err error) {
				fmt.Fprintf(cmd.ErrOrStderr(), "preload templates: %v\n", err)
			}, widget.WithTableStyleResolver(resolver))
			editor.SetTheme(themeObject)
			editor.SetInputData(input)
			if flags.open {
				editor.OpenForm()
			}

			out, err := renderers.RenderTable(cmd.Context(), name, editor, dashwidgets.RenderOptions{Theme: themeConfig})
			if err != nil {
				return err
			}
			return writeOutput(cmd, flags.output, out)
		},
	}
	flags.bind(cmd)
	return cmd
}

func newRenderFormCmd() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Render a form payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := flags.rendererName()
			if err != nil {
				return err
			}
			input, err := dashwidgets.LoadForm(cmd.Context(), flags.input)
			if err != nil {
				return err
			}
			themeObject, err := flags.loadTheme(cmd)
			if err != nil {
				return err
			}
			themeConfig, resolver, err := flags.selectTheme()
			if err != nil {
				return err
			}
			renderers, err := dashwidgets.NewRenderers(nil, nil)
			if err != nil {
				return err
			}

			form := widget.NewFormRenderer(widget.WithFormStyleResolver(resolver))
			form.SetTheme(themeObject)
			form.SetInputData(input)
			if flags.open {
				form.OpenForm()
			}

			out, err := renderers.RenderForm(cmd.Context(), name, form, dashwidgets.RenderOptions{Theme: themeConfig})
			if err != nil {
				return err
			}
			return writeOutput(cmd, flags.output, out)
		},
	}
	flags.bind(cmd)
	return cmd
}
