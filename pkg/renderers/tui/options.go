package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/goliatone/go-dashwidgets/pkg/model"
)

// OutputFormat controls how submission records are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits a JSON array of records.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits table.column=value pairs.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one table.column=value line per record.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints applied when printing messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// SubmitTransformer mutates records before serialization.
type SubmitTransformer func([]model.SubmissionRecord) ([]model.SubmissionRecord, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the record serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate records prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithColorProfile forces the color profile used for table and heading
// styles instead of detecting it from stdout, e.g. termenv.TrueColor when the
// output is piped to a pager that understands escape codes.
func WithColorProfile(profile termenv.Profile) Option {
	return func(r *Renderer) {
		styles := lipgloss.NewRenderer(io.Discard)
		styles.SetColorProfile(profile)
		r.styles = styles
	}
}
