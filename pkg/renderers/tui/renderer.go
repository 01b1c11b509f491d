package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/render"
	"github.com/goliatone/go-dashwidgets/pkg/table"
	"github.com/goliatone/go-dashwidgets/pkg/widget"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal sessions. Tables render
// as lipgloss tables; forms render as a summary and are filled in through
// CollectForm.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	styles            *lipgloss.Renderer
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.styles == nil {
		r.styles = lipgloss.DefaultRenderer()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the type of RenderTable and RenderForm output.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// RecordContentType reports the serialization format used by Serialize.
func (r *Renderer) RecordContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// RenderTable draws the table most recent row first, as the widget does.
func (r *Renderer) RenderTable(ctx context.Context, view widget.TableView, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	labels := render.ResolveLabels(opts)

	var b strings.Builder
	r.writeHeading(&b, view.Title, view.SubTitle, view.Tokens.TitleColor, view.Tokens.SubtitleColor)

	if view.Empty {
		b.WriteString(labels.NoData)
		b.WriteByte('\n')
		return []byte(b.String()), nil
	}

	headers := make([]string, len(view.Columns))
	for i, column := range view.Columns {
		headers[i] = column.Header
	}
	rows := make([][]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = r.cellText(cell)
		}
		rows = append(rows, cells)
	}

	headerStyle := r.styles.NewStyle().Bold(true).Padding(0, 1)
	if view.HeaderBackground != "" {
		headerStyle = headerStyle.Background(lipgloss.Color(view.HeaderBackground))
	}
	columns := view.Columns
	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			style := r.styles.NewStyle().Padding(0, 1)
			if col < len(columns) {
				style = style.Align(alignment(columns[col].Align))
				if columns[col].Color != "" {
					style = style.Foreground(lipgloss.Color(columns[col].Color))
				}
			}
			return style
		})
	b.WriteString(t.String())
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// RenderForm prints the visible controls with their current values and any
// validation errors.
func (r *Renderer) RenderForm(ctx context.Context, view widget.FormView, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var b strings.Builder
	r.writeHeading(&b, view.Title, view.SubTitle, view.Tokens.TitleColor, view.Tokens.SubtitleColor)

	for _, control := range view.Controls {
		label := displayLabel(control)
		if control.Required {
			label += "*"
		}
		fmt.Fprintf(&b, "%s%s: %s\n", r.theme.PromptPrefix, label, displayValue(control))
		for _, message := range view.ErrorsFor(control.Name) {
			fmt.Fprintf(&b, "  %s%s\n", r.theme.ErrorPrefix, message)
		}
	}
	return []byte(b.String()), nil
}

// CollectForm prompts for every control in order and returns the values the
// way a browser would post them. Each answer is validated as it is typed;
// prefill seeds defaults and errs are shown before their control's prompt.
func (r *Renderer) CollectForm(ctx context.Context, controls []form.Control, prefill url.Values, errs map[string][]string) (url.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	state := NewState(prefill, errs)
	for _, control := range controls {
		for _, message := range state.ErrorsFor(control.Name) {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
				return nil, err
			}
		}
		if err := r.promptControl(ctx, control, state); err != nil {
			return nil, err
		}
	}
	return state.Values(), nil
}

// CollectRecords prompts for every visible field of input and maps the
// answers to submission records through form.MapSubmission, exactly as the
// form widget does for a browser post.
func (r *Renderer) CollectRecords(ctx context.Context, input model.FormInput, opts ...form.SubmissionOption) ([]model.SubmissionRecord, error) {
	controls := form.BuildControls(input)
	values, err := r.CollectForm(ctx, controls, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(controls, values); err != nil {
		return nil, fmt.Errorf("tui: collected values rejected: %w", err)
	}
	return form.MapSubmission(input, values, opts...), nil
}

func (r *Renderer) promptControl(ctx context.Context, control form.Control, state *State) error {
	message := r.theme.PromptPrefix + displayLabel(control)
	current, ok := state.Value(control.Name)
	if !ok {
		current = control.Value
	}

	switch control.Kind {
	case form.ControlCheckbox:
		checked := control.Checked
		if ok {
			checked = current == "on"
		}
		for {
			answer, err := r.driver.Confirm(ctx, ConfirmConfig{
				Message: message,
				Default: checked,
				Help:    control.Description,
			})
			if err != nil {
				return err
			}
			if control.Required && !answer {
				if err := r.driver.Info(ctx, r.theme.ErrorPrefix+form.MessageCheckRequired); err != nil {
					return err
				}
				continue
			}
			if answer {
				state.SetValue(control.Name, "on")
			} else {
				state.SetValue(control.Name, "")
			}
			return nil
		}

	case form.ControlSelect:
		options, values := selectOptions(control)
		defaultIndex := 0
		for i, value := range values {
			if value == current && current != "" {
				defaultIndex = i
			}
		}
		for {
			idx, err := r.driver.Select(ctx, SelectConfig{
				Message:      message,
				Options:      options,
				DefaultIndex: defaultIndex,
				Help:         control.Description,
			})
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(values) {
				return fmt.Errorf("tui: %s: invalid selection %d", displayLabel(control), idx)
			}
			if control.Required && values[idx] == "" {
				if err := r.driver.Info(ctx, r.theme.ErrorPrefix+form.MessageSelect); err != nil {
					return err
				}
				continue
			}
			state.SetValue(control.Name, values[idx])
			return nil
		}

	case form.ControlTextArea:
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message:   message,
			Default:   current,
			Help:      helpText(control),
			Validator: controlValidator(control),
		})
		if err != nil {
			return err
		}
		state.SetValue(control.Name, answer)
		return nil

	default:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   current,
			Help:      helpText(control),
			Validator: controlValidator(control),
		})
		if err != nil {
			return err
		}
		state.SetValue(control.Name, strings.TrimSpace(answer))
		return nil
	}
}

// Serialize encodes records in the configured output format.
func (r *Renderer) Serialize(records []model.SubmissionRecord) ([]byte, error) {
	if r.submitTransformer != nil {
		var err error
		records, err = r.submitTransformer(records)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, record := range records {
			values.Add(recordKey(record), fmt.Sprint(recordValue(record.Value)))
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, record := range records {
			fmt.Fprintf(&b, "%s=%v\n", recordKey(record), recordValue(record.Value))
		}
		return []byte(b.String()), nil
	default:
		if records == nil {
			records = []model.SubmissionRecord{}
		}
		return json.Marshal(records)
	}
}

func controlValidator(control form.Control) func(string) error {
	return func(value string) error {
		err := form.Validate([]form.Control{control}, url.Values{control.Name: {strings.TrimSpace(value)}})
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			return errors.New(strings.Join(verr.Fields[control.Name], " "))
		}
		return err
	}
}

func selectOptions(control form.Control) (labels, values []string) {
	labels = append(labels, "(none)")
	values = append(values, "")
	for _, option := range control.Options {
		label := option.Label
		if label == "" {
			label = option.Value
		}
		labels = append(labels, label)
		values = append(values, option.Value)
	}
	return labels, values
}

func (r *Renderer) writeHeading(b *strings.Builder, title, subtitle, titleColor, subtitleColor string) {
	if title != "" {
		style := r.styles.NewStyle().Bold(true)
		if titleColor != "" {
			style = style.Foreground(lipgloss.Color(titleColor))
		}
		b.WriteString(style.Render(title))
		b.WriteByte('\n')
	}
	if subtitle != "" {
		style := r.styles.NewStyle().Faint(true)
		if subtitleColor != "" {
			style = style.Foreground(lipgloss.Color(subtitleColor))
		}
		b.WriteString(style.Render(subtitle))
		b.WriteByte('\n')
	}
}

func (r *Renderer) cellText(cell table.Cell) string {
	switch c := cell.(type) {
	case table.TextCell:
		return c.Text
	case table.NumberCell:
		return c.Text
	case table.BooleanCell:
		return c.Glyph()
	case table.StateCell:
		if !c.Matched {
			return "○ " + c.State
		}
		swatch := "●"
		if c.Color != "" {
			swatch = r.styles.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(swatch)
		}
		return swatch + " " + c.State
	case table.LinkCell:
		if c.Href == "" {
			return c.Text
		}
		return c.Text + " <" + c.Href + ">"
	case table.ImageCell:
		return "[image] " + c.Src
	default:
		return ""
	}
}

func alignment(align string) lipgloss.Position {
	switch align {
	case table.AlignEnd:
		return lipgloss.Right
	case table.AlignCenter:
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}

func displayLabel(control form.Control) string {
	if control.Label != "" {
		return control.Label
	}
	return control.Name
}

func displayValue(control form.Control) string {
	switch control.Kind {
	case form.ControlCheckbox:
		if control.Checked {
			return table.GlyphTrue
		}
		return table.GlyphFalse
	case form.ControlSelect:
		for _, option := range control.Options {
			if option.Selected {
				if option.Label != "" {
					return option.Label
				}
				return option.Value
			}
		}
		return ""
	default:
		if control.Value == "" && control.Placeholder != "" {
			return "(" + control.Placeholder + ")"
		}
		return control.Value
	}
}

func helpText(control form.Control) string {
	if control.Description != "" {
		return control.Description
	}
	return control.Placeholder
}

func recordKey(record model.SubmissionRecord) string {
	if record.TableName == "" {
		return record.Column
	}
	return record.TableName + "." + record.Column
}

func recordValue(value any) any {
	if value == nil {
		return ""
	}
	return value
}
