package widget

import (
	"errors"
	"net/url"

	"github.com/goliatone/go-dashwidgets/pkg/dialog"
	"github.com/goliatone/go-dashwidgets/pkg/events"
	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/styling"
	"github.com/goliatone/go-dashwidgets/pkg/table"
)

// DefaultDialogTitle heads the data-entry dialog when no title is set.
const DefaultDialogTitle = "Data Entry"

// ErrDialogClosed is returned when a dialog-bound form is submitted while its
// dialog is not open.
var ErrDialogClosed = errors.New("widget: form dialog is not open")

// TableOption configures a TableEditor.
type TableOption func(*TableEditor)

// WithTableVersion sets the version suffix of the element tag.
func WithTableVersion(version string) TableOption {
	return func(t *TableEditor) {
		t.version = version
	}
}

// WithFormLoader registers the lazy loader fired the first time the add-record
// dialog opens, typically warming form control templates.
func WithFormLoader(fn func()) TableOption {
	return func(t *TableEditor) {
		t.loader = fn
	}
}

// WithTableUpdate registers the render callback run after every update
// cycle, once derived state is current.
func WithTableUpdate(fn func(*TableEditor)) TableOption {
	return func(t *TableEditor) {
		t.onUpdate = fn
	}
}

// WithTableStyleResolver sets the ambient style environment.
func WithTableStyleResolver(resolver styling.StyleResolver) TableOption {
	return func(t *TableEditor) {
		t.resolver = resolver
	}
}

// TableEditor displays column-oriented data as rows and offers a dialog to
// add a record. It is not safe for concurrent use.
type TableEditor struct {
	events.Target

	version  string
	input    Property[model.TableInput]
	theme    Property[model.Theme]
	resolver styling.StyleResolver
	loader   func()
	onUpdate func(*TableEditor)

	rows     []model.Row
	tokens   styling.Tokens
	controls []form.Control
	values   url.Values
	dialog   *dialog.Dialog

	transposeCount int
}

// NewTableEditor constructs a table editor with no input.
func NewTableEditor(opts ...TableOption) *TableEditor {
	t := &TableEditor{}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	t.dialog = dialog.New(
		dialog.WithLoader(t.load),
		dialog.WithResetHook(t.resetValues),
	)
	t.tokens = styling.Resolve(t.resolver, nil)
	return t
}

func (t *TableEditor) load() {
	if t.loader != nil {
		t.loader()
	}
}

// Tag returns the element's versioned tag name.
func (t *TableEditor) Tag() string {
	return TagName(ElementTableEditor, t.version)
}

// SetInputData replaces the input. Rows are recomputed only when input is a
// different reference from the current one.
func (t *TableEditor) SetInputData(input *model.TableInput) {
	if !t.input.Set(input) {
		return
	}
	t.rows = nil
	t.controls = nil
	if input != nil {
		t.rows = table.Transpose(input.Columns)
		t.controls = table.FormControls(input.Columns)
	}
	t.transposeCount++
	t.update()
}

// InputData returns the current input reference.
func (t *TableEditor) InputData() *model.TableInput {
	return t.input.Get()
}

// SetTheme replaces the theme. Tokens are recomputed on reference change.
func (t *TableEditor) SetTheme(theme *model.Theme) {
	if !t.theme.Set(theme) {
		return
	}
	t.tokens = styling.Resolve(t.resolver, theme)
	t.update()
}

// SetStyleResolver replaces the ambient style environment and recomputes
// tokens.
func (t *TableEditor) SetStyleResolver(resolver styling.StyleResolver) {
	t.resolver = resolver
	t.tokens = styling.Resolve(resolver, t.theme.Get())
	t.update()
}

// Rows returns the derived rows in data order.
func (t *TableEditor) Rows() []model.Row {
	return t.rows
}

// TransposeCount reports how many times rows were derived.
func (t *TableEditor) TransposeCount() int {
	return t.transposeCount
}

// Tokens returns the resolved theme tokens.
func (t *TableEditor) Tokens() styling.Tokens {
	return t.tokens
}

// DialogOpen reports whether the add-record dialog is open.
func (t *TableEditor) DialogOpen() bool {
	return t.dialog.IsOpen()
}

// Dialog exposes the dialog for key and cancel-gesture handling.
func (t *TableEditor) Dialog() *dialog.Dialog {
	return t.dialog
}

// OpenForm opens the add-record dialog.
func (t *TableEditor) OpenForm() {
	t.dialog.Open()
	t.update()
}

// CancelForm closes the dialog and discards the unsubmitted values.
func (t *TableEditor) CancelForm() {
	t.dialog.Cancel()
	t.resetValues()
	t.update()
}

// SetFormValue records a value typed into the add-record form.
func (t *TableEditor) SetFormValue(name, value string) {
	if t.values == nil {
		t.values = url.Values{}
	}
	t.values.Set(name, value)
}

// FormValues returns the entered values.
func (t *TableEditor) FormValues() url.Values {
	return t.values
}

// SubmitValues replaces the entered values with values and submits.
func (t *TableEditor) SubmitValues(values url.Values) error {
	if !t.dialog.IsOpen() {
		return ErrDialogClosed
	}
	t.values = cloneValues(values)
	return t.SubmitForm()
}

// SubmitForm emits an action-submit event carrying the raw entered values,
// clears the form and closes the dialog.
func (t *TableEditor) SubmitForm() error {
	if !t.dialog.IsOpen() {
		return ErrDialogClosed
	}
	detail := make(map[string]string, len(t.values))
	for name, vs := range t.values {
		if len(vs) > 0 {
			detail[name] = vs[0]
		}
	}
	t.DispatchEvent(events.ActionSubmit(detail))
	t.dialog.Submit()
	t.update()
	return nil
}

// View builds the render model for the current state.
func (t *TableEditor) View() TableView {
	view := TableView{
		Tag:         t.Tag(),
		Tokens:      t.tokens,
		DialogOpen:  t.dialog.IsOpen(),
		DialogTitle: DefaultDialogTitle,
		AccentColor: t.tokens.Accent(""),
		RowBorder:   table.DefaultRowBorder,
	}
	input := t.input.Get()
	if input == nil {
		view.Empty = true
		return view
	}

	view.Title = input.Title
	view.SubTitle = input.SubTitle
	if input.FormTitle != "" {
		view.DialogTitle = input.FormTitle
	}
	view.HeaderFontSize = input.Styling.HeaderFontSize
	view.HeaderBackground = input.Styling.HeaderBackground
	view.RowBorder = table.RowBorder(input.Styling)
	view.Columns = table.ResolveColumnStyles(*input, t.tokens.SubtitleColor)
	view.Controls = form.Fill(t.controls, t.values)

	for _, row := range table.DisplayOrder(t.rows) {
		view.Rows = append(view.Rows, table.RenderRow(row, input.Columns))
	}
	view.Empty = len(view.Rows) == 0
	return view
}

func (t *TableEditor) resetValues() {
	t.values = nil
}

func (t *TableEditor) update() {
	if t.onUpdate != nil {
		t.onUpdate(t)
	}
}

func cloneValues(values url.Values) url.Values {
	if values == nil {
		return nil
	}
	out := make(url.Values, len(values))
	for key, vs := range values {
		out[key] = append([]string(nil), vs...)
	}
	return out
}
