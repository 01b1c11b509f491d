package widget

import (
	"errors"
	"net/url"

	"github.com/goliatone/go-dashwidgets/pkg/dialog"
	"github.com/goliatone/go-dashwidgets/pkg/events"
	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/styling"
)

// FormOption configures a FormRenderer.
type FormOption func(*FormRenderer)

// WithFormVersion sets the version suffix of the element tag.
func WithFormVersion(version string) FormOption {
	return func(f *FormRenderer) {
		f.version = version
	}
}

// WithSubmissionOptions forwards options to form.MapSubmission, for example
// form.WithHiddenFields.
func WithSubmissionOptions(opts ...form.SubmissionOption) FormOption {
	return func(f *FormRenderer) {
		f.submitOpts = append(f.submitOpts, opts...)
	}
}

// WithFormUpdate registers the render callback run after every update cycle.
func WithFormUpdate(fn func(*FormRenderer)) FormOption {
	return func(f *FormRenderer) {
		f.onUpdate = fn
	}
}

// WithFormStyleResolver sets the ambient style environment.
func WithFormStyleResolver(resolver styling.StyleResolver) FormOption {
	return func(f *FormRenderer) {
		f.resolver = resolver
	}
}

// FormRenderer renders a schema-driven data-entry form, inline or behind an
// add button, and emits data-submit events. It is not safe for concurrent
// use.
type FormRenderer struct {
	events.Target

	version    string
	input      Property[model.FormInput]
	theme      Property[model.Theme]
	resolver   styling.StyleResolver
	submitOpts []form.SubmissionOption
	onUpdate   func(*FormRenderer)

	tokens   styling.Tokens
	controls []form.Control
	values   url.Values
	errors   map[string][]string
	dialog   *dialog.Dialog
}

// NewFormRenderer constructs a form renderer with no input.
func NewFormRenderer(opts ...FormOption) *FormRenderer {
	f := &FormRenderer{}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.dialog = dialog.New(dialog.WithResetHook(f.resetValues))
	f.tokens = styling.Resolve(f.resolver, nil)
	return f
}

// Tag returns the element's versioned tag name.
func (f *FormRenderer) Tag() string {
	return TagName(ElementFormRenderer, f.version)
}

// SetInputData replaces the input. Controls are rebuilt only on reference
// change.
func (f *FormRenderer) SetInputData(input *model.FormInput) {
	if !f.input.Set(input) {
		return
	}
	f.controls = nil
	if input != nil {
		f.controls = form.BuildControls(*input)
	}
	f.update()
}

// InputData returns the current input reference.
func (f *FormRenderer) InputData() *model.FormInput {
	return f.input.Get()
}

// SetTheme replaces the theme. Tokens are recomputed on reference change.
func (f *FormRenderer) SetTheme(theme *model.Theme) {
	if !f.theme.Set(theme) {
		return
	}
	f.tokens = styling.Resolve(f.resolver, theme)
	f.update()
}

// SetStyleResolver replaces the ambient style environment.
func (f *FormRenderer) SetStyleResolver(resolver styling.StyleResolver) {
	f.resolver = resolver
	f.tokens = styling.Resolve(resolver, f.theme.Get())
	f.update()
}

// Tokens returns the resolved theme tokens.
func (f *FormRenderer) Tokens() styling.Tokens {
	return f.tokens
}

// DialogMode reports whether the form is reached through an add button.
func (f *FormRenderer) DialogMode() bool {
	input := f.input.Get()
	return input != nil && input.FormButton
}

// DialogOpen reports whether the form dialog is open.
func (f *FormRenderer) DialogOpen() bool {
	return f.dialog.IsOpen()
}

// Dialog exposes the dialog for key and cancel-gesture handling.
func (f *FormRenderer) Dialog() *dialog.Dialog {
	return f.dialog
}

// OpenForm opens the dialog in dialog mode. Inline forms are always shown.
func (f *FormRenderer) OpenForm() {
	if !f.DialogMode() {
		return
	}
	f.dialog.Open()
	f.update()
}

// SetFormValue records a value entered into the form.
func (f *FormRenderer) SetFormValue(name, value string) {
	if f.values == nil {
		f.values = url.Values{}
	}
	f.values.Set(name, value)
}

// FormValues returns the entered values.
func (f *FormRenderer) FormValues() url.Values {
	return f.values
}

// ResetForm clears the entered values and closes the dialog. Both the inline
// Reset button and the dialog Cancel button end up here.
func (f *FormRenderer) ResetForm() {
	f.values = nil
	f.errors = nil
	f.dialog.Close()
	f.update()
}

// SubmitValues replaces the entered values with values and submits.
func (f *FormRenderer) SubmitValues(values url.Values) ([]model.SubmissionRecord, error) {
	f.values = cloneValues(values)
	return f.SubmitForm()
}

// SubmitForm validates the entered values against the controls' native
// constraints. On failure nothing is emitted, the values are kept and a
// *form.ValidationError is returned. On success a data-submit event carries
// the mapped records, the form is cleared and the dialog closes whatever the
// listener does with the data.
func (f *FormRenderer) SubmitForm() ([]model.SubmissionRecord, error) {
	input := f.input.Get()
	if input == nil {
		return nil, errors.New("widget: form has no input data")
	}
	if f.DialogMode() && !f.dialog.IsOpen() {
		return nil, ErrDialogClosed
	}

	if err := form.Validate(f.controls, f.values); err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			f.errors = verr.Fields
		}
		f.update()
		return nil, err
	}

	records := form.MapSubmission(*input, f.values, f.submitOpts...)
	f.DispatchEvent(events.DataSubmit(records))
	f.errors = nil
	f.dialog.Submit()
	f.values = nil
	f.update()
	return records, nil
}

// View builds the render model for the current state.
func (f *FormRenderer) View() FormView {
	view := FormView{
		Tag:         f.Tag(),
		Tokens:      f.tokens,
		DialogMode:  f.DialogMode(),
		DialogOpen:  f.dialog.IsOpen(),
		DialogTitle: DefaultDialogTitle,
		AccentColor: f.tokens.Accent(DefaultFormAccent),
		Controls:    form.Fill(f.controls, f.values),
		Errors:      f.errors,
	}
	if input := f.input.Get(); input != nil {
		view.Title = input.Title
		view.SubTitle = input.SubTitle
		if input.Title != "" {
			view.DialogTitle = input.Title
		}
	}
	return view
}

func (f *FormRenderer) resetValues() {
	f.values = nil
}

func (f *FormRenderer) update() {
	if f.onUpdate != nil {
		f.onUpdate(f)
	}
}
