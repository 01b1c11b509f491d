package widget_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dashwidgets/pkg/events"
	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/styling"
	"github.com/goliatone/go-dashwidgets/pkg/table"
	"github.com/goliatone/go-dashwidgets/pkg/widget"
)

func tableInput() *model.TableInput {
	return &model.TableInput{
		Title: "Orders",
		Columns: []model.ColumnSchema{
			{Header: "Item", Type: model.ColumnTypeString, ShowInForm: true, Values: []model.CellValue{{Value: "a"}, {Value: "b"}, {Value: "c"}}},
			{Header: "Qty", Type: model.ColumnTypeNumber, Values: []model.CellValue{{Value: 1}, {Value: 2}, {Value: 3}}},
		},
	}
}

func TestProperty_IdentityTracking(t *testing.T) {
	var p widget.Property[model.TableInput]
	input := tableInput()
	if !p.Set(input) {
		t.Fatalf("expected first set to report change")
	}
	input.Title = "mutated"
	if p.Set(input) {
		t.Fatalf("same reference must not report change")
	}
	if !p.Set(tableInput()) {
		t.Fatalf("new reference must report change")
	}
	if p.Version() != 2 {
		t.Fatalf("Version() = %d, want 2", p.Version())
	}
}

func TestTableEditor_RecomputesOnlyOnNewReference(t *testing.T) {
	updates := 0
	editor := widget.NewTableEditor(widget.WithTableUpdate(func(*widget.TableEditor) { updates++ }))

	input := tableInput()
	editor.SetInputData(input)
	input.Columns[0].Values = append(input.Columns[0].Values, model.CellValue{Value: "d"})
	editor.SetInputData(input)

	if editor.TransposeCount() != 1 {
		t.Fatalf("TransposeCount() = %d, want 1", editor.TransposeCount())
	}
	if len(editor.Rows()) != 3 {
		t.Fatalf("in-place mutation should not be observed, got %d rows", len(editor.Rows()))
	}

	editor.SetInputData(tableInput())
	if editor.TransposeCount() != 2 {
		t.Fatalf("TransposeCount() = %d, want 2", editor.TransposeCount())
	}
	if updates != 2 {
		t.Fatalf("updates = %d, want 2", updates)
	}
}

func TestTableEditor_ViewOrderStableAcrossRenders(t *testing.T) {
	editor := widget.NewTableEditor()
	editor.SetInputData(tableInput())

	first := editor.View()
	second := editor.View()

	want := [][]table.Cell{
		{table.TextCell{Text: "c"}, table.NumberCell{Text: "3"}},
		{table.TextCell{Text: "b"}, table.NumberCell{Text: "2"}},
		{table.TextCell{Text: "a"}, table.NumberCell{Text: "1"}},
	}
	if diff := cmp.Diff(want, first.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first.Rows, second.Rows); diff != "" {
		t.Fatalf("row order drifted (-first +second):\n%s", diff)
	}
	if first.Empty {
		t.Fatalf("expected non-empty view")
	}
	if first.DialogTitle != widget.DefaultDialogTitle {
		t.Fatalf("DialogTitle = %q", first.DialogTitle)
	}
}

func TestTableEditor_EmptyInput(t *testing.T) {
	editor := widget.NewTableEditor()
	if !editor.View().Empty {
		t.Fatalf("expected empty view without input")
	}
	editor.SetInputData(&model.TableInput{Columns: []model.ColumnSchema{{Header: "a"}}})
	if !editor.View().Empty {
		t.Fatalf("expected empty view without values")
	}
}

func TestTableEditor_SubmitEmitsAndCloses(t *testing.T) {
	loads := 0
	editor := widget.NewTableEditor(widget.WithFormLoader(func() { loads++ }))
	editor.SetInputData(tableInput())

	var got []events.Event
	editor.AddEventListener(events.TypeActionSubmit, func(e events.Event) { got = append(got, e) })

	if err := editor.SubmitForm(); !errors.Is(err, widget.ErrDialogClosed) {
		t.Fatalf("expected ErrDialogClosed, got %v", err)
	}

	editor.OpenForm()
	editor.CancelForm()
	editor.OpenForm()
	if loads != 1 {
		t.Fatalf("loader ran %d times, want 1", loads)
	}
	editor.SetFormValue("Item", "z")
	if err := editor.SubmitForm(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := []events.Event{{Type: events.TypeActionSubmit, Detail: map[string]string{"Item": "z"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if editor.DialogOpen() {
		t.Fatalf("dialog should be closed after submit")
	}
	if len(editor.FormValues()) != 0 {
		t.Fatalf("form values should be cleared, got %v", editor.FormValues())
	}
}

func TestTableEditor_CancelDiscardsValues(t *testing.T) {
	editor := widget.NewTableEditor()
	editor.SetInputData(tableInput())

	editor.OpenForm()
	editor.SetFormValue("Item", "half-typed")
	editor.CancelForm()
	editor.OpenForm()

	if len(editor.FormValues()) != 0 {
		t.Fatalf("values survived cancel: %v", editor.FormValues())
	}
	for _, control := range editor.View().Controls {
		if control.Value != "" {
			t.Fatalf("control %s value = %q, want empty", control.Name, control.Value)
		}
	}
}

func TestTableEditor_ThemeTokens(t *testing.T) {
	editor := widget.NewTableEditor()
	editor.SetInputData(tableInput())
	editor.SetTheme(&model.Theme{Object: map[string]any{
		"color": []any{"#ff0000"},
		"title": map[string]any{"subtextStyle": map[string]any{"color": "#777"}},
	}})

	view := editor.View()
	if view.AccentColor != "#ff0000" {
		t.Fatalf("AccentColor = %q", view.AccentColor)
	}
	if view.Columns[0].Color != "#777" {
		t.Fatalf("column color should fall back to subtitle color, got %q", view.Columns[0].Color)
	}

	editor.SetStyleResolver(styling.MapResolver{styling.TokenTextColor: "#000"})
	if got := editor.View().Columns[0].Color; got != "#000" {
		t.Fatalf("ambient text color not applied, got %q", got)
	}
}

func formInput() *model.FormInput {
	return &model.FormInput{
		Title:      "Signup",
		FormButton: true,
		FormFields: []model.FieldSchema{
			{Label: "Name", Required: true, TargetColumn: &model.TargetColumn{BackendKey: "k", TableName: "people", Column: "name"}},
			{Label: "Age", Type: model.FieldTypeNumberField, TargetColumn: &model.TargetColumn{BackendKey: "k", TableName: "people", Column: "age"}},
		},
	}
}

func TestFormRenderer_ValidationBlocksEvent(t *testing.T) {
	renderer := widget.NewFormRenderer()
	renderer.SetInputData(formInput())
	renderer.OpenForm()

	dispatched := 0
	renderer.AddEventListener(events.TypeDataSubmit, func(events.Event) { dispatched++ })

	_, err := renderer.SubmitValues(url.Values{"column-1": {"3"}})
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if dispatched != 0 {
		t.Fatalf("event dispatched despite validation failure")
	}
	if !renderer.DialogOpen() {
		t.Fatalf("dialog should stay open on validation failure")
	}
	view := renderer.View()
	if got := view.ErrorsFor("column-0"); len(got) != 1 {
		t.Fatalf("expected one error for column-0, got %v", got)
	}
	if view.Controls[1].Value != "3" {
		t.Fatalf("entered value not preserved: %+v", view.Controls[1])
	}
}

func TestFormRenderer_SubmitClosesAndClears(t *testing.T) {
	renderer := widget.NewFormRenderer()
	renderer.SetInputData(formInput())
	renderer.OpenForm()

	var got []events.Event
	renderer.AddEventListener(events.TypeDataSubmit, func(e events.Event) { got = append(got, e) })

	records, err := renderer.SubmitValues(url.Values{"column-0": {"Ada"}, "column-1": {"36"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := []model.SubmissionRecord{
		{BackendKey: "k", TableName: "people", Column: "name", Value: "Ada"},
		{BackendKey: "k", TableName: "people", Column: "age", Value: 36.0},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if len(got) != 1 || got[0].Bubbles || got[0].Composed {
		t.Fatalf("expected one non-propagating event, got %+v", got)
	}
	if renderer.DialogOpen() {
		t.Fatalf("dialog should close after submit")
	}
	if renderer.FormValues() != nil {
		t.Fatalf("values should be cleared")
	}
}

func TestFormRenderer_InlineModeAndReset(t *testing.T) {
	input := formInput()
	input.FormButton = false
	renderer := widget.NewFormRenderer()
	renderer.SetInputData(input)

	renderer.OpenForm()
	if renderer.DialogOpen() {
		t.Fatalf("inline forms never open a dialog")
	}
	renderer.SetFormValue("column-0", "Ada")
	renderer.ResetForm()
	if renderer.FormValues() != nil {
		t.Fatalf("reset should clear values")
	}
	if _, err := renderer.SubmitValues(url.Values{"column-0": {"Ada"}}); err != nil {
		t.Fatalf("inline submit: %v", err)
	}

	view := renderer.View()
	if view.DialogMode {
		t.Fatalf("expected inline mode")
	}
	if view.AccentColor != widget.DefaultFormAccent {
		t.Fatalf("AccentColor = %q", view.AccentColor)
	}
	if view.DialogTitle != "Signup" {
		t.Fatalf("DialogTitle = %q", view.DialogTitle)
	}
}

func TestRegistry_VersionedTags(t *testing.T) {
	reg := widget.NewRegistry()
	if err := widget.DefineBuiltins(reg, "1.0.0", nil, nil); err != nil {
		t.Fatalf("define v1: %v", err)
	}
	if err := widget.DefineBuiltins(reg, "2.0.0", nil, nil); err != nil {
		t.Fatalf("define v2: %v", err)
	}
	if err := widget.DefineBuiltins(reg, "1.0.0", nil, nil); err == nil {
		t.Fatalf("expected duplicate tag error")
	}

	want := []string{
		"widget-form-1.0.0",
		"widget-form-2.0.0",
		"widget-tableedit-1.0.0",
		"widget-tableedit-2.0.0",
	}
	if diff := cmp.Diff(want, reg.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}

	el, err := reg.Create("widget-tableedit-2.0.0")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := el.(*widget.TableEditor); !ok || el.Tag() != "widget-tableedit-2.0.0" {
		t.Fatalf("unexpected element %T %q", el, el.Tag())
	}
	if _, err := reg.Create("widget-chart-1.0.0"); err == nil {
		t.Fatalf("expected unknown tag error")
	}
	if got := widget.TagName("widget-form", ""); got != "widget-form-versionplaceholder" {
		t.Fatalf("TagName() = %q", got)
	}
}
