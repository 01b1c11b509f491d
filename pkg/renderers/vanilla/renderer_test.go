package vanilla_test

import (
	"bytes"
	"context"
	"io/fs"
	"net/url"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/render"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/vanilla"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-dashwidgets/pkg/widget"
)

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func precision(v int) *int { return &v }

func tableEditor() *widget.TableEditor {
	editor := widget.NewTableEditor(widget.WithTableVersion("1.0.0"))
	editor.SetInputData(&model.TableInput{
		Title:    "Orders",
		SubTitle: "<b>today</b>",
		Columns: []model.ColumnSchema{
			{Header: "Item", Type: model.ColumnTypeString, ShowInForm: true, Values: []model.CellValue{{Value: "<script>x</script>"}}},
			{Header: "Price", Type: model.ColumnTypeNumber, ShowInForm: true, Styling: model.ColumnStyling{Precision: precision(2)}, Values: []model.CellValue{{Value: 3.14159}}},
			{Header: "Paid", Type: model.ColumnTypeBoolean, ShowInForm: true, Values: []model.CellValue{{Value: true}}},
			{Header: "Link", Type: model.ColumnTypeButton, Values: []model.CellValue{{Value: "open", Link: "javascript:alert(1)"}}},
			{Header: "Docs", Type: model.ColumnTypeButton, Values: []model.CellValue{{Value: "docs", Link: "https://example.com/docs"}}},
			{Header: "State", Type: model.ColumnTypeState, Styling: model.ColumnStyling{StateMap: "'ok','green'"}, Values: []model.CellValue{{Value: "ok"}}},
		},
	})
	return editor
}

func TestRenderTable_CellsAndEscaping(t *testing.T) {
	renderer := newRenderer(t)
	out, err := renderer.RenderTable(context.Background(), tableEditor().View(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`id="dw-widget-tableedit-1-0-0"`,
		`data-widget="widget-tableedit-1.0.0"`,
		`<h3 class="dw-title">Orders</h3>`,
		`&lt;b&gt;today&lt;/b&gt;`,
		`&lt;script&gt;x&lt;/script&gt;`,
		`3.14`,
		`<span class="dw-cell-boolean">✓</span>`,
		`href="https://example.com/docs" target="_blank" rel="noopener noreferrer"`,
		`style="background-color: green"`,
		`name="_intent" value="open"`,
		`name="_widget" value="widget-tableedit-1.0.0"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(html, "javascript:") {
		t.Errorf("unsafe link survived rendering")
	}
	if strings.Contains(html, "<dialog") {
		t.Errorf("closed dialog should not render")
	}
}

func TestRenderTable_EmptyAndLocalisedLabels(t *testing.T) {
	renderer := newRenderer(t)
	editor := widget.NewTableEditor()
	out, err := renderer.RenderTable(context.Background(), editor.View(), render.RenderOptions{
		Locale:     "es",
		Translator: mapTranslator{render.LabelNoData: "Sin datos"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "Sin datos") {
		t.Fatalf("expected translated empty label:\n%s", out)
	}
}

func TestRenderTable_OpenDialogRendersControls(t *testing.T) {
	renderer := newRenderer(t)
	editor := tableEditor()
	editor.OpenForm()

	out, err := renderer.RenderTable(context.Background(), editor.View(), render.RenderOptions{
		Action:       "/widgets/orders",
		HiddenFields: map[string]string{render.HiddenCSRF: "tok"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`<dialog open`,
		`data-suppress-escape`,
		`Data Entry`,
		`action="/widgets/orders"`,
		`name="_csrf" value="tok"`,
		`type="text"`,
		`name="Item"`,
		`autofocus`,
		`type="number"`,
		`step="any"`,
		`type="checkbox"`,
		`value="cancel"`,
		`value="submit"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Count(html, "autofocus") != 1 {
		t.Errorf("expected a single autofocused control")
	}
}

func TestRenderForm_InlineWithErrors(t *testing.T) {
	renderer := newRenderer(t)
	fr := widget.NewFormRenderer(widget.WithFormVersion("2.0.0"))
	fr.SetInputData(&model.FormInput{
		Title: "Signup",
		FormFields: []model.FieldSchema{
			{Label: "Name", Required: true, Description: "Full name"},
			{Label: "Plan", Type: model.FieldTypeDropdown, Values: []model.DropdownOption{{Value: "a", DisplayLabel: "Basic"}, {Value: "b", DisplayLabel: "Pro"}}},
			{Label: "Notes", Type: model.FieldTypeTextArea},
			{Label: "Secret", HiddenField: true, DefaultValue: "s"},
		},
	})
	if _, err := fr.SubmitValues(url.Values{"column-1": {"b"}}); err == nil {
		t.Fatalf("expected validation error")
	}

	out, err := renderer.RenderForm(context.Background(), fr.View(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`dw-form-inline`,
		`Full name`,
		`dw-field-invalid`,
		`aria-invalid="true"`,
		`<option value="b" selected>Pro</option>`,
		`<textarea`,
		`rows="3"`,
		`value="reset"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(html, "Secret") {
		t.Errorf("hidden field rendered")
	}
}

func TestRenderForm_DialogModeClosedShowsButtonOnly(t *testing.T) {
	renderer := newRenderer(t)
	fr := widget.NewFormRenderer()
	fr.SetInputData(&model.FormInput{Title: "Signup", FormButton: true, FormFields: []model.FieldSchema{{Label: "Name"}}})

	out, err := renderer.RenderForm(context.Background(), fr.View(), render.RenderOptions{OpenAction: "/open"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `action="/open"`) || strings.Contains(html, "dw-input") {
		t.Fatalf("expected only the add button:\n%s", html)
	}
	if !strings.Contains(html, "#9064f7") {
		t.Fatalf("expected default accent color in style block")
	}
}

func TestRenderTable_ThemeStylesheetAndVars(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithStylesheetURL("/static/dashwidgets.css"))
	out, err := renderer.RenderTable(context.Background(), tableEditor().View(), render.RenderOptions{
		Theme: &theme.RendererConfig{
			CSSVars:  map[string]string{"--re-text-color": "#123456; }"},
			AssetURL: func(name string) string { return "/theme/" + name },
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`href="/static/dashwidgets.css"`,
		`href="/theme/dashwidgets.css"`,
		`--re-text-color: #123456;`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRender_ChromeClasses(t *testing.T) {
	renderer := newRenderer(t)
	editor := tableEditor()
	editor.OpenForm()
	out, err := renderer.RenderTable(context.Background(), editor.View(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render table: %v", err)
	}
	html := string(out)
	for _, class := range []vanilla.ChromeClass{vanilla.ClassWidget, vanilla.ClassTitle, vanilla.ClassTable, vanilla.ClassDialog, vanilla.ClassFields, vanilla.ClassActions} {
		if !strings.Contains(html, string(class)) {
			t.Errorf("table output missing class %q", class)
		}
	}
	if !strings.Contains(html, `<table class="dw-table">`) {
		t.Errorf("table element lost its class:\n%s", html)
	}

	fr := widget.NewFormRenderer()
	fr.SetInputData(&model.FormInput{FormFields: []model.FieldSchema{{Label: "Name", Required: true}}})
	if _, err := fr.SubmitValues(url.Values{}); err == nil {
		t.Fatalf("expected validation error")
	}
	out, err = renderer.RenderForm(context.Background(), fr.View(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if !strings.Contains(string(out), `<ul class="`+string(vanilla.ClassErrors)+`" role="alert">`) {
		t.Errorf("expected error list class in:\n%s", out)
	}
}

func TestWithComponentRegistry_KeepsCopy(t *testing.T) {
	registry := components.NewDefaultRegistry()
	renderer := newRenderer(t, vanilla.WithComponentRegistry(registry))
	registry.MustRegister(components.NameText, components.Descriptor{
		Renderer: func(buf *bytes.Buffer, _ form.Control, _ components.ComponentData) error {
			buf.WriteString("<custom-text>")
			return nil
		},
	})

	fr := widget.NewFormRenderer()
	fr.SetInputData(&model.FormInput{FormFields: []model.FieldSchema{{Label: "Name"}}})
	out, err := renderer.RenderForm(context.Background(), fr.View(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<custom-text>") || !strings.Contains(html, `name="column-0"`) {
		t.Fatalf("renderer picked up a later registration:\n%s", html)
	}

	custom := newRenderer(t, vanilla.WithComponentRegistry(registry))
	out, err = custom.RenderForm(context.Background(), fr.View(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render custom: %v", err)
	}
	if !strings.Contains(string(out), "<custom-text>") {
		t.Fatalf("expected custom text component:\n%s", out)
	}
}

func TestPreloadAndAssets(t *testing.T) {
	renderer := newRenderer(t)
	if err := renderer.Preload(); err != nil {
		t.Fatalf("preload: %v", err)
	}
	if _, err := fs.Stat(vanilla.AssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("stylesheet missing from assets: %v", err)
	}
	if !strings.Contains(vanilla.DefaultStylesheet(), ".dw-table") {
		t.Fatalf("unexpected stylesheet contents")
	}
	if renderer.Name() != vanilla.Name || !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected renderer identity")
	}
}

type mapTranslator map[string]string

func (m mapTranslator) Translate(_, key string, _ ...any) (string, error) {
	return m[key], nil
}
