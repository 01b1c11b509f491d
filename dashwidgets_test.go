package dashwidgets_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	dashwidgets "github.com/goliatone/go-dashwidgets"
	"github.com/goliatone/go-dashwidgets/pkg/events"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/vanilla"
	"github.com/goliatone/go-dashwidgets/pkg/styling"
	"github.com/goliatone/go-dashwidgets/pkg/testsupport"
	"github.com/goliatone/go-dashwidgets/pkg/widget"
)

func newRenderers(t *testing.T) *dashwidgets.Renderers {
	t.Helper()
	r, err := dashwidgets.NewRenderers(nil, nil)
	if err != nil {
		t.Fatalf("new renderers: %v", err)
	}
	return r
}

func TestNewRenderers_RegistersHTMLAndTerminal(t *testing.T) {
	r := newRenderers(t)
	if diff := cmp.Diff([]string{"tui", "vanilla"}, r.Registry.List()); diff != "" {
		t.Fatalf("renderer names mismatch (-want +got):\n%s", diff)
	}
	def, err := r.Registry.Get("")
	if err != nil {
		t.Fatalf("default renderer: %v", err)
	}
	if def.Name() != vanilla.Name {
		t.Fatalf("default renderer = %q, want vanilla", def.Name())
	}
}

func TestRenderers_TableEditorPreloadsOnFirstOpen(t *testing.T) {
	r := newRenderers(t)
	var failures []error
	editor := r.NewTableEditor(func(err error) { failures = append(failures, err) })
	editor.SetInputData(testsupport.SampleTable())
	editor.OpenForm()

	out, err := r.RenderTable(context.Background(), "", editor, dashwidgets.RenderOptions{Action: "/table/submit"})
	if err != nil {
		t.Fatalf("render table: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("preload failed: %v", failures)
	}
	html := string(out)
	for _, want := range []string{"<dialog open", `action="/table/submit"`, "New order", "Widget"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderers_FormWithTerminal(t *testing.T) {
	r := newRenderers(t)
	form := widget.NewFormRenderer()
	form.SetInputData(testsupport.SampleForm())

	out, err := r.RenderForm(context.Background(), "tui", form, dashwidgets.RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if !strings.Contains(string(out), "Name*") {
		t.Fatalf("expected required marker in terminal output:\n%s", out)
	}
	if strings.Contains(string(out), "Source") {
		t.Fatalf("hidden field leaked into output:\n%s", out)
	}

	if _, err := r.RenderForm(context.Background(), "pdf", form, dashwidgets.RenderOptions{}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestRenderers_FixtureFiles(t *testing.T) {
	r := newRenderers(t)
	editor := r.NewTableEditor(nil)
	editor.SetInputData(testsupport.LoadTable(t, "testdata/orders.yaml"))

	out, err := r.RenderTable(context.Background(), "", editor, dashwidgets.RenderOptions{})
	if err != nil {
		t.Fatalf("render table: %v", err)
	}
	for _, want := range []string{"Orders", "Widget", "Gadget"} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	form := widget.NewFormRenderer()
	form.SetTheme(testsupport.SampleTheme())
	form.SetInputData(testsupport.LoadForm(t, "testdata/signup.json"))
	wantTokens := styling.Tokens{
		BackgroundColor: "#fafafa",
		TitleColor:      "#222222",
		SubtitleColor:   "#777777",
		AccentColors:    []string{"#2f80ed", "#27ae60"},
	}
	if diff := cmp.Diff(wantTokens, form.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	recorder := &testsupport.Recorder{}
	form.AddEventListener(events.TypeDataSubmit, recorder.Listen())
	if _, err := form.SubmitValues(url.Values{"column-0": {"Ada"}, "column-1": {"on"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := []events.Event{events.DataSubmit([]model.SubmissionRecord{
		{BackendKey: "main", TableName: "people", Column: "name", Value: "Ada"},
		{BackendKey: "main", TableName: "people", Column: "newsletter", Value: true},
	})}
	if diff := cmp.Diff(want, recorder.Events()); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := dashwidgets.LoadTable(context.Background(), "testdata/missing.json")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestAssetsHandlerServesStylesheet(t *testing.T) {
	server := httptest.NewServer(dashwidgets.AssetsHandler("/assets"))
	defer server.Close()

	resp, err := http.Get(server.URL + "/assets/" + vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("get stylesheet: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != vanilla.DefaultStylesheet() {
		t.Fatalf("served stylesheet differs from the embedded one")
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/css") {
		t.Fatalf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"templates/table.tmpl", "templates/form.tmpl", "templates/components/field.tmpl"} {
		f, err := dashwidgets.EmbeddedTemplates().Open(name)
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		f.Close()
	}
}
