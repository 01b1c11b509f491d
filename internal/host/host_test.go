package host

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dashwidgets/pkg/events"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/render"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/vanilla"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "widgets.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newApp(t *testing.T, store *Store, cfg Config) *App {
	t.Helper()
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	app, err := NewApp(context.Background(), cfg, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func do(t *testing.T, h http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoadConfig_DotenvAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("DASHWIDGETS_TABLE_FILE=orders.yaml\nDASHWIDGETS_ADDR=:7000\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("DASHWIDGETS_ADDR", ":9999")
	t.Setenv("DASHWIDGETS_LOG_LEVEL", "debug")
	t.Cleanup(func() { os.Unsetenv("DASHWIDGETS_TABLE_FILE") })

	cfg, err := LoadConfig("", envFile, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := Config{
		Addr:      ":9999",
		DBPath:    "dashwidgets.db",
		TableFile: "orders.yaml",
		Version:   "1.0.0",
		LogLevel:  "debug",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("Level() = %v", cfg.Level())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := (Config{Addr: ":1"}).Validate(); err == nil {
		t.Fatalf("expected validation error without inputs")
	}
}

func TestStore_SubmissionsAndRows(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	records := []model.SubmissionRecord{{BackendKey: "main", TableName: "people", Column: "name", Value: "Ada"}}
	id, err := store.SaveSubmission(ctx, "widget-form-1.0.0", records)
	if err != nil {
		t.Fatalf("save submission: %v", err)
	}
	subs, err := store.Submissions(ctx)
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != id || subs[0].Widget != "widget-form-1.0.0" {
		t.Fatalf("unexpected submissions %+v", subs)
	}
	if diff := cmp.Diff(records, subs[0].Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	for _, item := range []string{"a", "b"} {
		if _, err := store.AppendRow(ctx, "widget-tableedit-1.0.0", map[string]string{"Item": item}); err != nil {
			t.Fatalf("append row: %v", err)
		}
	}
	if _, err := store.AppendRow(ctx, "widget-tableedit-2.0.0", map[string]string{"Item": "other"}); err != nil {
		t.Fatalf("append row: %v", err)
	}
	rows, err := store.Rows(ctx, "widget-tableedit-1.0.0")
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	var items []string
	for _, row := range rows {
		items = append(items, row.Values["Item"])
	}
	if diff := cmp.Diff([]string{"a", "b"}, items); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendRow_NewReferencePaddedAndCoerced(t *testing.T) {
	input := &model.TableInput{Columns: []model.ColumnSchema{
		{Header: "Item", Type: model.ColumnTypeString, ShowInForm: true, Values: []model.CellValue{{Value: "a"}, {Value: "b"}}},
		{Header: "Qty", Type: model.ColumnTypeNumber, ShowInForm: true, Values: []model.CellValue{{Value: 1.0}}},
		{Header: "Paid", Type: model.ColumnTypeBoolean, ShowInForm: true},
		{Header: "Link", Type: model.ColumnTypeButton},
	}}

	next := appendRow(input, map[string]string{"Item": "c", "Qty": "4", "Paid": "on"})
	if next == input {
		t.Fatalf("appendRow must return a new reference")
	}
	if len(input.Columns[0].Values) != 2 {
		t.Fatalf("input mutated: %+v", input.Columns[0].Values)
	}

	want := [][]model.CellValue{
		{{Value: "a"}, {Value: "b"}, {Value: "c"}},
		{{Value: 1.0}, {}, {Value: 4.0}},
		{{}, {}, {Value: true}},
		{{}, {}, {}},
	}
	var got [][]model.CellValue
	for _, column := range next.Columns {
		got = append(got, column.Values)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestServer_TableFlow(t *testing.T) {
	store := openStore(t)
	cfg := Config{TableFile: "testdata/table.yaml", ThemeFile: "testdata/theme.json"}
	h := newApp(t, store, cfg).Routes()

	rec := do(t, h, http.MethodGet, "/table", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /table status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Widget", `action="/table/open"`, `href="` + AssetsPrefix + vanilla.StylesheetName + `"`, "#1f77b4"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in table page:\n%s", want, body)
		}
	}
	if strings.Contains(body, "<dialog") {
		t.Fatalf("dialog rendered while closed")
	}

	submit := url.Values{render.HiddenIntent: {render.IntentSubmit}, "Item": {"Gadget"}, "Qty": {"3"}}
	if rec := do(t, h, http.MethodPost, "/table/submit", submit); rec.Code != http.StatusConflict {
		t.Fatalf("submit with closed dialog status = %d, want 409", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/table/open", url.Values{render.HiddenIntent: {render.IntentOpen}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/table" {
		t.Fatalf("open status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
	if body := do(t, h, http.MethodGet, "/table", nil).Body.String(); !strings.Contains(body, "<dialog open") || !strings.Contains(body, "New order") {
		t.Fatalf("expected open dialog:\n%s", body)
	}

	stale := url.Values{render.HiddenVersion: {"99"}}
	for k, v := range submit {
		stale[k] = v
	}
	if rec := do(t, h, http.MethodPost, "/table/submit", stale); rec.Code != http.StatusConflict {
		t.Fatalf("stale submit status = %d, want 409", rec.Code)
	}

	if rec := do(t, h, http.MethodPost, "/table/submit", submit); rec.Code != http.StatusSeeOther {
		t.Fatalf("submit status = %d: %s", rec.Code, rec.Body.String())
	}
	body = do(t, h, http.MethodGet, "/table", nil).Body.String()
	if !strings.Contains(body, "Gadget") || strings.Contains(body, "<dialog") {
		t.Fatalf("expected new row and closed dialog:\n%s", body)
	}
	if strings.Index(body, "Gadget") > strings.Index(body, "Widget") {
		t.Fatalf("newest row should render first")
	}

	rows, err := store.Rows(context.Background(), "widget-tableedit-1.0.0")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Values["Item"] != "Gadget" {
		t.Fatalf("unexpected stored rows %+v", rows)
	}

	restarted := newApp(t, store, cfg)
	if got := len(restarted.table.Rows()); got != 2 {
		t.Fatalf("restored rows = %d, want 2", got)
	}
}

func TestServer_TableCancelKeepsDataAndTerminalRenderer(t *testing.T) {
	store := openStore(t)
	h := newApp(t, store, Config{TableFile: "testdata/table.yaml"}).Routes()

	do(t, h, http.MethodPost, "/table/open", nil)
	rec := do(t, h, http.MethodPost, "/table/submit", url.Values{render.HiddenIntent: {render.IntentCancel}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("cancel status = %d", rec.Code)
	}
	if rows, _ := store.Rows(context.Background(), "widget-tableedit-1.0.0"); len(rows) != 0 {
		t.Fatalf("cancel must not store rows, got %+v", rows)
	}

	rec = do(t, h, http.MethodGet, "/table?renderer=tui", nil)
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("tui status = %d type = %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "Widget") {
		t.Fatalf("expected terminal table:\n%s", rec.Body.String())
	}
	if rec := do(t, h, http.MethodGet, "/table?renderer=pdf", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown renderer status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/table/submit", url.Values{render.HiddenIntent: {"explode"}}); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown intent status = %d", rec.Code)
	}
}

func TestServer_FormFlow(t *testing.T) {
	store := openStore(t)
	h := newApp(t, store, Config{FormFile: "testdata/form.json"}).Routes()

	if rec := do(t, h, http.MethodGet, "/table", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("table route without table input status = %d", rec.Code)
	}

	rec := do(t, h, http.MethodPost, "/form/submit", url.Values{render.HiddenIntent: {render.IntentSubmit}, "column-1": {"-1"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid submit status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `class="dw-errors"`) || !strings.Contains(body, `value="-1"`) {
		t.Fatalf("expected errors and preserved value:\n%s", body)
	}
	if subs, _ := store.Submissions(context.Background()); len(subs) != 0 {
		t.Fatalf("invalid submit stored %+v", subs)
	}

	rec = do(t, h, http.MethodPost, "/form/submit", url.Values{render.HiddenIntent: {render.IntentSubmit}, "column-0": {"Ada"}, "column-1": {"36"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("submit status = %d: %s", rec.Code, rec.Body.String())
	}
	subs, err := store.Submissions(context.Background())
	if err != nil {
		t.Fatalf("submissions: %v", err)
	}
	want := []model.SubmissionRecord{
		{BackendKey: "main", TableName: "people", Column: "name", Value: "Ada"},
		{BackendKey: "main", TableName: "people", Column: "age", Value: 36.0},
	}
	if len(subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(subs))
	}
	if diff := cmp.Diff(want, subs[0].Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if body := do(t, h, http.MethodGet, "/form", nil).Body.String(); strings.Contains(body, `value="Ada"`) {
		t.Fatalf("form should be cleared after submit:\n%s", body)
	}
}

func TestServer_ThemeManifest(t *testing.T) {
	store := openStore(t)
	app := newApp(t, store, Config{
		TableFile:     "testdata/table.yaml",
		FormFile:      "testdata/form.json",
		ThemeManifest: "testdata/manifest.yaml",
		ThemeVariant:  "dark",
	})
	if app.theme == nil || app.theme.Theme != "acme" || app.theme.Variant != "dark" {
		t.Fatalf("unexpected renderer theme %+v", app.theme)
	}
	if got := app.table.Tokens().BackgroundColor; got != "#101010" {
		t.Fatalf("table background = %q, want manifest token", got)
	}
	if got := app.form.Tokens().TitleColor; got != "#eeeeee" {
		t.Fatalf("form title color = %q, want variant token", got)
	}

	h := app.Routes()
	for _, path := range []string{"/table", "/form"} {
		body := do(t, h, http.MethodGet, path, nil).Body.String()
		for _, want := range []string{"--brand: #654321;", "background-color: #101010;"} {
			if !strings.Contains(body, want) {
				t.Fatalf("GET %s: expected %q in page:\n%s", path, want, body)
			}
		}
	}

	if _, err := NewApp(context.Background(), Config{TableFile: "testdata/table.yaml", ThemeManifest: "testdata/manifest.yaml", ThemeVariant: "neon"}, store, nil); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}

func TestFlush_KeepsEventsUntilStored(t *testing.T) {
	broken := openStore(t)
	app := newApp(t, broken, Config{FormFile: "testdata/form.json"})
	if err := broken.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	first := []model.SubmissionRecord{{TableName: "people", Column: "name", Value: "Ada"}}
	second := []model.SubmissionRecord{{TableName: "people", Column: "name", Value: "Grace"}}
	app.enqueue(events.DataSubmit(first))
	app.enqueue(events.DataSubmit(second))

	ctx := context.Background()
	if err := app.flush(ctx); err == nil {
		t.Fatalf("expected flush to fail on a closed store")
	}
	if len(app.pending) != 2 {
		t.Fatalf("pending = %d after failed flush, want 2", len(app.pending))
	}

	store := openStore(t)
	app.store = store
	if err := app.flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(app.pending) != 0 {
		t.Fatalf("pending = %d after flush, want 0", len(app.pending))
	}
	subs, err := store.Submissions(ctx)
	if err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("stored %d submissions, want 2", len(subs))
	}
}

func TestServer_HealthAndAssets(t *testing.T) {
	store := openStore(t)
	h := newApp(t, store, Config{FormFile: "testdata/form.json", Version: "2.1.0"}).Routes()

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	var health map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"ok": true, "version": "2.1.0"}, health); diff != "" {
		t.Fatalf("health mismatch (-want +got):\n%s", diff)
	}

	rec = do(t, h, http.MethodGet, AssetsPrefix+vanilla.StylesheetName, nil)
	if rec.Code != http.StatusOK || rec.Body.String() != vanilla.DefaultStylesheet() {
		t.Fatalf("stylesheet status = %d", rec.Code)
	}
}
