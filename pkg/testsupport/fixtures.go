// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dashwidgets/pkg/events"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/schema"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// SampleTable returns a fresh table input exercising every column type.
func SampleTable() *model.TableInput {
	return &model.TableInput{
		Title:     "Orders",
		SubTitle:  "Latest first",
		FormTitle: "New order",
		Columns: []model.ColumnSchema{
			{Header: "Item", Type: model.ColumnTypeString, ShowInForm: true, Values: []model.CellValue{{Value: "Widget"}, {Value: "Gadget"}}},
			{Header: "Price", Type: model.ColumnTypeNumber, ShowInForm: true, Styling: model.ColumnStyling{Precision: intPtr(2)}, Values: []model.CellValue{{Value: 9.5}, {Value: 12.0}}},
			{Header: "Paid", Type: model.ColumnTypeBoolean, ShowInForm: true, Values: []model.CellValue{{Value: true}, {Value: false}}},
			{Header: "Status", Type: model.ColumnTypeState, ShowInForm: true, Styling: model.ColumnStyling{StateMap: "'open','#f5a623','done','#7ed321'"}, Values: []model.CellValue{{Value: "open"}, {Value: "done"}}},
			{Header: "Details", Type: model.ColumnTypeButton, Values: []model.CellValue{{Value: "view", Link: "https://example.com/orders/1"}, {Value: "view", Link: "https://example.com/orders/2"}}},
		},
	}
}

// SampleForm returns a fresh form input exercising every field type.
func SampleForm() *model.FormInput {
	target := func(column string) *model.TargetColumn {
		return &model.TargetColumn{BackendKey: "main", TableName: "people", Column: column}
	}
	return &model.FormInput{
		Title:    "Signup",
		SubTitle: "Join the directory",
		FormFields: []model.FieldSchema{
			{Label: "Name", Required: true, TargetColumn: target("name")},
			{Label: "Age", Type: model.FieldTypeNumberField, Min: floatPtr(0), Max: floatPtr(150), TargetColumn: target("age")},
			{Label: "Born", Type: model.FieldTypeDateTime, TargetColumn: target("born")},
			{Label: "Bio", Type: model.FieldTypeTextArea, TargetColumn: target("bio")},
			{Label: "Plan", Type: model.FieldTypeDropdown, DefaultValue: "basic", Values: []model.DropdownOption{{Value: "basic", DisplayLabel: "Basic"}, {Value: "pro", DisplayLabel: "Pro"}}, TargetColumn: target("plan")},
			{Label: "Active", Type: model.FieldTypeCheckbox, TargetColumn: target("active")},
			{Label: "Source", HiddenField: true, DefaultValue: "web", TargetColumn: target("source")},
		},
	}
}

// SampleTheme returns a theme with accent, background and title colors.
func SampleTheme() *model.Theme {
	return &model.Theme{
		Name: "sample",
		Object: map[string]any{
			"color":           []any{"#2f80ed", "#27ae60"},
			"backgroundColor": "#fafafa",
			"title": map[string]any{
				"textStyle":    map[string]any{"color": "#222222"},
				"subtextStyle": map[string]any{"color": "#777777"},
			},
		},
	}
}

// LoadTable reads a table input fixture from disk.
func LoadTable(t *testing.T, path string) *model.TableInput {
	t.Helper()
	input, err := schema.NewLoader().LoadTable(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load table fixture: %v", err)
	}
	return input
}

// LoadForm reads a form input fixture from disk.
func LoadForm(t *testing.T, path string) *model.FormInput {
	t.Helper()
	input, err := schema.NewLoader().LoadForm(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load form fixture: %v", err)
	}
	return input
}

// Recorder collects dispatched events. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []events.Event
}

// Listen returns a listener that records into r.
func (r *Recorder) Listen() events.Listener {
	return func(e events.Event) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, e)
	}
}

// Events returns the recorded events.
func (r *Recorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
