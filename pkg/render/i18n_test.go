package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dashwidgets/pkg/render"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestResolveLabels_DefaultsToEnglish(t *testing.T) {
	got := render.ResolveLabels(render.RenderOptions{})
	want := render.Labels{
		Submit:    "Submit",
		Cancel:    "Cancel",
		Reset:     "Reset",
		Add:       "Add",
		NoData:    "No Data",
		DataEntry: "Data Entry",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveLabels_TranslatesAndFallsBack(t *testing.T) {
	var missing []string
	got := render.ResolveLabels(render.RenderOptions{
		Locale:     "es",
		Translator: stubTranslator{render.LabelSubmit: "Enviar", render.LabelNoData: "Sin datos"},
		OnMissing: func(locale, key, fallback string, err error) string {
			missing = append(missing, key)
			return fallback
		},
	})
	if got.Submit != "Enviar" || got.NoData != "Sin datos" {
		t.Fatalf("expected translated labels, got %+v", got)
	}
	if got.Cancel != "Cancel" {
		t.Fatalf("expected fallback for cancel, got %q", got.Cancel)
	}
	if len(missing) != 5 {
		t.Fatalf("expected 5 missing keys, got %v", missing)
	}
}

func TestTranslate_MissingTranslator(t *testing.T) {
	var gotErr error
	text := render.Translate(render.RenderOptions{
		OnMissing: func(_, key, fallback string, err error) string {
			gotErr = err
			return "[" + key + "]"
		},
	}, "custom.key", "Custom")
	if text != "[custom.key]" {
		t.Fatalf("Translate() = %q", text)
	}
	if !errors.Is(gotErr, render.ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}
