package styling_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/styling"
)

func sampleTheme() *model.Theme {
	return &model.Theme{
		Name: "dark",
		Object: map[string]any{
			"backgroundColor": "#101010",
			"color":           []any{"#ff0000", "#00ff00"},
			"title": map[string]any{
				"textStyle":    map[string]any{"color": "#eeeeee"},
				"subtextStyle": map[string]any{"color": "#aaaaaa"},
			},
		},
	}
}

func TestResolve_ThemeObject(t *testing.T) {
	got := styling.Resolve(nil, sampleTheme())
	want := styling.Tokens{
		BackgroundColor: "#101010",
		TitleColor:      "#eeeeee",
		SubtitleColor:   "#aaaaaa",
		AccentColors:    []string{"#ff0000", "#00ff00"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_AmbientWins(t *testing.T) {
	resolver := styling.MapResolver{
		styling.TokenTextColor:       "#123456",
		styling.TokenBackgroundColor: "white",
	}
	got := styling.Resolve(resolver, sampleTheme())
	if got.BackgroundColor != "white" || got.TitleColor != "#123456" || got.SubtitleColor != "#123456" {
		t.Fatalf("ambient tokens not preferred: %+v", got)
	}
}

func TestResolve_SubtitleFallsBackToTitle(t *testing.T) {
	got := styling.Resolve(nil, &model.Theme{Object: map[string]any{
		"title": map[string]any{"textStyle": map[string]any{"color": "#eeeeee"}},
	}})
	if got.SubtitleColor != "#eeeeee" {
		t.Fatalf("SubtitleColor = %q, want title color", got.SubtitleColor)
	}
}

func TestResolve_MalformedObjectDegrades(t *testing.T) {
	cases := []*model.Theme{
		nil,
		{},
		{Object: map[string]any{"title": "oops", "color": "red", "backgroundColor": 12}},
		{Object: map[string]any{"title": map[string]any{"textStyle": []any{1}}}},
	}
	for i, th := range cases {
		got := styling.Resolve(nil, th)
		if diff := cmp.Diff(styling.Tokens{}, got); diff != "" {
			t.Fatalf("case %d: expected empty tokens (-want +got):\n%s", i, diff)
		}
	}
}

func TestTokens_Accent(t *testing.T) {
	if got := (styling.Tokens{}).Accent("#9064f7"); got != "#9064f7" {
		t.Fatalf("Accent() = %q, want fallback", got)
	}
	if got := (styling.Tokens{AccentColors: []string{"#abc"}}).Accent("#9064f7"); got != "#abc" {
		t.Fatalf("Accent() = %q, want #abc", got)
	}
}

func TestChain(t *testing.T) {
	resolver := styling.Chain(
		nil,
		styling.MapResolver{"a": " "},
		styling.ResolverFunc(func(name string) (string, bool) {
			if name == "a" {
				return "from-func", true
			}
			return "", false
		}),
		styling.MapResolver{"a": "late", "b": "b-value"},
	)
	if got, ok := resolver.ResolveStyle("a"); !ok || got != "from-func" {
		t.Fatalf("ResolveStyle(a) = %q, %v", got, ok)
	}
	if got, ok := resolver.ResolveStyle("b"); !ok || got != "b-value" {
		t.Fatalf("ResolveStyle(b) = %q, %v", got, ok)
	}
	if _, ok := resolver.ResolveStyle("c"); ok {
		t.Fatalf("expected miss for c")
	}
}

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"re-text-color": "#111111",
			"brand":         "#123456",
		},
		Templates: map[string]string{
			"widgets.table": "themes/acme/table.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"--re-tile-background-color": "#000000",
					"brand":                      "#654321",
				},
			},
		},
	}
}

func TestCatalog_SelectAndResolve(t *testing.T) {
	catalog := styling.NewCatalog("", "")
	if err := catalog.Register(acmeManifest()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := catalog.Register(acmeManifest()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}

	selection, err := catalog.Select("acme", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := catalog.Select("acme", "neon"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := catalog.Select("missing", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}

	tokens := styling.Resolve(styling.NewSelectionResolver(selection), nil)
	want := styling.Tokens{
		BackgroundColor: "#000000",
		TitleColor:      "#111111",
		SubtitleColor:   "#111111",
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	def, err := catalog.Select("", "")
	if err != nil || def.Theme != "acme" {
		t.Fatalf("default selection = %+v, %v", def, err)
	}
}

func TestCatalog_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.yaml")
	manifest := `
name: acme
version: 1.0.0
tokens:
  brand: "#123456"
variants:
  dark:
    tokens:
      brand: "#654321"
      re-text-color: "#eeeeee"
`
	if err := os.WriteFile(path, []byte(manifest), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	catalog := styling.NewCatalog("", "dark")
	if _, err := catalog.LoadFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	selection, err := catalog.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	want := map[string]string{"brand": "#654321", "re-text-color": "#eeeeee"}
	if diff := cmp.Diff(want, styling.SelectionTokens(selection)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if got := styling.Resolve(styling.NewSelectionResolver(selection), nil).TitleColor; got != "#eeeeee" {
		t.Fatalf("TitleColor = %q", got)
	}

	if _, err := styling.ParseManifest([]byte("version: 1")); err == nil {
		t.Fatalf("expected error for nameless manifest")
	}
	if _, err := catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestRendererConfig(t *testing.T) {
	cfg := styling.RendererConfig(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: acmeManifest()})
	if cfg == nil {
		t.Fatalf("expected renderer config")
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("variant token override missing, got %q", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css var not derived, got %q", cfg.CSSVars["--brand"])
	}
	if cfg.Partials["widgets.table"] != "themes/acme/table.tmpl" {
		t.Fatalf("partials not propagated: %+v", cfg.Partials)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("AssetURL() = %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("AssetURL(missing) = %q", got)
	}
	if styling.RendererConfig(nil) != nil {
		t.Fatalf("expected nil config for nil selection")
	}
}
