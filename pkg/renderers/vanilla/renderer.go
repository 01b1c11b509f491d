package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dashwidgets/pkg/render"
	rendertemplate "github.com/goliatone/go-dashwidgets/pkg/render/template"
	gotemplate "github.com/goliatone/go-dashwidgets/pkg/render/template/gotemplate"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-dashwidgets/pkg/table"
	"github.com/goliatone/go-dashwidgets/pkg/widget"
)

// Name is the registry name of the vanilla renderer.
const Name = "vanilla"

const (
	tableTemplate = "templates/table.tmpl"
	formTemplate  = "templates/form.tmpl"
	styleTemplate = "templates/style.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	stylesheetURL    string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default control components. The
// renderer keeps a copy, so later changes to registry do not reach it.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry.Clone()
		}
	}
}

// WithStylesheetURL links the widget stylesheet from url ahead of every
// widget. Hosts usually serve AssetsFS under that URL.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = url
	}
}

// Renderer produces server-rendered HTML that works without client-side
// scripting: buttons post an intent back to the host, which drives the
// widget and renders again.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	registry      *components.Registry
	stylesheetURL string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if err := renderer.GlobalContext(map[string]any{"classes": chromeClassData()}); err != nil {
		return nil, fmt.Errorf("vanilla renderer: seed chrome classes: %w", err)
	}

	return &Renderer{
		templates:     renderer,
		registry:      cfg.registry,
		stylesheetURL: cfg.stylesheetURL,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Preload parses the widget and control templates ahead of their first use.
// Engines that cannot preload are left alone.
func (r *Renderer) Preload() error {
	preloader, ok := r.templates.(rendertemplate.Preloader)
	if !ok {
		return nil
	}
	names := append([]string{tableTemplate, formTemplate, styleTemplate, fieldTemplate}, r.registry.Templates()...)
	if err := preloader.Preload(names...); err != nil {
		return fmt.Errorf("vanilla renderer: preload: %w", err)
	}
	return nil
}

// RenderTable renders a TableEditor view.
func (r *Renderer) RenderTable(_ context.Context, view widget.TableView, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	id := elementID(view.Tag)
	labels := render.ResolveLabels(opts)
	dialogTitle := view.DialogTitle
	if dialogTitle == widget.DefaultDialogTitle {
		dialogTitle = labels.DataEntry
	}

	data := r.baseData(id, view.Tag, view.Title, view.SubTitle, labels, opts)
	data["dialogOpen"] = view.DialogOpen
	data["dialogTitle"] = dialogTitle

	columns := columnData(view.Columns)
	rows := make([][]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellHTML(cell)
		}
		rows = append(rows, cells)
	}
	data["columns"] = columns
	data["rows"] = rows
	data["colspan"] = max(len(columns), 1)

	var componentStyles []string
	if view.DialogOpen {
		controls := newComponentRenderer(r.templates, r.registry, partials(opts.Theme), id, labels.SelectEmpty)
		markup, err := controls.renderAll(view.Controls, nil)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: render controls: %w", err)
		}
		data["controls"] = markup
		componentStyles = controls.stylesheets()
	}
	data["stylesheets"] = r.stylesheets(opts, componentStyles)

	style, err := r.templates.RenderTemplate(styleTemplate, map[string]any{
		"id":      id,
		"tokens":  tokenData(view.Tokens.BackgroundColor, view.Tokens.TitleColor, view.Tokens.SubtitleColor),
		"cssVars": cssVars(opts.Theme),
		"accent":  view.AccentColor,
		"grid": map[string]any{
			"headerFontSize":   view.HeaderFontSize,
			"headerBackground": view.HeaderBackground,
			"rowBorder":        view.RowBorder,
		},
		"columns": columns,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render style: %w", err)
	}
	data["styleBlock"] = style

	result, err := r.templates.RenderTemplate(tableTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderForm renders a FormRenderer view, inline or behind its add button.
func (r *Renderer) RenderForm(_ context.Context, view widget.FormView, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	id := elementID(view.Tag)
	labels := render.ResolveLabels(opts)

	data := r.baseData(id, view.Tag, view.Title, view.SubTitle, labels, opts)
	data["dialogMode"] = view.DialogMode
	data["dialogOpen"] = view.DialogOpen
	data["dialogTitle"] = view.DialogTitle

	var componentStyles []string
	if !view.DialogMode || view.DialogOpen {
		controls := newComponentRenderer(r.templates, r.registry, partials(opts.Theme), id, labels.SelectEmpty)
		markup, err := controls.renderAll(view.Controls, view.Errors)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: render controls: %w", err)
		}
		data["controls"] = markup
		componentStyles = controls.stylesheets()
	}
	data["stylesheets"] = r.stylesheets(opts, componentStyles)

	style, err := r.templates.RenderTemplate(styleTemplate, map[string]any{
		"id":      id,
		"tokens":  tokenData(view.Tokens.BackgroundColor, view.Tokens.TitleColor, view.Tokens.SubtitleColor),
		"cssVars": cssVars(opts.Theme),
		"accent":  view.AccentColor,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render style: %w", err)
	}
	data["styleBlock"] = style

	result, err := r.templates.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) baseData(id, tag, title, subtitle string, labels render.Labels, opts render.RenderOptions) map[string]any {
	hidden := make([]map[string]any, 0, len(opts.HiddenFields)+1)
	for _, field := range render.SortedHiddenFields(render.MergeHiddenFields(opts.HiddenFields, render.WidgetTag(tag))) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}
	return map[string]any{
		"id":         id,
		"tag":        tag,
		"title":      title,
		"subtitle":   subtitle,
		"action":     opts.Action,
		"openAction": opts.OpenAction,
		"hidden":     hidden,
		"intentName": render.HiddenIntent,
		"labels": map[string]any{
			"submit": labels.Submit,
			"cancel": labels.Cancel,
			"reset":  labels.Reset,
			"add":    labels.Add,
			"noData": labels.NoData,
			"dialog": labels.DataEntry,
			"empty":  labels.SelectEmpty,
		},
	}
}

func (r *Renderer) stylesheets(opts render.RenderOptions, extra []string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(href string) {
		if href == "" {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}
		out = append(out, href)
	}
	add(r.stylesheetURL)
	if opts.Theme != nil && opts.Theme.AssetURL != nil {
		add(opts.Theme.AssetURL(StylesheetName))
	}
	for _, href := range opts.Stylesheets {
		add(href)
	}
	for _, href := range extra {
		add(href)
	}
	return out
}

func columnData(columns []table.ColumnStyle) []map[string]any {
	out := make([]map[string]any, 0, len(columns))
	for _, column := range columns {
		out = append(out, map[string]any{
			"index":        column.Index,
			"header":       column.Header,
			"align":        column.Align,
			"width":        column.Width,
			"headerWidth":  column.HeaderWidth,
			"fontSize":     column.FontSize,
			"fontWeight":   column.FontWeight,
			"color":        column.Color,
			"border":       column.Border,
			"headerBorder": column.HeaderBorder,
			"height":       column.Height,
		})
	}
	return out
}

func tokenData(background, title, subtitle string) map[string]any {
	return map[string]any{
		"background": background,
		"title":      title,
		"subtitle":   subtitle,
	}
}

func partials(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return nil
	}
	return cfg.Partials
}

func cssVars(cfg *theme.RendererConfig) []map[string]any {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return nil
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]any{"name": name, "value": cfg.CSSVars[name]})
	}
	return out
}
