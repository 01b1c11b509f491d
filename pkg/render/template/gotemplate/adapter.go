package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-dashwidgets/pkg/render/template"
)

// DefaultExtension is appended to template names that lack it.
const DefaultExtension = ".tmpl"

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	templateFn map[string]any
	globalData map[string]any
}

// WithBaseDir configures the underlying engine to load templates from a base
// directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS configures the underlying engine to load templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension used by the engine.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTemplateFunc registers helper functions or filters when the engine loads.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFn == nil {
			cfg.templateFn = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFn[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobalData seeds global context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine satisfies template.TemplateRenderer using a pongo2 template set.
// Parsed templates are cached by path.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
}

// Ensure Engine implements the TemplateRenderer interface.
var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: DefaultExtension,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("dashwidgets", loaders...),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      cfg.extension,
	}
	registerDefaultFilters()

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
	}
	if len(cfg.templateFn) > 0 {
		for name, fn := range cfg.templateFn {
			if err := engine.registerTemplateFunc(name, fn); err != nil {
				return nil, fmt.Errorf("gotemplate: register template func %q: %w", name, err)
			}
		}
	}

	return engine, nil
}

// Render delegates to the wrapped engine.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if isTemplateContent(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// Preload parses and caches the named templates without executing them. It
// stops at the first template that fails to load.
func (e *Engine) Preload(names ...string) error {
	if e == nil || e.templateSet == nil {
		return errors.New("gotemplate: engine is nil")
	}
	for _, name := range names {
		if _, err := e.getTemplate(e.templatePath(name)); err != nil {
			return err
		}
	}
	return nil
}

// Cached reports whether name has been parsed already.
func (e *Engine) Cached(name string) bool {
	if e == nil {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.templates[e.templatePath(name)]
	return ok
}

func (e *Engine) templatePath(name string) string {
	if strings.HasSuffix(name, e.tplExt) {
		return name
	}
	return name + e.tplExt
}

// RenderTemplate renders the named template, loading and caching it on first
// use. The result is returned and also written to every writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := e.templatePath(name)
	tmpl, err := e.getTemplate(path)
	if err != nil {
		return "", err
	}
	rendered, err := e.execute(tmpl, data, out)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", path, err)
	}
	return rendered, nil
}

// RenderString parses and renders an inline template. Inline templates are
// not cached.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	rendered, err := e.execute(tmpl, data, out)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template string: %w", err)
	}
	return rendered, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", err
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// RegisterFilter registers template filters on the wrapped engine.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, filter)
}

// GlobalContext seeds global data on the wrapped engine.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}

	globalCtx, err := convertToContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals.Update(globalCtx)
	return nil
}

func (e *Engine) registerTemplateFunc(name string, fn any) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || fn == nil {
		return nil
	}

	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(trimmed) {
			return nil
		}
		return pongo2.RegisterFilter(trimmed, filter)
	}

	if !isCallable(fn) {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals[trimmed] = fn
	return nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

func isTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

// convertToContext accepts maps as-is and flattens any other value through
// its JSON form, so templates see the same keys the JSON tags declare.
func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return copyContext(v), nil
	case map[string]any:
		return copyContext(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out := pongo2.Context{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func copyContext(in map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		if key = strings.TrimSpace(key); key != "" {
			out[key] = value
		}
	}
	return out
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("cssvalue") {
		_ = pongo2.RegisterFilter("cssvalue", filterCSSValue)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterCSSValue keeps host-supplied styling values from breaking out of a
// declaration: it cuts the value at the first character that would end the
// declaration, block or style element.
func filterCSSValue(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	value := in.String()
	if idx := strings.IndexAny(value, ";{}<>\\\""); idx >= 0 {
		value = value[:idx]
	}
	if !utf8.ValidString(value) {
		value = strings.ToValidUTF8(value, "")
	}
	return pongo2.AsValue(strings.TrimSpace(value)), nil
}
