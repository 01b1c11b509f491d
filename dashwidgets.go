// Package dashwidgets bundles the table editor and form widgets with their
// default renderers. Callers that need finer control use the packages under
// pkg/ directly.
package dashwidgets

import (
	"context"
	"fmt"

	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/render"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/tui"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/vanilla"
	"github.com/goliatone/go-dashwidgets/pkg/widget"
)

// RenderOptions describes per-request data renderers use without touching
// widget state.
type RenderOptions = render.RenderOptions

// TableInput is the table editor payload.
type TableInput = model.TableInput

// FormInput is the form widget payload.
type FormInput = model.FormInput

// SubmissionRecord is one value of a data-submit event.
type SubmissionRecord = model.SubmissionRecord

// Renderers holds the default registry along with typed handles on the
// renderers it contains.
type Renderers struct {
	Registry *render.Registry
	HTML     *vanilla.Renderer
	Terminal *tui.Renderer
}

// NewRenderers builds a registry with the vanilla HTML renderer (the
// default) and the terminal renderer.
func NewRenderers(htmlOpts []vanilla.Option, tuiOpts []tui.Option) (*Renderers, error) {
	html, err := vanilla.New(htmlOpts...)
	if err != nil {
		return nil, fmt.Errorf("dashwidgets: vanilla renderer: %w", err)
	}
	term, err := tui.New(tuiOpts...)
	if err != nil {
		return nil, fmt.Errorf("dashwidgets: tui renderer: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(term); err != nil {
		return nil, err
	}
	return &Renderers{Registry: registry, HTML: html, Terminal: term}, nil
}

// NewTableEditor constructs a table editor whose dialog warms the HTML
// control templates the first time it opens. Preload failures are passed to
// onError when set; rendering reports them again later.
func (r *Renderers) NewTableEditor(onError func(error), opts ...widget.TableOption) *widget.TableEditor {
	loader := widget.WithFormLoader(func() {
		if err := r.HTML.Preload(); err != nil && onError != nil {
			onError(err)
		}
	})
	return widget.NewTableEditor(append([]widget.TableOption{loader}, opts...)...)
}

// RenderTable renders editor's current view with the named renderer. A blank
// name selects the registry default.
func (r *Renderers) RenderTable(ctx context.Context, name string, editor *widget.TableEditor, opts RenderOptions) ([]byte, error) {
	renderer, err := r.Registry.Get(name)
	if err != nil {
		return nil, err
	}
	return renderer.RenderTable(ctx, editor.View(), opts)
}

// RenderForm renders form's current view with the named renderer.
func (r *Renderers) RenderForm(ctx context.Context, name string, form *widget.FormRenderer, opts RenderOptions) ([]byte, error) {
	renderer, err := r.Registry.Get(name)
	if err != nil {
		return nil, err
	}
	return renderer.RenderForm(ctx, form.View(), opts)
}
