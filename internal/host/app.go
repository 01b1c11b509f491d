// Package host is a reference application embedding the widgets behind an
// HTTP server. It owns durability: every emitted event is written to sqlite
// and table additions are fed back to the editor as new input.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	theme "github.com/goliatone/go-theme"

	dashwidgets "github.com/goliatone/go-dashwidgets"
	"github.com/goliatone/go-dashwidgets/pkg/events"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/vanilla"
	"github.com/goliatone/go-dashwidgets/pkg/styling"
	"github.com/goliatone/go-dashwidgets/pkg/widget"
)

// App serializes access to one table editor and one form renderer.
type App struct {
	mu sync.Mutex

	logger    *slog.Logger
	store     *Store
	renderers *dashwidgets.Renderers
	version   string
	theme     *theme.RendererConfig

	table   *widget.TableEditor
	form    *widget.FormRenderer
	pending []events.Event
}

// NewApp loads the configured inputs, replays stored table rows and wires
// the widgets' events to store.
func NewApp(ctx context.Context, cfg Config, store *Store, logger *slog.Logger) (*App, error) {
	if store == nil {
		return nil, fmt.Errorf("host: store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	renderers, err := dashwidgets.NewRenderers(
		[]vanilla.Option{vanilla.WithStylesheetURL(AssetsPrefix + vanilla.StylesheetName)},
		nil,
	)
	if err != nil {
		return nil, err
	}

	a := &App{
		logger:    logger,
		store:     store,
		renderers: renderers,
		version:   cfg.Version,
	}

	registry := widget.NewRegistry()
	preload := widget.WithFormLoader(func() {
		if err := renderers.HTML.Preload(); err != nil {
			logger.Error("preload form templates", "error", err)
		}
	})
	if err := widget.DefineBuiltins(registry, cfg.Version, []widget.TableOption{preload}, nil); err != nil {
		return nil, err
	}

	var themeObject *model.Theme
	if cfg.ThemeFile != "" {
		if themeObject, err = dashwidgets.LoadTheme(ctx, cfg.ThemeFile); err != nil {
			return nil, err
		}
	}

	var resolver styling.StyleResolver
	if cfg.ThemeManifest != "" {
		catalog := styling.NewCatalog("", cfg.ThemeVariant)
		manifest, err := catalog.LoadFile(cfg.ThemeManifest)
		if err != nil {
			return nil, err
		}
		selection, err := catalog.Select(manifest.Name, cfg.ThemeVariant)
		if err != nil {
			return nil, err
		}
		a.theme = styling.RendererConfig(selection)
		resolver = styling.NewSelectionResolver(selection)
		logger.Info("theme selected", "theme", selection.Theme, "variant", selection.Variant)
	}

	if cfg.TableFile != "" {
		input, err := dashwidgets.LoadTable(ctx, cfg.TableFile)
		if err != nil {
			return nil, err
		}
		el, err := registry.Create(widget.TagName(widget.ElementTableEditor, cfg.Version))
		if err != nil {
			return nil, err
		}
		a.table = el.(*widget.TableEditor)
		a.table.SetStyleResolver(resolver)
		a.table.SetTheme(themeObject)

		stored, err := store.Rows(ctx, a.table.Tag())
		if err != nil {
			return nil, err
		}
		for _, row := range stored {
			input = appendRow(input, row.Values)
		}
		a.table.SetInputData(input)
		a.table.AddEventListener(events.TypeActionSubmit, a.enqueue)
		logger.Info("table editor ready", "tag", a.table.Tag(), "input", cfg.TableFile, "restored_rows", len(stored))
	}

	if cfg.FormFile != "" {
		input, err := dashwidgets.LoadForm(ctx, cfg.FormFile)
		if err != nil {
			return nil, err
		}
		el, err := registry.Create(widget.TagName(widget.ElementFormRenderer, cfg.Version))
		if err != nil {
			return nil, err
		}
		a.form = el.(*widget.FormRenderer)
		a.form.SetStyleResolver(resolver)
		a.form.SetTheme(themeObject)
		a.form.SetInputData(input)
		a.form.AddEventListener(events.TypeDataSubmit, a.enqueue)
		logger.Info("form renderer ready", "tag", a.form.Tag(), "input", cfg.FormFile)
	}

	return a, nil
}

// enqueue runs inside a widget's submit call; the handler persists the
// queued events once the widget has settled.
func (a *App) enqueue(e events.Event) {
	a.pending = append(a.pending, e)
}

// flush persists queued events in order. An event leaves the queue only once
// stored, so a failed write keeps it and everything after it for the next
// flush. Callers hold a.mu.
func (a *App) flush(ctx context.Context) error {
	for len(a.pending) > 0 {
		if err := a.persist(ctx, a.pending[0]); err != nil {
			a.logger.Error("persist event", "type", a.pending[0].Type, "queued", len(a.pending), "error", err)
			return err
		}
		a.pending = a.pending[1:]
	}
	a.pending = nil
	return nil
}

func (a *App) persist(ctx context.Context, e events.Event) error {
	switch detail := e.Detail.(type) {
	case map[string]string:
		id, err := a.store.AppendRow(ctx, a.table.Tag(), detail)
		if err != nil {
			return err
		}
		a.table.SetInputData(appendRow(a.table.InputData(), detail))
		a.logger.Info("row appended", "id", id, "tag", a.table.Tag())
	case []model.SubmissionRecord:
		id, err := a.store.SaveSubmission(ctx, a.form.Tag(), detail)
		if err != nil {
			return err
		}
		a.logger.Info("submission stored", "id", id, "tag", a.form.Tag(), "records", len(detail))
	default:
		a.logger.Warn("unhandled event", "type", e.Type)
	}
	return nil
}
