package render

import (
	"context"

	"github.com/goliatone/go-dashwidgets/pkg/widget"
)

// Renderer turns widget render models into a byte representation (HTML,
// terminal text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	RenderTable(ctx context.Context, view widget.TableView, options RenderOptions) ([]byte, error)
	RenderForm(ctx context.Context, view widget.FormView, options RenderOptions) ([]byte, error)
}
