package template

import (
	"io"
)

// TemplateRenderer is the seam between renderers and a template engine.
// Render accepts either a template name or inline template content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// Preloader is implemented by engines that can parse templates ahead of
// their first render.
type Preloader interface {
	Preload(names ...string) error
}
