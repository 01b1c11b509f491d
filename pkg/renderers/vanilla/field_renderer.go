package vanilla

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/render/template"
	"github.com/goliatone/go-dashwidgets/pkg/renderers/vanilla/components"
)

const fieldTemplate = "templates/components/field.tmpl"

type componentRenderer struct {
	templates   template.TemplateRenderer
	registry    *components.Registry
	partials    map[string]string
	widgetID    string
	emptyOption string

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, partials map[string]string, widgetID, emptyOption string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates:      templates,
		registry:       registry,
		partials:       partials,
		widgetID:       widgetID,
		emptyOption:    emptyOption,
		usedComponents: make(map[string]struct{}),
	}
}

// renderAll renders every control wrapped in its label chrome, in order.
func (r *componentRenderer) renderAll(controls []form.Control, errs map[string][]string) (string, error) {
	var out strings.Builder
	for _, control := range controls {
		markup, err := r.render(control, errs[control.Name])
		if err != nil {
			return "", err
		}
		out.WriteString(markup)
	}
	return out.String(), nil
}

func (r *componentRenderer) render(control form.Control, errs []string) (string, error) {
	name := string(control.Kind)
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("component %q not registered for control %q", name, control.Name)
	}

	id := controlID(r.widgetID, control.Name)
	data := components.ComponentData{
		Template:    r.templates,
		Partials:    r.partials,
		ID:          id,
		Invalid:     len(errs) > 0,
		EmptyOption: r.emptyOption,
	}

	var body bytes.Buffer
	if err := descriptor.Renderer(&body, control, data); err != nil {
		return "", fmt.Errorf("render component %q for control %q: %w", name, control.Name, err)
	}
	r.usedComponents[name] = struct{}{}

	return r.templates.RenderTemplate(fieldTemplate, map[string]any{
		"kind":        name,
		"id":          id,
		"label":       control.Label,
		"description": control.Description,
		"required":    control.Required,
		"errors":      errs,
		"body":        body.String(),
	})
}

// stylesheets returns the extra stylesheets of the components rendered so
// far.
func (r *componentRenderer) stylesheets() []string {
	if len(r.usedComponents) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.registry.Stylesheets(names)
}
