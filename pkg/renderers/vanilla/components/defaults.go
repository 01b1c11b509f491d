package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-dashwidgets/pkg/form"
)

const templatePrefix = "templates/components/"

// Partial keys themes can override.
const (
	PartialText     = "widgets.text"
	PartialNumber   = "widgets.number"
	PartialDateTime = "widgets.datetime"
	PartialTextArea = "widgets.textarea"
	PartialSelect   = "widgets.select"
	PartialCheckbox = "widgets.checkbox"
)

// NewDefaultRegistry constructs a registry with a component for every form
// control kind.
func NewDefaultRegistry() *Registry {
	registry := New()
	register := func(name, partial string) {
		tmpl := templatePrefix + name + ".tmpl"
		registry.MustRegister(name, Descriptor{
			Renderer:  templateComponentRenderer(partial, tmpl),
			Templates: []string{tmpl},
		})
	}
	register(NameText, PartialText)
	register(NameNumber, PartialNumber)
	register(NameDateTime, PartialDateTime)
	register(NameTextArea, PartialTextArea)
	register(NameSelect, PartialSelect)
	register(NameCheckbox, PartialCheckbox)
	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, control form.Control, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			resolved = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolved, map[string]any{
			"id":          data.ID,
			"invalid":     data.Invalid,
			"emptyOption": data.EmptyOption,
			"control":     ControlData(control),
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// ControlData flattens a control into the keys component templates use.
func ControlData(control form.Control) map[string]any {
	options := make([]map[string]any, 0, len(control.Options))
	for _, option := range control.Options {
		label := option.Label
		if label == "" {
			label = option.Value
		}
		options = append(options, map[string]any{
			"value":    option.Value,
			"label":    label,
			"selected": option.Selected,
		})
	}
	return map[string]any{
		"kind":              string(control.Kind),
		"name":              control.Name,
		"label":             control.Label,
		"description":       control.Description,
		"placeholder":       control.Placeholder,
		"value":             control.Value,
		"pattern":           control.Pattern,
		"validationMessage": control.ValidationMessage,
		"required":          control.Required,
		"checked":           control.Checked,
		"min":               control.MinText(),
		"max":               control.MaxText(),
		"step":              control.Step,
		"rows":              control.Rows,
		"options":           options,
		"autofocus":         control.Autofocus,
	}
}
