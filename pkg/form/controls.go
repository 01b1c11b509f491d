package form

import (
	"net/url"
	"strconv"

	"github.com/goliatone/go-dashwidgets/pkg/model"
)

// ControlKind identifies the input control a renderer should draw.
type ControlKind string

const (
	ControlText     ControlKind = "text"
	ControlNumber   ControlKind = "number"
	ControlDateTime ControlKind = "datetime"
	ControlTextArea ControlKind = "textarea"
	ControlSelect   ControlKind = "select"
	ControlCheckbox ControlKind = "checkbox"
)

// DefaultValidationMessage is shown for pattern mismatches when the field
// declares no message of its own.
const DefaultValidationMessage = "Invalid input"

// TextAreaRows is the visible height of textarea controls.
const TextAreaRows = 3

// Option is a single choice of a select control.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Control is the renderer-facing description of one input. It is derived
// from a field (or table column) schema and carries everything needed to
// draw the control and to emulate native constraint validation.
type Control struct {
	Kind              ControlKind     `json:"kind"`
	Field             model.FieldType `json:"field,omitempty"`
	Index             int             `json:"index"`
	Name              string          `json:"name"`
	Label             string          `json:"label,omitempty"`
	Description       string          `json:"description,omitempty"`
	Placeholder       string          `json:"placeholder,omitempty"`
	Value             string          `json:"value,omitempty"`
	Pattern           string          `json:"pattern,omitempty"`
	ValidationMessage string          `json:"validationMessage,omitempty"`
	Required          bool            `json:"required,omitempty"`
	Checked           bool            `json:"checked,omitempty"`
	Min               *float64        `json:"min,omitempty"`
	Max               *float64        `json:"max,omitempty"`
	Step              string          `json:"step,omitempty"`
	Rows              int             `json:"rows,omitempty"`
	Options           []Option        `json:"options,omitempty"`
	Autofocus         bool            `json:"autofocus,omitempty"`
}

// MinText formats Min for an HTML attribute ("" when unset).
func (c Control) MinText() string {
	return formatBound(c.Min)
}

// MaxText formats Max for an HTML attribute ("" when unset).
func (c Control) MaxText() string {
	return formatBound(c.Max)
}

// FieldName returns the submitted input name for the field at schema index i.
// Names are derived from the position in the full schema so hidden fields
// never shift the names of the visible ones.
func FieldName(i int) string {
	return "column-" + strconv.Itoa(i)
}

// IsRequired reports whether the control for field must be filled in. A
// default value always wins over the schema's required flag.
func IsRequired(field model.FieldSchema) bool {
	return field.Required && field.DefaultValue == ""
}

// VisibleFields returns the schema indexes of the fields that are rendered.
func VisibleFields(input model.FormInput) []int {
	var out []int
	for i, field := range input.FormFields {
		if field.HiddenField {
			continue
		}
		out = append(out, i)
	}
	return out
}

// BuildControls maps every visible field to its control in schema order.
func BuildControls(input model.FormInput) []Control {
	indexes := VisibleFields(input)
	if len(indexes) == 0 {
		return nil
	}
	controls := make([]Control, 0, len(indexes))
	for _, i := range indexes {
		controls = append(controls, BuildControl(i, input.FormFields[i]))
	}
	return controls
}

// BuildControl maps a single field to its control. Fields without a type
// render as text fields.
func BuildControl(index int, field model.FieldSchema) Control {
	control := Control{
		Field:       field.Type.OrDefault(),
		Index:       index,
		Name:        FieldName(index),
		Label:       field.Label,
		Description: field.Description,
		Required:    IsRequired(field),
	}

	switch field.Type.OrDefault() {
	case model.FieldTypeTextField:
		control.Kind = ControlText
		control.Placeholder = field.DefaultValue
		control.Pattern = field.Validation
		control.ValidationMessage = field.ValidationMessage
		if control.ValidationMessage == "" {
			control.ValidationMessage = DefaultValidationMessage
		}
	case model.FieldTypeNumberField:
		control.Kind = ControlNumber
		control.Placeholder = field.DefaultValue
		control.Step = "any"
		control.Min = field.Min
		control.Max = field.Max
	case model.FieldTypeDateTime:
		control.Kind = ControlDateTime
		control.Value = field.DefaultValue
	case model.FieldTypeTextArea:
		control.Kind = ControlTextArea
		control.Placeholder = field.DefaultValue
		control.Rows = TextAreaRows
	case model.FieldTypeDropdown:
		control.Kind = ControlSelect
		control.Value = field.DefaultValue
		control.Options = dropdownOptions(field)
	case model.FieldTypeCheckbox:
		control.Kind = ControlCheckbox
		control.Checked = field.DefaultValue == "true"
	default:
		control.Kind = ControlText
		control.Placeholder = field.DefaultValue
	}
	return control
}

func dropdownOptions(field model.FieldSchema) []Option {
	if len(field.Values) == 0 {
		return nil
	}
	options := make([]Option, 0, len(field.Values))
	for _, value := range field.Values {
		options = append(options, Option{
			Value:    value.Value,
			Label:    value.DisplayLabel,
			Selected: value.Value == field.DefaultValue,
		})
	}
	return options
}

func formatBound(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

// Fill returns a copy of controls with the user's current values applied, so
// a re-render preserves input. Controls without an entry in values keep
// their schema defaults; a nil values map returns controls unchanged.
func Fill(controls []Control, values url.Values) []Control {
	if len(controls) == 0 || values == nil {
		return controls
	}
	out := make([]Control, len(controls))
	for i, control := range controls {
		raw, present := values[control.Name]
		if !present {
			if control.Kind == ControlCheckbox {
				control.Checked = false
			}
			out[i] = control
			continue
		}
		value := ""
		if len(raw) > 0 {
			value = raw[0]
		}
		switch control.Kind {
		case ControlCheckbox:
			control.Checked = value == "on"
		case ControlSelect:
			control.Value = value
			if len(control.Options) > 0 {
				options := make([]Option, len(control.Options))
				for j, option := range control.Options {
					option.Selected = option.Value == value
					options[j] = option
				}
				control.Options = options
			}
		default:
			control.Value = value
		}
		out[i] = control
	}
	return out
}
