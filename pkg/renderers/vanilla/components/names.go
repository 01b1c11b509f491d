package components

import "github.com/goliatone/go-dashwidgets/pkg/form"

// Component names match the form control kinds they render.
const (
	NameText     = string(form.ControlText)
	NameNumber   = string(form.ControlNumber)
	NameDateTime = string(form.ControlDateTime)
	NameTextArea = string(form.ControlTextArea)
	NameSelect   = string(form.ControlSelect)
	NameCheckbox = string(form.ControlCheckbox)
)
