package table

import (
	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/model"
)

// ControlName returns the input name used for column i in the add-record
// form: the header, or column-<i> when the header is empty.
func ControlName(i int, column model.ColumnSchema) string {
	if column.Header != "" {
		return column.Header
	}
	return form.FieldName(i)
}

// FormControls builds the add-record controls for every column flagged
// ShowInForm, in column order.
func FormControls(columns []model.ColumnSchema) []form.Control {
	var controls []form.Control
	for i, column := range columns {
		if !column.ShowInForm {
			continue
		}
		control := form.Control{
			Index: i,
			Name:  ControlName(i, column),
			Label: column.Header,
		}
		switch column.Type {
		case model.ColumnTypeBoolean:
			control.Kind = form.ControlCheckbox
		case model.ColumnTypeState:
			control.Kind = form.ControlSelect
			for _, key := range ParseStateMap(column.Styling.StateMap).Keys() {
				control.Options = append(control.Options, form.Option{Value: key, Label: key})
			}
		case model.ColumnTypeNumber:
			control.Kind = form.ControlNumber
			control.Step = "any"
		default:
			control.Kind = form.ControlText
		}
		controls = append(controls, control)
	}
	if len(controls) > 0 {
		controls[0].Autofocus = true
	}
	return controls
}
