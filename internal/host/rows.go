package host

import (
	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/table"
)

// appendRow returns a copy of input with one more value in every column. The
// widget only recomputes on a new reference, so input itself is left alone.
// Columns the dialog does not show receive a nil value, and short columns are
// padded so the new values share one row index.
func appendRow(input *model.TableInput, values map[string]string) *model.TableInput {
	if input == nil {
		return nil
	}
	rowCount := table.RowCount(input.Columns)
	next := *input
	next.Columns = make([]model.ColumnSchema, len(input.Columns))
	for i, column := range input.Columns {
		cells := make([]model.CellValue, rowCount, rowCount+1)
		copy(cells, column.Values)
		column.Values = append(cells, cellValue(i, column, values))
		next.Columns[i] = column
	}
	return &next
}

func cellValue(i int, column model.ColumnSchema, values map[string]string) model.CellValue {
	if !column.ShowInForm {
		return model.CellValue{}
	}
	raw := values[table.ControlName(i, column)]
	switch column.Type {
	case model.ColumnTypeNumber:
		return model.CellValue{Value: form.FormatValue(raw, model.FieldTypeNumberField)}
	case model.ColumnTypeBoolean:
		return model.CellValue{Value: form.FormatValue(raw, model.FieldTypeCheckbox)}
	default:
		return model.CellValue{Value: raw}
	}
}
