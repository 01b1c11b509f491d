package table

import "github.com/goliatone/go-dashwidgets/pkg/model"

// Transpose converts column-oriented values into rows. Column i places its
// value at index j into position i of row j; rows are created the first time
// an index is seen. Columns with shorter value sequences leave later rows
// sparse: missing positions before a present cell hold the zero CellValue and
// trailing positions are omitted, so a row never exceeds len(columns) cells
// and cell i always belongs to column i.
func Transpose(columns []model.ColumnSchema) []model.Row {
	if len(columns) == 0 {
		return nil
	}

	var rows []model.Row
	for i, column := range columns {
		for j, value := range column.Values {
			for len(rows) <= j {
				rows = append(rows, make(model.Row, 0, len(columns)))
			}
			for len(rows[j]) < i {
				rows[j] = append(rows[j], model.CellValue{})
			}
			rows[j] = append(rows[j], value)
		}
	}
	return rows
}

// DisplayOrder returns the rows most-recent-first. The result is a new slice;
// rows itself is left untouched so repeated renders yield the same order.
func DisplayOrder(rows []model.Row) []model.Row {
	if len(rows) == 0 {
		return nil
	}
	out := make([]model.Row, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = row
	}
	return out
}

// RowCount reports max(len(values)) across columns without building rows.
func RowCount(columns []model.ColumnSchema) int {
	count := 0
	for _, column := range columns {
		if n := len(column.Values); n > count {
			count = n
		}
	}
	return count
}
