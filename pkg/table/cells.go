package table

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/goliatone/go-dashwidgets/pkg/model"
)

// Boolean glyphs rendered by boolean columns.
const (
	GlyphTrue  = "✓"
	GlyphFalse = "-"
)

// Cell is the rendered form of a single table cell. The concrete variants are
// TextCell, NumberCell, BooleanCell, StateCell, LinkCell, ImageCell and
// EmptyCell; renderers switch over them.
type Cell interface {
	cell()
}

// TextCell renders text as-is.
type TextCell struct {
	Text string
}

// NumberCell renders a formatted number. Text is empty for non-numeric input.
type NumberCell struct {
	Text string
}

// BooleanCell renders one of two glyphs.
type BooleanCell struct {
	Checked bool
}

// Glyph returns the glyph for the cell state.
func (c BooleanCell) Glyph() string {
	if c.Checked {
		return GlyphTrue
	}
	return GlyphFalse
}

// StateCell renders a colored swatch. Matched is false when the value had no
// entry in the column's state map; Color is then empty and renderers fall
// back to an uncolored swatch.
type StateCell struct {
	State   string
	Color   string
	Matched bool
}

// LinkCell renders a value wrapped in an external link. Href is empty, not
// absent, when the host supplied no link.
type LinkCell struct {
	Href string
	Text string
}

// ImageCell renders an image wrapped in an external link.
type ImageCell struct {
	Href string
	Src  string
}

// EmptyCell renders nothing; produced for unknown column types.
type EmptyCell struct{}

func (TextCell) cell()    {}
func (NumberCell) cell()  {}
func (BooleanCell) cell() {}
func (StateCell) cell()   {}
func (LinkCell) cell()    {}
func (ImageCell) cell()   {}
func (EmptyCell) cell()   {}

// RenderCell selects the cell renderer for column.Type. It is a pure
// function of its inputs.
func RenderCell(value model.CellValue, column model.ColumnSchema) Cell {
	switch column.Type {
	case model.ColumnTypeString:
		return TextCell{Text: Stringify(value.Value)}
	case model.ColumnTypeNumber:
		return NumberCell{Text: FormatNumber(value.Value, column.Styling.Precision)}
	case model.ColumnTypeBoolean:
		return BooleanCell{Checked: Truthy(value.Value)}
	case model.ColumnTypeState:
		return renderState(value.Value, column)
	case model.ColumnTypeButton:
		return LinkCell{Href: value.Link, Text: Stringify(value.Value)}
	case model.ColumnTypeImage:
		return ImageCell{Href: value.Link, Src: Stringify(value.Value)}
	default:
		return EmptyCell{}
	}
}

// RenderRow renders every cell of row against the column at the same
// position. Cells without a matching column render as EmptyCell.
func RenderRow(row model.Row, columns []model.ColumnSchema) []Cell {
	cells := make([]Cell, len(row))
	for i, value := range row {
		if i >= len(columns) {
			cells[i] = EmptyCell{}
			continue
		}
		cells[i] = RenderCell(value, columns[i])
	}
	return cells
}

func renderState(value any, column model.ColumnSchema) StateCell {
	key := Stringify(value)
	states := ParseStateMap(column.Styling.StateMap)
	color, ok := states.Color(key)
	return StateCell{State: key, Color: color, Matched: ok}
}

// FormatNumber formats value with precision decimals (zero when nil). Values
// that are not numbers, including numeric strings and NaN, format as "".
func FormatNumber(value any, precision *int) string {
	number, ok := toFloat(value)
	if !ok || math.IsNaN(number) {
		return ""
	}
	if math.IsInf(number, 1) {
		return "Infinity"
	}
	if math.IsInf(number, -1) {
		return "-Infinity"
	}

	digits := 0
	if precision != nil {
		digits = *precision
	}
	if digits < 0 {
		digits = 0
	}
	if digits > 100 {
		digits = 100
	}
	return strconv.FormatFloat(number, 'f', digits, 64)
}

// Truthy mirrors the loose truthiness hosts expect from boolean columns:
// nil, false, zero, NaN and "" are false; everything else is true.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}
	if number, ok := toFloat(value); ok {
		return number != 0 && !math.IsNaN(number)
	}
	return true
}

// Stringify converts a primitive cell value to display text. nil becomes "".
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	}
	if number, ok := toFloat(value); ok {
		return strconv.FormatFloat(number, 'f', -1, 64)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
