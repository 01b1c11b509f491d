package table

import "github.com/goliatone/go-dashwidgets/pkg/model"

// Text alignment values emitted into column styles.
const (
	AlignStart  = "start"
	AlignCenter = "center"
	AlignEnd    = "end"
)

// TextAlign returns the default text alignment for a column type.
func TextAlign(columnType model.ColumnType) string {
	switch columnType {
	case model.ColumnTypeNumber:
		return AlignEnd
	case model.ColumnTypeButton, model.ColumnTypeString:
		return AlignStart
	case model.ColumnTypeBoolean, model.ColumnTypeState, model.ColumnTypeImage:
		return AlignCenter
	default:
		return AlignStart
	}
}

// DefaultRowBorder is applied to rows when the table styling omits one.
const DefaultRowBorder = "1px solid #ddd"

// ColumnStyle is the resolved presentation of one column, ready for a
// renderer to turn into CSS.
type ColumnStyle struct {
	Index        int    `json:"index"`
	Header       string `json:"header"`
	Type         string `json:"type"`
	Align        string `json:"align"`
	Width        string `json:"width,omitempty"`
	HeaderWidth  string `json:"headerWidth,omitempty"`
	FontSize     string `json:"fontSize,omitempty"`
	FontWeight   string `json:"fontWeight,omitempty"`
	Color        string `json:"color,omitempty"`
	Border       string `json:"border,omitempty"`
	HeaderBorder string `json:"headerBorder,omitempty"`
	Height       string `json:"height,omitempty"`
}

// ResolveColumnStyles computes per-column styles. Column text falls back to
// subtitleColor when the column declares no color of its own.
func ResolveColumnStyles(input model.TableInput, subtitleColor string) []ColumnStyle {
	if len(input.Columns) == 0 {
		return nil
	}
	styles := make([]ColumnStyle, len(input.Columns))
	for i, column := range input.Columns {
		color := column.Styling.Color
		if color == "" {
			color = subtitleColor
		}
		styles[i] = ColumnStyle{
			Index:        i,
			Header:       column.Header,
			Type:         string(column.Type),
			Align:        TextAlign(column.Type),
			Width:        column.Styling.Width,
			HeaderWidth:  column.Width,
			FontSize:     column.Styling.FontSize,
			FontWeight:   column.Styling.FontWeight,
			Color:        color,
			Border:       column.Styling.Border,
			HeaderBorder: column.Border,
			Height:       input.Styling.RowHeight,
		}
	}
	return styles
}

// RowBorder returns the configured row border or DefaultRowBorder.
func RowBorder(styling model.TableStyling) string {
	if styling.RowBorder != "" {
		return styling.RowBorder
	}
	return DefaultRowBorder
}
