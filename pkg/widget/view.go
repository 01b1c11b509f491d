package widget

import (
	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/styling"
	"github.com/goliatone/go-dashwidgets/pkg/table"
)

// DefaultFormAccent colors the form's add button when the theme declares no
// accent.
const DefaultFormAccent = "#9064f7"

// TableView is the render model of a TableEditor. Rows are display-ordered
// (most recent first) and already dispatched into cells.
type TableView struct {
	Tag              string
	Title            string
	SubTitle         string
	Tokens           styling.Tokens
	Columns          []table.ColumnStyle
	Rows             [][]table.Cell
	Empty            bool
	RowBorder        string
	HeaderFontSize   string
	HeaderBackground string
	Controls         []form.Control
	DialogOpen       bool
	DialogTitle      string
	AccentColor      string
}

// FormView is the render model of a FormRenderer.
type FormView struct {
	Tag         string
	Title       string
	SubTitle    string
	Tokens      styling.Tokens
	DialogMode  bool
	DialogOpen  bool
	DialogTitle string
	AccentColor string
	Controls    []form.Control
	Errors      map[string][]string
}

// ErrorsFor returns the validation messages for control name.
func (v FormView) ErrorsFor(name string) []string {
	if v.Errors == nil {
		return nil
	}
	return v.Errors[name]
}
