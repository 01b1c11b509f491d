package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassWidget  ChromeClass = "dw-widget"
	ClassTitle   ChromeClass = "dw-title"
	ClassTable   ChromeClass = "dw-table"
	ClassDialog  ChromeClass = "dw-dialog"
	ClassFields  ChromeClass = "dw-fields"
	ClassActions ChromeClass = "dw-actions"
	ClassErrors  ChromeClass = "dw-errors"
)

// Cell classes emitted by the cell renderers.
const (
	ClassBoolean       ChromeClass = "dw-cell-boolean"
	ClassState         ChromeClass = "dw-state"
	ClassStateUnmapped ChromeClass = "dw-state-unmapped"
	ClassLink          ChromeClass = "dw-cell-link"
	ClassImage         ChromeClass = "dw-cell-image"
)

// chromeClassData exposes the chrome classes to templates as "classes".
func chromeClassData() map[string]string {
	return map[string]string{
		"widget":  string(ClassWidget),
		"title":   string(ClassTitle),
		"table":   string(ClassTable),
		"dialog":  string(ClassDialog),
		"fields":  string(ClassFields),
		"actions": string(ClassActions),
		"errors":  string(ClassErrors),
	}
}
