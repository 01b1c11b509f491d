package vanilla

import (
	"strings"
	"unicode"
)

// elementID turns a widget tag into a DOM id. Tags carry dots from their
// version suffix, which CSS selectors would read as classes.
func elementID(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "dw-widget"
	}
	return "dw-" + strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, tag)
}

func controlID(widgetID, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return widgetID + "-" + strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, name)
}
