package form

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Messages reported by Validate, modeled on the browser's constraint
// validation wording.
const (
	MessageRequired      = "Please fill out this field."
	MessageCheckRequired = "Please check this box if you want to proceed."
	MessageSelect        = "Please select an item in the list."
	MessageNumber        = "Please enter a number."
)

// ValidationError aggregates constraint failures keyed by control name.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "form: validation failed"
	}
	names := e.FieldNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return "form: validation failed: " + strings.Join(parts, ", ")
}

// FieldNames returns the failing control names sorted.
func (e *ValidationError) FieldNames() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *ValidationError) add(name, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[name] = append(e.Fields[name], message)
}

// Validate checks values against the native constraints carried by controls:
// required, pattern, number syntax and min/max. It performs no validation
// beyond what a browser would. A nil error means the form may be submitted.
func Validate(controls []Control, values url.Values) error {
	verr := &ValidationError{}
	for _, control := range controls {
		raw := values.Get(control.Name)
		validateControl(verr, control, raw)
	}
	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

func validateControl(verr *ValidationError, control Control, raw string) {
	switch control.Kind {
	case ControlCheckbox:
		if control.Required && raw != "on" {
			verr.add(control.Name, MessageCheckRequired)
		}
		return
	case ControlSelect:
		if control.Required && raw == "" {
			verr.add(control.Name, MessageSelect)
		}
		return
	}

	if raw == "" {
		if control.Required {
			verr.add(control.Name, MessageRequired)
		}
		return
	}

	switch control.Kind {
	case ControlText:
		if control.Pattern != "" && !matchesPattern(control.Pattern, raw) {
			verr.add(control.Name, control.ValidationMessage)
		}
	case ControlNumber:
		number, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			verr.add(control.Name, MessageNumber)
			return
		}
		if control.Min != nil && number < *control.Min {
			verr.add(control.Name, fmt.Sprintf("Value must be greater than or equal to %s.", control.MinText()))
		}
		if control.Max != nil && number > *control.Max {
			verr.add(control.Name, fmt.Sprintf("Value must be less than or equal to %s.", control.MaxText()))
		}
	}
}

// matchesPattern applies pattern the way the HTML pattern attribute does:
// anchored to the whole value. Patterns that fail to compile are ignored.
func matchesPattern(pattern, value string) bool {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return true
	}
	return re.MatchString(value)
}
