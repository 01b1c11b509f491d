package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Hidden input names the host understands.
const (
	HiddenCSRF    = "_csrf"
	HiddenWidget  = "_widget"
	HiddenVersion = "_version"
	HiddenIntent  = "_intent"
)

// Intents carried by the widget buttons under HiddenIntent.
const (
	IntentOpen   = "open"
	IntentCancel = "cancel"
	IntentSubmit = "submit"
	IntentReset  = "reset"
)

// HiddenField is a hidden input emitted inside the widget form.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken carries the host's anti-forgery token under HiddenCSRF.
func CSRFToken(token string) HiddenField {
	return Hidden(HiddenCSRF, token)
}

// WidgetTag identifies which versioned element produced the submission, so a
// host serving several widget versions can route it.
func WidgetTag(tag string) HiddenField {
	return Hidden(HiddenWidget, tag)
}

// InputVersion carries the input revision the form was rendered from. Hosts
// use it to detect submissions against stale data.
func InputVersion(version any) HiddenField {
	return Hidden(HiddenVersion, version)
}

// IsReserved reports whether name is one of the input names above.
// Widgets drop these before mapping submitted values.
func IsReserved(name string) bool {
	switch name {
	case HiddenCSRF, HiddenWidget, HiddenVersion, HiddenIntent:
		return true
	default:
		return false
	}
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		out[field.Name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields orders hidden fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	result := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		result = append(result, HiddenField{Name: name, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	if len(result) == 0 {
		return nil
	}
	return result
}

// StripReserved returns a copy of values without reserved inputs.
func StripReserved(values url.Values) url.Values {
	if values == nil {
		return nil
	}
	out := make(url.Values, len(values))
	for name, vs := range values {
		if IsReserved(name) {
			continue
		}
		out[name] = append([]string(nil), vs...)
	}
	return out
}
