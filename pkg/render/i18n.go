package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the text used when key cannot be
// translated. fallback is the English default.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Chrome label keys.
const (
	LabelSubmit      = "widgets.submit"
	LabelCancel      = "widgets.cancel"
	LabelReset       = "widgets.reset"
	LabelAdd         = "widgets.add"
	LabelNoData      = "widgets.table.empty"
	LabelDataEntry   = "widgets.dialog.title"
	LabelSelectEmpty = "widgets.select.empty"
)

var defaultLabels = map[string]string{
	LabelSubmit:      "Submit",
	LabelCancel:      "Cancel",
	LabelReset:       "Reset",
	LabelAdd:         "Add",
	LabelNoData:      "No Data",
	LabelDataEntry:   "Data Entry",
	LabelSelectEmpty: "",
}

// Labels holds the localised widget chrome.
type Labels struct {
	Submit      string
	Cancel      string
	Reset       string
	Add         string
	NoData      string
	DataEntry   string
	SelectEmpty string
}

// ResolveLabels translates the chrome labels for opts.Locale.
func ResolveLabels(opts RenderOptions) Labels {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	tr := func(key string) string {
		return translate(opts.Locale, key, defaultLabels[key], opts.Translator, onMissing)
	}
	return Labels{
		Submit:      tr(LabelSubmit),
		Cancel:      tr(LabelCancel),
		Reset:       tr(LabelReset),
		Add:         tr(LabelAdd),
		NoData:      tr(LabelNoData),
		DataEntry:   tr(LabelDataEntry),
		SelectEmpty: tr(LabelSelectEmpty),
	}
}

// Translate resolves a single key with the same fallback rules as
// ResolveLabels.
func Translate(opts RenderOptions, key, fallback string) string {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(opts.Locale, key, fallback, opts.Translator, onMissing)
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}

func missingTranslationDefault(_, _, fallback string, _ error) string {
	return fallback
}
