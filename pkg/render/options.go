package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request data renderers use to customise output
// without touching widget state.
type RenderOptions struct {
	// Action is the URL the form posts to. Renderers fall back to an empty
	// action (post to the current URL) when unset.
	Action string
	// OpenAction is the URL the table's add button posts to in order to open
	// the dialog without client-side scripting.
	OpenAction string
	// Stylesheets are extra stylesheet URLs linked ahead of the widget.
	Stylesheets []string
	// HiddenFields are emitted as hidden inputs inside the form, e.g. a CSRF
	// token or the widget version.
	HiddenFields map[string]string
	// Theme is the go-theme renderer configuration derived from a selection.
	Theme *theme.RendererConfig
	// Locale and Translator localise the widget chrome (button labels and
	// placeholders). Missing translations fall back to English.
	Locale     string
	Translator Translator
	// OnMissing customises the fallback for missing translations.
	OnMissing MissingTranslationHandler
}
