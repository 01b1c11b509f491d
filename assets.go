package dashwidgets

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/goliatone/go-dashwidgets/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the widget stylesheet.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// AssetsHandler serves AssetsFS below prefix.
//
// Typical mount:
//
//	mux.Handle("/assets/", dashwidgets.AssetsHandler("/assets/"))
func AssetsHandler(prefix string) http.Handler {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return http.StripPrefix(prefix, http.FileServerFS(AssetsFS()))
}
