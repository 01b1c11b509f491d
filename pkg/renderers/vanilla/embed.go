package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/components/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the widget stylesheet inside AssetsFS.
const StylesheetName = "dashwidgets.css"

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet so hosts can serve it over HTTP
// or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// DefaultStylesheet returns the embedded stylesheet contents.
func DefaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
