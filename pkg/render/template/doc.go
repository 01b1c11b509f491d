// Package template defines the renderer-agnostic template contract the HTML
// renderer depends on. The gotemplate subpackage provides a pongo2-backed
// implementation that loads templates from an fs.FS or a directory.
package template
