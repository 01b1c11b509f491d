// Package styling resolves the colors a widget renders with.
//
// Every token follows the same precedence: an ambient style value supplied by
// the host environment (a StyleResolver), then the host's theme object, then
// the renderer default. Theme manifests from go-theme can act as the ambient
// environment through NewSelectionResolver, and RendererConfig turns a
// selection into the configuration renderers consume.
package styling
