// Package widget hosts the two dashboard elements, TableEditor and
// FormRenderer.
//
// Each widget ingests host properties through identity-tracked setters: a
// new reference triggers a synchronous recompute of derived state (rows,
// controls, theme tokens) before the update callback runs, while the same
// reference with mutated contents is ignored. View returns the render model
// consumed by the renderers under pkg/renderers.
package widget
