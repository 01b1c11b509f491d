// Package table turns column-oriented table input into display rows and
// rendered cells.
//
// Transpose derives rows from columns; DisplayOrder presents them
// most-recent-first without touching the derived slice. RenderCell dispatches
// on the column's type tag and never fails: unknown tags render empty, bad
// numbers render blank and unmapped states render an uncolored swatch.
package table
