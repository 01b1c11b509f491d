// Package form derives input controls from field schemas, emulates the
// browser's native constraint validation and maps submitted values into
// submission records.
package form
