package schema

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// Format is the encoding of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the encoding from the file extension, falling back to
// sniffing the first non-blank byte: '{' or '[' means JSON, anything else
// YAML.
func DetectFormat(name string, raw []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Document wraps the raw payload and its origin.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, format: DetectFormat(src.Location(), clone)}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Format reports the detected encoding.
func (d Document) Format() Format {
	return d.format
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
