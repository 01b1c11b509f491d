package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dashwidgets/pkg/model"
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem resolves SourceKindFS sources against files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fsys = files
	}
}

// WithStrict rejects column and field types outside the known sets instead
// of letting them render as empty cells or text fields.
func WithStrict() LoaderOption {
	return func(l *Loader) {
		l.strict = true
	}
}

// Loader reads widget inputs and themes from JSON or YAML documents.
type Loader struct {
	fsys   fs.FS
	strict bool
}

// NewLoader constructs a Loader.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Read fetches the raw document behind src.
func (l *Loader) Read(ctx context.Context, src Source) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fsys == nil {
			return Document{}, fmt.Errorf("schema: no filesystem configured for %s", src.Location())
		}
		data, err = fs.ReadFile(l.fsys, src.Location())
	default:
		return Document{}, fmt.Errorf("schema: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", src.Location(), err)
	}
	return NewDocument(src, data)
}

// Decode unmarshals doc into out using the document's format.
func Decode(doc Document, out any) error {
	var err error
	switch doc.Format() {
	case FormatJSON:
		err = json.Unmarshal(doc.raw, out)
	default:
		err = yaml.Unmarshal(doc.raw, out)
	}
	if err != nil {
		return fmt.Errorf("schema: parse %s as %s: %w", doc.Location(), doc.Format(), err)
	}
	return nil
}

// LoadTable reads a TableInput.
func (l *Loader) LoadTable(ctx context.Context, src Source) (*model.TableInput, error) {
	doc, err := l.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	var input model.TableInput
	if err := Decode(doc, &input); err != nil {
		return nil, err
	}
	normalizeTable(&input)
	if l.strict {
		if err := CheckTable(input); err != nil {
			return nil, fmt.Errorf("schema: %s: %w", doc.Location(), err)
		}
	}
	return &input, nil
}

// LoadForm reads a FormInput.
func (l *Loader) LoadForm(ctx context.Context, src Source) (*model.FormInput, error) {
	doc, err := l.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	var input model.FormInput
	if err := Decode(doc, &input); err != nil {
		return nil, err
	}
	if l.strict {
		if err := CheckForm(input); err != nil {
			return nil, fmt.Errorf("schema: %s: %w", doc.Location(), err)
		}
	}
	return &input, nil
}

// LoadTheme reads a Theme. Theme objects are free-form.
func (l *Loader) LoadTheme(ctx context.Context, src Source) (*model.Theme, error) {
	doc, err := l.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	var theme model.Theme
	if err := Decode(doc, &theme); err != nil {
		return nil, err
	}
	return &theme, nil
}

// CheckTable reports the first column with an unknown type.
func CheckTable(input model.TableInput) error {
	for i, column := range input.Columns {
		if !column.Type.Valid() {
			return fmt.Errorf("column %d (%q): unknown type %q", i, column.Header, column.Type)
		}
	}
	return nil
}

// CheckForm reports the first field with an unknown type.
func CheckForm(input model.FormInput) error {
	for i, field := range input.FormFields {
		if !field.Type.OrDefault().Valid() {
			return fmt.Errorf("field %d (%q): unknown type %q", i, field.Label, field.Type)
		}
	}
	return nil
}

// normalizeTable converts YAML-decoded map values into the JSON shapes the
// renderers expect, so both encodings produce the same cells.
func normalizeTable(input *model.TableInput) {
	for i := range input.Columns {
		for j := range input.Columns[i].Values {
			input.Columns[i].Values[j].Value = normalizeValue(input.Columns[i].Values[j].Value)
		}
	}
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
