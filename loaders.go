package dashwidgets

import (
	"context"

	"github.com/goliatone/go-dashwidgets/pkg/model"
	"github.com/goliatone/go-dashwidgets/pkg/schema"
)

// LoadTable reads a table payload from a JSON or YAML file.
func LoadTable(ctx context.Context, path string, opts ...schema.LoaderOption) (*model.TableInput, error) {
	return schema.NewLoader(opts...).LoadTable(ctx, schema.SourceFromFile(path))
}

// LoadForm reads a form payload from a JSON or YAML file.
func LoadForm(ctx context.Context, path string, opts ...schema.LoaderOption) (*model.FormInput, error) {
	return schema.NewLoader(opts...).LoadForm(ctx, schema.SourceFromFile(path))
}

// LoadTheme reads a theme object from a JSON or YAML file.
func LoadTheme(ctx context.Context, path string, opts ...schema.LoaderOption) (*model.Theme, error) {
	return schema.NewLoader(opts...).LoadTheme(ctx, schema.SourceFromFile(path))
}
