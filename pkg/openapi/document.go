package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-dashwidgets/pkg/model"
)

// ErrOperationNotFound is returned when no operation matches the requested
// id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Option configures parsing.
type Option func(*options)

type options struct {
	validate        bool
	externalRefs    bool
	backendKey      string
	tableName       string
	includeReadOnly bool
	decorators      []model.Decorator
}

// WithValidation validates the document before use. Examples are not
// validated.
func WithValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}

// WithExternalRefs allows $ref pointers to other documents.
func WithExternalRefs() Option {
	return func(o *options) {
		o.externalRefs = true
	}
}

// WithTarget binds every derived field to a column of tableName on the
// backend identified by backendKey. The column is the property name.
func WithTarget(backendKey, tableName string) Option {
	return func(o *options) {
		o.backendKey = strings.TrimSpace(backendKey)
		o.tableName = strings.TrimSpace(tableName)
	}
}

// WithReadOnly keeps readOnly properties, which are skipped by default.
func WithReadOnly() Option {
	return func(o *options) {
		o.includeReadOnly = true
	}
}

// WithDecorators runs decorators, in order, over the derived form before
// FormFromOperation returns it.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *options) {
		o.decorators = append(o.decorators, decorators...)
	}
}

func newOptions(opts []Option) options {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// OperationRef is the metadata of one operation in a document.
type OperationRef struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	HasBody     bool
}

// Parse loads an OpenAPI 3 document from JSON or YAML.
func Parse(ctx context.Context, data []byte, opts ...Option) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	cfg := newOptions(opts)

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.externalRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return spec, nil
}

// Operations lists the operations of spec sorted by id. Operations without
// an operationId are keyed "method:path".
func Operations(spec *openapi3.T) []OperationRef {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	var refs []OperationRef
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			refs = append(refs, OperationRef{
				ID:          operationID(method, path, operation),
				Method:      method,
				Path:        path,
				Summary:     operation.Summary,
				Description: operation.Description,
				HasBody:     operation.RequestBody != nil,
			})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].ID < refs[j].ID
	})
	return refs
}

func findOperation(spec *openapi3.T, id string) (*openapi3.Operation, error) {
	if spec != nil && spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				if operation != nil && operationID(method, path, operation) == id {
					return operation, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
}

func operationID(method, path string, operation *openapi3.Operation) string {
	if operation.OperationID != "" {
		return operation.OperationID
	}
	return strings.ToLower(method) + ":" + path
}
