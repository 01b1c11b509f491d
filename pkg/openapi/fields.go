package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-dashwidgets/pkg/model"
)

// Extensions read from property schemas.
const (
	ExtensionOrder  = "x-order"
	ExtensionHidden = "x-hidden"
	ExtensionLabels = "x-enum-labels"
)

// textAreaThreshold is the maxLength above which strings become text areas.
const textAreaThreshold = 255

// FieldsFromOperation parses data and derives form fields from the request
// body of the operation identified by operationID.
func FieldsFromOperation(ctx context.Context, data []byte, operationID string, opts ...Option) ([]model.FieldSchema, error) {
	form, err := FormFromOperation(ctx, data, operationID, opts...)
	if err != nil {
		return nil, err
	}
	return form.FormFields, nil
}

// FormFromOperation is FieldsFromOperation plus the operation summary and
// description as form title and subtitle.
func FormFromOperation(ctx context.Context, data []byte, operationID string, opts ...Option) (*model.FormInput, error) {
	spec, err := Parse(ctx, data, opts...)
	if err != nil {
		return nil, err
	}
	operation, err := findOperation(spec, operationID)
	if err != nil {
		return nil, err
	}
	cfg := newOptions(opts)
	fields, err := requestFields(operation, cfg)
	if err != nil {
		return nil, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	form := &model.FormInput{
		Title:      operation.Summary,
		SubTitle:   operation.Description,
		FormFields: fields,
	}
	for _, decorator := range cfg.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return nil, fmt.Errorf("openapi: decorate %q: %w", operationID, err)
		}
	}
	return form, nil
}

func requestFields(operation *openapi3.Operation, cfg options) ([]model.FieldSchema, error) {
	body := operation.RequestBody
	if body == nil || body.Value == nil {
		return nil, errors.New("no request body")
	}
	schema := bodySchema(body.Value.Content)
	if schema == nil {
		return nil, errors.New("request body has no schema")
	}
	if !schema.Type.Is(openapi3.TypeObject) && len(schema.Properties) == 0 {
		return nil, fmt.Errorf("request body must be an object, got %v", schema.Type.Slice())
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := orderedProperties(schema.Properties)
	fields := make([]model.FieldSchema, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if prop.ReadOnly && !cfg.includeReadOnly {
			continue
		}
		_, isRequired := required[name]
		field := fieldFromSchema(name, prop, isRequired)
		if cfg.tableName != "" || cfg.backendKey != "" {
			field.TargetColumn = &model.TargetColumn{
				BackendKey: cfg.backendKey,
				TableName:  cfg.tableName,
				Column:     name,
			}
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func bodySchema(content openapi3.Content) *openapi3.Schema {
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// orderedProperties sorts by x-order, then by name.
func orderedProperties(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	order := func(name string) float64 {
		ref := props[name]
		if ref == nil || ref.Value == nil {
			return 0
		}
		if value, ok := numberExtension(ref.Value.Extensions[ExtensionOrder]); ok {
			return value
		}
		return 0
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oj := order(names[i]), order(names[j])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	return names
}

func fieldFromSchema(name string, prop *openapi3.Schema, required bool) model.FieldSchema {
	field := model.FieldSchema{
		Label:       prop.Title,
		Description: prop.Description,
		Required:    required,
		HiddenField: boolExtension(prop.Extensions[ExtensionHidden]),
	}
	if field.Label == "" {
		field.Label = name
	}
	if prop.Default != nil {
		field.DefaultValue = defaultString(prop.Default)
	}

	switch {
	case prop.Type.Is(openapi3.TypeBoolean):
		field.Type = model.FieldTypeCheckbox
	case prop.Type.Is(openapi3.TypeNumber), prop.Type.Is(openapi3.TypeInteger):
		field.Type = model.FieldTypeNumberField
		field.Min = cloneFloat(prop.Min)
		field.Max = cloneFloat(prop.Max)
	case len(prop.Enum) > 0:
		field.Type = model.FieldTypeDropdown
		field.Values = enumOptions(prop)
	case prop.Format == "date-time":
		field.Type = model.FieldTypeDateTime
	case prop.Format == "textarea" || (prop.MaxLength != nil && *prop.MaxLength > textAreaThreshold):
		field.Type = model.FieldTypeTextArea
	default:
		field.Type = model.FieldTypeTextField
		field.Validation = prop.Pattern
	}
	return field
}

func enumOptions(prop *openapi3.Schema) []model.DropdownOption {
	labels, _ := prop.Extensions[ExtensionLabels].([]any)
	options := make([]model.DropdownOption, 0, len(prop.Enum))
	for i, value := range prop.Enum {
		option := model.DropdownOption{Value: defaultString(value)}
		if i < len(labels) {
			if label, ok := labels[i].(string); ok {
				option.DisplayLabel = label
			}
		}
		options = append(options, option)
	}
	return options
}

func defaultString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

func numberExtension(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func boolExtension(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}
