package form

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-dashwidgets/pkg/model"
)

// SubmissionOption customises MapSubmission.
type SubmissionOption func(*submissionConfig)

type submissionConfig struct {
	includeHidden bool
}

// WithHiddenFields also emits records for hidden fields, carrying their
// default values. Hosts that rely on hidden fields to inject fixed columns
// enable it.
func WithHiddenFields() SubmissionOption {
	return func(cfg *submissionConfig) {
		cfg.includeHidden = true
	}
}

// FormatValue coerces a raw submitted string for fieldType. Number fields
// yield a float64, or nil when raw does not parse. Checkboxes yield
// raw == "on". Every other type passes raw through.
func FormatValue(raw string, fieldType model.FieldType) any {
	switch fieldType.OrDefault() {
	case model.FieldTypeNumberField:
		number, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil
		}
		return number
	case model.FieldTypeCheckbox:
		return raw == "on"
	default:
		return raw
	}
}

// MapSubmission produces one record per visible field in schema order. A
// blank raw value falls back to the field's default. Checkboxes are the
// exception: an unchecked box submits nothing and maps to false.
func MapSubmission(input model.FormInput, values url.Values, opts ...SubmissionOption) []model.SubmissionRecord {
	cfg := submissionConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var records []model.SubmissionRecord
	for i, field := range input.FormFields {
		if field.HiddenField && !cfg.includeHidden {
			continue
		}

		raw := values.Get(FieldName(i))
		if field.HiddenField {
			raw = field.DefaultValue
		} else if raw == "" && field.Type.OrDefault() != model.FieldTypeCheckbox {
			raw = field.DefaultValue
		}

		target := field.Target()
		records = append(records, model.SubmissionRecord{
			BackendKey: target.BackendKey,
			TableName:  target.TableName,
			Column:     target.Column,
			Value:      FormatValue(raw, field.Type),
		})
	}
	return records
}
