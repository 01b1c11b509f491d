package model

// ColumnType is the closed set of cell renderers a table column can select.
type ColumnType string

const (
	ColumnTypeString  ColumnType = "string"
	ColumnTypeNumber  ColumnType = "number"
	ColumnTypeBoolean ColumnType = "boolean"
	ColumnTypeState   ColumnType = "state"
	ColumnTypeButton  ColumnType = "button"
	ColumnTypeImage   ColumnType = "image"
)

// ColumnTypes lists every supported column type in declaration order.
func ColumnTypes() []ColumnType {
	return []ColumnType{
		ColumnTypeString,
		ColumnTypeNumber,
		ColumnTypeBoolean,
		ColumnTypeState,
		ColumnTypeButton,
		ColumnTypeImage,
	}
}

// Valid reports whether t is one of the known column types.
func (t ColumnType) Valid() bool {
	switch t {
	case ColumnTypeString, ColumnTypeNumber, ColumnTypeBoolean,
		ColumnTypeState, ColumnTypeButton, ColumnTypeImage:
		return true
	default:
		return false
	}
}

// CellValue is a single datum supplied by the host. Link is only consulted
// by button and image columns.
type CellValue struct {
	Value any    `json:"value" yaml:"value"`
	Link  string `json:"link,omitempty" yaml:"link,omitempty"`
}

// ColumnStyling carries per-column presentation hints. Precision applies to
// number columns; StateMap to state columns and uses the
// `'key','color','key','color'` notation.
type ColumnStyling struct {
	Width      string `json:"width,omitempty" yaml:"width,omitempty"`
	FontSize   string `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	Color      string `json:"color,omitempty" yaml:"color,omitempty"`
	Border     string `json:"border,omitempty" yaml:"border,omitempty"`
	Precision  *int   `json:"precision,omitempty" yaml:"precision,omitempty"`
	StateMap   string `json:"stateMap,omitempty" yaml:"stateMap,omitempty"`
}

// ColumnSchema describes one table column together with its values.
type ColumnSchema struct {
	Header     string        `json:"header" yaml:"header"`
	Type       ColumnType    `json:"type" yaml:"type"`
	Values     []CellValue   `json:"values,omitempty" yaml:"values,omitempty"`
	Width      string        `json:"width,omitempty" yaml:"width,omitempty"`
	Border     string        `json:"border,omitempty" yaml:"border,omitempty"`
	ShowInForm bool          `json:"showInForm,omitempty" yaml:"showInForm,omitempty"`
	Styling    ColumnStyling `json:"styling,omitempty" yaml:"styling,omitempty"`
}

// TableStyling carries table-wide presentation hints.
type TableStyling struct {
	RowHeight        string `json:"rowHeight,omitempty" yaml:"rowHeight,omitempty"`
	HeaderFontSize   string `json:"headerFontSize,omitempty" yaml:"headerFontSize,omitempty"`
	HeaderBackground string `json:"headerBackground,omitempty" yaml:"headerBackground,omitempty"`
	RowBorder        string `json:"rowBorder,omitempty" yaml:"rowBorder,omitempty"`
}

// TableInput is the table editor's inputData payload. Columns are
// column-oriented: each column carries its own value sequence and rows are
// derived by index.
type TableInput struct {
	Title     string         `json:"title,omitempty" yaml:"title,omitempty"`
	SubTitle  string         `json:"subTitle,omitempty" yaml:"subTitle,omitempty"`
	FormTitle string         `json:"formTitle,omitempty" yaml:"formTitle,omitempty"`
	Columns   []ColumnSchema `json:"columns,omitempty" yaml:"columns,omitempty"`
	Styling   TableStyling   `json:"styling,omitempty" yaml:"styling,omitempty"`
}

// Row is a derived, ephemeral sequence of cells sharing a value index.
type Row []CellValue

// FieldType is the closed set of form controls a field can select.
type FieldType string

const (
	FieldTypeTextField   FieldType = "textfield"
	FieldTypeNumberField FieldType = "numberfield"
	FieldTypeDateTime    FieldType = "datetime"
	FieldTypeTextArea    FieldType = "textarea"
	FieldTypeDropdown    FieldType = "dropdown"
	FieldTypeCheckbox    FieldType = "checkbox"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeTextField, FieldTypeNumberField, FieldTypeDateTime,
		FieldTypeTextArea, FieldTypeDropdown, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// OrDefault returns t, or textfield when t is empty.
func (t FieldType) OrDefault() FieldType {
	if t == "" {
		return FieldTypeTextField
	}
	return t
}

// TargetColumn identifies where the host should write a submitted value.
type TargetColumn struct {
	BackendKey string `json:"swarm_app_databackend_key,omitempty" yaml:"swarm_app_databackend_key,omitempty"`
	TableName  string `json:"tablename,omitempty" yaml:"tablename,omitempty"`
	Column     string `json:"column,omitempty" yaml:"column,omitempty"`
}

// DropdownOption is a single selectable value for dropdown fields.
type DropdownOption struct {
	Value        string `json:"value" yaml:"value"`
	DisplayLabel string `json:"displayLabel,omitempty" yaml:"displayLabel,omitempty"`
}

// FieldSchema describes one form field.
type FieldSchema struct {
	Type              FieldType        `json:"type,omitempty" yaml:"type,omitempty"`
	Label             string           `json:"label,omitempty" yaml:"label,omitempty"`
	Description       string           `json:"description,omitempty" yaml:"description,omitempty"`
	DefaultValue      string           `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Required          bool             `json:"required,omitempty" yaml:"required,omitempty"`
	Validation        string           `json:"validation,omitempty" yaml:"validation,omitempty"`
	ValidationMessage string           `json:"validationMessage,omitempty" yaml:"validationMessage,omitempty"`
	Min               *float64         `json:"min,omitempty" yaml:"min,omitempty"`
	Max               *float64         `json:"max,omitempty" yaml:"max,omitempty"`
	Values            []DropdownOption `json:"values,omitempty" yaml:"values,omitempty"`
	TargetColumn      *TargetColumn    `json:"targetColumn,omitempty" yaml:"targetColumn,omitempty"`
	HiddenField       bool             `json:"hiddenField,omitempty" yaml:"hiddenField,omitempty"`
}

// Target returns the field's target column, or the zero value when unset.
func (f FieldSchema) Target() TargetColumn {
	if f.TargetColumn == nil {
		return TargetColumn{}
	}
	return *f.TargetColumn
}

// FormInput is the form widget's inputData payload. FormButton switches the
// widget into dialog mode where the form is reached through an add button.
type FormInput struct {
	Title      string        `json:"title,omitempty" yaml:"title,omitempty"`
	SubTitle   string        `json:"subTitle,omitempty" yaml:"subTitle,omitempty"`
	FormButton bool          `json:"formButton,omitempty" yaml:"formButton,omitempty"`
	FormFields []FieldSchema `json:"formFields,omitempty" yaml:"formFields,omitempty"`
}

// Theme is the host's theme property. Object is intentionally loosely typed:
// hosts pass chart-library theme objects whose shape varies and lookups must
// degrade rather than fail.
type Theme struct {
	Name   string         `json:"theme_name,omitempty" yaml:"theme_name,omitempty"`
	Object map[string]any `json:"theme_object,omitempty" yaml:"theme_object,omitempty"`
}

// SubmissionRecord is a single write instruction emitted by the form widget.
type SubmissionRecord struct {
	BackendKey string `json:"swarm_app_databackend_key"`
	TableName  string `json:"table_name"`
	Column     string `json:"column_name"`
	Value      any    `json:"value"`
}
