package schema

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeNumber   FieldType = "number"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeArray    FieldType = "array"
	FieldTypeObject   FieldType = "object"
	FieldTypeRelation FieldType = "relation"
)

// FormatSearchableDropdown is the rendering format that selects the
// relation-aware editor for a field.
const FormatSearchableDropdown = "select2"

// Field describes one input in a schema-driven form. Relation fields carry
// their lookup configuration and relationship shape through the Metadata map
// using the dotted keys the form engine writes (`relationship.endpoint.*`,
// `relationship.*`); Lookup and Relationship expose the typed views.
type Field struct {
	Name         string            `json:"name" yaml:"name"`
	Type         FieldType         `json:"type" yaml:"type"`
	Format       string            `json:"format,omitempty" yaml:"format,omitempty"`
	Label        string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	Required     bool              `json:"required" yaml:"required"`
	Multiple     bool              `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Enum         []any             `json:"enum,omitempty" yaml:"enum,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Relationship *Relationship     `json:"relationship,omitempty" yaml:"-"`
}

// IsRelation reports whether the field references another record.
func (f Field) IsRelation() bool {
	return f.Type == FieldTypeRelation
}

// Lookup returns the lookup endpoint configuration declared in the field
// metadata. The second return is false when no endpoint URL is present.
func (f Field) Lookup() (LookupConfig, bool) {
	return LookupConfigFromMetadata(f.Metadata)
}

func knownFieldType(t FieldType) bool {
	switch t {
	case FieldTypeString, FieldTypeInteger, FieldTypeNumber, FieldTypeBoolean,
		FieldTypeArray, FieldTypeObject, FieldTypeRelation:
		return true
	default:
		return false
	}
}
