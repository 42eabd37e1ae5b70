package schema

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a YAML-loadable collection of field descriptors.
type Document struct {
	Fields []Field `yaml:"fields"`
}

// Field returns the named field descriptor from the document.
func (d Document) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

type fieldDoc struct {
	Name        string            `yaml:"name"`
	Type        FieldType         `yaml:"type"`
	Format      string            `yaml:"format"`
	Label       string            `yaml:"label"`
	Description string            `yaml:"description"`
	Required    bool              `yaml:"required"`
	Multiple    bool              `yaml:"multiple"`
	Enum        []any             `yaml:"enum"`
	Metadata    map[string]string `yaml:"metadata"`
	Endpoint    *LookupConfig     `yaml:"endpoint"`
	Target      string            `yaml:"target"`
}

type documentDoc struct {
	Fields []fieldDoc `yaml:"fields"`
}

// LoadDocument parses a YAML document of field descriptors. Endpoint blocks
// are flattened into the canonical dotted metadata keys so the loaded fields
// look exactly like fields produced by the form engine.
func LoadDocument(data []byte) (Document, error) {
	var raw documentDoc
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("schema: parse document: %w", err)
	}
	if len(raw.Fields) == 0 {
		return Document{}, errors.New("schema: document declares no fields")
	}

	doc := Document{Fields: make([]Field, 0, len(raw.Fields))}
	for idx, entry := range raw.Fields {
		field, err := convertFieldDoc(entry)
		if err != nil {
			return Document{}, fmt.Errorf("schema: field %d (%s): %w", idx, entry.Name, err)
		}
		doc.Fields = append(doc.Fields, field)
	}
	return doc, nil
}

// LoadDocumentFile reads and parses a YAML field document from disk.
func LoadDocumentFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("schema: read document %q: %w", path, err)
	}
	return LoadDocument(data)
}

func convertFieldDoc(entry fieldDoc) (Field, error) {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return Field{}, errors.New("missing name")
	}
	if !knownFieldType(entry.Type) {
		return Field{}, fmt.Errorf("unknown type %q", entry.Type)
	}

	field := Field{
		Name:        name,
		Type:        entry.Type,
		Format:      strings.TrimSpace(entry.Format),
		Label:       strings.TrimSpace(entry.Label),
		Description: strings.TrimSpace(entry.Description),
		Required:    entry.Required,
		Multiple:    entry.Multiple,
		Enum:        append([]any(nil), entry.Enum...),
	}

	if len(entry.Metadata) > 0 {
		field.Metadata = make(map[string]string, len(entry.Metadata))
		for key, value := range entry.Metadata {
			field.Metadata[key] = value
		}
	}

	if entry.Endpoint != nil {
		flattened := FlattenLookupConfig(*entry.Endpoint)
		if flattened == nil {
			return Field{}, errors.New("endpoint block missing url")
		}
		if field.Metadata == nil {
			field.Metadata = make(map[string]string, len(flattened))
		}
		for key, value := range flattened {
			if _, exists := field.Metadata[key]; !exists {
				field.Metadata[key] = value
			}
		}
	}

	if target := strings.TrimSpace(entry.Target); target != "" && field.Metadata[relationshipTargetKey] == "" {
		if field.Metadata == nil {
			field.Metadata = make(map[string]string)
		}
		field.Metadata[relationshipTargetKey] = target
		if field.Metadata[relationshipTypeKey] == "" {
			if field.Multiple {
				field.Metadata[relationshipTypeKey] = string(RelationshipHasMany)
			} else {
				field.Metadata[relationshipTypeKey] = string(RelationshipBelongsTo)
			}
		}
	}

	if field.IsRelation() {
		if _, ok := field.Lookup(); !ok {
			return Field{}, errors.New("relation field missing endpoint url")
		}
	}

	EnsureRelationship(&field)
	return field, nil
}
