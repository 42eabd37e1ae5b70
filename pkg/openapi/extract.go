package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-relationfield/pkg/schema"
)

const (
	relationshipExtensionKey = "x-relationship"
	endpointExtensionKey     = "x-endpoint"
)

// ExtractFields loads an OpenAPI document and converts every component
// schema's properties into field descriptors. Properties carrying
// x-relationship or x-endpoint extensions become relation fields with their
// lookup configuration flattened into metadata.
func ExtractFields(ctx context.Context, data []byte) ([]schema.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document declares no component schemas")
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []schema.Field
	for _, name := range names {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, convertProperties(ref.Value)...)
	}
	if len(fields) == 0 {
		return nil, errors.New("openapi: no fields extracted")
	}
	return fields, nil
}

func convertProperties(src *openapi3.Schema) []schema.Field {
	if len(src.Properties) == 0 {
		return nil
	}
	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]schema.Field, 0, len(names))
	for _, name := range names {
		prop := src.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		field := convertProperty(name, prop.Value)
		field.Required = required[name]
		out = append(out, field)
	}
	return out
}

func convertProperty(name string, src *openapi3.Schema) schema.Field {
	field := schema.Field{
		Name:        name,
		Type:        mapFieldType(firstSchemaType(src.Type)),
		Format:      src.Format,
		Label:       src.Title,
		Description: src.Description,
	}

	extensions := src.Extensions
	if field.Type == schema.FieldTypeArray && src.Items != nil && src.Items.Value != nil {
		item := src.Items.Value
		field.Multiple = true
		field.Format = firstNonEmpty(field.Format, item.Format)
		if len(item.Extensions) > 0 {
			extensions = mergeExtensions(extensions, item.Extensions)
		}
		if len(item.Enum) > 0 {
			field.Enum = append([]any(nil), item.Enum...)
		}
	}
	if len(src.Enum) > 0 {
		field.Enum = append([]any(nil), src.Enum...)
	}

	metadata := make(map[string]string)
	applyRelationshipExtension(metadata, extensions, field.Multiple)
	applyEndpointExtension(metadata, extensions)

	if len(metadata) > 0 {
		field.Metadata = metadata
		if _, hasLookup := schema.LookupConfigFromMetadata(metadata); hasLookup {
			field.Type = schema.FieldTypeRelation
			if field.Format == "" {
				field.Format = schema.FormatSearchableDropdown
			}
		}
	}

	schema.EnsureRelationship(&field)
	return field
}

func applyRelationshipExtension(metadata map[string]string, extensions map[string]any, multiple bool) {
	raw, ok := extensions[relationshipExtensionKey].(map[string]any)
	if !ok || len(raw) == 0 {
		return
	}

	kind, _ := stringValue(raw["type"])
	if kind == "" {
		kind, _ = stringValue(raw["kind"])
	}
	if kind == "" {
		if multiple {
			kind = string(schema.RelationshipHasMany)
		} else {
			kind = string(schema.RelationshipBelongsTo)
		}
	}
	metadata["relationship.type"] = kind

	if target, ok := stringValue(raw["target"]); ok && target != "" {
		metadata["relationship.target"] = target
	}
	if card, ok := stringValue(raw["cardinality"]); ok && card != "" {
		metadata["relationship.cardinality"] = card
	}
	if fk, ok := stringValue(raw["foreignKey"]); ok && fk != "" {
		metadata["relationship.foreignKey"] = fk
	}
	if inverse, ok := stringValue(raw["inverse"]); ok && inverse != "" {
		metadata["relationship.inverse"] = inverse
	}
}

func applyEndpointExtension(metadata map[string]string, extensions map[string]any) {
	raw, ok := extensions[endpointExtensionKey].(map[string]any)
	if !ok || len(raw) == 0 {
		return
	}

	cfg := schema.LookupConfig{}
	if url, ok := stringValue(raw["url"]); ok {
		cfg.URL = url
	}
	if method, ok := stringValue(raw["method"]); ok {
		cfg.Method = method
	}
	if param, ok := stringValue(raw["queryParam"]); ok {
		cfg.QueryParam = param
	}
	if key, ok := stringValue(raw["filterKey"]); ok {
		cfg.FilterKey = key
	}
	if label, ok := stringValue(raw["labelField"]); ok {
		cfg.LabelField = label
	}
	if value, ok := stringValue(raw["valueField"]); ok {
		cfg.ValueField = value
	}
	if headers, ok := raw["headers"].(map[string]any); ok {
		for name, value := range headers {
			if text, ok := stringValue(value); ok && text != "" {
				if cfg.Headers == nil {
					cfg.Headers = make(map[string]string)
				}
				cfg.Headers[name] = text
			}
		}
	}

	for key, value := range schema.FlattenLookupConfig(cfg) {
		metadata[key] = value
	}
}

func mergeExtensions(host, source map[string]any) map[string]any {
	if len(host) == 0 {
		return source
	}
	merged := make(map[string]any, len(host)+len(source))
	for key, value := range host {
		merged[key] = value
	}
	for key, value := range source {
		if _, exists := merged[key]; !exists {
			merged[key] = value
		}
	}
	return merged
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func mapFieldType(raw string) schema.FieldType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "integer":
		return schema.FieldTypeInteger
	case "number":
		return schema.FieldTypeNumber
	case "boolean":
		return schema.FieldTypeBoolean
	case "array":
		return schema.FieldTypeArray
	case "object":
		return schema.FieldTypeObject
	default:
		return schema.FieldTypeString
	}
}

func stringValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case fmt.Stringer:
		return strings.TrimSpace(v.String()), true
	default:
		return "", false
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
