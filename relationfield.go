package relationfield

import (
	"context"

	"github.com/goliatone/go-relationfield/pkg/editors"
	"github.com/goliatone/go-relationfield/pkg/lookup"
	"github.com/goliatone/go-relationfield/pkg/relation"
	"github.com/goliatone/go-relationfield/pkg/schema"
	"github.com/goliatone/go-relationfield/pkg/widget"
)

// Field aliases the schema field descriptor exported via the root package for
// convenience.
type Field = schema.Field

// LookupConfig describes the endpoint a relation field resolves against.
type LookupConfig = schema.LookupConfig

// Relationship captures how a relation field points at its target records.
type Relationship = schema.Relationship

// Editor aliases the relation-aware select editor.
type Editor = relation.Editor

// Record is one `{id, name}` entry from a lookup endpoint.
type Record = lookup.Record

// NewEditor builds a relation editor for a field, wiring its lookup client
// from the field's endpoint metadata. It is the simplest entry point for
// hosts that just need the behavioural extension.
func NewEditor(field schema.Field, fns ...relation.Option) *relation.Editor {
	return relation.NewForField(field, fns...)
}

// NewRegistry exposes the editor registry with the built-in relation rule
// registered, for hosts dispatching many schema fields at once.
func NewRegistry() *editors.Registry {
	return editors.NewRegistry()
}

// BuildEditor resolves a field through a fresh registry and returns the
// constructed editor; fields no rule claims get the base select widget.
func BuildEditor(field schema.Field) (widget.Editor, error) {
	return editors.NewRegistry().Build(field)
}

// Resolve is a one-shot identifier lookup against an endpoint URL, degrading
// failures to an empty result like the editor does.
func Resolve(ctx context.Context, endpoint string, ids []string, fns ...lookup.OptionFn) ([]lookup.Record, error) {
	return lookup.New(endpoint, fns...).Resolve(ctx, ids)
}

// LoadDocument parses a YAML document of field descriptors.
func LoadDocument(data []byte) (schema.Document, error) {
	return schema.LoadDocument(data)
}

// LoadDocumentFile reads and parses a YAML field document from disk.
func LoadDocumentFile(path string) (schema.Document, error) {
	return schema.LoadDocumentFile(path)
}
