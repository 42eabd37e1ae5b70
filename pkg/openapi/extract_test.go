package openapi

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-relationfield/pkg/schema"
)

const articleDocument = `
openapi: 3.0.3
info:
  title: Articles
  version: 1.0.0
paths: {}
components:
  schemas:
    Article:
      type: object
      required: [title]
      properties:
        title:
          type: string
          title: Title
        author:
          type: integer
          x-relationship:
            type: belongsTo
            target: users
            foreignKey: author_id
          x-endpoint:
            url: https://api.example.com/users
            queryParam: _q
            filterKey: _pk__in
        tags:
          type: array
          items:
            type: integer
            x-relationship:
              target: tags
            x-endpoint:
              url: https://api.example.com/tags
`

func extract(t *testing.T, doc string) []schema.Field {
	t.Helper()
	fields, err := ExtractFields(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("extract fields: %v", err)
	}
	return fields
}

func fieldByName(t *testing.T, fields []schema.Field, name string) schema.Field {
	t.Helper()
	for _, field := range fields {
		if field.Name == name {
			return field
		}
	}
	t.Fatalf("field %q not extracted (got %d fields)", name, len(fields))
	return schema.Field{}
}

func TestExtractFieldsPlainProperty(t *testing.T) {
	fields := extract(t, articleDocument)

	title := fieldByName(t, fields, "title")
	if title.Type != schema.FieldTypeString {
		t.Fatalf("expected string type, got %q", title.Type)
	}
	if !title.Required {
		t.Fatalf("expected title required")
	}
	if title.Label != "Title" {
		t.Fatalf("expected label from the schema title, got %q", title.Label)
	}
	if title.IsRelation() {
		t.Fatalf("expected a plain field, got a relation")
	}
}

func TestExtractFieldsRelationFromExtensions(t *testing.T) {
	fields := extract(t, articleDocument)

	author := fieldByName(t, fields, "author")
	if !author.IsRelation() {
		t.Fatalf("expected extension-carrying property to become a relation")
	}
	if author.Format != schema.FormatSearchableDropdown {
		t.Fatalf("expected the searchable-dropdown format, got %q", author.Format)
	}
	if author.Multiple {
		t.Fatalf("expected a single-valued relation")
	}

	cfg, ok := author.Lookup()
	if !ok {
		t.Fatalf("expected lookup configuration")
	}
	want := schema.LookupConfig{
		URL:        "https://api.example.com/users",
		QueryParam: "_q",
		FilterKey:  "_pk__in",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("lookup config mismatch (-want +got):\n%s", diff)
	}

	if author.Relationship == nil {
		t.Fatalf("expected relationship hydrated")
	}
	if author.Relationship.Kind != schema.RelationshipBelongsTo {
		t.Fatalf("expected belongsTo, got %q", author.Relationship.Kind)
	}
	if author.Relationship.ForeignKey != "author_id" {
		t.Fatalf("expected foreign key carried over, got %q", author.Relationship.ForeignKey)
	}
}

func TestExtractFieldsArrayItemsExtensions(t *testing.T) {
	fields := extract(t, articleDocument)

	tags := fieldByName(t, fields, "tags")
	if !tags.IsRelation() {
		t.Fatalf("expected array items extensions to mark the field as a relation")
	}
	if !tags.Multiple {
		t.Fatalf("expected array properties to be multi-valued")
	}
	if tags.Relationship == nil || tags.Relationship.Kind != schema.RelationshipHasMany {
		t.Fatalf("expected multi relation to default to hasMany, got %#v", tags.Relationship)
	}

	cfg, ok := tags.Lookup()
	if !ok || cfg.URL != "https://api.example.com/tags" {
		t.Fatalf("expected items endpoint url, got %#v (ok=%v)", cfg, ok)
	}
}

func TestExtractFieldsErrors(t *testing.T) {
	if _, err := ExtractFields(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for an empty payload")
	}

	noSchemas := `
openapi: 3.0.3
info:
  title: Empty
  version: 1.0.0
paths: {}
`
	if _, err := ExtractFields(context.Background(), []byte(noSchemas)); err == nil {
		t.Fatalf("expected an error for a document without component schemas")
	}

	_, err := ExtractFields(context.Background(), []byte("not: [valid"))
	if err == nil || !strings.Contains(err.Error(), "openapi:") {
		t.Fatalf("expected a wrapped load error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractFields(ctx, []byte(articleDocument)); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
