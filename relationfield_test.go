package relationfield

import (
	"context"
	"testing"

	"github.com/goliatone/go-relationfield/pkg/schema"
)

const facadeDocument = `
fields:
  - name: author
    type: relation
    format: select2
    target: users
    endpoint:
      url: https://api.example.com/users
`

func TestBuildEditorResolvesRelationFields(t *testing.T) {
	doc, err := LoadDocument([]byte(facadeDocument))
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	field, ok := doc.Field("author")
	if !ok {
		t.Fatalf("expected author field")
	}

	built, err := BuildEditor(field)
	if err != nil {
		t.Fatalf("build editor: %v", err)
	}
	editor, ok := built.(*Editor)
	if !ok {
		t.Fatalf("expected the relation editor, got %T", built)
	}

	if err := editor.PreBuild(); err != nil {
		t.Fatalf("prebuild: %v", err)
	}
	if err := editor.SetValue(context.Background(), map[string]any{"id": 7, "name": "Alice"}, true); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := editor.GetValue(); got != int64(7) {
		t.Fatalf("expected int64(7), got %#v", got)
	}
}

func TestBuildEditorFallsBackForPlainFields(t *testing.T) {
	built, err := BuildEditor(Field{Name: "status", Type: schema.FieldTypeString})
	if err != nil {
		t.Fatalf("build editor: %v", err)
	}
	if _, ok := built.(*Editor); ok {
		t.Fatalf("expected the base widget for non-relation fields")
	}
}

func TestResolveEmptyIDs(t *testing.T) {
	records, err := Resolve(context.Background(), "https://api.example.com/users", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if records != nil {
		t.Fatalf("expected no records for empty input, got %#v", records)
	}
}
