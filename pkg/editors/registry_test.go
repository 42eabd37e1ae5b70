package editors

import (
	"testing"

	"github.com/goliatone/go-relationfield/pkg/relation"
	"github.com/goliatone/go-relationfield/pkg/schema"
	"github.com/goliatone/go-relationfield/pkg/widget"
)

func relationField() schema.Field {
	return schema.Field{
		Name:   "author",
		Type:   schema.FieldTypeRelation,
		Format: schema.FormatSearchableDropdown,
		Metadata: schema.FlattenLookupConfig(schema.LookupConfig{
			URL: "https://api.example.com/users",
		}),
	}
}

func TestResolveBuiltinRelationRule(t *testing.T) {
	reg := NewRegistry()

	name, build, ok := reg.Resolve(relationField())
	if !ok {
		t.Fatalf("expected builtin rule to match")
	}
	if name != EditorRelationSelect {
		t.Fatalf("expected %q, got %q", EditorRelationSelect, name)
	}

	editor, err := build(relationField())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := editor.(*relation.Editor); !ok {
		t.Fatalf("expected a relation editor, got %T", editor)
	}
}

func TestResolveRequiresBothTypeAndFormat(t *testing.T) {
	reg := NewRegistry()

	plain := relationField()
	plain.Format = ""
	if _, _, ok := reg.Resolve(plain); ok {
		t.Fatalf("expected no match without the searchable-dropdown format")
	}

	text := relationField()
	text.Type = schema.FieldTypeString
	if _, _, ok := reg.Resolve(text); ok {
		t.Fatalf("expected no match for non-relation types")
	}
}

func TestBuildFallsBackToBaseSelect(t *testing.T) {
	reg := NewRegistry()

	editor, err := reg.Build(schema.Field{Name: "status", Type: schema.FieldTypeString})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := editor.(*widget.Select); !ok {
		t.Fatalf("expected the base select widget, got %T", editor)
	}
}

func TestRegisterPriorityOrdering(t *testing.T) {
	reg := NewRegistry()
	reg.Register("custom-relation", 100, func(field schema.Field) bool {
		return field.IsRelation()
	}, func(field schema.Field) (widget.Editor, error) {
		return widget.NewSelect(field), nil
	})

	name, _, ok := reg.Resolve(relationField())
	if !ok || name != "custom-relation" {
		t.Fatalf("expected the higher-priority rule to win, got %q (ok=%v)", name, ok)
	}
}

func TestRegisterTieBreaksOnRegistrationOrder(t *testing.T) {
	reg := &Registry{}
	matchAll := func(schema.Field) bool { return true }
	factory := func(field schema.Field) (widget.Editor, error) {
		return widget.NewSelect(field), nil
	}
	reg.Register("first", 50, matchAll, factory)
	reg.Register("second", 50, matchAll, factory)

	name, _, ok := reg.Resolve(schema.Field{Name: "x", Type: schema.FieldTypeString})
	if !ok || name != "first" {
		t.Fatalf("expected earliest registration to win the tie, got %q (ok=%v)", name, ok)
	}
}

func TestRegisterReplacesSameName(t *testing.T) {
	reg := &Registry{}
	factory := func(field schema.Field) (widget.Editor, error) {
		return widget.NewSelect(field), nil
	}

	reg.Register("rule", 10, func(schema.Field) bool { return false }, factory)
	reg.Register("rule", 10, func(schema.Field) bool { return true }, factory)
	reg.Register("rule", 10, func(schema.Field) bool { return true }, factory)

	name, _, ok := reg.Resolve(schema.Field{Name: "x", Type: schema.FieldTypeString})
	if !ok || name != "rule" {
		t.Fatalf("expected replaced rule to match, got %q (ok=%v)", name, ok)
	}

	reg.mu.RLock()
	count := len(reg.rules)
	reg.mu.RUnlock()
	if count != 1 {
		t.Fatalf("expected a single rule after re-registration, got %d", count)
	}
}

func TestRegisterIgnoresInvalidRules(t *testing.T) {
	reg := &Registry{}
	factory := func(field schema.Field) (widget.Editor, error) {
		return widget.NewSelect(field), nil
	}

	reg.Register("", 10, func(schema.Field) bool { return true }, factory)
	reg.Register("no-matcher", 10, nil, factory)
	reg.Register("no-factory", 10, func(schema.Field) bool { return true }, nil)

	if _, _, ok := reg.Resolve(schema.Field{Name: "x", Type: schema.FieldTypeString}); ok {
		t.Fatalf("expected no rules registered")
	}
}
