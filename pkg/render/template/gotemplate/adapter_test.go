package gotemplate

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"greeting.tpl": &fstest.MapFile{Data: []byte(`Hello {{ name }}!`)},
		"card.html":    &fstest.MapFile{Data: []byte(`<b>{{ title }}</b>`)},
	}
}

func TestNewRequiresTemplateSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected an error without a base dir or fs")
	}
}

func TestRenderString(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString(`{{ greeting }}, {{ name }}`, map[string]any{
		"greeting": "Hi",
		"name":     "Ada",
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "Hi, Ada" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderTemplateAppendsExtension(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate("greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if out != "Hello Ada!" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderTemplateCustomExtension(t *testing.T) {
	engine, err := New(WithFS(testFS()), WithExtension("html"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate("card", map[string]any{"title": "Go"})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if out != "<b>Go</b>" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderDispatchesOnSyntax(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	inline, err := engine.Render(`inline {{ name }}`, map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if inline != "inline Ada" {
		t.Fatalf("unexpected inline output %q", inline)
	}

	named, err := engine.Render("greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render named: %v", err)
	}
	if named != "Hello Ada!" {
		t.Fatalf("unexpected named output %q", named)
	}
}

func TestRenderWritesToOptionalWriter(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var buf bytes.Buffer
	out, err := engine.RenderString(`{{ name }}`, map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Ada" || buf.String() != "Ada" {
		t.Fatalf("expected output mirrored to writer, got %q / %q", out, buf.String())
	}
}

func TestGlobalContext(t *testing.T) {
	engine, err := New(WithFS(testFS()), WithGlobalData(map[string]any{"brand": "Acme"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString(`{{ brand }}:{{ name }}`, map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Acme:Ada" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestConvertDataRejectsUnknownShapes(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	_, err = engine.RenderString(`{{ x }}`, 42)
	if err == nil || !strings.Contains(err.Error(), "unsupported context type") {
		t.Fatalf("expected an unsupported-context error, got %v", err)
	}
}
