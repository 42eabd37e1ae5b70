package render

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-relationfield/pkg/render/template/gotemplate"
	"github.com/goliatone/go-relationfield/pkg/schema"
	"github.com/goliatone/go-relationfield/pkg/widget"
)

func newEngine(t *testing.T, files fstest.MapFS) *gotemplate.Engine {
	t.Helper()
	if files == nil {
		files = fstest.MapFS{}
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func sampleWidget() *widget.Select {
	sel := widget.NewSelect(schema.Field{
		Name:   "author",
		Type:   schema.FieldTypeRelation,
		Format: schema.FormatSearchableDropdown,
		Label:  "Author",
	})
	sel.ForceAddOption(int64(7), "Alice")
	sel.ForceAddOption(int64(8), "Bob")
	sel.Assign(int64(7))
	return sel
}

func TestRenderSelectDefaultTemplate(t *testing.T) {
	renderer := NewRenderer(newEngine(t, nil))

	out, err := renderer.RenderSelect(sampleWidget())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		`class="relation-field"`,
		`<label for="author">Author</label>`,
		`name="author"`,
		`data-format="select2"`,
		`<option value="7" selected>Alice</option>`,
		`<option value="8">Bob</option>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, " multiple") {
		t.Fatalf("expected no multiple attribute for a single select:\n%s", out)
	}
}

func TestRenderSelectMultipleAndStyle(t *testing.T) {
	sel := widget.NewSelect(schema.Field{
		Name:     "tags",
		Type:     schema.FieldTypeRelation,
		Format:   schema.FormatSearchableDropdown,
		Multiple: true,
	})
	sel.ForceAddOption(int64(1), "A")
	sel.SetStyle(widget.StyleWidth, "100%")
	sel.Assign([]any{int64(1)})

	out, err := NewRenderer(newEngine(t, nil)).RenderSelect(sel)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, " multiple") {
		t.Fatalf("expected multiple attribute:\n%s", out)
	}
	if !strings.Contains(out, `style="width: 100%"`) {
		t.Fatalf("expected inline style:\n%s", out)
	}
	if !strings.Contains(out, `<label for="tags">tags</label>`) {
		t.Fatalf("expected field name as fallback label:\n%s", out)
	}
}

func TestRenderSelectNamedTemplate(t *testing.T) {
	files := fstest.MapFS{
		"relation_select.tpl": &fstest.MapFile{
			Data: []byte(`custom:{{ field.Name }}:{{ options|length }}`),
		},
	}
	renderer := NewRenderer(newEngine(t, files), WithTemplateName("relation_select"))

	out, err := renderer.RenderSelect(sampleWidget())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "custom:author:2" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderSelectThemeTokens(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		Tokens: map[string]string{
			"forms.select.container": "acme-select",
		},
	}
	renderer := NewRenderer(newEngine(t, nil), WithTheme(cfg))

	out, err := renderer.RenderSelect(sampleWidget())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `class="acme-select"`) {
		t.Fatalf("expected themed container class:\n%s", out)
	}
}

func TestRenderSelectErrors(t *testing.T) {
	renderer := NewRenderer(newEngine(t, nil))
	if _, err := renderer.RenderSelect(nil); err == nil {
		t.Fatalf("expected an error for a nil widget")
	}

	empty := NewRenderer(nil)
	if _, err := empty.RenderSelect(sampleWidget()); err == nil {
		t.Fatalf("expected an error without a template engine")
	}
}

type payloadCapture struct {
	name string
	data any
}

func (c *payloadCapture) Render(name string, data any, _ ...io.Writer) (string, error) {
	c.name, c.data = name, data
	return "", nil
}

func (c *payloadCapture) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	c.name, c.data = name, data
	return "", nil
}

func (c *payloadCapture) RenderString(content string, data any, _ ...io.Writer) (string, error) {
	c.name, c.data = content, data
	return "", nil
}

func (c *payloadCapture) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (c *payloadCapture) GlobalContext(any) error { return nil }

func TestRenderSelectPayloadShape(t *testing.T) {
	capture := &payloadCapture{}
	renderer := NewRenderer(capture)

	if _, err := renderer.RenderSelect(sampleWidget()); err != nil {
		t.Fatalf("render: %v", err)
	}

	payload, ok := capture.data.(map[string]any)
	if !ok {
		t.Fatalf("expected a map payload, got %T", capture.data)
	}
	options, ok := payload["options"].([]SelectOption)
	if !ok || len(options) != 2 {
		t.Fatalf("unexpected options payload %#v", payload["options"])
	}
	if !options[0].Selected || options[1].Selected {
		t.Fatalf("expected only the stored value marked selected, got %#v", options)
	}
	if payload["container_class"] != "relation-field" {
		t.Fatalf("unexpected container class %#v", payload["container_class"])
	}
}

type selectorStub struct {
	selection *theme.Selection
	err       error
	name      string
	variant   string
}

func (s *selectorStub) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.name, s.variant = name, variant
	return s.selection, s.err
}

func TestThemeConfig(t *testing.T) {
	selector := &selectorStub{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{"forms.select.container": "acme-select"},
		},
	}}

	cfg, err := ThemeConfig(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("theme config: %v", err)
	}
	if selector.name != "acme" || selector.variant != "dark" {
		t.Fatalf("expected selector invoked with acme/dark, got %s/%s", selector.name, selector.variant)
	}
	if cfg == nil || cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if cfg.Tokens["forms.select.container"] != "acme-select" {
		t.Fatalf("expected tokens copied from the manifest, got %#v", cfg.Tokens)
	}
}

func TestThemeConfigNilSelector(t *testing.T) {
	cfg, err := ThemeConfig(nil, "acme", "dark")
	if err != nil || cfg != nil {
		t.Fatalf("expected nil config without a selector, got %#v (%v)", cfg, err)
	}
}

func TestThemeConfigSelectorError(t *testing.T) {
	selector := &selectorStub{err: errors.New("unknown theme")}
	if _, err := ThemeConfig(selector, "missing", ""); err == nil {
		t.Fatalf("expected the selector error to propagate")
	}
}
