package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-relationfield/pkg/render/template"
	"github.com/goliatone/go-relationfield/pkg/widget"
)

// defaultSelectTemplate renders the select control and its option list. Hosts
// that carry their own theme partial override it via WithTemplateName.
const defaultSelectTemplate = `<div class="{{ container_class }}"{% if style %} style="{{ style }}"{% endif %}>
<label for="{{ field.Name }}">{{ label }}</label>
<select id="{{ field.Name }}" name="{{ field.Name }}"{% if field.Multiple %} multiple{% endif %} data-format="{{ field.Format }}">
{% for option in options %}<option value="{{ option.Value }}"{% if option.Selected %} selected{% endif %}>{{ option.Label }}</option>
{% endfor %}</select>
</div>`

const defaultContainerClass = "relation-field"

// SelectOption is one row of the rendered option list.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithTemplateName renders through a named template from the engine's
// loaders instead of the built-in inline template.
func WithTemplateName(name string) Option {
	return func(r *Renderer) {
		r.templateName = strings.TrimSpace(name)
	}
}

// WithTheme attaches a resolved theme configuration; its tokens become
// template context and the container class is taken from the
// "forms.select.container" token when present.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// Renderer draws a select widget's markup through the template engine. Bind
// its Redraw to a widget (widget.WithRedraw) to re-render whenever the
// option list changes.
type Renderer struct {
	tpl          template.TemplateRenderer
	templateName string
	theme        *theme.RendererConfig
}

// NewRenderer wraps a template engine.
func NewRenderer(tpl template.TemplateRenderer, fns ...Option) *Renderer {
	r := &Renderer{tpl: tpl}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(r)
	}
	return r
}

// RenderSelect renders the control with its current option list and value.
func (r *Renderer) RenderSelect(sel *widget.Select) (string, error) {
	if r == nil || r.tpl == nil {
		return "", fmt.Errorf("render: template renderer not configured")
	}
	if sel == nil {
		return "", fmt.Errorf("render: nil select widget")
	}

	field := sel.Field()
	label := field.Label
	if label == "" {
		label = field.Name
	}

	payload := map[string]any{
		"field":           field,
		"label":           label,
		"options":         selectOptions(sel),
		"style":           inlineStyle(sel.Style()),
		"container_class": r.containerClass(),
	}
	if r.theme != nil {
		payload["theme"] = map[string]any{
			"name":    r.theme.Theme,
			"variant": r.theme.Variant,
			"tokens":  r.theme.Tokens,
		}
	}

	if r.templateName != "" {
		rendered, err := r.tpl.RenderTemplate(r.templateName, payload)
		if err != nil {
			return "", fmt.Errorf("render: template %q: %w", r.templateName, err)
		}
		return rendered, nil
	}

	rendered, err := r.tpl.RenderString(defaultSelectTemplate, payload)
	if err != nil {
		return "", fmt.Errorf("render: select template: %w", err)
	}
	return rendered, nil
}

func (r *Renderer) containerClass() string {
	if r.theme != nil {
		if class := strings.TrimSpace(r.theme.Tokens["forms.select.container"]); class != "" {
			return class
		}
	}
	return defaultContainerClass
}

func selectOptions(sel *widget.Select) []SelectOption {
	values := sel.Options().Values()
	labels := sel.Options().Labels()
	selected := selectedKeys(sel.GetValue())

	out := make([]SelectOption, 0, len(values))
	for idx, value := range values {
		key := widget.IdentifierKey(value)
		out = append(out, SelectOption{
			Value:    key,
			Label:    labels[idx],
			Selected: selected[key],
		})
	}
	return out
}

func selectedKeys(value any) map[string]bool {
	out := make(map[string]bool)
	switch v := value.(type) {
	case nil:
	case []any:
		for _, el := range v {
			out[widget.IdentifierKey(el)] = true
		}
	default:
		out[widget.IdentifierKey(v)] = true
	}
	return out
}

func inlineStyle(styles map[string]string) string {
	if len(styles) == 0 {
		return ""
	}
	keys := make([]string, 0, len(styles))
	for key := range styles {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+styles[key])
	}
	return strings.Join(parts, "; ")
}

// ThemeConfig resolves a renderer theme configuration from a go-theme
// selector. A nil selector yields a nil config, which renders with defaults.
func ThemeConfig(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q/%q: %w", name, variant, err)
	}
	if selection == nil {
		return nil, nil
	}

	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	if selection.Manifest != nil && len(selection.Manifest.Tokens) > 0 {
		cfg.Tokens = make(map[string]string, len(selection.Manifest.Tokens))
		for key, value := range selection.Manifest.Tokens {
			cfg.Tokens[key] = value
		}
	}
	return cfg, nil
}
