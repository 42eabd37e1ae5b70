package relation

import (
	"context"
	"sync/atomic"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-relationfield/pkg/lookup"
	"github.com/goliatone/go-relationfield/pkg/schema"
	"github.com/goliatone/go-relationfield/pkg/widget"
)

// Resolver turns record identifiers into `{id, name}` records. Failures
// degrade to an empty result; see lookup.Client.
type Resolver interface {
	Resolve(ctx context.Context, ids []string) ([]lookup.Record, error)
}

// Option customises an Editor during construction.
type Option func(*Editor)

// WithLabelPolicy overrides the sanitizer applied to option labels before
// they enter the option set.
func WithLabelPolicy(policy *bluemonday.Policy) Option {
	return func(e *Editor) {
		e.policy = policy
	}
}

// Editor decorates the base select widget with relation-aware behaviour:
// identifiers are resolved to labels through the resolver, resolved options
// are injected into the closed option set, and values are cast per the
// schema's cardinality. Every non-relation branch delegates to the base
// widget unchanged.
type Editor struct {
	base     *widget.Select
	resolver Resolver
	policy   *bluemonday.Policy

	// generation tags each resolution so a response racing a later SetValue
	// is discarded instead of registering stale options.
	generation atomic.Int64
}

var _ widget.Editor = (*Editor)(nil)

// New wraps a base select widget. A nil resolver disables lookups; values
// then resolve to no label, never to an error.
func New(base *widget.Select, resolver Resolver, fns ...Option) *Editor {
	e := &Editor{base: base, resolver: resolver}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(e)
	}
	return e
}

// NewForField builds the base widget and lookup client for a field in one
// step, wiring the client from the field's endpoint metadata.
func NewForField(field schema.Field, fns ...Option) *Editor {
	base := widget.NewSelect(field)

	var resolver Resolver
	if cfg, ok := field.Lookup(); ok {
		resolver = lookup.New(cfg.URL, clientOptions(cfg)...)
	}
	return New(base, resolver, fns...)
}

func clientOptions(cfg schema.LookupConfig) []lookup.OptionFn {
	var fns []lookup.OptionFn
	if cfg.QueryParam != "" {
		fns = append(fns, lookup.WithQueryParam(cfg.QueryParam))
	}
	if cfg.FilterKey != "" {
		fns = append(fns, lookup.WithFilterKey(cfg.FilterKey))
	}
	for name, value := range cfg.Headers {
		fns = append(fns, lookup.WithHeader(name, value))
	}
	return fns
}

// Base exposes the wrapped widget for host-form wiring (dependency flag,
// redraw hook, style inspection).
func (e *Editor) Base() *widget.Select {
	return e.base
}

// PreBuild strips the statically declared enum from relation fields before
// the base widget builds its option UI from it: relation options are never
// known statically, they arrive lazily from lookups.
func (e *Editor) PreBuild() error {
	if e.isRelation() {
		e.base.ClearStaticEnum()
	}
	return e.base.PreBuild()
}

// ForceAddOption idempotently registers an option, sanitizing the label
// first. The identifier's own string form stands in for an empty label.
func (e *Editor) ForceAddOption(value any, label string) bool {
	return e.base.ForceAddOption(value, sanitizeLabel(e.policy, label, value))
}

// SetValue assigns a programmatic value. Relation inputs are normalised into
// the canonical tagged form and dispatched on their shape; unknown bare
// identifiers block on a lookup so the option list is populated before the
// call returns. Non-relation fields delegate immediately.
func (e *Editor) SetValue(ctx context.Context, raw any, initial bool) error {
	if !e.isRelation() {
		return e.base.SetValue(ctx, raw, initial)
	}

	field := e.base.Field()
	value := Normalize(raw)
	switch {
	case field.Multiple && value.Kind() == KindList:
		return e.setSequence(ctx, value, initial)
	case !field.Multiple && value.Kind() == KindRef && truthy(value.ID()):
		e.ForceAddOption(value.ID(), value.Label())
		return e.base.SetValue(ctx, e.Typecast(value.ID()), initial)
	case !field.Multiple && value.Kind() == KindIdentifier && !e.base.Options().Has(value.ID()):
		return e.setUnresolved(ctx, value, initial)
	default:
		return e.base.SetValue(ctx, raw, initial)
	}
}

func (e *Editor) setSequence(ctx context.Context, value Value, initial bool) error {
	elements := value.List()
	if len(elements) == 0 {
		// nothing to resolve or set
		return nil
	}

	gen := e.generation.Add(1)

	pending := make([]string, 0, len(elements))
	for _, el := range elements {
		switch el.Kind() {
		case KindRef:
			if el.Label() != "" {
				e.ForceAddOption(el.ID(), el.Label())
				continue
			}
			pending = append(pending, widget.IdentifierKey(el.ID()))
		case KindIdentifier:
			pending = append(pending, widget.IdentifierKey(el.ID()))
		}
	}

	if len(pending) > 0 {
		records := e.fetch(ctx, pending)
		if e.generation.Load() != gen {
			return nil
		}
		for _, record := range records {
			e.ForceAddOption(record.ID, record.Name)
		}
	}

	cast := make([]any, 0, len(elements))
	for _, el := range elements {
		if el.Kind() == KindEmpty {
			continue
		}
		cast = append(cast, e.Typecast(el.ID()))
	}
	return e.base.SetValue(ctx, cast, initial)
}

func (e *Editor) setUnresolved(ctx context.Context, value Value, initial bool) error {
	gen := e.generation.Add(1)

	records := e.fetch(ctx, []string{widget.IdentifierKey(value.ID())})
	if e.generation.Load() != gen {
		return nil
	}

	record, found := matchRecord(records, value.ID())
	if !found {
		return e.base.SetValue(ctx, nil, initial)
	}

	e.ForceAddOption(record.ID, record.Name)
	return e.base.SetValue(ctx, e.Typecast(record.ID), initial)
}

// fetch resolves identifiers, degrading any failure to an empty result. This
// is the only suspend point in the editor.
func (e *Editor) fetch(ctx context.Context, ids []string) []lookup.Record {
	if e.resolver == nil || len(ids) == 0 {
		return nil
	}
	records, err := e.resolver.Resolve(ctx, ids)
	if err != nil {
		return nil
	}
	return records
}

// Typecast applies the schema cast to relation values: multi-valued fields
// store integer identifiers, single-valued fields keep the identifier's
// native type so string primary keys survive. Non-relation or empty values
// delegate to the base cast.
func (e *Editor) Typecast(value any) any {
	if e.isRelation() && truthy(value) {
		if e.base.Field().Multiple {
			if cast, ok := castInt64(value); ok {
				return cast
			}
			// non-numeric identifier in a numeric sequence resolves to no
			// usable value, never to an error
			return nil
		}
		return value
	}
	return e.base.Typecast(value)
}

// UpdateValue sanitizes a user edit. Multi-valued relation sequences map
// every element through innerUpdateCast and bypass the base update path,
// which has no notion of per-element sanitization against a growing option
// list. Everything else delegates.
func (e *Editor) UpdateValue(value any) any {
	if e.isRelation() && e.base.Field().Multiple {
		if seq, ok := asSequence(value); ok {
			out := make([]any, 0, len(seq))
			for _, el := range seq {
				out = append(out, e.innerUpdateCast(el))
			}
			e.base.Assign(out)
			return out
		}
	}
	return e.base.UpdateValue(value)
}

// GetValue returns the current value for the form consumer. Relation fields
// with unfulfilled dependencies report no value at all rather than one
// computed from incomplete prerequisite state.
func (e *Editor) GetValue() any {
	if !e.isRelation() {
		return e.base.GetValue()
	}
	if !e.base.DependenciesFulfilled() {
		return nil
	}
	if e.base.Field().Multiple {
		seq, ok := asSequence(e.base.GetValue())
		if !ok {
			return []any{}
		}
		out := make([]any, 0, len(seq))
		for _, el := range seq {
			out = append(out, e.Typecast(el))
		}
		return out
	}
	return e.Typecast(e.base.GetValue())
}

// innerUpdateCast casts one edited element and keeps it inside the option
// set: unknown identifiers are injected when injection is allowed, otherwise
// the first known option stands in as a safe default.
func (e *Editor) innerUpdateCast(value any) any {
	cast := e.Typecast(value)
	if e.base.Options().Has(cast) {
		return cast
	}
	if cast != nil && e.base.NewEnumAllowed() {
		if e.ForceAddOption(cast, widget.IdentifierKey(cast)) {
			return cast
		}
	}
	if first, ok := e.base.Options().First(); ok {
		return first
	}
	return nil
}

// AfterInputReady finishes base setup, then enables dynamic option injection
// and drops the inline width the embedded multi-select pinned on its
// container so the field renders at the form's natural width.
func (e *Editor) AfterInputReady() error {
	if err := e.base.AfterInputReady(); err != nil {
		return err
	}
	if !e.isRelation() {
		return nil
	}
	e.base.AllowNewEnum(true)
	e.base.RemoveStyle(widget.StyleWidth)
	return nil
}

func (e *Editor) isRelation() bool {
	return e.base.Field().IsRelation()
}

func matchRecord(records []lookup.Record, id any) (lookup.Record, bool) {
	key := widget.IdentifierKey(id)
	for _, record := range records {
		if record.Key() == key {
			return record, true
		}
	}
	return lookup.Record{}, false
}

func asSequence(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, 0, len(v))
		for _, el := range v {
			out = append(out, el)
		}
		return out, true
	case []int:
		out := make([]any, 0, len(v))
		for _, el := range v {
			out = append(out, el)
		}
		return out, true
	case []int64:
		out := make([]any, 0, len(v))
		for _, el := range v {
			out = append(out, el)
		}
		return out, true
	case []float64:
		out := make([]any, 0, len(v))
		for _, el := range v {
			out = append(out, el)
		}
		return out, true
	default:
		return nil, false
	}
}
