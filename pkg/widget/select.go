package widget

import (
	"context"
	"fmt"

	"github.com/goliatone/go-relationfield/pkg/schema"
)

// StyleWidth is the inline style key the embedded multi-select control pins
// on its container during AfterInputReady.
const StyleWidth = "width"

const defaultMultiSelectWidth = "100%"

// Option customises a Select during construction.
type Option func(*Select)

// WithRedraw binds the theme redraw hook invoked whenever the option list
// changes after the control has rendered.
func WithRedraw(redraw func()) Option {
	return func(s *Select) {
		s.redraw = redraw
	}
}

// WithNewEnumAllowed toggles dynamic option injection from the start instead
// of waiting for AfterInputReady-time setup.
func WithNewEnumAllowed(allowed bool) Option {
	return func(s *Select) {
		s.newEnumAllowed = allowed
	}
}

// Select is the base closed-option editor: it stores an OptionSet seeded from
// the schema's static enum, the current value, and the flags the host form
// maintains around it. It has no relation awareness; the relation editor
// wraps it and delegates everything non-relation here.
type Select struct {
	field   schema.Field
	options OptionSet
	value   any

	dependenciesFulfilled bool
	newEnumAllowed        bool

	redraw func()
	style  map[string]string
}

var _ Editor = (*Select)(nil)

// NewSelect constructs the base editor for a field. Dependencies start
// fulfilled; the host form flips the flag while prerequisite fields are
// still resolving.
func NewSelect(field schema.Field, fns ...Option) *Select {
	s := &Select{
		field:                 field,
		dependenciesFulfilled: true,
		style:                 make(map[string]string),
	}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(s)
	}
	return s
}

// Field returns the schema descriptor this editor was built for.
func (s *Select) Field() schema.Field {
	return s.field
}

// Options exposes the live option set.
func (s *Select) Options() *OptionSet {
	return &s.options
}

// PreBuild seeds the option set from the schema's static enum.
func (s *Select) PreBuild() error {
	s.options.Reset()
	for _, entry := range s.field.Enum {
		s.options.ForceAdd(entry, fmt.Sprintf("%v", entry))
	}
	return nil
}

// ClearStaticEnum discards the statically declared enum before PreBuild runs,
// so the option UI starts empty.
func (s *Select) ClearStaticEnum() {
	s.field.Enum = nil
}

// SetValue stores the cast value. The base widget resolves nothing.
func (s *Select) SetValue(_ context.Context, value any, _ bool) error {
	s.value = s.Typecast(value)
	return nil
}

// Typecast is the identity cast; schema-aware casting lives in extensions.
func (s *Select) Typecast(value any) any {
	return value
}

// UpdateValue keeps the stored value inside the option set: unknown values
// snap to the first registered option when one exists.
func (s *Select) UpdateValue(value any) any {
	cast := s.Typecast(value)
	if !s.options.Has(cast) {
		if first, ok := s.options.First(); ok {
			cast = first
		}
	}
	s.value = cast
	return cast
}

// GetValue returns the stored value.
func (s *Select) GetValue() any {
	return s.value
}

// AfterInputReady mimics the embedded select control's post-render setup: the
// multi-select variant pins an inline width on its container.
func (s *Select) AfterInputReady() error {
	if s.field.Multiple {
		s.style[StyleWidth] = defaultMultiSelectWidth
	}
	return nil
}

// ForceAddOption idempotently registers an option and triggers a theme redraw
// when the option list changed. It reports whether the set was mutated.
func (s *Select) ForceAddOption(value any, label string) bool {
	added := s.options.ForceAdd(value, label)
	if added && s.redraw != nil {
		s.redraw()
	}
	return added
}

// Assign stores a value without passing it through UpdateValue's option-set
// clamp. Extensions that sanitize per element use it to bypass the base
// update path.
func (s *Select) Assign(value any) {
	s.value = value
}

// DependenciesFulfilled reports whether every field this one depends on has a
// resolved value. The flag is owned by the host form's dependency tracking.
func (s *Select) DependenciesFulfilled() bool {
	return s.dependenciesFulfilled
}

// SetDependenciesFulfilled is called by the host form's dependency tracker.
func (s *Select) SetDependenciesFulfilled(fulfilled bool) {
	s.dependenciesFulfilled = fulfilled
}

// NewEnumAllowed reports whether dynamic option injection is enabled.
func (s *Select) NewEnumAllowed() bool {
	return s.newEnumAllowed
}

// AllowNewEnum toggles dynamic option injection.
func (s *Select) AllowNewEnum(allowed bool) {
	s.newEnumAllowed = allowed
}

// Style returns a copy of the inline styles applied to the rendered control
// container.
func (s *Select) Style() map[string]string {
	out := make(map[string]string, len(s.style))
	for key, value := range s.style {
		out[key] = value
	}
	return out
}

// SetStyle records an inline style on the control container.
func (s *Select) SetStyle(key, value string) {
	s.style[key] = value
}

// RemoveStyle drops an inline style from the control container.
func (s *Select) RemoveStyle(key string) {
	delete(s.style, key)
}
