package widget

import "context"

// Editor is the lifecycle contract of a form field editor. The base Select
// widget implements it directly; behaviour extensions wrap an Editor and
// delegate the branches they do not override.
type Editor interface {
	// PreBuild runs before the option UI is constructed from the schema.
	PreBuild() error
	// SetValue assigns a programmatic value. Implementations that resolve
	// labels over the network block until resolution completes or ctx is
	// done; callers may rely on the option list being populated afterwards.
	SetValue(ctx context.Context, value any, initial bool) error
	// Typecast converts a raw value into the type the schema stores.
	Typecast(value any) any
	// UpdateValue sanitizes a user edit and stores the result, returning the
	// value that was stored.
	UpdateValue(value any) any
	// GetValue returns the current value for the downstream form consumer.
	GetValue() any
	// AfterInputReady runs once the rendered control is attached.
	AfterInputReady() error
}
