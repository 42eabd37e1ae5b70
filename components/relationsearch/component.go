package relationsearch

import "net/http"

// Component is a small, extraction-friendly wrapper around the lookup
// handler, its configuration, and routing helpers.
type Component struct {
	source Source
	opts   Options
}

// New constructs a component answering lookups from source with default
// options plus any overrides.
func New(source Source, fns ...OptionFn) *Component {
	return &Component{
		source: source,
		opts:   NewOptions(fns...),
	}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a net/http handler for identifier lookups.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler(nil)
	}
	return HandlerWithOptions(c.source, c.opts)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return "", ErrNilComponent
	}
	return RegisterRoutesWithOptions(mux, basePath, c.source, c.opts)
}
