package relationsearch

import "net/http"

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath  string
	QueryParam string
	FilterKey  string
	MaxIDs     int
	Guard      GuardFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:  "/api/relation",
		QueryParam: "_q",
		FilterKey:  "_pk__in",
		MaxIDs:     100,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/relation"
	}
	if opts.QueryParam == "" {
		opts.QueryParam = "_q"
	}
	if opts.FilterKey == "" {
		opts.FilterKey = "_pk__in"
	}
	if opts.MaxIDs <= 0 {
		opts.MaxIDs = 100
	}
	return opts
}

// WithRoutePath overrides the component route.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

// WithQueryParam overrides the query parameter carrying the filter.
func WithQueryParam(param string) OptionFn {
	return func(o *Options) {
		o.QueryParam = param
	}
}

// WithFilterKey overrides the primary-key filter key inside the query value.
func WithFilterKey(key string) OptionFn {
	return func(o *Options) {
		o.FilterKey = key
	}
}

// WithMaxIDs clamps how many identifiers one request may resolve.
func WithMaxIDs(limit int) OptionFn {
	return func(o *Options) {
		o.MaxIDs = limit
	}
}

// WithGuard installs a request guard evaluated before the source is queried.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}
