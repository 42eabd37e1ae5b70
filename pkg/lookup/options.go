package lookup

import (
	"net/http"
	"time"
)

type Options struct {
	HTTPClient *http.Client
	QueryParam string
	FilterKey  string
	Headers    map[string]string
	Timeout    time.Duration
	Cache      *Cache
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		QueryParam: "_q",
		FilterKey:  "_pk__in",
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
	if opts.QueryParam == "" {
		opts.QueryParam = "_q"
	}
	if opts.FilterKey == "" {
		opts.FilterKey = "_pk__in"
	}
	if opts.Headers != nil {
		headers := make(map[string]string, len(opts.Headers))
		for name, value := range opts.Headers {
			headers[name] = value
		}
		opts.Headers = headers
	}
	return opts
}

// WithHTTPClient overrides the http.Client used for lookups.
func WithHTTPClient(client *http.Client) OptionFn {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithQueryParam overrides the query parameter carrying the filter expression.
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

// WithHeader adds a header sent on every lookup request.
func WithHeader(name, value string) OptionFn {
	return func(o *Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[name] = value
	}
}

// WithTimeout bounds each lookup request. Zero keeps the endpoint unbounded,
// matching the widget's historical behaviour where a hung lookup only delays
// option availability.
func WithTimeout(timeout time.Duration) OptionFn {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithCache attaches a shared record cache consulted before the network.
func WithCache(cache *Cache) OptionFn {
	return func(o *Options) {
		o.Cache = cache
	}
}
