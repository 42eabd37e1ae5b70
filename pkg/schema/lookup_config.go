package schema

import (
	"sort"
	"strings"
)

// Metadata keys carrying the lookup endpoint configuration. They match the
// dotted-key contract the form engine uses when it flattens endpoint
// extensions into field metadata.
const (
	lookupURLKey        = "relationship.endpoint.url"
	lookupMethodKey     = "relationship.endpoint.method"
	lookupQueryParamKey = "relationship.endpoint.queryParam"
	lookupFilterKeyKey  = "relationship.endpoint.filterKey"
	lookupLabelFieldKey = "relationship.endpoint.labelField"
	lookupValueFieldKey = "relationship.endpoint.valueField"
	lookupHeaderPrefix  = "relationship.endpoint.headers."
)

// LookupConfig describes the endpoint a relation field resolves identifiers
// against. Zero values fall back to the lookup client defaults (`GET`, `_q`
// query parameter, `_pk__in` filter key).
type LookupConfig struct {
	URL        string            `json:"url" yaml:"url"`
	Method     string            `json:"method,omitempty" yaml:"method,omitempty"`
	QueryParam string            `json:"queryParam,omitempty" yaml:"queryParam,omitempty"`
	FilterKey  string            `json:"filterKey,omitempty" yaml:"filterKey,omitempty"`
	LabelField string            `json:"labelField,omitempty" yaml:"labelField,omitempty"`
	ValueField string            `json:"valueField,omitempty" yaml:"valueField,omitempty"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// LookupConfigFromMetadata reads the endpoint configuration out of field
// metadata. The second return is false when no endpoint URL is declared.
func LookupConfigFromMetadata(metadata map[string]string) (LookupConfig, bool) {
	if len(metadata) == 0 {
		return LookupConfig{}, false
	}

	url := strings.TrimSpace(metadata[lookupURLKey])
	if url == "" {
		return LookupConfig{}, false
	}

	cfg := LookupConfig{
		URL:        url,
		Method:     strings.ToUpper(strings.TrimSpace(metadata[lookupMethodKey])),
		QueryParam: strings.TrimSpace(metadata[lookupQueryParamKey]),
		FilterKey:  strings.TrimSpace(metadata[lookupFilterKeyKey]),
		LabelField: strings.TrimSpace(metadata[lookupLabelFieldKey]),
		ValueField: strings.TrimSpace(metadata[lookupValueFieldKey]),
	}

	for key, value := range metadata {
		if !strings.HasPrefix(key, lookupHeaderPrefix) {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(key, lookupHeaderPrefix))
		if name == "" || value == "" {
			continue
		}
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		cfg.Headers[name] = value
	}

	return cfg, true
}

// FlattenLookupConfig mirrors a LookupConfig into dotted metadata keys. Zero
// values are omitted. Returns nil when the config carries no URL.
func FlattenLookupConfig(cfg LookupConfig) map[string]string {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil
	}

	meta := make(map[string]string)
	add := func(key, value string) {
		if value == "" {
			return
		}
		meta[key] = value
	}

	add(lookupURLKey, strings.TrimSpace(cfg.URL))
	if cfg.Method != "" {
		add(lookupMethodKey, strings.ToUpper(strings.TrimSpace(cfg.Method)))
	}
	add(lookupQueryParamKey, strings.TrimSpace(cfg.QueryParam))
	add(lookupFilterKeyKey, strings.TrimSpace(cfg.FilterKey))
	add(lookupLabelFieldKey, strings.TrimSpace(cfg.LabelField))
	add(lookupValueFieldKey, strings.TrimSpace(cfg.ValueField))

	if len(cfg.Headers) > 0 {
		for _, name := range sortedKeys(cfg.Headers) {
			add(lookupHeaderPrefix+name, cfg.Headers[name])
		}
	}

	return meta
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
