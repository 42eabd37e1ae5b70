package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Client resolves record identifiers to `{id, name}` records against a
// configured endpoint: `GET <url>?_q=_pk__in=<comma-separated-ids>`.
//
// Resolution failures degrade to an empty result rather than an error: a
// missing label is never fatal to the field holding the identifier. The only
// error Resolve returns is a context already done before the request starts.
type Client struct {
	url  string
	opts Options
}

// New constructs a Client for the endpoint URL with default options plus any
// overrides.
func New(endpoint string, fns ...OptionFn) *Client {
	return &Client{
		url:  strings.TrimSpace(endpoint),
		opts: NewOptions(fns...),
	}
}

// URL returns the configured endpoint URL.
func (c *Client) URL() string {
	if c == nil {
		return ""
	}
	return c.url
}

// Resolve fetches records for the given identifiers. Cached records are
// returned without a request; only the misses hit the endpoint. Response
// order is not guaranteed to match the request order, callers match by id.
func (c *Client) Resolve(ctx context.Context, ids []string) ([]Record, error) {
	if c == nil || c.url == "" || len(ids) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, missing := c.fromCache(ids)
	if len(missing) == 0 {
		return records, nil
	}

	fetched := c.fetch(ctx, missing)
	for _, record := range fetched {
		if c.opts.Cache != nil {
			c.opts.Cache.Put(record)
		}
	}
	return append(records, fetched...), nil
}

func (c *Client) fromCache(ids []string) (hits []Record, missing []string) {
	if c.opts.Cache == nil {
		return nil, ids
	}
	for _, id := range ids {
		if record, ok := c.opts.Cache.Get(id); ok {
			hits = append(hits, record)
			continue
		}
		missing = append(missing, id)
	}
	return hits, missing
}

func (c *Client) fetch(ctx context.Context, ids []string) []Record {
	target, err := url.Parse(c.url)
	if err != nil {
		return nil
	}
	query := target.Query()
	query.Set(c.opts.QueryParam, c.opts.FilterKey+"="+strings.Join(ids, ","))
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil
	}
	for name, value := range c.opts.Headers {
		req.Header.Set(name, value)
	}

	client := c.opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: c.opts.Timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil
	}
	return records
}
