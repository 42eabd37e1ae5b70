package relationsearch

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-relationfield/pkg/lookup"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(source Source, fns ...OptionFn) http.Handler {
	return HandlerWithOptions(source, NewOptions(fns...))
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. The handler answers `GET ?_q=_pk__in=<comma-separated-ids>` with a
// JSON array of `{id, name}` records; the response order follows the source,
// not the request, so consumers match by id.
func HandlerWithOptions(source Source, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil || source == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		ids := parseFilter(r.URL.Query().Get(opts.QueryParam), opts.FilterKey, opts.MaxIDs)

		records := []lookup.Record{}
		if len(ids) > 0 {
			found, err := source.ByPKs(r.Context(), ids)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if found != nil {
				records = found
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(recordsPayload(records))
	})
}

// parseFilter extracts identifiers from a `<filterKey>=<id>,<id>` filter
// expression. Anything else yields no identifiers.
func parseFilter(query, filterKey string, maxIDs int) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	prefix := filterKey + "="
	if !strings.HasPrefix(query, prefix) {
		return nil
	}

	var ids []string
	for _, raw := range strings.Split(strings.TrimPrefix(query, prefix), ",") {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		ids = append(ids, id)
		if len(ids) >= maxIDs {
			break
		}
	}
	return ids
}

type recordPayload struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
}

func recordsPayload(records []lookup.Record) []recordPayload {
	out := make([]recordPayload, 0, len(records))
	for _, record := range records {
		out = append(out, recordPayload{ID: record.ID, Name: record.Name})
	}
	return out
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
