package relation

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-relationfield/pkg/lookup"
)

// Kind tags the canonical shapes a relation value can take.
type Kind int

const (
	// KindEmpty is the absence of a value.
	KindEmpty Kind = iota
	// KindIdentifier is a bare identifier (string or integer).
	KindIdentifier
	// KindRef is an identifier paired with a display label.
	KindRef
	// KindList is an ordered sequence of identifiers or refs.
	KindList
)

// Ref pairs a record identifier with its display label.
type Ref struct {
	ID    any
	Label string
}

// Value is the canonical internal form every relation input is normalised
// into before any branching runs: a bare identifier, an id/label pair, or an
// ordered sequence of either.
type Value struct {
	kind  Kind
	id    any
	label string
	list  []Value
}

// Kind returns the shape tag.
func (v Value) Kind() Kind { return v.kind }

// ID returns the canonical identifier for identifier and ref values.
func (v Value) ID() any { return v.id }

// Label returns the display label of a ref value.
func (v Value) Label() string { return v.label }

// List returns the elements of a sequence value.
func (v Value) List() []Value { return v.list }

// IsZero reports whether the value is empty.
func (v Value) IsZero() bool { return v.kind == KindEmpty }

// Normalize converts any supported input shape into the canonical Value form.
// Identifiers keep their native type: integers canonicalise to int64, string
// keys stay strings. Inputs that carry no usable identifier normalise to the
// empty value.
func Normalize(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case Ref:
		return normalizeRef(v.ID, v.Label)
	case *Ref:
		if v == nil {
			return Value{}
		}
		return normalizeRef(v.ID, v.Label)
	case lookup.Record:
		return normalizeRef(v.ID, v.Name)
	case map[string]any:
		id, ok := v["id"]
		if !ok {
			return Value{}
		}
		label, _ := v["name"].(string)
		return normalizeRef(id, label)
	case []Value:
		out := make([]Value, 0, len(v))
		for _, el := range v {
			out = append(out, el)
		}
		return Value{kind: KindList, list: out}
	case []Ref:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	case []lookup.Record:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	case []map[string]any:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	case []any:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	case []string:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	case []int:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	case []int64:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	case []float64:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	default:
		if id, ok := canonicalIdentifier(raw); ok {
			return Value{kind: KindIdentifier, id: id}
		}
		return Value{}
	}
}

func normalizeRef(id any, label string) Value {
	canonical, ok := canonicalIdentifier(id)
	if !ok {
		return Value{}
	}
	return Value{kind: KindRef, id: canonical, label: label}
}

func normalizeSlice(length int, at func(int) any) Value {
	out := make([]Value, 0, length)
	for i := 0; i < length; i++ {
		out = append(out, Normalize(at(i)))
	}
	return Value{kind: KindList, list: out}
}

// canonicalIdentifier reduces scalar identifier inputs to string or int64.
func canonicalIdentifier(raw any) (any, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return canonicalIdentifier(float64(v))
	default:
		return nil, false
	}
}

// castInt64 applies the multi-valued relation cast. String input follows the
// lenient leading-integer parse the UI historically used, so "7" and "7th"
// both cast to 7 while "abc" does not cast at all.
func castInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	case string:
		return parseLeadingInt(v)
	default:
		return 0, false
	}
}

func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || (end == 1 && (s[0] == '+' || s[0] == '-')) {
		return 0, false
	}
	parsed, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// truthy mirrors the looseness of the original widget: zero numbers, empty
// strings and nil are not cast-worthy values.
func truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
