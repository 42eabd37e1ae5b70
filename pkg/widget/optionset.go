package widget

import (
	"fmt"
	"strconv"
)

// OptionSet stores the selectable options of a closed-option control as three
// parallel sequences: values (the identifier as stored), options (the
// identifier as registered with the underlying select control) and labels
// (the display text). Insertion order is display order and values never
// repeat; membership is decided on the canonical string form of the value so
// int64(7) and "7" address the same entry.
type OptionSet struct {
	values  []any
	options []any
	labels  []string
	index   map[string]int
}

// ForceAdd idempotently ensures value is present with the given label. It
// reports true when the option set was mutated.
func (s *OptionSet) ForceAdd(value any, label string) bool {
	if s == nil {
		return false
	}
	key := IdentifierKey(value)
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, exists := s.index[key]; exists {
		return false
	}
	s.index[key] = len(s.values)
	s.values = append(s.values, value)
	s.options = append(s.options, value)
	s.labels = append(s.labels, label)
	return true
}

// Has reports whether value is a known option.
func (s *OptionSet) Has(value any) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, ok := s.index[IdentifierKey(value)]
	return ok
}

// Label returns the display text registered for value.
func (s *OptionSet) Label(value any) (string, bool) {
	if s == nil || s.index == nil {
		return "", false
	}
	idx, ok := s.index[IdentifierKey(value)]
	if !ok {
		return "", false
	}
	return s.labels[idx], true
}

// First returns the first registered value in display order.
func (s *OptionSet) First() (any, bool) {
	if s == nil || len(s.values) == 0 {
		return nil, false
	}
	return s.values[0], true
}

// Len returns the number of registered options.
func (s *OptionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Values returns a copy of the stored identifiers in display order.
func (s *OptionSet) Values() []any {
	if s == nil {
		return nil
	}
	return append([]any(nil), s.values...)
}

// Options returns a copy of the identifiers as registered with the control.
func (s *OptionSet) Options() []any {
	if s == nil {
		return nil
	}
	return append([]any(nil), s.options...)
}

// Labels returns a copy of the display texts in display order.
func (s *OptionSet) Labels() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.labels...)
}

// Reset discards every registered option.
func (s *OptionSet) Reset() {
	if s == nil {
		return
	}
	s.values = nil
	s.options = nil
	s.labels = nil
	s.index = nil
}

// IdentifierKey returns the canonical string form used to compare option
// identifiers. Integral numbers and their decimal string representation map
// to the same key.
func IdentifierKey(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return IdentifierKey(float64(v))
	default:
		return fmt.Sprintf("%v", value)
	}
}
