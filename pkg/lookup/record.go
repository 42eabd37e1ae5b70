package lookup

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one `{id, name}` entry returned by a lookup endpoint. Extra keys
// in the payload are ignored; the id may arrive as a JSON number or string
// and is canonicalised to int64 or string respectively.
type Record struct {
	ID   any
	Name string
}

// Key returns the canonical string form of the record identifier, matching
// the comparison key the option set uses.
func (r Record) Key() string {
	switch v := r.ID.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", r.ID)
	}
}

type recordPayload struct {
	ID   json.RawMessage `json:"id"`
	Name string          `json:"name"`
}

// UnmarshalJSON decodes a record tolerantly: unknown keys are dropped and the
// id keeps its native type (string keys are not coerced to numbers).
func (r *Record) UnmarshalJSON(data []byte) error {
	var payload recordPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	r.Name = payload.Name
	r.ID = nil
	if len(payload.ID) == 0 {
		return nil
	}

	var asString string
	if err := json.Unmarshal(payload.ID, &asString); err == nil {
		r.ID = asString
		return nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(payload.ID, &asNumber); err == nil {
		if parsed, err := asNumber.Int64(); err == nil {
			r.ID = parsed
			return nil
		}
		r.ID = asNumber.String()
		return nil
	}

	return fmt.Errorf("lookup: record id is neither string nor number: %s", payload.ID)
}
