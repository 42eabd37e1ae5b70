// Package relationsearch serves the lookup endpoint relation fields resolve
// labels against: `GET <mount>?_q=_pk__in=<comma-separated-ids>` answered
// with a JSON array of `{id, name}` records from a pluggable Source.
//
// It is the serving-side counterpart of pkg/lookup and follows the same
// filter-expression contract.
package relationsearch

import "errors"

// ErrNilComponent is returned when route registration is attempted on a nil
// component.
var ErrNilComponent = errors.New("relationsearch: nil component")
