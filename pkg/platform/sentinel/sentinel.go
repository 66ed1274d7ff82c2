package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped
// with fmt.Errorf) and services translate them into coded domain errors:
//   - ErrNotFound: row does not exist
//   - ErrConflict: a unique key (pair registration, competition tuple) is taken
//   - ErrUnavailable: backing store or cache cannot be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
