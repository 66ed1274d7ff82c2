// Package scoring is the meet's rule engine: registration eligibility, the
// competition creation rule, the cascade delete guard, and the scoreboards.
//
// Everything here is pure domain logic - no I/O, no side effects. Callers load
// the data, hand it in, and persist or render what comes back.
package scoring
