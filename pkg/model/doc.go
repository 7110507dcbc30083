// Package model defines the form definitions consumed by sessions, validators,
// and renderers. A FormModel lists its fields in declaration order; the field
// list fixes the denominator used for progress reporting for the lifetime of a
// session. Validation rules expose canonical identifiers (min/max,
// minLength/maxLength, pattern) with string parameters so definitions stay
// stable when round-tripped through YAML or JSON. Extra completion predicates
// and submit transforms are referenced by name and resolved by the progress
// and submit packages respectively.
package model
