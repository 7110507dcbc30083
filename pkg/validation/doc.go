// Package validation evaluates field values against a form definition.
//
// A Schema answers one question: given a field name, its value, and the
// sibling values, which message (if any) should be shown next to the field.
// Failures are returned as data so sessions can render them inline; nothing
// in this package treats user input problems as Go errors.
package validation
