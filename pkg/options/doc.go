// Package options provides the deterministic option lists behind select
// fields: IANA time zones and country names, loaded from embedded data files,
// plus a small case-insensitive search helper. Form definitions refer to a
// source by name (options: timezones) and the forms package resolves it into
// enum values when a definition is loaded.
package options
