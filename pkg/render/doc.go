// Package render turns session snapshots and submission results into
// human-readable text using pongo2 templates. Errors are shown only for
// touched fields, so a fresh form renders clean.
package render
