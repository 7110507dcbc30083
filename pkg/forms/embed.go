package forms

import (
	"embed"
	"io/fs"
)

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

// EmbeddedFS returns the bundled form definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default loads the bundled definitions.
func Default() (*Store, error) {
	return LoadFS(EmbeddedFS())
}
